package main

import (
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"tablegrape/config"
	"tablegrape/database"
	"tablegrape/router"

	"tablegrape/pkg/advice"
	"tablegrape/pkg/ai"
	"tablegrape/pkg/cache"
	"tablegrape/pkg/chat"
	"tablegrape/pkg/geocode"
	appMiddleware "tablegrape/pkg/middleware"
	"tablegrape/pkg/scan"
	"tablegrape/pkg/weather"

	adviceCtrlImp "tablegrape/pkg/advice/controllerImp"
	chatCtrlImp "tablegrape/pkg/chat/controllerImp"
	chatRepoImp "tablegrape/pkg/chat/repositoryImp"
	farmCtrlImp "tablegrape/pkg/farm/controllerImp"
	farmRepoImp "tablegrape/pkg/farm/repositoryImp"
	geocodeCtrlImp "tablegrape/pkg/geocode/controllerImp"
	healthCtrlImp "tablegrape/pkg/health/controllerImp"
	logbookCtrlImp "tablegrape/pkg/logbook/controllerImp"
	logbookRepoImp "tablegrape/pkg/logbook/repositoryImp"
	planCtrlImp "tablegrape/pkg/plan/controllerImp"
	scanCtrlImp "tablegrape/pkg/scan/controllerImp"
	statusCtrlImp "tablegrape/pkg/status/controllerImp"
	statusRepoImp "tablegrape/pkg/status/repositoryImp"
	weatherCtrlImp "tablegrape/pkg/weather/controllerImp"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := log.Logger

	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Repositories
	farmRepo := farmRepoImp.New(db)
	statusRepo := statusRepoImp.New(db)
	logRepo := logbookRepoImp.New(db)
	chatRepo := chatRepoImp.New(db)

	// 4) Gateways with their caches
	providers := []weather.Provider{weather.NewOpenMeteo()}
	if cfg.OpenWeatherAPIKey != "" {
		providers = append(providers, weather.NewOpenWeatherMap(cfg.OpenWeatherAPIKey))
	}
	weatherSvc := weather.NewService(providers, cache.New[weather.Forecast](15*time.Minute), logger)
	geocodeSvc := geocode.NewService(cache.New[[]geocode.Location](15*time.Minute), logger)

	// 5) Generation backend; nil client means every orchestrator runs on
	// its deterministic fallback.
	var client ai.Client
	if cfg.OpenAIAPIKey != "" {
		client = ai.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIVisionModel)
	} else {
		logger.Warn().Msg("OPENAI_API_KEY not set, AI features run in fallback mode")
	}

	// 6) Chat phrase sets, with optional spreadsheet override
	phrases := chat.DefaultPhrases()
	if cfg.PhrasesXLSX != "" {
		loaded, err := chat.LoadPhrasesXLSX(cfg.PhrasesXLSX)
		if err != nil {
			logger.Warn().Err(err).Str("path", cfg.PhrasesXLSX).Msg("phrase override not loaded, using defaults")
		} else {
			phrases = loaded
		}
	}

	// 7) Orchestrators
	adviceSvc := advice.NewService(statusRepo, logRepo, weatherSvc, client, cache.New[advice.Advice](6*time.Hour), logger)
	scanSvc := scan.NewService(logRepo, client, cfg.UploadDir, logger)
	chatSvc := chat.NewService(chatRepo, farmRepo, statusRepo, logRepo, weatherSvc, client, phrases, logger)

	// 8) Controllers
	farmCtrl := farmCtrlImp.New(farmRepo)
	statusCtrl := statusCtrlImp.New(statusRepo, farmRepo)
	logCtrl := logbookCtrlImp.New(logRepo)
	planCtrl := planCtrlImp.New(farmRepo, statusRepo, logRepo, weatherSvc)
	adviceCtrl := adviceCtrlImp.New(farmRepo, adviceSvc)
	scanCtrl := scanCtrlImp.New(farmRepo, scanSvc)
	chatCtrl := chatCtrlImp.New(farmRepo, chatSvc)
	weatherCtrl := weatherCtrlImp.New(weatherSvc)
	geocodeCtrl := geocodeCtrlImp.New(geocodeSvc)
	healthCtrl := healthCtrlImp.New(db, cfg.UploadDir)

	// 9) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(appMiddleware.RequestLogger(logger))
	e.Static("/uploads", cfg.UploadDir)

	r := router.New(
		e,
		farmCtrl,
		statusCtrl,
		logCtrl,
		planCtrl,
		adviceCtrl,
		scanCtrl,
		chatCtrl,
		weatherCtrl,
		geocodeCtrl,
		healthCtrl,
	)

	logger.Info().Str("port", cfg.Port).Msg("listening")
	if err := r.Start(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
