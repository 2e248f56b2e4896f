package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type AppConfig struct {
	Port              string
	DBPath            string
	UploadDir         string
	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIVisionModel string
	OpenWeatherAPIKey string
	PhrasesXLSX       string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:              get("PORT", "8080"),
		DBPath:            get("DB_PATH", "tablegrape.db"),
		UploadDir:         get("UPLOAD_DIR", "uploads"),
		OpenAIAPIKey:      get("OPENAI_API_KEY", ""),
		OpenAIModel:       get("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIVisionModel: get("OPENAI_VISION_MODEL", "gpt-4o"),
		OpenWeatherAPIKey: get("OPENWEATHER_API_KEY", ""),
		PhrasesXLSX:       get("PHRASES_XLSX", ""),
	}
	log.Info().
		Str("port", cfg.Port).
		Str("db", cfg.DBPath).
		Bool("openai", cfg.OpenAIAPIKey != "").
		Bool("openweather", cfg.OpenWeatherAPIKey != "").
		Msg("config loaded")
	return cfg
}
