package router

import (
	"github.com/labstack/echo/v4"

	adviceCtrl "tablegrape/pkg/advice/controllerImp"
	chatCtrl "tablegrape/pkg/chat/controllerImp"
	farmCtrl "tablegrape/pkg/farm/controllerImp"
	geocodeCtrl "tablegrape/pkg/geocode/controllerImp"
	healthCtrl "tablegrape/pkg/health/controllerImp"
	logbookCtrl "tablegrape/pkg/logbook/controllerImp"
	planCtrl "tablegrape/pkg/plan/controllerImp"
	scanCtrl "tablegrape/pkg/scan/controllerImp"
	statusCtrl "tablegrape/pkg/status/controllerImp"
	weatherCtrl "tablegrape/pkg/weather/controllerImp"
)

// New registers every route on e and returns it.
func New(
	e *echo.Echo,
	farms *farmCtrl.FarmCtrl,
	statuses *statusCtrl.StatusCtrl,
	logs *logbookCtrl.LogbookCtrl,
	plans *planCtrl.PlanCtrl,
	advices *adviceCtrl.AdviceCtrl,
	scans *scanCtrl.ScanCtrl,
	chats *chatCtrl.ChatCtrl,
	wx *weatherCtrl.WeatherCtrl,
	geo *geocodeCtrl.GeocodeCtrl,
	health *healthCtrl.HealthCtrl,
) *echo.Echo {
	api := e.Group("/api")

	api.POST("/farms", farms.CreateFarm)
	api.GET("/farms/:id", farms.GetFarm)
	api.POST("/blocks", farms.CreateBlock)
	api.GET("/blocks", farms.ListBlocks)

	api.POST("/status", statuses.Create)
	api.GET("/status/latest", statuses.Latest)

	api.POST("/logs/scouting", logs.CreateScouting)
	api.POST("/logs/irrigation", logs.CreateIrrigation)
	api.POST("/logs/brix", logs.CreateBrix)
	api.POST("/logs/spray", logs.CreateSpray)

	api.GET("/plan/today", plans.Today)
	api.POST("/ai/weekly-advice", advices.WeeklyAdvice)
	api.POST("/scan", scans.Scan)

	api.POST("/chat/message", chats.SendMessage)
	api.GET("/chat/history", chats.History)
	api.DELETE("/chat/history", chats.ClearHistory)

	api.GET("/weather/forecast", wx.Forecast)
	api.GET("/geocode", geo.Geocode)

	e.GET("/health", health.Health)

	return e
}
