package handlers

import (
	"plastwarehouse/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Routes groups the handlers mounted on the server.
type Routes struct {
	Plastics *PlasticsHandlers
	Catalog  *CatalogHandlers
	Bot      *BotHandlers
	Health   *HealthHandlers
	Jobs     *JobHandlers
}

// Register mounts every route on e.
func (r Routes) Register(e *echo.Echo) {
	e.GET("/health", r.Health.HealthCheck)
	e.GET("/health/ready", r.Health.ReadinessCheck)
	e.GET("/health/live", r.Health.LivenessCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.GET("/plastics", r.Plastics.PlasticsPage)
	e.GET("/plastics/export.csv", r.Plastics.ExportCSV)
	e.GET("/plastics/export.pdf", r.Plastics.ExportPDF)

	api := e.Group("/api", middleware.VersionHeader(middleware.APIVersion))
	api.GET("/plastics", r.Plastics.ListPlastics)
	api.POST("/plastics/exports", r.Plastics.ArchiveExport)
	api.GET("/materials", r.Catalog.ListMaterials)
	api.GET("/users", r.Catalog.ListUsers)
	if r.Jobs != nil {
		api.GET("/jobs", r.Jobs.ListJobs)
		api.POST("/jobs/:name/run", r.Jobs.RunJob)
	}

	e.POST("/bot/webhook", r.Bot.Webhook)
}
