package export

import (
	"reportdesk/internal/config"
	"reportdesk/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ExportApi struct {
	ExportController *ExportController
	Config           *config.Config
}

func NewExportApi(exportController *ExportController, config *config.Config) *ExportApi {
	return &ExportApi{
		ExportController: exportController,
		Config:           config,
	}
}

func (api *ExportApi) Setup(app *fiber.App) {
	reports := app.Group("/api/reports", middleware.AuthMiddleware(api.Config.SkipAuth))
	reports.Get("/export", api.ExportController.Export)

	exports := app.Group("/api/exports", middleware.AuthMiddleware(api.Config.SkipAuth))
	exports.Get("/", api.ExportController.History)
}
