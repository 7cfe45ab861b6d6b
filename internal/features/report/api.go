package report

import (
	"reportdesk/internal/config"
	"reportdesk/internal/middleware"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type ReportApi struct {
	ReportController *ReportController
	LiveController   *LiveController
	Config           *config.Config
}

func NewReportApi(reportController *ReportController, liveController *LiveController, config *config.Config) *ReportApi {
	return &ReportApi{
		ReportController: reportController,
		LiveController:   liveController,
		Config:           config,
	}
}

func (api *ReportApi) Setup(app *fiber.App) {
	group := app.Group("/api/reports", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Get("/", api.ReportController.List)
	group.Get("/live", websocket.New(api.LiveController.HandleLive))
}
