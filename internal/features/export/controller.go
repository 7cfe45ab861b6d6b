package export

import (
	"errors"
	"fmt"

	"reportdesk/internal/config"
	"reportdesk/internal/features/report"
	"reportdesk/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ExportController struct {
	ExportService ExportService
	ReportService report.ReportService
	Delivery      FileDelivery
	Config        *config.Config
}

func NewExportController(exportService ExportService, reportService report.ReportService, delivery FileDelivery, cfg *config.Config) *ExportController {
	return &ExportController{
		ExportService: exportService,
		ReportService: reportService,
		Delivery:      delivery,
		Config:        cfg,
	}
}

// Export godoc
//
// Re-queries the report set with the caller's current filters and sort
// order, then streams the CSV back as an attachment (http mode) or pushes
// it to the configured sink.
func (c *ExportController) Export(ctx *fiber.Ctx) error {
	f := report.FiltersFromQuery(ctx)
	params := report.ParamsFromQuery(ctx)

	requestedBy := "anonymous"
	if claims := middleware.CurrentUser(ctx); claims != nil {
		requestedBy = claims.UserID
	}

	records, err := c.ReportService.FetchAll(ctx.Context(), f, params)
	if err != nil {
		if errors.Is(err, report.ErrInvalidFilter) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	delivery := c.Delivery
	var buffer *BufferDelivery
	if c.Config.ExportDelivery == "http" {
		buffer = &BufferDelivery{}
		delivery = buffer
	}

	filename, err := c.ExportService.ExportReports(ctx.Context(), records, delivery, requestedBy)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoData):
			return ctx.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrExportInProgress):
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	if buffer != nil {
		ctx.Set("Content-Type", buffer.MimeType)
		ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
		return ctx.Send(buffer.Content)
	}

	return ctx.JSON(fiber.Map{"filename": filename})
}

// History godoc
func (c *ExportController) History(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)

	entries, err := c.ExportService.ListHistory(ctx.Context(), int64(limit))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if entries == nil {
		entries = []ExportHistory{}
	}
	return ctx.JSON(entries)
}
