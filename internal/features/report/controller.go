package report

import (
	"errors"

	"reportdesk/internal/features/filters"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	ReportService ReportService
}

func NewReportController(reportService ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// FiltersFromQuery reads the six filter fields off the request query
func FiltersFromQuery(ctx *fiber.Ctx) filters.FilterState {
	return filters.FilterState{
		Status:     ctx.Query("status"),
		Department: ctx.Query("department"),
		Priority:   ctx.Query("priority"),
		DateFrom:   ctx.Query("dateFrom"),
		DateTo:     ctx.Query("dateTo"),
		Search:     ctx.Query("search"),
	}
}

// ParamsFromQuery reads pagination and sorting off the request query
func ParamsFromQuery(ctx *fiber.Ctx) ListParams {
	return ListParams{
		Page:      ctx.QueryInt("page", 1),
		Limit:     ctx.QueryInt("limit", 20),
		SortBy:    ctx.Query("sortBy", "created_at"),
		SortOrder: ctx.Query("sortOrder", "desc"),
	}
}

// List godoc
func (c *ReportController) List(ctx *fiber.Ctx) error {
	f := FiltersFromQuery(ctx)
	params := ParamsFromQuery(ctx)

	records, pagination, err := c.ReportService.ListReports(ctx.Context(), f, params)
	if err != nil {
		if errors.Is(err, ErrInvalidFilter) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if records == nil {
		records = []ReportRecord{}
	}
	return ctx.JSON(fiber.Map{
		"data":       records,
		"pagination": pagination,
	})
}
