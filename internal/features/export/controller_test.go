package export

import (
	"context"
	"fmt"
	"net/http/httptest"
	"testing"

	"reportdesk/internal/config"
	"reportdesk/internal/features/filters"
	"reportdesk/internal/features/report"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubReportService struct {
	records []report.ReportRecord
	err     error
}

func (s *stubReportService) ListReports(ctx context.Context, f filters.FilterState, params report.ListParams) ([]report.ReportRecord, report.Pagination, error) {
	return s.records, report.Pagination{}, s.err
}

func (s *stubReportService) FetchAll(ctx context.Context, f filters.FilterState, params report.ListParams) ([]report.ReportRecord, error) {
	return s.records, s.err
}

func (s *stubReportService) SeedReports(ctx context.Context, records []report.ReportRecord) error {
	return nil
}

func newExportApp(reports report.ReportService) *fiber.App {
	cfg := &config.Config{ExportBaseName: "reports", ExportDelivery: "http"}
	svc := NewExportService(&fakeHistoryRepo{}, cfg, zap.NewNop())
	ctrl := NewExportController(svc, reports, &BufferDelivery{}, cfg)

	app := fiber.New()
	app.Get("/api/reports/export", ctrl.Export)
	return app
}

func TestExportRejectsMalformedDateFilter(t *testing.T) {
	reports := &stubReportService{
		err: fmt.Errorf("%w: dateFrom \"30-08-2026\" is not a YYYY-MM-DD date", report.ErrInvalidFilter),
	}
	app := newExportApp(reports)

	req := httptest.NewRequest(fiber.MethodGet, "/api/reports/export?dateFrom=30-08-2026", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestExportStreamsAttachment(t *testing.T) {
	app := newExportApp(&stubReportService{records: testRecords(2)})

	req := httptest.NewRequest(fiber.MethodGet, "/api/reports/export", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
}
