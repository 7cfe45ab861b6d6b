package export

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"reportdesk/internal/config"
	"reportdesk/internal/features/report"
	"reportdesk/pkg/utils"

	"go.uber.org/zap"
)

// ErrNoData is returned when an export is requested for an empty record
// list. Callers show it as an informational message, not a fault.
var ErrNoData = errors.New("no data to export")

// ErrExportInProgress guards against overlapping export triggers
var ErrExportInProgress = errors.New("an export is already in progress")

const csvMimeType = "text/csv"

type ExportService interface {
	ExportReports(ctx context.Context, records []report.ReportRecord, delivery FileDelivery, requestedBy string) (string, error)
	ListHistory(ctx context.Context, limit int64) ([]ExportHistory, error)
}

type ExportServiceImpl struct {
	HistoryRepo HistoryRepository
	Logger      *zap.Logger
	baseName    string
	busy        atomic.Bool
}

func NewExportService(historyRepo HistoryRepository, cfg *config.Config, logger *zap.Logger) ExportService {
	baseName := utils.Slugify(cfg.ExportBaseName)
	if baseName == "" {
		baseName = "reports"
	}
	return &ExportServiceImpl{
		HistoryRepo: historyRepo,
		Logger:      logger,
		baseName:    baseName,
	}
}

// ExportReports runs the full pipeline: format rows, serialize to CSV,
// hand the artifact to the delivery sink, and record the attempt. Every
// failure is converted into an error value here, nothing propagates as a
// panic, and the delivery sink is never touched when there is no data.
func (s *ExportServiceImpl) ExportReports(ctx context.Context, records []report.ReportRecord, delivery FileDelivery, requestedBy string) (string, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return "", ErrExportInProgress
	}
	defer s.busy.Store(false)

	if len(records) == 0 {
		return "", ErrNoData
	}

	rows := FormatReportsForCSV(records)
	csvText := ToCSV(rows, ReportCSVHeaders)
	if csvText == "" {
		err := errors.New("csv serialization produced no output")
		s.recordHistory(ctx, "", len(records), requestedBy, err)
		return "", err
	}

	filename := fmt.Sprintf("%s-%s.csv", s.baseName, time.Now().Format("2006-01-02"))

	if err := delivery.Deliver(ctx, []byte(csvText), filename, csvMimeType); err != nil {
		wrapped := fmt.Errorf("failed to deliver export: %w", err)
		s.recordHistory(ctx, filename, len(records), requestedBy, wrapped)
		return "", wrapped
	}

	s.recordHistory(ctx, filename, len(records), requestedBy, nil)
	s.Logger.Info("report export completed",
		zap.String("filename", filename),
		zap.Int("rows", len(records)),
		zap.String("user", requestedBy),
	)
	return filename, nil
}

func (s *ExportServiceImpl) ListHistory(ctx context.Context, limit int64) ([]ExportHistory, error) {
	if limit < 1 || limit > 500 {
		limit = 50
	}
	return s.HistoryRepo.List(ctx, limit)
}

// recordHistory persists the attempt; history failures are logged but
// never override the export outcome
func (s *ExportServiceImpl) recordHistory(ctx context.Context, filename string, rows int, requestedBy string, exportErr error) {
	entry := &ExportHistory{
		Filename:    filename,
		RowCount:    rows,
		Status:      ExportStatusSuccess,
		RequestedBy: requestedBy,
	}
	if exportErr != nil {
		entry.Status = ExportStatusFailed
		entry.Error = exportErr.Error()
	}
	if err := s.HistoryRepo.Create(ctx, entry); err != nil {
		s.Logger.Warn("failed to record export history", zap.Error(err))
	}
}
