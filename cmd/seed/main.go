package main

import (
	"context"
	"time"

	"reportdesk/internal/config"
	"reportdesk/internal/database"
	"reportdesk/internal/features/report"
	"reportdesk/internal/logger"
	"reportdesk/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func intPtr(v int64) *int64       { return &v }
func floatPtr(v float64) *float64 { return &v }

func sampleReports(now time.Time) []report.ReportRecord {
	return []report.ReportRecord{
		{
			Title:         "Quarterly Revenue, EMEA",
			Status:        string(report.ReportStatusPublished),
			Department:    "Finance",
			Priority:      "high",
			Author:        "Dana Whitcomb",
			CreatedAt:     now.AddDate(0, 0, -40),
			UpdatedAt:     now.AddDate(0, 0, -2),
			RecordCount:   intPtr(18422),
			FileSize:      intPtr(2457600),
			ExecutionTime: floatPtr(12.7),
		},
		{
			Title:         "Inventory Aging",
			Status:        string(report.ReportStatusDraft),
			Department:    "Operations",
			Priority:      "medium",
			Author:        "Luis Ferrer",
			CreatedAt:     now.AddDate(0, 0, -21),
			UpdatedAt:     now.AddDate(0, 0, -21),
			RecordCount:   intPtr(950),
			FileSize:      intPtr(128000),
			ExecutionTime: floatPtr(3.2),
		},
		{
			Title:      "Headcount Forecast",
			Status:     string(report.ReportStatusPublished),
			Department: "HR",
			Priority:   "low",
			Author:     "Priya Nair",
			CreatedAt:  now.AddDate(0, 0, -14),
			UpdatedAt:  now.AddDate(0, 0, -7),
		},
		{
			Title:         "Churn Cohorts \"Beta\"",
			Status:        string(report.ReportStatusArchived),
			Department:    "Marketing",
			Priority:      "medium",
			Author:        "Dana Whitcomb",
			CreatedAt:     now.AddDate(0, -3, 0),
			UpdatedAt:     now.AddDate(0, -1, 0),
			RecordCount:   intPtr(0),
			FileSize:      intPtr(4096),
			ExecutionTime: floatPtr(0.4),
		},
	}
}

// Seed inserts sample report records for local development and prints a
// bearer token for exercising the protected endpoints against the seeded
// data.
func Seed(
	lc fx.Lifecycle,
	cfg *config.Config,
	reportService report.ReportService,
	logger *zap.Logger,
	shutdowner fx.Shutdowner,
) {
	utils.SetSecret(cfg.JWTSecret)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				defer func() {
					if err := shutdowner.Shutdown(); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				logger.Info("Seeding sample report records...")

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				records := sampleReports(time.Now())
				if err := reportService.SeedReports(ctx, records); err != nil {
					logger.Error("Seeding failed", zap.Error(err))
					return
				}
				logger.Info("Seeding complete", zap.Int("records", len(records)))

				token, err := utils.GenerateToken(primitive.NewObjectID(), "seed-user")
				if err != nil {
					logger.Error("Failed to issue dev token", zap.Error(err))
					return
				}
				logger.Info("Dev bearer token for the seeded instance", zap.String("token", token))
			}()
			return nil
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			logger.NewLogger,
			database.NewDatabase,
			report.NewReportRepository,
			report.NewReportService,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	)

	app.Run()
}
