package logger

import (
	"reportdesk/internal/config"
	"reportdesk/internal/database"

	"go.uber.org/zap"
)

// NewLogger builds the application logger. Entries go to the console and,
// through ActivityCore, into the activity_log collection.
func NewLogger(cfg *config.Config, mongodb *database.MongodbDB) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.Environment == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	// Enable Caller so the activity writer can record the function name
	zapConfig.EncoderConfig.FunctionKey = "func"

	baseLogger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}

	writer := NewActivityLogWriter(mongodb, cfg)

	finalCore := NewActivityCore(baseLogger.Core(), writer)

	return zap.New(finalCore, zap.AddCaller()), nil
}
