package logger

import (
	"context"
	"fmt"
	"time"

	"reportdesk/internal/config"
	"reportdesk/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to our worker
type LogEntry struct {
	Level    zapcore.Level
	Message  string
	User     string
	Filename string
	Caller   string // Function name
}

// ActivityLogWriter handles the async writing
type ActivityLogWriter struct {
	db      *mongo.Database
	logChan chan LogEntry
	appId   string
}

// NewActivityLogWriter initializes the worker
func NewActivityLogWriter(mongodb *database.MongodbDB, cfg *config.Config) *ActivityLogWriter {
	writer := &ActivityLogWriter{
		db:      mongodb.DB,
		logChan: make(chan LogEntry, 1000), // Buffer 1000 logs
		appId:   cfg.AppId,
	}

	// Start the background worker immediately
	go writer.processLogs()

	return writer
}

// AddLog is called by our Zap hook
func (w *ActivityLogWriter) AddLog(entry LogEntry) {
	select {
	case w.logChan <- entry:
		// Log pushed to channel
	default:
		// Channel full: drop the entry rather than block the request path
		fmt.Println("Activity log channel full! Dropping log:", entry.Message)
	}
}

func (w *ActivityLogWriter) processLogs() {
	for entry := range w.logChan {
		record := bson.M{
			"app_id":     w.appId,
			"level":      entry.Level.String(),
			"message":    entry.Message,
			"user":       entry.User,
			"filename":   entry.Filename,
			"caller":     entry.Caller,
			"created_at": time.Now().UTC(),
		}

		// Insert errors are ignored so a logging outage never takes the app down
		w.db.Collection("activity_log").InsertOne(context.Background(), record)
	}
}
