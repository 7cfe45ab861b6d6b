package logger

import (
	"go.uber.org/zap/zapcore"
)

// ActivityCore is a custom Zap Core that intercepts logs
type ActivityCore struct {
	zapcore.Core
	writer *ActivityLogWriter
}

// NewActivityCore wraps an existing core (like console logger) and adds the
// activity-log sink
func NewActivityCore(baseCore zapcore.Core, writer *ActivityLogWriter) zapcore.Core {
	return &ActivityCore{
		Core:   baseCore,
		writer: writer,
	}
}

// Write is called for every log entry
func (c *ActivityCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	// Pull out the contextual fields we attach around filter/export calls
	var user string
	var filename string

	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
		if f.Key == "user" {
			user = f.String
		}
		if f.Key == "filename" {
			filename = f.String
		}
	}

	// entry.Caller.Function is populated because the logger is built with AddCaller()
	c.writer.AddLog(LogEntry{
		Level:    entry.Level,
		Message:  entry.Message,
		User:     user,
		Filename: filename,
		Caller:   entry.Caller.Function,
	})

	// Call the underlying core so the entry still reaches the console
	return c.Core.Write(entry, fields)
}

// Check decides if we should log this level
func (c *ActivityCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}
