package report

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"reportdesk/internal/config"
	"reportdesk/internal/features/filters"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// liveMessage is what the table screen sends over the live filter socket
type liveMessage struct {
	Type  string `json:"type"` // set | submit | reset
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

// liveResults is pushed back whenever the applied filters change
type liveResults struct {
	Type       string              `json:"type"` // results | error
	Filters    filters.FilterState `json:"filters"`
	Data       []ReportRecord      `json:"data,omitempty"`
	Pagination Pagination          `json:"pagination,omitempty"`
	Error      string              `json:"error,omitempty"`
}

type LiveController struct {
	ReportService ReportService
	Config        *config.Config
	Logger        *zap.Logger
}

func NewLiveController(reportService ReportService, cfg *config.Config, logger *zap.Logger) *LiveController {
	return &LiveController{
		ReportService: reportService,
		Config:        cfg,
		Logger:        logger,
	}
}

// HandleLive runs one live filter session over a websocket. Each
// connection owns its own filter coordinator; the coordinator's
// emissions query the report service and push fresh pages back.
func (h *LiveController) HandleLive(c *websocket.Conn) {
	var writeMu sync.Mutex
	write := func(v any) {
		writeMu.Lock()
		defer writeMu.Unlock()
		if err := c.WriteJSON(v); err != nil {
			h.Logger.Warn("live session write failed", zap.Error(err))
		}
	}

	delay := time.Duration(h.Config.SearchDebounceMS) * time.Millisecond
	coord := filters.NewCoordinator(filters.FilterState{}, delay, func(f filters.FilterState) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		records, pagination, err := h.ReportService.ListReports(ctx, f, ListParams{Page: 1, Limit: 20})
		if err != nil {
			h.Logger.Error("live filter query failed", zap.Error(err))
			write(liveResults{Type: "error", Filters: f, Error: err.Error()})
			return
		}
		write(liveResults{Type: "results", Filters: f, Data: records, Pagination: pagination})
	})
	defer coord.Stop()

	for {
		_, msg, err := c.ReadMessage()
		if err != nil {
			return
		}

		var m liveMessage
		if err := json.Unmarshal(msg, &m); err != nil {
			write(liveResults{Type: "error", Error: "invalid message"})
			continue
		}

		switch m.Type {
		case "set":
			if err := coord.SetField(m.Field, m.Value); err != nil {
				write(liveResults{Type: "error", Error: err.Error()})
			}
		case "submit":
			coord.Submit()
		case "reset":
			coord.Reset()
		default:
			write(liveResults{Type: "error", Error: "unknown message type"})
		}
	}
}
