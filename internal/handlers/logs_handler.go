package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/urocareerz/urocareerz-api/pkg/logger"
)

// LogsHandler ingests batched logs from the web client and appends them as
// JSON lines to a separate sink, usually a rotating frontend.log.
type LogsHandler struct {
	out io.Writer
	mu  sync.Mutex
}

type LogEntry struct {
	Timestamp string         `json:"timestamp" binding:"max=64"`
	Level     string         `json:"level" binding:"required,oneof=debug info warn error"`
	Message   string         `json:"message" binding:"required,max=4000"`
	Context   map[string]any `json:"context,omitempty"`
}

type LogBatchRequest struct {
	Logs []LogEntry `json:"logs" binding:"required,min=1,max=100,dive"`
}

// NewLogsHandler creates a handler writing to out. A nil out routes entries
// through the application logger instead.
func NewLogsHandler(out io.Writer) *LogsHandler {
	return &LogsHandler{out: out}
}

// ReceiveFrontendLogs handles POST /api/logs
func (h *LogsHandler) ReceiveFrontendLogs(c *gin.Context) {
	var req LogBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	userID := ""
	if session := optionalSession(c); session != nil {
		userID = session.UserID
	}

	if err := h.write(req.Logs, userID); err != nil {
		logger.LogError(err, "Failed to write frontend logs")
		respondError(c, http.StatusInternalServerError, "Failed to write logs", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(req.Logs)})
}

func (h *LogsHandler) write(entries []LogEntry, userID string) error {
	if h.out == nil {
		for _, entry := range entries {
			logger.Info(entry.Message,
				zap.String("source", "frontend"),
				zap.String("client_level", entry.Level),
				zap.String("user_id", userID),
				zap.Any("context", entry.Context),
			)
		}
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	encoder := json.NewEncoder(h.out)
	for _, entry := range entries {
		line := make(map[string]any, len(entry.Context)+5)
		for k, v := range entry.Context {
			line[k] = v
		}
		// Fixed keys win over client context.
		line["ts"] = entryTimestamp(entry.Timestamp)
		line["level"] = strings.ToLower(entry.Level)
		line["msg"] = entry.Message
		line["service"] = "web"
		if userID != "" {
			line["user_id"] = userID
		}

		if err := encoder.Encode(line); err != nil {
			return fmt.Errorf("failed to encode log entry: %w", err)
		}
	}

	return nil
}

func entryTimestamp(raw string) string {
	if _, err := time.Parse(time.RFC3339, raw); err == nil {
		return raw
	}
	return time.Now().UTC().Format(time.RFC3339)
}
