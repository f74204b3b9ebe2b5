package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dcherrera/tauri-plugin-automation/internal/automation"
)

type handlers struct {
	*Server
}

func newHandlers(s *Server) *handlers {
	return &handlers{s}
}

// Health reports listener and facade status.
func (h *handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"port":      h.cfg.Server.Port,
		"version":   Version,
		"state":     h.svc.State().String(),
		"transport": string(h.svc.TransportSource()),
		"commands":  len(h.svc.Commands()),
	})
}

// Commands lists the command catalog.
func (h *handlers) Commands(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"commands": h.svc.Commands()})
}

type executeRequest struct {
	Command string         `json:"command"`
	Args    map[string]any `json:"args"`
}

// Execute runs one command and returns the Execution Result as JSON.
// Command-level failures are still HTTP 200: the envelope carries
// success/error, per the wire contract. Only a malformed envelope is a 400.
func (h *handlers) Execute(c *gin.Context) {
	var req executeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body: " + err.Error()})
		return
	}
	if req.Command == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "missing 'command' field"})
		return
	}

	start := time.Now()
	res := h.svc.Execute(c.Request.Context(), req.Command, req.Args)
	status := "ok"
	if !res.Success {
		status = string(res.Error.Kind)
	}
	h.metrics.RecordCommand(req.Command, status, time.Since(start))

	c.JSON(http.StatusOK, res)
}

// Screenshot triggers an in-context capture and holds the request open
// until the correlated delivery arrives or the configured timeout elapses.
// A timeout is a capture failure, not a fault. Requests are serialized so
// one cannot drain the delivery belonging to another.
func (h *handlers) Screenshot(c *gin.Context) {
	h.captureMu.Lock()
	defer h.captureMu.Unlock()

	res := h.svc.CaptureAndSend(c.Request.Context())
	if !res.Success {
		h.metrics.RecordCapture(string(res.Error.Kind))
		c.JSON(http.StatusInternalServerError, res)
		return
	}

	token := ""
	if fields, ok := res.Value.(map[string]any); ok {
		token, _ = fields["token"].(string)
	}

	timeout := time.Duration(h.cfg.Capture.TimeoutMs) * time.Millisecond
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	for {
		msg, err := h.mailbox.Await(ctx)
		if err != nil {
			h.metrics.RecordCapture(string(automation.KindCaptureFailed))
			h.log.Warn("screenshot delivery timed out", zap.String("token", token))
			c.JSON(http.StatusInternalServerError,
				automation.Failure(automation.KindCaptureFailed, "screenshot delivery timed out"))
			return
		}
		// Stale deliveries from an earlier capture are discarded; only the
		// payload correlated with this request is returned.
		if token != "" && msg.Token != token {
			continue
		}
		h.metrics.RecordCapture("ok")
		c.Data(http.StatusOK, "image/png", msg.PNG)
		return
	}
}
