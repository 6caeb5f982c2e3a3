package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"worktime-backend/internal/clock"
	"worktime-backend/internal/worktime"
)

// StreamHandler pushes threshold results to subscribers over
// server-sent events. Every connection polls the evaluator on its own
// ticker and dies with the request context; there is no shared state
// between subscribers.
type StreamHandler struct {
	Service  *worktime.Service
	Logger   *logrus.Logger
	Interval time.Duration
}

func NewStreamHandler(service *worktime.Service, logger *logrus.Logger, interval time.Duration) *StreamHandler {
	return &StreamHandler{Service: service, Logger: logger, Interval: interval}
}

type periodStatusResponse struct {
	Done      bool   `json:"done"`
	Remaining string `json:"remaining"`
}

type thresholdResponse struct {
	Daily  periodStatusResponse `json:"daily"`
	Weekly periodStatusResponse `json:"weekly"`
}

func thresholdToResponse(result worktime.ThresholdResult) thresholdResponse {
	return thresholdResponse{
		Daily: periodStatusResponse{
			Done:      result.Daily.Done,
			Remaining: clock.FormatDuration(result.Daily.Remaining),
		},
		Weekly: periodStatusResponse{
			Done:      result.Weekly.Done,
			Remaining: clock.FormatDuration(result.Weekly.Remaining),
		},
	}
}

func (h *StreamHandler) Events(c *gin.Context) {
	id, ok := employeeID(c)
	if !ok {
		return
	}

	streamID := uuid.NewString()
	log := h.Logger.WithFields(logrus.Fields{
		"employee": id,
		"stream":   streamID,
	})
	log.Info("threshold stream opened")

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.WriteHeader(http.StatusOK)

	// Reconnect hint so EventSource clients retry on the push cadence
	// instead of their default.
	fmt.Fprintf(c.Writer, "retry: %d\n\n", h.Interval.Milliseconds())
	c.Writer.Flush()

	// First result right away so the client does not wait a full
	// interval after connecting.
	if !h.push(c, id, log) {
		log.Info("threshold stream closed")
		return
	}

	ticker := time.NewTicker(h.Interval)
	defer ticker.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-ticker.C:
			return h.push(c, id, log)
		}
	})

	log.Info("threshold stream closed")
}

func (h *StreamHandler) push(c *gin.Context, id int, log *logrus.Entry) bool {
	result, err := h.Service.CheckThresholds(c.Request.Context(), id, time.Now())
	if err != nil {
		log.WithError(err).Error("threshold check failed, dropping stream")
		return false
	}
	c.SSEvent("message", thresholdToResponse(result))
	c.Writer.Flush()
	return true
}
