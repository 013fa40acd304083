package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"stepping_debug/internal/models"
	"stepping_debug/internal/service"

	"github.com/gin-gonic/gin"
)

const maxEventsBody = 1 << 20 // 1 MB

// RecordEventsRequest is the batch form of the events payload. A single event object is also accepted.
type RecordEventsRequest struct {
	Events []models.SteppingEvent `json:"events"`
}

// decodeEvents accepts either {"events":[...]} or a bare event object.
func decodeEvents(body []byte) ([]models.SteppingEvent, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, err
	}
	if _, ok := probe["events"]; ok {
		var req RecordEventsRequest
		if err := json.Unmarshal(body, &req); err != nil {
			return nil, err
		}
		return req.Events, nil
	}
	var e models.SteppingEvent
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, err
	}
	return []models.SteppingEvent{e}, nil
}

func isValidationError(err error) bool {
	for _, target := range []error{
		service.ErrInvalidMachineIP,
		service.ErrEmptyChunkID,
		service.ErrEmptyEventType,
		service.ErrEmptyBatch,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// @Summary      Record stepping events
// @Description  Body is one event or {"events":[...]}. Missing event_id and start_at are filled in.
// @Tags         stepping
// @Accept       json
// @Produce      json
// @Param        body  body      RecordEventsRequest  true  "Events"
// @Success      201   {object}  map[string]int  "count"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/stepping/events [post]
// @Security     BearerAuth
func (h *Handler) recordEvents(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxEventsBody))
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + "empty body"})
		return
	}
	events, err := decodeEvents(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	stored, err := h.services.Stepping.RecordBatch(c.Request.Context(), events)
	if err != nil {
		if isValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errRecordEvents, "stepping_record_failed", err,
			"received", len(events), "stored", len(stored))
		return
	}

	if h.log != nil {
		h.log.Debugw("stepping_recorded", "count", len(stored))
	}
	c.JSON(http.StatusCreated, gin.H{"count": len(stored)})
}
