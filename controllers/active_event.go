package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tharoon321/event-attendance/models"
	"github.com/Tharoon321/event-attendance/realtime"
)

// CreateActiveEventInput is the body of POST /create-event
type CreateActiveEventInput struct {
	Title    string `json:"title" binding:"required"`
	WifiSSID string `json:"wifiSSID" binding:"required"`
}

// CreateActiveEvent replaces the active event and announces it to listeners.
func (h *Handler) CreateActiveEvent(c *gin.Context) {
	var input CreateActiveEventInput
	if !bindJSON(c, &input, "error", "Missing title or wifiSSID") {
		return
	}

	ev := h.active.Set(input.Title, input.WifiSSID)
	h.hub.Broadcast(realtime.EventCreated, ev)
	h.recordSession(c, &ev)

	c.JSON(http.StatusOK, gin.H{"success": true, "event": ev})
}

// GetActiveEvent returns the active event, or null when none is set.
func (h *Handler) GetActiveEvent(c *gin.Context) {
	c.JSON(http.StatusOK, h.active.Get())
}

// GetActiveEventOrEmpty returns the active event, or {} when none is set.
func (h *Handler) GetActiveEventOrEmpty(c *gin.Context) {
	ev := h.active.Get()
	if ev == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, ev)
}

// DeleteActiveEvent clears the active event. Clearing an empty holder succeeds.
func (h *Handler) DeleteActiveEvent(c *gin.Context) {
	h.active.Clear()
	h.hub.Broadcast(realtime.EventDeleted, nil)
	h.recordSession(c, nil)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// recordSession mirrors holder changes into the attendance events collection
// when history is enabled. Failures are logged only.
func (h *Handler) recordSession(c *gin.Context, ev *models.ActiveEvent) {
	if h.history == nil {
		return
	}
	ctx, cancel := h.dbContext(c)
	defer cancel()

	var err error
	if ev != nil {
		session := models.NewAttendanceEvent(*ev)
		err = h.history.Activate(ctx, &session)
	} else {
		err = h.history.DeactivateAll(ctx)
	}
	if err != nil {
		h.logger.Warn().Err(err).Msg("recording attendance event session failed")
	}
}
