package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Tharoon321/event-attendance/models"
	"github.com/Tharoon321/event-attendance/utils"
)

// CreateEventInput is the body of POST /api/events, sent either as JSON or as
// a multipart form with an optional "image" file.
type CreateEventInput struct {
	Title       string `json:"title" form:"title"`
	Date        string `json:"date" form:"date"`
	Description string `json:"description" form:"description"`
	ImageLink   string `json:"imageLink" form:"imageLink"`
}

// CreateEvent persists a new event record. Requires AdminAuth.
func (h *Handler) CreateEvent(c *gin.Context) {
	var input CreateEventInput
	if isMultipart(c) {
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}
	} else if !bindJSON(c, &input, "message", "Invalid request body") {
		return
	}

	uploadedURL := ""
	if isMultipart(c) {
		file, err := c.FormFile("image")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid image upload"})
			return
		default:
			name := h.images.Filename(file.Filename)
			// the file is kept even if the insert below fails
			if err := c.SaveUploadedFile(file, h.images.Path(name)); err != nil {
				h.logger.Error().Err(err).Str("file", name).Msg("saving upload failed")
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
				return
			}
			uploadedURL = h.images.URL(c.Request, name)
		}
	}

	imageURL, err := utils.ResolveImageURL(uploadedURL, input.ImageLink)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Image is required (either by upload or URL)"})
		return
	}

	event := models.Event{
		UID:         uuid.NewString(),
		Title:       input.Title,
		Date:        input.Date,
		Description: input.Description,
		ImageURL:    imageURL,
	}

	ctx, cancel := h.dbContext(c)
	defer cancel()

	if err := h.events.Create(ctx, &event); err != nil {
		h.logger.Error().Err(err).Str("uid", event.UID).Msg("creating event failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	c.JSON(http.StatusCreated, event)
}

// ListEvents returns all events (no pagination)
func (h *Handler) ListEvents(c *gin.Context) {
	ctx, cancel := h.dbContext(c)
	defer cancel()

	events, err := h.events.List(ctx)
	if err != nil {
		h.logger.Error().Err(err).Msg("listing events failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, events)
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}
