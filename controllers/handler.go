package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Tharoon321/event-attendance/activeevent"
	"github.com/Tharoon321/event-attendance/config"
	"github.com/Tharoon321/event-attendance/repositories"
	"github.com/Tharoon321/event-attendance/utils"
)

// Hub is the realtime channel the handlers publish to.
type Hub interface {
	Broadcast(event string, payload any) int
	ServeWS(w http.ResponseWriter, r *http.Request)
}

// Deps collects everything the handlers need. History turns on recording of
// active-event sessions in the attendance events collection.
type Deps struct {
	Stores   repositories.Stores
	History  bool
	Active   *activeevent.Holder
	Hub      Hub
	Tokens   *utils.TokenManager
	Passcode *utils.PasscodeChecker
	Images   *utils.ImageIntake
	Logger   zerolog.Logger
	Timeout  time.Duration

	MaxUploadMemory    int64
	CORS               config.CORSConfig
	LoginRatePerMinute int
}

type Handler struct {
	users   repositories.UserStore
	events  repositories.EventStore
	history repositories.AttendanceEventStore
	ping    func(ctx context.Context) error

	active   *activeevent.Holder
	hub      Hub
	tokens   *utils.TokenManager
	passcode *utils.PasscodeChecker
	images   *utils.ImageIntake
	logger   zerolog.Logger
	timeout  time.Duration

	maxUploadMemory int64
	cors            config.CORSConfig
	loginRate       int
}

func New(d Deps) *Handler {
	h := &Handler{
		users:           d.Stores.Users,
		events:          d.Stores.Events,
		ping:            d.Stores.Ping,
		active:          d.Active,
		hub:             d.Hub,
		tokens:          d.Tokens,
		passcode:        d.Passcode,
		images:          d.Images,
		logger:          d.Logger,
		timeout:         d.Timeout,
		maxUploadMemory: d.MaxUploadMemory,
		cors:            d.CORS,
		loginRate:       d.LoginRatePerMinute,
	}
	if d.History {
		h.history = d.Stores.AttendanceEvents
	}
	if h.active == nil {
		h.active = activeevent.NewHolder()
	}
	if h.timeout <= 0 {
		h.timeout = 5 * time.Second
	}
	if h.maxUploadMemory <= 0 {
		h.maxUploadMemory = 10 << 20
	}
	if h.ping == nil {
		h.ping = func(context.Context) error { return nil }
	}
	return h
}

// dbContext bounds a store call by the request context and the configured timeout.
func (h *Handler) dbContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// bindJSON decodes the body into dst. Missing required fields are reported
// with msg under key, alongside the offending field names. An empty body
// decodes to the zero value.
func bindJSON(c *gin.Context, dst any, key, msg string) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		c.JSON(http.StatusBadRequest, gin.H{key: msg, "fields": fields})
	case errors.Is(err, io.EOF):
		// empty body: validate the zero value so required fields are still enforced
		if validateStruct(dst) != nil {
			c.JSON(http.StatusBadRequest, gin.H{key: msg})
			return false
		}
		return true
	default:
		c.JSON(http.StatusBadRequest, gin.H{key: "Invalid request body"})
	}
	return false
}

func validateStruct(v any) error {
	return binding.Validator.ValidateStruct(v)
}
