package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Tharoon321/event-attendance/activeevent"
	"github.com/Tharoon321/event-attendance/config"
	"github.com/Tharoon321/event-attendance/models"
	"github.com/Tharoon321/event-attendance/repositories"
	"github.com/Tharoon321/event-attendance/utils"
)

const (
	testSecret   = "test-secret"
	testPasscode = "open-sesame"
)

type broadcast struct {
	Event   string
	Payload any
}

type recordingHub struct {
	mu   sync.Mutex
	sent []broadcast
}

func (h *recordingHub) Broadcast(event string, payload any) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sent = append(h.sent, broadcast{Event: event, Payload: payload})
	return 1
}

func (h *recordingHub) ServeWS(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotImplemented)
}

func (h *recordingHub) events() []broadcast {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]broadcast{}, h.sent...)
}

type testEnv struct {
	router *gin.Engine
	stores repositories.Stores
	hub    *recordingHub
	tokens *utils.TokenManager
	dir    string
}

func newTestEnv(t *testing.T, mutate ...func(*Deps)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	env := &testEnv{
		stores: repositories.NewMemoryStores(),
		hub:    &recordingHub{},
		tokens: utils.NewTokenManager(testSecret, time.Hour),
		dir:    dir,
	}
	deps := Deps{
		Stores:   env.stores,
		Active:   activeevent.NewHolder(),
		Hub:      env.hub,
		Tokens:   env.tokens,
		Passcode: utils.NewPasscodeChecker(testPasscode, ""),
		Images:   utils.NewImageIntake(dir, "/uploads"),
		Logger:   zerolog.Nop(),
		Timeout:  time.Second,
		CORS:     config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
	for _, m := range mutate {
		m(&deps)
	}
	env.router = New(deps).Router()
	return env
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	token, err := e.tokens.IssueAdmin()
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// failingStores returns stores whose reads and writes all fail.
func failingStores() repositories.Stores {
	return repositories.Stores{
		Users:            failingUsers{},
		Events:           failingEvents{},
		AttendanceEvents: repositories.NewInMemoryAttendanceEventStore(),
		Ping:             func(context.Context) error { return errBackend },
	}
}

var errBackend = errors.New("backend unavailable")

type failingUsers struct{}

func (failingUsers) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, errBackend
}

func (failingUsers) Create(context.Context, *models.User) error {
	return errBackend
}

func (failingUsers) AddEvent(context.Context, string, string) (*models.User, error) {
	return nil, errBackend
}

func (failingUsers) List(context.Context) ([]models.User, error) {
	return nil, errBackend
}

type failingEvents struct{}

func (failingEvents) Create(context.Context, *models.Event) error {
	return errBackend
}

func (failingEvents) List(context.Context) ([]models.Event, error) {
	return nil, errBackend
}
