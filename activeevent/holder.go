// Package activeevent holds the single announcement of the session currently
// running. The value lives for the lifetime of the process only.
package activeevent

import (
	"sync"
	"time"

	"github.com/Tharoon321/event-attendance/models"
)

type Holder struct {
	mu      sync.RWMutex
	current *models.ActiveEvent
	now     func() time.Time
}

func NewHolder() *Holder {
	return &Holder{now: time.Now}
}

// NewHolderWithClock is used by tests that need a fixed creation time.
func NewHolderWithClock(now func() time.Time) *Holder {
	return &Holder{now: now}
}

// Set replaces any current value unconditionally and stamps the creation time.
func (h *Holder) Set(title, wifiSSID string) models.ActiveEvent {
	ev := models.ActiveEvent{
		Title:    title,
		WifiSSID: wifiSSID,
		Date:     h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	h.mu.Lock()
	h.current = &ev
	h.mu.Unlock()
	return ev
}

// Get returns a copy of the current value, or nil when none is set.
func (h *Holder) Get() *models.ActiveEvent {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return nil
	}
	ev := *h.current
	return &ev
}

// Clear empties the holder. Clearing an empty holder is not an error.
func (h *Holder) Clear() {
	h.mu.Lock()
	h.current = nil
	h.mu.Unlock()
}
