package repositories

import (
	"context"
	"errors"

	"github.com/Tharoon321/event-attendance/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	// AddEvent appends eventID to the user's attendance list unless it is
	// already present and returns the updated user.
	AddEvent(ctx context.Context, email, eventID string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	List(ctx context.Context) ([]models.Event, error)
}

type AttendanceEventStore interface {
	// Activate deactivates every stored session and inserts ev as the active one.
	Activate(ctx context.Context, ev *models.AttendanceEvent) error
	DeactivateAll(ctx context.Context) error
	List(ctx context.Context) ([]models.AttendanceEvent, error)
}

// Stores bundles the repositories a server needs.
type Stores struct {
	Users            UserStore
	Events           EventStore
	AttendanceEvents AttendanceEventStore
	Ping             func(ctx context.Context) error
}
