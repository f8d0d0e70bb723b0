package repositories

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Tharoon321/event-attendance/models"
)

// NewMemoryStores returns process-local repositories. Data is lost on restart.
func NewMemoryStores() Stores {
	return Stores{
		Users:            NewInMemoryUserStore(),
		Events:           NewInMemoryEventStore(),
		AttendanceEvents: NewInMemoryAttendanceEventStore(),
		Ping:             func(context.Context) error { return nil },
	}
}

type InMemoryUserStore struct {
	mu    sync.RWMutex
	order []string
	users map[string]models.User
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[string]models.User)}
}

func (s *InMemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(user), nil
}

func (s *InMemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Email]; exists {
		return ErrDuplicate
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Events == nil {
		user.Events = []string{}
	}
	s.users[user.Email] = *cloneUser(*user)
	s.order = append(s.order, user.Email)
	return nil
}

func (s *InMemoryUserStore) AddEvent(_ context.Context, email, eventID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	if !user.HasAttended(eventID) {
		user.Events = append(user.Events, eventID)
		s.users[email] = user
	}
	return cloneUser(user), nil
}

func (s *InMemoryUserStore) List(context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.order))
	for _, email := range s.order {
		out = append(out, *cloneUser(s.users[email]))
	}
	return out, nil
}

func cloneUser(u models.User) *models.User {
	u.Events = append([]string{}, u.Events...)
	return &u
}

type InMemoryEventStore struct {
	mu     sync.RWMutex
	events []models.Event
	uids   map[string]struct{}
}

func NewInMemoryEventStore() *InMemoryEventStore {
	return &InMemoryEventStore{uids: make(map[string]struct{})}
}

func (s *InMemoryEventStore) Create(_ context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.uids[event.UID]; exists {
		return ErrDuplicate
	}
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	s.uids[event.UID] = struct{}{}
	s.events = append(s.events, *event)
	return nil
}

func (s *InMemoryEventStore) List(context.Context) ([]models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Event{}, s.events...), nil
}

type InMemoryAttendanceEventStore struct {
	mu     sync.Mutex
	events []models.AttendanceEvent
}

func NewInMemoryAttendanceEventStore() *InMemoryAttendanceEventStore {
	return &InMemoryAttendanceEventStore{}
}

func (s *InMemoryAttendanceEventStore) Activate(_ context.Context, ev *models.AttendanceEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deactivateLocked()
	if ev.ID.IsZero() {
		ev.ID = primitive.NewObjectID()
	}
	ev.IsActive = true
	s.events = append(s.events, *ev)
	return nil
}

func (s *InMemoryAttendanceEventStore) DeactivateAll(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deactivateLocked()
	return nil
}

func (s *InMemoryAttendanceEventStore) deactivateLocked() {
	for i := range s.events {
		s.events[i].IsActive = false
	}
}

func (s *InMemoryAttendanceEventStore) List(context.Context) ([]models.AttendanceEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.AttendanceEvent{}, s.events...), nil
}
