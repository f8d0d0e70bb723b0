package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tharoon321/event-attendance/config"
	"github.com/Tharoon321/event-attendance/models"
)

// NewMongoStores wires every repository to collections in db.
func NewMongoStores(db *mongo.Database) Stores {
	return Stores{
		Users:            &MongoUserStore{col: db.Collection(config.UsersCollection)},
		Events:           &MongoEventStore{col: db.Collection(config.EventsCollection)},
		AttendanceEvents: &MongoAttendanceEventStore{col: db.Collection(config.AttendanceEventsCollection)},
		Ping: func(ctx context.Context) error {
			return db.Client().Ping(ctx, nil)
		},
	}
}

type MongoUserStore struct {
	col *mongo.Collection
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (s *MongoUserStore) Create(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Events == nil {
		user.Events = []string{}
	}
	if _, err := s.col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// AddEvent uses $addToSet so the membership check and the append happen in
// one document write.
func (s *MongoUserStore) AddEvent(ctx context.Context, email, eventID string) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$addToSet": bson.M{"events": eventID}}

	var user models.User
	err := s.col.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("add event to user: %w", err)
	}
	return &user, nil
}

func (s *MongoUserStore) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := findAll(ctx, s.col, &users); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

type MongoEventStore struct {
	col *mongo.Collection
}

func (s *MongoEventStore) Create(ctx context.Context, event *models.Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if _, err := s.col.InsertOne(ctx, event); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (s *MongoEventStore) List(ctx context.Context) ([]models.Event, error) {
	events := []models.Event{}
	if err := findAll(ctx, s.col, &events); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

type MongoAttendanceEventStore struct {
	col *mongo.Collection
}

func (s *MongoAttendanceEventStore) Activate(ctx context.Context, ev *models.AttendanceEvent) error {
	if err := s.DeactivateAll(ctx); err != nil {
		return err
	}
	if ev.ID.IsZero() {
		ev.ID = primitive.NewObjectID()
	}
	ev.IsActive = true
	if _, err := s.col.InsertOne(ctx, ev); err != nil {
		return fmt.Errorf("insert attendance event: %w", err)
	}
	return nil
}

func (s *MongoAttendanceEventStore) DeactivateAll(ctx context.Context) error {
	_, err := s.col.UpdateMany(ctx, bson.M{"isActive": true}, bson.M{"$set": bson.M{"isActive": false}})
	if err != nil {
		return fmt.Errorf("deactivate attendance events: %w", err)
	}
	return nil
}

func (s *MongoAttendanceEventStore) List(ctx context.Context) ([]models.AttendanceEvent, error) {
	out := []models.AttendanceEvent{}
	if err := findAll(ctx, s.col, &out); err != nil {
		return nil, fmt.Errorf("list attendance events: %w", err)
	}
	return out, nil
}

func findAll(ctx context.Context, col *mongo.Collection, results any) error {
	cursor, err := col.Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, results)
}
