package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is an attendee identified by email.
// Events holds the identifiers of events the user has attended, in insertion order.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserName string             `bson:"userName,omitempty" json:"userName,omitempty"`
	Email    string             `bson:"email" json:"email"`
	Events   []string           `bson:"events" json:"events"`
}

// HasAttended reports whether eventID is already in the user's attendance list.
func (u *User) HasAttended(eventID string) bool {
	for _, e := range u.Events {
		if e == eventID {
			return true
		}
	}
	return false
}
