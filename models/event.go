package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Event is a persisted event record. UID is generated at creation and is
// distinct from the store-assigned _id.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UID         string             `bson:"uid" json:"uid"`
	Title       string             `bson:"title,omitempty" json:"title,omitempty"`
	Date        string             `bson:"date,omitempty" json:"date,omitempty"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
}
