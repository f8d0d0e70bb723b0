package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// AttendanceEvent is the persisted history of active-event sessions.
type AttendanceEvent struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title    string             `bson:"title" json:"title"`
	WifiSSID string             `bson:"wifiSSID" json:"wifiSSID"`
	IsActive bool               `bson:"isActive" json:"isActive"`
}

// NewAttendanceEvent mirrors an active event into its persisted form.
func NewAttendanceEvent(ev ActiveEvent) AttendanceEvent {
	return AttendanceEvent{
		ID:       primitive.NewObjectID(),
		Title:    ev.Title,
		WifiSSID: ev.WifiSSID,
		IsActive: true,
	}
}
