package events

import (
	"time"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventPasswordReset   EventType = "password_reset"
	EventHospitalCreated EventType = "hospital_created"
	EventBedsAdded       EventType = "beds_added"
	EventBedBooked       EventType = "bed_booked"
)

// Actor identifies the user that caused an event. UserID is zero for
// maintenance operations run without a session.
type Actor struct {
	UserID   int64  `json:"user_id,omitempty"`
	Username string `json:"username"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// HospitalCreatedPayload payload.
type HospitalCreatedPayload struct {
	HospitalID int64  `json:"hospital_id"`
	Name       string `json:"name"`
	City       string `json:"city"`
}

// BedsAddedPayload payload.
type BedsAddedPayload struct {
	HospitalID int64   `json:"hospital_id"`
	BedType    string  `json:"bed_type"`
	BedIDs     []int64 `json:"bed_ids"`
}

// BedBookedPayload payload.
type BedBookedPayload struct {
	BedID       int64     `json:"bed_id"`
	HospitalID  int64     `json:"hospital_id"`
	BedType     string    `json:"bed_type"`
	BookingTime time.Time `json:"booking_time"`
}
