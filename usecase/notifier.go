package usecase

import "time"

// EventKind classifies a change notification.
type EventKind string

const (
	TaskCreated EventKind = "task.created"
	TaskUpdated EventKind = "task.updated"
	TaskDeleted EventKind = "task.deleted"

	EventCreated EventKind = "event.created"
	EventUpdated EventKind = "event.updated"
	EventDeleted EventKind = "event.deleted"
	EventToday   EventKind = "event.today"
)

// Notification describes a completed mutation. Listeners may receive the
// same logical notification more than once and must tolerate that.
type Notification struct {
	Kind    EventKind `json:"kind"`
	OwnerID string    `json:"owner_id,omitempty"`
	Title   string    `json:"title"`
	At      time.Time `json:"at"`
}

// Notifier abstracts the publish side of the notification channel so use
// cases stay decoupled from whoever is listening.
type Notifier interface {
	Publish(n Notification)
}
