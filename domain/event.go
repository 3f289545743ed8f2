package domain

import (
	"strings"
	"time"
)

// Event is a calendar entry. At most one event may exist per date.
type Event struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Date         time.Time `json:"date"`
	Location     string    `json:"location,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}

// NewEvent builds a validated calendar event.
func NewEvent(title, description string, date time.Time, location string) (*Event, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrBlankTitle
	}
	if date.IsZero() {
		return nil, ErrInvalidPayload
	}
	return &Event{
		Title:        title,
		Description:  strings.TrimSpace(description),
		Date:         date,
		Location:     strings.TrimSpace(location),
		RegisteredAt: time.Now(),
	}, nil
}

// DaysUntil returns the number of whole days between the reference date and
// the event date. Negative when the event has passed.
func (e *Event) DaysUntil(reference time.Time) int {
	if e == nil {
		return 0
	}
	return int(dateOf(e.Date).Sub(dateOf(reference)).Hours() / 24)
}

func (e *Event) IsToday(reference time.Time) bool {
	return e != nil && dateOf(e.Date).Equal(dateOf(reference))
}

func (e *Event) IsPast(reference time.Time) bool {
	return e != nil && dateOf(e.Date).Before(dateOf(reference))
}
