// Package calendar builds calendar event values from sessions.
// Rendering the events is a presentation concern and lives elsewhere.
package calendar

import (
	"time"

	"rollcall/internal/domain/session"
)

// Event is a calendar entry derived from a session. It is a plain value;
// mutating the source session after construction does not affect it.
type Event struct {
	Title    string
	Location string
	Start    time.Time
	End      time.Time
	Day      int
	Month    int
	Year     int
}

// NewEvent builds the calendar event for sess.
func NewEvent(sess session.Session) Event {
	return Event{
		Title:    sess.Name().String(),
		Location: sess.Location().String(),
		Start:    sess.StartTime(),
		End:      sess.EndTime(),
		Day:      sess.Day(),
		Month:    sess.Month(),
		Year:     sess.Year(),
	}
}

// Events builds the calendar events for each session in sessions.
func Events(sessions []session.Session) []Event {
	events := make([]Event, len(sessions))
	for i, sess := range sessions {
		events[i] = NewEvent(sess)
	}
	return events
}
