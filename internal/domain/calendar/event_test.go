package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rollcall/internal/domain/session"
)

func TestNewEvent_FromSession(t *testing.T) {
	name, err := session.NewName("Training")
	require.NoError(t, err)
	loc, err := session.NewLocation("Gym")
	require.NoError(t, err)
	sess, err := session.New("01-03-2024 14:30", "01-03-2024 16:30", name, loc)
	require.NoError(t, err)

	event := NewEvent(sess)

	require.Equal(t, "Training", event.Title)
	require.Equal(t, "Gym", event.Location)
	require.Equal(t, time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC), event.Start)
	require.Equal(t, time.Date(2024, 3, 1, 16, 30, 0, 0, time.UTC), event.End)
	require.Equal(t, 1, event.Day)
	require.Equal(t, 3, event.Month)
	require.Equal(t, 2024, event.Year)
}

func TestEvents_OnePerSession(t *testing.T) {
	name, err := session.NewName("Training")
	require.NoError(t, err)
	loc, err := session.NewLocation("Gym")
	require.NoError(t, err)
	sess, err := session.New("01-03-2024 14:30", "01-03-2024 16:30", name, loc)
	require.NoError(t, err)

	events := Events([]session.Session{sess})

	require.Len(t, events, 1)
	require.Equal(t, NewEvent(sess), events[0])
}
