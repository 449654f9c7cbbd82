package application

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rollcall/internal/domain/roster"
	"rollcall/internal/domain/session"
	"rollcall/internal/domain/unique"
	"rollcall/internal/infrastructure/snapshot"
)

// countingStore wraps a real store and counts saves.
type countingStore struct {
	inner *snapshot.Store
	saves int
}

func (c *countingStore) Save(src roster.Viewer) error {
	c.saves++
	return c.inner.Save(src)
}

func (c *countingStore) Load() (*roster.Roster, error) {
	return c.inner.Load()
}

func newTestService(t *testing.T) (*Service, *countingStore) {
	t.Helper()
	store := &countingStore{inner: snapshot.NewStore(t.TempDir() + "/roster.yaml")}
	return NewService(store, time.Minute), store
}

func seedTrainingSession(t *testing.T, svc *Service) {
	t.Helper()
	require.NoError(t, svc.AddPerson("Alice", 20, []string{"coach"}))
	require.NoError(t, svc.AddSession("Training", "01-01-2024 10:00", "01-01-2024 12:00", "Gym"))
	require.NoError(t, svc.Enroll("Alice", "Training"))
}

func TestService_Load_MissingSnapshotStartsEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.Load())
	require.Empty(t, svc.Roster().Persons())
}

func TestService_Load_RestoresSavedState(t *testing.T) {
	svc, store := newTestService(t)
	seedTrainingSession(t, svc)

	reloaded := NewService(store, time.Minute)
	require.NoError(t, reloaded.Load())

	require.True(t, reloaded.Roster().Equal(svc.Roster()))
}

func TestService_AddPerson_RegistersTags(t *testing.T) {
	svc, store := newTestService(t)

	require.NoError(t, svc.AddPerson("Alice", 20, []string{"coach"}))
	require.NoError(t, svc.AddPerson("Bob", 15, []string{"coach", "student"}))

	// Shared labels register once; no duplicate-tag error.
	require.Len(t, svc.Roster().Tags(), 2)
	require.Equal(t, 2, store.saves)
}

func TestService_AddPerson_RejectsDuplicateName(t *testing.T) {
	svc, store := newTestService(t)
	require.NoError(t, svc.AddPerson("Alice", 20, nil))

	err := svc.AddPerson("Alice", 50, nil)

	require.ErrorIs(t, err, unique.ErrDuplicate)
	require.Equal(t, 1, store.saves)
}

func TestService_AddSession_ValidatesInterval(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.AddSession("Training", "01-01-2024 12:00", "01-01-2024 10:00", "Gym")

	require.ErrorIs(t, err, session.ErrInvalidSession)
}

func TestService_Enroll_UnknownPerson(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.AddSession("Training", "01-01-2024 10:00", "01-01-2024 12:00", "Gym"))

	err := svc.Enroll("Ghost", "Training")

	var notFound *roster.PersonNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestService_Enroll_UnknownSession(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.AddPerson("Alice", 20, nil))

	err := svc.Enroll("Alice", "Nothing")

	var notFound *roster.SessionNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestService_Mark_RejectsUnenrolled(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.AddPerson("Alice", 20, nil))
	require.NoError(t, svc.AddSession("Training", "01-01-2024 10:00", "01-01-2024 12:00", "Gym"))

	err := svc.Mark("Training", "Alice", true)

	var notEnrolled *session.NotEnrolledError
	require.ErrorAs(t, err, &notEnrolled)
}

func TestService_EndToEnd_Payroll(t *testing.T) {
	svc, _ := newTestService(t)
	seedTrainingSession(t, svc)
	require.NoError(t, svc.Mark("Training", "Alice", true))

	report, err := svc.SessionPayroll("Training")

	require.NoError(t, err)
	require.InDelta(t, 40.0, report.TotalPay, 1e-9)
	require.Equal(t, "1/1", report.Attendance)
	require.Equal(t, 120, report.Minutes)
	require.Equal(t, "Gym", report.Location)
}

func TestService_SessionPayroll_CachedUntilMutation(t *testing.T) {
	svc, _ := newTestService(t)
	seedTrainingSession(t, svc)
	require.NoError(t, svc.Mark("Training", "Alice", true))

	first, err := svc.SessionPayroll("Training")
	require.NoError(t, err)
	require.InDelta(t, 40.0, first.TotalPay, 1e-9)

	cached, err := svc.SessionPayroll("Training")
	require.NoError(t, err)
	require.Equal(t, first, cached)

	// A session mutation drops the cached entry.
	require.NoError(t, svc.Mark("Training", "Alice", false))
	updated, err := svc.SessionPayroll("Training")
	require.NoError(t, err)
	require.Zero(t, updated.TotalPay)
	require.Equal(t, "0/1", updated.Attendance)
}

func TestService_Withdraw_RemovesFromPayroll(t *testing.T) {
	svc, _ := newTestService(t)
	seedTrainingSession(t, svc)
	require.NoError(t, svc.Mark("Training", "Alice", true))

	require.NoError(t, svc.Withdraw("Alice", "Training"))

	report, err := svc.SessionPayroll("Training")
	require.NoError(t, err)
	require.Zero(t, report.TotalPay)
	require.Equal(t, "0/0", report.Attendance)
}

func TestService_Payroll_OrdersByStartTime(t *testing.T) {
	svc, _ := newTestService(t)
	require.NoError(t, svc.AddSession("Late", "02-01-2024 10:00", "02-01-2024 11:00", "Gym"))
	require.NoError(t, svc.AddSession("Early", "01-01-2024 10:00", "01-01-2024 11:00", "Track"))

	reports, err := svc.Payroll()

	require.NoError(t, err)
	require.Len(t, reports, 2)
	require.Equal(t, "Early", reports[0].Session)
	require.Equal(t, "Late", reports[1].Session)
}

func TestService_RemoveSession(t *testing.T) {
	svc, _ := newTestService(t)
	seedTrainingSession(t, svc)

	require.NoError(t, svc.RemoveSession("Training"))

	_, err := svc.SessionPayroll("Training")
	var notFound *roster.SessionNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestService_RemovePerson_KeepsSessionSnapshot(t *testing.T) {
	svc, _ := newTestService(t)
	seedTrainingSession(t, svc)
	require.NoError(t, svc.Mark("Training", "Alice", true))

	require.NoError(t, svc.RemovePerson("Alice"))

	// The enrollment snapshot outlives the person record.
	report, err := svc.SessionPayroll("Training")
	require.NoError(t, err)
	require.InDelta(t, 40.0, report.TotalPay, 1e-9)
}

func TestService_CalendarEvents(t *testing.T) {
	svc, _ := newTestService(t)
	seedTrainingSession(t, svc)

	events := svc.CalendarEvents()

	require.Len(t, events, 1)
	require.Equal(t, "Training", events[0].Title)
}

func TestService_Reload_KeepsRosterOnCorruptSnapshot(t *testing.T) {
	svc, _ := newTestService(t)
	seedTrainingSession(t, svc)

	// Reload from a good snapshot keeps state.
	svc.Reload()
	require.Len(t, svc.Roster().Persons(), 1)

	// A failing load must not clear the in-memory roster.
	broken := NewService(&failingStore{}, time.Minute)
	require.NoError(t, broken.AddPerson("Alice", 20, nil))
	broken.Reload()
	require.Len(t, broken.Roster().Persons(), 1)
}

type failingStore struct{}

func (f *failingStore) Save(roster.Viewer) error { return nil }

func (f *failingStore) Load() (*roster.Roster, error) {
	return nil, errors.New("disk on fire")
}
