package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"rollcall/internal/domain/person"
	"rollcall/internal/domain/roster"
	"rollcall/internal/domain/session"
	"rollcall/internal/domain/tag"
	"rollcall/internal/domain/unique"
)

func mkRoster(t *testing.T) *roster.Roster {
	t.Helper()
	r := roster.New()

	name, err := person.NewName("Alice")
	require.NoError(t, err)
	rate, err := person.NewPayRate(20)
	require.NoError(t, err)
	coach, err := tag.New("coach")
	require.NoError(t, err)
	alice := person.New(name, rate, coach)
	require.NoError(t, r.AddPerson(alice))
	require.NoError(t, r.AddTag(coach))

	sessName, err := session.NewName("Training")
	require.NoError(t, err)
	loc, err := session.NewLocation("Gym")
	require.NoError(t, err)
	sess, err := session.New("01-01-2024 10:00", "01-01-2024 12:00", sessName, loc)
	require.NoError(t, err)
	require.NoError(t, r.AddSession(sess))
	require.NoError(t, r.AddPersonToSession(alice, sess))

	stored, err := r.FindSessionByName(sessName)
	require.NoError(t, err)
	require.NoError(t, stored.MarkPresent("Alice"))
	require.NoError(t, r.SetSession(stored, stored))

	return r
}

func TestStore_SaveLoad_RoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "roster.yaml"))
	src := mkRoster(t)

	require.NoError(t, store.Save(src))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.True(t, loaded.Equal(src))

	// Attendance and pay snapshots survive the trip.
	name, err := session.NewName("Training")
	require.NoError(t, err)
	sess, err := loaded.FindSessionByName(name)
	require.NoError(t, err)
	total, err := sess.TotalPay()
	require.NoError(t, err)
	require.InDelta(t, 40.0, total, 1e-9)
}

func TestStore_Save_CreatesParentDirectories(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "deep", "nested", "roster.yaml"))

	require.NoError(t, store.Save(roster.New()))

	_, err := os.Stat(store.Path())
	require.NoError(t, err)
}

func TestStore_Save_ReplacesExistingSnapshot(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "roster.yaml"))
	require.NoError(t, store.Save(mkRoster(t)))

	require.NoError(t, store.Save(roster.New()))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.True(t, loaded.Equal(roster.New()))
}

func TestStore_Load_MissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := store.Load()

	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestStore_Load_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte("persons: [unclosed"), 0o644))

	_, err := NewStore(path).Load()

	require.Error(t, err)
}

func TestStore_Load_RejectsInvalidDomainValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	doc := `persons:
  - name: "Alice"
    pay_rate: -5
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := NewStore(path).Load()

	require.ErrorIs(t, err, person.ErrInvalidPayRate)
}

func TestStore_Load_RejectsDuplicateIdentities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	doc := `persons:
  - name: "Alice"
    pay_rate: 20
  - name: "Alice"
    pay_rate: 30
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := NewStore(path).Load()

	require.ErrorIs(t, err, unique.ErrDuplicate)
}

func TestStore_Load_RejectsBadSessionInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	doc := `sessions:
  - name: "Training"
    start: "01-01-2024 12:00"
    end: "01-01-2024 10:00"
    location: "Gym"
    id: 7
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := NewStore(path).Load()

	require.ErrorIs(t, err, session.ErrInvalidSession)
}
