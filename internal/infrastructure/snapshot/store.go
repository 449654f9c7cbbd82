// Package snapshot persists the roster as a flat YAML snapshot file.
// It is the load/save collaborator of the registry: Save reads the
// roster's three read-only views, and Load rebuilds domain values and
// applies them through ResetData so uniqueness is re-validated.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"rollcall/internal/domain/person"
	"rollcall/internal/domain/roster"
	"rollcall/internal/domain/session"
	"rollcall/internal/domain/tag"
)

// personRecord is the on-disk shape of a person.
type personRecord struct {
	Name    string   `yaml:"name"`
	PayRate int      `yaml:"pay_rate"`
	Tags    []string `yaml:"tags,omitempty"`
}

// attendanceRecord is one attendee's presence flag.
type attendanceRecord struct {
	Name    string `yaml:"name"`
	Present bool   `yaml:"present"`
}

// payRateRecord is one attendee's pay-rate snapshot.
type payRateRecord struct {
	Name string `yaml:"name"`
	Rate int    `yaml:"rate"`
}

// sessionRecord is the on-disk shape of a session.
type sessionRecord struct {
	Name       string             `yaml:"name"`
	Start      string             `yaml:"start"`
	End        string             `yaml:"end"`
	Location   string             `yaml:"location"`
	ID         int                `yaml:"id"`
	Attendance []attendanceRecord `yaml:"attendance,omitempty"`
	PayRates   []payRateRecord    `yaml:"pay_rates,omitempty"`
}

// snapshotFile is the full on-disk document.
type snapshotFile struct {
	SnapshotID string          `yaml:"snapshot_id"`
	SavedAt    time.Time       `yaml:"saved_at"`
	Persons    []personRecord  `yaml:"persons"`
	Tags       []string        `yaml:"tags"`
	Sessions   []sessionRecord `yaml:"sessions"`
}

// Store reads and writes roster snapshots at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store for the snapshot file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Save writes src's three views to the snapshot file. The write is
// atomic: a temp file in the same directory is renamed over the target.
func (s *Store) Save(src roster.Viewer) error {
	doc := snapshotFile{
		SnapshotID: uuid.NewString(),
		SavedAt:    time.Now().UTC(),
		Persons:    make([]personRecord, 0, len(src.Persons())),
		Tags:       make([]string, 0, len(src.Tags())),
		Sessions:   make([]sessionRecord, 0, len(src.Sessions())),
	}

	for _, p := range src.Persons() {
		record := personRecord{Name: p.Name().String(), PayRate: p.PayRate().Int()}
		for _, t := range p.Tags() {
			record.Tags = append(record.Tags, t.Label())
		}
		doc.Persons = append(doc.Persons, record)
	}
	for _, t := range src.Tags() {
		doc.Tags = append(doc.Tags, t.Label())
	}
	for _, sess := range src.Sessions() {
		record := sessionRecord{
			Name:     sess.Name().String(),
			Start:    sess.Start(),
			End:      sess.End(),
			Location: sess.Location().String(),
			ID:       sess.ID(),
		}
		for _, entry := range sess.AttendanceEntries() {
			record.Attendance = append(record.Attendance, attendanceRecord{Name: entry.Name, Present: entry.Present})
		}
		for _, entry := range sess.PayRateEntries() {
			record.PayRates = append(record.PayRates, payRateRecord{Name: entry.Name, Rate: entry.PayRate.Int()})
		}
		doc.Sessions = append(doc.Sessions, record)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating snapshot directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".roster-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp snapshot: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot file and rebuilds a roster from it.
// Returns an error satisfying errors.Is(err, os.ErrNotExist) when no
// snapshot has been written yet; callers typically start empty then.
func (s *Store) Load() (*roster.Roster, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var doc snapshotFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	loaded, err := toDomain(doc)
	if err != nil {
		return nil, fmt.Errorf("decoding snapshot %s: %w", s.path, err)
	}
	return loaded, nil
}

// toDomain rebuilds validated domain values from a decoded document.
func toDomain(doc snapshotFile) (*roster.Roster, error) {
	persons := make([]person.Person, 0, len(doc.Persons))
	for _, record := range doc.Persons {
		name, err := person.NewName(record.Name)
		if err != nil {
			return nil, err
		}
		rate, err := person.NewPayRate(record.PayRate)
		if err != nil {
			return nil, err
		}
		tags := make([]tag.Tag, 0, len(record.Tags))
		for _, label := range record.Tags {
			t, err := tag.New(label)
			if err != nil {
				return nil, err
			}
			tags = append(tags, t)
		}
		persons = append(persons, person.New(name, rate, tags...))
	}

	tags := make([]tag.Tag, 0, len(doc.Tags))
	for _, label := range doc.Tags {
		t, err := tag.New(label)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}

	sessions := make([]session.Session, 0, len(doc.Sessions))
	for _, record := range doc.Sessions {
		name, err := session.NewName(record.Name)
		if err != nil {
			return nil, err
		}
		location, err := session.NewLocation(record.Location)
		if err != nil {
			return nil, err
		}
		attendance := make([]session.AttendanceEntry, 0, len(record.Attendance))
		for _, entry := range record.Attendance {
			attendance = append(attendance, session.AttendanceEntry{Name: entry.Name, Present: entry.Present})
		}
		payRates := make([]session.PayRateEntry, 0, len(record.PayRates))
		for _, entry := range record.PayRates {
			rate, err := person.NewPayRate(entry.Rate)
			if err != nil {
				return nil, err
			}
			payRates = append(payRates, session.PayRateEntry{Name: entry.Name, PayRate: rate})
		}
		sess, err := session.Reconstitute(record.Start, record.End, name, location, record.ID, attendance, payRates)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	return roster.NewFrom(loadedView{persons: persons, tags: tags, sessions: sessions})
}

// loadedView adapts decoded slices to the roster.Viewer interface so
// NewFrom re-validates uniqueness.
type loadedView struct {
	persons  []person.Person
	tags     []tag.Tag
	sessions []session.Session
}

func (v loadedView) Persons() []person.Person    { return v.persons }
func (v loadedView) Tags() []tag.Tag             { return v.tags }
func (v loadedView) Sessions() []session.Session { return v.sessions }
