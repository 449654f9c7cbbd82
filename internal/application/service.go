// Package application orchestrates the roster, the snapshot store, and
// the payroll cache on behalf of the CLI. Domain errors pass through
// untouched; rendering them is the caller's concern.
package application

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"rollcall/internal/domain/calendar"
	"rollcall/internal/domain/person"
	"rollcall/internal/domain/roster"
	"rollcall/internal/domain/session"
	"rollcall/internal/domain/tag"
	"rollcall/internal/log"
)

// Store captures the snapshot interactions needed by the service.
type Store interface {
	Save(src roster.Viewer) error
	Load() (*roster.Roster, error)
}

// PayrollReport summarizes one session's attendance and pay.
type PayrollReport struct {
	Session    string
	Start      string
	End        string
	Location   string
	Minutes    int
	Attendance string
	TotalPay   float64
}

// Service is the single entry point used by command handlers. The domain
// registry itself is single-threaded; the service's mutex is the one
// synchronization point guarding it, which also covers reloads triggered
// by the snapshot watcher goroutine.
type Service struct {
	mu      sync.Mutex
	roster  *roster.Roster
	store   Store
	payroll *gocache.Cache
}

// NewService creates a service over an empty roster. Payroll reports are
// cached for ttl and dropped on any session mutation.
func NewService(store Store, ttl time.Duration) *Service {
	return &Service{
		roster:  roster.New(),
		store:   store,
		payroll: gocache.New(ttl, 2*ttl),
	}
}

// Load replaces the roster with the stored snapshot. A missing snapshot
// leaves the roster empty; that is the first-run case, not an error.
func (s *Service) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded, err := s.store.Load()
	if errors.Is(err, os.ErrNotExist) {
		log.Info(log.CatStore, "no snapshot yet, starting empty")
		return nil
	}
	if err != nil {
		return err
	}
	s.roster = loaded
	s.payroll.Flush()
	log.Info(log.CatStore, "snapshot loaded", "roster", loaded.String())
	return nil
}

// Reload is Load for watcher-triggered refreshes: it logs instead of
// failing hard, so a half-written external edit cannot take the
// in-memory roster down.
func (s *Service) Reload() {
	if err := s.Load(); err != nil {
		log.ErrorErr(log.CatWatcher, "snapshot reload failed, keeping current roster", err)
	}
}

// Roster returns the underlying registry for read-only use.
func (s *Service) Roster() *roster.Roster {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster
}

// AddPerson creates, validates, and stores a person, registering any new
// tags in the roster's tag list.
func (s *Service) AddPerson(rawName string, rate int, labels []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, err := person.NewName(rawName)
	if err != nil {
		return err
	}
	payRate, err := person.NewPayRate(rate)
	if err != nil {
		return err
	}
	tags := make([]tag.Tag, 0, len(labels))
	for _, label := range labels {
		t, err := tag.New(label)
		if err != nil {
			return err
		}
		tags = append(tags, t)
	}

	p := person.New(name, payRate, tags...)
	if err := s.roster.AddPerson(p); err != nil {
		return err
	}
	for _, t := range p.Tags() {
		if !s.roster.HasTag(t) {
			if err := s.roster.AddTag(t); err != nil {
				return err
			}
		}
	}
	log.Info(log.CatRoster, "person added", "name", rawName, "rate", rate)
	return s.persist()
}

// RemovePerson removes the named person. Session attendance entries
// referencing the name are left in place.
func (s *Service) RemovePerson(rawName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.findPerson(rawName)
	if err != nil {
		return err
	}
	if err := s.roster.RemovePerson(p); err != nil {
		return err
	}
	log.Info(log.CatRoster, "person removed", "name", rawName)
	return s.persist()
}

// AddSession creates, validates, and stores a session.
func (s *Service) AddSession(rawName, start, end, rawLocation string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, err := session.NewName(rawName)
	if err != nil {
		return err
	}
	location, err := session.NewLocation(rawLocation)
	if err != nil {
		return err
	}
	sess, err := session.New(start, end, name, location)
	if err != nil {
		return err
	}
	if err := s.roster.AddSession(sess); err != nil {
		return err
	}
	log.Info(log.CatRoster, "session added", "name", rawName, "start", start)
	return s.persist()
}

// RemoveSession removes the session with the given name.
func (s *Service) RemoveSession(rawName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.findSession(rawName)
	if err != nil {
		return err
	}
	if err := s.roster.RemoveSession(sess); err != nil {
		return err
	}
	s.payroll.Delete(rawName)
	log.Info(log.CatRoster, "session removed", "name", rawName)
	return s.persist()
}

// Enroll adds the named person to the named session, snapshotting the
// person's current pay rate.
func (s *Service) Enroll(personName, sessionName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.findPerson(personName)
	if err != nil {
		return err
	}
	sess, err := s.findSession(sessionName)
	if err != nil {
		return err
	}
	if err := s.roster.AddPersonToSession(p, sess); err != nil {
		return err
	}
	s.payroll.Delete(sessionName)
	log.Info(log.CatRoster, "person enrolled", "person", personName, "session", sessionName)
	return s.persist()
}

// Withdraw removes the named person from the named session.
func (s *Service) Withdraw(personName, sessionName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.findPerson(personName)
	if err != nil {
		return err
	}
	sess, err := s.findSession(sessionName)
	if err != nil {
		return err
	}
	if err := s.roster.RemovePersonFromSession(p, sess); err != nil {
		return err
	}
	s.payroll.Delete(sessionName)
	log.Info(log.CatRoster, "person withdrawn", "person", personName, "session", sessionName)
	return s.persist()
}

// Mark sets the named person's presence flag in the named session.
func (s *Service) Mark(sessionName, personName string, present bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.findSession(sessionName)
	if err != nil {
		return err
	}
	if present {
		err = sess.MarkPresent(personName)
	} else {
		err = sess.MarkAbsent(personName)
	}
	if err != nil {
		return err
	}
	if err := s.roster.SetSession(sess, sess); err != nil {
		return err
	}
	s.payroll.Delete(sessionName)
	log.Info(log.CatRoster, "attendance marked", "person", personName, "session", sessionName, "present", present)
	return s.persist()
}

// SessionPayroll computes the payroll report for the named session.
// Reports are served from cache until the session mutates or the TTL
// expires.
func (s *Service) SessionPayroll(sessionName string) (PayrollReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.payroll.Get(sessionName); ok {
		log.Debug(log.CatCache, "payroll cache hit", "session", sessionName)
		return cached.(PayrollReport), nil
	}

	sess, err := s.findSession(sessionName)
	if err != nil {
		return PayrollReport{}, err
	}
	total, err := sess.TotalPay()
	if err != nil {
		return PayrollReport{}, err
	}
	report := PayrollReport{
		Session:    sess.Name().String(),
		Start:      sess.Start(),
		End:        sess.End(),
		Location:   sess.Location().String(),
		Minutes:    int(sess.Duration().Minutes()),
		Attendance: sess.AttendanceSummary(),
		TotalPay:   total,
	}
	s.payroll.Set(sessionName, report, gocache.DefaultExpiration)
	return report, nil
}

// Payroll computes reports for every session, ordered by start time.
func (s *Service) Payroll() ([]PayrollReport, error) {
	s.mu.Lock()
	sessions := make([]session.Session, len(s.roster.Sessions()))
	copy(sessions, s.roster.Sessions())
	s.mu.Unlock()

	for i := 1; i < len(sessions); i++ {
		for j := i; j > 0 && sessions[j].Before(sessions[j-1]); j-- {
			sessions[j], sessions[j-1] = sessions[j-1], sessions[j]
		}
	}

	reports := make([]PayrollReport, 0, len(sessions))
	for _, sess := range sessions {
		report, err := s.SessionPayroll(sess.Name().String())
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// CalendarEvents builds calendar events for every stored session,
// ordered by start time.
func (s *Service) CalendarEvents() []calendar.Event {
	s.mu.Lock()
	sessions := make([]session.Session, len(s.roster.Sessions()))
	copy(sessions, s.roster.Sessions())
	s.mu.Unlock()

	for i := 1; i < len(sessions); i++ {
		for j := i; j > 0 && sessions[j].Before(sessions[j-1]); j-- {
			sessions[j], sessions[j-1] = sessions[j-1], sessions[j]
		}
	}
	return calendar.Events(sessions)
}

// SortPersons reorders the stored person list by the given field and
// persists the new order.
func (s *Service) SortPersons(field person.Field) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.roster.SortPersons(field)
	log.Info(log.CatRoster, "persons sorted", "field", field.String())
	return s.persist()
}

// Reset clears every person, tag, and session and persists the empty
// roster.
func (s *Service) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.ResetData(roster.New()); err != nil {
		return err
	}
	s.payroll.Flush()
	log.Info(log.CatRoster, "roster cleared")
	return s.persist()
}

// persist writes the current roster through the store.
// Callers must hold the mutex.
func (s *Service) persist() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(s.roster); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	log.Debug(log.CatStore, "snapshot saved", "roster", s.roster.String())
	return nil
}

func (s *Service) findPerson(rawName string) (person.Person, error) {
	for _, p := range s.roster.Persons() {
		if p.Name().String() == rawName {
			return p, nil
		}
	}
	return person.Person{}, &roster.PersonNotFoundError{Name: rawName}
}

func (s *Service) findSession(rawName string) (session.Session, error) {
	name, err := session.NewName(rawName)
	if err != nil {
		return session.Session{}, err
	}
	return s.roster.FindSessionByName(name)
}
