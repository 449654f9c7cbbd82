// Package roster provides the top-level in-memory registry of persons,
// tags, and sessions, and mediates the cross-entity operations between
// them.
package roster

import (
	"fmt"

	"rollcall/internal/domain/person"
	"rollcall/internal/domain/session"
	"rollcall/internal/domain/tag"
	"rollcall/internal/domain/unique"
)

// SessionNotFoundError indicates a session-membership operation named a
// session that is not in the roster.
type SessionNotFoundError struct {
	Name string
}

func (e *SessionNotFoundError) Error() string {
	if e.Name == "" {
		return "session not found"
	}
	return fmt.Sprintf("session %s not found", e.Name)
}

// PersonNotFoundError indicates a session-membership operation named a
// person that is not enrolled in the target session.
type PersonNotFoundError struct {
	Name string
}

func (e *PersonNotFoundError) Error() string {
	if e.Name == "" {
		return "person not found"
	}
	return fmt.Sprintf("person %s not found", e.Name)
}

// Viewer exposes read-only ordered views of a roster's three collections.
// The roster itself implements it; the snapshot store reads the same
// views on save and supplies them on load.
type Viewer interface {
	Persons() []person.Person
	Tags() []tag.Tag
	Sessions() []session.Session
}

// Roster is the single source of truth for persons, tags, and sessions.
// It owns one identity-unique list per kind. Sessions are treated as
// immutable-by-replacement: every attendance mutation is followed by a
// replace-by-identity back into the session list.
//
// A Roster is not safe for concurrent use; callers sharing one across
// goroutines must add their own synchronization.
type Roster struct {
	persons  *unique.List[person.Person]
	tags     *unique.List[tag.Tag]
	sessions *unique.List[session.Session]
}

// New creates an empty roster.
func New() *Roster {
	return &Roster{
		persons:  unique.NewList[person.Person]("person"),
		tags:     unique.NewList[tag.Tag]("tag"),
		sessions: unique.NewList[session.Session]("session"),
	}
}

// NewFrom creates a roster holding copies of src's three collections.
// Returns an error if any of src's collections contain identity duplicates.
func NewFrom(src Viewer) (*Roster, error) {
	r := New()
	if err := r.ResetData(src); err != nil {
		return nil, err
	}
	return r, nil
}

// Persons returns the persons in insertion order.
// The returned slice is a read-only view; callers must not mutate it.
func (r *Roster) Persons() []person.Person {
	return r.persons.Elements()
}

// Tags returns the tags in insertion order.
// The returned slice is a read-only view; callers must not mutate it.
func (r *Roster) Tags() []tag.Tag {
	return r.tags.Elements()
}

// Sessions returns the sessions in insertion order.
// The returned slice is a read-only view; callers must not mutate it.
func (r *Roster) Sessions() []session.Session {
	return r.sessions.Elements()
}

// HasPerson reports whether a person with p's identity is in the roster.
func (r *Roster) HasPerson(p person.Person) bool {
	return r.persons.Contains(p)
}

// HasTag reports whether a tag with t's identity is in the roster.
func (r *Roster) HasTag(t tag.Tag) bool {
	return r.tags.Contains(t)
}

// HasSession reports whether a session with s's identity is in the roster.
func (r *Roster) HasSession(s session.Session) bool {
	return r.sessions.Contains(s)
}

// AddPerson adds p to the roster.
// Returns unique.ErrDuplicate if a person with the same name exists.
func (r *Roster) AddPerson(p person.Person) error {
	return r.persons.Add(p)
}

// AddTag adds t to the roster.
// Returns unique.ErrDuplicate if the tag already exists.
func (r *Roster) AddTag(t tag.Tag) error {
	return r.tags.Add(t)
}

// AddAllTags adds each tag in tags to the roster, stopping at the first
// duplicate.
func (r *Roster) AddAllTags(tags []tag.Tag) error {
	for _, t := range tags {
		if err := r.tags.Add(t); err != nil {
			return err
		}
	}
	return nil
}

// AddSession adds s to the roster.
// Returns unique.ErrDuplicate if a session with the same identity exists.
func (r *Roster) AddSession(s session.Session) error {
	return r.sessions.Add(s)
}

// SetPerson replaces target with edited, preserving target's position.
func (r *Roster) SetPerson(target, edited person.Person) error {
	return r.persons.Set(target, edited)
}

// SetSession replaces target with edited, preserving target's position.
func (r *Roster) SetSession(target, edited session.Session) error {
	return r.sessions.Set(target, edited)
}

// RemovePerson removes p from the roster.
// Removing a person does not touch session attendance entries carrying
// the person's name; callers wanting that consistency must withdraw the
// person from each session themselves.
func (r *Roster) RemovePerson(p person.Person) error {
	return r.persons.Remove(p)
}

// RemoveSession removes s from the roster.
func (r *Roster) RemoveSession(s session.Session) error {
	return r.sessions.Remove(s)
}

// AddPersonToSession enrolls p in sess, snapshotting p's current pay
// rate, and re-stores the session. Enrolling an already-enrolled person
// overwrites the entry without error.
// Returns SessionNotFoundError if sess is not in the roster.
func (r *Roster) AddPersonToSession(p person.Person, sess session.Session) error {
	if !r.sessions.Contains(sess) {
		return &SessionNotFoundError{Name: sess.Name().String()}
	}
	updated := sess
	updated.Enroll(p)
	return r.sessions.Set(sess, updated)
}

// RemovePersonFromSession withdraws p from sess and re-stores the session.
// Returns SessionNotFoundError if sess is not in the roster, and
// PersonNotFoundError if p is not enrolled in sess.
func (r *Roster) RemovePersonFromSession(p person.Person, sess session.Session) error {
	if !r.sessions.Contains(sess) {
		return &SessionNotFoundError{Name: sess.Name().String()}
	}
	name := p.Name().String()
	if !sess.IsEnrolled(name) {
		return &PersonNotFoundError{Name: name}
	}
	updated := sess
	updated.Withdraw(name)
	return r.sessions.Set(sess, updated)
}

// FindSessionByName returns the first session whose name matches exactly.
// Returns SessionNotFoundError if none match.
func (r *Roster) FindSessionByName(name session.Name) (session.Session, error) {
	for _, sess := range r.sessions.Elements() {
		if sess.Name() == name {
			return sess, nil
		}
	}
	return session.Session{}, &SessionNotFoundError{Name: name.String()}
}

// HasSessionName reports whether any session's name matches exactly.
func (r *Roster) HasSessionName(name session.Name) bool {
	for _, sess := range r.sessions.Elements() {
		if sess.Name() == name {
			return true
		}
	}
	return false
}

// PayRateFor returns the hourly rate of the person with the given name,
// or -1 if no person matches. The -1 sentinel is the not-found channel;
// callers must check it.
func (r *Roster) PayRateFor(name string) int {
	for _, p := range r.persons.Elements() {
		if p.Name().String() == name {
			return p.PayRate().Int()
		}
	}
	return -1
}

// SortPersons reorders the person list in place by the given field.
func (r *Roster) SortPersons(field person.Field) {
	r.persons.Sort(func(a, b person.Person) bool {
		return a.Less(b, field)
	})
}

// SetPersons replaces the person list. persons must not contain
// identity duplicates.
func (r *Roster) SetPersons(persons []person.Person) error {
	return r.persons.ReplaceAll(persons)
}

// SetTags replaces the tag list. tags must not contain identity duplicates.
func (r *Roster) SetTags(tags []tag.Tag) error {
	return r.tags.ReplaceAll(tags)
}

// SetSessions replaces the session list. sessions must not contain
// identity duplicates.
func (r *Roster) SetSessions(sessions []session.Session) error {
	return r.sessions.ReplaceAll(sessions)
}

// ResetData overwrites all three collections from src. Each incoming
// list is checked for identity duplicates before being applied; the
// roster is left unchanged if any check fails.
func (r *Roster) ResetData(src Viewer) error {
	staged := New()
	if err := staged.SetPersons(src.Persons()); err != nil {
		return err
	}
	if err := staged.SetTags(src.Tags()); err != nil {
		return err
	}
	if err := staged.SetSessions(src.Sessions()); err != nil {
		return err
	}
	r.persons = staged.persons
	r.tags = staged.tags
	r.sessions = staged.sessions
	return nil
}

// Equal reports whether both rosters hold equal persons, equal tags, and
// equal sessions, by value.
func (r *Roster) Equal(other *Roster) bool {
	if other == nil {
		return false
	}
	personsEqual := r.persons.Equal(other.persons)
	tagsEqual := r.tags.Equal(other.tags)
	sessionsEqual := r.sessions.Equal(other.sessions)
	return personsEqual && tagsEqual && sessionsEqual
}

func (r *Roster) String() string {
	return fmt.Sprintf("%d persons, %d tags, %d sessions",
		r.persons.Len(), r.tags.Len(), r.sessions.Len())
}
