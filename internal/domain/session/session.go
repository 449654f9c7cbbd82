// Package session provides the Session entity: an immutable schedule
// identity (name, start, end, location) with mutable attendance and
// pay-rate snapshot maps keyed by attendee name.
package session

import (
	"errors"
	"fmt"
	"hash/fnv"
	"regexp"
	"sort"
	"strings"
	"time"

	"rollcall/internal/domain/person"
)

// TimeLayout is the fixed wire format for session timestamps,
// dd-MM-yyyy HH:mm, e.g. "01-03-2024 14:30".
const TimeLayout = "02-01-2006 15:04"

// DateLayout is the date-only portion of TimeLayout.
const DateLayout = "02-01-2006"

// ClockLayout is the time-of-day portion of TimeLayout.
const ClockLayout = "15:04"

// Construction errors
var (
	// ErrTimestampFormat is returned when a timestamp does not match TimeLayout.
	ErrTimestampFormat = errors.New("timestamp must be in the format dd-MM-yyyy HH:mm")
	// ErrInvalidSession is returned when start is not strictly before end,
	// or when the name or location fails validation.
	ErrInvalidSession = errors.New("session start must be before end")
	// ErrInvalidName is returned when a session name fails format validation.
	ErrInvalidName = errors.New("session name must start with an alphanumeric character and contain only alphanumerics and spaces")
	// ErrInvalidLocation is returned when a location is blank.
	ErrInvalidLocation = errors.New("location must not be blank")
)

// NotEnrolledError indicates an attendance operation on a name that was
// never enrolled in the session.
type NotEnrolledError struct {
	Name    string
	Session string
}

func (e *NotEnrolledError) Error() string {
	return fmt.Sprintf("%s is not enrolled in session %s", e.Name, e.Session)
}

// MissingPayRateError indicates payroll was computed for a present
// attendee with no recorded pay-rate snapshot. This can only arise from
// reconstituting a session whose entries are inconsistent.
type MissingPayRateError struct {
	Name    string
	Session string
}

func (e *MissingPayRateError) Error() string {
	return fmt.Sprintf("no pay rate recorded for %s in session %s", e.Name, e.Session)
}

var namePattern = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)

// Name is a validated session name.
type Name string

// NewName creates a Name from raw.
// Returns ErrInvalidName if raw does not match the name format.
func NewName(raw string) (Name, error) {
	if !namePattern.MatchString(raw) {
		return "", fmt.Errorf("%q: %w", raw, ErrInvalidName)
	}
	return Name(raw), nil
}

func (n Name) String() string {
	return string(n)
}

// Location is a validated session location. Any non-blank string is allowed.
type Location string

// NewLocation creates a Location from raw.
// Returns ErrInvalidLocation if raw is blank.
func NewLocation(raw string) (Location, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrInvalidLocation
	}
	return Location(raw), nil
}

func (l Location) String() string {
	return string(l)
}

// AttendanceEntry is one attendee's presence record, used when
// reconstituting a session from a snapshot.
type AttendanceEntry struct {
	Name    string
	Present bool
}

// PayRateEntry is one attendee's pay-rate snapshot, used when
// reconstituting a session from a snapshot.
type PayRateEntry struct {
	Name    string
	PayRate person.PayRate
}

// Session represents a scheduled session. The four identity fields
// (name, start, end, location) never change after construction; the
// attendance and pay-rate maps are mutated in place by Enroll, Withdraw,
// MarkPresent, and MarkAbsent. Holders of the same Session value share
// the underlying maps, so the roster re-stores sessions by replacement
// after every mutation.
type Session struct {
	start    string
	end      string
	name     Name
	location Location
	id       int

	startTime time.Time
	endTime   time.Time

	attendance map[string]bool
	payRates   map[string]person.PayRate
}

// New creates a Session whose id is derived from an FNV-1a hash of the
// name. The id is a display token only; two sessions sharing a name share
// an id.
// Returns ErrTimestampFormat if either timestamp does not match
// TimeLayout, and ErrInvalidSession if start is not strictly before end.
func New(start, end string, name Name, location Location) (Session, error) {
	return NewWithID(start, end, name, location, deriveID(name))
}

// NewWithID creates a Session with an explicit id.
func NewWithID(start, end string, name Name, location Location, id int) (Session, error) {
	return Reconstitute(start, end, name, location, id, nil, nil)
}

// Reconstitute creates a Session from previously captured state,
// typically when hydrating from a snapshot. Attendance and pay-rate
// entries are applied as given; later entries for the same name win.
func Reconstitute(start, end string, name Name, location Location, id int,
	attendance []AttendanceEntry, payRates []PayRateEntry) (Session, error) {
	startTime, err := time.Parse(TimeLayout, start)
	if err != nil {
		return Session{}, fmt.Errorf("start %q: %w", start, ErrTimestampFormat)
	}
	endTime, err := time.Parse(TimeLayout, end)
	if err != nil {
		return Session{}, fmt.Errorf("end %q: %w", end, ErrTimestampFormat)
	}
	if !startTime.Before(endTime) {
		return Session{}, fmt.Errorf("%s >= %s: %w", start, end, ErrInvalidSession)
	}
	if !namePattern.MatchString(name.String()) {
		return Session{}, fmt.Errorf("name %q: %w", name, ErrInvalidSession)
	}
	if strings.TrimSpace(location.String()) == "" {
		return Session{}, fmt.Errorf("blank location: %w", ErrInvalidSession)
	}

	s := Session{
		start:      start,
		end:        end,
		name:       name,
		location:   location,
		id:         id,
		startTime:  startTime,
		endTime:    endTime,
		attendance: make(map[string]bool, len(attendance)),
		payRates:   make(map[string]person.PayRate, len(payRates)),
	}
	for _, entry := range attendance {
		s.attendance[entry.Name] = entry.Present
	}
	for _, entry := range payRates {
		s.payRates[entry.Name] = entry.PayRate
	}
	return s, nil
}

// Start returns the raw start timestamp in TimeLayout.
func (s Session) Start() string {
	return s.start
}

// End returns the raw end timestamp in TimeLayout.
func (s Session) End() string {
	return s.end
}

// StartTime returns the parsed start timestamp.
func (s Session) StartTime() time.Time {
	return s.startTime
}

// EndTime returns the parsed end timestamp.
func (s Session) EndTime() time.Time {
	return s.endTime
}

// Name returns the session name.
func (s Session) Name() Name {
	return s.name
}

// Location returns the session location.
func (s Session) Location() Location {
	return s.location
}

// ID returns the session's display id.
func (s Session) ID() int {
	return s.id
}

// Enroll records p in the attendance map as absent and snapshots p's
// current pay rate. Enrolling an already-enrolled person overwrites the
// entry with the same values; the roster layer enforces any stricter
// already-enrolled semantics.
func (s Session) Enroll(p person.Person) {
	name := p.Name().String()
	s.attendance[name] = false
	s.payRates[name] = p.PayRate()
}

// Withdraw removes name from both the attendance and pay-rate maps.
// Withdrawing a name that is not enrolled is a no-op.
func (s Session) Withdraw(name string) {
	delete(s.attendance, name)
	delete(s.payRates, name)
}

// MarkPresent marks an enrolled attendee as present.
// Returns NotEnrolledError if name is not enrolled.
func (s Session) MarkPresent(name string) error {
	return s.mark(name, true)
}

// MarkAbsent marks an enrolled attendee as absent.
// Returns NotEnrolledError if name is not enrolled.
func (s Session) MarkAbsent(name string) error {
	return s.mark(name, false)
}

func (s Session) mark(name string, present bool) error {
	if _, ok := s.attendance[name]; !ok {
		return &NotEnrolledError{Name: name, Session: s.name.String()}
	}
	s.attendance[name] = present
	return nil
}

// IsEnrolled reports whether name is enrolled in the session.
func (s Session) IsEnrolled(name string) bool {
	_, ok := s.attendance[name]
	return ok
}

// Duration returns the span between start and end.
func (s Session) Duration() time.Duration {
	return s.endTime.Sub(s.startTime)
}

// TotalPay sums, over every attendee marked present, that attendee's
// snapshotted hourly rate divided by 60 and multiplied by the session
// duration in minutes.
// Returns MissingPayRateError if a present attendee has no snapshot.
func (s Session) TotalPay() (float64, error) {
	minutes := s.Duration().Minutes()
	total := 0.0
	for name, present := range s.attendance {
		if !present {
			continue
		}
		rate, ok := s.payRates[name]
		if !ok {
			return 0, &MissingPayRateError{Name: name, Session: s.name.String()}
		}
		total += float64(rate.Int()) / 60 * minutes
	}
	return total, nil
}

// AttendanceSummary returns "present/total" over the attendance map.
func (s Session) AttendanceSummary() string {
	present := 0
	for _, p := range s.attendance {
		if p {
			present++
		}
	}
	return fmt.Sprintf("%d/%d", present, len(s.attendance))
}

// AttendanceEntries returns the attendance map as entries sorted by name.
func (s Session) AttendanceEntries() []AttendanceEntry {
	entries := make([]AttendanceEntry, 0, len(s.attendance))
	for name, present := range s.attendance {
		entries = append(entries, AttendanceEntry{Name: name, Present: present})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// PayRateEntries returns the pay-rate snapshots as entries sorted by name.
func (s Session) PayRateEntries() []PayRateEntry {
	entries := make([]PayRateEntry, 0, len(s.payRates))
	for name, rate := range s.payRates {
		entries = append(entries, PayRateEntry{Name: name, PayRate: rate})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

// Attendees returns a listing of attendees and their presence flags,
// e.g. "alice: 1, bob: 0", sorted by name.
func (s Session) Attendees() string {
	entries := s.AttendanceEntries()
	parts := make([]string, len(entries))
	for i, entry := range entries {
		flag := "0"
		if entry.Present {
			flag = "1"
		}
		parts[i] = entry.Name + ": " + flag
	}
	return strings.Join(parts, ", ")
}

// Before reports whether s starts strictly before other.
// Sessions order by start time only.
func (s Session) Before(other Session) bool {
	return s.startTime.Before(other.startTime)
}

// Copy returns a deep copy of the session: same identity fields and id,
// with attendance and pay-rate maps that no longer alias the original.
func (s Session) Copy() Session {
	copied, err := Reconstitute(s.start, s.end, s.name, s.location, s.id,
		s.AttendanceEntries(), s.PayRateEntries())
	if err != nil {
		// s was validated at construction, so re-validation cannot fail.
		panic(err)
	}
	return copied
}

// SameAs reports whether both sessions share the identity tuple
// (name, start, end, location).
func (s Session) SameAs(other Session) bool {
	return s.start == other.start &&
		s.end == other.end &&
		s.name == other.name &&
		s.location == other.location
}

// Equal reports whether both sessions match in identity and in their
// attendance and pay-rate entries.
func (s Session) Equal(other Session) bool {
	if !s.SameAs(other) || s.id != other.id {
		return false
	}
	if len(s.attendance) != len(other.attendance) || len(s.payRates) != len(other.payRates) {
		return false
	}
	for name, present := range s.attendance {
		otherPresent, ok := other.attendance[name]
		if !ok || present != otherPresent {
			return false
		}
	}
	for name, rate := range s.payRates {
		otherRate, ok := other.payRates[name]
		if !ok || rate != otherRate {
			return false
		}
	}
	return true
}

// Date returns the start date in DateLayout.
func (s Session) Date() string {
	return s.startTime.Format(DateLayout)
}

// Day returns the start day of month.
func (s Session) Day() int {
	return s.startTime.Day()
}

// Month returns the start month.
func (s Session) Month() int {
	return int(s.startTime.Month())
}

// Year returns the start year.
func (s Session) Year() int {
	return s.startTime.Year()
}

// Clock returns the start time of day in ClockLayout.
func (s Session) Clock() string {
	return s.startTime.Format(ClockLayout)
}

// CommandString renders the session in its raw-timestamp command form:
// "<name>: from <rawStart> to <rawEnd> | at <location>".
func (s Session) CommandString() string {
	return fmt.Sprintf("%s: from %s to %s | at %s", s.name, s.start, s.end, s.location)
}

// DisplayString renders the session for listings:
// "<name>: <start> to <end> at <location>".
func (s Session) DisplayString() string {
	return fmt.Sprintf("%s: %s to %s at %s",
		s.name, s.startTime.Format(TimeLayout), s.endTime.Format(TimeLayout), s.location)
}

func (s Session) String() string {
	return fmt.Sprintf(" Session name: %s\n Start: %s\n End: %s\n Location: %s\n Attendees: %s",
		s.name, s.startTime.Format(TimeLayout), s.endTime.Format(TimeLayout), s.location, s.Attendees())
}

func deriveID(name Name) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return int(int32(h.Sum32()))
}
