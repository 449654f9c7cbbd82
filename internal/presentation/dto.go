package presentation

import (
	"rollcall/internal/application"
	"rollcall/internal/domain/calendar"
	"rollcall/internal/domain/person"
	"rollcall/internal/domain/roster"
	"rollcall/internal/domain/session"
)

// PersonDTO represents a registered person for presentation
type PersonDTO struct {
	Name    string   `json:"name"`
	PayRate int      `json:"pay_rate"`
	Tags    []string `json:"tags"`
}

// SessionDTO represents a session with its attendance state
type SessionDTO struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	Location   string          `json:"location"`
	Start      string          `json:"start"`
	End        string          `json:"end"`
	Minutes    int             `json:"minutes"`
	Attendance []AttendanceDTO `json:"attendance"`
}

// AttendanceDTO represents one enrollment row within a session
type AttendanceDTO struct {
	Name    string `json:"name"`
	PayRate int    `json:"pay_rate"`
	Present bool   `json:"present"`
}

// PayrollDTO represents a computed session payroll report
type PayrollDTO struct {
	Session    string  `json:"session"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Location   string  `json:"location"`
	Minutes    int     `json:"minutes"`
	Attendance string  `json:"attendance"`
	TotalPay   float64 `json:"total_pay"`
}

// EventDTO represents a calendar entry derived from a session
type EventDTO struct {
	Title    string `json:"title"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

// RosterDTO represents the whole registry for export
type RosterDTO struct {
	Persons  []PersonDTO  `json:"persons"`
	Tags     []string     `json:"tags"`
	Sessions []SessionDTO `json:"sessions"`
}

// FromDomainPerson converts a domain person to a DTO.
func FromDomainPerson(p person.Person) PersonDTO {
	tags := make([]string, len(p.Tags()))
	for i, t := range p.Tags() {
		tags[i] = t.Label()
	}
	return PersonDTO{
		Name:    p.Name().String(),
		PayRate: p.PayRate().Int(),
		Tags:    tags,
	}
}

// FromDomainSession converts a domain session to a DTO. Pay rates come
// from the session's own enrollment snapshot, not the live person
// records.
func FromDomainSession(sess session.Session) SessionDTO {
	entries := sess.AttendanceEntries()
	attendance := make([]AttendanceDTO, len(entries))
	for i, entry := range entries {
		rate := -1
		for _, pr := range sess.PayRateEntries() {
			if pr.Name == entry.Name {
				rate = pr.PayRate.Int()
				break
			}
		}
		attendance[i] = AttendanceDTO{
			Name:    entry.Name,
			PayRate: rate,
			Present: entry.Present,
		}
	}
	return SessionDTO{
		ID:         sess.ID(),
		Name:       sess.Name().String(),
		Location:   sess.Location().String(),
		Start:      sess.Start(),
		End:        sess.End(),
		Minutes:    int(sess.Duration().Minutes()),
		Attendance: attendance,
	}
}

// FromDomainRoster converts the full registry to an export DTO.
func FromDomainRoster(src roster.Viewer) RosterDTO {
	persons := make([]PersonDTO, len(src.Persons()))
	for i, p := range src.Persons() {
		persons[i] = FromDomainPerson(p)
	}
	tags := make([]string, len(src.Tags()))
	for i, t := range src.Tags() {
		tags[i] = t.Label()
	}
	sessions := make([]SessionDTO, len(src.Sessions()))
	for i, sess := range src.Sessions() {
		sessions[i] = FromDomainSession(sess)
	}
	return RosterDTO{
		Persons:  persons,
		Tags:     tags,
		Sessions: sessions,
	}
}

// FromPayrollReport converts an application payroll report to a DTO.
func FromPayrollReport(report application.PayrollReport) PayrollDTO {
	return PayrollDTO{
		Session:    report.Session,
		Start:      report.Start,
		End:        report.End,
		Location:   report.Location,
		Minutes:    report.Minutes,
		Attendance: report.Attendance,
		TotalPay:   report.TotalPay,
	}
}

// FromPayrollReports converts a slice of payroll reports to DTOs.
func FromPayrollReports(reports []application.PayrollReport) []PayrollDTO {
	dtos := make([]PayrollDTO, len(reports))
	for i, report := range reports {
		dtos[i] = FromPayrollReport(report)
	}
	return dtos
}

// FromCalendarEvent converts a calendar event to a DTO.
func FromCalendarEvent(event calendar.Event) EventDTO {
	return EventDTO{
		Title:    event.Title,
		Location: event.Location,
		Date:     event.Start.Format(session.DateLayout),
		Start:    event.Start.Format(session.ClockLayout),
		End:      event.End.Format(session.ClockLayout),
	}
}

// FromCalendarEvents converts a slice of calendar events to DTOs.
func FromCalendarEvents(events []calendar.Event) []EventDTO {
	dtos := make([]EventDTO, len(events))
	for i, event := range events {
		dtos[i] = FromCalendarEvent(event)
	}
	return dtos
}
