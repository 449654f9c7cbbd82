package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#1a1a8c", Dark: "#8be9fd"})
	nameStyle     = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6b6b6b", Dark: "#999999"})
	tagStyle      = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#006400", Dark: "#50fa7b"})
	presentStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#006400", Dark: "#50fa7b"})
	absentStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff5555"})
	totalPayStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#7a5901", Dark: "#f1fa8c"})
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatJSON writes any DTO as indented JSON
func (f *Formatter) FormatJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatPersons writes a styled person listing
func (f *Formatter) FormatPersons(persons []PersonDTO) error {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Persons (%d)", len(persons))))
	b.WriteByte('\n')
	if len(persons) == 0 {
		b.WriteString(mutedStyle.Render("  no persons registered"))
		b.WriteByte('\n')
	}
	for _, p := range persons {
		b.WriteString("  ")
		b.WriteString(nameStyle.Render(p.Name))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/hr", p.PayRate)))
		for _, label := range p.Tags {
			b.WriteString("  ")
			b.WriteString(tagStyle.Render("[" + label + "]"))
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}

// FormatSessions writes a styled session listing with attendance rows
func (f *Formatter) FormatSessions(sessions []SessionDTO) error {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Sessions (%d)", len(sessions))))
	b.WriteByte('\n')
	if len(sessions) == 0 {
		b.WriteString(mutedStyle.Render("  no sessions scheduled"))
		b.WriteByte('\n')
	}
	for _, sess := range sessions {
		b.WriteString("  ")
		b.WriteString(nameStyle.Render(sess.Name))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  #%d  %s to %s at %s  (%d min)",
			sess.ID, sess.Start, sess.End, sess.Location, sess.Minutes)))
		b.WriteByte('\n')
		for _, row := range sess.Attendance {
			b.WriteString("    ")
			if row.Present {
				b.WriteString(presentStyle.Render("present"))
			} else {
				b.WriteString(absentStyle.Render("absent "))
			}
			b.WriteString("  ")
			b.WriteString(row.Name)
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  %d/hr", row.PayRate)))
			b.WriteByte('\n')
		}
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}

// FormatPayroll writes styled payroll reports with a grand total
func (f *Formatter) FormatPayroll(reports []PayrollDTO) error {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Payroll (%d sessions)", len(reports))))
	b.WriteByte('\n')
	var grand float64
	for _, report := range reports {
		grand += report.TotalPay
		b.WriteString("  ")
		b.WriteString(nameStyle.Render(report.Session))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %s to %s at %s  attendance %s",
			report.Start, report.End, report.Location, report.Attendance)))
		b.WriteString("  ")
		b.WriteString(totalPayStyle.Render(fmt.Sprintf("%.2f", report.TotalPay)))
		b.WriteByte('\n')
	}
	b.WriteString("  ")
	b.WriteString(totalPayStyle.Render(fmt.Sprintf("Total: %.2f", grand)))
	b.WriteByte('\n')
	_, err := io.WriteString(f.writer, b.String())
	return err
}

// FormatEvents writes a styled calendar listing grouped by date
func (f *Formatter) FormatEvents(events []EventDTO) error {
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Calendar (%d events)", len(events))))
	b.WriteByte('\n')
	lastDate := ""
	for _, event := range events {
		if event.Date != lastDate {
			b.WriteString("  ")
			b.WriteString(headerStyle.Render(event.Date))
			b.WriteByte('\n')
			lastDate = event.Date
		}
		b.WriteString("    ")
		b.WriteString(mutedStyle.Render(event.Start + " to " + event.End))
		b.WriteString("  ")
		b.WriteString(nameStyle.Render(event.Title))
		b.WriteString(mutedStyle.Render("  at " + event.Location))
		b.WriteByte('\n')
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}
