package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"rollcall/internal/application"
	"rollcall/internal/presentation"
)

var (
	payrollJSON  bool
	calendarJSON bool
)

var payrollCmd = &cobra.Command{
	Use:   "payroll [session]",
	Short: "Compute session payroll",
	Long: `Compute payroll for one session, or for all sessions ordered by
start time.

Pay per present attendee is the enrollment-time hourly rate divided by
60 and multiplied by the session length in minutes. Absent attendees
contribute nothing.

Examples:
  rollcall payroll
  rollcall payroll Training
  rollcall payroll --json | jq '.[].total_pay'`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var reports []application.PayrollReport
		if len(args) == 1 {
			report, err := svc.SessionPayroll(args[0])
			if err != nil {
				return err
			}
			reports = []application.PayrollReport{report}
		} else {
			var err error
			reports, err = svc.Payroll()
			if err != nil {
				return err
			}
		}

		formatter := presentation.NewFormatter(os.Stdout)
		dtos := presentation.FromPayrollReports(reports)
		if payrollJSON {
			return formatter.FormatJSON(dtos)
		}
		return formatter.FormatPayroll(dtos)
	},
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "List sessions as calendar events",
	RunE: func(cmd *cobra.Command, args []string) error {
		formatter := presentation.NewFormatter(os.Stdout)
		dtos := presentation.FromCalendarEvents(svc.CalendarEvents())
		if calendarJSON {
			return formatter.FormatJSON(dtos)
		}
		return formatter.FormatEvents(dtos)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the whole registry as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		formatter := presentation.NewFormatter(os.Stdout)
		return formatter.FormatJSON(presentation.FromDomainRoster(svc.Roster()))
	},
}

func init() {
	payrollCmd.Flags().BoolVar(&payrollJSON, "json", false, "Output as JSON")
	calendarCmd.Flags().BoolVar(&calendarJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(payrollCmd, calendarCmd, exportCmd)
}
