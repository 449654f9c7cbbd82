package cmd

import (
	"github.com/spf13/cobra"
)

var markAbsent bool

var enrollCmd = &cobra.Command{
	Use:   "enroll <person> <session>",
	Short: "Enroll a person in a session",
	Long: `Enroll a person in a session.

The person's current pay rate is captured into the session at this
point; later rate changes do not affect this session's payroll. The
person starts out marked absent.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return svc.Enroll(args[0], args[1])
	},
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw <person> <session>",
	Short: "Withdraw a person from a session",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return svc.Withdraw(args[0], args[1])
	},
}

var markCmd = &cobra.Command{
	Use:   "mark <session> <person>",
	Short: "Mark a person present or absent in a session",
	Long: `Mark a person present in a session, or absent with --absent.

Marking requires a prior enrollment; it never creates one.

Examples:
  rollcall mark Training Alice
  rollcall mark Training Bob --absent`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return svc.Mark(args[0], args[1], !markAbsent)
	},
}

func init() {
	markCmd.Flags().BoolVar(&markAbsent, "absent", false, "Mark absent instead of present")
	rootCmd.AddCommand(enrollCmd, withdrawCmd, markCmd)
}
