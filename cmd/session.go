package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"rollcall/internal/presentation"
)

var (
	sessionStart string
	sessionEnd   string
	sessionAt    string
	sessionJSON  bool
)

var sessionAddCmd = &cobra.Command{
	Use:   "session:add <name>",
	Short: "Schedule a session",
	Long: `Schedule a session with a start, an end, and a location.

Timestamps use dd-MM-yyyy HH:mm, and the end must be strictly after the
start. Two sessions may share a name as long as they differ in time or
place.

Examples:
  rollcall session:add Training --from "01-02-2024 10:00" --to "01-02-2024 12:00" --at Gym`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return svc.AddSession(args[0], sessionStart, sessionEnd, sessionAt)
	},
}

var sessionListCmd = &cobra.Command{
	Use:   "session:list",
	Short: "List sessions with their attendance",
	RunE: func(cmd *cobra.Command, args []string) error {
		dtos := make([]presentation.SessionDTO, 0)
		for _, sess := range svc.Roster().Sessions() {
			dtos = append(dtos, presentation.FromDomainSession(sess))
		}
		formatter := presentation.NewFormatter(os.Stdout)
		if sessionJSON {
			return formatter.FormatJSON(dtos)
		}
		return formatter.FormatSessions(dtos)
	},
}

var sessionRemoveCmd = &cobra.Command{
	Use:   "session:remove <name>",
	Short: "Remove a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return svc.RemoveSession(args[0])
	},
}

func init() {
	sessionAddCmd.Flags().StringVar(&sessionStart, "from", "", "Start timestamp (dd-MM-yyyy HH:mm)")
	sessionAddCmd.Flags().StringVar(&sessionEnd, "to", "", "End timestamp (dd-MM-yyyy HH:mm)")
	sessionAddCmd.Flags().StringVar(&sessionAt, "at", "", "Location")
	_ = sessionAddCmd.MarkFlagRequired("from")
	_ = sessionAddCmd.MarkFlagRequired("to")
	_ = sessionAddCmd.MarkFlagRequired("at")
	sessionListCmd.Flags().BoolVar(&sessionJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(sessionAddCmd, sessionListCmd, sessionRemoveCmd)
}
