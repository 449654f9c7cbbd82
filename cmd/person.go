package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rollcall/internal/domain/person"
	"rollcall/internal/presentation"
)

var (
	personRate int
	personTags []string
	personJSON bool
	personSort string
)

var personAddCmd = &cobra.Command{
	Use:   "person:add <name>",
	Short: "Register a person",
	Long: `Register a person with an hourly pay rate and optional tags.

Names are unique. Tags not seen before are added to the tag registry.

Examples:
  rollcall person:add "Alice Tan" --rate 20
  rollcall person:add Bob -r 15 -t coach -t senior`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return svc.AddPerson(args[0], personRate, personTags)
	},
}

var personListCmd = &cobra.Command{
	Use:   "person:list",
	Short: "List registered persons",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("sort") {
			var field person.Field
			switch personSort {
			case "name":
				field = person.FieldName
			case "rate":
				field = person.FieldPayRate
			default:
				return fmt.Errorf("unknown sort field %q, expected name or rate", personSort)
			}
			if err := svc.SortPersons(field); err != nil {
				return err
			}
		}
		dtos := make([]presentation.PersonDTO, 0)
		for _, p := range svc.Roster().Persons() {
			dtos = append(dtos, presentation.FromDomainPerson(p))
		}
		formatter := presentation.NewFormatter(os.Stdout)
		if personJSON {
			return formatter.FormatJSON(dtos)
		}
		return formatter.FormatPersons(dtos)
	},
}

var personRemoveCmd = &cobra.Command{
	Use:   "person:remove <name>",
	Short: "Remove a person",
	Long: `Remove a person from the registry.

Attendance already recorded against sessions is kept; sessions hold
their own enrollment snapshot.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return svc.RemovePerson(args[0])
	},
}

func init() {
	personAddCmd.Flags().IntVarP(&personRate, "rate", "r", 0, "Hourly pay rate (whole units, non-negative)")
	personAddCmd.Flags().StringArrayVarP(&personTags, "tag", "t", nil, "Tag label (can be repeated)")
	personListCmd.Flags().BoolVar(&personJSON, "json", false, "Output as JSON")
	personListCmd.Flags().StringVar(&personSort, "sort", "", "Sort the stored list by name or rate before listing")
	rootCmd.AddCommand(personAddCmd, personListCmd, personRemoveCmd)
}
