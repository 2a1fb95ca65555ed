package cli

import (
	"fmt"

	"github.com/alexanderramin/lessonplanner/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newMetaCmd(app *App) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Describe accepted field values and the scoring model",
	}
	cmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Print as JSON")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "fields",
			Short: "List accepted values for every enumerated field",
			RunE: func(cmd *cobra.Command, args []string) error {
				fv := app.Meta.FieldValues()
				if jsonOut {
					return writeJSON(cmd.OutOrStdout(), fv)
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFieldValues(fv))
				return nil
			},
		},
		&cobra.Command{
			Use:   "scoring",
			Short: "Show scoring categories, weights and engine tunables",
			RunE: func(cmd *cobra.Command, args []string) error {
				si := app.Meta.ScoringInsights()
				if jsonOut {
					return writeJSON(cmd.OutOrStdout(), si)
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatScoringInsights(si))
				return nil
			},
		},
	)
	return cmd
}
