package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/lessonplanner/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRunsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect recorded recommendation runs",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := app.Runs.List(context.Background(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRunList(runs))
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "Number of runs to show")

	var jsonOut bool
	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Re-display the response of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Runs.Response(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecommendResponse(resp))
			return nil
		},
	}
	show.Flags().BoolVar(&jsonOut, "json", false, "Print the stored response as JSON")

	cmd.AddCommand(list, show)
	return cmd
}
