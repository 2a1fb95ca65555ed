package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/lessonplanner/internal/cli/formatter"
	"github.com/alexanderramin/lessonplanner/internal/contract"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the activity catalog",
	}
	cmd.AddCommand(
		newCatalogImportCmd(app),
		newCatalogListCmd(app),
		newCatalogShowCmd(app),
		newCatalogRemoveCmd(app),
	)
	return cmd
}

func newCatalogImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import activities from a YAML or JSON catalog file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Catalog.ImportFile(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d activities %s\n",
				formatter.StyleGreen.Render("Imported"),
				res.Created+res.Updated,
				formatter.Dim(fmt.Sprintf("(%d new, %d updated)", res.Created, res.Updated)),
			)
			return nil
		},
	}
}

type catalogListFlags struct {
	name           string
	ageMin, ageMax int
	format, bloom  []string
	resources      []string
	topics         []string
	limit, offset  int
	jsonOut        bool
}

func newCatalogListCmd(app *App) *cobra.Command {
	var f catalogListFlags
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List catalog activities",
		Example: `  lessonplanner catalog list --topics algorithms --age-min 8
  lessonplanner catalog list --name binary --limit 10 --offset 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := f.request(cmd)
			page, err := app.Catalog.List(context.Background(), req)
			if err != nil {
				return err
			}
			if f.jsonOut {
				return writeJSON(cmd.OutOrStdout(),
					contract.NewActivityListResponse(page.Activities, page.Total, req.Limit, req.Offset))
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActivityList(page.Activities, page.Total, req.Offset))
			if n := len(page.Skipped); n > 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.StyleYellow.Render(
					fmt.Sprintf("%d stored activities could not be read and were skipped", n)))
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "Only activities whose name contains this text")
	fl.IntVar(&f.ageMin, "age-min", 0, "Only activities whose minimum age is at least this")
	fl.IntVar(&f.ageMax, "age-max", 0, "Only activities whose maximum age is at most this")
	fl.StringSliceVar(&f.format, "format", nil, "Only these formats")
	fl.StringSliceVar(&f.bloom, "bloom", nil, "Only these Bloom levels")
	fl.StringSliceVar(&f.resources, "resources", nil, "Only activities needing any of these resources")
	fl.StringSliceVar(&f.topics, "topics", nil, "Only activities covering any of these topics")
	fl.IntVar(&f.limit, "limit", 0, "Maximum activities to show, 1-100 (default: all)")
	fl.IntVar(&f.offset, "offset", 0, "Number of matching activities to skip")
	fl.BoolVar(&f.jsonOut, "json", false, "Print activities as JSON")
	return cmd
}

func (f *catalogListFlags) request(cmd *cobra.Command) contract.ActivityListRequest {
	req := contract.ActivityListRequest{
		Name:            f.name,
		Format:          f.format,
		BloomLevel:      f.bloom,
		ResourcesNeeded: f.resources,
		Topics:          f.topics,
		Limit:           f.limit,
		Offset:          f.offset,
	}
	if cmd.Flags().Changed("age-min") {
		req.AgeMin = &f.ageMin
	}
	if cmd.Flags().Changed("age-max") {
		req.AgeMax = &f.ageMax
	}
	return req
}

func newCatalogShowCmd(app *App) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.Catalog.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), contract.NewActivity(*a))
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatActivityDetail(a))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the activity as JSON")
	return cmd
}

func newCatalogRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove an activity from the catalog",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Catalog.Remove(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed activity %s\n", args[0])
			return nil
		},
	}
}
