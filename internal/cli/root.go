package cli

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/alexanderramin/lessonplanner/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Recommend service.RecommendService
	Catalog   service.CatalogService
	Meta      service.MetaService
	Runs      service.RunService

	// IsInteractive reports whether stdin is a terminal. Forms and the
	// results browser refuse to start when it returns false.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "lessonplanner" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "lessonplanner",
		Short:         "Recommend computational-thinking activities and lesson plans",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetGlobalNormalizationFunc(wireFlagNames)

	root.AddCommand(
		newRecommendCmd(app),
		newCatalogCmd(app),
		newMetaCmd(app),
		newRunsCmd(app),
	)

	return root
}

// wireFlagNames accepts request field spellings such as --max_activity_count
// as aliases of the dashed flag names.
func wireFlagNames(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	name = strings.ReplaceAll(name, "_", "-")
	switch name {
	case "target-age":
		name = "age"
	case "target-duration":
		name = "duration"
	case "max-activity-count":
		name = "max-activities"
	case "include-breaks":
		name = "breaks"
	}
	return pflag.NormalizedName(name)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
