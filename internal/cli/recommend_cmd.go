package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/lessonplanner/internal/cli/formatter"
	"github.com/alexanderramin/lessonplanner/internal/contract"
	"github.com/spf13/cobra"
)

type recommendFlags struct {
	age, duration     int
	format, resources []string
	bloom, topics     []string
	priority          []string
	maxActivities     int
	noLessonPlans     bool
	breaks            bool
	limit             int
	jsonOut           bool
	noSave            bool
	interactive       bool
	browse            bool
}

func newRecommendCmd(app *App) *cobra.Command {
	var f recommendFlags

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend activities and lesson plans for a class",
		Example: `  lessonplanner recommend --age 9 --duration 45
  lessonplanner recommend --age 10 --duration 60 --topics algorithms,patterns --breaks
  lessonplanner recommend --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := f.request()

			if f.interactive {
				if !app.interactive() {
					return errors.New("--interactive needs a terminal on stdin")
				}
				if err := runCriteriaForm(&req); err != nil {
					return err
				}
			} else if !cmd.Flags().Changed("age") || !cmd.Flags().Changed("duration") {
				return errors.New("--age and --duration are required (or use --interactive)")
			}
			if f.browse && !app.interactive() {
				return errors.New("--browse needs a terminal on stdin")
			}

			ctx := context.Background()
			var resp *contract.RecommendResponse
			var err error
			if f.noSave {
				resp, err = app.Recommend.Preview(ctx, req)
			} else {
				resp, err = app.Recommend.Recommend(ctx, req)
			}
			if err != nil {
				var rerr *contract.RecommendError
				if f.jsonOut && errors.As(err, &rerr) {
					_ = writeJSON(cmd.OutOrStdout(), rerr)
				}
				return describeRecommendError(err)
			}

			switch {
			case f.jsonOut:
				return writeJSON(cmd.OutOrStdout(), resp)
			case f.browse:
				return runResultsBrowser(resp)
			default:
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecommendResponse(resp))
				return nil
			}
		},
	}

	fl := cmd.Flags()
	fl.IntVar(&f.age, "age", 0, "Target age of the class (6-15)")
	fl.IntVar(&f.duration, "duration", 0, "Target lesson duration in minutes")
	fl.StringSliceVar(&f.format, "format", nil, "Accepted formats: unplugged, digital, hybrid")
	fl.StringSliceVar(&f.resources, "resources", nil, "Available resources (activities needing others are excluded)")
	fl.StringSliceVar(&f.bloom, "bloom", nil, "Requested Bloom levels")
	fl.StringSliceVar(&f.topics, "topics", nil, "Preferred topics")
	fl.StringSliceVar(&f.priority, "priority", nil, "Scoring categories to weight up")
	fl.IntVar(&f.maxActivities, "max-activities", 0, "Maximum activities per lesson plan, 1-5 (default: duration/30)")
	fl.BoolVar(&f.noLessonPlans, "no-lesson-plans", false, "Recommend single activities only")
	fl.BoolVar(&f.breaks, "breaks", false, "Insert breaks between activities")
	fl.IntVar(&f.limit, "limit", 0, "Maximum number of recommendations (default 5)")
	fl.BoolVar(&f.jsonOut, "json", false, "Print the response as JSON")
	fl.BoolVar(&f.noSave, "no-save", false, "Do not record this run")
	fl.BoolVarP(&f.interactive, "interactive", "i", false, "Fill in the criteria with a form")
	fl.BoolVar(&f.browse, "browse", false, "Browse the results interactively")

	return cmd
}

func (f *recommendFlags) request() contract.RecommendRequest {
	req := contract.NewRecommendRequest(f.age, f.duration)
	req.Format = f.format
	req.ResourcesNeeded = f.resources
	req.BloomLevels = f.bloom
	req.Topics = f.topics
	req.PriorityCategories = f.priority
	req.MaxActivityCount = f.maxActivities
	req.IncludeBreaks = f.breaks
	req.Limit = f.limit
	if f.noLessonPlans {
		allow := false
		req.AllowLessonPlans = &allow
	}
	return req
}

// describeRecommendError turns request errors into a flag-oriented message.
func describeRecommendError(err error) error {
	var rerr *contract.RecommendError
	if !errors.As(err, &rerr) || rerr.Code != contract.ErrInvalidRequest || len(rerr.Fields) == 0 {
		return err
	}
	lines := make([]string, len(rerr.Fields))
	for i, f := range rerr.Fields {
		lines[i] = "  - " + f.Message
	}
	return fmt.Errorf("invalid request:\n%s", strings.Join(lines, "\n"))
}
