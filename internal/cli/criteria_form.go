package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/lessonplanner/internal/cli/formatter"
	"github.com/alexanderramin/lessonplanner/internal/contract"
	"github.com/alexanderramin/lessonplanner/internal/domain"
	"github.com/alexanderramin/lessonplanner/internal/engine"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// runCriteriaForm fills req from an interactive form. Replaced in tests.
var runCriteriaForm = func(req *contract.RecommendRequest) error {
	fv := newCriteriaFormValues(*req)
	if err := criteriaForm(fv).Run(); err != nil {
		return fmt.Errorf("criteria form: %w", err)
	}
	return fv.apply(req)
}

func plannerHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// criteriaFormValues holds form state; huh binds text inputs to strings.
type criteriaFormValues struct {
	age, duration string
	formats       []string
	resources     []string
	bloom         []string
	topics        []string
	priority      []string
	lessonPlans   bool
	maxActivities int
	includeBreaks bool
}

func newCriteriaFormValues(req contract.RecommendRequest) *criteriaFormValues {
	fv := &criteriaFormValues{
		formats:       req.Format,
		resources:     req.ResourcesNeeded,
		bloom:         req.BloomLevels,
		topics:        req.Topics,
		priority:      req.PriorityCategories,
		lessonPlans:   domain.BoolFromPtrWithDefault(true, req.AllowLessonPlans),
		maxActivities: req.MaxActivityCount,
		includeBreaks: req.IncludeBreaks,
	}
	if req.TargetAge > 0 {
		fv.age = strconv.Itoa(req.TargetAge)
	}
	if req.TargetDuration > 0 {
		fv.duration = strconv.Itoa(req.TargetDuration)
	}
	return fv
}

func (fv *criteriaFormValues) apply(req *contract.RecommendRequest) error {
	age, err := strconv.Atoi(fv.age)
	if err != nil {
		return fmt.Errorf("age: %w", err)
	}
	duration, err := strconv.Atoi(fv.duration)
	if err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	allow := fv.lessonPlans
	req.TargetAge = age
	req.TargetDuration = duration
	req.Format = fv.formats
	req.ResourcesNeeded = fv.resources
	req.BloomLevels = fv.bloom
	req.Topics = fv.topics
	req.PriorityCategories = fv.priority
	req.AllowLessonPlans = &allow
	req.MaxActivityCount = fv.maxActivities
	req.IncludeBreaks = fv.includeBreaks
	return nil
}

func criteriaForm(fv *criteriaFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Target age").
				Placeholder("9").
				Value(&fv.age).
				Validate(validateIntRange(domain.MinAge, domain.MaxAge)),
			huh.NewInput().
				Title("Lesson duration (minutes)").
				Placeholder("45").
				Value(&fv.duration).
				Validate(validateIntRange(1, 480)),
		),
		huh.NewGroup(
			multiSelect("Formats", "none selected accepts every format", domain.Strings(domain.AllFormats), &fv.formats),
			multiSelect("Available resources", "none selected means no restriction", domain.Strings(domain.AllResources), &fv.resources),
		),
		huh.NewGroup(
			multiSelect("Bloom levels", "", domain.Strings(domain.AllBloomLevels), &fv.bloom),
			multiSelect("Topics", "", domain.Strings(domain.AllTopics), &fv.topics),
			multiSelect("Priority categories", "weighted up when scoring", engine.CategoryNames(), &fv.priority),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Allow multi-activity lesson plans?").
				Value(&fv.lessonPlans),
			huh.NewSelect[int]().
				Title("Maximum activities per plan").
				Options(maxActivityOptions()...).
				Value(&fv.maxActivities),
			huh.NewConfirm().
				Title("Insert breaks between activities?").
				Value(&fv.includeBreaks),
		),
	).WithTheme(plannerHuhTheme()).WithShowHelp(false)
}

// maxActivityOptions leads with 0, which lets the duration decide.
func maxActivityOptions() []huh.Option[int] {
	opts := []huh.Option[int]{huh.NewOption("auto (one per 30 minutes)", 0)}
	return append(opts, huh.NewOptions(1, 2, 3, 4, 5)...)
}

func multiSelect(title, desc string, options []string, value *[]string) *huh.MultiSelect[string] {
	return huh.NewMultiSelect[string]().
		Title(title).
		Description(desc).
		Options(huh.NewOptions(options...)...).
		Value(value)
}

// validateIntRange accepts an integer within [lo, hi].
func validateIntRange(lo, hi int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(s)
		if err != nil || v < lo || v > hi {
			return fmt.Errorf("enter a number from %d to %d", lo, hi)
		}
		return nil
	}
}
