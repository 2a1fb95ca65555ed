package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lessonplanner/internal/cli/formatter"
	"github.com/alexanderramin/lessonplanner/internal/contract"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type browserKeys struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

func defaultBrowserKeys() browserKeys {
	return browserKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "details")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browserKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Quit}
}

// resultsBrowser lists ranked recommendations; the selected one can be
// expanded into its full breakdown in a scrollable viewport.
type resultsBrowser struct {
	resp     *contract.RecommendResponse
	cursor   int
	expanded bool
	keys     browserKeys
	detail   viewport.Model
	ready    bool
}

func newResultsBrowser(resp *contract.RecommendResponse) *resultsBrowser {
	return &resultsBrowser{resp: resp, keys: defaultBrowserKeys()}
}

// runResultsBrowser blocks until the user quits.
var runResultsBrowser = func(resp *contract.RecommendResponse) error {
	_, err := tea.NewProgram(newResultsBrowser(resp), tea.WithAltScreen()).Run()
	return err
}

func (m *resultsBrowser) Init() tea.Cmd { return nil }

func (m *resultsBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.detail = viewport.New(msg.Width, max(msg.Height-4, 1))
		m.ready = true
		m.refreshDetail()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.expanded && msg.String() == "esc" {
				m.expanded = false
				return m, nil
			}
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			if len(m.resp.Activities) > 0 {
				m.expanded = !m.expanded
				m.refreshDetail()
			}
			return m, nil
		case m.expanded:
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.resp.Activities)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m *resultsBrowser) refreshDetail() {
	if !m.ready || len(m.resp.Activities) == 0 {
		return
	}
	m.detail.SetContent(formatter.FormatRecommendation(m.cursor+1, m.resp.Activities[m.cursor]))
	m.detail.GotoTop()
}

func (m *resultsBrowser) View() string {
	if m.expanded && m.ready {
		return m.detail.View() + "\n" + formatter.Dim("↑/↓ scroll · enter back · q quit")
	}

	var b strings.Builder
	b.WriteString("\n")
	if len(m.resp.Activities) == 0 {
		b.WriteString("  " + formatter.Dim("No activities match these criteria.") + "\n")
	}
	for i, rec := range m.resp.Activities {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		names := make([]string, len(rec.Activities))
		for j, pa := range rec.Activities {
			names[j] = pa.Name
		}
		fmt.Fprintf(&b, "%s%s  %s  %s\n",
			cursor,
			formatter.ScoreColor(rec.Score).Render(fmt.Sprintf("%5.1f", rec.Score)),
			formatter.Bold(strings.Join(names, " → ")),
			formatter.Dim(formatter.FormatMinutes(rec.TotalDurationMinutes)),
		)
	}

	help := make([]string, 0, 4)
	for _, kb := range m.keys.ShortHelp() {
		h := kb.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString("\n" + formatter.Dim(strings.Join(help, " · ")) + "\n")
	return b.String()
}
