// Package teatest drives bubbletea models from tests without a tea.Program:
// every message goes straight to Update and the returned commands are run
// inline until they stop producing messages.
package teatest

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxDepth bounds command chains so a model that keeps re-arming itself
// cannot hang a test.
const maxDepth = 64

// cmdTimeout skips commands that wait on timers.
const cmdTimeout = 10 * time.Millisecond

// Driver holds the current model between steps.
type Driver struct {
	t     *testing.T
	Model tea.Model

	// Quit is set once the model returns tea.Quit.
	Quit bool
}

// New wraps model and runs its Init command.
func New(t *testing.T, model tea.Model, width, height int) *Driver {
	t.Helper()
	d := &Driver{t: t, Model: model}
	d.run(model.Init(), 0)
	if width > 0 && height > 0 {
		d.Send(tea.WindowSizeMsg{Width: width, Height: height})
	}
	return d
}

// Send delivers msg and drains whatever it triggers.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.Quit {
		return
	}
	next, cmd := d.Model.Update(msg)
	d.Model = next
	d.run(cmd, 0)
}

// Keys types each rune of s as its own key press.
func (d *Driver) Keys(s string) {
	d.t.Helper()
	for _, r := range s {
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (d *Driver) Enter() { d.Send(tea.KeyMsg{Type: tea.KeyEnter}) }
func (d *Driver) Esc()   { d.Send(tea.KeyMsg{Type: tea.KeyEsc}) }
func (d *Driver) Up()    { d.Send(tea.KeyMsg{Type: tea.KeyUp}) }
func (d *Driver) Down()  { d.Send(tea.KeyMsg{Type: tea.KeyDown}) }

func (d *Driver) View() string { return d.Model.View() }

// RequireView fails the test unless every fragment appears in the view.
func (d *Driver) RequireView(fragments ...string) {
	d.t.Helper()
	view := d.View()
	for _, f := range fragments {
		if !strings.Contains(view, f) {
			d.t.Fatalf("view is missing %q:\n%s", f, view)
		}
	}
}

func (d *Driver) run(cmd tea.Cmd, depth int) {
	if cmd == nil {
		return
	}
	if depth >= maxDepth {
		d.t.Logf("teatest: command chain deeper than %d, stopping", maxDepth)
		return
	}

	msg := runWithTimeout(cmd)
	switch m := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range m {
			d.run(sub, depth+1)
		}
	case tea.QuitMsg:
		d.Quit = true
	default:
		next, nextCmd := d.Model.Update(m)
		d.Model = next
		d.run(nextCmd, depth+1)
	}
}

func runWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}
