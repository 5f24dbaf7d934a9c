package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/spendo/internal/model"
	"github.com/Makepad-fr/spendo/internal/tracker"
)

// categoryItem adapts a derived total to bubbles/list.Item.
type categoryItem struct {
	tracker.Total
}

func (i categoryItem) Title() string       { return i.Name }
func (i categoryItem) Description() string { return "" }
func (i categoryItem) FilterValue() string { return i.Name }

// single-line rows: name, entry count, base and converted totals
type categoryDelegate struct{}

func (d categoryDelegate) Height() int                               { return 1 }
func (d categoryDelegate) Spacing() int                              { return 0 }
func (d categoryDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d categoryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(categoryItem)
	if !ok {
		return
	}
	name := it.Name
	if len([]rune(name)) > 24 {
		name = string([]rune(name)[:21]) + "..."
	}
	count := mutedStyle.Render(fmt.Sprintf("(%d)", it.Count))
	totals := fmt.Sprintf("%s %10s  %s %9s",
		model.BaseCurrency, model.FormatAmount(it.Base),
		model.TargetCurrency, it.Converted)
	if it.Base > 0 {
		totals = successStyle.Render(totals)
	} else {
		totals = mutedStyle.Render(totals)
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintf(w, "%s%-24s %s  %s", prefix, name, count, totals)
}
