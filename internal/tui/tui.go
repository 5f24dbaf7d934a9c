package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/spendo/internal/log"
	"github.com/Makepad-fr/spendo/internal/model"
	"github.com/Makepad-fr/spendo/internal/tracker"
)

type mode int

const (
	modeList mode = iota
	modeAddCategory
	modeRate
	modeCategory
	modeAddExpense
)

// Model is the Bubble Tea model over a tracker. The tracker is the only
// source of truth; list items are rebuilt from it after every change.
type Model struct {
	tr  *tracker.Tracker
	log *log.Logger

	list list.Model
	ti   textinput.Model // shared input for category name, rate and amount
	mode mode

	// category view
	openID string
	cursor int
	split  map[string]bool // per category: halve amounts added while set

	width, height int
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	rateBind   = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rate"))
	removeBind = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove"))
	openBind   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open"))
)

// New builds the model. A nil logger discards.
func New(tr *tracker.Tracker, logger *log.Logger) Model {
	if logger == nil {
		logger = log.Nop()
	}
	l := list.New(nil, categoryDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	// letters are commands here, so no filtering
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetStatusBarItemName("category", "categories")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addBind, rateBind, removeBind, openBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{addBind, rateBind, removeBind, openBind} }

	m := Model{
		tr:     tr,
		log:    logger.WithComponent("tui"),
		list:   l,
		split:  map[string]bool{},
		width:  80,
		height: 24,
	}
	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.CharLimit = 64
	m.refresh()
	m.list.SetSize(m.width-4, m.height-4)
	return m
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(tr *tracker.Tracker, logger *log.Logger) error {
	_, err := tea.NewProgram(New(tr, logger), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.list.SetSize(max(ws.Width-4, 10), max(ws.Height-6, 3))
		return m, nil
	}

	switch m.mode {
	case modeAddCategory, modeRate, modeAddExpense:
		return m.updateInput(msg)
	case modeCategory:
		return m.updateCategory(msg)
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "a":
			return m.openInput(modeAddCategory, "", "New category name...")
		case "r":
			return m.openInput(modeRate, model.FormatRate(m.tr.Rate()), "RON per EUR")
		case "d":
			if it, ok := m.list.SelectedItem().(categoryItem); ok {
				m.tr.RemoveCategory(it.CategoryID)
				delete(m.split, it.CategoryID)
				m.log.Info("category removed", "name", it.Name)
				cmd := m.refresh()
				return m, cmd
			}
			return m, nil
		case "enter":
			if it, ok := m.list.SelectedItem().(categoryItem); ok {
				m.mode = modeCategory
				m.openID = it.CategoryID
				m.cursor = 0
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) openInput(md mode, value, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Placeholder = placeholder
	return m, m.ti.Focus()
}

func (m Model) closeInput() Model {
	m.ti.SetValue("")
	m.ti.Blur()
	if m.mode == modeAddExpense {
		m.mode = modeCategory
	} else {
		m.mode = modeList
	}
	return m
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			return m.closeInput(), nil
		case "tab":
			if m.mode == modeAddExpense {
				m.split[m.openID] = !m.split[m.openID]
				return m, nil
			}
		case "enter":
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

// submit applies the pending input. Invalid input changes nothing.
func (m Model) submit() (tea.Model, tea.Cmd) {
	value := m.ti.Value()
	switch m.mode {
	case modeAddCategory:
		c, ok := m.tr.AddCategory(value)
		if !ok {
			// keep the input open, like an ignored form submit
			return m, nil
		}
		m.log.Info("category added", "name", c.Name)
		m = m.closeInput()
		cmd := m.refresh()
		m.list.Select(m.tr.Len() - 1)
		return m, cmd

	case modeRate:
		m.tr.SetRate(model.ParseAmount(value))
		m.log.Info("rate set", "rate", m.tr.Rate())
		m = m.closeInput()
		cmd := m.refresh()
		return m, cmd

	case modeAddExpense:
		split := m.split[m.openID]
		if e, ok := m.tr.AddExpense(m.openID, model.ParseAmount(value), split); ok {
			m.log.Info("expense added", "amount", e.Amount, "split", split)
			if c, found := m.tr.Category(m.openID); found {
				m.cursor = len(c.Expenses) - 1
			}
		}
		m = m.closeInput()
		cmd := m.refresh()
		return m, cmd
	}
	return m, nil
}

func (m Model) updateCategory(msg tea.Msg) (tea.Model, tea.Cmd) {
	c, ok := m.tr.Category(m.openID)
	if !ok {
		m.mode = modeList
		return m, nil
	}
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch k.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.mode = modeList
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(c.Expenses)-1 {
			m.cursor++
		}
	case "s":
		m.split[c.ID] = !m.split[c.ID]
	case "a":
		return m.openInput(modeAddExpense, "", "Amount in "+model.BaseCurrency)
	case "d":
		if m.cursor >= 0 && m.cursor < len(c.Expenses) {
			e := c.Expenses[m.cursor]
			m.tr.RemoveExpense(c.ID, e.ID)
			m.log.Info("expense removed", "category", c.Name, "amount", e.Amount)
			if m.cursor >= len(c.Expenses)-1 && m.cursor > 0 {
				m.cursor--
			}
			cmd := m.refresh()
			return m, cmd
		}
	}
	return m, nil
}

// refresh rebuilds list items and the header from the tracker.
func (m *Model) refresh() tea.Cmd {
	totals := m.tr.Totals()
	items := make([]list.Item, 0, len(totals))
	for _, t := range totals {
		items = append(items, categoryItem{Total: t})
	}
	cmd := m.list.SetItems(items)
	if n := len(items); n > 0 && m.list.Index() >= n {
		m.list.Select(n - 1)
	}
	m.list.Title = m.header()
	return cmd
}

func (m Model) header() string {
	base, conv := m.tr.GrandTotal()
	return fmt.Sprintf("%s   %s %s  %s %s  %s %s",
		titleStyle.Render("Monthly Expenses"),
		accentStyle.Render("rate"), rateText(m.tr.Rate()),
		successStyle.Render(model.BaseCurrency), model.FormatAmount(base),
		accentStyle.Render(model.TargetCurrency), conv,
	)
}

func rateText(r float64) string {
	if v := model.FormatRate(r); v != "" {
		return v
	}
	return "-"
}



func (m Model) View() string {
	var content string
	if m.mode == modeCategory || m.mode == modeAddExpense {
		content = m.categoryView()
	} else {
		content = m.list.View()
	}

	if m.mode == modeAddCategory || m.mode == modeRate || m.mode == modeAddExpense {
		title := "Add category"
		switch m.mode {
		case modeRate:
			title = "Exchange rate (" + model.BaseCurrency + " per " + model.TargetCurrency + ")"
		case modeAddExpense:
			title = "Add expense (" + model.BaseCurrency + ")" + splitLabel(m.split[m.openID])
		}
		content += "\n" + borderStyle.Render(title+"\n"+m.ti.View())
	}
	return panelString(content)
}

func (m Model) categoryView() string {
	c, ok := m.tr.Category(m.openID)
	if !ok {
		return mutedStyle.Render("category not found")
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(c.Name) + splitLabel(m.split[m.openID]) + "\n\n")
	if len(c.Expenses) == 0 {
		b.WriteString(mutedStyle.Render("no expenses yet") + "\n")
	}
	for i, e := range c.Expenses {
		prefix := "  "
		if i == m.cursor {
			prefix = selectedStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%10s %s\n", prefix, model.FormatAmount(e.Amount), model.BaseCurrency)
	}
	sum := model.CategorySum(c)
	fmt.Fprintf(&b, "\n%s %s   %s %s\n",
		successStyle.Render(model.BaseCurrency+":"), model.FormatAmount(sum),
		accentStyle.Render(model.TargetCurrency+":"), model.Convert(sum, m.tr.Rate()))
	b.WriteString(helpStyle.Render("a add • s split • d remove • ↑/↓ move • esc back • q quit"))
	return b.String()
}

func splitLabel(on bool) string {
	if !on {
		return ""
	}
	return "  " + pendingStyle.Render("[split ½]")
}
