package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/Makepad-fr/spendo/internal/log"
	"github.com/Makepad-fr/spendo/internal/model"
	"github.com/Makepad-fr/spendo/internal/store/jsonstore"
	"github.com/Makepad-fr/spendo/internal/tracker"
	"github.com/Makepad-fr/spendo/internal/tui"
	"github.com/Makepad-fr/spendo/internal/ui"
)

// Options carry resolved configuration from root flags and the environment.
type Options struct {
	Rate     float64
	SeedFile string
	LogFile  string // TUI log destination; empty discards
	LogLevel slog.Level

	Out, Err io.Writer // default to stdout/stderr
}

func (o Options) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return os.Stdout
}

func (o Options) err() io.Writer {
	if o.Err != nil {
		return o.Err
	}
	return os.Stderr
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
// No subcommand starts the interactive tracker.
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		return doTUI(opt)
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(opt.out())
		return 0

	case "tui":
		return doTUI(opt)

	case "calc":
		return doCalc(a, opt)

	case "categories":
		return doCategories(opt)
	}

	ui.Fail(opt.err(), "unknown subcommand: "+cmd)
	fmt.Fprintln(opt.err())
	PrintHelp(opt.err())
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, `spendo - monthly expenses in %[1]s with %[2]s totals

Usage:
  spendo [flags] [subcommand] [args]

Subcommands:
  tui                          Interactive tracker (default)
  calc [-seed] <Cat=amounts>   One-shot totals; amounts joined with '+',
                               a trailing /2 splits an amount in half
  categories                   Show the seeded category list

Flags:
  -rate <n>       %[1]s per %[2]s (env SPENDO_RATE)
  -seed <file>    JSON array of category names (env SPENDO_SEED_FILE)
  -theme <name>   classic | neon | mono (env SPENDO_THEME)
  -log <file>     write TUI logs to file (env SPENDO_LOG_FILE)

Examples:
  spendo
  spendo -rate 5 calc Groceries=10+20.5 Rent=1200/2
  spendo calc -seed Fun=45
`, model.BaseCurrency, model.TargetCurrency)
}

// -------------- subcommand impls ----------------

func doTUI(opt Options) int {
	names, err := jsonstore.LoadCategories(opt.SeedFile)
	if err != nil {
		ui.Fail(opt.err(), "seed: "+err.Error())
		return 1
	}

	logger, closeLog, err := tuiLogger(opt)
	if err != nil {
		ui.Fail(opt.err(), "log: "+err.Error())
		return 1
	}
	defer closeLog()

	tr := tracker.New(
		tracker.WithLogger(logger),
		tracker.WithRate(opt.Rate),
		tracker.WithCategories(names),
	)
	logger.Info("starting tracker", "categories", tr.Len(), "rate", opt.Rate)
	if err := tui.Run(tr, logger); err != nil {
		ui.Fail(opt.err(), "tui: "+err.Error())
		return 1
	}
	return 0
}

// The TUI owns the terminal, so logs go to a file or nowhere.
func tuiLogger(opt Options) (*log.Logger, func(), error) {
	if opt.LogFile == "" {
		return log.Nop(), func() {}, nil
	}
	f, err := tea.LogToFile(opt.LogFile, "spendo")
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open %s", opt.LogFile)
	}
	l := log.New(log.Config{Level: opt.LogLevel, Component: "spendo", Output: f})
	return l, func() { _ = f.Close() }, nil
}

func doCalc(args []string, opt Options) int {
	fs := flag.NewFlagSet("calc", flag.ContinueOnError)
	fs.SetOutput(opt.err())
	withSeed := fs.Bool("seed", false, "start from the seeded categories")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 && !*withSeed {
		ui.Fail(opt.err(), "usage: spendo calc [-seed] <Category=amount+amount...>...")
		return 2
	}

	logger := log.New(log.Config{Level: opt.LogLevel, Component: "calc", Output: opt.err()})
	tr := tracker.New(tracker.WithLogger(logger), tracker.WithRate(opt.Rate))
	if *withSeed {
		names, err := jsonstore.LoadCategories(opt.SeedFile)
		if err != nil {
			ui.Fail(opt.err(), "seed: "+err.Error())
			return 1
		}
		for _, n := range names {
			tr.AddCategory(n)
		}
	}

	ignored := 0
	for _, arg := range fs.Args() {
		entry, err := parseEntry(arg)
		if err != nil {
			ui.Fail(opt.err(), "calc: "+err.Error())
			return 2
		}
		id := findOrAdd(tr, entry.name)
		for _, a := range entry.amounts {
			if _, ok := tr.AddExpense(id, a.value, a.split); !ok {
				ignored++
			}
		}
	}

	ui.Panel(opt.out(), summaryLines(tr, ignored))
	return 0
}

func doCategories(opt Options) int {
	names, err := jsonstore.LoadCategories(opt.SeedFile)
	if err != nil {
		ui.Fail(opt.err(), "seed: "+err.Error())
		return 1
	}
	t := ui.Current()
	lines := []string{ui.C(t.Title, "Categories")}
	if len(names) == 0 {
		lines = append(lines, ui.C(t.Muted, "(none)"))
	}
	for i, n := range names {
		lines = append(lines, fmt.Sprintf("%s %s %s", ui.Dim(fmt.Sprintf("%2d.", i+1)), ui.C(t.Accent, t.Bullet), n))
	}
	ui.Panel(opt.out(), lines)
	return 0
}

// -------------- argument parsing --------------

type amountArg struct {
	value float64
	split bool
}

type entryArg struct {
	name    string
	amounts []amountArg
}

// parseEntry reads "Name=10+20.5+50/2". Amounts that do not parse are kept
// as NaN so the tracker ignores them like any other invalid input.
func parseEntry(arg string) (entryArg, error) {
	name, rest, found := strings.Cut(arg, "=")
	name = strings.TrimSpace(name)
	if !found || name == "" {
		return entryArg{}, errors.Errorf("expected Category=amounts, got %q", arg)
	}
	e := entryArg{name: name}
	for _, tok := range strings.Split(rest, "+") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		split := strings.HasSuffix(tok, "/2")
		if split {
			tok = strings.TrimSuffix(tok, "/2")
		}
		e.amounts = append(e.amounts, amountArg{value: model.ParseAmount(tok), split: split})
	}
	return e, nil
}

func findOrAdd(tr *tracker.Tracker, name string) string {
	for _, c := range tr.Categories() {
		if strings.EqualFold(c.Name, name) {
			return c.ID
		}
	}
	c, _ := tr.AddCategory(name)
	return c.ID
}

// -------------- rendering helpers --------------

func summaryLines(tr *tracker.Tracker, ignored int) []string {
	t := ui.Current()
	base, conv := tr.GrandTotal()

	rate := model.FormatRate(tr.Rate())
	if rate == "" {
		rate = "-"
	}
	header := fmt.Sprintf("%s  %s %s %s/%s",
		ui.C(t.Title, "Monthly Expenses"),
		ui.C(t.Accent, "rate"), rate, model.BaseCurrency, model.TargetCurrency,
	)

	lines := []string{header, ""}
	totals := tr.Totals()
	if len(totals) == 0 {
		lines = append(lines, ui.C(t.Muted, "no categories"))
	}
	for i, tot := range totals {
		name := tot.Name
		if len([]rune(name)) > 20 {
			name = string([]rune(name)[:17]) + "..."
		}
		color := t.Muted
		if tot.Count > 0 {
			color = t.Success
		}
		lines = append(lines, fmt.Sprintf("%s %-20s %s  %s",
			ui.Dim(fmt.Sprintf("%2d.", i+1)),
			name,
			ui.C(color, fmt.Sprintf("%10s %s %9s %s",
				model.FormatAmount(tot.Base), model.BaseCurrency,
				tot.Converted, model.TargetCurrency)),
			ui.C(t.Muted, ui.ShareBar(tot.Base, base, 12)),
		))
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("%s %s %s  %s %s",
		ui.C(t.Accent, "Total"),
		model.FormatAmount(base), model.BaseCurrency,
		conv, model.TargetCurrency,
	))
	if ignored > 0 {
		lines = append(lines, ui.C(t.Warn, fmt.Sprintf("ignored %d invalid amount(s)", ignored)))
	}
	return lines
}
