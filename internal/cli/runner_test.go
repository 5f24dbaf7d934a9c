package cli

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/spendo/internal/ui"
)

func run(t *testing.T, opt Options, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	ui.SetColorForcing(false, true)
	t.Cleanup(func() { ui.SetColorForcing(false, false) })

	var out, errOut bytes.Buffer
	opt.Out, opt.Err = &out, &errOut
	if opt.Rate == 0 {
		opt.Rate = 4.97
	}
	code = Run(args, opt)
	return code, out.String(), errOut.String()
}

func TestParseEntry(t *testing.T) {
	e, err := parseEntry("Groceries=10+20.5+50/2")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", e.name)
	require.Len(t, e.amounts, 3)
	assert.Equal(t, amountArg{value: 10}, e.amounts[0])
	assert.Equal(t, amountArg{value: 20.5}, e.amounts[1])
	assert.Equal(t, amountArg{value: 50, split: true}, e.amounts[2])

	e, err = parseEntry(" Eating Out = 12,5 ")
	require.NoError(t, err)
	assert.Equal(t, "Eating Out", e.name)
	assert.Equal(t, 12.5, e.amounts[0].value)

	e, err = parseEntry("Fun=")
	require.NoError(t, err)
	assert.Empty(t, e.amounts)

	e, err = parseEntry("Fun=abc")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(e.amounts[0].value))

	for _, bad := range []string{"Groceries", "=10", "  =1"} {
		_, err := parseEntry(bad)
		assert.Error(t, err, "arg %q", bad)
	}
}

func TestCalc(t *testing.T) {
	code, out, stderr := run(t, Options{}, "calc", "Groceries=10+20.5", "Rent=100/2")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "30.50 RON      6.14 EUR")
	assert.Contains(t, out, "50.00 RON     10.06 EUR")
	assert.Contains(t, out, "Total 80.50 RON  16.20 EUR")
	assert.NotContains(t, out, "ignored")
}

func TestCalcMergesSameNameAndCountsIgnored(t *testing.T) {
	code, out, _ := run(t, Options{Rate: 1}, "calc", "Fun=5", "fun=0+-3+x+5")
	require.Equal(t, 0, code)

	assert.Contains(t, out, "10.00 RON     10.00 EUR")
	assert.Contains(t, out, "ignored 3 invalid amount(s)")
	assert.NotContains(t, out, " 2. ")
}

func TestCalcZeroRate(t *testing.T) {
	code, out, _ := run(t, Options{Rate: -1}, "calc", "Gift=100")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "100.00 RON      0.00 EUR")
	assert.Contains(t, out, "rate - RON/EUR")
}

func TestCalcInfiniteRate(t *testing.T) {
	code, out, _ := run(t, Options{Rate: math.Inf(1)}, "calc", "Gift=100")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "rate - RON/EUR")
	assert.NotContains(t, out, "Inf")
	assert.Contains(t, out, "100.00 RON      0.00 EUR")
}

// the example printed by PrintHelp
func TestCalcHelpExample(t *testing.T) {
	code, out, stderr := run(t, Options{Rate: 5}, "calc", "Groceries=10+20.5", "Rent=1200/2")
	require.Equal(t, 0, code, stderr)

	assert.Contains(t, out, "rate 5 RON/EUR")
	assert.Contains(t, out, "30.50 RON      6.10 EUR")
	assert.Contains(t, out, "600.00 RON    120.00 EUR")
	assert.Contains(t, out, "Total 630.50 RON  126.10 EUR")

	var help bytes.Buffer
	PrintHelp(&help)
	assert.Contains(t, help.String(), "calc Groceries=10+20.5 Rent=1200/2")
}

func TestCalcWithSeed(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cats.json")
	require.NoError(t, os.WriteFile(p, []byte(`["Rent","Food"]`), 0o644))

	code, out, _ := run(t, Options{SeedFile: p, Rate: 2}, "calc", "-seed", "food=4")
	require.Equal(t, 0, code)
	assert.Contains(t, out, " 1. Rent")
	assert.Contains(t, out, " 2. Food")
	assert.Contains(t, out, "4.00 RON      2.00 EUR")
}

func TestCalcUsage(t *testing.T) {
	code, _, stderr := run(t, Options{}, "calc")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "usage: spendo calc")

	code, _, stderr = run(t, Options{}, "calc", "NoEquals")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "expected Category=amounts")
}

func TestCategories(t *testing.T) {
	code, out, _ := run(t, Options{}, "categories")
	require.Equal(t, 0, code)
	assert.Contains(t, out, " 1. • Groceries")
	assert.Contains(t, out, "11. • Travel")
}

func TestCategoriesBadSeed(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cats.json")
	require.NoError(t, os.WriteFile(p, []byte(`nope`), 0o644))

	code, _, stderr := run(t, Options{SeedFile: p}, "categories")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "seed: parse seed file")
}

func TestHelpAndUnknown(t *testing.T) {
	code, out, _ := run(t, Options{}, "help")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Subcommands:")

	code, _, stderr := run(t, Options{}, "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unknown subcommand: frobnicate")
}
