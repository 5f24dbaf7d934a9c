package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorySum(t *testing.T) {
	assert.Equal(t, 0.0, CategorySum(Category{Name: "Empty"}))

	c := Category{Name: "Groceries", Expenses: []Expense{{Amount: 10}, {Amount: 20.5}}}
	assert.Equal(t, 30.5, CategorySum(c))

	// order of entries does not change the total
	rev := Category{Name: "Groceries", Expenses: []Expense{{Amount: 20.5}, {Amount: 10}}}
	assert.Equal(t, CategorySum(c), CategorySum(rev))
}

func TestConvert(t *testing.T) {
	cases := []struct {
		name string
		sum  float64
		rate float64
		want string
	}{
		{"default rate", 100, 4.97, "20.12"},
		{"groceries total", 30.5, 4.97, "6.14"},
		{"empty sum", 0, 4.97, "0.00"},
		{"zero rate", 100, 0, "0.00"},
		{"negative rate", 100, -2, "0.00"},
		{"nan rate", 100, math.NaN(), "0.00"},
		{"inf rate", 100, math.Inf(1), "0.00"},
		{"identity", 12.5, 1, "12.50"},
		// decimal rounding: half away from zero on the decimal quotient
		{"half rounds up", 2.01, 2, "1.01"},
		{"half rounds up again", 0.25, 2, "0.13"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Convert(tc.sum, tc.rate))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "30.50", FormatAmount(30.5))
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "0.00", FormatAmount(math.NaN()))
	assert.Equal(t, "1234.00", FormatAmount(1234))
}

func TestFormatRate(t *testing.T) {
	assert.Equal(t, "4.97", FormatRate(4.97))
	assert.Equal(t, "5", FormatRate(5))
	assert.Equal(t, "", FormatRate(0))
	assert.Equal(t, "", FormatRate(-1))
	assert.Equal(t, "", FormatRate(math.NaN()))
	assert.Equal(t, "", FormatRate(math.Inf(1)))
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in    string
		out   float64
		valid bool
	}{
		{"10", 10, true},
		{"20.5", 20.5, true},
		{"20,5", 20.5, true},
		{" 7.25 ", 7.25, true},
		{"0", 0, false},
		{"-3", -3, false},
		{"", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"inf", 0, false},
	}
	for _, tc := range cases {
		got := ParseAmount(tc.in)
		assert.Equal(t, tc.valid, ValidAmount(got), "input %q", tc.in)
		if tc.valid {
			assert.Equal(t, tc.out, got, "input %q", tc.in)
		}
	}
}
