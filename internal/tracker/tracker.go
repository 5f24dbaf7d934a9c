// Package tracker holds the in-memory state of a monthly expense sheet:
// an exchange rate and an ordered list of categories with their entries.
//
// Every mutation swaps in fresh slices, so a snapshot returned by
// Categories never changes afterwards. Totals are derived on each read.
package tracker

import (
	"strings"

	"github.com/google/uuid"

	"github.com/Makepad-fr/spendo/internal/log"
	"github.com/Makepad-fr/spendo/internal/model"
)

// Tracker is not safe for concurrent use; callers serialize events.
type Tracker struct {
	rate       float64
	categories []model.Category
	newID      func() string
	log        *log.Logger
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithRate sets the initial exchange rate.
func WithRate(rate float64) Option {
	return func(t *Tracker) { t.rate = rate }
}

// WithCategories seeds empty categories, skipping blank names.
func WithCategories(names []string) Option {
	return func(t *Tracker) {
		for _, n := range names {
			t.AddCategory(n)
		}
	}
}

// WithIDFunc replaces the ID generator.
func WithIDFunc(fn func() string) Option {
	return func(t *Tracker) { t.newID = fn }
}

// WithLogger attaches a logger.
func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) { t.log = l.WithComponent("tracker") }
}

// New returns a tracker at model.DefaultRate with no categories unless
// options say otherwise. Options apply in order.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		rate:  model.DefaultRate,
		newID: func() string { return uuid.New().String() },
		log:   log.Nop(),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Rate returns the exchange rate as entered, which may be non-positive.
func (t *Tracker) Rate() float64 { return t.rate }

// SetRate stores r without validation; Convert guards bad rates at display time.
func (t *Tracker) SetRate(r float64) {
	t.rate = r
	t.log.Debug("rate changed", "rate", r)
}

// Len returns the number of categories.
func (t *Tracker) Len() int { return len(t.categories) }

// Categories returns a deep copy of the category list.
func (t *Tracker) Categories() []model.Category {
	out := make([]model.Category, len(t.categories))
	for i, c := range t.categories {
		out[i] = cloneCategory(c)
	}
	return out
}

// Category looks a category up by ID.
func (t *Tracker) Category(id string) (model.Category, bool) {
	i := t.indexOf(id)
	if i < 0 {
		return model.Category{}, false
	}
	return cloneCategory(t.categories[i]), true
}

// CategoryAt returns the category at position i of the current list.
func (t *Tracker) CategoryAt(i int) (model.Category, bool) {
	if i < 0 || i >= len(t.categories) {
		return model.Category{}, false
	}
	return cloneCategory(t.categories[i]), true
}

// AddCategory appends an empty category. Blank names are ignored.
func (t *Tracker) AddCategory(name string) (model.Category, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, false
	}
	c := model.Category{ID: t.newID(), Name: name, Expenses: []model.Expense{}}

	next := make([]model.Category, 0, len(t.categories)+1)
	next = append(next, t.categories...)
	next = append(next, c)
	t.categories = next

	t.log.Debug("category added", "id", c.ID, "name", c.Name)
	return cloneCategory(c), true
}

// RemoveCategory drops the category with the given ID. Unknown IDs are a no-op.
func (t *Tracker) RemoveCategory(id string) bool {
	i := t.indexOf(id)
	if i < 0 {
		return false
	}
	next := make([]model.Category, 0, len(t.categories)-1)
	next = append(next, t.categories[:i]...)
	next = append(next, t.categories[i+1:]...)
	t.categories = next

	t.log.Debug("category removed", "id", id)
	return true
}

// AddExpense appends amount to a category, halved first when split is set.
// Invalid amounts (NaN, infinite, zero or negative) and unknown categories
// leave the state untouched.
func (t *Tracker) AddExpense(categoryID string, amount float64, split bool) (model.Expense, bool) {
	if !model.ValidAmount(amount) {
		t.log.Debug("expense ignored", "category", categoryID, "amount", amount)
		return model.Expense{}, false
	}
	i := t.indexOf(categoryID)
	if i < 0 {
		return model.Expense{}, false
	}
	if split {
		amount /= 2
	}
	e := model.Expense{ID: t.newID(), Amount: amount}

	c := t.categories[i]
	exp := make([]model.Expense, 0, len(c.Expenses)+1)
	exp = append(exp, c.Expenses...)
	c.Expenses = append(exp, e)
	t.replace(i, c)

	t.log.Debug("expense added", "category", categoryID, "id", e.ID, "amount", amount, "split", split)
	return e, true
}

// RemoveExpense drops one entry from a category. Unknown IDs are a no-op.
func (t *Tracker) RemoveExpense(categoryID, expenseID string) bool {
	i := t.indexOf(categoryID)
	if i < 0 {
		return false
	}
	c := t.categories[i]
	j := -1
	for k, e := range c.Expenses {
		if e.ID == expenseID {
			j = k
			break
		}
	}
	if j < 0 {
		return false
	}
	exp := make([]model.Expense, 0, len(c.Expenses)-1)
	exp = append(exp, c.Expenses[:j]...)
	c.Expenses = append(exp, c.Expenses[j+1:]...)
	t.replace(i, c)

	t.log.Debug("expense removed", "category", categoryID, "id", expenseID)
	return true
}

func (t *Tracker) replace(i int, c model.Category) {
	next := make([]model.Category, len(t.categories))
	copy(next, t.categories)
	next[i] = c
	t.categories = next
}

func (t *Tracker) indexOf(id string) int {
	for i, c := range t.categories {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func cloneCategory(c model.Category) model.Category {
	c.Expenses = append([]model.Expense{}, c.Expenses...)
	return c
}
