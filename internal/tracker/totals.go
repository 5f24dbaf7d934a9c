package tracker

import "github.com/Makepad-fr/spendo/internal/model"

// Total is the derived view of one category.
type Total struct {
	CategoryID string
	Name       string
	Count      int
	Base       float64
	Converted  string
}

// Totals recomputes every category total at the current rate.
func (t *Tracker) Totals() []Total {
	out := make([]Total, 0, len(t.categories))
	for _, c := range t.categories {
		sum := model.CategorySum(c)
		out = append(out, Total{
			CategoryID: c.ID,
			Name:       c.Name,
			Count:      len(c.Expenses),
			Base:       sum,
			Converted:  model.Convert(sum, t.rate),
		})
	}
	return out
}

// GrandTotal sums all categories and converts the result.
func (t *Tracker) GrandTotal() (base float64, converted string) {
	for _, c := range t.categories {
		base += model.CategorySum(c)
	}
	return base, model.Convert(base, t.rate)
}
