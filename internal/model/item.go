package model

// Category groups expense entries under a display name.
// Names are not required to be unique; ID is.
type Category struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Expenses []Expense `json:"expenses"`
}

// Expense is a single amount in the base currency.
type Expense struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
}

const (
	BaseCurrency   = "RON"
	TargetCurrency = "EUR"

	// DefaultRate is RON per EUR.
	DefaultRate = 4.97
)

// DefaultCategoryNames seeds a fresh tracker when no seed file is configured.
var DefaultCategoryNames = []string{
	"Groceries",
	"Eating Out",
	"Transportation",
	"Health",
	"Utilities & Tax",
	"Fun",
	"Pers Dev",
	"Gift",
	"Subscriptions",
	"Beauty",
	"Travel",
}
