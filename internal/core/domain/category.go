package domain

import (
	"github.com/shopspring/decimal"
)

// MiscCategoryID is the reserved, undeletable fallback category. Expenses and
// monthly templates whose category is removed are reassigned here.
const MiscCategoryID = "misc"

// Category groups expenses and optionally carries a monthly spending
// allowance denominated in the primary currency. A nil AllowedPerMonth means
// no limit.
type Category struct {
	CategoryID      string           `json:"id"`
	Name            string           `json:"name"`
	AllowedPerMonth *decimal.Decimal `json:"allowedPerMonth"`
}
