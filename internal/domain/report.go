package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PopularDrink is one row of the top-sellers report.
type PopularDrink struct {
	MenuItemID int64  `json:"menu_item_id"`
	Name       string `json:"name"`
	UnitsSold  int64  `json:"units_sold"`
}

// IngredientUsage is the total consumption of one ingredient implied by all
// recorded order lines and their recipes.
type IngredientUsage struct {
	IngredientID int64           `json:"ingredient_id"`
	Name         string          `json:"name"`
	TotalUsed    decimal.Decimal `json:"total_used"`
	Unit         string          `json:"unit"`
}

// DailySales aggregates order count and revenue for one calendar day.
type DailySales struct {
	Day     time.Time       `json:"day"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}
