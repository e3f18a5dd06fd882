package domain

import (
	"github.com/shopspring/decimal"
)

const (
	ShortageReasonUnknownItem       = "menu item not found"
	ShortageReasonMissingIngredient = "ingredient not found in inventory"
)

// Shortage is one business-rule reason a checkout cannot proceed. Exactly one
// of the two forms is populated: the unknown-item form (Drink + Reason) or
// the insufficient-ingredient form (IngredientID, Ingredient, Need, Have).
type Shortage struct {
	Drink        string           `json:"drink,omitempty"`
	Reason       string           `json:"reason,omitempty"`
	IngredientID int64            `json:"ingredientId,omitempty"`
	Ingredient   string           `json:"ingredient,omitempty"`
	Need         *decimal.Decimal `json:"need,omitempty"`
	Have         *decimal.Decimal `json:"have,omitempty"`
}

// UnknownItemShortage reports a cart line whose drink name is absent from the
// menu.
func UnknownItemShortage(drink string) Shortage {
	return Shortage{Drink: drink, Reason: ShortageReasonUnknownItem}
}

// IngredientShortage reports aggregate demand exceeding on-hand quantity for
// one ingredient.
func IngredientShortage(id int64, name string, need, have decimal.Decimal) Shortage {
	return Shortage{
		IngredientID: id,
		Ingredient:   name,
		Need:         &need,
		Have:         &have,
	}
}

// MissingIngredientShortage reports a recipe referencing an ingredient that
// no longer exists in inventory.
func MissingIngredientShortage(id int64) Shortage {
	return Shortage{IngredientID: id, Reason: ShortageReasonMissingIngredient}
}

// CheckoutResult is the outcome of one checkout invocation. A rejection
// (OK=false) is a normal, user-facing outcome carrying the complete shortage
// list; it is never mixed with infrastructure errors, which are returned
// separately.
type CheckoutResult struct {
	OK          bool
	OrderID     int64
	TotalAmount decimal.Decimal
	Shortages   []Shortage
}

// Rejected builds a failed checkout result from the collected shortages.
func Rejected(shortages []Shortage) *CheckoutResult {
	return &CheckoutResult{OK: false, Shortages: shortages}
}
