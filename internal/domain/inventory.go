package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Ingredient is a tracked raw material with an on-hand quantity. The checkout
// engine is the only writer that applies relative deductions; manager CRUD
// applies absolute sets.
type Ingredient struct {
	ID       int64
	Name     string
	Quantity decimal.Decimal
	Unit     string
}

func (i *Ingredient) Validate() error {
	if i.Name == "" {
		return errors.New("ingredient name is required")
	}
	if len(i.Name) > 100 {
		return errors.New("ingredient name must not exceed 100 characters")
	}
	if i.Quantity.IsNegative() {
		return errors.New("ingredient quantity must not be negative")
	}
	if i.Unit == "" {
		return errors.New("ingredient unit is required")
	}
	return nil
}
