package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one requested drink with its customizations inside an
// in-progress order. It is client-supplied and never persisted standalone.
type CartLine struct {
	Drink      string
	Quantity   int
	Toppings   []string
	IceLevel   string
	SugarLevel string
}

// Cart is the full set of line items a checkout operates on.
type Cart []CartLine

// CheckoutContext carries the caller identity for a checkout. Zero values
// mean "guest" and "no cashier" respectively.
type CheckoutContext struct {
	CustomerID int64
	EmployeeID int64
}

// Order is an immutable record of one successful checkout.
type Order struct {
	ID          int64
	CustomerID  int64
	EmployeeID  int64
	CreatedAt   time.Time
	TotalAmount decimal.Decimal
	Lines       []OrderLine
}

// OrderLine is one cart line as persisted: one row per line, not per unit.
// Toppings are stored as a comma-joined label list.
type OrderLine struct {
	ID         int64
	OrderID    int64
	MenuItemID int64
	Quantity   int
	Toppings   string
	SugarLevel string
	IceLevel   string
}

// ValidateCart applies the fail-fast checks a checkout performs before any
// store access. An explicit non-positive quantity is rejected rather than
// coerced; the transport layer defaults an absent quantity to 1 beforehand.
func ValidateCart(cart Cart) error {
	if len(cart) == 0 {
		return NewValidationError("cart is empty")
	}
	for i, line := range cart {
		if strings.TrimSpace(line.Drink) == "" {
			return NewValidationError("cart line %d: drink name is required", i+1)
		}
		if line.Quantity <= 0 {
			return NewValidationError("cart line %d: quantity must be positive", i+1)
		}
	}
	return nil
}

// LineTotal computes the price of one cart line: each topping adds a fixed
// surcharge to the unit price, then the unit price is multiplied by quantity.
// Ice and sugar levels never affect the price.
func LineTotal(unitPrice, toppingSurcharge decimal.Decimal, toppingCount, quantity int) decimal.Decimal {
	unit := unitPrice.Add(toppingSurcharge.Mul(decimal.NewFromInt(int64(toppingCount))))
	return unit.Mul(decimal.NewFromInt(int64(quantity)))
}

// JoinToppings serializes topping labels for storage on an order line.
func JoinToppings(toppings []string) string {
	return strings.Join(toppings, ",")
}
