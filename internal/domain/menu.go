package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// MenuItem represents a sellable drink or product on the menu.
type MenuItem struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
}

// RecipeLine is one bill-of-materials edge: how much of one ingredient a
// single unit of a menu item consumes. A menu item with no recipe lines has
// no inventory impact.
type RecipeLine struct {
	ID           int64
	MenuItemID   int64
	IngredientID int64
	Quantity     decimal.Decimal
	Unit         string
}

// RecipeIngredient is a recipe line joined with its ingredient name, used by
// the grouped recipes listing.
type RecipeIngredient struct {
	RecipeLineID   int64           `json:"recipe_line_id"`
	IngredientID   int64           `json:"ingredient_id"`
	IngredientName string          `json:"ingredient_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
}

// MenuItemRecipe groups the recipe lines of one menu item.
type MenuItemRecipe struct {
	MenuItemID   int64              `json:"menu_item_id"`
	MenuItemName string             `json:"menu_item_name"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
}

func (m *MenuItem) Validate() error {
	if m.Name == "" {
		return errors.New("menu item name is required")
	}
	if len(m.Name) > 100 {
		return errors.New("menu item name must not exceed 100 characters")
	}
	if m.Price.IsNegative() {
		return errors.New("menu item price must not be negative")
	}
	return nil
}

func (r *RecipeLine) Validate() error {
	if r.MenuItemID <= 0 {
		return errors.New("recipe line requires a menu item")
	}
	if r.IngredientID <= 0 {
		return errors.New("recipe line requires an ingredient")
	}
	if !r.Quantity.IsPositive() {
		return errors.New("recipe line quantity must be positive")
	}
	return nil
}
