package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"bobapos/internal/domain"
)

// CheckoutService is the order engine boundary.
type CheckoutService interface {
	Checkout(ctx context.Context, cart domain.Cart, cc domain.CheckoutContext) (*domain.CheckoutResult, error)
}

// Admin input commands. Fields are explicit per entity; there is no generic
// table/column dispatch.
type MenuItemInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
}

type IngredientInput struct {
	Name     string
	Quantity decimal.Decimal
	Unit     string
}

type RecipeLineInput struct {
	MenuItemID   int64
	IngredientID int64
	Quantity     decimal.Decimal
	Unit         string
}

type EmployeeInput struct {
	Name string
	Role string
}

// AdminService covers manager CRUD over the four administered entities.
type AdminService interface {
	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, in MenuItemInput) (*domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id int64, in MenuItemInput) (*domain.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id int64) error

	ListIngredients(ctx context.Context) ([]domain.Ingredient, error)
	CreateIngredient(ctx context.Context, in IngredientInput) (*domain.Ingredient, error)
	UpdateIngredient(ctx context.Context, id int64, in IngredientInput) (*domain.Ingredient, error)
	DeleteIngredient(ctx context.Context, id int64) error

	ListRecipes(ctx context.Context) ([]domain.MenuItemRecipe, error)
	CreateRecipeLine(ctx context.Context, in RecipeLineInput) (*domain.RecipeLine, error)
	UpdateRecipeLine(ctx context.Context, id int64, in RecipeLineInput) (*domain.RecipeLine, error)
	DeleteRecipeLine(ctx context.Context, id int64) error

	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	CreateEmployee(ctx context.Context, in EmployeeInput) (*domain.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, in EmployeeInput) (*domain.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
}

// ReportingService serves the read-only aggregate queries.
type ReportingService interface {
	PopularDrinks(ctx context.Context, limit int) ([]domain.PopularDrink, error)
	InventoryUsage(ctx context.Context) ([]domain.IngredientUsage, error)
	DailySales(ctx context.Context, from, to time.Time) ([]domain.DailySales, error)
}
