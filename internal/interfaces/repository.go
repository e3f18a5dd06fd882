package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"bobapos/internal/domain"
)

// CatalogRepository manages menu items and their recipe lines. Deleting a
// menu item removes its recipe lines in the same transaction.
type CatalogRepository interface {
	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, id int64) error

	ListRecipes(ctx context.Context) ([]domain.MenuItemRecipe, error)
	CreateRecipeLine(ctx context.Context, line *domain.RecipeLine) error
	UpdateRecipeLine(ctx context.Context, line *domain.RecipeLine) error
	DeleteRecipeLine(ctx context.Context, id int64) error
}

// InventoryRepository manages ingredient rows with absolute writes only;
// relative deductions belong to the checkout transaction.
type InventoryRepository interface {
	ListIngredients(ctx context.Context) ([]domain.Ingredient, error)
	GetIngredient(ctx context.Context, id int64) (*domain.Ingredient, error)
	CreateIngredient(ctx context.Context, ing *domain.Ingredient) error
	UpdateIngredient(ctx context.Context, ing *domain.Ingredient) error
	DeleteIngredient(ctx context.Context, id int64) error
}

type EmployeeRepository interface {
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	CreateEmployee(ctx context.Context, emp *domain.Employee) error
	UpdateEmployee(ctx context.Context, emp *domain.Employee) error
	DeleteEmployee(ctx context.Context, id int64) error
}

// OrderRepository reads order records. Orders are written only by the
// checkout transaction and are immutable afterwards.
type OrderRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Order, error)
}

type ReportRepository interface {
	PopularDrinks(ctx context.Context, limit int) ([]domain.PopularDrink, error)
	InventoryUsage(ctx context.Context) ([]domain.IngredientUsage, error)
	DailySales(ctx context.Context, from, to time.Time) ([]domain.DailySales, error)
}

// CheckoutStore opens the single all-or-nothing unit of work a checkout runs
// in. The callback either returns nil (commit) or an error (rollback); no
// partial state is ever visible to other transactions.
type CheckoutStore interface {
	WithinTx(ctx context.Context, fn func(tx CheckoutTx) error) error
}

// CheckoutTx is the storage surface available inside a checkout transaction.
type CheckoutTx interface {
	// MenuItemsByName resolves a batch of distinct drink names. Names with
	// no matching row are simply absent from the result, not errors.
	MenuItemsByName(ctx context.Context, names []string) (map[string]domain.MenuItem, error)

	// RecipeLines returns the recipe lines of each requested menu item,
	// keyed by menu item id. Items without recipes map to no entry.
	RecipeLines(ctx context.Context, menuItemIDs []int64) (map[int64][]domain.RecipeLine, error)

	// LockIngredients reads the requested ingredient rows and holds row
	// locks on them until the transaction ends, so a concurrent checkout
	// cannot pass its sufficiency check against stale on-hand values.
	LockIngredients(ctx context.Context, ids []int64) (map[int64]domain.Ingredient, error)

	InsertOrder(ctx context.Context, order *domain.Order) (int64, error)
	InsertOrderLines(ctx context.Context, orderID int64, lines []domain.OrderLine) error

	// DeductIngredient applies one relative deduction. It fails if the
	// decrement would drive the row negative.
	DeductIngredient(ctx context.Context, id int64, qty decimal.Decimal) error
}
