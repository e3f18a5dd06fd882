package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"bobapos/internal/domain"
	"bobapos/internal/interfaces"
)

type checkoutStore struct {
	db DB
}

// NewCheckoutStore returns the transactional storage surface for the order
// engine. Every checkout runs inside one transaction: the availability check,
// the order insert, the line inserts and the inventory deductions commit or
// roll back together.
func NewCheckoutStore(db DB) interfaces.CheckoutStore {
	return &checkoutStore{db: db}
}

func (s *checkoutStore) WithinTx(ctx context.Context, fn func(tx interfaces.CheckoutTx) error) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&checkoutTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit checkout: %w", err)
	}
	return nil
}

type checkoutTx struct {
	tx Tx
}

func (t *checkoutTx) MenuItemsByName(ctx context.Context, names []string) (map[string]domain.MenuItem, error) {
	query := `
		SELECT id, name, description, price
		FROM menu_items
		WHERE name = ANY($1)
	`

	rows, err := t.tx.Query(ctx, query, names)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve menu items: %w", err)
	}
	defer rows.Close()

	items := make(map[string]domain.MenuItem, len(names))
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items[item.Name] = item
	}

	return items, rows.Err()
}

func (t *checkoutTx) RecipeLines(ctx context.Context, menuItemIDs []int64) (map[int64][]domain.RecipeLine, error) {
	query := `
		SELECT id, menu_item_id, ingredient_id, quantity, unit
		FROM recipe_lines
		WHERE menu_item_id = ANY($1)
	`

	rows, err := t.tx.Query(ctx, query, menuItemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe lines: %w", err)
	}
	defer rows.Close()

	recipes := make(map[int64][]domain.RecipeLine)
	for rows.Next() {
		var line domain.RecipeLine
		if err := rows.Scan(&line.ID, &line.MenuItemID, &line.IngredientID,
			&line.Quantity, &line.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan recipe line: %w", err)
		}
		recipes[line.MenuItemID] = append(recipes[line.MenuItemID], line)
	}

	return recipes, rows.Err()
}

// LockIngredients acquires row locks in id order, so two checkouts touching
// the same ingredients always lock in the same sequence and cannot deadlock.
func (t *checkoutTx) LockIngredients(ctx context.Context, ids []int64) (map[int64]domain.Ingredient, error) {
	query := `
		SELECT id, name, quantity, unit
		FROM ingredients
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE
	`

	rows, err := t.tx.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to lock ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := make(map[int64]domain.Ingredient, len(ids))
	for rows.Next() {
		var ing domain.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Quantity, &ing.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients[ing.ID] = ing
	}

	return ingredients, rows.Err()
}

func (t *checkoutTx) InsertOrder(ctx context.Context, order *domain.Order) (int64, error) {
	query := `
		INSERT INTO orders (customer_id, employee_id, created_at, total_amount)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := t.tx.QueryRow(ctx, query,
		order.CustomerID, order.EmployeeID, order.CreatedAt, order.TotalAmount,
	).Scan(&order.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}
	return order.ID, nil
}

func (t *checkoutTx) InsertOrderLines(ctx context.Context, orderID int64, lines []domain.OrderLine) error {
	query := `
		INSERT INTO order_lines (order_id, menu_item_id, quantity, toppings, sugar_level, ice_level)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	for i := range lines {
		err := t.tx.QueryRow(ctx, query,
			orderID, lines[i].MenuItemID, lines[i].Quantity,
			lines[i].Toppings, lines[i].SugarLevel, lines[i].IceLevel,
		).Scan(&lines[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert order line: %w", err)
		}
		lines[i].OrderID = orderID
	}
	return nil
}

// DeductIngredient applies the aggregated demand as a conditional decrement.
// The rows are already locked, so a zero row count means the guard caught a
// write that would drive on-hand negative; the transaction must abort.
func (t *checkoutTx) DeductIngredient(ctx context.Context, id int64, qty decimal.Decimal) error {
	query := `
		UPDATE ingredients
		SET quantity = quantity - $2
		WHERE id = $1 AND quantity >= $2
	`
	tag, err := t.tx.Exec(ctx, query, id, qty)
	if err != nil {
		return fmt.Errorf("failed to deduct ingredient %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("deduction of ingredient %d would drive inventory negative", id)
	}
	return nil
}
