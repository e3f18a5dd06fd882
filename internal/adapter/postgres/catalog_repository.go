package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bobapos/internal/domain"
	"bobapos/internal/interfaces"
)

type catalogRepository struct {
	db DB
}

func NewCatalogRepository(db DB) interfaces.CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	query := `
		SELECT id, name, description, price
		FROM menu_items
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *catalogRepository) GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	query := `
		SELECT id, name, description, price
		FROM menu_items
		WHERE id = $1
	`

	var item domain.MenuItem
	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.Name, &item.Description, &item.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}

	return &item, nil
}

func (r *catalogRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	query := `
		INSERT INTO menu_items (name, description, price)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, item.Name, item.Description, item.Price).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

func (r *catalogRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $1, description = $2, price = $3
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, item.Name, item.Description, item.Price, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteMenuItem removes the item together with its recipe lines in one
// transaction, so the recipe graph never holds dangling edges.
func (r *catalogRepository) DeleteMenuItem(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM recipe_lines WHERE menu_item_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete recipe lines: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *catalogRepository) ListRecipes(ctx context.Context) ([]domain.MenuItemRecipe, error) {
	query := `
		SELECT r.id, r.menu_item_id, m.name, r.ingredient_id, i.name, r.quantity, r.unit
		FROM recipe_lines r
		JOIN menu_items m ON r.menu_item_id = m.id
		JOIN ingredients i ON r.ingredient_id = i.id
		ORDER BY r.menu_item_id, r.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []domain.MenuItemRecipe
	byItem := make(map[int64]int)

	for rows.Next() {
		var (
			ing      domain.RecipeIngredient
			itemID   int64
			itemName string
		)
		if err := rows.Scan(&ing.RecipeLineID, &itemID, &itemName, &ing.IngredientID,
			&ing.IngredientName, &ing.Quantity, &ing.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan recipe line: %w", err)
		}

		idx, ok := byItem[itemID]
		if !ok {
			recipes = append(recipes, domain.MenuItemRecipe{
				MenuItemID:   itemID,
				MenuItemName: itemName,
			})
			idx = len(recipes) - 1
			byItem[itemID] = idx
		}
		recipes[idx].Ingredients = append(recipes[idx].Ingredients, ing)
	}

	return recipes, rows.Err()
}

func (r *catalogRepository) CreateRecipeLine(ctx context.Context, line *domain.RecipeLine) error {
	query := `
		INSERT INTO recipe_lines (menu_item_id, ingredient_id, quantity, unit)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		line.MenuItemID, line.IngredientID, line.Quantity, line.Unit,
	).Scan(&line.ID)
	if err != nil {
		return fmt.Errorf("failed to create recipe line: %w", err)
	}
	return nil
}

func (r *catalogRepository) UpdateRecipeLine(ctx context.Context, line *domain.RecipeLine) error {
	query := `
		UPDATE recipe_lines
		SET menu_item_id = $1, ingredient_id = $2, quantity = $3, unit = $4
		WHERE id = $5
	`
	tag, err := r.db.Exec(ctx, query,
		line.MenuItemID, line.IngredientID, line.Quantity, line.Unit, line.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update recipe line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *catalogRepository) DeleteRecipeLine(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM recipe_lines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
