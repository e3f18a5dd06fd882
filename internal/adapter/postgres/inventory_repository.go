package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bobapos/internal/domain"
	"bobapos/internal/interfaces"
)

type inventoryRepository struct {
	db DB
}

func NewInventoryRepository(db DB) interfaces.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	query := `
		SELECT id, name, quantity, unit
		FROM ingredients
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []domain.Ingredient
	for rows.Next() {
		var ing domain.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Quantity, &ing.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ing)
	}

	return ingredients, rows.Err()
}

func (r *inventoryRepository) GetIngredient(ctx context.Context, id int64) (*domain.Ingredient, error) {
	query := `
		SELECT id, name, quantity, unit
		FROM ingredients
		WHERE id = $1
	`

	var ing domain.Ingredient
	err := r.db.QueryRow(ctx, query, id).Scan(&ing.ID, &ing.Name, &ing.Quantity, &ing.Unit)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredient: %w", err)
	}

	return &ing, nil
}

func (r *inventoryRepository) CreateIngredient(ctx context.Context, ing *domain.Ingredient) error {
	query := `
		INSERT INTO ingredients (name, quantity, unit)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, ing.Name, ing.Quantity, ing.Unit).Scan(&ing.ID)
	if err != nil {
		return fmt.Errorf("failed to create ingredient: %w", err)
	}
	return nil
}

// UpdateIngredient is an absolute set. The row update takes the same row
// lock a checkout holds during deduction, so the two writers serialize.
func (r *inventoryRepository) UpdateIngredient(ctx context.Context, ing *domain.Ingredient) error {
	query := `
		UPDATE ingredients
		SET name = $1, quantity = $2, unit = $3
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, ing.Name, ing.Quantity, ing.Unit, ing.ID)
	if err != nil {
		return fmt.Errorf("failed to update ingredient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *inventoryRepository) DeleteIngredient(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
