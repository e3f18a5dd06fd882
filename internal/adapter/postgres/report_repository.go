package postgres

import (
	"context"
	"fmt"
	"time"

	"bobapos/internal/domain"
	"bobapos/internal/interfaces"
)

type reportRepository struct {
	db DB
}

func NewReportRepository(db DB) interfaces.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) PopularDrinks(ctx context.Context, limit int) ([]domain.PopularDrink, error) {
	query := `
		SELECT m.id, m.name, COALESCE(SUM(ol.quantity), 0) AS units_sold
		FROM menu_items m
		LEFT JOIN order_lines ol ON ol.menu_item_id = m.id
		GROUP BY m.id, m.name
		ORDER BY units_sold DESC, m.name
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query popular drinks: %w", err)
	}
	defer rows.Close()

	var drinks []domain.PopularDrink
	for rows.Next() {
		var d domain.PopularDrink
		if err := rows.Scan(&d.MenuItemID, &d.Name, &d.UnitsSold); err != nil {
			return nil, fmt.Errorf("failed to scan popular drink: %w", err)
		}
		drinks = append(drinks, d)
	}

	return drinks, rows.Err()
}

func (r *reportRepository) InventoryUsage(ctx context.Context) ([]domain.IngredientUsage, error) {
	query := `
		SELECT i.id, i.name, COALESCE(SUM(r.quantity * ol.quantity), 0) AS total_used, i.unit
		FROM ingredients i
		LEFT JOIN recipe_lines r ON i.id = r.ingredient_id
		LEFT JOIN order_lines ol ON r.menu_item_id = ol.menu_item_id
		GROUP BY i.id, i.name, i.unit
		ORDER BY total_used DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory usage: %w", err)
	}
	defer rows.Close()

	var usage []domain.IngredientUsage
	for rows.Next() {
		var u domain.IngredientUsage
		if err := rows.Scan(&u.IngredientID, &u.Name, &u.TotalUsed, &u.Unit); err != nil {
			return nil, fmt.Errorf("failed to scan inventory usage: %w", err)
		}
		usage = append(usage, u)
	}

	return usage, rows.Err()
}

func (r *reportRepository) DailySales(ctx context.Context, from, to time.Time) ([]domain.DailySales, error) {
	query := `
		SELECT DATE_TRUNC('day', created_at) AS day, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily sales: %w", err)
	}
	defer rows.Close()

	var sales []domain.DailySales
	for rows.Next() {
		var s domain.DailySales
		if err := rows.Scan(&s.Day, &s.Orders, &s.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan daily sales: %w", err)
		}
		sales = append(sales, s)
	}

	return sales, rows.Err()
}
