package postgres

import (
	"context"
	"fmt"

	"bobapos/internal/domain"
	"bobapos/internal/interfaces"
)

type employeeRepository struct {
	db DB
}

func NewEmployeeRepository(db DB) interfaces.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	query := `
		SELECT id, name, role
		FROM employees
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var emp domain.Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Role); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

func (r *employeeRepository) CreateEmployee(ctx context.Context, emp *domain.Employee) error {
	query := `
		INSERT INTO employees (name, role)
		VALUES ($1, $2)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, emp.Name, emp.Role).Scan(&emp.ID)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

func (r *employeeRepository) UpdateEmployee(ctx context.Context, emp *domain.Employee) error {
	query := `
		UPDATE employees
		SET name = $1, role = $2
		WHERE id = $3
	`
	tag, err := r.db.Exec(ctx, query, emp.Name, emp.Role, emp.ID)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *employeeRepository) DeleteEmployee(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
