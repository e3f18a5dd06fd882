package domain

import "errors"

// Employee is a staff member who may be attached to orders as the cashier.
type Employee struct {
	ID   int64
	Name string
	Role string
}

const (
	RoleManager = "manager"
	RoleCashier = "cashier"
)

func (e *Employee) Validate() error {
	if e.Name == "" {
		return errors.New("employee name is required")
	}
	if e.Role != RoleManager && e.Role != RoleCashier {
		return errors.New("employee role must be manager or cashier")
	}
	return nil
}
