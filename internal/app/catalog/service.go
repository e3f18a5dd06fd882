package catalog

import (
	"context"
	"fmt"

	"bobapos/internal/adapter/logger"
	"bobapos/internal/domain"
	"bobapos/internal/interfaces"
)

// Service implements the manager CRUD over menu items, ingredients, recipe
// lines and employees. Each entity has an explicit typed input; there is no
// generic table dispatch.
type Service struct {
	catalogRepo   interfaces.CatalogRepository
	inventoryRepo interfaces.InventoryRepository
	employeeRepo  interfaces.EmployeeRepository
	logger        logger.Logger
}

func NewService(catalogRepo interfaces.CatalogRepository, inventoryRepo interfaces.InventoryRepository,
	employeeRepo interfaces.EmployeeRepository, lgr logger.Logger) *Service {
	return &Service{
		catalogRepo:   catalogRepo,
		inventoryRepo: inventoryRepo,
		employeeRepo:  employeeRepo,
		logger:        lgr,
	}
}

// --- Menu items ---

func (s *Service) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	return s.catalogRepo.ListMenuItems(ctx)
}

func (s *Service) CreateMenuItem(ctx context.Context, in interfaces.MenuItemInput) (*domain.MenuItem, error) {
	item := &domain.MenuItem{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
	}
	if err := item.Validate(); err != nil {
		return nil, domain.NewValidationError("%s", err)
	}

	if err := s.catalogRepo.CreateMenuItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	s.logger.Info("menu_item_created", "Menu item created", "", map[string]interface{}{
		"id": item.ID, "name": item.Name,
	})
	return item, nil
}

func (s *Service) UpdateMenuItem(ctx context.Context, id int64, in interfaces.MenuItemInput) (*domain.MenuItem, error) {
	item := &domain.MenuItem{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
	}
	if err := item.Validate(); err != nil {
		return nil, domain.NewValidationError("%s", err)
	}

	if err := s.catalogRepo.UpdateMenuItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) DeleteMenuItem(ctx context.Context, id int64) error {
	if err := s.catalogRepo.DeleteMenuItem(ctx, id); err != nil {
		return err
	}
	s.logger.Info("menu_item_deleted", "Menu item and its recipe lines deleted", "", map[string]interface{}{
		"id": id,
	})
	return nil
}

// --- Ingredients ---

func (s *Service) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	return s.inventoryRepo.ListIngredients(ctx)
}

func (s *Service) CreateIngredient(ctx context.Context, in interfaces.IngredientInput) (*domain.Ingredient, error) {
	ing := &domain.Ingredient{
		Name:     in.Name,
		Quantity: in.Quantity,
		Unit:     in.Unit,
	}
	if err := ing.Validate(); err != nil {
		return nil, domain.NewValidationError("%s", err)
	}

	if err := s.inventoryRepo.CreateIngredient(ctx, ing); err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}
	return ing, nil
}

func (s *Service) UpdateIngredient(ctx context.Context, id int64, in interfaces.IngredientInput) (*domain.Ingredient, error) {
	ing := &domain.Ingredient{
		ID:       id,
		Name:     in.Name,
		Quantity: in.Quantity,
		Unit:     in.Unit,
	}
	if err := ing.Validate(); err != nil {
		return nil, domain.NewValidationError("%s", err)
	}

	if err := s.inventoryRepo.UpdateIngredient(ctx, ing); err != nil {
		return nil, err
	}

	s.logger.Info("ingredient_updated", "Ingredient set absolutely", "", map[string]interface{}{
		"id": id, "quantity": ing.Quantity.String(),
	})
	return ing, nil
}

func (s *Service) DeleteIngredient(ctx context.Context, id int64) error {
	return s.inventoryRepo.DeleteIngredient(ctx, id)
}

// --- Recipe lines ---

func (s *Service) ListRecipes(ctx context.Context) ([]domain.MenuItemRecipe, error) {
	return s.catalogRepo.ListRecipes(ctx)
}

func (s *Service) CreateRecipeLine(ctx context.Context, in interfaces.RecipeLineInput) (*domain.RecipeLine, error) {
	line := &domain.RecipeLine{
		MenuItemID:   in.MenuItemID,
		IngredientID: in.IngredientID,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
	}
	if err := line.Validate(); err != nil {
		return nil, domain.NewValidationError("%s", err)
	}

	if err := s.catalogRepo.CreateRecipeLine(ctx, line); err != nil {
		return nil, fmt.Errorf("failed to create recipe line: %w", err)
	}
	return line, nil
}

func (s *Service) UpdateRecipeLine(ctx context.Context, id int64, in interfaces.RecipeLineInput) (*domain.RecipeLine, error) {
	line := &domain.RecipeLine{
		ID:           id,
		MenuItemID:   in.MenuItemID,
		IngredientID: in.IngredientID,
		Quantity:     in.Quantity,
		Unit:         in.Unit,
	}
	if err := line.Validate(); err != nil {
		return nil, domain.NewValidationError("%s", err)
	}

	if err := s.catalogRepo.UpdateRecipeLine(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (s *Service) DeleteRecipeLine(ctx context.Context, id int64) error {
	return s.catalogRepo.DeleteRecipeLine(ctx, id)
}

// --- Employees ---

func (s *Service) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return s.employeeRepo.ListEmployees(ctx)
}

func (s *Service) CreateEmployee(ctx context.Context, in interfaces.EmployeeInput) (*domain.Employee, error) {
	emp := &domain.Employee{
		Name: in.Name,
		Role: in.Role,
	}
	if err := emp.Validate(); err != nil {
		return nil, domain.NewValidationError("%s", err)
	}

	if err := s.employeeRepo.CreateEmployee(ctx, emp); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return emp, nil
}

func (s *Service) UpdateEmployee(ctx context.Context, id int64, in interfaces.EmployeeInput) (*domain.Employee, error) {
	emp := &domain.Employee{
		ID:   id,
		Name: in.Name,
		Role: in.Role,
	}
	if err := emp.Validate(); err != nil {
		return nil, domain.NewValidationError("%s", err)
	}

	if err := s.employeeRepo.UpdateEmployee(ctx, emp); err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	return s.employeeRepo.DeleteEmployee(ctx, id)
}
