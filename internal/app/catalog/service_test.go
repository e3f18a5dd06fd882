package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bobapos/internal/domain"
	"bobapos/internal/interfaces"
)

type nopLogger struct{}

func (nopLogger) Info(string, string, string, map[string]interface{})         {}
func (nopLogger) Debug(string, string, string, map[string]interface{})        {}
func (nopLogger) Error(string, string, string, map[string]interface{}, error) {}

// fakeCatalogRepo stores entities in memory and assigns ids sequentially.
type fakeCatalogRepo struct {
	items   map[int64]domain.MenuItem
	lines   map[int64]domain.RecipeLine
	nextID  int64
	deleted []int64
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		items:  make(map[int64]domain.MenuItem),
		lines:  make(map[int64]domain.RecipeLine),
		nextID: 1,
	}
}

func (r *fakeCatalogRepo) ListMenuItems(context.Context) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	for _, item := range r.items {
		items = append(items, item)
	}
	return items, nil
}

func (r *fakeCatalogRepo) GetMenuItem(_ context.Context, id int64) (*domain.MenuItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &item, nil
}

func (r *fakeCatalogRepo) CreateMenuItem(_ context.Context, item *domain.MenuItem) error {
	item.ID = r.nextID
	r.nextID++
	r.items[item.ID] = *item
	return nil
}

func (r *fakeCatalogRepo) UpdateMenuItem(_ context.Context, item *domain.MenuItem) error {
	if _, ok := r.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[item.ID] = *item
	return nil
}

func (r *fakeCatalogRepo) DeleteMenuItem(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	for lineID, line := range r.lines {
		if line.MenuItemID == id {
			delete(r.lines, lineID)
		}
	}
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeCatalogRepo) ListRecipes(context.Context) ([]domain.MenuItemRecipe, error) {
	return nil, nil
}

func (r *fakeCatalogRepo) CreateRecipeLine(_ context.Context, line *domain.RecipeLine) error {
	line.ID = r.nextID
	r.nextID++
	r.lines[line.ID] = *line
	return nil
}

func (r *fakeCatalogRepo) UpdateRecipeLine(_ context.Context, line *domain.RecipeLine) error {
	if _, ok := r.lines[line.ID]; !ok {
		return domain.ErrNotFound
	}
	r.lines[line.ID] = *line
	return nil
}

func (r *fakeCatalogRepo) DeleteRecipeLine(_ context.Context, id int64) error {
	if _, ok := r.lines[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.lines, id)
	return nil
}

type fakeInventoryRepo struct {
	ingredients map[int64]domain.Ingredient
	nextID      int64
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{ingredients: make(map[int64]domain.Ingredient), nextID: 1}
}

func (r *fakeInventoryRepo) ListIngredients(context.Context) ([]domain.Ingredient, error) {
	var ings []domain.Ingredient
	for _, ing := range r.ingredients {
		ings = append(ings, ing)
	}
	return ings, nil
}

func (r *fakeInventoryRepo) GetIngredient(_ context.Context, id int64) (*domain.Ingredient, error) {
	ing, ok := r.ingredients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ing, nil
}

func (r *fakeInventoryRepo) CreateIngredient(_ context.Context, ing *domain.Ingredient) error {
	ing.ID = r.nextID
	r.nextID++
	r.ingredients[ing.ID] = *ing
	return nil
}

func (r *fakeInventoryRepo) UpdateIngredient(_ context.Context, ing *domain.Ingredient) error {
	if _, ok := r.ingredients[ing.ID]; !ok {
		return domain.ErrNotFound
	}
	r.ingredients[ing.ID] = *ing
	return nil
}

func (r *fakeInventoryRepo) DeleteIngredient(_ context.Context, id int64) error {
	if _, ok := r.ingredients[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.ingredients, id)
	return nil
}

type fakeEmployeeRepo struct {
	employees map[int64]domain.Employee
	nextID    int64
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[int64]domain.Employee), nextID: 1}
}

func (r *fakeEmployeeRepo) ListEmployees(context.Context) ([]domain.Employee, error) {
	var emps []domain.Employee
	for _, emp := range r.employees {
		emps = append(emps, emp)
	}
	return emps, nil
}

func (r *fakeEmployeeRepo) CreateEmployee(_ context.Context, emp *domain.Employee) error {
	emp.ID = r.nextID
	r.nextID++
	r.employees[emp.ID] = *emp
	return nil
}

func (r *fakeEmployeeRepo) UpdateEmployee(_ context.Context, emp *domain.Employee) error {
	if _, ok := r.employees[emp.ID]; !ok {
		return domain.ErrNotFound
	}
	r.employees[emp.ID] = *emp
	return nil
}

func (r *fakeEmployeeRepo) DeleteEmployee(_ context.Context, id int64) error {
	if _, ok := r.employees[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.employees, id)
	return nil
}

func newTestService() (*Service, *fakeCatalogRepo, *fakeInventoryRepo, *fakeEmployeeRepo) {
	catalogRepo := newFakeCatalogRepo()
	inventoryRepo := newFakeInventoryRepo()
	employeeRepo := newFakeEmployeeRepo()
	return NewService(catalogRepo, inventoryRepo, employeeRepo, nopLogger{}), catalogRepo, inventoryRepo, employeeRepo
}

func TestCreateMenuItem(t *testing.T) {
	svc, repo, _, _ := newTestService()

	item, err := svc.CreateMenuItem(context.Background(), interfaces.MenuItemInput{
		Name: "Matcha Latte", Description: "ceremonial grade", Price: decimal.NewFromFloat(5.25),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)
	assert.Len(t, repo.items, 1)
}

func TestCreateMenuItemValidation(t *testing.T) {
	svc, repo, _, _ := newTestService()

	cases := []struct {
		name string
		in   interfaces.MenuItemInput
	}{
		{"empty name", interfaces.MenuItemInput{Price: decimal.NewFromInt(3)}},
		{"negative price", interfaces.MenuItemInput{Name: "Tea", Price: decimal.NewFromInt(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateMenuItem(context.Background(), tc.in)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
	assert.Empty(t, repo.items)
}

func TestDeleteMenuItemCascadesRecipeLines(t *testing.T) {
	svc, repo, _, _ := newTestService()

	item, err := svc.CreateMenuItem(context.Background(), interfaces.MenuItemInput{
		Name: "Oolong Tea", Price: decimal.NewFromInt(3),
	})
	require.NoError(t, err)

	_, err = svc.CreateRecipeLine(context.Background(), interfaces.RecipeLineInput{
		MenuItemID: item.ID, IngredientID: 5, Quantity: decimal.NewFromInt(10), Unit: "g",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMenuItem(context.Background(), item.ID))
	assert.Empty(t, repo.items)
	assert.Empty(t, repo.lines)
}

func TestDeleteMenuItemNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()
	err := svc.DeleteMenuItem(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateIngredientAbsoluteSet(t *testing.T) {
	svc, _, repo, _ := newTestService()

	ing, err := svc.CreateIngredient(context.Background(), interfaces.IngredientInput{
		Name: "Tapioca Pearls", Quantity: decimal.NewFromInt(500), Unit: "g",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateIngredient(context.Background(), ing.ID, interfaces.IngredientInput{
		Name: "Tapioca Pearls", Quantity: decimal.NewFromInt(120), Unit: "g",
	})
	require.NoError(t, err)
	assert.Equal(t, "120", updated.Quantity.String())
	assert.Equal(t, "120", repo.ingredients[ing.ID].Quantity.String())
}

func TestCreateIngredientValidation(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CreateIngredient(context.Background(), interfaces.IngredientInput{
		Name: "Sugar", Quantity: decimal.NewFromInt(-5), Unit: "g",
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = svc.CreateIngredient(context.Background(), interfaces.IngredientInput{
		Name: "Sugar", Quantity: decimal.NewFromInt(5),
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestCreateRecipeLineValidation(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CreateRecipeLine(context.Background(), interfaces.RecipeLineInput{
		MenuItemID: 1, IngredientID: 2, Quantity: decimal.Zero,
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestEmployeeCRUD(t *testing.T) {
	svc, _, _, repo := newTestService()

	emp, err := svc.CreateEmployee(context.Background(), interfaces.EmployeeInput{
		Name: "Aruzhan", Role: domain.RoleCashier,
	})
	require.NoError(t, err)

	_, err = svc.CreateEmployee(context.Background(), interfaces.EmployeeInput{
		Name: "Nobody", Role: "janitor",
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	updated, err := svc.UpdateEmployee(context.Background(), emp.ID, interfaces.EmployeeInput{
		Name: "Aruzhan", Role: domain.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleManager, updated.Role)

	require.NoError(t, svc.DeleteEmployee(context.Background(), emp.ID))
	assert.Empty(t, repo.employees)
}
