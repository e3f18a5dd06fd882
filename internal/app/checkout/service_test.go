package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

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

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakePublisher struct {
	mu         sync.Mutex
	placed     []interfaces.OrderPlacedMessage
	lowStock   []interfaces.LowStockMessage
	publishErr error
}

func (p *fakePublisher) PublishOrderPlaced(_ context.Context, msg interfaces.OrderPlacedMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.publishErr != nil {
		return p.publishErr
	}
	p.placed = append(p.placed, msg)
	return nil
}

func (p *fakePublisher) PublishLowStock(_ context.Context, msg interfaces.LowStockMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.publishErr != nil {
		return p.publishErr
	}
	p.lowStock = append(p.lowStock, msg)
	return nil
}

// fakeState is the in-memory database behind fakeStore.
type fakeState struct {
	menu        map[string]domain.MenuItem
	recipes     map[int64][]domain.RecipeLine
	ingredients map[int64]domain.Ingredient
	orders      []domain.Order
	orderLines  []domain.OrderLine
	nextOrderID int64
}

func (s fakeState) clone() fakeState {
	c := fakeState{
		menu:        make(map[string]domain.MenuItem, len(s.menu)),
		recipes:     make(map[int64][]domain.RecipeLine, len(s.recipes)),
		ingredients: make(map[int64]domain.Ingredient, len(s.ingredients)),
		orders:      append([]domain.Order(nil), s.orders...),
		orderLines:  append([]domain.OrderLine(nil), s.orderLines...),
		nextOrderID: s.nextOrderID,
	}
	for k, v := range s.menu {
		c.menu[k] = v
	}
	for k, v := range s.recipes {
		c.recipes[k] = append([]domain.RecipeLine(nil), v...)
	}
	for k, v := range s.ingredients {
		c.ingredients[k] = v
	}
	return c
}

// fakeStore serializes transactions with a mutex, the way row locks serialize
// conflicting checkouts, and restores a snapshot on any callback error so a
// failed transaction leaves no writes behind.
type fakeStore struct {
	mu    sync.Mutex
	state fakeState

	failInsertOrder bool
	failInsertLines bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{state: fakeState{
		menu:        make(map[string]domain.MenuItem),
		recipes:     make(map[int64][]domain.RecipeLine),
		ingredients: make(map[int64]domain.Ingredient),
		nextOrderID: 1,
	}}
}

func (s *fakeStore) addDrink(item domain.MenuItem, lines ...domain.RecipeLine) {
	s.state.menu[item.Name] = item
	s.state.recipes[item.ID] = append(s.state.recipes[item.ID], lines...)
}

func (s *fakeStore) addIngredient(ing domain.Ingredient) {
	s.state.ingredients[ing.ID] = ing
}

func (s *fakeStore) ingredientQty(id int64) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ingredients[id].Quantity
}

func (s *fakeStore) WithinTx(_ context.Context, fn func(tx interfaces.CheckoutTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(&fakeTx{store: s}); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) MenuItemsByName(_ context.Context, names []string) (map[string]domain.MenuItem, error) {
	items := make(map[string]domain.MenuItem)
	for _, name := range names {
		if item, ok := t.store.state.menu[name]; ok {
			items[name] = item
		}
	}
	return items, nil
}

func (t *fakeTx) RecipeLines(_ context.Context, menuItemIDs []int64) (map[int64][]domain.RecipeLine, error) {
	recipes := make(map[int64][]domain.RecipeLine)
	for _, id := range menuItemIDs {
		if lines, ok := t.store.state.recipes[id]; ok && len(lines) > 0 {
			recipes[id] = lines
		}
	}
	return recipes, nil
}

func (t *fakeTx) LockIngredients(_ context.Context, ids []int64) (map[int64]domain.Ingredient, error) {
	locked := make(map[int64]domain.Ingredient)
	for _, id := range ids {
		if ing, ok := t.store.state.ingredients[id]; ok {
			locked[id] = ing
		}
	}
	return locked, nil
}

func (t *fakeTx) InsertOrder(_ context.Context, order *domain.Order) (int64, error) {
	if t.store.failInsertOrder {
		return 0, errors.New("insert order: connection reset")
	}
	order.ID = t.store.state.nextOrderID
	t.store.state.nextOrderID++
	t.store.state.orders = append(t.store.state.orders, *order)
	return order.ID, nil
}

func (t *fakeTx) InsertOrderLines(_ context.Context, orderID int64, lines []domain.OrderLine) error {
	if t.store.failInsertLines {
		return errors.New("insert order lines: connection reset")
	}
	for i := range lines {
		lines[i].OrderID = orderID
		t.store.state.orderLines = append(t.store.state.orderLines, lines[i])
	}
	return nil
}

func (t *fakeTx) DeductIngredient(_ context.Context, id int64, qty decimal.Decimal) error {
	ing, ok := t.store.state.ingredients[id]
	if !ok {
		return errors.New("ingredient vanished")
	}
	if ing.Quantity.LessThan(qty) {
		return errors.New("deduction would drive inventory negative")
	}
	ing.Quantity = ing.Quantity.Sub(qty)
	t.store.state.ingredients[id] = ing
	return nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestService(store *fakeStore, pub *fakePublisher, cfg Config) *Service {
	if cfg.ToppingSurcharge.IsZero() {
		cfg.ToppingSurcharge = dec("1.00")
	}
	clock := fixedClock{t: time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC)}
	return NewService(store, pub, clock, nopLogger{}, nil, cfg)
}

// seedTeaShop loads the fixture both Tea and Latte share Sugar in, so tests
// can exercise cross-line demand aggregation.
//
//	Tea   (id 1, 3.00): 50 Sugar, 10 Tea Leaves
//	Latte (id 2, 4.00): 20 Sugar, 30 Milk
func seedTeaShop(store *fakeStore) {
	store.addDrink(domain.MenuItem{ID: 1, Name: "Tea", Price: dec("3.00")},
		domain.RecipeLine{ID: 1, MenuItemID: 1, IngredientID: 10, Quantity: dec("50"), Unit: "g"},
		domain.RecipeLine{ID: 2, MenuItemID: 1, IngredientID: 11, Quantity: dec("10"), Unit: "g"},
	)
	store.addDrink(domain.MenuItem{ID: 2, Name: "Latte", Price: dec("4.00")},
		domain.RecipeLine{ID: 3, MenuItemID: 2, IngredientID: 10, Quantity: dec("20"), Unit: "g"},
		domain.RecipeLine{ID: 4, MenuItemID: 2, IngredientID: 12, Quantity: dec("30"), Unit: "ml"},
	)
	store.addIngredient(domain.Ingredient{ID: 10, Name: "Sugar", Quantity: dec("140"), Unit: "g"})
	store.addIngredient(domain.Ingredient{ID: 11, Name: "Tea Leaves", Quantity: dec("100"), Unit: "g"})
	store.addIngredient(domain.Ingredient{ID: 12, Name: "Milk", Quantity: dec("100"), Unit: "ml"})
}

func TestCheckoutSuccess(t *testing.T) {
	store := newFakeStore()
	seedTeaShop(store)
	pub := &fakePublisher{}
	svc := newTestService(store, pub, Config{})

	cart := domain.Cart{
		{Drink: "Tea", Quantity: 2, SugarLevel: "50%", IceLevel: "less"},
		{Drink: "Latte", Quantity: 1},
	}
	res, err := svc.Checkout(context.Background(), cart, domain.CheckoutContext{CustomerID: 7, EmployeeID: 3})
	require.NoError(t, err)
	require.True(t, res.OK)
	assert.Equal(t, int64(1), res.OrderID)
	assert.Equal(t, "10.00", res.TotalAmount.StringFixed(2)) // 2*3.00 + 4.00

	// Sugar: 2*50 + 20 = 120 consumed of 140; Tea Leaves 2*10; Milk 30.
	assert.Equal(t, "20", store.ingredientQty(10).String())
	assert.Equal(t, "80", store.ingredientQty(11).String())
	assert.Equal(t, "70", store.ingredientQty(12).String())

	require.Len(t, store.state.orders, 1)
	order := store.state.orders[0]
	assert.Equal(t, int64(7), order.CustomerID)
	assert.Equal(t, int64(3), order.EmployeeID)
	assert.Equal(t, time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC), order.CreatedAt)

	require.Len(t, store.state.orderLines, 2)
	assert.Equal(t, "50%", store.state.orderLines[0].SugarLevel)
	assert.Equal(t, "less", store.state.orderLines[0].IceLevel)

	require.Len(t, pub.placed, 1)
	assert.Equal(t, int64(1), pub.placed[0].OrderID)
	assert.Len(t, pub.placed[0].Lines, 2)
}

func TestCheckoutToppingPricing(t *testing.T) {
	store := newFakeStore()
	store.addDrink(domain.MenuItem{ID: 1, Name: "Brown Sugar Milk Tea", Price: dec("4.00")})
	svc := newTestService(store, &fakePublisher{}, Config{})

	cart := domain.Cart{{
		Drink:    "Brown Sugar Milk Tea",
		Quantity: 2,
		Toppings: []string{"boba", "pudding"},
	}}
	res, err := svc.Checkout(context.Background(), cart, domain.CheckoutContext{})
	require.NoError(t, err)
	require.True(t, res.OK)

	// (4.00 + 2 * 1.00) * 2
	assert.Equal(t, "12.00", res.TotalAmount.StringFixed(2))
	require.Len(t, store.state.orderLines, 1)
	assert.Equal(t, "boba,pudding", store.state.orderLines[0].Toppings)
}

func TestCheckoutAggregatesSharedIngredientDemand(t *testing.T) {
	store := newFakeStore()
	store.addDrink(domain.MenuItem{ID: 1, Name: "Milk Tea", Price: dec("3.50")},
		domain.RecipeLine{ID: 1, MenuItemID: 1, IngredientID: 10, Quantity: dec("50"), Unit: "g"},
	)
	store.addIngredient(domain.Ingredient{ID: 10, Name: "Sugar", Quantity: dec("100"), Unit: "g"})
	svc := newTestService(store, &fakePublisher{}, Config{})

	// Three units need 150 sugar; per-unit checks would pass, the aggregate
	// must not.
	res, err := svc.Checkout(context.Background(),
		domain.Cart{{Drink: "Milk Tea", Quantity: 3}}, domain.CheckoutContext{})
	require.NoError(t, err)
	require.False(t, res.OK)

	require.Len(t, res.Shortages, 1)
	sh := res.Shortages[0]
	assert.Equal(t, int64(10), sh.IngredientID)
	assert.Equal(t, "Sugar", sh.Ingredient)
	assert.Equal(t, "150", sh.Need.String())
	assert.Equal(t, "100", sh.Have.String())

	// Rejection leaves nothing behind.
	assert.Equal(t, "100", store.ingredientQty(10).String())
	assert.Empty(t, store.state.orders)
	assert.Empty(t, store.state.orderLines)
}

func TestCheckoutUnknownDrink(t *testing.T) {
	store := newFakeStore()
	seedTeaShop(store)
	svc := newTestService(store, &fakePublisher{}, Config{})

	res, err := svc.Checkout(context.Background(), domain.Cart{
		{Drink: "Tea", Quantity: 1},
		{Drink: "Unicorn Frappe", Quantity: 1},
	}, domain.CheckoutContext{})
	require.NoError(t, err)
	require.False(t, res.OK)

	require.Len(t, res.Shortages, 1)
	assert.Equal(t, "Unicorn Frappe", res.Shortages[0].Drink)
	assert.Equal(t, domain.ShortageReasonUnknownItem, res.Shortages[0].Reason)

	// The known line must not have been partially processed.
	assert.Equal(t, "140", store.ingredientQty(10).String())
	assert.Empty(t, store.state.orders)
}

func TestCheckoutReportsAllShortages(t *testing.T) {
	store := newFakeStore()
	seedTeaShop(store)
	store.addIngredient(domain.Ingredient{ID: 10, Name: "Sugar", Quantity: dec("10"), Unit: "g"})
	store.addIngredient(domain.Ingredient{ID: 12, Name: "Milk", Quantity: dec("5"), Unit: "ml"})
	svc := newTestService(store, &fakePublisher{}, Config{})

	res, err := svc.Checkout(context.Background(), domain.Cart{
		{Drink: "Tea", Quantity: 1},
		{Drink: "Latte", Quantity: 1},
	}, domain.CheckoutContext{})
	require.NoError(t, err)
	require.False(t, res.OK)

	// Both insufficient ingredients appear, not just the first.
	require.Len(t, res.Shortages, 2)
	ids := []int64{res.Shortages[0].IngredientID, res.Shortages[1].IngredientID}
	assert.ElementsMatch(t, []int64{10, 12}, ids)
}

func TestCheckoutMissingIngredient(t *testing.T) {
	store := newFakeStore()
	store.addDrink(domain.MenuItem{ID: 1, Name: "Taro Slush", Price: dec("5.00")},
		domain.RecipeLine{ID: 1, MenuItemID: 1, IngredientID: 99, Quantity: dec("40"), Unit: "g"},
	)
	svc := newTestService(store, &fakePublisher{}, Config{})

	res, err := svc.Checkout(context.Background(),
		domain.Cart{{Drink: "Taro Slush", Quantity: 1}}, domain.CheckoutContext{})
	require.NoError(t, err)
	require.False(t, res.OK)
	require.Len(t, res.Shortages, 1)
	assert.Equal(t, int64(99), res.Shortages[0].IngredientID)
	assert.Equal(t, domain.ShortageReasonMissingIngredient, res.Shortages[0].Reason)
}

func TestCheckoutDrinkWithoutRecipe(t *testing.T) {
	store := newFakeStore()
	store.addDrink(domain.MenuItem{ID: 1, Name: "Bottled Water", Price: dec("1.50")})
	svc := newTestService(store, &fakePublisher{}, Config{})

	res, err := svc.Checkout(context.Background(),
		domain.Cart{{Drink: "Bottled Water", Quantity: 2}}, domain.CheckoutContext{})
	require.NoError(t, err)
	require.True(t, res.OK)
	assert.Equal(t, "3.00", res.TotalAmount.StringFixed(2))
	assert.Len(t, store.state.orders, 1)
}

func TestCheckoutValidation(t *testing.T) {
	store := newFakeStore()
	seedTeaShop(store)
	svc := newTestService(store, &fakePublisher{}, Config{})

	cases := []struct {
		name string
		cart domain.Cart
	}{
		{"empty cart", domain.Cart{}},
		{"blank drink", domain.Cart{{Drink: "   ", Quantity: 1}}},
		{"zero quantity", domain.Cart{{Drink: "Tea", Quantity: 0}}},
		{"negative quantity", domain.Cart{{Drink: "Tea", Quantity: -2}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := svc.Checkout(context.Background(), tc.cart, domain.CheckoutContext{})
			assert.Nil(t, res)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err))
		})
	}
	assert.Empty(t, store.state.orders)
}

func TestCheckoutRollsBackOnPersistFailure(t *testing.T) {
	store := newFakeStore()
	seedTeaShop(store)
	store.failInsertLines = true
	svc := newTestService(store, &fakePublisher{}, Config{})

	res, err := svc.Checkout(context.Background(),
		domain.Cart{{Drink: "Tea", Quantity: 1}}, domain.CheckoutContext{})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.False(t, domain.IsValidation(err))

	// The order insert succeeded before the line insert failed; the
	// rollback must erase it along with any deductions.
	assert.Empty(t, store.state.orders)
	assert.Empty(t, store.state.orderLines)
	assert.Equal(t, "140", store.ingredientQty(10).String())
	assert.Equal(t, "100", store.ingredientQty(11).String())
}

func TestCheckoutRejectionIsRepeatable(t *testing.T) {
	store := newFakeStore()
	store.addDrink(domain.MenuItem{ID: 1, Name: "Milk Tea", Price: dec("3.50")},
		domain.RecipeLine{ID: 1, MenuItemID: 1, IngredientID: 10, Quantity: dec("50"), Unit: "g"},
	)
	store.addIngredient(domain.Ingredient{ID: 10, Name: "Sugar", Quantity: dec("40"), Unit: "g"})
	svc := newTestService(store, &fakePublisher{}, Config{})

	for i := 0; i < 2; i++ {
		res, err := svc.Checkout(context.Background(),
			domain.Cart{{Drink: "Milk Tea", Quantity: 1}}, domain.CheckoutContext{})
		require.NoError(t, err)
		require.False(t, res.OK)
		require.Len(t, res.Shortages, 1)
		assert.Equal(t, "50", res.Shortages[0].Need.String())
		assert.Equal(t, "40", res.Shortages[0].Have.String())
	}
	assert.Equal(t, "40", store.ingredientQty(10).String())
}

func TestCheckoutConcurrentNoOversell(t *testing.T) {
	store := newFakeStore()
	store.addDrink(domain.MenuItem{ID: 1, Name: "Milk Tea", Price: dec("3.50")},
		domain.RecipeLine{ID: 1, MenuItemID: 1, IngredientID: 10, Quantity: dec("50"), Unit: "g"},
	)
	// Enough sugar for exactly 3 drinks.
	store.addIngredient(domain.Ingredient{ID: 10, Name: "Sugar", Quantity: dec("150"), Unit: "g"})
	svc := newTestService(store, &fakePublisher{}, Config{})

	const workers = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	var completed, rejected int

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := svc.Checkout(context.Background(),
				domain.Cart{{Drink: "Milk Tea", Quantity: 1}}, domain.CheckoutContext{})
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			if res.OK {
				completed++
			} else {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, completed)
	assert.Equal(t, workers-3, rejected)
	assert.Equal(t, "0", store.ingredientQty(10).String())
	assert.False(t, store.ingredientQty(10).IsNegative())
	assert.Len(t, store.state.orders, 3)
}

func TestCheckoutLowStockAlert(t *testing.T) {
	store := newFakeStore()
	store.addDrink(domain.MenuItem{ID: 1, Name: "Milk Tea", Price: dec("3.50")},
		domain.RecipeLine{ID: 1, MenuItemID: 1, IngredientID: 10, Quantity: dec("50"), Unit: "g"},
	)
	store.addIngredient(domain.Ingredient{ID: 10, Name: "Sugar", Quantity: dec("60"), Unit: "g"})
	pub := &fakePublisher{}
	svc := newTestService(store, pub, Config{LowStockThreshold: dec("20")})

	res, err := svc.Checkout(context.Background(),
		domain.Cart{{Drink: "Milk Tea", Quantity: 1}}, domain.CheckoutContext{})
	require.NoError(t, err)
	require.True(t, res.OK)

	require.Len(t, pub.lowStock, 1)
	alert := pub.lowStock[0]
	assert.Equal(t, int64(10), alert.IngredientID)
	assert.Equal(t, "Sugar", alert.Ingredient)
	assert.Equal(t, "10", alert.Remaining.String())
	assert.Equal(t, "20", alert.Threshold.String())
}

func TestCheckoutPublishFailureDoesNotFailOrder(t *testing.T) {
	store := newFakeStore()
	seedTeaShop(store)
	pub := &fakePublisher{publishErr: errors.New("broker unavailable")}
	svc := newTestService(store, pub, Config{})

	res, err := svc.Checkout(context.Background(),
		domain.Cart{{Drink: "Tea", Quantity: 1}}, domain.CheckoutContext{})
	require.NoError(t, err)
	require.True(t, res.OK)
	assert.Len(t, store.state.orders, 1)
}
