package checkout

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"bobapos/internal/adapter/logger"
	"bobapos/internal/adapter/metrics"
	"bobapos/internal/domain"
	"bobapos/internal/interfaces"
)

// errRejected signals a business-rule rejection from inside the transaction
// callback, so the store rolls back. It never escapes Checkout.
var errRejected = errors.New("checkout rejected")

// Config carries the pricing and alerting knobs of the engine.
type Config struct {
	// ToppingSurcharge is added to the unit price once per topping label.
	ToppingSurcharge decimal.Decimal
	// LowStockThreshold triggers an alert when a committed deduction
	// leaves an ingredient at or below it. Zero disables alerts.
	LowStockThreshold decimal.Decimal
}

// Service is the order engine: it resolves prices, expands the cart into
// ingredient demand through the recipe graph, checks sufficiency, and commits
// order, order lines and inventory deductions as one unit of work.
type Service struct {
	store     interfaces.CheckoutStore
	publisher interfaces.MessagePublisher
	clock     domain.Clock
	logger    logger.Logger
	checkouts *metrics.Checkout
	cfg       Config
}

func NewService(store interfaces.CheckoutStore, publisher interfaces.MessagePublisher,
	clock domain.Clock, lgr logger.Logger, checkouts *metrics.Checkout, cfg Config) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		clock:     clock,
		logger:    lgr,
		checkouts: checkouts,
		cfg:       cfg,
	}
}

// lowStockAlert is collected inside the transaction and published only after
// commit.
type lowStockAlert struct {
	ingredientID int64
	name         string
	remaining    decimal.Decimal
}

// Checkout processes one cart. Business-rule failures (unknown menu item,
// insufficient inventory) come back inside the result with the complete
// shortage list and leave no writes behind. Only validation and
// infrastructure failures are returned as errors; an infrastructure error
// always means the transaction rolled back and nothing happened.
func (s *Service) Checkout(ctx context.Context, cart domain.Cart, cc domain.CheckoutContext) (*domain.CheckoutResult, error) {
	if err := domain.ValidateCart(cart); err != nil {
		s.logger.Debug("checkout_invalid", "Cart rejected before transaction", "", map[string]interface{}{
			"reason": err.Error(),
		})
		return nil, err
	}

	start := time.Now()

	var (
		result *domain.CheckoutResult
		placed interfaces.OrderPlacedMessage
		alerts []lowStockAlert
	)

	err := s.store.WithinTx(ctx, func(tx interfaces.CheckoutTx) error {
		res, msg, low, err := s.runCheckout(ctx, tx, cart, cc)
		if err != nil {
			return err
		}
		result = res
		if !res.OK {
			return errRejected
		}
		placed = msg
		alerts = low
		return nil
	})

	switch {
	case err == nil:
		s.checkouts.Observe(metrics.OutcomeCompleted, time.Since(start))
		s.logger.Info("checkout_completed", "Order committed", "", map[string]interface{}{
			"order_id":     result.OrderID,
			"total_amount": result.TotalAmount.String(),
			"lines":        len(cart),
		})
		s.notify(ctx, placed, alerts)
		return result, nil

	case errors.Is(err, errRejected):
		s.checkouts.Observe(metrics.OutcomeRejected, time.Since(start))
		s.logger.Info("checkout_rejected", "Order rejected by business rules", "", map[string]interface{}{
			"shortages": len(result.Shortages),
		})
		return result, nil

	default:
		s.checkouts.Observe(metrics.OutcomeFailed, time.Since(start))
		s.logger.Error("checkout_failed", "Checkout transaction failed", "", nil, err)
		return nil, fmt.Errorf("checkout failed: %w", err)
	}
}

// runCheckout executes the full flow inside one open transaction:
// resolve catalog -> compute demand and total -> check inventory ->
// persist order -> persist lines -> deduct inventory.
func (s *Service) runCheckout(ctx context.Context, tx interfaces.CheckoutTx, cart domain.Cart,
	cc domain.CheckoutContext) (*domain.CheckoutResult, interfaces.OrderPlacedMessage, []lowStockAlert, error) {

	var none interfaces.OrderPlacedMessage

	// Resolve every distinct drink name in one batched lookup. Unknown
	// names become shortage entries; resolution of the rest continues so
	// all problems surface together.
	names := distinctNames(cart)
	items, err := tx.MenuItemsByName(ctx, names)
	if err != nil {
		return nil, none, nil, err
	}

	var shortages []domain.Shortage
	for _, name := range names {
		if _, ok := items[name]; !ok {
			shortages = append(shortages, domain.UnknownItemShortage(name))
		}
	}
	if len(shortages) > 0 {
		return domain.Rejected(shortages), none, nil, nil
	}

	// Compute the order total and the aggregate ingredient demand across
	// all cart lines. Two drinks sharing an ingredient must sum their
	// demand, never overwrite it.
	total := decimal.Zero
	itemIDs := make([]int64, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for _, name := range names {
		item := items[name]
		if !seen[item.ID] {
			seen[item.ID] = true
			itemIDs = append(itemIDs, item.ID)
		}
	}

	recipes, err := tx.RecipeLines(ctx, itemIDs)
	if err != nil {
		return nil, none, nil, err
	}

	demand := make(map[int64]decimal.Decimal)
	orderLines := make([]domain.OrderLine, 0, len(cart))
	placedLines := make([]interfaces.OrderPlacedLine, 0, len(cart))

	for _, line := range cart {
		item := items[line.Drink]
		total = total.Add(domain.LineTotal(item.Price, s.cfg.ToppingSurcharge, len(line.Toppings), line.Quantity))

		qty := decimal.NewFromInt(int64(line.Quantity))
		for _, rl := range recipes[item.ID] {
			demand[rl.IngredientID] = demand[rl.IngredientID].Add(rl.Quantity.Mul(qty))
		}

		orderLines = append(orderLines, domain.OrderLine{
			MenuItemID: item.ID,
			Quantity:   line.Quantity,
			Toppings:   domain.JoinToppings(line.Toppings),
			SugarLevel: line.SugarLevel,
			IceLevel:   line.IceLevel,
		})
		placedLines = append(placedLines, interfaces.OrderPlacedLine{
			Drink:    line.Drink,
			Quantity: line.Quantity,
		})
	}

	// Lock the demanded inventory rows and verify sufficiency. The full
	// shortfall list is reported, not just the first hit.
	ingredientIDs := sortedIDs(demand)
	var locked map[int64]domain.Ingredient
	if len(ingredientIDs) > 0 {
		locked, err = tx.LockIngredients(ctx, ingredientIDs)
		if err != nil {
			return nil, none, nil, err
		}

		for _, id := range ingredientIDs {
			need := demand[id]
			ing, ok := locked[id]
			if !ok {
				shortages = append(shortages, domain.MissingIngredientShortage(id))
				continue
			}
			if ing.Quantity.LessThan(need) {
				shortages = append(shortages, domain.IngredientShortage(id, ing.Name, need, ing.Quantity))
			}
		}
		if len(shortages) > 0 {
			return domain.Rejected(shortages), none, nil, nil
		}
	}

	// All checks passed: persist the order, its lines, then apply the
	// deductions. Any failure from here on rolls the whole thing back.
	order := &domain.Order{
		CustomerID:  cc.CustomerID,
		EmployeeID:  cc.EmployeeID,
		CreatedAt:   s.clock.Now(),
		TotalAmount: total,
	}
	orderID, err := tx.InsertOrder(ctx, order)
	if err != nil {
		return nil, none, nil, err
	}

	if err := tx.InsertOrderLines(ctx, orderID, orderLines); err != nil {
		return nil, none, nil, err
	}

	var alerts []lowStockAlert
	for _, id := range ingredientIDs {
		need := demand[id]
		if err := tx.DeductIngredient(ctx, id, need); err != nil {
			return nil, none, nil, err
		}

		remaining := locked[id].Quantity.Sub(need)
		if !s.cfg.LowStockThreshold.IsZero() && remaining.LessThanOrEqual(s.cfg.LowStockThreshold) {
			alerts = append(alerts, lowStockAlert{
				ingredientID: id,
				name:         locked[id].Name,
				remaining:    remaining,
			})
		}
	}

	result := &domain.CheckoutResult{
		OK:          true,
		OrderID:     orderID,
		TotalAmount: total,
	}
	placed := interfaces.OrderPlacedMessage{
		OrderID:     orderID,
		CustomerID:  cc.CustomerID,
		EmployeeID:  cc.EmployeeID,
		TotalAmount: total,
		Lines:       placedLines,
		PlacedAt:    order.CreatedAt,
	}

	return result, placed, alerts, nil
}

// notify publishes after-commit events. The order is already committed, so
// publish failures are logged and never turn a success into an error.
func (s *Service) notify(ctx context.Context, placed interfaces.OrderPlacedMessage, alerts []lowStockAlert) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.PublishOrderPlaced(ctx, placed); err != nil {
		s.logger.Error("publish_failed", "Failed to publish order placed event", "", map[string]interface{}{
			"order_id": placed.OrderID,
		}, err)
	}

	for _, a := range alerts {
		msg := interfaces.LowStockMessage{
			IngredientID: a.ingredientID,
			Ingredient:   a.name,
			Remaining:    a.remaining,
			Threshold:    s.cfg.LowStockThreshold,
			At:           s.clock.Now(),
		}
		if err := s.publisher.PublishLowStock(ctx, msg); err != nil {
			s.logger.Error("publish_failed", "Failed to publish low stock alert", "", map[string]interface{}{
				"ingredient_id": a.ingredientID,
			}, err)
		}
	}
}

// distinctNames returns the cart's drink names, first occurrence order.
func distinctNames(cart domain.Cart) []string {
	seen := make(map[string]bool, len(cart))
	names := make([]string, 0, len(cart))
	for _, line := range cart {
		if !seen[line.Drink] {
			seen[line.Drink] = true
			names = append(names, line.Drink)
		}
	}
	return names
}

// sortedIDs fixes the ingredient visit order so locks are always taken in
// the same sequence.
func sortedIDs(demand map[int64]decimal.Decimal) []int64 {
	ids := make([]int64, 0, len(demand))
	for id := range demand {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
