package interfaces

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// OrderPlacedMessage is published after a checkout commits.
type OrderPlacedMessage struct {
	OrderID     int64             `json:"order_id"`
	CustomerID  int64             `json:"customer_id"`
	EmployeeID  int64             `json:"employee_id"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Lines       []OrderPlacedLine `json:"lines"`
	PlacedAt    time.Time         `json:"placed_at"`
}

type OrderPlacedLine struct {
	Drink    string `json:"drink"`
	Quantity int    `json:"quantity"`
}

// LowStockMessage is published when a committed deduction leaves an
// ingredient at or below the configured threshold.
type LowStockMessage struct {
	IngredientID int64           `json:"ingredient_id"`
	Ingredient   string          `json:"ingredient"`
	Remaining    decimal.Decimal `json:"remaining"`
	Threshold    decimal.Decimal `json:"threshold"`
	At           time.Time       `json:"at"`
}

type MessagePublisher interface {
	PublishOrderPlaced(ctx context.Context, msg OrderPlacedMessage) error
	PublishLowStock(ctx context.Context, msg LowStockMessage) error
}

type DeliveryHandler func(ctx context.Context, body []byte) error

type MessageConsumer interface {
	ConsumeOrderPlaced(ctx context.Context, handler DeliveryHandler) error
	ConsumeLowStock(ctx context.Context, handler DeliveryHandler) error
}
