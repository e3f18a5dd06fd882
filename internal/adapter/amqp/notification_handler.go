package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"bobapos/internal/adapter/logger"
	"bobapos/internal/interfaces"
)

// NotificationHandler prints order and stock notifications consumed in
// subscriber mode.
type NotificationHandler struct {
	logger logger.Logger
}

func NewNotificationHandler(logger logger.Logger) *NotificationHandler {
	return &NotificationHandler{logger: logger}
}

func (h *NotificationHandler) HandleOrderPlaced(ctx context.Context, body []byte) error {
	var msg interfaces.OrderPlacedMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse order placed message", "", nil, err)
		return err
	}

	h.logger.Info("order_placed_received", fmt.Sprintf("Order %d placed", msg.OrderID), "",
		map[string]interface{}{
			"order_id":     msg.OrderID,
			"total_amount": msg.TotalAmount.String(),
			"lines":        len(msg.Lines),
		})

	fmt.Printf("Order %d placed: %d line(s), total %s\n", msg.OrderID, len(msg.Lines), msg.TotalAmount.StringFixed(2))
	return nil
}

func (h *NotificationHandler) HandleLowStock(ctx context.Context, body []byte) error {
	var msg interfaces.LowStockMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse low stock message", "", nil, err)
		return err
	}

	h.logger.Info("low_stock_received", fmt.Sprintf("Ingredient %s is low", msg.Ingredient), "",
		map[string]interface{}{
			"ingredient_id": msg.IngredientID,
			"remaining":     msg.Remaining.String(),
			"threshold":     msg.Threshold.String(),
		})

	fmt.Printf("Low stock: %s down to %s (threshold %s)\n",
		msg.Ingredient, msg.Remaining.String(), msg.Threshold.String())
	return nil
}
