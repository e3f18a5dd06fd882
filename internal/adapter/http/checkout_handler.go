package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"bobapos/internal/adapter/logger"
	"bobapos/internal/domain"
	"bobapos/internal/interfaces"
)

type CheckoutHandler struct {
	service interfaces.CheckoutService
	logger  logger.Logger
}

func NewCheckoutHandler(service interfaces.CheckoutService, lgr logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: service, logger: lgr}
}

type CheckoutRequest struct {
	Cart       []CartLineRequest `json:"cart"`
	CustomerID int64             `json:"customerId"`
	EmployeeID int64             `json:"employeeId"`
}

// CartLineRequest mirrors what the kiosk and cashier pages post. Quantity is
// a pointer so "absent" (defaults to 1) stays distinguishable from an
// explicit zero (rejected).
type CartLineRequest struct {
	Drink      string   `json:"drink"`
	Quantity   *int     `json:"quantity,omitempty"`
	Toppings   []string `json:"toppings,omitempty"`
	IceLevel   string   `json:"iceLevel,omitempty"`
	SugarLevel string   `json:"sugarLevel,omitempty"`
}

type CheckoutResponse struct {
	OK          bool              `json:"ok"`
	OrderID     int64             `json:"orderId,omitempty"`
	TotalAmount *decimal.Decimal  `json:"totalAmount,omitempty"`
	Shortages   []domain.Shortage `json:"shortages,omitempty"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	requestID := requestIDFrom(r.Context())

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart := make(domain.Cart, 0, len(req.Cart))
	for _, line := range req.Cart {
		qty := 1
		if line.Quantity != nil {
			qty = *line.Quantity
		}
		cart = append(cart, domain.CartLine{
			Drink:      strings.TrimSpace(line.Drink),
			Quantity:   qty,
			Toppings:   line.Toppings,
			IceLevel:   line.IceLevel,
			SugarLevel: line.SugarLevel,
		})
	}

	result, err := h.service.Checkout(r.Context(), cart, domain.CheckoutContext{
		CustomerID: req.CustomerID,
		EmployeeID: req.EmployeeID,
	})
	if err != nil {
		if domain.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("checkout_error", "Checkout failed", requestID, nil, err)
		writeError(w, http.StatusInternalServerError, "server error during checkout")
		return
	}

	if !result.OK {
		writeJSON(w, http.StatusBadRequest, CheckoutResponse{
			OK:        false,
			Shortages: result.Shortages,
		})
		return
	}

	writeJSON(w, http.StatusCreated, CheckoutResponse{
		OK:          true,
		OrderID:     result.OrderID,
		TotalAmount: &result.TotalAmount,
	})
}
