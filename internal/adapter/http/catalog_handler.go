package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"bobapos/internal/adapter/logger"
	"bobapos/internal/domain"
	"bobapos/internal/interfaces"
)

const defaultRecentOrders = 20

// CatalogHandler serves the read endpoints the cashier and customer pages
// consume: menu, inventory, grouped recipes and recent orders.
type CatalogHandler struct {
	admin     interfaces.AdminService
	orderRepo interfaces.OrderRepository
	logger    logger.Logger
}

func NewCatalogHandler(admin interfaces.AdminService, orderRepo interfaces.OrderRepository, lgr logger.Logger) *CatalogHandler {
	return &CatalogHandler{admin: admin, orderRepo: orderRepo, logger: lgr}
}

type menuItemResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type ingredientResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

func (h *CatalogHandler) ListMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.admin.ListMenuItems(r.Context())
	if err != nil {
		h.logger.Error("menu_list_failed", "Failed to list menu", requestIDFrom(r.Context()), nil, err)
		writeServiceError(w, err)
		return
	}

	resp := make([]menuItemResponse, len(items))
	for i, item := range items {
		resp[i] = menuItemResponse{ID: item.ID, Name: item.Name, Description: item.Description, Price: item.Price}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CatalogHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.admin.ListIngredients(r.Context())
	if err != nil {
		h.logger.Error("inventory_list_failed", "Failed to list inventory", requestIDFrom(r.Context()), nil, err)
		writeServiceError(w, err)
		return
	}

	resp := make([]ingredientResponse, len(ingredients))
	for i, ing := range ingredients {
		resp[i] = ingredientResponse{ID: ing.ID, Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CatalogHandler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.admin.ListRecipes(r.Context())
	if err != nil {
		h.logger.Error("recipes_list_failed", "Failed to list recipes", requestIDFrom(r.Context()), nil, err)
		writeServiceError(w, err)
		return
	}
	if recipes == nil {
		recipes = []domain.MenuItemRecipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}

type orderResponse struct {
	ID          int64               `json:"id"`
	CustomerID  int64               `json:"customerId"`
	EmployeeID  int64               `json:"employeeId"`
	CreatedAt   string              `json:"createdAt"`
	TotalAmount decimal.Decimal     `json:"totalAmount"`
	Lines       []orderLineResponse `json:"lines,omitempty"`
}

type orderLineResponse struct {
	MenuItemID int64  `json:"menuItemId"`
	Quantity   int    `json:"quantity"`
	Toppings   string `json:"toppings,omitempty"`
	SugarLevel string `json:"sugarLevel,omitempty"`
	IceLevel   string `json:"iceLevel,omitempty"`
}

func (h *CatalogHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orderRepo.FindByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toOrderResponse(*order, true))
}

func (h *CatalogHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentOrders
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	orders, err := h.orderRepo.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("orders_list_failed", "Failed to list orders", requestIDFrom(r.Context()), nil, err)
		writeServiceError(w, err)
		return
	}

	resp := make([]orderResponse, len(orders))
	for i, order := range orders {
		resp[i] = toOrderResponse(order, false)
	}
	writeJSON(w, http.StatusOK, resp)
}

func toOrderResponse(order domain.Order, withLines bool) orderResponse {
	resp := orderResponse{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		EmployeeID:  order.EmployeeID,
		CreatedAt:   order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		TotalAmount: order.TotalAmount,
	}
	if withLines {
		resp.Lines = make([]orderLineResponse, len(order.Lines))
		for i, line := range order.Lines {
			resp.Lines[i] = orderLineResponse{
				MenuItemID: line.MenuItemID,
				Quantity:   line.Quantity,
				Toppings:   line.Toppings,
				SugarLevel: line.SugarLevel,
				IceLevel:   line.IceLevel,
			}
		}
	}
	return resp
}
