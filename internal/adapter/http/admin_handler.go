package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"bobapos/internal/adapter/logger"
	"bobapos/internal/interfaces"
)

// AdminHandler exposes the manager CRUD endpoints. Each entity has its own
// typed request body; there is no generic table/column dispatch.
type AdminHandler struct {
	admin  interfaces.AdminService
	logger logger.Logger
}

func NewAdminHandler(admin interfaces.AdminService, lgr logger.Logger) *AdminHandler {
	return &AdminHandler{admin: admin, logger: lgr}
}

// Routes mounts the CRUD surface under one subrouter.
func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Route("/menu", func(r chi.Router) {
		r.Post("/", h.createMenuItem)
		r.Put("/{id}", h.updateMenuItem)
		r.Delete("/{id}", h.deleteMenuItem)
	})
	r.Route("/inventory", func(r chi.Router) {
		r.Post("/", h.createIngredient)
		r.Put("/{id}", h.updateIngredient)
		r.Delete("/{id}", h.deleteIngredient)
	})
	r.Route("/recipes", func(r chi.Router) {
		r.Post("/", h.createRecipeLine)
		r.Put("/{id}", h.updateRecipeLine)
		r.Delete("/{id}", h.deleteRecipeLine)
	})
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.listEmployees)
		r.Post("/", h.createEmployee)
		r.Put("/{id}", h.updateEmployee)
		r.Delete("/{id}", h.deleteEmployee)
	})

	return r
}

type menuItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type ingredientRequest struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

type recipeLineRequest struct {
	MenuItemID   int64           `json:"menuItemId"`
	IngredientID int64           `json:"ingredientId"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
}

type employeeRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

func (h *AdminHandler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.admin.CreateMenuItem(r.Context(), interfaces.MenuItemInput{
		Name: req.Name, Description: req.Description, Price: req.Price,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, menuItemResponse{
		ID: item.ID, Name: item.Name, Description: item.Description, Price: item.Price,
	})
}

func (h *AdminHandler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req menuItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.admin.UpdateMenuItem(r.Context(), id, interfaces.MenuItemInput{
		Name: req.Name, Description: req.Description, Price: req.Price,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, menuItemResponse{
		ID: item.ID, Name: item.Name, Description: item.Description, Price: item.Price,
	})
}

func (h *AdminHandler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.admin.DeleteMenuItem(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) createIngredient(w http.ResponseWriter, r *http.Request) {
	var req ingredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ing, err := h.admin.CreateIngredient(r.Context(), interfaces.IngredientInput{
		Name: req.Name, Quantity: req.Quantity, Unit: req.Unit,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ingredientResponse{
		ID: ing.ID, Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit,
	})
}

func (h *AdminHandler) updateIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req ingredientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ing, err := h.admin.UpdateIngredient(r.Context(), id, interfaces.IngredientInput{
		Name: req.Name, Quantity: req.Quantity, Unit: req.Unit,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ingredientResponse{
		ID: ing.ID, Name: ing.Name, Quantity: ing.Quantity, Unit: ing.Unit,
	})
}

func (h *AdminHandler) deleteIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.admin.DeleteIngredient(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type recipeLineResponse struct {
	ID           int64           `json:"id"`
	MenuItemID   int64           `json:"menuItemId"`
	IngredientID int64           `json:"ingredientId"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
}

func (h *AdminHandler) createRecipeLine(w http.ResponseWriter, r *http.Request) {
	var req recipeLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	line, err := h.admin.CreateRecipeLine(r.Context(), interfaces.RecipeLineInput{
		MenuItemID: req.MenuItemID, IngredientID: req.IngredientID,
		Quantity: req.Quantity, Unit: req.Unit,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, recipeLineResponse{
		ID: line.ID, MenuItemID: line.MenuItemID, IngredientID: line.IngredientID,
		Quantity: line.Quantity, Unit: line.Unit,
	})
}

func (h *AdminHandler) updateRecipeLine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req recipeLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	line, err := h.admin.UpdateRecipeLine(r.Context(), id, interfaces.RecipeLineInput{
		MenuItemID: req.MenuItemID, IngredientID: req.IngredientID,
		Quantity: req.Quantity, Unit: req.Unit,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recipeLineResponse{
		ID: line.ID, MenuItemID: line.MenuItemID, IngredientID: line.IngredientID,
		Quantity: line.Quantity, Unit: line.Unit,
	})
}

func (h *AdminHandler) deleteRecipeLine(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.admin.DeleteRecipeLine(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type employeeResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

func (h *AdminHandler) listEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.admin.ListEmployees(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := make([]employeeResponse, len(employees))
	for i, emp := range employees {
		resp[i] = employeeResponse{ID: emp.ID, Name: emp.Name, Role: emp.Role}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) createEmployee(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.admin.CreateEmployee(r.Context(), interfaces.EmployeeInput{Name: req.Name, Role: req.Role})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, employeeResponse{ID: emp.ID, Name: emp.Name, Role: emp.Role})
}

func (h *AdminHandler) updateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req employeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.admin.UpdateEmployee(r.Context(), id, interfaces.EmployeeInput{Name: req.Name, Role: req.Role})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, employeeResponse{ID: emp.ID, Name: emp.Name, Role: emp.Role})
}

func (h *AdminHandler) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.admin.DeleteEmployee(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
