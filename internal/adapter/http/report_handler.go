package http

import (
	"net/http"
	"strconv"
	"time"

	"bobapos/internal/adapter/logger"
	"bobapos/internal/interfaces"
)

type ReportHandler struct {
	service interfaces.ReportingService
	logger  logger.Logger
}

func NewReportHandler(service interfaces.ReportingService, lgr logger.Logger) *ReportHandler {
	return &ReportHandler{service: service, logger: lgr}
}

func (h *ReportHandler) PopularDrinks(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	drinks, err := h.service.PopularDrinks(r.Context(), limit)
	if err != nil {
		h.logger.Error("report_failed", "Popular drinks report failed", requestIDFrom(r.Context()), nil, err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"drinks": drinks})
}

func (h *ReportHandler) InventoryUsage(w http.ResponseWriter, r *http.Request) {
	usage, err := h.service.InventoryUsage(r.Context())
	if err != nil {
		h.logger.Error("report_failed", "Inventory usage report failed", requestIDFrom(r.Context()), nil, err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, usage)
}

func (h *ReportHandler) DailySales(w http.ResponseWriter, r *http.Request) {
	var from, to time.Time
	var err error

	if v := r.URL.Query().Get("from"); v != "" {
		from, err = time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from date, expected YYYY-MM-DD")
			return
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		to, err = time.Parse("2006-01-02", v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to date, expected YYYY-MM-DD")
			return
		}
	}

	sales, err := h.service.DailySales(r.Context(), from, to)
	if err != nil {
		h.logger.Error("report_failed", "Daily sales report failed", requestIDFrom(r.Context()), nil, err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sales)
}
