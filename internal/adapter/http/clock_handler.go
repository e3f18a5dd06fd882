package http

import (
	"encoding/json"
	"net/http"
	"time"

	"bobapos/internal/domain"
)

// ClockHandler exposes the adjustable system date used to backdate demo
// orders.
type ClockHandler struct {
	clock *domain.AdjustableClock
}

func NewClockHandler(clock *domain.AdjustableClock) *ClockHandler {
	return &ClockHandler{clock: clock}
}

type systemDateResponse struct {
	SystemDate string `json:"systemDate"`
}

func (h *ClockHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, systemDateResponse{SystemDate: h.clock.Now().Format(time.RFC3339)})
}

func (h *ClockHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	h.clock.SetDate(date)
	writeJSON(w, http.StatusOK, systemDateResponse{SystemDate: h.clock.Now().Format(time.RFC3339)})
}

func (h *ClockHandler) Advance(w http.ResponseWriter, r *http.Request) {
	req := struct {
		Days int `json:"days"`
	}{Days: 1}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	h.clock.AdvanceDays(req.Days)
	writeJSON(w, http.StatusOK, systemDateResponse{SystemDate: h.clock.Now().Format(time.RFC3339)})
}

func (h *ClockHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.clock.Reset()
	writeJSON(w, http.StatusOK, systemDateResponse{SystemDate: h.clock.Now().Format(time.RFC3339)})
}
