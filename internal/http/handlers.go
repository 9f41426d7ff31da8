package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/example/airlink-admin/internal/observability"
	"github.com/example/airlink-admin/internal/storage"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func idVar(r *http.Request) int {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	return id
}

// storeError maps the data layer's tagged errors onto HTTP statuses: absent
// rows are 404, constraint-blocked deletes are 409, everything else is the
// opaque failure the original screens showed as "operation failed".
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case storage.IsConstraintViolation(err):
		http.Error(w, "row is still referenced", http.StatusConflict)
	default:
		http.Error(w, "store error", http.StatusInternalServerError)
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	user, ok := s.auth.Authenticate(r.Context(), req.Email, req.Password)
	if !ok {
		observability.LoginsTotal.WithLabelValues("denied").Inc()
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	observability.LoginsTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, user)
}

type reportRequest struct {
	OutputPath string `json:"output_path"`
}

func (s *Server) handleTripsReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.OutputPath == "" {
		http.Error(w, "output_path is required", http.StatusBadRequest)
		return
	}
	if err := s.reports.TripsReport(r.Context(), req.OutputPath); err != nil {
		http.Error(w, "report generation failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": req.OutputPath})
}

type paymentHoldRequest struct {
	AmountCLP   int64  `json:"amount_clp"`
	Description string `json:"description"`
}

type paymentRefRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

func (s *Server) handlePaymentHold(w http.ResponseWriter, r *http.Request) {
	if s.payments == nil {
		http.Error(w, "payments not configured", http.StatusServiceUnavailable)
		return
	}
	var req paymentHoldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.AmountCLP <= 0 {
		http.Error(w, "amount_clp must be > 0", http.StatusBadRequest)
		return
	}
	id, err := s.payments.HoldTripPayment(r.Context(), req.AmountCLP, req.Description)
	if err != nil {
		s.logger.Error("payment hold", "error", err)
		http.Error(w, "payment failed", http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"payment_intent_id": id})
}

func (s *Server) handlePaymentCapture(w http.ResponseWriter, r *http.Request) {
	s.handlePaymentRef(w, r, func(id string) error { return s.payments.Capture(r.Context(), id) })
}

func (s *Server) handlePaymentCancel(w http.ResponseWriter, r *http.Request) {
	s.handlePaymentRef(w, r, func(id string) error { return s.payments.Cancel(r.Context(), id) })
}

func (s *Server) handlePaymentRef(w http.ResponseWriter, r *http.Request, op func(string) error) {
	if s.payments == nil {
		http.Error(w, "payments not configured", http.StatusServiceUnavailable)
		return
	}
	var req paymentRefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.PaymentIntentID == "" {
		http.Error(w, "payment_intent_id is required", http.StatusBadRequest)
		return
	}
	if err := op(req.PaymentIntentID); err != nil {
		s.logger.Error("payment op", "error", err)
		http.Error(w, "payment failed", http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
