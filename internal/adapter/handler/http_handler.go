package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/rl1809/cart-manager/internal/core/domain"
	"github.com/rl1809/cart-manager/internal/core/service"
)

const requestIDHeader = "X-Request-ID"

type HTTPHandler struct {
	cartManager *service.CartManager
	logger      *slog.Logger
}

type AddProductHTTPRequest struct {
	ProductID int `json:"product_id"`
}

type UpdateAmountHTTPRequest struct {
	Amount int `json:"amount"`
}

type CartHTTPResponse struct {
	Items []domain.LineItem `json:"items"`
	Count int               `json:"count"`
	Total decimal.Decimal   `json:"total"`
}

type OperationHTTPResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Reason  domain.Reason    `json:"reason,omitempty"`
	Cart    CartHTTPResponse `json:"cart"`
}

func NewHTTPHandler(cartManager *service.CartManager, logger *slog.Logger) *HTTPHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPHandler{cartManager: cartManager, logger: logger}
}

// Router returns the HTTP API with request logging attached.
func (h *HTTPHandler) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(h.requestLogger)

	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/api/cart", h.GetCart).Methods(http.MethodGet)
	r.HandleFunc("/api/cart/items", h.AddProduct).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/items/{productId:[0-9]+}", h.UpdateProductAmount).Methods(http.MethodPatch)
	r.HandleFunc("/api/cart/items/{productId:[0-9]+}", h.RemoveProduct).Methods(http.MethodDelete)

	return r
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toCartResponse(h.cartManager.Cart()))
}

func (h *HTTPHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var req AddProductHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}
	if req.ProductID <= 0 {
		h.badRequest(w, "missing required fields")
		return
	}

	h.writeOutcome(w, h.cartManager.AddProduct(r.Context(), req.ProductID))
}

func (h *HTTPHandler) UpdateProductAmount(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(mux.Vars(r)["productId"])
	if err != nil {
		h.badRequest(w, "invalid product id")
		return
	}

	var req UpdateAmountHTTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badRequest(w, "invalid request body")
		return
	}

	h.writeOutcome(w, h.cartManager.UpdateProductAmount(r.Context(), productID, req.Amount))
}

func (h *HTTPHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(mux.Vars(r)["productId"])
	if err != nil {
		h.badRequest(w, "invalid product id")
		return
	}

	h.writeOutcome(w, h.cartManager.RemoveProduct(r.Context(), productID))
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) writeOutcome(w http.ResponseWriter, out domain.Outcome) {
	status := http.StatusOK
	message := outcomeMessage(out)

	switch out.Reason {
	case domain.ReasonStockExceeded:
		status = http.StatusConflict
	case domain.ReasonNotFound:
		status = http.StatusNotFound
	case domain.ReasonUnexpected:
		status = http.StatusInternalServerError
	}

	writeJSON(w, status, OperationHTTPResponse{
		Success: !out.Failed(),
		Message: message,
		Reason:  out.Reason,
		Cart:    toCartResponse(h.cartManager.Cart()),
	})
}

func (h *HTTPHandler) badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, OperationHTTPResponse{
		Success: false,
		Message: message,
		Cart:    toCartResponse(h.cartManager.Cart()),
	})
}

// requestLogger tags every request with an ID and logs it once served.
func (h *HTTPHandler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		h.logger.Info("http request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func outcomeMessage(out domain.Outcome) string {
	switch {
	case out.Failed():
		return out.Message
	case out.Applied:
		return "cart updated"
	default:
		return "no change"
	}
}

func toCartResponse(cart domain.Cart) CartHTTPResponse {
	if cart == nil {
		cart = domain.Cart{}
	}
	return CartHTTPResponse{
		Items: cart,
		Count: cart.Count(),
		Total: cart.Total(),
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
