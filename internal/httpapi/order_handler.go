package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/marwan-kudus/jabar-onshop/internal/events"
	"github.com/marwan-kudus/jabar-onshop/internal/middleware"
	"github.com/marwan-kudus/jabar-onshop/internal/order"
	"github.com/marwan-kudus/jabar-onshop/internal/user"
)

type OrderHandler struct {
	repo      order.Repository
	publisher events.Publisher
	logger    *log.Logger
}

func NewOrderHandler(repo order.Repository, publisher events.Publisher, logger *log.Logger) *OrderHandler {
	return &OrderHandler{repo: repo, publisher: publisher, logger: logger}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	orders, err := h.repo.ListByUser(ctx, id.UserID)
	if err != nil {
		h.logger.Printf("list orders: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch orders")
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}

	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.repo.GetByID(ctx, chi.URLParam(r, "orderId"))
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Printf("get order: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch order")
		return
	}
	// Customers can only see their own orders; a foreign id reads as absent.
	if o.UserID != id.UserID && id.Role != user.RoleAdmin {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	writeJSON(w, http.StatusOK, o)
}

type placeOrderItem struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type placeOrderRequest struct {
	Items           []placeOrderItem       `json:"items"`
	ShippingAddress *order.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	Total           *decimal.Decimal       `json:"total"`
	Notes           string                 `json:"notes"`
}

// Create invokes the cart reconciler: one transaction creates the order with
// its price snapshots, decrements stock and clears the user's cart. The
// item prices and total are taken from the request as quoted to the client.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "order items are required")
		return
	}
	if req.ShippingAddress == nil || req.Total == nil {
		writeError(w, http.StatusBadRequest, "shipping address and total are required")
		return
	}
	if req.Total.IsNegative() {
		writeError(w, http.StatusBadRequest, "total must not be negative")
		return
	}
	for _, it := range req.Items {
		if it.ProductID == "" || it.Quantity <= 0 || it.Price.IsNegative() {
			writeError(w, http.StatusBadRequest, "each item needs a productId, a positive quantity and a non-negative price")
			return
		}
	}

	o := &order.Order{
		UserID:          id.UserID,
		Status:          order.StatusPending,
		Total:           *req.Total,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   order.PaymentPending,
		ShippingAddress: *req.ShippingAddress,
		Notes:           req.Notes,
	}
	for _, it := range req.Items {
		o.Items = append(o.Items, order.Item{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.repo.Create(ctx, o); err != nil {
		var stockErr *order.InsufficientStockError
		if errors.As(err, &stockErr) {
			writeError(w, http.StatusConflict, stockErr.Error())
			return
		}
		h.logger.Printf("create order: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	if err := h.publisher.PublishOrderCreated(ctx, o); err != nil {
		// the order is committed; a lost event must not fail the request
		h.logger.Printf("publish OrderCreated for %s: %v", o.ID, err)
	}

	created, err := h.repo.GetByID(ctx, o.ID)
	if err != nil {
		h.logger.Printf("reload order %s: %v", o.ID, err)
		writeJSON(w, http.StatusCreated, o)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
