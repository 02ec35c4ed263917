package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/marwan-kudus/jabar-onshop/internal/cart"
	"github.com/marwan-kudus/jabar-onshop/internal/middleware"
)

type CartHandler struct {
	repo   cart.Repository
	logger *log.Logger
}

func NewCartHandler(repo cart.Repository, logger *log.Logger) *CartHandler {
	return &CartHandler{repo: repo, logger: logger}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	lines, err := h.repo.ListLines(ctx, id.UserID)
	if err != nil {
		h.logger.Printf("list cart: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	writeJSON(w, http.StatusOK, cart.NewCart(lines))
}

type upsertLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// Upsert applies a quantity delta to one line and returns the whole cart so
// the client mirror can resynchronize in a single round trip.
func (h *CartHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req upsertLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId is required")
		return
	}
	if req.Quantity == 0 {
		writeError(w, http.StatusBadRequest, "quantity must be a non-zero integer")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	lines, err := h.repo.UpsertLine(ctx, id.UserID, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrUnknownProduct) {
			writeError(w, http.StatusBadRequest, "unknown product")
			return
		}
		h.logger.Printf("upsert cart line: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}

	writeJSON(w, http.StatusOK, cart.NewCart(lines))
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	productID := r.URL.Query().Get("productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "missing productId")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.repo.RemoveLine(ctx, id.UserID, productID); err != nil {
		h.logger.Printf("remove cart line: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update cart")
		return
	}

	lines, err := h.repo.ListLines(ctx, id.UserID)
	if err != nil {
		h.logger.Printf("list cart: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	writeJSON(w, http.StatusOK, cart.NewCart(lines))
}
