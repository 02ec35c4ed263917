package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/marwan-kudus/jabar-onshop/internal/catalog"
	"github.com/marwan-kudus/jabar-onshop/internal/middleware"
	"github.com/marwan-kudus/jabar-onshop/internal/user"
)

type ProductHandler struct {
	repo   catalog.Repository
	logger *log.Logger
}

func NewProductHandler(repo catalog.Repository, logger *log.Logger) *ProductHandler {
	return &ProductHandler{repo: repo, logger: logger}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	f := catalog.Filter{
		CategoryID: r.URL.Query().Get("categoryId"),
		Featured:   r.URL.Query().Get("featured") == "true",
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	products, err := h.repo.ListProducts(ctx, f)
	if err != nil {
		h.logger.Printf("list products: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}
	if products == nil {
		products = []catalog.Product{}
	}

	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.repo.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Printf("get product: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch product")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// productRequest accepts price and stock as JSON numbers or numeric strings,
// matching what the admin forms submit.
type productRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	Image       string          `json:"image"`
	Stock       json.RawMessage `json:"stock"`
	CategoryID  string          `json:"categoryId"`
	Featured    bool            `json:"featured"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if req.Name == "" || len(req.Price) == 0 || req.CategoryID == "" {
		writeError(w, http.StatusBadRequest, "missing required fields: name, price, or categoryId")
		return
	}

	price, ok := parseDecimalField(req.Price)
	if !ok || price.IsNegative() {
		writeError(w, http.StatusBadRequest, "price must be a valid number")
		return
	}

	stock := 0
	if len(req.Stock) > 0 {
		var ok bool
		stock, ok = parseIntField(req.Stock)
		if !ok || stock < 0 {
			writeError(w, http.StatusBadRequest, "stock must be a valid number")
			return
		}
	}

	p := &catalog.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Image:       req.Image,
		Stock:       stock,
		Featured:    req.Featured,
		CategoryID:  req.CategoryID,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.repo.CreateProduct(ctx, p); err != nil {
		h.logger.Printf("create product: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// Update is the admin edit: every mutable field is replaced, stock is an
// absolute set rather than a decrement.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if id.Role != user.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin role required")
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" || len(req.Price) == 0 || req.CategoryID == "" {
		writeError(w, http.StatusBadRequest, "missing required fields: name, price, or categoryId")
		return
	}
	price, ok := parseDecimalField(req.Price)
	if !ok || price.IsNegative() {
		writeError(w, http.StatusBadRequest, "price must be a valid number")
		return
	}
	stock := 0
	if len(req.Stock) > 0 {
		if stock, ok = parseIntField(req.Stock); !ok || stock < 0 {
			writeError(w, http.StatusBadRequest, "stock must be a valid number")
			return
		}
	}

	p := &catalog.Product{
		ID:          chi.URLParam(r, "productId"),
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Image:       req.Image,
		Stock:       stock,
		Featured:    req.Featured,
		CategoryID:  req.CategoryID,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.repo.UpdateProduct(ctx, p); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Printf("update product: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// parseDecimalField reads a JSON number or a quoted numeric string.
func parseDecimalField(raw json.RawMessage) (decimal.Decimal, bool) {
	s := strings.TrimSpace(string(raw))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func parseIntField(raw json.RawMessage) (int, bool) {
	s := strings.TrimSpace(string(raw))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
