package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/marwan-kudus/jabar-onshop/internal/catalog"
	"github.com/marwan-kudus/jabar-onshop/internal/middleware"
	"github.com/marwan-kudus/jabar-onshop/internal/user"
)

type CategoryHandler struct {
	repo   catalog.Repository
	logger *log.Logger
}

func NewCategoryHandler(repo catalog.Repository, logger *log.Logger) *CategoryHandler {
	return &CategoryHandler{repo: repo, logger: logger}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	categories, err := h.repo.ListCategories(ctx)
	if err != nil {
		h.logger.Printf("list categories: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}
	if categories == nil {
		categories = []catalog.Category{}
	}

	writeJSON(w, http.StatusOK, categories)
}

type createCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	id := middleware.GetIdentity(r.Context())
	if id == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if id.Role != user.RoleAdmin {
		writeError(w, http.StatusForbidden, "admin role required")
		return
	}

	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	c := &catalog.Category{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.repo.CreateCategory(ctx, c); err != nil {
		h.logger.Printf("create category: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	writeJSON(w, http.StatusCreated, c)
}
