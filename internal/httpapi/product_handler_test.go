package httpapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/marwan-kudus/jabar-onshop/internal/auth"
	"github.com/marwan-kudus/jabar-onshop/internal/catalog"
	"github.com/marwan-kudus/jabar-onshop/internal/httpapi"
	"github.com/marwan-kudus/jabar-onshop/internal/user"
)

func TestProductHandler_List(t *testing.T) {
	t.Run("passes the filter through", func(t *testing.T) {
		repo := &CatalogRepositoryMock{
			ListProductsFunc: func(ctx context.Context, f catalog.Filter) ([]catalog.Product, error) {
				require.Equal(t, "cat-1", f.CategoryID)
				require.True(t, f.Featured)
				return []catalog.Product{{ID: "prod-1", Name: "Headphones"}}, nil
			},
		}
		h := httpapi.NewProductHandler(repo, testLogger)

		w := httptest.NewRecorder()
		h.List(w, httptest.NewRequest(http.MethodGet, "/api/products?categoryId=cat-1&featured=true", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "Headphones")
	})

	t.Run("returns an empty array, not null", func(t *testing.T) {
		repo := &CatalogRepositoryMock{
			ListProductsFunc: func(ctx context.Context, f catalog.Filter) ([]catalog.Product, error) {
				return nil, nil
			},
		}
		h := httpapi.NewProductHandler(repo, testLogger)

		w := httptest.NewRecorder()
		h.List(w, httptest.NewRequest(http.MethodGet, "/api/products", nil))

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "[]\n", w.Body.String())
	})
}

func TestProductHandler_Get(t *testing.T) {
	repo := &CatalogRepositoryMock{
		GetProductFunc: func(ctx context.Context, productID string) (*catalog.Product, error) {
			if productID != "prod-1" {
				return nil, catalog.ErrNotFound
			}
			return &catalog.Product{ID: "prod-1", Name: "Headphones"}, nil
		},
	}
	h := httpapi.NewProductHandler(repo, testLogger)

	t.Run("found", func(t *testing.T) {
		r := withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/prod-1", nil), "productId", "prod-1")
		w := httptest.NewRecorder()
		h.Get(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), "Headphones")
	})

	t.Run("not found", func(t *testing.T) {
		r := withURLParam(httptest.NewRequest(http.MethodGet, "/api/products/nope", nil), "productId", "nope")
		w := httptest.NewRecorder()
		h.Get(w, r)

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestProductHandler_Create(t *testing.T) {
	t.Run("rejects missing fields", func(t *testing.T) {
		h := httpapi.NewProductHandler(&CatalogRepositoryMock{}, testLogger)

		for _, body := range []string{
			`{"price": 10, "categoryId": "cat-1"}`,
			`{"name": "Headphones", "categoryId": "cat-1"}`,
			`{"name": "Headphones", "price": 10}`,
		} {
			w := httptest.NewRecorder()
			h.Create(w, authedRequest(http.MethodPost, "/api/products", body, nil))
			require.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		}
	})

	t.Run("accepts numeric strings from forms", func(t *testing.T) {
		var created *catalog.Product
		repo := &CatalogRepositoryMock{
			CreateProductFunc: func(ctx context.Context, p *catalog.Product) error {
				p.ID = "prod-1"
				created = p
				return nil
			},
		}
		h := httpapi.NewProductHandler(repo, testLogger)

		body := `{"name": "Headphones", "price": "199.99", "stock": "25", "categoryId": "cat-1", "featured": true}`
		w := httptest.NewRecorder()
		h.Create(w, authedRequest(http.MethodPost, "/api/products", body, nil))

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, created)
		require.True(t, created.Price.Equal(decimal.RequireFromString("199.99")))
		require.Equal(t, 25, created.Stock)
		require.True(t, created.Featured)
	})

	t.Run("rejects a negative price", func(t *testing.T) {
		h := httpapi.NewProductHandler(&CatalogRepositoryMock{}, testLogger)

		body := `{"name": "Headphones", "price": -1, "categoryId": "cat-1"}`
		w := httptest.NewRecorder()
		h.Create(w, authedRequest(http.MethodPost, "/api/products", body, nil))

		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProductHandler_Update(t *testing.T) {
	admin := &auth.Identity{UserID: "admin-1", Role: user.RoleAdmin}
	body := `{"name": "Headphones", "price": 149.99, "stock": 10, "categoryId": "cat-1"}`

	t.Run("requires authentication", func(t *testing.T) {
		h := httpapi.NewProductHandler(&CatalogRepositoryMock{}, testLogger)

		w := httptest.NewRecorder()
		h.Update(w, authedRequest(http.MethodPut, "/api/products/prod-1", body, nil))

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("requires the admin role", func(t *testing.T) {
		h := httpapi.NewProductHandler(&CatalogRepositoryMock{}, testLogger)

		customer := &auth.Identity{UserID: "user-1", Role: user.RoleCustomer}
		w := httptest.NewRecorder()
		h.Update(w, authedRequest(http.MethodPut, "/api/products/prod-1", body, customer))

		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("replaces the product", func(t *testing.T) {
		var updated *catalog.Product
		repo := &CatalogRepositoryMock{
			UpdateProductFunc: func(ctx context.Context, p *catalog.Product) error {
				updated = p
				return nil
			},
		}
		h := httpapi.NewProductHandler(repo, testLogger)

		r := withURLParam(authedRequest(http.MethodPut, "/api/products/prod-1", body, admin), "productId", "prod-1")
		w := httptest.NewRecorder()
		h.Update(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, updated)
		require.Equal(t, "prod-1", updated.ID)
		require.Equal(t, 10, updated.Stock)
	})

	t.Run("unknown product", func(t *testing.T) {
		repo := &CatalogRepositoryMock{
			UpdateProductFunc: func(ctx context.Context, p *catalog.Product) error {
				return catalog.ErrNotFound
			},
		}
		h := httpapi.NewProductHandler(repo, testLogger)

		r := withURLParam(authedRequest(http.MethodPut, "/api/products/nope", body, admin), "productId", "nope")
		w := httptest.NewRecorder()
		h.Update(w, r)

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
