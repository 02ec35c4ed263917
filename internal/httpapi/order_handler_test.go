package httpapi_test

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/marwan-kudus/jabar-onshop/internal/auth"
	"github.com/marwan-kudus/jabar-onshop/internal/httpapi"
	"github.com/marwan-kudus/jabar-onshop/internal/middleware"
	"github.com/marwan-kudus/jabar-onshop/internal/order"
	"github.com/marwan-kudus/jabar-onshop/internal/user"
)

var testLogger = log.New(io.Discard, "", 0)

func authedRequest(method, target, body string, id *auth.Identity) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if id != nil {
		r = r.WithContext(middleware.WithIdentity(r.Context(), id))
	}
	return r
}

func TestOrderHandler_Create(t *testing.T) {
	identity := &auth.Identity{UserID: "user-1", Role: user.RoleCustomer}

	validBody := `{
		"items": [{"productId": "prod-1", "quantity": 2, "price": 19.99}],
		"shippingAddress": {"street": "1 Main St", "city": "Aarhus", "state": "", "postalCode": "8000", "country": "DK"},
		"paymentMethod": "credit_card",
		"total": 39.98
	}`

	t.Run("requires authentication", func(t *testing.T) {
		h := httpapi.NewOrderHandler(&OrderRepositoryMock{}, &PublisherMock{}, testLogger)

		w := httptest.NewRecorder()
		h.Create(w, authedRequest(http.MethodPost, "/api/orders", validBody, nil))

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects empty items", func(t *testing.T) {
		h := httpapi.NewOrderHandler(&OrderRepositoryMock{}, &PublisherMock{}, testLogger)

		body := `{"items": [], "shippingAddress": {"street": "1 Main St"}, "total": 0}`
		w := httptest.NewRecorder()
		h.Create(w, authedRequest(http.MethodPost, "/api/orders", body, identity))

		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Contains(t, w.Body.String(), "order items are required")
	})

	t.Run("rejects missing shipping address", func(t *testing.T) {
		h := httpapi.NewOrderHandler(&OrderRepositoryMock{}, &PublisherMock{}, testLogger)

		body := `{"items": [{"productId": "prod-1", "quantity": 1, "price": 5}], "total": 5}`
		w := httptest.NewRecorder()
		h.Create(w, authedRequest(http.MethodPost, "/api/orders", body, identity))

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects missing total", func(t *testing.T) {
		h := httpapi.NewOrderHandler(&OrderRepositoryMock{}, &PublisherMock{}, testLogger)

		body := `{"items": [{"productId": "prod-1", "quantity": 1, "price": 5}], "shippingAddress": {"street": "1 Main St"}}`
		w := httptest.NewRecorder()
		h.Create(w, authedRequest(http.MethodPost, "/api/orders", body, identity))

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		h := httpapi.NewOrderHandler(&OrderRepositoryMock{}, &PublisherMock{}, testLogger)

		body := `{"items": [{"productId": "prod-1", "quantity": 0, "price": 5}], "shippingAddress": {"street": "1 Main St"}, "total": 0}`
		w := httptest.NewRecorder()
		h.Create(w, authedRequest(http.MethodPost, "/api/orders", body, identity))

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("creates order and publishes event", func(t *testing.T) {
		var created *order.Order
		repo := &OrderRepositoryMock{
			CreateFunc: func(ctx context.Context, o *order.Order) error {
				o.ID = "order-1"
				created = o
				return nil
			},
			GetByIDFunc: func(ctx context.Context, orderID string) (*order.Order, error) {
				require.Equal(t, "order-1", orderID)
				return created, nil
			},
		}
		published := 0
		pub := &PublisherMock{
			PublishOrderCreatedFunc: func(ctx context.Context, o *order.Order) error {
				published++
				require.Equal(t, "order-1", o.ID)
				return nil
			},
		}
		h := httpapi.NewOrderHandler(repo, pub, testLogger)

		w := httptest.NewRecorder()
		h.Create(w, authedRequest(http.MethodPost, "/api/orders", validBody, identity))

		require.Equal(t, http.StatusCreated, w.Code)
		require.Equal(t, 1, published)
		require.NotNil(t, created)
		require.Equal(t, "user-1", created.UserID)
		require.Equal(t, order.StatusPending, created.Status)
		require.Equal(t, order.PaymentPending, created.PaymentStatus)
		require.True(t, created.Total.Equal(decimal.RequireFromString("39.98")))
		require.Len(t, created.Items, 1)
		require.True(t, created.Items[0].Price.Equal(decimal.RequireFromString("19.99")))
		require.Equal(t, "Aarhus", created.ShippingAddress.City)
		require.Contains(t, w.Body.String(), `"order-1"`)
	})

	t.Run("maps insufficient stock to conflict", func(t *testing.T) {
		repo := &OrderRepositoryMock{
			CreateFunc: func(ctx context.Context, o *order.Order) error {
				return &order.InsufficientStockError{ProductID: "prod-1", Requested: 2, Available: 1}
			},
		}
		published := 0
		pub := &PublisherMock{
			PublishOrderCreatedFunc: func(ctx context.Context, o *order.Order) error {
				published++
				return nil
			},
		}
		h := httpapi.NewOrderHandler(repo, pub, testLogger)

		w := httptest.NewRecorder()
		h.Create(w, authedRequest(http.MethodPost, "/api/orders", validBody, identity))

		require.Equal(t, http.StatusConflict, w.Code)
		require.Contains(t, w.Body.String(), "prod-1")
		require.Zero(t, published, "no event for a rejected order")
	})

	t.Run("maps repository failure to 500", func(t *testing.T) {
		repo := &OrderRepositoryMock{
			CreateFunc: func(ctx context.Context, o *order.Order) error {
				return errors.New("connection reset")
			},
		}
		h := httpapi.NewOrderHandler(repo, &PublisherMock{}, testLogger)

		w := httptest.NewRecorder()
		h.Create(w, authedRequest(http.MethodPost, "/api/orders", validBody, identity))

		require.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("publish failure does not fail the request", func(t *testing.T) {
		repo := &OrderRepositoryMock{
			CreateFunc: func(ctx context.Context, o *order.Order) error {
				o.ID = "order-2"
				return nil
			},
			GetByIDFunc: func(ctx context.Context, orderID string) (*order.Order, error) {
				return &order.Order{ID: orderID, UserID: "user-1"}, nil
			},
		}
		pub := &PublisherMock{
			PublishOrderCreatedFunc: func(ctx context.Context, o *order.Order) error {
				return errors.New("broker unavailable")
			},
		}
		h := httpapi.NewOrderHandler(repo, pub, testLogger)

		w := httptest.NewRecorder()
		h.Create(w, authedRequest(http.MethodPost, "/api/orders", validBody, identity))

		require.Equal(t, http.StatusCreated, w.Code)
	})
}

func TestOrderHandler_List(t *testing.T) {
	t.Run("requires authentication", func(t *testing.T) {
		h := httpapi.NewOrderHandler(&OrderRepositoryMock{}, &PublisherMock{}, testLogger)

		w := httptest.NewRecorder()
		h.List(w, authedRequest(http.MethodGet, "/api/orders", "", nil))

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("returns an empty array, not null", func(t *testing.T) {
		repo := &OrderRepositoryMock{
			ListByUserFunc: func(ctx context.Context, userID string) ([]order.Order, error) {
				require.Equal(t, "user-1", userID)
				return nil, nil
			},
		}
		h := httpapi.NewOrderHandler(repo, &PublisherMock{}, testLogger)

		w := httptest.NewRecorder()
		h.List(w, authedRequest(http.MethodGet, "/api/orders", "", &auth.Identity{UserID: "user-1", Role: user.RoleCustomer}))

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "[]\n", w.Body.String())
	})
}

func TestOrderHandler_Get(t *testing.T) {
	repo := &OrderRepositoryMock{
		GetByIDFunc: func(ctx context.Context, orderID string) (*order.Order, error) {
			if orderID != "order-1" {
				return nil, order.ErrNotFound
			}
			return &order.Order{ID: "order-1", UserID: "user-1"}, nil
		},
	}
	h := httpapi.NewOrderHandler(repo, &PublisherMock{}, testLogger)

	get := func(orderID string, id *auth.Identity) *httptest.ResponseRecorder {
		r := authedRequest(http.MethodGet, "/api/orders/"+orderID, "", id)
		r = withURLParam(r, "orderId", orderID)
		w := httptest.NewRecorder()
		h.Get(w, r)
		return w
	}

	t.Run("owner reads own order", func(t *testing.T) {
		w := get("order-1", &auth.Identity{UserID: "user-1", Role: user.RoleCustomer})
		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `"order-1"`)
	})

	t.Run("foreign order reads as absent", func(t *testing.T) {
		w := get("order-1", &auth.Identity{UserID: "user-2", Role: user.RoleCustomer})
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("admin reads any order", func(t *testing.T) {
		w := get("order-1", &auth.Identity{UserID: "admin-1", Role: user.RoleAdmin})
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown order", func(t *testing.T) {
		w := get("nope", &auth.Identity{UserID: "user-1", Role: user.RoleCustomer})
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
