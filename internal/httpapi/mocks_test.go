package httpapi_test

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marwan-kudus/jabar-onshop/internal/cart"
	"github.com/marwan-kudus/jabar-onshop/internal/catalog"
	"github.com/marwan-kudus/jabar-onshop/internal/order"
	"github.com/marwan-kudus/jabar-onshop/internal/user"
)

// withURLParam plants a chi route parameter so handlers can be called
// without going through the router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type CatalogRepositoryMock struct {
	ListProductsFunc   func(ctx context.Context, f catalog.Filter) ([]catalog.Product, error)
	GetProductFunc     func(ctx context.Context, productID string) (*catalog.Product, error)
	CreateProductFunc  func(ctx context.Context, p *catalog.Product) error
	UpdateProductFunc  func(ctx context.Context, p *catalog.Product) error
	ListCategoriesFunc func(ctx context.Context) ([]catalog.Category, error)
	CreateCategoryFunc func(ctx context.Context, c *catalog.Category) error
}

func (m *CatalogRepositoryMock) ListProducts(ctx context.Context, f catalog.Filter) ([]catalog.Product, error) {
	return m.ListProductsFunc(ctx, f)
}

func (m *CatalogRepositoryMock) GetProduct(ctx context.Context, productID string) (*catalog.Product, error) {
	return m.GetProductFunc(ctx, productID)
}

func (m *CatalogRepositoryMock) CreateProduct(ctx context.Context, p *catalog.Product) error {
	return m.CreateProductFunc(ctx, p)
}

func (m *CatalogRepositoryMock) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	return m.UpdateProductFunc(ctx, p)
}

func (m *CatalogRepositoryMock) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return m.ListCategoriesFunc(ctx)
}

func (m *CatalogRepositoryMock) CreateCategory(ctx context.Context, c *catalog.Category) error {
	return m.CreateCategoryFunc(ctx, c)
}

type CartRepositoryMock struct {
	ListLinesFunc  func(ctx context.Context, userID string) ([]cart.Line, error)
	UpsertLineFunc func(ctx context.Context, userID, productID string, deltaQuantity int) ([]cart.Line, error)
	RemoveLineFunc func(ctx context.Context, userID, productID string) error
}

func (m *CartRepositoryMock) ListLines(ctx context.Context, userID string) ([]cart.Line, error) {
	return m.ListLinesFunc(ctx, userID)
}

func (m *CartRepositoryMock) UpsertLine(ctx context.Context, userID, productID string, deltaQuantity int) ([]cart.Line, error) {
	return m.UpsertLineFunc(ctx, userID, productID, deltaQuantity)
}

func (m *CartRepositoryMock) RemoveLine(ctx context.Context, userID, productID string) error {
	return m.RemoveLineFunc(ctx, userID, productID)
}

type OrderRepositoryMock struct {
	CreateFunc     func(ctx context.Context, o *order.Order) error
	GetByIDFunc    func(ctx context.Context, orderID string) (*order.Order, error)
	ListByUserFunc func(ctx context.Context, userID string) ([]order.Order, error)
}

func (m *OrderRepositoryMock) Create(ctx context.Context, o *order.Order) error {
	return m.CreateFunc(ctx, o)
}

func (m *OrderRepositoryMock) GetByID(ctx context.Context, orderID string) (*order.Order, error) {
	return m.GetByIDFunc(ctx, orderID)
}

func (m *OrderRepositoryMock) ListByUser(ctx context.Context, userID string) ([]order.Order, error) {
	return m.ListByUserFunc(ctx, userID)
}

type UserRepositoryMock struct {
	CreateFunc     func(ctx context.Context, u *user.User) error
	GetByEmailFunc func(ctx context.Context, email string) (*user.User, error)
	GetByIDFunc    func(ctx context.Context, userID string) (*user.User, error)
}

func (m *UserRepositoryMock) Create(ctx context.Context, u *user.User) error {
	return m.CreateFunc(ctx, u)
}

func (m *UserRepositoryMock) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, userID string) (*user.User, error) {
	return m.GetByIDFunc(ctx, userID)
}

type PublisherMock struct {
	PublishOrderCreatedFunc func(ctx context.Context, o *order.Order) error
}

func (m *PublisherMock) PublishOrderCreated(ctx context.Context, o *order.Order) error {
	if m.PublishOrderCreatedFunc == nil {
		return nil
	}
	return m.PublishOrderCreatedFunc(ctx, o)
}
