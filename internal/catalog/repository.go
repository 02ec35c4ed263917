package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrNotFound = errors.New("not found")

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Repository interface {
	ListProducts(ctx context.Context, f Filter) ([]Product, error)
	GetProduct(ctx context.Context, productID string) (*Product, error)
	CreateProduct(ctx context.Context, p *Product) error
	UpdateProduct(ctx context.Context, p *Product) error
	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, c *Category) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const productColumns = `p.id, p.name, p.description, p.price, p.image, p.stock, p.featured, p.category_id, p.created_at,
       c.id, c.name, c.description, c.image`

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	var c Category
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.Stock, &p.Featured, &p.CategoryID, &p.CreatedAt,
		&c.ID, &c.Name, &c.Description, &c.Image,
	)
	if err != nil {
		return Product{}, err
	}
	p.Category = &c
	return p, nil
}

func (r *PostgresRepository) ListProducts(ctx context.Context, f Filter) ([]Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products p
		JOIN categories c ON c.id = p.category_id`

	var conds []string
	var args []any
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if f.Featured {
		conds = append(conds, "p.featured")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return products, nil
}

func (r *PostgresRepository) GetProduct(ctx context.Context, productID string) (*Product, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+productColumns+`
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`, productID)

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select product: %w", err)
	}
	return &p, nil
}

func (r *PostgresRepository) CreateProduct(ctx context.Context, p *Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO products (id, name, description, price, image, stock, featured, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		p.ID, p.Name, p.Description, p.Price, p.Image, p.Stock, p.Featured, p.CategoryID,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	var c Category
	err = r.pool.QueryRow(ctx, `SELECT id, name, description, image FROM categories WHERE id = $1`, p.CategoryID).
		Scan(&c.ID, &c.Name, &c.Description, &c.Image)
	if err != nil {
		return fmt.Errorf("select category: %w", err)
	}
	p.Category = &c

	return nil
}

// UpdateProduct replaces all mutable fields, including an absolute stock set.
func (r *PostgresRepository) UpdateProduct(ctx context.Context, p *Product) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products
		SET name = $2, description = $3, price = $4, image = $5, stock = $6, featured = $7, category_id = $8
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Price, p.Image, p.Stock, p.Featured, p.CategoryID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, image FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Image); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return categories, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, c *Category) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO categories (id, name, description, image)
		VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.Description, c.Image,
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}
