package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrUnknownProduct is returned when a line would reference a product that
// does not exist.
var ErrUnknownProduct = errors.New("unknown product")

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Repository interface {
	ListLines(ctx context.Context, userID string) ([]Line, error)
	// UpsertLine applies deltaQuantity to the user's line for productID,
	// creating it when absent and deleting it when the result drops to zero
	// or below. It returns the full cart so callers can resynchronize their
	// mirror without a second round trip.
	UpsertLine(ctx context.Context, userID, productID string, deltaQuantity int) ([]Line, error)
	// RemoveLine deletes the line unconditionally; removing an absent line
	// is not an error.
	RemoveLine(ctx context.Context, userID, productID string) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) ListLines(ctx context.Context, userID string) ([]Line, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT ci.product_id, p.name, p.price, p.image, ci.quantity, ci.updated_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.updated_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("select cart_items: %w", err)
	}
	defer rows.Close()

	var lines []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.ProductID, &l.Name, &l.Price, &l.Image, &l.Quantity, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return lines, nil
}

func (r *PostgresRepository) UpsertLine(ctx context.Context, userID, productID string, deltaQuantity int) ([]Line, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return nil, ErrUnknownProduct
	}

	var quantity int
	err = tx.QueryRow(ctx, `
		SELECT quantity FROM cart_items
		WHERE user_id = $1 AND product_id = $2
		FOR UPDATE`, userID, productID).Scan(&quantity)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		// new line; a non-positive delta leaves the cart untouched
		if deltaQuantity > 0 {
			_, err = tx.Exec(ctx, `
				INSERT INTO cart_items (user_id, product_id, quantity)
				VALUES ($1, $2, $3)`, userID, productID, deltaQuantity)
			if err != nil {
				return nil, fmt.Errorf("insert cart line: %w", err)
			}
		}
	case err != nil:
		return nil, fmt.Errorf("lock cart line: %w", err)
	default:
		quantity += deltaQuantity
		if quantity <= 0 {
			_, err = tx.Exec(ctx, `
				DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
			if err != nil {
				return nil, fmt.Errorf("delete cart line: %w", err)
			}
		} else {
			_, err = tx.Exec(ctx, `
				UPDATE cart_items SET quantity = $3, updated_at = now()
				WHERE user_id = $1 AND product_id = $2`, userID, productID, quantity)
			if err != nil {
				return nil, fmt.Errorf("update cart line: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return r.ListLines(ctx, userID)
}

func (r *PostgresRepository) RemoveLine(ctx context.Context, userID, productID string) error {
	_, err := r.pool.Exec(ctx, `
		DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return fmt.Errorf("delete cart line: %w", err)
	}
	return nil
}
