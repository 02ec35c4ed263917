package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// SessionStore issues and resolves opaque session tokens backed by the
// sessions table. It is the default Authority implementation.
type SessionStore struct {
	pool DBPool
	ttl  time.Duration
}

func NewSessionStore(pool DBPool, ttl time.Duration) *SessionStore {
	return &SessionStore{pool: pool, ttl: ttl}
}

// Issue creates a session for the user and returns its token.
func (s *SessionStore) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, $3)`,
		token, userID, time.Now().UTC().Add(s.ttl),
	)
	if err != nil {
		return "", fmt.Errorf("insert session: %w", err)
	}
	return token, nil
}

// Revoke deletes the session; revoking an unknown token is not an error.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Resolve maps a token to the owning user. Unknown and expired tokens
// resolve to nil, not an error.
func (s *SessionStore) Resolve(ctx context.Context, credential string) (*Identity, error) {
	if credential == "" {
		return nil, nil
	}

	var id Identity
	err := s.pool.QueryRow(ctx, `
		SELECT s.user_id, u.role
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = $1 AND s.expires_at > now()`, credential,
	).Scan(&id.UserID, &id.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select session: %w", err)
	}
	return &id, nil
}

var _ Authority = (*SessionStore)(nil)
