package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"storefront-api/internal/models"
)

// MySQLTokenStore is the 'tokens' table repository for persisted long-lived
// tokens (refresh tokens in the current flow).
type MySQLTokenStore struct {
	DB *sql.DB
}

func NewTokenStore(db *sql.DB) *MySQLTokenStore { return &MySQLTokenStore{DB: db} }

func (s *MySQLTokenStore) Save(ctx context.Context, t *models.Token) error {
	t.CreatedAt = time.Now()
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO tokens (user_id, token, type, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		t.UserID, t.Token, t.Type, t.ExpiresAt, t.CreatedAt,
	)
	if err != nil {
		return translateError(err)
	}
	t.ID, err = res.LastInsertId()
	return err
}

func (s *MySQLTokenStore) FindByToken(ctx context.Context, token string) (*models.Token, error) {
	var t models.Token
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, user_id, token, type, expires_at, created_at
		FROM tokens WHERE token = ? LIMIT 1`, token).
		Scan(&t.ID, &t.UserID, &t.Token, &t.Type, &t.ExpiresAt, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *MySQLTokenStore) DeleteByToken(ctx context.Context, token string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM tokens WHERE token = ?`, token)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// DeleteExpired clears tokens past their expiry. Called opportunistically
// from the refresh flow.
func (s *MySQLTokenStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM tokens WHERE expires_at < ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
