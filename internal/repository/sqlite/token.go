package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/cphva/cphva-connect/internal/repository"
)

// TokenRepo persists refresh-token hashes (one row per issued token).
type TokenRepo struct{ db *sql.DB }

func (r *TokenRepo) StoreRefresh(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO refresh_tokens (token_hash, user_id, expires_at) VALUES (?,?,?)`,
		tokenHash, userID, fmtTime(expiresAt))
	return err
}

func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (string, error) {
	var (
		userID    string
		expiresAt string
		revokedAt sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT user_id, expires_at, revoked_at FROM refresh_tokens WHERE token_hash=?`,
		tokenHash).Scan(&userID, &expiresAt, &revokedAt)
	if err != nil {
		return "", translateNoRows(err)
	}
	if revokedAt.Valid {
		return "", repository.ErrNotFound
	}
	exp, err := parseTime(expiresAt)
	if err != nil {
		return "", err
	}
	if time.Now().UTC().After(exp) {
		return "", repository.ErrNotFound
	}
	return userID, nil
}

func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked_at=? WHERE token_hash=? AND revoked_at IS NULL`,
		fmtTime(time.Now()), tokenHash)
	return err
}

func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked_at=? WHERE user_id=? AND revoked_at IS NULL`,
		fmtTime(time.Now()), userID)
	return err
}
