package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/cphva/cphva-connect/internal/model"
)

// SettingsRepo manages the single app_settings row (id fixed to 1,
// seeded by the schema).
type SettingsRepo struct{ db *sql.DB }

func (r *SettingsRepo) Get(ctx context.Context) (model.Settings, error) {
	var (
		s         model.Settings
		enabled   int
		updatedAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT title, ticket_sales_enabled, updated_at FROM app_settings WHERE id=1`).
		Scan(&s.Title, &enabled, &updatedAt)
	if err != nil {
		return model.Settings{}, translateNoRows(err)
	}
	s.TicketSalesEnabled = enabled == 1
	if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Settings{}, err
	}
	return s, nil
}

func (r *SettingsRepo) Update(ctx context.Context, s model.Settings) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE app_settings SET title=?, ticket_sales_enabled=?, updated_at=? WHERE id=1`,
		s.Title, boolToInt(s.TicketSalesEnabled), fmtTime(time.Now()))
	return err
}
