package sqlite

import (
	"context"
	"database/sql"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
)

// TicketTypeRepo implements repository.TicketTypeRepository.
type TicketTypeRepo struct{ db *sql.DB }

func (r *TicketTypeRepo) Create(ctx context.Context, tt *model.TicketType) error {
	var qty interface{}
	if tt.AvailableQuantity != nil {
		qty = *tt.AvailableQuantity
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ticket_types (id, name, price, description, available_quantity) VALUES (?,?,?,?,?)`,
		tt.ID, tt.Name, tt.Price.String(), tt.Description, qty)
	if err != nil && isUniqueViolation(err) {
		return repository.ErrConflict
	}
	return err
}

func (r *TicketTypeRepo) GetByID(ctx context.Context, id string) (model.TicketType, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, price, description, available_quantity FROM ticket_types WHERE id=?`, id)
	return scanTicketType(row)
}

func (r *TicketTypeRepo) GetByName(ctx context.Context, name string) (model.TicketType, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, price, description, available_quantity FROM ticket_types WHERE name=?`, name)
	return scanTicketType(row)
}

func (r *TicketTypeRepo) List(ctx context.Context) ([]model.TicketType, error) {
	// Prices are stored as decimal text; cast for a numeric sort order.
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, price, description, available_quantity FROM ticket_types ORDER BY CAST(price AS REAL) ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := []model.TicketType{}
	for rows.Next() {
		tt, err := scanTicketType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, tt)
	}
	return types, rows.Err()
}

func (r *TicketTypeRepo) Update(ctx context.Context, tt *model.TicketType) error {
	var qty interface{}
	if tt.AvailableQuantity != nil {
		qty = *tt.AvailableQuantity
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE ticket_types SET name=?, price=?, description=?, available_quantity=? WHERE id=?`,
		tt.Name, tt.Price.String(), tt.Description, qty, tt.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TicketTypeRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ticket_types WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanTicketType(row rowScanner) (model.TicketType, error) {
	var (
		tt  model.TicketType
		qty sql.NullInt64
	)
	err := row.Scan(&tt.ID, &tt.Name, &tt.Price, &tt.Description, &qty)
	if err != nil {
		return model.TicketType{}, translateNoRows(err)
	}
	if qty.Valid {
		n := int(qty.Int64)
		tt.AvailableQuantity = &n
	}
	return tt, nil
}
