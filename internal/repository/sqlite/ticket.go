package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
)

// TicketRepo implements repository.TicketRepository over the tickets
// table. The check-in flag is only ever mutated through CheckInByCode
// and SetCheckInState.
type TicketRepo struct{ db *sql.DB }

const ticketColumns = `id, user_id, user_name, conference_name, ticket_type, ticket_price, purchase_date, qr_code_value, is_checked_in, check_in_timestamp`

func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	return insertTicket(ctx, r.db, t)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func insertTicket(ctx context.Context, db execer, t *model.Ticket) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO tickets (`+ticketColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?)`,
		t.ID, t.UserID, t.UserName, t.ConferenceName, t.TicketType,
		t.TicketPrice.String(), fmtTime(t.PurchaseDate), t.QRCodeValue,
		boolToInt(t.IsCheckedIn), fmtNullTime(t.CheckInTimestamp))
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateCode
		}
		if isForeignKeyViolation(err) {
			return repository.ErrNotFound
		}
	}
	return err
}

// CreateWithUser inserts the user and their ticket in one transaction,
// so a failed ticket insert never strands a half-registered user.
func (r *TicketRepo) CreateWithUser(ctx context.Context, u *model.User, t *model.Ticket) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role,
		boolToInt(u.NameIsPublic), boolToInt(u.EmailIsPublic), u.Bio, u.AvatarURL,
		fmtTime(u.CreatedAt), fmtTime(u.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrEmailExists
		}
		return err
	}
	if err := insertTicket(ctx, tx, t); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *TicketRepo) GetByID(ctx context.Context, id string) (model.Ticket, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id=?`, id)
	return scanTicket(row)
}

// GetByCode looks a ticket up by exact, case-sensitive code match.
func (r *TicketRepo) GetByCode(ctx context.Context, code string) (model.Ticket, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE qr_code_value=?`, code)
	return scanTicket(row)
}

func (r *TicketRepo) ListAll(ctx context.Context) ([]model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets ORDER BY purchase_date DESC`)
	if err != nil {
		return nil, err
	}
	return collectTickets(rows)
}

func (r *TicketRepo) ListByUser(ctx context.Context, userID string) ([]model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+ticketColumns+` FROM tickets WHERE user_id=? ORDER BY purchase_date DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectTickets(rows)
}

// CheckInByCode performs the conditional update that makes double
// scans safe: only a row still in the not-checked-in state is
// affected, so of two concurrent scans exactly one sees a row count
// of 1.
func (r *TicketRepo) CheckInByCode(ctx context.Context, code string, ts time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET is_checked_in=1, check_in_timestamp=? WHERE qr_code_value=? AND is_checked_in=0`,
		fmtTime(ts), code)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 1 {
		return true, nil
	}
	// Zero rows means either an unknown code or a ticket that was
	// already checked in; tell the two apart for the caller.
	var one int
	err = r.db.QueryRowContext(ctx, `SELECT 1 FROM tickets WHERE qr_code_value=?`, code).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, repository.ErrNotFound
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

func (r *TicketRepo) SetCheckInState(ctx context.Context, id string, checkedIn bool, ts *time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tickets SET is_checked_in=?, check_in_timestamp=? WHERE id=?`,
		boolToInt(checkedIn), fmtNullTime(ts), id)
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

func (r *TicketRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tickets WHERE id=?`, id)
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

func scanTicket(row rowScanner) (model.Ticket, error) {
	var (
		t            model.Ticket
		checkedIn    int
		purchaseDate string
		checkInTS    sql.NullString
	)
	err := row.Scan(&t.ID, &t.UserID, &t.UserName, &t.ConferenceName, &t.TicketType,
		&t.TicketPrice, &purchaseDate, &t.QRCodeValue, &checkedIn, &checkInTS)
	if err != nil {
		return model.Ticket{}, translateNoRows(err)
	}
	t.IsCheckedIn = checkedIn == 1
	if t.PurchaseDate, err = parseTime(purchaseDate); err != nil {
		return model.Ticket{}, err
	}
	if t.CheckInTimestamp, err = parseNullTime(checkInTS); err != nil {
		return model.Ticket{}, err
	}
	return t, nil
}

func collectTickets(rows *sql.Rows) ([]model.Ticket, error) {
	defer rows.Close()
	tickets := []model.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}
