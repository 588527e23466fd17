package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
)

// PollRepo manages polls, their options and the user_votes table that
// enforces one vote per user per poll.
type PollRepo struct{ db *sql.DB }

func (r *PollRepo) Create(ctx context.Context, p *model.Poll) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO polls (id, question, is_open, created_at) VALUES (?,?,?,?)`,
		p.ID, p.Question, boolToInt(p.IsOpen), fmtTime(p.CreatedAt))
	if err != nil {
		return err
	}
	for _, opt := range p.Options {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO poll_options (id, poll_id, text, votes) VALUES (?,?,?,?)`,
			opt.ID, p.ID, opt.Text, opt.Votes)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *PollRepo) GetByID(ctx context.Context, id string) (model.Poll, error) {
	var (
		p         model.Poll
		isOpen    int
		createdAt string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, question, is_open, created_at FROM polls WHERE id=?`, id).
		Scan(&p.ID, &p.Question, &isOpen, &createdAt)
	if err != nil {
		return model.Poll{}, translateNoRows(err)
	}
	p.IsOpen = isOpen == 1
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Poll{}, err
	}
	if p.Options, err = r.options(ctx, p.ID); err != nil {
		return model.Poll{}, err
	}
	return p, nil
}

func (r *PollRepo) List(ctx context.Context) ([]model.Poll, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, question, is_open, created_at FROM polls ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	polls := []model.Poll{}
	for rows.Next() {
		var (
			p         model.Poll
			isOpen    int
			createdAt string
		)
		if err := rows.Scan(&p.ID, &p.Question, &isOpen, &createdAt); err != nil {
			return nil, err
		}
		p.IsOpen = isOpen == 1
		if p.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		polls = append(polls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range polls {
		if polls[i].Options, err = r.options(ctx, polls[i].ID); err != nil {
			return nil, err
		}
	}
	return polls, nil
}

func (r *PollRepo) SetOpen(ctx context.Context, id string, open bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE polls SET is_open=? WHERE id=?`, boolToInt(open), id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *PollRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM polls WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Vote records the vote and bumps the option counter in one
// transaction. The user_votes primary key turns a repeat vote into a
// unique violation, reported as ErrAlreadyVoted.
func (r *PollRepo) Vote(ctx context.Context, userID, pollID, optionID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_votes (user_id, poll_id, option_id, voted_at) VALUES (?,?,?,?)`,
		userID, pollID, optionID, fmtTime(time.Now()))
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrAlreadyVoted
		}
		if isForeignKeyViolation(err) {
			return repository.ErrNotFound
		}
		return err
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE poll_options SET votes = votes + 1 WHERE id=? AND poll_id=?`, optionID, pollID)
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
	return tx.Commit()
}

func (r *PollRepo) options(ctx context.Context, pollID string) ([]model.PollOption, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, text, votes FROM poll_options WHERE poll_id=? ORDER BY rowid`, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	opts := []model.PollOption{}
	for rows.Next() {
		var o model.PollOption
		if err := rows.Scan(&o.ID, &o.Text, &o.Votes); err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}
