package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
)

// UserRepo implements repository.UserRepository over the users table.
type UserRepo struct{ db *sql.DB }

const userColumns = `id, name, email, password_hash, role, name_is_public, email_is_public, bio, avatar_url, created_at, updated_at`

// Create inserts a user. Email is normalized to lower case before the
// uniqueness check so "Jane@x" and "jane@x" collide.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role,
		boolToInt(u.NameIsPublic), boolToInt(u.EmailIsPublic), u.Bio, u.AvatarURL,
		fmtTime(u.CreatedAt), fmtTime(u.UpdatedAt))
	if err != nil && isUniqueViolation(err) {
		return repository.ErrEmailExists
	}
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id=?`, id)
	return scanUser(row)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email=?`, email)
	return scanUser(row)
}

func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update writes the full record. The caller is responsible for having
// loaded the user first; unknown ids return ErrNotFound.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET name=?, email=?, password_hash=?, role=?, name_is_public=?, email_is_public=?, bio=?, avatar_url=?, updated_at=? WHERE id=?`,
		u.Name, u.Email, u.PasswordHash, u.Role,
		boolToInt(u.NameIsPublic), boolToInt(u.EmailIsPublic), u.Bio, u.AvatarURL,
		fmtTime(u.UpdatedAt), u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrEmailExists
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

// Delete removes the user; the tickets, votes and refresh tokens
// cascade away via foreign keys.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id=?`, id)
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

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanUser(row rowScanner) (model.User, error) {
	var (
		u                  model.User
		namePub, emailPub  int
		avatarURL          sql.NullString
		createdAt, updated string
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&namePub, &emailPub, &u.Bio, &avatarURL, &createdAt, &updated)
	if err != nil {
		return model.User{}, translateNoRows(err)
	}
	u.NameIsPublic = namePub == 1
	u.EmailIsPublic = emailPub == 1
	if avatarURL.Valid {
		s := avatarURL.String
		u.AvatarURL = &s
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.User{}, err
	}
	if u.UpdatedAt, err = parseTime(updated); err != nil {
		return model.User{}, err
	}
	return u, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
