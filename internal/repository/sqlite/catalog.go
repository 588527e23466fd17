package sqlite

import (
	"context"
	"database/sql"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
)

// SpeakerRepo, LocationRepo and ExhibitorRepo cover the flat catalog
// tables. They share the plain CRUD shape with no cross-entity logic.

type SpeakerRepo struct{ db *sql.DB }

func (r *SpeakerRepo) Create(ctx context.Context, s *model.Speaker) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO speakers (id, name, title, bio, image_url) VALUES (?,?,?,?,?)`,
		s.ID, s.Name, s.Title, s.Bio, s.ImageURL)
	return err
}

func (r *SpeakerRepo) GetByID(ctx context.Context, id string) (model.Speaker, error) {
	var (
		s        model.Speaker
		imageURL sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, title, bio, image_url FROM speakers WHERE id=?`, id).
		Scan(&s.ID, &s.Name, &s.Title, &s.Bio, &imageURL)
	if err != nil {
		return model.Speaker{}, translateNoRows(err)
	}
	if imageURL.Valid {
		v := imageURL.String
		s.ImageURL = &v
	}
	return s, nil
}

func (r *SpeakerRepo) List(ctx context.Context) ([]model.Speaker, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, title, bio, image_url FROM speakers ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	speakers := []model.Speaker{}
	for rows.Next() {
		var (
			s        model.Speaker
			imageURL sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Title, &s.Bio, &imageURL); err != nil {
			return nil, err
		}
		if imageURL.Valid {
			v := imageURL.String
			s.ImageURL = &v
		}
		speakers = append(speakers, s)
	}
	return speakers, rows.Err()
}

func (r *SpeakerRepo) Update(ctx context.Context, s *model.Speaker) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE speakers SET name=?, title=?, bio=?, image_url=? WHERE id=?`,
		s.Name, s.Title, s.Bio, s.ImageURL, s.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *SpeakerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM speakers WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type LocationRepo struct{ db *sql.DB }

func (r *LocationRepo) Create(ctx context.Context, l *model.Location) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO locations (id, name) VALUES (?,?)`, l.ID, l.Name)
	return err
}

func (r *LocationRepo) List(ctx context.Context) ([]model.Location, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM locations ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locations := []model.Location{}
	for rows.Next() {
		var l model.Location
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}
	return locations, rows.Err()
}

func (r *LocationRepo) Update(ctx context.Context, l *model.Location) error {
	res, err := r.db.ExecContext(ctx, `UPDATE locations SET name=? WHERE id=?`, l.Name, l.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *LocationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

type ExhibitorRepo struct{ db *sql.DB }

func (r *ExhibitorRepo) Create(ctx context.Context, ex *model.Exhibitor) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO exhibitors (id, name, description, logo_url, website_url, booth_number) VALUES (?,?,?,?,?,?)`,
		ex.ID, ex.Name, ex.Description, ex.LogoURL, ex.WebsiteURL, ex.BoothNumber)
	return err
}

func (r *ExhibitorRepo) GetByID(ctx context.Context, id string) (model.Exhibitor, error) {
	var (
		ex      model.Exhibitor
		logoURL sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, logo_url, website_url, booth_number FROM exhibitors WHERE id=?`, id).
		Scan(&ex.ID, &ex.Name, &ex.Description, &logoURL, &ex.WebsiteURL, &ex.BoothNumber)
	if err != nil {
		return model.Exhibitor{}, translateNoRows(err)
	}
	if logoURL.Valid {
		v := logoURL.String
		ex.LogoURL = &v
	}
	return ex, nil
}

func (r *ExhibitorRepo) List(ctx context.Context) ([]model.Exhibitor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, logo_url, website_url, booth_number FROM exhibitors ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exhibitors := []model.Exhibitor{}
	for rows.Next() {
		var (
			ex      model.Exhibitor
			logoURL sql.NullString
		)
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.Description, &logoURL, &ex.WebsiteURL, &ex.BoothNumber); err != nil {
			return nil, err
		}
		if logoURL.Valid {
			v := logoURL.String
			ex.LogoURL = &v
		}
		exhibitors = append(exhibitors, ex)
	}
	return exhibitors, rows.Err()
}

func (r *ExhibitorRepo) Update(ctx context.Context, ex *model.Exhibitor) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE exhibitors SET name=?, description=?, logo_url=?, website_url=?, booth_number=? WHERE id=?`,
		ex.Name, ex.Description, ex.LogoURL, ex.WebsiteURL, ex.BoothNumber, ex.ID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *ExhibitorRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exhibitors WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
