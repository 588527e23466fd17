package sqlite

import (
	"context"
	"database/sql"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
)

// ScheduleRepo manages schedule_events plus the event_speakers
// junction rows that link entries to speakers.
type ScheduleRepo struct{ db *sql.DB }

func (r *ScheduleRepo) Create(ctx context.Context, ev *model.ScheduleEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO schedule_events (id, title, description, start_time, end_time, location_id, created_at) VALUES (?,?,?,?,?,?,?)`,
		ev.ID, ev.Title, ev.Description, fmtTime(ev.StartTime), fmtTime(ev.EndTime), ev.LocationID, fmtTime(ev.CreatedAt))
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrNotFound
		}
		return err
	}
	if err := insertSpeakerLinks(ctx, tx, ev.ID, ev.SpeakerIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ScheduleRepo) GetByID(ctx context.Context, id string) (model.ScheduleEvent, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, start_time, end_time, location_id, created_at FROM schedule_events WHERE id=?`, id)
	ev, err := scanScheduleEvent(row)
	if err != nil {
		return model.ScheduleEvent{}, err
	}
	if ev.SpeakerIDs, err = r.speakerIDs(ctx, ev.ID); err != nil {
		return model.ScheduleEvent{}, err
	}
	return ev, nil
}

func (r *ScheduleRepo) List(ctx context.Context) ([]model.ScheduleEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, start_time, end_time, location_id, created_at FROM schedule_events ORDER BY start_time ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []model.ScheduleEvent{}
	for rows.Next() {
		ev, err := scanScheduleEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range events {
		if events[i].SpeakerIDs, err = r.speakerIDs(ctx, events[i].ID); err != nil {
			return nil, err
		}
	}
	return events, nil
}

// Update rewrites the event row and replaces its speaker links.
func (r *ScheduleRepo) Update(ctx context.Context, ev *model.ScheduleEvent) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE schedule_events SET title=?, description=?, start_time=?, end_time=?, location_id=? WHERE id=?`,
		ev.Title, ev.Description, fmtTime(ev.StartTime), fmtTime(ev.EndTime), ev.LocationID, ev.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrNotFound
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
	if _, err := tx.ExecContext(ctx, `DELETE FROM event_speakers WHERE event_id=?`, ev.ID); err != nil {
		return err
	}
	if err := insertSpeakerLinks(ctx, tx, ev.ID, ev.SpeakerIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ScheduleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedule_events WHERE id=?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *ScheduleRepo) speakerIDs(ctx context.Context, eventID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT speaker_id FROM event_speakers WHERE event_id=? ORDER BY speaker_id`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func insertSpeakerLinks(ctx context.Context, tx *sql.Tx, eventID string, speakerIDs []string) error {
	for _, sid := range speakerIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO event_speakers (event_id, speaker_id) VALUES (?,?)`, eventID, sid)
		if err != nil {
			if isForeignKeyViolation(err) {
				return repository.ErrNotFound
			}
			return err
		}
	}
	return nil
}

func scanScheduleEvent(row rowScanner) (model.ScheduleEvent, error) {
	var (
		ev                 model.ScheduleEvent
		start, end, ctime  string
		locationID         sql.NullString
	)
	err := row.Scan(&ev.ID, &ev.Title, &ev.Description, &start, &end, &locationID, &ctime)
	if err != nil {
		return model.ScheduleEvent{}, translateNoRows(err)
	}
	if locationID.Valid {
		v := locationID.String
		ev.LocationID = &v
	}
	if ev.StartTime, err = parseTime(start); err != nil {
		return model.ScheduleEvent{}, err
	}
	if ev.EndTime, err = parseTime(end); err != nil {
		return model.ScheduleEvent{}, err
	}
	if ev.CreatedAt, err = parseTime(ctime); err != nil {
		return model.ScheduleEvent{}, err
	}
	return ev, nil
}
