// Package sqlite implements the repository.Store facade against a
// SQLite database opened by internal/database. All timestamps are
// persisted as RFC 3339 UTC text and booleans as integers.
package sqlite

import (
	"database/sql"
	"errors"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/cphva/cphva-connect/internal/repository"
)

// Store bundles the per-entity repositories over one shared *sql.DB.
type Store struct {
	db *sql.DB

	users       *UserRepo
	tokens      *TokenRepo
	ticketTypes *TicketTypeRepo
	tickets     *TicketRepo
	speakers    *SpeakerRepo
	locations   *LocationRepo
	schedule    *ScheduleRepo
	exhibitors  *ExhibitorRepo
	polls       *PollRepo
	settings    *SettingsRepo
}

// NewStore wraps an opened database in the Store facade.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:          db,
		users:       &UserRepo{db: db},
		tokens:      &TokenRepo{db: db},
		ticketTypes: &TicketTypeRepo{db: db},
		tickets:     &TicketRepo{db: db},
		speakers:    &SpeakerRepo{db: db},
		locations:   &LocationRepo{db: db},
		schedule:    &ScheduleRepo{db: db},
		exhibitors:  &ExhibitorRepo{db: db},
		polls:       &PollRepo{db: db},
		settings:    &SettingsRepo{db: db},
	}
}

func (s *Store) Users() repository.UserRepository             { return s.users }
func (s *Store) Tokens() repository.TokenRepository           { return s.tokens }
func (s *Store) TicketTypes() repository.TicketTypeRepository { return s.ticketTypes }
func (s *Store) Tickets() repository.TicketRepository         { return s.tickets }
func (s *Store) Speakers() repository.SpeakerRepository       { return s.speakers }
func (s *Store) Locations() repository.LocationRepository     { return s.locations }
func (s *Store) Schedule() repository.ScheduleRepository      { return s.schedule }
func (s *Store) Exhibitors() repository.ExhibitorRepository   { return s.exhibitors }
func (s *Store) Polls() repository.PollRepository             { return s.polls }
func (s *Store) Settings() repository.SettingsRepository      { return s.settings }

func (s *Store) Close() error { return s.db.Close() }

// fmtTime serializes a timestamp the way every column in the schema
// expects it.
func fmtTime(t time.Time) string { return t.UTC().Format(time.RFC3339) }

func parseTime(s string) (time.Time, error) { return time.Parse(time.RFC3339, s) }

// parseNullTime converts a nullable TEXT column into *time.Time.
func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func fmtNullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return fmtTime(*t)
}

func isUniqueViolation(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique
}

func isForeignKeyViolation(err error) bool {
	var serr sqlite3.Error
	return errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}

// translateNoRows maps the driver's empty-result error to the shared
// sentinel so callers never see sql.ErrNoRows.
func translateNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}
