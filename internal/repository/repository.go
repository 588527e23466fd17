package repository

import (
	"context"
	"time"

	"github.com/cphva/cphva-connect/internal/model"
)

// Store is the uniform data-access facade. It is implemented twice:
// once against SQLite (the persistent backend) and once against
// in-process maps (the demo/offline mirror). The two implementations
// are behaviourally indistinguishable to callers; the backend is
// selected exactly once at startup and never per call.
type Store interface {
	Users() UserRepository
	Tokens() TokenRepository
	TicketTypes() TicketTypeRepository
	Tickets() TicketRepository
	Speakers() SpeakerRepository
	Locations() LocationRepository
	Schedule() ScheduleRepository
	Exhibitors() ExhibitorRepository
	Polls() PollRepository
	Settings() SettingsRepository
	Close() error
}

// UserRepository manages user records. Delete cascades to the user's
// tickets, votes and refresh tokens.
type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id string) error
}

// TokenRepository persists and validates hashed refresh tokens.
type TokenRepository interface {
	StoreRefresh(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	// ValidateRefresh returns the owning user ID when a non-revoked,
	// non-expired token with the given hash exists; ErrNotFound otherwise.
	ValidateRefresh(ctx context.Context, tokenHash string) (string, error)
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}

// TicketTypeRepository manages the ticket-type catalog.
type TicketTypeRepository interface {
	Create(ctx context.Context, tt *model.TicketType) error
	GetByID(ctx context.Context, id string) (model.TicketType, error)
	// GetByName resolves a type by exact, case-sensitive name match.
	GetByName(ctx context.Context, name string) (model.TicketType, error)
	List(ctx context.Context) ([]model.TicketType, error)
	Update(ctx context.Context, tt *model.TicketType) error
	Delete(ctx context.Context, id string) error
}

// TicketRepository owns the ticket records and the check-in flag.
type TicketRepository interface {
	Create(ctx context.Context, t *model.Ticket) error
	// CreateWithUser creates the user and their first ticket atomically:
	// either both records exist afterwards or neither does.
	CreateWithUser(ctx context.Context, u *model.User, t *model.Ticket) error
	GetByID(ctx context.Context, id string) (model.Ticket, error)
	GetByCode(ctx context.Context, code string) (model.Ticket, error)
	ListAll(ctx context.Context) ([]model.Ticket, error)
	ListByUser(ctx context.Context, userID string) ([]model.Ticket, error)
	// CheckInByCode atomically flips a not-yet-checked-in ticket to
	// checked-in, stamping it with ts. It reports false (without error)
	// when the ticket was already checked in, so concurrent scans of
	// the same badge resolve to exactly one winner.
	CheckInByCode(ctx context.Context, code string, ts time.Time) (bool, error)
	// SetCheckInState is the raw flip used by the manual toggle. ts must
	// be non-nil when checkedIn is true and nil when it is false.
	SetCheckInState(ctx context.Context, id string, checkedIn bool, ts *time.Time) error
	Delete(ctx context.Context, id string) error
}

// SpeakerRepository manages the speaker catalog.
type SpeakerRepository interface {
	Create(ctx context.Context, s *model.Speaker) error
	GetByID(ctx context.Context, id string) (model.Speaker, error)
	List(ctx context.Context) ([]model.Speaker, error)
	Update(ctx context.Context, s *model.Speaker) error
	Delete(ctx context.Context, id string) error
}

// LocationRepository manages venue locations.
type LocationRepository interface {
	Create(ctx context.Context, l *model.Location) error
	List(ctx context.Context) ([]model.Location, error)
	Update(ctx context.Context, l *model.Location) error
	Delete(ctx context.Context, id string) error
}

// ScheduleRepository manages programme entries including their speaker
// links.
type ScheduleRepository interface {
	Create(ctx context.Context, ev *model.ScheduleEvent) error
	GetByID(ctx context.Context, id string) (model.ScheduleEvent, error)
	List(ctx context.Context) ([]model.ScheduleEvent, error)
	Update(ctx context.Context, ev *model.ScheduleEvent) error
	Delete(ctx context.Context, id string) error
}

// ExhibitorRepository manages the exhibitor catalog.
type ExhibitorRepository interface {
	Create(ctx context.Context, ex *model.Exhibitor) error
	GetByID(ctx context.Context, id string) (model.Exhibitor, error)
	List(ctx context.Context) ([]model.Exhibitor, error)
	Update(ctx context.Context, ex *model.Exhibitor) error
	Delete(ctx context.Context, id string) error
}

// PollRepository manages polls, options and the one-vote-per-user rule.
type PollRepository interface {
	Create(ctx context.Context, p *model.Poll) error
	GetByID(ctx context.Context, id string) (model.Poll, error)
	List(ctx context.Context) ([]model.Poll, error)
	SetOpen(ctx context.Context, id string, open bool) error
	Delete(ctx context.Context, id string) error
	// Vote records a user's vote and increments the option counter.
	// Returns ErrAlreadyVoted on a repeat vote and ErrNotFound when the
	// poll or option does not exist.
	Vote(ctx context.Context, userID, pollID, optionID string) error
}

// SettingsRepository manages the singleton application settings row.
type SettingsRepository interface {
	Get(ctx context.Context) (model.Settings, error)
	Update(ctx context.Context, s model.Settings) error
}
