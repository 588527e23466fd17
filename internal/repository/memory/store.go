// Package memory implements the repository.Store facade with
// in-process maps. It backs demo mode (no database file, no external
// services) and doubles as the test backend. A single RWMutex guards
// all tables, which makes every operation — including the
// read-modify-write of a check-in — atomic with respect to the others.
package memory

import (
	"sync"
	"time"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
)

// Store holds every table as a map keyed by id. Values are stored by
// value and cloned on the way out, so callers can never mutate the
// store through a returned record.
type Store struct {
	mu sync.RWMutex

	users       map[string]model.User
	tokens      map[string]model.RefreshToken // keyed by token hash
	ticketTypes map[string]model.TicketType
	tickets     map[string]model.Ticket
	speakers    map[string]model.Speaker
	locations   map[string]model.Location
	schedule    map[string]model.ScheduleEvent
	exhibitors  map[string]model.Exhibitor
	polls       map[string]model.Poll
	votes       map[voteKey]string // -> option id
	settings    model.Settings
}

type voteKey struct{ userID, pollID string }

// NewStore returns an empty store carrying the same default settings
// the SQLite schema seeds.
func NewStore() *Store {
	return &Store{
		users:       map[string]model.User{},
		tokens:      map[string]model.RefreshToken{},
		ticketTypes: map[string]model.TicketType{},
		tickets:     map[string]model.Ticket{},
		speakers:    map[string]model.Speaker{},
		locations:   map[string]model.Location{},
		schedule:    map[string]model.ScheduleEvent{},
		exhibitors:  map[string]model.Exhibitor{},
		polls:       map[string]model.Poll{},
		votes:       map[voteKey]string{},
		settings: model.Settings{
			Title:              "Unite-CPHVA Annual Professional Conference 2025",
			TicketSalesEnabled: true,
			UpdatedAt:          time.Now().UTC(),
		},
	}
}

func (s *Store) Users() repository.UserRepository             { return &UserRepo{s} }
func (s *Store) Tokens() repository.TokenRepository           { return &TokenRepo{s} }
func (s *Store) TicketTypes() repository.TicketTypeRepository { return &TicketTypeRepo{s} }
func (s *Store) Tickets() repository.TicketRepository         { return &TicketRepo{s} }
func (s *Store) Speakers() repository.SpeakerRepository       { return &SpeakerRepo{s} }
func (s *Store) Locations() repository.LocationRepository     { return &LocationRepo{s} }
func (s *Store) Schedule() repository.ScheduleRepository      { return &ScheduleRepo{s} }
func (s *Store) Exhibitors() repository.ExhibitorRepository   { return &ExhibitorRepo{s} }
func (s *Store) Polls() repository.PollRepository             { return &PollRepo{s} }
func (s *Store) Settings() repository.SettingsRepository      { return &SettingsRepo{s} }

func (s *Store) Close() error { return nil }

func cloneTicket(t model.Ticket) model.Ticket {
	if t.CheckInTimestamp != nil {
		ts := *t.CheckInTimestamp
		t.CheckInTimestamp = &ts
	}
	return t
}

func cloneUser(u model.User) model.User {
	if u.AvatarURL != nil {
		v := *u.AvatarURL
		u.AvatarURL = &v
	}
	return u
}

func clonePoll(p model.Poll) model.Poll {
	opts := make([]model.PollOption, len(p.Options))
	copy(opts, p.Options)
	p.Options = opts
	return p
}

func cloneEvent(ev model.ScheduleEvent) model.ScheduleEvent {
	if ev.LocationID != nil {
		v := *ev.LocationID
		ev.LocationID = &v
	}
	ids := make([]string, len(ev.SpeakerIDs))
	copy(ids, ev.SpeakerIDs)
	ev.SpeakerIDs = ids
	return ev
}
