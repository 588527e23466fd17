// Package service implements the domain workflows behind the HTTP
// handlers: ticket issuance, QR check-in validation and reporting.
package service

import (
	"context"
	"time"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/monitoring"
	"github.com/cphva/cphva-connect/internal/repository"
	"github.com/cphva/cphva-connect/internal/utils"
)

// TicketService issues tickets. Every issuance snapshots the buyer's
// name, the type name and price, and the current conference title onto
// the ticket row so the record describes the ticket as sold even after
// the source data changes.
type TicketService struct {
	store      repository.Store
	bcryptCost int
}

// NewTicketService builds a TicketService. bcryptCost is used when
// issuance creates the attendee account in the same step.
func NewTicketService(store repository.Store, bcryptCost int) *TicketService {
	return &TicketService{store: store, bcryptCost: bcryptCost}
}

// Issue creates a ticket of the named type for an existing user.
// Returns repository.ErrNotFound when the user or type is unknown.
func (s *TicketService) Issue(ctx context.Context, userID, ticketTypeName string) (model.Ticket, error) {
	tt, err := s.store.TicketTypes().GetByName(ctx, ticketTypeName)
	if err != nil {
		return model.Ticket{}, err
	}
	u, err := s.store.Users().GetByID(ctx, userID)
	if err != nil {
		return model.Ticket{}, err
	}

	t := s.buildTicket(ctx, &u, tt)
	if err := s.store.Tickets().Create(ctx, &t); err != nil {
		return model.Ticket{}, err
	}
	monitoring.TrackTicketIssued(tt.Name)
	return t, nil
}

// IssueForNewUser registers an attendee account and issues their first
// ticket in a single atomic step: if the ticket insert fails the user
// record does not survive either. The plaintext password is hashed
// here; repositories only ever see the hash.
func (s *TicketService) IssueForNewUser(ctx context.Context, name, email, password, ticketTypeName string) (model.User, model.Ticket, error) {
	tt, err := s.store.TicketTypes().GetByName(ctx, ticketTypeName)
	if err != nil {
		return model.User{}, model.Ticket{}, err
	}
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return model.User{}, model.Ticket{}, err
	}

	now := time.Now().UTC()
	u := model.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAttendee,
		NameIsPublic: true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	t := s.buildTicket(ctx, &u, tt)
	if err := s.store.Tickets().CreateWithUser(ctx, &u, &t); err != nil {
		return model.User{}, model.Ticket{}, err
	}
	monitoring.TrackTicketIssued(tt.Name)
	return u, t, nil
}

func (s *TicketService) buildTicket(ctx context.Context, u *model.User, tt model.TicketType) model.Ticket {
	conference := ""
	if settings, err := s.store.Settings().Get(ctx); err == nil {
		conference = settings.Title
	}
	return model.Ticket{
		ID:             utils.NewID(),
		UserID:         u.ID,
		UserName:       u.Name,
		ConferenceName: conference,
		TicketType:     tt.Name,
		TicketPrice:    tt.Price,
		PurchaseDate:   time.Now().UTC(),
		QRCodeValue:    utils.NewTicketCode(),
		IsCheckedIn:    false,
	}
}

// ToggleCheckIn flips a ticket's check-in flag by id, stamping the
// timestamp when setting and clearing it when unsetting. This is the
// manual correction path for staff; it does not publish events.
func (s *TicketService) ToggleCheckIn(ctx context.Context, ticketID string) (model.Ticket, error) {
	t, err := s.store.Tickets().GetByID(ctx, ticketID)
	if err != nil {
		return model.Ticket{}, err
	}
	if t.IsCheckedIn {
		if err := s.store.Tickets().SetCheckInState(ctx, ticketID, false, nil); err != nil {
			return model.Ticket{}, err
		}
		t.IsCheckedIn = false
		t.CheckInTimestamp = nil
		return t, nil
	}
	ts := time.Now().UTC()
	if err := s.store.Tickets().SetCheckInState(ctx, ticketID, true, &ts); err != nil {
		return model.Ticket{}, err
	}
	t.IsCheckedIn = true
	t.CheckInTimestamp = &ts
	return t, nil
}
