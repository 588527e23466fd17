package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
)

// TicketTypeRepo mirrors the ticket_types table.
type TicketTypeRepo struct{ s *Store }

func (r *TicketTypeRepo) Create(ctx context.Context, tt *model.TicketType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.ticketTypes {
		if existing.Name == tt.Name {
			return repository.ErrConflict
		}
	}
	r.s.ticketTypes[tt.ID] = *tt
	return nil
}

func (r *TicketTypeRepo) GetByID(ctx context.Context, id string) (model.TicketType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tt, ok := r.s.ticketTypes[id]
	if !ok {
		return model.TicketType{}, repository.ErrNotFound
	}
	return tt, nil
}

func (r *TicketTypeRepo) GetByName(ctx context.Context, name string) (model.TicketType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, tt := range r.s.ticketTypes {
		if tt.Name == name {
			return tt, nil
		}
	}
	return model.TicketType{}, repository.ErrNotFound
}

func (r *TicketTypeRepo) List(ctx context.Context) ([]model.TicketType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	types := make([]model.TicketType, 0, len(r.s.ticketTypes))
	for _, tt := range r.s.ticketTypes {
		types = append(types, tt)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Price.LessThan(types[j].Price) })
	return types, nil
}

func (r *TicketTypeRepo) Update(ctx context.Context, tt *model.TicketType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.ticketTypes[tt.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, existing := range r.s.ticketTypes {
		if existing.Name == tt.Name && existing.ID != tt.ID {
			return repository.ErrConflict
		}
	}
	r.s.ticketTypes[tt.ID] = *tt
	return nil
}

func (r *TicketTypeRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.ticketTypes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.ticketTypes, id)
	return nil
}

// TicketRepo mirrors the tickets table. The store-wide mutex plays the
// role the conditional UPDATE plays in SQLite: a check-in is a single
// critical section, so concurrent scans of one badge cannot both win.
type TicketRepo struct{ s *Store }

func (r *TicketRepo) Create(ctx context.Context, t *model.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.createLocked(t)
}

func (r *TicketRepo) createLocked(t *model.Ticket) error {
	for _, existing := range r.s.tickets {
		if existing.QRCodeValue == t.QRCodeValue {
			return repository.ErrDuplicateCode
		}
	}
	if _, ok := r.s.users[t.UserID]; !ok {
		return repository.ErrNotFound
	}
	r.s.tickets[t.ID] = cloneTicket(*t)
	return nil
}

func (r *TicketRepo) CreateWithUser(ctx context.Context, u *model.User, t *model.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repository.ErrEmailExists
		}
	}
	r.s.users[u.ID] = cloneUser(*u)
	if err := r.createLocked(t); err != nil {
		// roll the user back so the pair stays atomic
		delete(r.s.users, u.ID)
		return err
	}
	return nil
}

func (r *TicketRepo) GetByID(ctx context.Context, id string) (model.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tickets[id]
	if !ok {
		return model.Ticket{}, repository.ErrNotFound
	}
	return cloneTicket(t), nil
}

func (r *TicketRepo) GetByCode(ctx context.Context, code string) (model.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, t := range r.s.tickets {
		if t.QRCodeValue == code {
			return cloneTicket(t), nil
		}
	}
	return model.Ticket{}, repository.ErrNotFound
}

func (r *TicketRepo) ListAll(ctx context.Context) ([]model.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tickets := make([]model.Ticket, 0, len(r.s.tickets))
	for _, t := range r.s.tickets {
		tickets = append(tickets, cloneTicket(t))
	}
	sortTickets(tickets)
	return tickets, nil
}

func (r *TicketRepo) ListByUser(ctx context.Context, userID string) ([]model.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tickets := []model.Ticket{}
	for _, t := range r.s.tickets {
		if t.UserID == userID {
			tickets = append(tickets, cloneTicket(t))
		}
	}
	sortTickets(tickets)
	return tickets, nil
}

func (r *TicketRepo) CheckInByCode(ctx context.Context, code string, ts time.Time) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, t := range r.s.tickets {
		if t.QRCodeValue != code {
			continue
		}
		if t.IsCheckedIn {
			return false, nil
		}
		t.IsCheckedIn = true
		stamp := ts
		t.CheckInTimestamp = &stamp
		r.s.tickets[id] = t
		return true, nil
	}
	return false, repository.ErrNotFound
}

func (r *TicketRepo) SetCheckInState(ctx context.Context, id string, checkedIn bool, ts *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tickets[id]
	if !ok {
		return repository.ErrNotFound
	}
	t.IsCheckedIn = checkedIn
	if ts != nil {
		stamp := *ts
		t.CheckInTimestamp = &stamp
	} else {
		t.CheckInTimestamp = nil
	}
	r.s.tickets[id] = t
	return nil
}

func (r *TicketRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tickets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.tickets, id)
	return nil
}

// sortTickets orders newest purchase first, with id as tiebreak for
// deterministic output under equal timestamps.
func sortTickets(tickets []model.Ticket) {
	sort.Slice(tickets, func(i, j int) bool {
		if !tickets[i].PurchaseDate.Equal(tickets[j].PurchaseDate) {
			return tickets[i].PurchaseDate.After(tickets[j].PurchaseDate)
		}
		return tickets[i].ID < tickets[j].ID
	})
}
