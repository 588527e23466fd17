package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
	"github.com/cphva/cphva-connect/internal/utils"
)

func newUser(name, email string) model.User {
	now := time.Now().UTC()
	return model.User{
		ID:           utils.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Role:         model.RoleAttendee,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newTicket(userID string) model.Ticket {
	return model.Ticket{
		ID:             utils.NewID(),
		UserID:         userID,
		UserName:       "Jo",
		ConferenceName: "Conf",
		TicketType:     "Standard",
		TicketPrice:    decimal.RequireFromString("149.50"),
		PurchaseDate:   time.Now().UTC(),
		QRCodeValue:    utils.NewTicketCode(),
	}
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	u1 := newUser("A", "a@example.com")
	require.NoError(t, s.Users().Create(ctx, &u1))

	u2 := newUser("B", "A@Example.com") // same email modulo case
	err := s.Users().Create(ctx, &u2)
	assert.ErrorIs(t, err, repository.ErrEmailExists)
}

func TestUserRepo_DeleteCascades(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	u := newUser("A", "a@example.com")
	require.NoError(t, s.Users().Create(ctx, &u))
	tk := newTicket(u.ID)
	require.NoError(t, s.Tickets().Create(ctx, &tk))
	require.NoError(t, s.Tokens().StoreRefresh(ctx, u.ID, "hash", time.Now().Add(time.Hour)))

	require.NoError(t, s.Users().Delete(ctx, u.ID))

	_, err := s.Tickets().GetByCode(ctx, tk.QRCodeValue)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = s.Tokens().ValidateRefresh(ctx, "hash")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTicketRepo_DuplicateCode(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	u := newUser("A", "a@example.com")
	require.NoError(t, s.Users().Create(ctx, &u))

	t1 := newTicket(u.ID)
	require.NoError(t, s.Tickets().Create(ctx, &t1))

	t2 := newTicket(u.ID)
	t2.QRCodeValue = t1.QRCodeValue
	assert.ErrorIs(t, s.Tickets().Create(ctx, &t2), repository.ErrDuplicateCode)
}

func TestTicketRepo_CreateWithUser_RollsBackOnFailure(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	existing := newUser("A", "a@example.com")
	require.NoError(t, s.Users().Create(ctx, &existing))
	tk := newTicket(existing.ID)
	require.NoError(t, s.Tickets().Create(ctx, &tk))

	// New user whose ticket collides on the code: neither record may
	// survive.
	u := newUser("B", "b@example.com")
	bad := newTicket(u.ID)
	bad.QRCodeValue = tk.QRCodeValue
	err := s.Tickets().CreateWithUser(ctx, &u, &bad)
	assert.ErrorIs(t, err, repository.ErrDuplicateCode)

	_, err = s.Users().GetByEmail(ctx, "b@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTicketRepo_CheckInByCode(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	u := newUser("A", "a@example.com")
	require.NoError(t, s.Users().Create(ctx, &u))
	tk := newTicket(u.ID)
	require.NoError(t, s.Tickets().Create(ctx, &tk))

	ts := time.Now().UTC()
	won, err := s.Tickets().CheckInByCode(ctx, tk.QRCodeValue, ts)
	require.NoError(t, err)
	assert.True(t, won)

	// Second scan loses without error and leaves the stamp untouched.
	won, err = s.Tickets().CheckInByCode(ctx, tk.QRCodeValue, ts.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, won)

	got, err := s.Tickets().GetByCode(ctx, tk.QRCodeValue)
	require.NoError(t, err)
	assert.True(t, got.IsCheckedIn)
	require.NotNil(t, got.CheckInTimestamp)
	assert.True(t, got.CheckInTimestamp.Equal(ts))

	_, err = s.Tickets().CheckInByCode(ctx, "TICKET-missing", ts)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTicketRepo_ConcurrentCheckIn_SingleWinner(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	u := newUser("A", "a@example.com")
	require.NoError(t, s.Users().Create(ctx, &u))
	tk := newTicket(u.ID)
	require.NoError(t, s.Tickets().Create(ctx, &tk))

	const scans = 32
	var wg sync.WaitGroup
	wins := make(chan bool, scans)
	for i := 0; i < scans; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			won, err := s.Tickets().CheckInByCode(ctx, tk.QRCodeValue, time.Now().UTC())
			assert.NoError(t, err)
			wins <- won
		}()
	}
	wg.Wait()
	close(wins)

	winners := 0
	for won := range wins {
		if won {
			winners++
		}
	}
	assert.Equal(t, 1, winners)
}

func TestTicketRepo_SetCheckInState(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	u := newUser("A", "a@example.com")
	require.NoError(t, s.Users().Create(ctx, &u))
	tk := newTicket(u.ID)
	require.NoError(t, s.Tickets().Create(ctx, &tk))

	ts := time.Now().UTC()
	require.NoError(t, s.Tickets().SetCheckInState(ctx, tk.ID, true, &ts))
	got, err := s.Tickets().GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCheckedIn)
	require.NotNil(t, got.CheckInTimestamp)

	require.NoError(t, s.Tickets().SetCheckInState(ctx, tk.ID, false, nil))
	got, err = s.Tickets().GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.False(t, got.IsCheckedIn)
	assert.Nil(t, got.CheckInTimestamp)
}

func TestTicketTypeRepo_ListOrderedByPrice(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	vip := model.TicketType{ID: utils.NewID(), Name: "VIP", Price: decimal.RequireFromString("299")}
	std := model.TicketType{ID: utils.NewID(), Name: "Standard", Price: decimal.RequireFromString("149.50")}
	require.NoError(t, s.TicketTypes().Create(ctx, &vip))
	require.NoError(t, s.TicketTypes().Create(ctx, &std))

	types, err := s.TicketTypes().List(ctx)
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "Standard", types[0].Name)
	assert.Equal(t, "VIP", types[1].Name)

	dup := model.TicketType{ID: utils.NewID(), Name: "VIP", Price: decimal.RequireFromString("1")}
	assert.ErrorIs(t, s.TicketTypes().Create(ctx, &dup), repository.ErrConflict)
}

func TestPollRepo_VoteOncePerUser(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	p := model.Poll{
		ID:       utils.NewID(),
		Question: "Best session?",
		IsOpen:   true,
		Options: []model.PollOption{
			{ID: "opt-1", Text: "Keynote"},
			{ID: "opt-2", Text: "Workshop"},
		},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.Polls().Create(ctx, &p))

	require.NoError(t, s.Polls().Vote(ctx, "user-1", p.ID, "opt-1"))
	assert.ErrorIs(t, s.Polls().Vote(ctx, "user-1", p.ID, "opt-2"), repository.ErrAlreadyVoted)
	assert.ErrorIs(t, s.Polls().Vote(ctx, "user-2", p.ID, "opt-missing"), repository.ErrNotFound)

	got, err := s.Polls().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Options[0].Votes)
	assert.Equal(t, 0, got.Options[1].Votes)
}

func TestSettingsRepo_Defaults(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	settings, err := s.Settings().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Unite-CPHVA Annual Professional Conference 2025", settings.Title)
	assert.True(t, settings.TicketSalesEnabled)

	settings.TicketSalesEnabled = false
	require.NoError(t, s.Settings().Update(ctx, settings))
	settings, err = s.Settings().Get(ctx)
	require.NoError(t, err)
	assert.False(t, settings.TicketSalesEnabled)
}

func TestTokenRepo_RevokeAndExpiry(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Tokens().StoreRefresh(ctx, "u1", "h1", time.Now().Add(time.Hour)))
	uid, err := s.Tokens().ValidateRefresh(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "u1", uid)

	require.NoError(t, s.Tokens().RevokeByHash(ctx, "h1"))
	_, err = s.Tokens().ValidateRefresh(ctx, "h1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, s.Tokens().StoreRefresh(ctx, "u1", "h2", time.Now().Add(-time.Minute)))
	_, err = s.Tokens().ValidateRefresh(ctx, "h2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
