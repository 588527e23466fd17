package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cphva/cphva-connect/internal/database"
	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
	"github.com/cphva/cphva-connect/internal/utils"
)

// newTestStore opens an in-memory database with the real schema and
// pragmas. SetMaxOpenConns(1) keeps the in-memory database alive for
// the duration of the test.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}

func seedUser(t *testing.T, s *Store, email string) model.User {
	t.Helper()
	now := time.Now().UTC()
	u := model.User{
		ID:           utils.NewID(),
		Name:         "Sarah Jones",
		Email:        email,
		PasswordHash: "x",
		Role:         model.RoleAttendee,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Users().Create(context.Background(), &u))
	return u
}

func seedTicket(t *testing.T, s *Store, userID string) model.Ticket {
	t.Helper()
	tk := model.Ticket{
		ID:             utils.NewID(),
		UserID:         userID,
		UserName:       "Sarah Jones",
		ConferenceName: "Conf 2025",
		TicketType:     "Standard",
		TicketPrice:    decimal.RequireFromString("149.50"),
		PurchaseDate:   time.Now().UTC(),
		QRCodeValue:    utils.NewTicketCode(),
	}
	require.NoError(t, s.Tickets().Create(context.Background(), &tk))
	return tk
}

func TestUserRepo_SQLite_CRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "sarah@example.com")

	got, err := s.Users().GetByEmail(ctx, "SARAH@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	dup := u
	dup.ID = utils.NewID()
	assert.ErrorIs(t, s.Users().Create(ctx, &dup), repository.ErrEmailExists)

	got.Name = "Renamed"
	require.NoError(t, s.Users().Update(ctx, &got))
	got, err = s.Users().GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	require.NoError(t, s.Users().Delete(ctx, u.ID))
	_, err = s.Users().GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTicketRepo_SQLite_CheckInByCode(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "a@example.com")
	tk := seedTicket(t, s, u.ID)

	ts := time.Now().UTC().Truncate(time.Second)
	won, err := s.Tickets().CheckInByCode(ctx, tk.QRCodeValue, ts)
	require.NoError(t, err)
	assert.True(t, won)

	// The conditional UPDATE matches zero rows on a rescan.
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

func TestTicketRepo_SQLite_CascadeDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "a@example.com")
	tk := seedTicket(t, s, u.ID)

	require.NoError(t, s.Users().Delete(ctx, u.ID))

	_, err := s.Tickets().GetByCode(ctx, tk.QRCodeValue)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTicketRepo_SQLite_CreateWithUserAtomic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	existing := seedUser(t, s, "a@example.com")
	tk := seedTicket(t, s, existing.ID)

	now := time.Now().UTC()
	u := model.User{
		ID:           utils.NewID(),
		Name:         "New Person",
		Email:        "b@example.com",
		PasswordHash: "x",
		Role:         model.RoleAttendee,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	bad := model.Ticket{
		ID:           utils.NewID(),
		UserID:       u.ID,
		UserName:     u.Name,
		TicketType:   "Standard",
		TicketPrice:  decimal.RequireFromString("149.50"),
		PurchaseDate: now,
		QRCodeValue:  tk.QRCodeValue, // collides
	}
	err := s.Tickets().CreateWithUser(ctx, &u, &bad)
	require.Error(t, err)

	// Transaction rolled back: the user must not exist.
	_, err = s.Users().GetByEmail(ctx, "b@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTicketTypeRepo_SQLite_OrderAndPricePrecision(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	qty := 100
	vip := model.TicketType{ID: utils.NewID(), Name: "VIP", Price: decimal.RequireFromString("299.00"), AvailableQuantity: &qty}
	std := model.TicketType{ID: utils.NewID(), Name: "Standard", Price: decimal.RequireFromString("149.50")}
	require.NoError(t, s.TicketTypes().Create(ctx, &vip))
	require.NoError(t, s.TicketTypes().Create(ctx, &std))

	types, err := s.TicketTypes().List(ctx)
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "Standard", types[0].Name)
	assert.True(t, types[0].Price.Equal(decimal.RequireFromString("149.50")))
	require.NotNil(t, types[1].AvailableQuantity)
	assert.Equal(t, 100, *types[1].AvailableQuantity)

	got, err := s.TicketTypes().GetByName(ctx, "VIP")
	require.NoError(t, err)
	assert.Equal(t, vip.ID, got.ID)
	_, err = s.TicketTypes().GetByName(ctx, "vip")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPollRepo_SQLite_Vote(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "a@example.com")
	p := model.Poll{
		ID:       utils.NewID(),
		Question: "Best session?",
		IsOpen:   true,
		Options: []model.PollOption{
			{ID: utils.NewID(), Text: "Keynote"},
			{ID: utils.NewID(), Text: "Workshop"},
		},
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, s.Polls().Create(ctx, &p))

	require.NoError(t, s.Polls().Vote(ctx, u.ID, p.ID, p.Options[0].ID))
	assert.ErrorIs(t, s.Polls().Vote(ctx, u.ID, p.ID, p.Options[1].ID), repository.ErrAlreadyVoted)

	got, err := s.Polls().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Options[0].Votes)
	assert.Equal(t, 0, got.Options[1].Votes)
}

func TestSettingsRepo_SQLite_SeededRow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	settings, err := s.Settings().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Unite-CPHVA Annual Professional Conference 2025", settings.Title)
	assert.True(t, settings.TicketSalesEnabled)

	settings.TicketSalesEnabled = false
	settings.Title = "Renamed Conference"
	require.NoError(t, s.Settings().Update(ctx, settings))

	settings, err = s.Settings().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Conference", settings.Title)
	assert.False(t, settings.TicketSalesEnabled)
}

func TestScheduleRepo_SQLite_SpeakerLinks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sp := model.Speaker{ID: utils.NewID(), Name: "Dr. Smith"}
	require.NoError(t, s.Speakers().Create(ctx, &sp))
	loc := model.Location{ID: utils.NewID(), Name: "Main Hall"}
	require.NoError(t, s.Locations().Create(ctx, &loc))

	start := time.Now().UTC().Truncate(time.Second)
	ev := model.ScheduleEvent{
		ID:         utils.NewID(),
		Title:      "Opening Keynote",
		StartTime:  start,
		EndTime:    start.Add(time.Hour),
		LocationID: &loc.ID,
		SpeakerIDs: []string{sp.ID},
		CreatedAt:  start,
	}
	require.NoError(t, s.Schedule().Create(ctx, &ev))

	got, err := s.Schedule().GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{sp.ID}, got.SpeakerIDs)
	require.NotNil(t, got.LocationID)
	assert.Equal(t, loc.ID, *got.LocationID)

	// Deleting the location clears the reference but keeps the event.
	require.NoError(t, s.Locations().Delete(ctx, loc.ID))
	got, err = s.Schedule().GetByID(ctx, ev.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LocationID)
}
