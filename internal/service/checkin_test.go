package service

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
	"github.com/cphva/cphva-connect/internal/repository/memory"
	"github.com/cphva/cphva-connect/internal/utils"
)

func seedTicket(t *testing.T, store repository.Store) (model.User, model.Ticket) {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC()
	u := model.User{
		ID:           utils.NewID(),
		Name:         "Sarah Jones",
		Email:        "sarah@example.com",
		PasswordHash: "x",
		Role:         model.RoleAttendee,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, store.Users().Create(ctx, &u))

	tk := model.Ticket{
		ID:             utils.NewID(),
		UserID:         u.ID,
		UserName:       u.Name,
		ConferenceName: "Conf 2025",
		TicketType:     "Standard",
		TicketPrice:    decimal.RequireFromString("149.50"),
		PurchaseDate:   now,
		QRCodeValue:    utils.NewTicketCode(),
	}
	require.NoError(t, store.Tickets().Create(ctx, &tk))
	return u, tk
}

func TestValidateAndCheckIn_NewTicket(t *testing.T) {
	store := memory.NewStore()
	_, tk := seedTicket(t, store)
	svc := NewCheckInService(store, "")

	res := svc.ValidateAndCheckIn(context.Background(), tk.QRCodeValue)

	assert.True(t, res.IsValid)
	assert.True(t, res.IsNewlyCheckedIn)
	assert.Equal(t, "Ticket checked in for Sarah Jones!", res.Message)
	require.NotNil(t, res.Ticket)
	assert.True(t, res.Ticket.IsCheckedIn)
	assert.NotNil(t, res.Ticket.CheckInTimestamp)
}

func TestValidateAndCheckIn_Idempotent(t *testing.T) {
	store := memory.NewStore()
	_, tk := seedTicket(t, store)
	svc := NewCheckInService(store, "")
	ctx := context.Background()

	first := svc.ValidateAndCheckIn(ctx, tk.QRCodeValue)
	require.True(t, first.IsNewlyCheckedIn)
	stamp := *first.Ticket.CheckInTimestamp

	second := svc.ValidateAndCheckIn(ctx, tk.QRCodeValue)
	assert.True(t, second.IsValid)
	assert.False(t, second.IsNewlyCheckedIn)
	assert.Equal(t, "Ticket already checked in for Sarah Jones.", second.Message)

	// The rescan must not move the original timestamp.
	got, err := store.Tickets().GetByCode(ctx, tk.QRCodeValue)
	require.NoError(t, err)
	require.NotNil(t, got.CheckInTimestamp)
	assert.True(t, got.CheckInTimestamp.Equal(stamp))
}

func TestValidateAndCheckIn_UnknownCode(t *testing.T) {
	store := memory.NewStore()
	_, tk := seedTicket(t, store)
	svc := NewCheckInService(store, "")
	ctx := context.Background()

	res := svc.ValidateAndCheckIn(ctx, "TICKET-does-not-exist")
	assert.False(t, res.IsValid)
	assert.False(t, res.IsNewlyCheckedIn)
	assert.Equal(t, "Invalid Ticket ID.", res.Message)
	assert.Nil(t, res.Ticket)

	// A failed scan mutates nothing.
	got, err := store.Tickets().GetByCode(ctx, tk.QRCodeValue)
	require.NoError(t, err)
	assert.False(t, got.IsCheckedIn)
	assert.Nil(t, got.CheckInTimestamp)
}

func TestValidateAndCheckIn_ConcurrentScans(t *testing.T) {
	store := memory.NewStore()
	_, tk := seedTicket(t, store)
	svc := NewCheckInService(store, "")

	const scans = 24
	results := make(chan CheckInResult, scans)
	var wg sync.WaitGroup
	for i := 0; i < scans; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.ValidateAndCheckIn(context.Background(), tk.QRCodeValue)
		}()
	}
	wg.Wait()
	close(results)

	newlyCheckedIn := 0
	for res := range results {
		assert.True(t, res.IsValid)
		if res.IsNewlyCheckedIn {
			newlyCheckedIn++
		} else {
			assert.Equal(t, "Ticket already checked in for Sarah Jones.", res.Message)
		}
	}
	assert.Equal(t, 1, newlyCheckedIn)
}

func TestValidateAndCheckIn_DeletedUserInvalidatesTicket(t *testing.T) {
	store := memory.NewStore()
	u, tk := seedTicket(t, store)
	svc := NewCheckInService(store, "")
	ctx := context.Background()

	require.NoError(t, store.Users().Delete(ctx, u.ID))

	res := svc.ValidateAndCheckIn(ctx, tk.QRCodeValue)
	assert.False(t, res.IsValid)
	assert.Equal(t, "Invalid Ticket ID.", res.Message)
}
