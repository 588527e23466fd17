package service

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
	"github.com/cphva/cphva-connect/internal/repository/memory"
	"github.com/cphva/cphva-connect/internal/utils"
)

func seedType(t *testing.T, store repository.Store, name, price string) model.TicketType {
	t.Helper()
	tt := model.TicketType{
		ID:    utils.NewID(),
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
	require.NoError(t, store.TicketTypes().Create(context.Background(), &tt))
	return tt
}

func TestIssue_SnapshotsSaleDetails(t *testing.T) {
	store := memory.NewStore()
	u, _ := seedTicket(t, store)
	seedType(t, store, "VIP", "299.00")
	svc := NewTicketService(store, 4)
	ctx := context.Background()

	tk, err := svc.Issue(ctx, u.ID, "VIP")
	require.NoError(t, err)

	assert.Equal(t, u.Name, tk.UserName)
	assert.Equal(t, "VIP", tk.TicketType)
	assert.True(t, tk.TicketPrice.Equal(decimal.RequireFromString("299.00")))
	assert.Equal(t, "Unite-CPHVA Annual Professional Conference 2025", tk.ConferenceName)
	assert.True(t, strings.HasPrefix(tk.QRCodeValue, "TICKET-"))
	assert.False(t, tk.IsCheckedIn)
	assert.Nil(t, tk.CheckInTimestamp)

	// Renaming the user afterwards must not rewrite the sold ticket.
	u.Name = "Renamed"
	require.NoError(t, store.Users().Update(ctx, &u))
	got, err := store.Tickets().GetByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sarah Jones", got.UserName)
}

func TestIssue_UnknownTypeOrUser(t *testing.T) {
	store := memory.NewStore()
	u, _ := seedTicket(t, store)
	seedType(t, store, "Standard Entry", "10")
	svc := NewTicketService(store, 4)
	ctx := context.Background()

	_, err := svc.Issue(ctx, u.ID, "Gold")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Issue(ctx, "missing-user", "Standard Entry")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestIssue_CodesAreUnique(t *testing.T) {
	store := memory.NewStore()
	u, _ := seedTicket(t, store)
	seedType(t, store, "Day Pass", "25")
	svc := NewTicketService(store, 4)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tk, err := svc.Issue(ctx, u.ID, "Day Pass")
		require.NoError(t, err)
		assert.False(t, seen[tk.QRCodeValue], "duplicate code %s", tk.QRCodeValue)
		seen[tk.QRCodeValue] = true
	}
}

func TestIssueForNewUser_Atomic(t *testing.T) {
	store := memory.NewStore()
	seedType(t, store, "Standard", "149.50")
	svc := NewTicketService(store, 4)
	ctx := context.Background()

	u, tk, err := svc.IssueForNewUser(ctx, "New Person", "new@example.com", "secret", "Standard")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAttendee, u.Role)
	assert.Equal(t, u.ID, tk.UserID)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "secret"))

	// Duplicate email fails and leaves no half-created records behind.
	_, _, err = svc.IssueForNewUser(ctx, "Other", "new@example.com", "pw", "Standard")
	assert.ErrorIs(t, err, repository.ErrEmailExists)

	tickets, err := store.Tickets().ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tickets, 1)
	users, err := store.Users().List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestToggleCheckIn_Reversible(t *testing.T) {
	store := memory.NewStore()
	_, tk := seedTicket(t, store)
	svc := NewTicketService(store, 4)
	ctx := context.Background()

	on, err := svc.ToggleCheckIn(ctx, tk.ID)
	require.NoError(t, err)
	assert.True(t, on.IsCheckedIn)
	require.NotNil(t, on.CheckInTimestamp)

	off, err := svc.ToggleCheckIn(ctx, tk.ID)
	require.NoError(t, err)
	assert.False(t, off.IsCheckedIn)
	assert.Nil(t, off.CheckInTimestamp)

	_, err = svc.ToggleCheckIn(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
