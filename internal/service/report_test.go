package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cphva/cphva-connect/internal/repository/memory"
)

func TestReports(t *testing.T) {
	store := memory.NewStore()
	u, _ := seedTicket(t, store)
	seedType(t, store, "Standard", "149.50")
	seedType(t, store, "VIP", "299.00")

	tickets := NewTicketService(store, 4)
	checkIn := NewCheckInService(store, "")
	reports := NewReportService(store)
	ctx := context.Background()

	_, err := tickets.Issue(ctx, u.ID, "Standard")
	require.NoError(t, err)
	vip, err := tickets.Issue(ctx, u.ID, "VIP")
	require.NoError(t, err)

	res := checkIn.ValidateAndCheckIn(ctx, vip.QRCodeValue)
	require.True(t, res.IsNewlyCheckedIn)

	att, err := reports.Attendance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, att.TotalTickets) // seed ticket + two issued
	assert.Equal(t, 1, att.CheckedIn)
	assert.Equal(t, 2, att.Outstanding)
	assert.Len(t, att.Tickets, 3)

	sales, err := reports.Sales(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, sales.TotalTickets)
	// seed ticket is a 149.50 "Standard" as well
	assert.True(t, sales.TotalRevenue.Equal(decimal.RequireFromString("598.00")))
	require.Len(t, sales.Lines, 2)
	assert.Equal(t, "Standard", sales.Lines[0].TicketType)
	assert.Equal(t, 2, sales.Lines[0].Count)
	assert.True(t, sales.Lines[0].Revenue.Equal(decimal.RequireFromString("299.00")))
	assert.Equal(t, "VIP", sales.Lines[1].TicketType)
}
