package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
	"github.com/cphva/cphva-connect/internal/repository/memory"
	"github.com/cphva/cphva-connect/internal/service"
	"github.com/cphva/cphva-connect/internal/utils"
)

func seedStore(t *testing.T) (repository.Store, model.User) {
	t.Helper()
	store := memory.NewStore()
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

	tt := model.TicketType{
		ID:    utils.NewID(),
		Name:  "Standard",
		Price: decimal.RequireFromString("149.50"),
	}
	require.NoError(t, store.TicketTypes().Create(ctx, &tt))
	return store, u
}

// post builds an authenticated JSON request context the way the JWT
// middleware would have left it.
func post(e *echo.Echo, uid, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uid)
	return c, rec
}

func TestPurchase_RefusedWhileSalesDisabled(t *testing.T) {
	store, u := seedStore(t)
	ctx := context.Background()

	settings, err := store.Settings().Get(ctx)
	require.NoError(t, err)
	settings.TicketSalesEnabled = false
	require.NoError(t, store.Settings().Update(ctx, settings))

	h := NewTicketHandler(store, service.NewTicketService(store, 4))
	e := echo.New()

	c, rec := post(e, u.ID, `{"ticketType":"Standard"}`)
	require.NoError(t, h.Purchase(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	tickets, err := store.Tickets().ListByUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestPurchase_IssuesWhileSalesEnabled(t *testing.T) {
	store, u := seedStore(t)

	h := NewTicketHandler(store, service.NewTicketService(store, 4))
	e := echo.New()

	c, rec := post(e, u.ID, `{"ticketType":"Standard"}`)
	require.NoError(t, h.Purchase(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var tk model.Ticket
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tk))
	assert.Equal(t, u.ID, tk.UserID)
	assert.Equal(t, "Standard", tk.TicketType)
	assert.True(t, strings.HasPrefix(tk.QRCodeValue, "TICKET-"))
}

func TestPurchase_UnknownTypeIs404(t *testing.T) {
	store, u := seedStore(t)

	h := NewTicketHandler(store, service.NewTicketService(store, 4))
	e := echo.New()

	c, rec := post(e, u.ID, `{"ticketType":"Gold"}`)
	require.NoError(t, h.Purchase(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
