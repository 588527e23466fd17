package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/service"
	"github.com/cphva/cphva-connect/internal/utils"
)

func TestCheckInValidate(t *testing.T) {
	store, u := seedStore(t)
	tk := model.Ticket{
		ID:           utils.NewID(),
		UserID:       u.ID,
		UserName:     u.Name,
		TicketType:   "Standard",
		TicketPrice:  decimal.RequireFromString("149.50"),
		PurchaseDate: time.Now().UTC(),
		QRCodeValue:  utils.NewTicketCode(),
	}
	require.NoError(t, store.Tickets().Create(context.Background(), &tk))

	h := NewCheckInHandler(service.NewCheckInService(store, ""))
	e := echo.New()

	// Scanners pad codes with whitespace; the handler trims it.
	c, rec := post(e, u.ID, `{"code":"  `+tk.QRCodeValue+`  "}`)
	require.NoError(t, h.Validate(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var res service.CheckInResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.IsValid)
	assert.True(t, res.IsNewlyCheckedIn)
	assert.Equal(t, "Ticket checked in for Sarah Jones!", res.Message)

	// A bad code is still HTTP 200; the result carries the verdict.
	c, rec = post(e, u.ID, `{"code":"TICKET-bogus"}`)
	require.NoError(t, h.Validate(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.False(t, res.IsValid)
	assert.Equal(t, "Invalid Ticket ID.", res.Message)

	// An empty code is a request-shape error.
	c, rec = post(e, u.ID, `{"code":"   "}`)
	require.NoError(t, h.Validate(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
