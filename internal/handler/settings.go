package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cphva/cphva-connect/internal/repository"
)

// SettingsHandler reads and updates the singleton app settings row.
type SettingsHandler struct {
	Store repository.Store
}

func NewSettingsHandler(store repository.Store) *SettingsHandler {
	return &SettingsHandler{Store: store}
}

type updateSettingsReq struct {
	Title              *string `json:"title"`
	TicketSalesEnabled *bool   `json:"ticketSalesEnabled"`
}

// Get returns the current settings. Available to all authenticated
// users so clients can show the conference title and sales state.
func (h *SettingsHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Store.Settings().Get(ctx)
	if err != nil {
		return storeErr(c, err, "load settings failed")
	}
	return c.JSON(http.StatusOK, s)
}

// Update changes the conference title and/or the sales gate (admin
// only). Existing tickets keep their snapshotted conference name.
func (h *SettingsHandler) Update(c echo.Context) error {
	var req updateSettingsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Store.Settings().Get(ctx)
	if err != nil {
		return storeErr(c, err, "load settings failed")
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "title must not be empty"})
		}
		s.Title = title
	}
	if req.TicketSalesEnabled != nil {
		s.TicketSalesEnabled = *req.TicketSalesEnabled
	}
	s.UpdatedAt = time.Now().UTC()

	if err := h.Store.Settings().Update(ctx, s); err != nil {
		return storeErr(c, err, "update settings failed")
	}
	return c.JSON(http.StatusOK, s)
}
