package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cphva/cphva-connect/internal/repository"
	"github.com/cphva/cphva-connect/internal/service"
)

// TicketHandler serves attendee self-purchase, the attendee's own
// ticket list, and admin ticket management.
type TicketHandler struct {
	Store   repository.Store
	Tickets *service.TicketService
}

func NewTicketHandler(store repository.Store, tickets *service.TicketService) *TicketHandler {
	return &TicketHandler{Store: store, Tickets: tickets}
}

type purchaseReq struct {
	TicketType string `json:"ticketType"`
}

type issueReq struct {
	UserID     string `json:"userId"`
	TicketType string `json:"ticketType"`
}

type issueNewUserReq struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	TicketType string `json:"ticketType"`
}

// ListMine returns the authenticated user's tickets, newest first.
func (h *TicketHandler) ListMine(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	tickets, err := h.Store.Tickets().ListByUser(ctx, userID(c))
	if err != nil {
		return storeErr(c, err, "list tickets failed")
	}
	return c.JSON(http.StatusOK, tickets)
}

// Purchase issues a ticket of the requested type to the authenticated
// user. Refused with 403 while ticket sales are disabled in settings.
func (h *TicketHandler) Purchase(c echo.Context) error {
	var req purchaseReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.TicketType) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ticketType required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	settings, err := h.Store.Settings().Get(ctx)
	if err != nil {
		return storeErr(c, err, "load settings failed")
	}
	if !settings.TicketSalesEnabled {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "ticket sales are closed"})
	}

	t, err := h.Tickets.Issue(ctx, userID(c), strings.TrimSpace(req.TicketType))
	if err != nil {
		return storeErr(c, err, "issue ticket failed")
	}
	return c.JSON(http.StatusCreated, t)
}

// ListAll returns every ticket (admin only).
func (h *TicketHandler) ListAll(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	tickets, err := h.Store.Tickets().ListAll(ctx)
	if err != nil {
		return storeErr(c, err, "list tickets failed")
	}
	return c.JSON(http.StatusOK, tickets)
}

// Issue creates a ticket for an existing user (admin only). Sales
// gating does not apply to admin issuance.
func (h *TicketHandler) Issue(c echo.Context) error {
	var req issueReq
	if err := c.Bind(&req); err != nil || req.UserID == "" || strings.TrimSpace(req.TicketType) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "userId/ticketType required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	t, err := h.Tickets.Issue(ctx, req.UserID, strings.TrimSpace(req.TicketType))
	if err != nil {
		return storeErr(c, err, "issue ticket failed")
	}
	return c.JSON(http.StatusCreated, t)
}

// IssueForNewUser registers an attendee and issues their first ticket
// in one atomic step (admin only, used at the registration desk).
func (h *TicketHandler) IssueForNewUser(c echo.Context) error {
	var req issueNewUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" || strings.TrimSpace(req.TicketType) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/password/ticketType required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, t, err := h.Tickets.IssueForNewUser(ctx, req.Name, req.Email, req.Password, strings.TrimSpace(req.TicketType))
	if err != nil {
		return storeErr(c, err, "issue ticket failed")
	}
	return c.JSON(http.StatusCreated, echo.Map{"user": u, "ticket": t})
}

// ToggleCheckIn flips a ticket's check-in state by id (admin/staff
// correction path).
func (h *TicketHandler) ToggleCheckIn(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	t, err := h.Tickets.ToggleCheckIn(ctx, c.Param("id"))
	if err != nil {
		return storeErr(c, err, "toggle check-in failed")
	}
	return c.JSON(http.StatusOK, t)
}

// Delete removes a ticket (admin only).
func (h *TicketHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Store.Tickets().Delete(ctx, c.Param("id")); err != nil {
		return storeErr(c, err, "delete ticket failed")
	}
	return c.NoContent(http.StatusNoContent)
}
