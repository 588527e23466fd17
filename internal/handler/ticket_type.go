package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
	"github.com/cphva/cphva-connect/internal/utils"
)

// TicketTypeHandler manages the ticket-type catalog. Listing is open
// to authenticated users; mutations are admin only.
type TicketTypeHandler struct {
	Store repository.Store
}

func NewTicketTypeHandler(store repository.Store) *TicketTypeHandler {
	return &TicketTypeHandler{Store: store}
}

type ticketTypeReq struct {
	Name              string `json:"name"`
	Price             string `json:"price"`
	Description       string `json:"description"`
	AvailableQuantity *int   `json:"availableQuantity"`
}

// List returns all ticket types ordered by ascending price.
func (h *TicketTypeHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	types, err := h.Store.TicketTypes().List(ctx)
	if err != nil {
		return storeErr(c, err, "list ticket types failed")
	}
	return c.JSON(http.StatusOK, types)
}

// Create adds a ticket type. Price arrives as a decimal string so
// amounts like "149.50" survive exactly.
func (h *TicketTypeHandler) Create(c echo.Context) error {
	var req ticketTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil || price.IsNegative() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	tt := model.TicketType{
		ID:                utils.NewID(),
		Name:              req.Name,
		Price:             price,
		Description:       req.Description,
		AvailableQuantity: req.AvailableQuantity,
	}
	if err := h.Store.TicketTypes().Create(ctx, &tt); err != nil {
		return storeErr(c, err, "create ticket type failed")
	}
	return c.JSON(http.StatusCreated, tt)
}

// Update replaces a ticket type's fields. Existing tickets keep their
// snapshotted name and price.
func (h *TicketTypeHandler) Update(c echo.Context) error {
	var req ticketTypeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil || price.IsNegative() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	tt := model.TicketType{
		ID:                c.Param("id"),
		Name:              req.Name,
		Price:             price,
		Description:       req.Description,
		AvailableQuantity: req.AvailableQuantity,
	}
	if err := h.Store.TicketTypes().Update(ctx, &tt); err != nil {
		return storeErr(c, err, "update ticket type failed")
	}
	return c.JSON(http.StatusOK, tt)
}

// Delete removes a ticket type. Issued tickets are unaffected because
// they reference the type only by snapshotted name.
func (h *TicketTypeHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Store.TicketTypes().Delete(ctx, c.Param("id")); err != nil {
		return storeErr(c, err, "delete ticket type failed")
	}
	return c.NoContent(http.StatusNoContent)
}
