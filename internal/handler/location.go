package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
	"github.com/cphva/cphva-connect/internal/utils"
)

// LocationHandler manages venue locations.
type LocationHandler struct {
	Store repository.Store
}

func NewLocationHandler(store repository.Store) *LocationHandler {
	return &LocationHandler{Store: store}
}

type locationReq struct {
	Name string `json:"name"`
}

func (h *LocationHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	locations, err := h.Store.Locations().List(ctx)
	if err != nil {
		return storeErr(c, err, "list locations failed")
	}
	return c.JSON(http.StatusOK, locations)
}

func (h *LocationHandler) Create(c echo.Context) error {
	var req locationReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	l := model.Location{ID: utils.NewID(), Name: strings.TrimSpace(req.Name)}
	if err := h.Store.Locations().Create(ctx, &l); err != nil {
		return storeErr(c, err, "create location failed")
	}
	return c.JSON(http.StatusCreated, l)
}

func (h *LocationHandler) Update(c echo.Context) error {
	var req locationReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	l := model.Location{ID: c.Param("id"), Name: strings.TrimSpace(req.Name)}
	if err := h.Store.Locations().Update(ctx, &l); err != nil {
		return storeErr(c, err, "update location failed")
	}
	return c.JSON(http.StatusOK, l)
}

// Delete removes a location; schedule events referencing it keep
// running with their location cleared.
func (h *LocationHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Store.Locations().Delete(ctx, c.Param("id")); err != nil {
		return storeErr(c, err, "delete location failed")
	}
	return c.NoContent(http.StatusNoContent)
}
