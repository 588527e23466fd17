package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
	"github.com/cphva/cphva-connect/internal/utils"
)

// ExhibitorHandler manages the exhibitor catalog.
type ExhibitorHandler struct {
	Store repository.Store
}

func NewExhibitorHandler(store repository.Store) *ExhibitorHandler {
	return &ExhibitorHandler{Store: store}
}

type exhibitorReq struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	LogoURL     *string `json:"logoUrl"`
	WebsiteURL  string  `json:"websiteUrl"`
	BoothNumber string  `json:"boothNumber"`
}

func (h *ExhibitorHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	exhibitors, err := h.Store.Exhibitors().List(ctx)
	if err != nil {
		return storeErr(c, err, "list exhibitors failed")
	}
	return c.JSON(http.StatusOK, exhibitors)
}

func (h *ExhibitorHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	ex, err := h.Store.Exhibitors().GetByID(ctx, c.Param("id"))
	if err != nil {
		return storeErr(c, err, "load exhibitor failed")
	}
	return c.JSON(http.StatusOK, ex)
}

func (h *ExhibitorHandler) Create(c echo.Context) error {
	var req exhibitorReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ex := model.Exhibitor{
		ID:          utils.NewID(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		LogoURL:     req.LogoURL,
		WebsiteURL:  req.WebsiteURL,
		BoothNumber: req.BoothNumber,
	}
	if err := h.Store.Exhibitors().Create(ctx, &ex); err != nil {
		return storeErr(c, err, "create exhibitor failed")
	}
	return c.JSON(http.StatusCreated, ex)
}

func (h *ExhibitorHandler) Update(c echo.Context) error {
	var req exhibitorReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ex := model.Exhibitor{
		ID:          c.Param("id"),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		LogoURL:     req.LogoURL,
		WebsiteURL:  req.WebsiteURL,
		BoothNumber: req.BoothNumber,
	}
	if err := h.Store.Exhibitors().Update(ctx, &ex); err != nil {
		return storeErr(c, err, "update exhibitor failed")
	}
	return c.JSON(http.StatusOK, ex)
}

func (h *ExhibitorHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Store.Exhibitors().Delete(ctx, c.Param("id")); err != nil {
		return storeErr(c, err, "delete exhibitor failed")
	}
	return c.NoContent(http.StatusNoContent)
}
