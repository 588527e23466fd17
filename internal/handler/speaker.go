package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
	"github.com/cphva/cphva-connect/internal/utils"
)

// SpeakerHandler manages the speaker catalog. Reads are public within
// the authenticated app; writes are organiser/admin.
type SpeakerHandler struct {
	Store repository.Store
}

func NewSpeakerHandler(store repository.Store) *SpeakerHandler {
	return &SpeakerHandler{Store: store}
}

type speakerReq struct {
	Name     string  `json:"name"`
	Title    string  `json:"title"`
	Bio      string  `json:"bio"`
	ImageURL *string `json:"imageUrl"`
}

func (h *SpeakerHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	speakers, err := h.Store.Speakers().List(ctx)
	if err != nil {
		return storeErr(c, err, "list speakers failed")
	}
	return c.JSON(http.StatusOK, speakers)
}

func (h *SpeakerHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Store.Speakers().GetByID(ctx, c.Param("id"))
	if err != nil {
		return storeErr(c, err, "load speaker failed")
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SpeakerHandler) Create(c echo.Context) error {
	var req speakerReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	s := model.Speaker{
		ID:       utils.NewID(),
		Name:     strings.TrimSpace(req.Name),
		Title:    req.Title,
		Bio:      req.Bio,
		ImageURL: req.ImageURL,
	}
	if err := h.Store.Speakers().Create(ctx, &s); err != nil {
		return storeErr(c, err, "create speaker failed")
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *SpeakerHandler) Update(c echo.Context) error {
	var req speakerReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	s := model.Speaker{
		ID:       c.Param("id"),
		Name:     strings.TrimSpace(req.Name),
		Title:    req.Title,
		Bio:      req.Bio,
		ImageURL: req.ImageURL,
	}
	if err := h.Store.Speakers().Update(ctx, &s); err != nil {
		return storeErr(c, err, "update speaker failed")
	}
	return c.JSON(http.StatusOK, s)
}

// Delete removes a speaker; schedule events drop the reference.
func (h *SpeakerHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Store.Speakers().Delete(ctx, c.Param("id")); err != nil {
		return storeErr(c, err, "delete speaker failed")
	}
	return c.NoContent(http.StatusNoContent)
}
