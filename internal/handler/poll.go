package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cphva/cphva-connect/internal/model"
	"github.com/cphva/cphva-connect/internal/repository"
	"github.com/cphva/cphva-connect/internal/utils"
)

// PollHandler serves live audience polls: organisers create and
// open/close them, attendees vote once per poll.
type PollHandler struct {
	Store repository.Store
}

func NewPollHandler(store repository.Store) *PollHandler {
	return &PollHandler{Store: store}
}

type createPollReq struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type setOpenReq struct {
	IsOpen bool `json:"isOpen"`
}

type voteReq struct {
	OptionID string `json:"optionId"`
}

func (h *PollHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	polls, err := h.Store.Polls().List(ctx)
	if err != nil {
		return storeErr(c, err, "list polls failed")
	}
	return c.JSON(http.StatusOK, polls)
}

func (h *PollHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Store.Polls().GetByID(ctx, c.Param("id"))
	if err != nil {
		return storeErr(c, err, "load poll failed")
	}
	return c.JSON(http.StatusOK, p)
}

// Create adds a poll with at least two options. Polls start closed.
func (h *PollHandler) Create(c echo.Context) error {
	var req createPollReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" || len(req.Options) < 2 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "question and at least two options required"})
	}

	p := model.Poll{
		ID:        utils.NewID(),
		Question:  req.Question,
		CreatedAt: time.Now().UTC(),
	}
	for _, text := range req.Options {
		text = strings.TrimSpace(text)
		if text == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "empty option text"})
		}
		p.Options = append(p.Options, model.PollOption{ID: utils.NewID(), Text: text})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Store.Polls().Create(ctx, &p); err != nil {
		return storeErr(c, err, "create poll failed")
	}
	return c.JSON(http.StatusCreated, p)
}

// SetOpen opens or closes a poll for voting.
func (h *PollHandler) SetOpen(c echo.Context) error {
	var req setOpenReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Store.Polls().SetOpen(ctx, c.Param("id"), req.IsOpen); err != nil {
		return storeErr(c, err, "update poll failed")
	}
	p, err := h.Store.Polls().GetByID(ctx, c.Param("id"))
	if err != nil {
		return storeErr(c, err, "load poll failed")
	}
	return c.JSON(http.StatusOK, p)
}

// Vote records the authenticated user's single vote in a poll.
func (h *PollHandler) Vote(c echo.Context) error {
	var req voteReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.OptionID) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "optionId required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Store.Polls().GetByID(ctx, c.Param("id"))
	if err != nil {
		return storeErr(c, err, "load poll failed")
	}
	if !p.IsOpen {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "poll is closed"})
	}

	if err := h.Store.Polls().Vote(ctx, userID(c), p.ID, strings.TrimSpace(req.OptionID)); err != nil {
		return storeErr(c, err, "vote failed")
	}
	p, err = h.Store.Polls().GetByID(ctx, p.ID)
	if err != nil {
		return storeErr(c, err, "load poll failed")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *PollHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Store.Polls().Delete(ctx, c.Param("id")); err != nil {
		return storeErr(c, err, "delete poll failed")
	}
	return c.NoContent(http.StatusNoContent)
}
