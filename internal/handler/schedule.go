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

// ScheduleHandler manages the conference programme.
type ScheduleHandler struct {
	Store repository.Store
}

func NewScheduleHandler(store repository.Store) *ScheduleHandler {
	return &ScheduleHandler{Store: store}
}

type scheduleEventReq struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	StartTime   string   `json:"startTime"` // RFC3339
	EndTime     string   `json:"endTime"`   // RFC3339
	LocationID  *string  `json:"locationId"`
	SpeakerIDs  []string `json:"speakerIds"`
}

func (r scheduleEventReq) parse() (start, end time.Time, err error) {
	start, err = time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return
	}
	end, err = time.Parse(time.RFC3339, r.EndTime)
	return
}

// List returns the full programme ordered by start time.
func (h *ScheduleHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	events, err := h.Store.Schedule().List(ctx)
	if err != nil {
		return storeErr(c, err, "list schedule failed")
	}
	return c.JSON(http.StatusOK, events)
}

func (h *ScheduleHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	ev, err := h.Store.Schedule().GetByID(ctx, c.Param("id"))
	if err != nil {
		return storeErr(c, err, "load event failed")
	}
	return c.JSON(http.StatusOK, ev)
}

func (h *ScheduleHandler) Create(c echo.Context) error {
	var req scheduleEventReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	start, end, err := req.parse()
	if err != nil || !end.After(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid startTime/endTime"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ev := model.ScheduleEvent{
		ID:          utils.NewID(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		StartTime:   start.UTC(),
		EndTime:     end.UTC(),
		LocationID:  req.LocationID,
		SpeakerIDs:  req.SpeakerIDs,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Store.Schedule().Create(ctx, &ev); err != nil {
		return storeErr(c, err, "create event failed")
	}
	return c.JSON(http.StatusCreated, ev)
}

func (h *ScheduleHandler) Update(c echo.Context) error {
	var req scheduleEventReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}
	start, end, err := req.parse()
	if err != nil || !end.After(start) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid startTime/endTime"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cur, err := h.Store.Schedule().GetByID(ctx, c.Param("id"))
	if err != nil {
		return storeErr(c, err, "load event failed")
	}
	ev := model.ScheduleEvent{
		ID:          cur.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		StartTime:   start.UTC(),
		EndTime:     end.UTC(),
		LocationID:  req.LocationID,
		SpeakerIDs:  req.SpeakerIDs,
		CreatedAt:   cur.CreatedAt,
	}
	if err := h.Store.Schedule().Update(ctx, &ev); err != nil {
		return storeErr(c, err, "update event failed")
	}
	return c.JSON(http.StatusOK, ev)
}

func (h *ScheduleHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Store.Schedule().Delete(ctx, c.Param("id")); err != nil {
		return storeErr(c, err, "delete event failed")
	}
	return c.NoContent(http.StatusNoContent)
}
