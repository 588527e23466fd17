package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cphva/cphva-connect/internal/service"
)

// CheckInHandler serves the QR scan endpoint used by door staff.
type CheckInHandler struct {
	CheckIn *service.CheckInService
}

func NewCheckInHandler(checkIn *service.CheckInService) *CheckInHandler {
	return &CheckInHandler{CheckIn: checkIn}
}

type scanReq struct {
	Code string `json:"code"`
}

// Validate resolves a scanned code and checks the ticket in. The
// response is always 200 with a CheckInResult; the scanner UI renders
// the embedded message rather than branching on HTTP status.
func (h *CheckInHandler) Validate(c echo.Context) error {
	var req scanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "code required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	return c.JSON(http.StatusOK, h.CheckIn.ValidateAndCheckIn(ctx, code))
}
