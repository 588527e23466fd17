package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cphva/cphva-connect/internal/service"
)

// ReportHandler serves admin summaries over the ticket ledger.
type ReportHandler struct {
	Reports *service.ReportService
}

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{Reports: reports}
}

// Attendance returns check-in totals plus the full ticket list.
func (h *ReportHandler) Attendance(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rep, err := h.Reports.Attendance(ctx)
	if err != nil {
		return storeErr(c, err, "attendance report failed")
	}
	return c.JSON(http.StatusOK, rep)
}

// Sales returns per-type revenue computed from snapshotted prices.
func (h *ReportHandler) Sales(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rep, err := h.Reports.Sales(ctx)
	if err != nil {
		return storeErr(c, err, "sales report failed")
	}
	return c.JSON(http.StatusOK, rep)
}
