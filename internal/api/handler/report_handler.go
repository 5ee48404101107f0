package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prospectius/crm-backend/internal/core/ports"
)

// ReportHandler exposes the read-only reporting aggregates.
type ReportHandler struct {
	service ports.ReportingService
}

func NewReportHandler(service ports.ReportingService) *ReportHandler {
	return &ReportHandler{service: service}
}

// StatusDistribution returns the prospect count per pipeline status.
//
// @Summary      Prospect status distribution
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.StatusCount
// @Router       /v1/reports/status-distribution [get]
func (h *ReportHandler) StatusDistribution(c echo.Context) error {
	counts, err := h.service.StatusDistribution(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, counts)
}

// ConversionRate returns the global conversion aggregate.
//
// @Summary      Global conversion rate
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.ConversionReport
// @Router       /v1/reports/conversion-rate [get]
func (h *ReportHandler) ConversionRate(c echo.Context) error {
	report, err := h.service.ConversionRate(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// UserPerformance returns per-account conversion figures, best rate first.
//
// @Summary      Per-account conversion performance
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.UserPerformance
// @Router       /v1/reports/user-performance [get]
func (h *ReportHandler) UserPerformance(c echo.Context) error {
	rows, err := h.service.UserPerformance(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

// CreatedByMonth returns prospect creation counts per calendar month.
//
// @Summary      Prospects created per month
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.MonthlyCreation
// @Router       /v1/reports/created-by-month [get]
func (h *ReportHandler) CreatedByMonth(c echo.Context) error {
	rows, err := h.service.CreatedByMonth(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}
