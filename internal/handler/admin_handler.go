package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"roomnest/internal/errors"
	"roomnest/internal/service"
)

// AdminHandler handles admin reporting endpoints. Role enforcement happens in
// the router middleware.
type AdminHandler struct {
	adminService service.AdminService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// ListStudents godoc
// @Summary List students with booking counts and last booking date
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.StudentReport
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/students [get]
func (h *AdminHandler) ListStudents(c echo.Context) error {
	reports, err := h.adminService.StudentReports(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, reports)
}

// ListOwners godoc
// @Summary List listings with owner contact and earnings
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.OwnerReport
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/owners [get]
func (h *AdminHandler) ListOwners(c echo.Context) error {
	reports, err := h.adminService.OwnerReports(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, reports)
}

// ListMessages godoc
// @Summary List contact messages
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.ContactMessage
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/messages [get]
func (h *AdminHandler) ListMessages(c echo.Context) error {
	messages, err := h.adminService.Messages(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, messages)
}
