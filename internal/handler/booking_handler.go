package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"roomnest/internal/auth"
	"roomnest/internal/errors"
	"roomnest/internal/service"
)

// BookingHandler handles booking endpoints.
type BookingHandler struct {
	bookingService service.BookingService
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBookingRequest represents a booking request.
type CreateBookingRequest struct {
	RoomID string `json:"room_id" validate:"required,uuid"`
	Months int    `json:"months" validate:"omitempty,min=1,max=24"`
	Guests int    `json:"guests" validate:"omitempty,min=1"`
}

// CreateBooking godoc
// @Summary Book a room
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBookingRequest true "Booking data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	identity := auth.IdentityFrom(c)

	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}

	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid room_id",
			Code:  "INVALID_UUID",
		})
	}

	booking, err := h.bookingService.CreateBooking(c.Request().Context(), identity.ID, identity.Role, roomID, req.Months, req.Guests)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "room booked successfully",
		"booking": booking,
	})
}

// ListMyBookings godoc
// @Summary List the caller's bookings with room snapshots
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.RentedRoom
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /bookings/mine [get]
func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	identity := auth.IdentityFrom(c)

	rented, err := h.bookingService.ListBookingsForStudent(c.Request().Context(), identity.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	// Zero bookings is a valid empty list, not a 404.
	return c.JSON(http.StatusOK, rented)
}

// CancelBooking godoc
// @Summary Cancel a booking within 24 hours of creation
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /bookings/{id} [delete]
func (h *BookingHandler) CancelBooking(c echo.Context) error {
	identity := auth.IdentityFrom(c)

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid booking id",
			Code:  "INVALID_UUID",
		})
	}

	if err := h.bookingService.CancelBooking(c.Request().Context(), bookingID, identity.ID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "booking canceled successfully",
	})
}

// RentalHistory godoc
// @Summary List the owner's rooms with their bookings
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {array} service.OwnedRoomHistory
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /rooms/rental-history [get]
func (h *BookingHandler) RentalHistory(c echo.Context) error {
	identity := auth.IdentityFrom(c)

	history, err := h.bookingService.RentalHistory(c.Request().Context(), identity.ID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, history)
}
