package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthenticated is returned when no bearer credential is presented.
	ErrUnauthenticated = errors.New("access denied, no token provided")
	// ErrInvalidCredential is returned when the bearer token fails signature or expiry checks.
	ErrInvalidCredential = errors.New("invalid or expired token")
	// ErrIdentityNotFound is returned when a valid token references a deleted identity.
	ErrIdentityNotFound = errors.New("user not found")
	// ErrForbidden is returned on a role or ownership mismatch.
	ErrForbidden = errors.New("forbidden")
	// ErrRoomNotFound is returned when a referenced room does not exist.
	ErrRoomNotFound = errors.New("room not found")
	// ErrBookingNotFound is returned when a referenced booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrBookingConflict is returned when the requested window overlaps an existing booking.
	ErrBookingConflict = errors.New("room is already booked during this period")
	// ErrCancellationWindowExpired is returned when a cancellation arrives more than
	// 24 hours after the booking was created.
	ErrCancellationWindowExpired = errors.New("cancellation period expired")
	// ErrUserAlreadyExists is returned when registering with a taken email.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors collapse to
// a generic internal error so store failures never leak to the caller.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrInvalidCredential):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIAL")
	case errors.Is(err, ErrIdentityNotFound):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "IDENTITY_NOT_FOUND")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrRoomNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "ROOM_NOT_FOUND")
	case errors.Is(err, ErrBookingNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "BOOKING_NOT_FOUND")
	case errors.Is(err, ErrBookingConflict):
		return NewHTTPError(http.StatusConflict, err.Error(), "BOOKING_CONFLICT")
	case errors.Is(err, ErrCancellationWindowExpired):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "CANCELLATION_WINDOW_EXPIRED")
	case errors.Is(err, ErrUserAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
