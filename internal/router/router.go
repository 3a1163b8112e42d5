package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"roomnest/internal/auth"
	"roomnest/internal/config"
	"roomnest/internal/handler"
	"roomnest/internal/model"
	"roomnest/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	roomHandler *handler.RoomHandler,
	bookingHandler *handler.BookingHandler,
	adminHandler *handler.AdminHandler,
	contactHandler *handler.ContactHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/contact", contactHandler.SubmitMessage)
	api.GET("/rooms", roomHandler.ListRooms)
	api.GET("/rooms/:id", roomHandler.GetRoom)

	// Secured routes: echo-jwt verifies the token, Identify resolves it to a
	// stored identity and attaches it to the context.
	secured := api.Group("",
		echojwt.WithConfig(auth.GateConfig(cfg.JWTSecret)),
		auth.Identify(jwtService, userRepo),
	)

	// Booking routes. Role enforcement for creation lives in the booking
	// engine itself; the list view is for students (admins may inspect too).
	secured.POST("/bookings", bookingHandler.CreateBooking)
	secured.GET("/bookings/mine", bookingHandler.ListMyBookings,
		auth.RequireRole(model.RoleStudent, model.RoleAdmin))
	secured.DELETE("/bookings/:id", bookingHandler.CancelBooking)

	// Room routes (owner side)
	secured.POST("/rooms", roomHandler.CreateRoom, auth.RequireRole(model.RoleOwner))
	secured.POST("/rooms/upload", roomHandler.UploadRoom, auth.RequireRole(model.RoleOwner))
	secured.GET("/rooms/rental-history", bookingHandler.RentalHistory, auth.RequireRole(model.RoleOwner))
	secured.PUT("/rooms/:id", roomHandler.UpdateRoom)
	secured.DELETE("/rooms/:id", roomHandler.DeleteRoom)

	// Admin routes
	adminGroup := secured.Group("/admin", auth.RequireRole(model.RoleAdmin))
	adminGroup.GET("/students", adminHandler.ListStudents)
	adminGroup.GET("/owners", adminHandler.ListOwners)
	adminGroup.GET("/messages", adminHandler.ListMessages)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
