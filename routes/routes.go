package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/careslot/booking-app/controllers"
	"github.com/careslot/booking-app/middleware"
	"github.com/careslot/booking-app/models"
)

// Setup wires every route of the API surface. Handlers carry no logic
// beyond token/body extraction, the service call, and the error
// translation; role checks are declared here as capability sets.
func Setup(app *fiber.App, auth *controllers.AuthController, booking *controllers.BookingController, secret string) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "API running"})
	})

	api := app.Group("/api")

	authLimiter := limiter.New(limiter.Config{
		Max:        100,
		Expiration: time.Minute,
	})
	api.Post("/register", authLimiter, auth.Register)
	api.Post("/login", authLimiter, auth.Login)

	api.Get("/slots", booking.GetAvailableSlots)

	protected := middleware.Protected(secret)
	api.Post("/book", protected, middleware.RequireRole(models.RolePatient), booking.CreateBooking)
	api.Get("/my-bookings", protected, middleware.RequireRole(models.RolePatient), booking.GetMyBookings)
	api.Get("/all-bookings", protected, middleware.RequireRole(models.RoleAdmin), booking.GetAllBookings)
}
