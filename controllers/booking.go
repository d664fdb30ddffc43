package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/careslot/booking-app/services"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{Bookings: bookings}
}

// GetAvailableSlots handles GET /api/slots?from=...&to=...
func (ctl *BookingController) GetAvailableSlots(c *fiber.Ctx) error {
	slots, err := ctl.Bookings.ListAvailableSlots(c.Query("from"), c.Query("to"))
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Message})
		}
		log.Printf("Error fetching slots: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch slots",
		})
	}
	return c.JSON(slots)
}

// CreateBooking handles POST /api/book.
func (ctl *BookingController) CreateBooking(c *fiber.Ctx) error {
	var in struct {
		SlotID uint `json:"slotId"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	userID, _ := c.Locals("userID").(uint)
	booking, err := ctl.Bookings.CreateBooking(userID, in.SlotID)
	if err != nil {
		var verr *services.ValidationError
		var cerr *services.ConflictError
		switch {
		case errors.As(err, &verr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Message})
		case errors.As(err, &cerr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fiber.Map{"code": cerr.Code, "message": cerr.Message},
			})
		default:
			log.Printf("Booking error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create booking",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// GetMyBookings handles GET /api/my-bookings.
func (ctl *BookingController) GetMyBookings(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(uint)
	bookings, err := ctl.Bookings.ListMine(userID)
	if err != nil {
		log.Printf("Error fetching my bookings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch bookings",
		})
	}
	return c.JSON(bookings)
}

// GetAllBookings handles GET /api/all-bookings.
func (ctl *BookingController) GetAllBookings(c *fiber.Ctx) error {
	bookings, err := ctl.Bookings.ListAll()
	if err != nil {
		log.Printf("Error fetching all bookings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch bookings",
		})
	}
	return c.JSON(bookings)
}
