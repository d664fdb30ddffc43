package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/careslot/booking-app/cache"
	"github.com/careslot/booking-app/models"
	"github.com/careslot/booking-app/utils"
)

// BookingService owns the reservation contract: list open slots in a
// window, create a booking iff the slot is unreserved, and the
// ownership-filtered read views.
//
// The listing is a point-in-time read; nothing is locked or held. All
// serialization of the one-booking-per-slot invariant happens in the
// database via the unique index on bookings.slot_id.
type BookingService struct {
	db     *gorm.DB
	cache  *cache.SlotCache
	mailer *utils.Mailer
}

func NewBookingService(gdb *gorm.DB, slotCache *cache.SlotCache, mailer *utils.Mailer) *BookingService {
	return &BookingService{db: gdb, cache: slotCache, mailer: mailer}
}

// ListAvailableSlots returns every slot starting in [from, to] that has
// no booking, ordered by start time. A slot returned here may still be
// booked by someone else before the caller acts; the write path
// resolves that.
func (s *BookingService) ListAvailableSlots(fromStr, toStr string) ([]models.Slot, error) {
	from, errFrom := parseDate(fromStr)
	to, errTo := parseDate(toStr)
	if errFrom != nil || errTo != nil {
		return nil, &ValidationError{Message: "Invalid date range"}
	}

	if slots, ok := s.cache.Get(from, to); ok {
		return slots, nil
	}

	var slots []models.Slot
	err := s.db.
		Where("start_at BETWEEN ? AND ?", from, to).
		Where("id NOT IN (?)", s.db.Model(&models.Booking{}).Select("slot_id")).
		Order("start_at").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}

	s.cache.Set(from, to, slots)
	return slots, nil
}

// CreateBooking attempts one unconditional insert; the store's
// constraints are the sole arbiter of the race. A duplicate-key
// violation means another booking for this slot committed first, a
// foreign-key violation means the slot id does not exist — both come
// back as the same SLOT_TAKEN conflict.
func (s *BookingService) CreateBooking(userID, slotID uint) (*models.Booking, error) {
	if slotID == 0 {
		return nil, &ValidationError{Message: "slotId is required"}
	}

	booking := &models.Booking{UserID: userID, SlotID: slotID}
	if err := s.db.Create(booking).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, &ConflictError{Code: CodeSlotTaken, Message: "Slot already booked or invalid"}
		}
		return nil, err
	}

	s.cache.Invalidate()
	if s.mailer.Enabled() {
		go s.sendConfirmation(booking.ID)
	}
	return booking, nil
}

// ListMine returns every booking owned by userID, joined with its slot.
func (s *BookingService) ListMine(userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Slot").Where("user_id = ?", userID).Find(&bookings).Error
	return bookings, err
}

// ListAll returns every booking in the system joined with slot and
// owner. Privileged; the API surface gates it to admins.
func (s *BookingService) ListAll() ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.Preload("Slot").Preload("User").Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) sendConfirmation(bookingID uint) {
	var booking models.Booking
	if err := s.db.Preload("Slot").Preload("User").First(&booking, bookingID).Error; err != nil {
		log.Printf("confirmation mail: failed to load booking %d: %v", bookingID, err)
		return
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment is confirmed.</p>
		<ul>
			<li><strong>Start:</strong> %s</li>
			<li><strong>End:</strong> %s</li>
		</ul>
	`, booking.User.Name,
		booking.Slot.StartAt.Format("2006-01-02 15:04"),
		booking.Slot.EndAt.Format("2006-01-02 15:04"))

	if err := s.mailer.Send(booking.User.Email, "Appointment confirmed", body); err != nil {
		log.Printf("confirmation mail for booking %d failed: %v", bookingID, err)
	}
}

// parseDate accepts full RFC3339 instants and bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
