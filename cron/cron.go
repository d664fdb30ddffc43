package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/careslot/booking-app/models"
	"github.com/careslot/booking-app/utils"
)

// Start launches the reminder scheduler: every minute it looks for
// bookings whose slot starts in about an hour and mails the owner.
// Failures are logged and never fatal; the job is a no-op without SMTP
// configuration.
func Start(gdb *gorm.DB, mailer *utils.Mailer) *cron.Cron {
	c := cron.New()
	_, err := c.AddFunc("* * * * *", func() {
		sendBookingReminders(gdb, mailer)
	})
	if err != nil {
		log.Fatalf("Failed to add cron job: %v", err)
	}
	c.Start()
	log.Println("Cron scheduler started for booking reminders")
	return c
}

func sendBookingReminders(gdb *gorm.DB, mailer *utils.Mailer) {
	if !mailer.Enabled() {
		return
	}

	now := time.Now()
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	var bookings []models.Booking
	err := gdb.
		Joins("JOIN slots ON slots.id = bookings.slot_id").
		Where("slots.start_at BETWEEN ? AND ?", startWindow, endWindow).
		Preload("User").
		Preload("Slot").
		Find(&bookings).Error
	if err != nil {
		log.Printf("Error fetching bookings for reminders: %v", err)
		return
	}

	for _, booking := range bookings {
		if err := sendReminderEmail(mailer, &booking); err != nil {
			log.Printf("Failed to send reminder for booking %d: %v", booking.ID, err)
			continue
		}
		log.Printf("Sent reminder for booking %d to %s", booking.ID, booking.User.Email)
	}
}

func sendReminderEmail(mailer *utils.Mailer, booking *models.Booking) error {
	subject := "Reminder: Upcoming Appointment"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your appointment scheduled in one hour.</p>
		<ul>
			<li><strong>Start:</strong> %s</li>
			<li><strong>End:</strong> %s</li>
		</ul>
		<p>Please arrive on time.</p>
	`, booking.User.Name,
		booking.Slot.StartAt.Format("2006-01-02 15:04"),
		booking.Slot.EndAt.Format("2006-01-02 15:04"))

	return mailer.Send(booking.User.Email, subject, body)
}
