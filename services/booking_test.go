package services_test

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/careslot/booking-app/models"
	"github.com/careslot/booking-app/services"
)

func newBookingService(gdb *gorm.DB) *services.BookingService {
	// no cache, no mailer: both are optional
	return services.NewBookingService(gdb, nil, nil)
}

func seedSlots(t *testing.T, gdb *gorm.DB, start time.Time, n int) []models.Slot {
	t.Helper()
	slots := make([]models.Slot, n)
	for i := range slots {
		at := start.Add(time.Duration(i) * 30 * time.Minute)
		slots[i] = models.Slot{StartAt: at, EndAt: at.Add(30 * time.Minute)}
	}
	if err := gdb.Create(&slots).Error; err != nil {
		t.Fatalf("seed slots: %v", err)
	}
	return slots
}

func registerPatient(t *testing.T, gdb *gorm.DB) *models.User {
	t.Helper()
	auth := services.NewAuthService(gdb, testSecret)
	user, err := auth.Register(services.RegisterInput{Name: "P", Email: freshEmail(), Password: "pw123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return user
}

func TestListAvailableSlots(t *testing.T) {
	gdb := testDB(t)
	svc := newBookingService(gdb)

	start := time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC)
	slots := seedSlots(t, gdb, start, 10)
	// a slot outside the window
	seedSlots(t, gdb, start.AddDate(0, 0, 2), 1)

	from, to := "2025-08-10", "2025-08-11"

	got, err := svc.ListAvailableSlots(from, to)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("expected 10 slots in window, got %d", len(got))
	}

	// idempotent with no intervening bookings
	again, err := svc.ListAvailableSlots(from, to)
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	if len(again) != len(got) {
		t.Fatalf("listing not stable: %d then %d", len(got), len(again))
	}
	for i := range got {
		if got[i].ID != again[i].ID {
			t.Fatalf("listing order changed at %d", i)
		}
	}

	// exclusion law: a booked slot disappears, all others stay
	user := registerPatient(t, gdb)
	if _, err := svc.CreateBooking(user.ID, slots[3].ID); err != nil {
		t.Fatalf("book: %v", err)
	}
	after, err := svc.ListAvailableSlots(from, to)
	if err != nil {
		t.Fatalf("list after booking: %v", err)
	}
	if len(after) != 9 {
		t.Fatalf("expected 9 slots after booking, got %d", len(after))
	}
	for _, s := range after {
		if s.ID == slots[3].ID {
			t.Fatal("booked slot still listed as available")
		}
	}
}

func TestListAvailableSlotsInvalidRange(t *testing.T) {
	svc := newBookingService(testDB(t))

	for _, tc := range [][2]string{
		{"bad", "bad"},
		{"", ""},
		{"2025-08-10", "not-a-date"},
	} {
		_, err := svc.ListAvailableSlots(tc[0], tc[1])
		var verr *services.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("from=%q to=%q: expected ValidationError, got %v", tc[0], tc[1], err)
		}
	}
}

func TestCreateBooking(t *testing.T) {
	gdb := testDB(t)
	svc := newBookingService(gdb)
	user := registerPatient(t, gdb)
	slots := seedSlots(t, gdb, time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC), 2)

	booking, err := svc.CreateBooking(user.ID, slots[0].ID)
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if booking.ID == 0 || booking.SlotID != slots[0].ID || booking.UserID != user.ID {
		t.Fatalf("unexpected booking %+v", booking)
	}

	// missing slot id
	_, err = svc.CreateBooking(user.ID, 0)
	var verr *services.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for missing slotId, got %v", err)
	}

	// nonexistent slot id reports the same conflict code as a race loss
	_, err = svc.CreateBooking(user.ID, 99999)
	var cerr *services.ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConflictError for unknown slot, got %v", err)
	}
	if cerr.Code != services.CodeSlotTaken {
		t.Errorf("expected code %s, got %s", services.CodeSlotTaken, cerr.Code)
	}
}

func TestCreateBookingRace(t *testing.T) {
	gdb := testDB(t)
	svc := newBookingService(gdb)
	slots := seedSlots(t, gdb, time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC), 1)

	const n = 8
	users := make([]*models.User, n)
	for i := range users {
		users[i] = registerPatient(t, gdb)
	}

	var wg sync.WaitGroup
	results := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.CreateBooking(users[i].ID, slots[0].ID)
		}(i)
	}
	wg.Wait()

	winners, losers := 0, 0
	var winner int
	for i, err := range results {
		switch {
		case err == nil:
			winners++
			winner = i
		default:
			var cerr *services.ConflictError
			if !errors.As(err, &cerr) || cerr.Code != services.CodeSlotTaken {
				t.Fatalf("user %d: expected SLOT_TAKEN conflict, got %v", i, err)
			}
			losers++
		}
	}
	if winners != 1 || losers != n-1 {
		t.Fatalf("expected exactly 1 winner and %d losers, got %d/%d", n-1, winners, losers)
	}

	// winner sees the slot in their bookings, losers do not
	for i, u := range users {
		mine, err := svc.ListMine(u.ID)
		if err != nil {
			t.Fatalf("listMine: %v", err)
		}
		if i == winner {
			if len(mine) != 1 || mine[0].SlotID != slots[0].ID {
				t.Fatalf("winner's bookings wrong: %+v", mine)
			}
		} else if len(mine) != 0 {
			t.Fatalf("loser %d holds a booking: %+v", i, mine)
		}
	}
}

func TestListMineAndListAll(t *testing.T) {
	gdb := testDB(t)
	svc := newBookingService(gdb)
	alice := registerPatient(t, gdb)
	bob := registerPatient(t, gdb)
	slots := seedSlots(t, gdb, time.Date(2025, 8, 10, 9, 0, 0, 0, time.UTC), 3)

	if _, err := svc.CreateBooking(alice.ID, slots[0].ID); err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := svc.CreateBooking(bob.ID, slots[1].ID); err != nil {
		t.Fatalf("book: %v", err)
	}

	mine, err := svc.ListMine(alice.ID)
	if err != nil {
		t.Fatalf("listMine: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 booking for alice, got %d", len(mine))
	}
	if mine[0].Slot == nil || mine[0].Slot.ID != slots[0].ID {
		t.Fatalf("booking not joined with its slot: %+v", mine[0])
	}

	all, err := svc.ListAll()
	if err != nil {
		t.Fatalf("listAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 bookings total, got %d", len(all))
	}
	for _, b := range all {
		if b.Slot == nil || b.User == nil {
			t.Fatalf("booking not joined with slot and user: %+v", b)
		}
	}

	// the serialized form must never carry the secret hash
	raw, err := json.Marshal(all)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "PasswordHash") || strings.Contains(string(raw), "passwordHash") {
		t.Fatal("password hash leaked through ListAll serialization")
	}
}
