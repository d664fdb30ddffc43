package db

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/careslot/booking-app/models"
)

// SeedConfig controls slot generation. Exclude is an explicit list of
// start instants to skip — it is input to the seeder, never derived
// from the booking table.
type SeedConfig struct {
	Start         time.Time
	Days          int
	WorkStartHour int
	WorkEndHour   int
	SlotMinutes   int
	Exclude       []time.Time
}

// DefaultSeedConfig mirrors the deployment defaults: 30-minute slots,
// working hours 9:00-17:00 UTC.
func DefaultSeedConfig(start time.Time, days int, exclude []time.Time) SeedConfig {
	return SeedConfig{
		Start:         start,
		Days:          days,
		WorkStartHour: 9,
		WorkEndHour:   17,
		SlotMinutes:   30,
		Exclude:       exclude,
	}
}

// Seed enumerates fixed-duration slots across working hours for the
// configured number of days and bulk-inserts them. Runs out of band,
// before the API serves traffic.
func Seed(gdb *gorm.DB, cfg SeedConfig) (int, error) {
	if cfg.SlotMinutes <= 0 || cfg.WorkEndHour <= cfg.WorkStartHour {
		return 0, fmt.Errorf("seed: invalid configuration %+v", cfg)
	}

	excluded := make(map[int64]bool, len(cfg.Exclude))
	for _, t := range cfg.Exclude {
		excluded[t.UnixMilli()] = true
	}

	day := time.Date(cfg.Start.Year(), cfg.Start.Month(), cfg.Start.Day(), 0, 0, 0, 0, time.UTC)
	duration := time.Duration(cfg.SlotMinutes) * time.Minute

	var slots []models.Slot
	for d := 0; d < cfg.Days; d++ {
		open := day.AddDate(0, 0, d).Add(time.Duration(cfg.WorkStartHour) * time.Hour)
		end := day.AddDate(0, 0, d).Add(time.Duration(cfg.WorkEndHour) * time.Hour)

		for start := open; start.Before(end); start = start.Add(duration) {
			if excluded[start.UnixMilli()] {
				continue
			}
			slots = append(slots, models.Slot{StartAt: start, EndAt: start.Add(duration)})
		}
	}

	if len(slots) == 0 {
		return 0, nil
	}
	if err := gdb.CreateInBatches(&slots, 100).Error; err != nil {
		return 0, err
	}
	return len(slots), nil
}

// ParseSeedTimes parses the RFC3339 exclusion list from configuration.
func ParseSeedTimes(raw []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, fmt.Errorf("seed: bad booked time %q: %w", s, err)
		}
		out = append(out, t)
	}
	return out, nil
}
