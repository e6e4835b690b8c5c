package normalize

import (
	"fmt"
	"time"
)

// Config carries the literals the normalizer treats as configuration rather
// than business logic: the reserved holiday schedule, the time-off category
// marker, and the epoch before which history is dropped.
type Config struct {
	// HolidaySchedule is the reserved schedule name for company-wide
	// holidays; its rows never enter the timeline.
	HolidaySchedule string `json:"holiday_schedule"`
	// TimeOffMarker flags time-off/workload schedules. Matching is a
	// case-sensitive substring test on the schedule name.
	TimeOffMarker string `json:"time_off_marker"`
	// EpochCutoff is an ISO date; phases ending before it are discarded.
	EpochCutoff string `json:"epoch_cutoff"`
}

// SetDefaults applies the repository-fixed defaults.
func (c *Config) SetDefaults() {
	if c.HolidaySchedule == "" {
		c.HolidaySchedule = "Company Holidays"
	}
	if c.TimeOffMarker == "" {
		c.TimeOffMarker = "FTO & Workload"
	}
	if c.EpochCutoff == "" {
		c.EpochCutoff = "2025-07-01"
	}
}

// Validate checks that the epoch cutoff parses.
func (c Config) Validate() error {
	if _, err := time.Parse("2006-01-02", c.EpochCutoff); err != nil {
		return fmt.Errorf("epoch_cutoff: %w", err)
	}
	return nil
}

// Epoch returns the parsed epoch cutoff. Validate must have accepted the
// config; an unparseable value falls back to the zero time, which disables
// the filter.
func (c Config) Epoch() time.Time {
	t, err := time.Parse("2006-01-02", c.EpochCutoff)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
