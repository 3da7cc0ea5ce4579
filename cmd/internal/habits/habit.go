package habits

import (
	"fmt"
	"strings"
	"time"
)

// Frequency is how often a habit is meant to be completed.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// ParseFrequency validates and canonicalizes a client-provided frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(strings.ToLower(strings.TrimSpace(s))) {
	case FrequencyDaily:
		return FrequencyDaily, nil
	case FrequencyWeekly:
		return FrequencyWeekly, nil
	case FrequencyMonthly:
		return FrequencyMonthly, nil
	default:
		return "", fmt.Errorf("invalid frequency %q", s)
	}
}

// Target returns the completion count at which the habit counts as done
// for its period: 1 per day, 7 per week, 30 per month.
func (f Frequency) Target() int {
	switch f {
	case FrequencyWeekly:
		return 7
	case FrequencyMonthly:
		return 30
	default:
		return 1
	}
}

// Habit is a tracked habit owned by a single user.
type Habit struct {
	ID     string
	UserID string

	Title       string
	Description *string
	Frequency   Frequency

	Completed       bool
	CompletionCount int

	CreatedAt         time.Time
	LastCompleted     *time.Time
	CompletionHistory []time.Time
}
