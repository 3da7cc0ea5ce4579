package habits

import (
	"context"
	"errors"
	"time"
)

// Stable sentinel errors for callers.
var (
	// ErrNotFound covers both a missing habit and a habit owned by a
	// different user; the API deliberately does not distinguish them.
	ErrNotFound = errors.New("habit not found")

	// ErrInvalidID reports a habit id that is not a valid store identifier.
	ErrInvalidID = errors.New("invalid habit id")
)

// CreateHabitInput describes a new habit.
type CreateHabitInput struct {
	UserID      string
	Title       string
	Description *string
	Frequency   Frequency
	Now         time.Time
}

// UpdateHabitInput carries the mutable habit fields.
type UpdateHabitInput struct {
	Title       string
	Description *string
	Frequency   Frequency
}

// Store is the habit persistence boundary. Every operation that touches
// an existing habit filters by owner, so a caller can never read or
// mutate another user's records.
type Store interface {
	Create(ctx context.Context, in CreateHabitInput) (Habit, error)
	GetByID(ctx context.Context, userID, habitID string) (Habit, error)
	ListByUser(ctx context.Context, userID string) ([]Habit, error)
	Update(ctx context.Context, userID, habitID string, in UpdateHabitInput) error
	Delete(ctx context.Context, userID, habitID string) error

	// Complete applies one completion (see ApplyCompletion) and persists
	// the result.
	Complete(ctx context.Context, userID, habitID string, now time.Time) (CompletionOutcome, error)
}
