package habits

import "time"

// CompletionOutcome reports what applying a completion did to a habit.
type CompletionOutcome struct {
	// AlreadyCompletedToday is true when the habit was completed earlier
	// the same UTC day; the habit is left untouched in that case.
	AlreadyCompletedToday bool

	CompletionCount int
	Completed       bool
	Target          int
}

// ApplyCompletion applies one completion to h at the given instant and
// returns the outcome. A second completion on the same UTC day is
// suppressed. Daily habits reset their count each completion; weekly and
// monthly habits accumulate toward their target.
func ApplyCompletion(h *Habit, now time.Time) CompletionOutcome {
	now = now.UTC()
	target := h.Frequency.Target()

	if h.LastCompleted != nil && sameUTCDay(*h.LastCompleted, now) {
		return CompletionOutcome{
			AlreadyCompletedToday: true,
			CompletionCount:       h.CompletionCount,
			Completed:             h.Completed,
			Target:                target,
		}
	}

	switch h.Frequency {
	case FrequencyDaily:
		h.CompletionCount = 1
		h.Completed = true
	default:
		h.CompletionCount++
		h.Completed = h.CompletionCount >= target
	}

	h.LastCompleted = &now
	h.CompletionHistory = append(h.CompletionHistory, now)

	return CompletionOutcome{
		CompletionCount: h.CompletionCount,
		Completed:       h.Completed,
		Target:          target,
	}
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
