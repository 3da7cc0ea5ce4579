package habits

import "time"

type habitRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Frequency   string  `json:"frequency"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type habitResponse struct {
	ID                string      `json:"id"`
	Title             string      `json:"title"`
	Description       *string     `json:"description,omitempty"`
	Frequency         string      `json:"frequency"`
	Completed         bool        `json:"completed"`
	CompletionCount   int         `json:"completion_count"`
	CreatedAt         time.Time   `json:"created_at"`
	LastCompleted     *time.Time  `json:"last_completed,omitempty"`
	CompletionHistory []time.Time `json:"completion_history"`
}

func toHabitResponse(h Habit) habitResponse {
	history := h.CompletionHistory
	if history == nil {
		history = []time.Time{}
	}
	return habitResponse{
		ID:                h.ID,
		Title:             h.Title,
		Description:       h.Description,
		Frequency:         string(h.Frequency),
		Completed:         h.Completed,
		CompletionCount:   h.CompletionCount,
		CreatedAt:         h.CreatedAt,
		LastCompleted:     h.LastCompleted,
		CompletionHistory: history,
	}
}
