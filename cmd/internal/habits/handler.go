package habits

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	authapi "habitd/cmd/internal/auth/api"
)

// maxBodyBytes caps habit request bodies.
const maxBodyBytes = 1 << 20

// Handler wires the habit HTTP endpoints to the habit store. Every route
// passes through the authorization gate before touching the store.
type Handler struct {
	log   *slog.Logger
	store Store
	gate  *authapi.Authenticator
}

// NewHandler constructs the habits Handler.
func NewHandler(log *slog.Logger, store Store, gate *authapi.Authenticator) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}
	if store == nil {
		return nil, errors.New("habits: nil store")
	}
	if gate == nil {
		return nil, errors.New("habits: nil authenticator")
	}
	return &Handler{log: log, store: store, gate: gate}, nil
}

// Register wires habit routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("/api/habits", h.handleCollection)
	mux.HandleFunc("/api/habits/", h.handleItem)
}

// handleCollection serves POST (create) and GET (list) on /api/habits.
func (h *Handler) handleCollection(w http.ResponseWriter, r *http.Request) {
	user, ok := h.gate.Require(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.createHabit(w, r, user.ID)
	case http.MethodGet:
		h.listHabits(w, r, user.ID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleItem serves /api/habits/{id} and /api/habits/{id}/complete.
func (h *Handler) handleItem(w http.ResponseWriter, r *http.Request) {
	user, ok := h.gate.Require(w, r)
	if !ok {
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/api/habits/")
	parts := strings.Split(rest, "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		h.serveHabit(w, r, user.ID, parts[0])
	case len(parts) == 2 && parts[0] != "" && parts[1] == "complete":
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.completeHabit(w, r, user.ID, parts[0])
	default:
		http.NotFound(w, r)
	}
}

func (h *Handler) serveHabit(w http.ResponseWriter, r *http.Request, userID, habitID string) {
	switch r.Method {
	case http.MethodGet:
		h.getHabit(w, r, userID, habitID)
	case http.MethodPut:
		h.updateHabit(w, r, userID, habitID)
	case http.MethodDelete:
		h.deleteHabit(w, r, userID, habitID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ---- operations ----

func (h *Handler) createHabit(w http.ResponseWriter, r *http.Request, userID string) {
	var req habitRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "title is required")
		return
	}
	freq, err := ParseFrequency(req.Frequency)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "frequency must be daily, weekly or monthly")
		return
	}

	_, err = h.store.Create(r.Context(), CreateHabitInput{
		UserID:      userID,
		Title:       title,
		Description: req.Description,
		Frequency:   freq,
		Now:         time.Now().UTC(),
	})
	if err != nil {
		h.log.Error("habits.create.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse{Message: "habit created successfully"})
}

func (h *Handler) listHabits(w http.ResponseWriter, r *http.Request, userID string) {
	list, err := h.store.ListByUser(r.Context(), userID)
	if err != nil {
		h.log.Error("habits.list.fail", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	out := make([]habitResponse, 0, len(list))
	for _, hb := range list {
		out = append(out, toHabitResponse(hb))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getHabit(w http.ResponseWriter, r *http.Request, userID, habitID string) {
	hb, err := h.store.GetByID(r.Context(), userID, habitID)
	if err != nil {
		h.writeStoreError(w, "habits.get.fail", err)
		return
	}
	writeJSON(w, http.StatusOK, toHabitResponse(hb))
}

func (h *Handler) updateHabit(w http.ResponseWriter, r *http.Request, userID, habitID string) {
	var req habitRequest
	if err := decodeJSON(w, r, maxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "title is required")
		return
	}
	freq, err := ParseFrequency(req.Frequency)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "frequency must be daily, weekly or monthly")
		return
	}

	err = h.store.Update(r.Context(), userID, habitID, UpdateHabitInput{
		Title:       title,
		Description: req.Description,
		Frequency:   freq,
	})
	if err != nil {
		h.writeStoreError(w, "habits.update.fail", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "habit updated successfully"})
}

func (h *Handler) deleteHabit(w http.ResponseWriter, r *http.Request, userID, habitID string) {
	if err := h.store.Delete(r.Context(), userID, habitID); err != nil {
		h.writeStoreError(w, "habits.delete.fail", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) completeHabit(w http.ResponseWriter, r *http.Request, userID, habitID string) {
	outcome, err := h.store.Complete(r.Context(), userID, habitID, time.Now().UTC())
	if err != nil {
		h.writeStoreError(w, "habits.complete.fail", err)
		return
	}

	if outcome.AlreadyCompletedToday {
		writeJSON(w, http.StatusOK, messageResponse{Message: "habit already marked as completed today"})
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("habit progress updated (%d/%d)", outcome.CompletionCount, outcome.Target),
	})
}

func (h *Handler) writeStoreError(w http.ResponseWriter, event string, err error) {
	switch {
	case errors.Is(err, ErrInvalidID):
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid habit id")
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "habit not found")
	default:
		h.log.Error(event, "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal error")
	}
}
