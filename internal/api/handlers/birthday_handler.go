package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/isdelr/birthdaybot-be/internal/services"
	"github.com/isdelr/birthdaybot-be/internal/store"
	"github.com/isdelr/birthdaybot-be/internal/validation"
)

// DateOfBirthField is the request field carrying the birth date.
const DateOfBirthField = "dateOfBirth"

// BirthdayHandler handles HTTP requests for storing and querying birthdays.
type BirthdayHandler struct {
	service services.BirthdayServiceProvider
}

// NewBirthdayHandler creates a new BirthdayHandler.
func NewBirthdayHandler(service services.BirthdayServiceProvider) *BirthdayHandler {
	return &BirthdayHandler{service: service}
}

// Put stores the date of birth for the user named in the URL.
func (h *BirthdayHandler) Put(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	username := usernameParam(r)

	if _, err := validation.Username(username); err != nil {
		logger.Info().Str("username", username).Msg("Rejecting user name: incorrect format")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	payload, err := newRequestPayload(w, r)
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	dob, source, ok := payload.lookupField(DateOfBirthField)
	if !ok {
		err := validation.MissingField(DateOfBirthField)
		logger.Info().Err(err).Str("username", username).Msg("Rejecting request: no date of birth supplied")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	logger.Debug().Str("username", username).Str("date_of_birth", dob).Str("source", source).Msg("Date of birth supplied")

	if _, err := h.service.SaveBirthday(r.Context(), username, dob); err != nil {
		writeError(w, err, "error writing to database")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Get responds with a birthday greeting or a countdown for the user.
func (h *BirthdayHandler) Get(w http.ResponseWriter, r *http.Request) {
	greeting, err := h.service.GetGreeting(r.Context(), usernameParam(r))
	if err != nil {
		writeError(w, err, "error reading from database")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(greeting)
}

// SelfTest stores a user whose birthday is today and redirects to its greeting.
func (h *BirthdayHandler) SelfTest(w http.ResponseWriter, r *http.Request) {
	username, err := h.service.SelfTest(r.Context())
	if err != nil {
		writeError(w, err, "self test failed")
		return
	}
	http.Redirect(w, r, "/hello/"+url.PathEscape(username), http.StatusSeeOther)
}

// usernameParam returns the decoded {username} segment. chi routes on RawPath
// when it is set, so only then is the segment still escaped.
func usernameParam(r *http.Request) string {
	raw := chi.URLParam(r, "username")
	if r.URL.RawPath == "" {
		return raw
	}
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// writeError maps service errors to status codes. An unknown record is a
// 400, not a 404, to match existing clients.
func writeError(w http.ResponseWriter, err error, serverMsg string) {
	switch {
	case validation.IsClientError(err), errors.Is(err, store.ErrNotFound):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, serverMsg, http.StatusInternalServerError)
	}
}
