package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/thorsignia/backend/internal/metrics"
	"github.com/thorsignia/backend/internal/model"
	"github.com/thorsignia/backend/internal/ratelimit"
	"github.com/thorsignia/backend/internal/service"
	"github.com/thorsignia/backend/internal/validate"
	apperrors "github.com/thorsignia/backend/pkg/errors"
)

// ContactHandler handles contact form submission and the development-only
// read endpoints.
type ContactHandler struct {
	contactService service.ContactService
	limiter        ratelimit.Limiter
	production     bool
}

// NewContactHandler creates a ContactHandler with the given service and
// per-client rate limiter.
func NewContactHandler(contactService service.ContactService, limiter ratelimit.Limiter, production bool) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		limiter:        limiter,
		production:     production,
	}
}

// submitResponse is the JSON body for a successful POST /api/contacts.
type submitResponse struct {
	ID            int64  `json:"id"`
	Message       string `json:"message"`
	EmailSent     bool   `json:"emailSent"`
	BackupCreated bool   `json:"backupCreated"`
}

// Submit handles POST /api/contacts.
// The rate check runs before anything else so a rejected request has no side
// effects at all.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	if !h.limiter.Allow(ip) {
		metrics.RecordRateLimited()
		slog.Warn("rate limit exceeded", "ip", ip)
		writeError(w, http.StatusTooManyRequests, "Too many requests. Please try again later.")
		return
	}

	var req validate.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := h.contactService.Submit(r.Context(), req)
	if err != nil {
		if apperrors.IsValidation(err) {
			writeError(w, http.StatusBadRequest, apperrors.MessageOf(err))
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save contact")
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		ID:            result.Contact.ID,
		Message:       "Contact saved successfully",
		EmailSent:     result.EmailSent,
		BackupCreated: result.BackupCreated,
	})
}

// List handles GET /api/contacts. Listing is a debugging aid and is refused
// in production.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.production {
		writeError(w, http.StatusForbidden, "Access restricted in production")
		return
	}

	contacts, err := h.contactService.List(r.Context())
	if err != nil {
		slog.Error("contact list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve contacts")
		return
	}

	// Return [] not null for empty lists
	if contacts == nil {
		contacts = []*model.Contact{}
	}

	writeJSON(w, http.StatusOK, contacts)
}

// Get handles GET /api/contacts/{id}. Like List, refused in production.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.production {
		writeError(w, http.StatusForbidden, "Access restricted in production")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "Contact not found")
		return
	}

	contact, err := h.contactService.GetByID(r.Context(), id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Contact not found")
			return
		}
		slog.Error("contact get failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve contact")
		return
	}

	writeJSON(w, http.StatusOK, contact)
}
