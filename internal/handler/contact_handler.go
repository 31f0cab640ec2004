package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/folio/backend/internal/model"
	"github.com/folio/backend/internal/repository"
	"github.com/folio/backend/internal/service"
)

// maxBodyBytes bounds the POST /api/contact body.
const maxBodyBytes = 64 << 10

// Response messages of the contact API.
const (
	msgSent           = "Message sent successfully!"
	msgDeleted        = "Contact deleted successfully"
	msgNotFound       = "Contact not found"
	msgInternal       = "Internal server error"
	msgInvalidRequest = "Invalid request body"
)

// ContactHandler handles contact form submission and the admin listing.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// Submit handles POST /api/contact.
// All four fields are required and must satisfy the form rules.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	c, err := h.contactService.Submit(r.Context(), req)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			resp := apiResponse{Success: false, Message: verr.Error()}
			if !verr.Missing {
				resp.Errors = verr.Fields
			}
			writeJSON(w, http.StatusBadRequest, resp)
		case errors.Is(err, service.ErrInvalidTimestamp):
			writeFailure(w, http.StatusBadRequest, service.MsgInvalidTimestamp)
		default:
			slog.Error("failed to save contact", "error", err)
			writeFailure(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	slog.Info("contact received", "id", c.ID)
	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: msgSent, ID: c.ID})
}

// listResponse is the JSON response for GET /api/contacts.
type listResponse struct {
	Success  bool                       `json:"success"`
	Contacts []*model.ContactSubmission `json:"contacts"`
}

// List handles GET /api/contacts.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contactService.List(r.Context())
	if err != nil {
		slog.Error("failed to list contacts", "error", err)
		writeFailure(w, http.StatusInternalServerError, msgInternal)
		return
	}

	// Return [] not null for empty lists
	if contacts == nil {
		contacts = []*model.ContactSubmission{}
	}

	writeJSON(w, http.StatusOK, listResponse{Success: true, Contacts: contacts})
}

// Delete handles DELETE /api/contacts/{id}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeFailure(w, http.StatusNotFound, msgNotFound)
		return
	}

	if err := h.contactService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeFailure(w, http.StatusNotFound, msgNotFound)
			return
		}
		slog.Error("failed to delete contact", "id", id, "error", err)
		writeFailure(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, apiResponse{Success: true, Message: msgDeleted})
}
