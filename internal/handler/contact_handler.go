package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ahhmedWalid1/anas-haloul-website/internal/model"
	"github.com/ahhmedWalid1/anas-haloul-website/internal/service"
)

const (
	msgContactSent     = "تم إرسال رسالتك بنجاح! سنتواصل معك قريبًا."
	msgContactRequired = "جميع الحقول مطلوبة"
	msgContactFailed   = "حدث خطأ في إرسال الرسالة. يرجى المحاولة مرة أخرى."
	msgContactsLoad    = "خطأ في تحميل الرسائل"
)

// ContactHandler handles contact form submission and admin listing.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a ContactHandler with the given service.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// submitRequest is the expected JSON body for POST /api/contact.
type submitRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// submitResponse is the JSON body of every POST /api/contact response.
type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Submit handles POST /api/contact.
// name, phone and message are required; the body is capped at maxJSONBody.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, submitResponse{Message: msgContactRequired})
		return
	}

	msg := &model.ContactMessage{
		Name:    req.Name,
		Phone:   req.Phone,
		Message: req.Message,
	}

	err := h.contactService.Submit(r.Context(), msg)
	if errors.Is(err, service.ErrValidation) {
		writeJSON(w, http.StatusBadRequest, submitResponse{Message: msgContactRequired})
		return
	}
	if err != nil {
		slog.Error("contact submit failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, submitResponse{Message: msgContactFailed})
		return
	}

	slog.Info("contact message stored", "contact_id", msg.ID)
	writeJSON(w, http.StatusOK, submitResponse{Success: true, Message: msgContactSent})
}

// AdminList handles GET /api/contacts (admin only).
func (h *ContactHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contactService.List(r.Context())
	if err != nil {
		slog.Error("list contacts failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, msgContactsLoad)
		return
	}

	// Return [] not null for empty lists
	if messages == nil {
		messages = []*model.ContactMessage{}
	}
	writeJSON(w, http.StatusOK, messages)
}
