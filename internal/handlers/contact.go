package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

// SubmitContact handles POST /submit_contact. Any non-empty JSON object is
// stored as submitted.
func (h *Handler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(w, r)
	if err != nil || len(body) == 0 {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.Contacts.CreateContact(r.Context(), body); err != nil {
		h.Log.Error("contact submission failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to save contact request")
		return
	}
	writeJSONResp(w, http.StatusOK, map[string]any{"message": "Form submitted successfully!"})
}
