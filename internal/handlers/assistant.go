package handlers

import (
	"net/http"
	"strings"
)

// AskAssistant handles POST /ask_assistant. Upstream failures still answer
// 200 with a fallback reply.
func (h *Handler) AskAssistant(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	msg, ok := body["message"].(string)
	if !ok || strings.TrimSpace(msg) == "" {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	reply := h.Assistant.Ask(r.Context(), msg)
	writeJSONResp(w, http.StatusOK, map[string]any{
		"response": reply,
		"status":   "success",
	})
}
