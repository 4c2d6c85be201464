package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"scholarhub/internal/assistant"
	"scholarhub/internal/dataset"
	"scholarhub/internal/store"
)

const maxBodyBytes = 1 << 20

// Client-facing error messages.
const (
	msgInvalidRequest      = "Invalid request data"
	msgDatabaseUnavailable = "Scholarship database not available"
)

var errInvalidBody = errors.New("invalid request body")

// Handler carries everything the endpoints need. Datasets are read-only
// after startup.
type Handler struct {
	Data      *dataset.Datasets
	Accounts  store.AccountStore
	Contacts  store.ContactStore
	Assistant *assistant.Service
	JWTSecret []byte
	TokenTTL  time.Duration
	Log       *zap.Logger
}

func writeJSONResp(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSONResp(w, status, map[string]any{"error": msg})
}

// decodeObject reads a single JSON object body. Empty bodies, malformed JSON,
// non-object values and trailing data are rejected.
func decodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errInvalidBody
		}
		return nil, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	if body == nil {
		return nil, errInvalidBody
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after JSON object", errInvalidBody)
	}
	return body, nil
}

func stringField(body map[string]any, key string) string {
	s, _ := body[key].(string)
	return s
}

// MethodNotAllowed answers requests whose method the matched route does not
// serve.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
