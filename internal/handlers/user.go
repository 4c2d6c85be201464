package handlers

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"scholarhub/internal/auth"
	"scholarhub/internal/middleware"
	"scholarhub/internal/store"
)

// messageError mirrors the error in "message", which is what the signup and
// signin forms display.
func messageError(w http.ResponseWriter, status int, msg string) {
	writeJSONResp(w, status, map[string]any{"error": msg, "message": msg})
}

// Signup handles POST /signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(w, r)
	if err != nil {
		messageError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	name := strings.TrimSpace(stringField(body, "name"))
	email := strings.TrimSpace(stringField(body, "email"))
	password := stringField(body, "password")

	_, err = store.Register(r.Context(), h.Accounts, name, email, password)
	switch {
	case errors.Is(err, store.ErrMissingField):
		messageError(w, http.StatusBadRequest, "Email and password are required")
		return
	case errors.Is(err, store.ErrInvalidField):
		messageError(w, http.StatusBadRequest, "Password must be at most 72 bytes")
		return
	case errors.Is(err, store.ErrDuplicateKey):
		messageError(w, http.StatusBadRequest, "User already exists")
		return
	case err != nil:
		h.Log.Error("signup failed", zap.Error(err))
		messageError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	writeJSONResp(w, http.StatusCreated, map[string]any{"message": "User registered successfully"})
}

// Signin handles POST /signin. A session token is included when JWT_SECRET
// is configured.
func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(w, r)
	if err != nil {
		messageError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	email := strings.TrimSpace(stringField(body, "email"))
	password := stringField(body, "password")

	acc, err := store.Authenticate(r.Context(), h.Accounts, email, password)
	switch {
	case errors.Is(err, store.ErrAccountNotFound):
		messageError(w, http.StatusBadRequest, "User not found")
		return
	case errors.Is(err, store.ErrInvalidPassword):
		messageError(w, http.StatusBadRequest, "Invalid password")
		return
	case err != nil:
		h.Log.Error("signin failed", zap.Error(err))
		messageError(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	resp := map[string]any{
		"message": "Login successful",
		"user":    acc.Profile(),
	}
	if len(h.JWTSecret) > 0 {
		tok, err := auth.CreateToken(h.JWTSecret, acc.Email, h.TokenTTL)
		if err != nil {
			h.Log.Error("token signing failed", zap.Error(err))
			messageError(w, http.StatusInternalServerError, "failed to create token")
			return
		}
		resp["token"] = tok
	}
	writeJSONResp(w, http.StatusOK, resp)
}

// Me handles GET /api/me (protected).
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	email, ok := r.Context().Value(middleware.EmailKey).(string)
	if !ok || email == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	acc, err := h.Accounts.FindAccountByEmail(r.Context(), email)
	if err != nil {
		h.Log.Error("account lookup failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "database error")
		return
	}
	if acc == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSONResp(w, http.StatusOK, acc.Profile())
}
