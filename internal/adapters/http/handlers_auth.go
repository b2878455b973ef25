package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decodeObjectBody(r, &body); err != nil {
		writeValidationError(r.Context(), w, "signup", err)
		return
	}

	user, err := h.service.Signup(r.Context(), body)
	if err != nil {
		writeMappedError(r.Context(), w, "signup", err)
		return
	}
	writeJSON(w, http.StatusCreated, user.WithMeta())
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := decodeObjectBody(r, &body); err != nil {
		writeValidationError(r.Context(), w, "login", err)
		return
	}

	result, err := h.service.Login(r.Context(), body)
	if err != nil {
		writeMappedError(r.Context(), w, "login", err)
		return
	}
	if !result.Authenticated {
		// Deliberately a 200: the failure message is a normal response, and
		// both bad-password and unknown-email land here with the same shape.
		writeMessage(w, http.StatusOK, result.Message)
		return
	}

	if err := h.setSessionCookie(w, result.SessionID); err != nil {
		writeMappedError(r.Context(), w, "login", err)
		return
	}
	writeJSON(w, http.StatusOK, result.User)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	authKey := chi.URLParam(r, "auth_key")

	result, err := h.service.VerifyAuth(r.Context(), authKey)
	if err != nil {
		writeMappedError(r.Context(), w, "verify", err)
		return
	}
	if !result.Authorized {
		writeMessage(w, http.StatusOK, result.Message)
		return
	}
	writeJSON(w, http.StatusOK, result.Record)
}

type logoutRequest struct {
	AuthKey string `json:"auth_key"`
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	var req logoutRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "logout", err)
		return
	}

	if err := h.service.Logout(r.Context(), req.AuthKey); err != nil {
		writeMappedError(r.Context(), w, "logout", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, sessionID string) error {
	value, err := h.codec.Sign(sessionID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(h.cookie.TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
