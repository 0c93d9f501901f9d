package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cupstats/cupstats/internal/api/respond"
	"github.com/cupstats/cupstats/internal/auth"
	"github.com/cupstats/cupstats/internal/store"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates a user and returns a signed token.
// @Summary Log in
// @Description Verifies credentials and returns a bearer token for the sync endpoints.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Username and password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} respond.ErrorResponse
// @Failure 401 {object} respond.ErrorResponse
// @Router /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		respond.WriteError(w, http.StatusBadRequest, "Username and password required")
		return
	}

	user, err := h.users.UserByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respond.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respond.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		respond.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.issuer.Issue(user.ID)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]string{"token": token})
}
