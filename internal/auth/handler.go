package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/espace-client/backend/internal/logging"
	"github.com/espace-client/backend/internal/models"
	"github.com/espace-client/backend/internal/store"
)

// UserStore defines the interface for user persistence. Implementations
// return store.ErrNotFound and store.ErrDuplicateEmail as appropriate.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, u *models.User) (*models.User, error)
	UpdateByEmail(ctx context.Context, email string, upd models.ProfileUpdate) (*models.User, error)
}

// Handler holds the auth and profile HTTP handlers.
type Handler struct {
	users         UserStore
	tokens        *TokenService
	log           logging.Logger
	secureCookies bool
}

func NewHandler(users UserStore, tokens *TokenService, log logging.Logger, secureCookies bool) *Handler {
	return &Handler{users: users, tokens: tokens, log: log, secureCookies: secureCookies}
}

type signupResponse struct {
	Message string       `json:"message"`
	Success bool         `json:"success"`
	NewUser *models.User `json:"newUser"`
}

type loginResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type updateResponse struct {
	Message     string       `json:"message"`
	Success     bool         `json:"success"`
	UpdatedUser *models.User `json:"updatedUser"`
}

// Signup creates a new user with a hashed password.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Nom == "" || req.Prenom == "" ||
		req.DateNaissance == "" || req.Telephone == "" || req.Adresse == "" {
		writeError(w, http.StatusBadRequest, "email, password and profile fields are required")
		return
	}

	_, err := h.users.FindByEmail(r.Context(), req.Email)
	if err == nil {
		writeError(w, http.StatusBadRequest, "This user already exists")
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		h.log.Error(r.Context(), "signup lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		h.log.Error(r.Context(), "password hash failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	created, err := h.users.Insert(r.Context(), &models.User{
		Email:         req.Email,
		Password:      hashed,
		Nom:           req.Nom,
		Prenom:        req.Prenom,
		DateNaissance: req.DateNaissance,
		Telephone:     req.Telephone,
		Adresse:       req.Adresse,
	})
	if errors.Is(err, store.ErrDuplicateEmail) {
		// lost the race with a concurrent signup for the same email
		writeError(w, http.StatusBadRequest, "This user already exists")
		return
	}
	if err != nil {
		h.log.Error(r.Context(), "signup insert failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.log.Info(r.Context(), "user created", "email", created.Email)
	writeJSON(w, http.StatusOK, signupResponse{Message: "User created!", Success: true, NewUser: created})
}

// Login verifies credentials and sets the session-token cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusBadRequest, "User does not exist in the database")
		return
	}
	if err != nil {
		h.log.Error(r.Context(), "login lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if !CheckPassword(req.Password, user.Password) {
		writeError(w, http.StatusBadRequest, "Invalid password")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		h.log.Error(r.Context(), "token issue failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.secureCookies,
		MaxAge:   int(h.tokens.TTL() / time.Second),
	})

	h.log.Info(r.Context(), "user logged in", "email", user.Email)
	writeJSON(w, http.StatusOK, loginResponse{Message: "Login Successful", Success: true})
}

// Logout clears the token cookie. Tokens are stateless, so nothing is
// revoked server-side; the cookie is simply expired.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   h.secureCookies,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, loginResponse{Message: "Logout Successful", Success: true})
}

// UpdateProfile merges the submitted fields into the account identified by
// the token claims. Empty fields keep their stored values; a new password
// is re-hashed.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token.")
		return
	}
	if claims.Email == "" {
		writeError(w, http.StatusBadRequest, "Token does not contain an email")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), claims.Email)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.log.Error(r.Context(), "profile lookup failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	var req models.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := models.ProfileUpdate{
		Nom:           orElse(req.Nom, user.Nom),
		Prenom:        orElse(req.Prenom, user.Prenom),
		DateNaissance: orElse(req.DateNaissance, user.DateNaissance),
		Telephone:     orElse(req.Telephone, user.Telephone),
		Adresse:       orElse(req.Adresse, user.Adresse),
		Password:      user.Password,
	}
	if req.Password != "" {
		hashed, err := HashPassword(req.Password)
		if err != nil {
			h.log.Error(r.Context(), "password hash failed", "err", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		upd.Password = hashed
	}

	updated, err := h.users.UpdateByEmail(r.Context(), claims.Email, upd)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		h.log.Error(r.Context(), "profile update failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	h.log.Info(r.Context(), "user updated", "email", updated.Email)
	writeJSON(w, http.StatusOK, updateResponse{Message: "User updated successfully!", Success: true, UpdatedUser: updated})
}

// Me returns the profile snapshot carried by the verified token. The
// snapshot reflects the account as it was at login, not the stored record.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid or expired token.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"id":            claims.UserID,
		"email":         claims.Email,
		"nom":           claims.Nom,
		"prenom":        claims.Prenom,
		"datenaissance": claims.DateNaissance,
		"telephone":     claims.Telephone,
		"adresse":       claims.Adresse,
	})
}

func orElse(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
