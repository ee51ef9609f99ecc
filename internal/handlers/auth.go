package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"harborcms/internal/middleware"
	"harborcms/internal/models"
	"harborcms/internal/session"
	"harborcms/internal/store"
)

// Auth groups the authentication handlers: login, logout, registration,
// and TOTP-based 2FA setup and verification.
type Auth struct {
	sessions *session.Store
	users    *store.UserStore
	issuer   string
}

// NewAuth creates a new Auth handler group. The issuer names this site in
// authenticator apps.
func NewAuth(sessions *session.Store, users *store.UserStore, issuer string) *Auth {
	return &Auth{
		sessions: sessions,
		users:    users,
		issuer:   issuer,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Code     string `json:"code"`
}

// Login handles POST /api/auth/login. Users with 2FA enabled must supply a
// valid TOTP code alongside their credentials.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := a.users.FindByEmail(strings.TrimSpace(req.Email))
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		respondError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if user.TOTPEnabled {
		if user.TOTPSecret == nil || !totp.Validate(req.Code, *user.TOTPSecret) {
			respondError(w, http.StatusUnauthorized, "invalid authentication code")
			return
		}
	}

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
		TwoFADone:   user.TOTPEnabled,
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"email":       user.Email,
		"displayName": user.DisplayName,
		"role":        user.Role,
	})
}

// Logout handles POST /api/auth/logout, destroying the session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
}

// Register handles POST /api/auth/register, creating a member account.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, "email and a password of at least 8 characters are required")
		return
	}
	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		name = email
	}

	user, err := a.users.Create(email, req.Password, name, models.RoleMember)
	if storeError(w, err) {
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"email":       user.Email,
		"displayName": user.DisplayName,
	})
}

// Me handles GET /api/auth/me, returning the current session identity.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"email":       sess.Email,
		"displayName": sess.DisplayName,
		"role":        sess.Role,
		"twoFaDone":   sess.TwoFADone,
	})
}

// TwoFASetup handles POST /api/auth/2fa/setup. It generates a fresh TOTP
// secret for the authenticated user and returns it with a QR code PNG for
// authenticator apps. The secret only becomes active after TwoFAVerify.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      a.issuer,
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := a.users.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"secret": key.Secret(),
		"qrcode": base64.StdEncoding.EncodeToString(qrPNG),
	})
}

type verifyRequest struct {
	Code string `json:"code"`
}

// TwoFAVerify handles POST /api/auth/2fa/verify, validating the TOTP code
// and activating 2FA for the user.
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req verifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := a.users.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user.TOTPSecret == nil {
		respondError(w, http.StatusBadRequest, "2fa setup has not been started")
		return
	}

	if !totp.Validate(req.Code, *user.TOTPSecret) {
		respondError(w, http.StatusUnauthorized, "invalid authentication code")
		return
	}

	if !user.TOTPEnabled {
		if err := a.users.EnableTOTP(user.ID); err != nil {
			slog.Error("enable totp failed", "error", err)
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}
