// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/service"
)

// authCookie is the fallback credential for browser clients; API clients
// send the token in the Authorization header instead.
const authCookie = "inkwell_token"

// Auth groups the registration, login and 2FA handlers.
type Auth struct {
	auth      *service.AuthService
	tokenTTL  time.Duration
	secureTLS bool
}

// NewAuth creates the auth handler group. secureTLS marks the auth cookie
// Secure, which production should always do.
func NewAuth(auth *service.AuthService, tokenTTL time.Duration, secureTLS bool) *Auth {
	return &Auth{auth: auth, tokenTTL: tokenTTL, secureTLS: secureTLS}
}

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Username    string `json:"username" validate:"required,min=3,max=30"`
	Password    string `json:"password" validate:"required,min=8,max=128"`
	DisplayName string `json:"display_name" validate:"max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	TOTPCode string `json:"totp_code" validate:"omitempty,len=6,numeric"`
}

// Register creates a viewer account and signs the client in.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, tok, err := h.auth.Register(req.Email, req.Username, req.Password, req.DisplayName)
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.setAuthCookie(w, tok)
	respondJSON(w, http.StatusCreated, map[string]any{"user": user, "token": tok})
}

// Login verifies credentials (and the TOTP code when enrolled) and issues
// a token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, tok, err := h.auth.Login(req.Email, req.Password, req.TOTPCode)
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.setAuthCookie(w, tok)
	respondJSON(w, http.StatusOK, map[string]any{"user": user, "token": tok})
}

// Logout clears the auth cookie. Bearer tokens simply expire.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureTLS,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the authenticated account.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	user, err := h.auth.Me(claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// TOTPSetup provisions a new TOTP secret for a staff account.
func (h *Auth) TOTPSetup(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	setup, err := h.auth.SetupTOTP(claims.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, setup)
}

type totpVerifyRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

// TOTPVerify confirms the enrollment code; the first success enables 2FA.
func (h *Auth) TOTPVerify(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	var req totpVerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.auth.VerifyTOTP(claims.UserID, req.Code); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "totp enabled"})
}

func (h *Auth) setAuthCookie(w http.ResponseWriter, tok string) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Value:    tok,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureTLS,
		SameSite: http.SameSiteLaxMode,
	})
}
