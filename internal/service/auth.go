// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"inkwell/internal/apperr"
	"inkwell/internal/models"
	"inkwell/internal/store"
	"inkwell/internal/token"
)

// totpIssuerName labels the TOTP entry in authenticator apps.
const totpIssuerName = "Inkwell"

// AuthService handles registration, login and optional staff TOTP 2FA.
type AuthService struct {
	users  *store.UserStore
	tokens *token.Issuer
}

// NewAuthService wires an AuthService.
func NewAuthService(users *store.UserStore, tokens *token.Issuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a viewer account and returns it with a signed token.
func (s *AuthService) Register(email, username, password, displayName string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.ToLower(strings.TrimSpace(username))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", apperr.Validation("a valid email is required")
	}
	if !usernamePattern.MatchString(username) {
		return nil, "", apperr.Validation("username must be 3-30 characters of a-z, 0-9 or _")
	}
	if len(password) < 8 {
		return nil, "", apperr.Validation("password must be at least 8 characters")
	}
	if strings.TrimSpace(displayName) == "" {
		displayName = username
	}

	user, err := s.users.Create(email, username, password, displayName, models.RoleViewer)
	if errors.Is(err, store.ErrDuplicate) {
		return nil, "", apperr.Conflict("email or username is already registered")
	}
	if err != nil {
		return nil, "", err
	}

	tok, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

// Login verifies credentials and returns the user with a signed token.
// Accounts with TOTP enabled must also supply a valid code.
func (s *AuthService) Login(email, password, totpCode string) (*models.User, string, error) {
	user, err := s.users.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", err
	}
	if user == nil || !s.users.CheckPassword(user, password) {
		return nil, "", apperr.Authorization("invalid email or password")
	}

	if user.TOTPEnabled {
		if user.TOTPSecret == nil || !totp.Validate(totpCode, *user.TOTPSecret) {
			return nil, "", apperr.Authorization("a valid two-factor code is required")
		}
	}

	tok, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

// Me fetches the authenticated user's own record.
func (s *AuthService) Me(userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	return user, nil
}

// TOTPSetup holds the provisioning material returned to the client once.
type TOTPSetup struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
	QRPNG  []byte `json:"qr_png"`
}

// SetupTOTP generates and stores a new TOTP secret for a staff account and
// returns the provisioning QR. The secret stays disabled until verified.
func (s *AuthService) SetupTOTP(userID uuid.UUID) (*TOTPSetup, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("user not found")
	}
	if !user.IsStaff() {
		return nil, apperr.Authorization("two-factor auth is available to staff accounts")
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuerName,
		AccountName: user.Email,
	})
	if err != nil {
		return nil, err
	}
	if err := s.users.SetTOTPSecret(userID, key.Secret()); err != nil {
		return nil, err
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		return nil, err
	}
	return &TOTPSetup{Secret: key.Secret(), URL: key.URL(), QRPNG: qrPNG}, nil
}

// VerifyTOTP validates a code against the stored secret, enabling 2FA on
// first success.
func (s *AuthService) VerifyTOTP(userID uuid.UUID, code string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("user not found")
	}
	if user.TOTPSecret == nil {
		return apperr.Validation("two-factor auth has not been set up")
	}
	if !totp.Validate(code, *user.TOTPSecret) {
		return apperr.Authorization("invalid two-factor code")
	}
	if !user.TOTPEnabled {
		return s.users.EnableTOTP(userID)
	}
	return nil
}
