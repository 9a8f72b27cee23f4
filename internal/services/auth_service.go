package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopwise/backend/internal/account"
	"github.com/shopwise/backend/internal/config"
	"github.com/shopwise/backend/internal/mailer"
	"github.com/shopwise/backend/internal/metrics"
	"github.com/shopwise/backend/internal/models"
)

// SignUpRequest represents the registration request payload
// @Description Registration request structure
type SignUpRequest struct {
	Email           string `json:"email" validate:"required,email" example:"alice@example.com"`               // User email address
	Name            string `json:"name" validate:"required,min=2" example:"Alice"`                            // Display name
	PhoneNumber     string `json:"phoneNumber" validate:"required,phone" example:"+2348012345678"`            // Phone number receiving OTPs
	Image           string `json:"image,omitempty" example:"img.jpg"`                                         // Profile image
	Password        string `json:"password" validate:"required,min=8" example:"Passw0rd!"`                    // User password
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password" example:"Passw0rd!"` // Must equal password
}

// LoginRequest represents the login request payload
// @Description Login request structure
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required" example:"Passw0rd!"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email" example:"alice@example.com"`
}

type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8" example:"N3wPassw0rd!"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password" example:"N3wPassw0rd!"`
}

type OTPRequest struct {
	OTP string `json:"OTP" validate:"required,numeric,min=4,max=10" example:"123456"`
}

// UpdateMeRequest carries profile changes. Password fields are accepted only
// so they can be rejected with a useful message.
type UpdateMeRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=2"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	PhoneNumber     *string `json:"phoneNumber,omitempty" validate:"omitempty,phone"`
	Password        string  `json:"password,omitempty" swaggerignore:"true"`
	PasswordConfirm string  `json:"passwordConfirm,omitempty" swaggerignore:"true"`
}

type DeleteMeRequest struct {
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required"`
}

type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// Session is an issued session credential.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

type LoginStatus string

const (
	StatusActive              LoginStatus = "active"
	StatusPendingConfirmation LoginStatus = "pending_confirmation"
	StatusOTPSent             LoginStatus = "otp_sent"
	StatusCooldown            LoginStatus = "cooldown"
)

// LoginResult is returned by operations that may end in an OTP challenge.
// Session may be set even when an error is returned alongside it.
type LoginResult struct {
	Session
	User            *models.User
	Status          LoginStatus
	ChallengeHandle string
	CooldownMinutes int
}

type AuthService struct {
	writer    *accountWriter
	tokens    *TokenIssuer
	otp       *OTPService
	sessions  *SessionManager
	mailer    mailer.Mailer
	validator *ValidationHelper
	config    *config.AuthConfig
}

func NewAuthService(users UserStore, otpService *OTPService, sessions *SessionManager, mail mailer.Mailer, auditLog AuditLogger, cfg *config.AuthConfig) *AuthService {
	return &AuthService{
		writer:    &accountWriter{users: users, audit: auditLog, now: time.Now},
		tokens:    NewTokenIssuer(users, cfg.TokenTTL),
		otp:       otpService,
		sessions:  sessions,
		mailer:    mail,
		validator: NewValidationHelper(),
		config:    cfg,
	}
}

func (s *AuthService) setClock(now func() time.Time) {
	s.writer.now = now
	s.tokens.now = now
	s.otp.writer.now = now
	s.sessions.now = now
}

func (s *AuthService) issueSession(user *models.User) (Session, error) {
	token, expiresAt, err := s.sessions.Issue(user.ID)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, ExpiresAt: expiresAt}, nil
}

// SignUp creates an unconfirmed account and logs it in.
func (s *AuthService) SignUp(ctx context.Context, req SignUpRequest) (*models.User, Session, error) {
	if err := s.validator.Validate(&req); err != nil {
		return nil, Session{}, err
	}

	phone, err := s.validator.NormalizePhone(req.PhoneNumber)
	if err != nil {
		return nil, Session{}, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         req.Name,
		PhoneNumber:  phone,
		Image:        req.Image,
		PasswordHash: hash,
	}
	if err := s.writer.users.Create(ctx, user); err != nil {
		metrics.RecordAuth("signup", err)
		return nil, Session{}, err
	}

	session, err := s.issueSession(user)
	if err != nil {
		return nil, Session{}, err
	}

	log.Printf("[AUTH] User created successfully - ID: %s, Email: %s", user.ID, user.Email)
	s.writer.audit.LogAuth("SIGNUP", user.ID.String(), "SUCCESS", nil)
	metrics.RecordAuth("signup", nil)
	return user, session, nil
}

// Login checks the password and decides between full access, pending
// confirmation and a second-factor challenge.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	result, err := s.login(ctx, req)
	metrics.RecordAuth("login", err)
	return result, err
}

func (s *AuthService) login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	now := s.writer.now()
	user, err := s.writer.users.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	if user != nil && user.DeletionDue(now) {
		if err := s.writer.users.Delete(ctx, user.ID); err != nil {
			return nil, err
		}
		log.Printf("[AUTH] Account %s removed after its deletion deadline", user.ID)
		s.writer.audit.LogAuth("ACCOUNT_DELETED", user.ID.String(), "SUCCESS", map[string]string{"reason": "deletion deadline passed"})
		return nil, models.ErrInvalidCredentials
	}

	if user == nil {
		verifyPassword(req.Password, dummyHash())
	}
	if user == nil || !verifyPassword(req.Password, user.PasswordHash) {
		log.Printf("[AUTH] Login failed for email: %s", req.Email)
		if user != nil {
			s.writer.audit.LogAuth("LOGIN", user.ID.String(), "FAILURE", map[string]string{"reason": "password mismatch"})
		}
		return nil, models.ErrInvalidCredentials
	}

	if user.PasswordSame {
		return nil, models.ErrPasswordResetRequired
	}

	if user.PendingDeletion {
		if err := s.writer.apply(ctx, user, account.LoginSucceeded{}); err != nil {
			return nil, err
		}
		log.Printf("[AUTH] Scheduled deletion cancelled for user %s", user.ID)
	}

	session, err := s.issueSession(user)
	if err != nil {
		return nil, err
	}
	s.writer.audit.LogAuth("LOGIN", user.ID.String(), "SUCCESS", nil)

	result := &LoginResult{Session: session, User: user}
	if user.SecondFactorPending() {
		return s.challenge(ctx, user, result)
	}

	result.Status = StatusActive
	if !user.Active {
		result.Status = StatusPendingConfirmation
	}
	return result, nil
}

// challenge reports the remaining cooldown, or sends a fresh OTP.
func (s *AuthService) challenge(ctx context.Context, user *models.User, result *LoginResult) (*LoginResult, error) {
	if remaining := user.CooldownRemaining(s.writer.now()); remaining > 0 {
		result.Status = StatusCooldown
		result.CooldownMinutes = int(math.Ceil(remaining.Minutes()))
		return result, nil
	}

	handle, err := s.otp.RequestOTP(ctx, user)
	if err != nil {
		return result, err
	}

	result.Status = StatusOTPSent
	result.ChallengeHandle = handle
	return result, nil
}

// VerifyEmailToken confirms the email address. On an already confirmed
// account it succeeds without touching the record or issuing a session.
func (s *AuthService) VerifyEmailToken(ctx context.Context, plaintext string) (*models.User, Session, error) {
	user, err := s.tokens.Verify(ctx, plaintext)
	if err != nil {
		return nil, Session{}, err
	}

	if user.Active {
		return user, Session{}, nil
	}

	if err := s.writer.apply(ctx, user, account.EmailVerified{}); err != nil {
		return nil, Session{}, err
	}

	session, err := s.issueSession(user)
	if err != nil {
		return nil, Session{}, err
	}
	return user, session, nil
}

// SendConfirmation emails a confirmation link. It reports true when the
// account is already confirmed and nothing was sent.
func (s *AuthService) SendConfirmation(ctx context.Context, user *models.User) (bool, error) {
	if user.Active {
		return true, nil
	}

	if err := s.sendToken(ctx, user, "confirmation", "Email verification",
		"please click the link to verify your email", s.config.ConfirmURLPrefix); err != nil {
		return false, err
	}
	return false, nil
}

func (s *AuthService) RequestPasswordReset(ctx context.Context, req ForgotPasswordRequest) error {
	if err := s.validator.Validate(&req); err != nil {
		return err
	}

	user, err := s.writer.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	return s.sendToken(ctx, user, "password_reset", "Password reset",
		"please click the link to reset your password", s.config.ResetURLPrefix)
}

// sendToken emails a fresh single-use token and stores its hash only once
// the mail was accepted.
func (s *AuthService) sendToken(ctx context.Context, user *models.User, kind, subject, msg, urlPrefix string) error {
	plaintext, hash, expiry, err := s.tokens.Issue()
	if err != nil {
		return err
	}

	body := fmt.Sprintf("%s. %s%s valid for %d minutes", msg, urlPrefix, plaintext, int(s.config.TokenTTL.Minutes()))
	if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
		log.Printf("[AUTH] Failed to send %s email to user %s: %v", kind, user.ID, err)
		metrics.EmailsSentTotal.WithLabelValues(kind, "failure").Inc()
		return fmt.Errorf("%w: %v", models.ErrMailUnavailable, err)
	}
	metrics.EmailsSentTotal.WithLabelValues(kind, "success").Inc()

	return s.writer.apply(ctx, user, account.ResetTokenIssued{Hash: hash, Expiry: expiry})
}

// ResetPassword sets a new password through an emailed token and then asks
// for a fresh second factor. Reusing the current password locks the account
// until it is reset again.
func (s *AuthService) ResetPassword(ctx context.Context, plaintext string, req ResetPasswordRequest) (*LoginResult, error) {
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	user, err := s.tokens.Verify(ctx, plaintext)
	if err != nil {
		return nil, err
	}

	if verifyPassword(req.Password, user.PasswordHash) {
		if err := s.writer.apply(ctx, user, account.SamePasswordAttempted{}); err != nil {
			return nil, err
		}
		s.writer.audit.LogAuth("PASSWORD_RESET", user.ID.String(), "FAILURE", map[string]string{"reason": "same password"})
		return nil, models.ErrSamePassword
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.writer.apply(ctx, user, account.PasswordReset{Hash: hash}); err != nil {
		return nil, err
	}
	s.writer.audit.LogAuth("PASSWORD_RESET", user.ID.String(), "SUCCESS", nil)

	session, err := s.issueSession(user)
	if err != nil {
		return nil, err
	}
	return s.challenge(ctx, user, &LoginResult{Session: session, User: user})
}

// RequestStandaloneOTP sends an OTP to a user whose second factor is not yet verified.
func (s *AuthService) RequestStandaloneOTP(ctx context.Context, user *models.User) (*LoginResult, error) {
	if user.SecondFactorVerified() {
		return nil, models.ErrAlreadyVerified
	}
	return s.challenge(ctx, user, &LoginResult{User: user})
}

func (s *AuthService) VerifyOTP(ctx context.Context, requester *models.User, handle string, req OTPRequest) (*models.User, error) {
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	user, err := s.otp.VerifyOTP(ctx, requester.ID, handle, req.OTP)
	metrics.RecordAuth("verify_otp", err)
	return user, err
}

// UpdateMe changes name, email or phone number.
func (s *AuthService) UpdateMe(ctx context.Context, user *models.User, req UpdateMeRequest) (*models.User, error) {
	if req.Password != "" || req.PasswordConfirm != "" {
		return nil, fmt.Errorf("%w: this route is not for password updates", models.ErrValidation)
	}
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	updated := *user
	if req.Name != nil {
		updated.Name = *req.Name
	}
	if req.Email != nil {
		updated.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.PhoneNumber != nil {
		phone, err := s.validator.NormalizePhone(*req.PhoneNumber)
		if err != nil {
			return nil, err
		}
		updated.PhoneNumber = phone
	}

	if err := s.writer.users.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteMe schedules the account for deletion after the grace period.
// Logging in before the deadline cancels it.
func (s *AuthService) DeleteMe(ctx context.Context, user *models.User, req DeleteMeRequest) (time.Time, error) {
	if err := s.validator.Validate(&req); err != nil {
		return time.Time{}, err
	}

	if !verifyPassword(req.Password, user.PasswordHash) || !verifyPassword(req.PasswordConfirm, user.PasswordHash) {
		return time.Time{}, models.ErrInvalidCredentials
	}

	deadline := s.writer.now().Add(s.config.DeletionGrace)
	if err := s.writer.apply(ctx, user, account.DeletionRequested{Deadline: deadline}); err != nil {
		return time.Time{}, err
	}

	s.writer.audit.LogAuth("ACCOUNT_DELETION_REQUESTED", user.ID.String(), "SUCCESS", map[string]string{"deadline": deadline.Format(time.RFC3339)})
	return deadline, nil
}

func (s *AuthService) UpdatePassword(ctx context.Context, user *models.User, req UpdatePasswordRequest) (Session, error) {
	if err := s.validator.Validate(&req); err != nil {
		return Session{}, err
	}

	if !verifyPassword(req.PasswordCurrent, user.PasswordHash) {
		return Session{}, models.ErrInvalidCredentials
	}
	if verifyPassword(req.Password, user.PasswordHash) {
		return Session{}, models.ErrSamePassword
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return Session{}, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.writer.apply(ctx, user, account.PasswordUpdated{Hash: hash}); err != nil {
		return Session{}, err
	}

	s.writer.audit.LogAuth("PASSWORD_CHANGED", user.ID.String(), "SUCCESS", nil)
	return s.issueSession(user)
}

// Logout revokes token. Invalid tokens are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	userID, expiresAt, err := s.sessions.Parse(ctx, token)
	if err != nil {
		return nil
	}

	if err := s.sessions.Revoke(ctx, token, expiresAt); err != nil {
		return err
	}
	s.writer.audit.LogAuth("LOGOUT", userID.String(), "SUCCESS", nil)
	return nil
}

// Authenticate resolves a session credential to its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, _, err := s.sessions.Parse(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.userByID(ctx, userID)
}

func (s *AuthService) userByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.writer.users.GetByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrUnauthorized
	}
	return user, err
}
