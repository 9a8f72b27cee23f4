package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopwise/backend/internal/config"
	mW "github.com/shopwise/backend/internal/middleware"
	"github.com/shopwise/backend/internal/models"
	"github.com/shopwise/backend/internal/services"
)

// AuthAPI is the account surface the user routes need. Implemented by
// services.AuthService.
type AuthAPI interface {
	SignUp(ctx context.Context, req services.SignUpRequest) (*models.User, services.Session, error)
	Login(ctx context.Context, req services.LoginRequest) (*services.LoginResult, error)
	Logout(ctx context.Context, token string) error
	VerifyEmailToken(ctx context.Context, plaintext string) (*models.User, services.Session, error)
	SendConfirmation(ctx context.Context, user *models.User) (bool, error)
	RequestPasswordReset(ctx context.Context, req services.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, plaintext string, req services.ResetPasswordRequest) (*services.LoginResult, error)
	RequestStandaloneOTP(ctx context.Context, user *models.User) (*services.LoginResult, error)
	VerifyOTP(ctx context.Context, requester *models.User, handle string, req services.OTPRequest) (*models.User, error)
	UpdateMe(ctx context.Context, user *models.User, req services.UpdateMeRequest) (*models.User, error)
	DeleteMe(ctx context.Context, user *models.User, req services.DeleteMeRequest) (time.Time, error)
	UpdatePassword(ctx context.Context, user *models.User, req services.UpdatePasswordRequest) (services.Session, error)
}

// AuthResponse is returned by every operation that issues a session or an
// OTP challenge.
// @Description Authentication response
type AuthResponse struct {
	Status          string       `json:"status" example:"success"`
	Message         string       `json:"message,omitempty" example:"an OTP has been sent to your phone number"`
	Token           string       `json:"token,omitempty"`
	SessionID       string       `json:"sessionId,omitempty"` // OTP challenge handle for /users/twoFactorAuth/{sid}
	CooldownMinutes int          `json:"cooldownMinutes,omitempty"`
	User            *models.User `json:"user,omitempty"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"check your email for the reset link"`
}

type AuthHandler struct {
	service AuthAPI
}

func NewAuthHandler(service AuthAPI) *AuthHandler {
	return &AuthHandler{service: service}
}

// SignUp registers a new account
// @Summary Sign up
// @Description Create an unconfirmed account and log it in
// @Tags Users
// @Accept json
// @Produce json
// @Param request body services.SignUpRequest true "Registration details"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /users/signup [post]
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req services.SignUpRequest
	if !decodeJSON(w, r, &req, "AUTH") {
		return
	}

	user, session, err := h.service.SignUp(r.Context(), req)
	if err != nil {
		log.Printf("[AUTH] SignUp failed: %v", err)
		writeError(w, err)
		return
	}

	setSessionCookie(w, session)
	writeJSON(w, http.StatusCreated, AuthResponse{Status: "success", Token: session.Token, User: user})
}

// Login authenticates with email and password
// @Summary Log in
// @Description Verify credentials. Accounts with a pending second factor get an OTP challenge instead of full access.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body services.LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 502 {object} services.ErrorResponse
// @Router /users/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if !decodeJSON(w, r, &req, "AUTH") {
		return
	}

	result, err := h.service.Login(r.Context(), req)
	writeLoginResult(w, result, err)
}

// Logout revokes the current session
// @Summary Log out
// @Tags Users
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /users/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := mW.TokenFromRequest(r); token != "" {
		if err := h.service.Logout(r.Context(), token); err != nil {
			log.Printf("[AUTH] Logout failed: %v", err)
			writeError(w, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     mW.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	writeJSON(w, http.StatusOK, MessageResponse{Status: "success", Message: "logged out"})
}

// VerifyEmail confirms an email address
// @Summary Verify email
// @Description Confirm the email address with the emailed token
// @Tags Users
// @Produce json
// @Param token path string true "Emailed token"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} services.ErrorResponse
// @Router /users/verifyEmail/{token} [post]
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	user, session, err := h.service.VerifyEmailToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeTokenError(w, err)
		return
	}

	if session.Token == "" {
		writeJSON(w, http.StatusOK, AuthResponse{Status: "success", Message: "your email has already been verified", User: user})
		return
	}

	setSessionCookie(w, session)
	writeJSON(w, http.StatusOK, AuthResponse{Status: "success", Message: "your email has been verified", Token: session.Token, User: user})
}

// ForgotPassword emails a reset link
// @Summary Forgot password
// @Tags Users
// @Accept json
// @Produce json
// @Param request body services.ForgotPasswordRequest true "Account email"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} services.ErrorResponse
// @Failure 502 {object} services.ErrorResponse
// @Router /users/forgotPassword [post]
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req services.ForgotPasswordRequest
	if !decodeJSON(w, r, &req, "AUTH") {
		return
	}

	if err := h.service.RequestPasswordReset(r.Context(), req); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			services.SendErrorResponse(w, "User not found", http.StatusNotFound, nil)
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Status: "success", Message: "a reset link has been sent to your email"})
}

// ResetPassword sets a new password with an emailed token
// @Summary Reset password
// @Description Set a new password, then verify the second factor again
// @Tags Users
// @Accept json
// @Produce json
// @Param token path string true "Emailed token"
// @Param request body services.ResetPasswordRequest true "New password"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 502 {object} services.ErrorResponse
// @Router /users/resetPassword/{token} [post]
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req services.ResetPasswordRequest
	if !decodeJSON(w, r, &req, "AUTH") {
		return
	}

	result, err := h.service.ResetPassword(r.Context(), chi.URLParam(r, "token"), req)
	if err != nil && (errors.Is(err, models.ErrExpired) || errors.Is(err, models.ErrInvalidToken)) {
		writeTokenError(w, err)
		return
	}
	writeLoginResult(w, result, err)
}

// writeLoginResult renders the outcome of Login and ResetPassword. The
// session cookie is set even when the OTP gateway failed.
func writeLoginResult(w http.ResponseWriter, result *services.LoginResult, err error) {
	if result != nil {
		setSessionCookie(w, result.Session)
	}
	if err != nil {
		log.Printf("[AUTH] Login flow failed: %v", err)
		writeError(w, err)
		return
	}

	resp := AuthResponse{Status: "success", Token: result.Token}
	switch result.Status {
	case services.StatusActive:
		resp.User = result.User
	case services.StatusPendingConfirmation:
		resp.Message = models.ErrNotConfirmed.Error()
		resp.User = result.User
	case services.StatusOTPSent:
		resp.Message = "an OTP has been sent to your phone number"
		resp.SessionID = result.ChallengeHandle
	case services.StatusCooldown:
		resp.Status = "fail"
		resp.Message = fmt.Sprintf("please try again in %d minutes", result.CooldownMinutes)
		resp.CooldownMinutes = result.CooldownMinutes
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeTokenError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrExpired):
		services.SendErrorResponse(w, "The link has already expired", http.StatusBadRequest, nil)
	case errors.Is(err, models.ErrInvalidToken):
		services.SendErrorResponse(w, "The link is invalid", http.StatusBadRequest, nil)
	default:
		writeError(w, err)
	}
}

func setSessionCookie(w http.ResponseWriter, session services.Session) {
	if session.Token == "" {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     mW.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   !config.IsDevelopment(),
		SameSite: http.SameSiteLaxMode,
	})
}
