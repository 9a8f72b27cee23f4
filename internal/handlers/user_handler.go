package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	mW "github.com/shopwise/backend/internal/middleware"
	"github.com/shopwise/backend/internal/models"
	"github.com/shopwise/backend/internal/services"
)

// DeletionResponse reports when a scheduled deletion takes effect.
type DeletionResponse struct {
	Status   string    `json:"status" example:"success"`
	Message  string    `json:"message"`
	Deadline time.Time `json:"deletionDeadline"`
}

// UserHandler serves the account routes that need a session.
type UserHandler struct {
	service AuthAPI
}

func NewUserHandler(service AuthAPI) *UserHandler {
	return &UserHandler{service: service}
}

// Me returns the current user
// @Summary Current user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} services.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, _ := mW.UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, user)
}

// ConfirmUser resends the confirmation email
// @Summary Resend confirmation email
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MessageResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Failure 502 {object} services.ErrorResponse
// @Router /users/confirmUser [post]
func (h *UserHandler) ConfirmUser(w http.ResponseWriter, r *http.Request) {
	user, _ := mW.UserFromContext(r.Context())

	alreadyVerified, err := h.service.SendConfirmation(r.Context(), user)
	if err != nil {
		log.Printf("[USER] ConfirmUser failed for %s: %v", user.ID, err)
		writeError(w, err)
		return
	}
	if alreadyVerified {
		services.SendErrorResponse(w, "your email has already been verified", http.StatusConflict, nil)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Status: "success", Message: "a confirmation link has been sent to your email"})
}

// TwoFactorAuth submits an OTP code
// @Summary Verify OTP
// @Description Check the OTP for the challenge returned by login, resetPassword or sendOtp
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param sid path string true "Challenge handle"
// @Param request body services.OTPRequest true "OTP code"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 502 {object} services.ErrorResponse
// @Router /users/twoFactorAuth/{sid} [post]
func (h *UserHandler) TwoFactorAuth(w http.ResponseWriter, r *http.Request) {
	user, _ := mW.UserFromContext(r.Context())

	var req services.OTPRequest
	if !decodeJSON(w, r, &req, "USER") {
		return
	}

	verified, err := h.service.VerifyOTP(r.Context(), user, chi.URLParam(r, "sid"), req)
	if err != nil {
		if errors.Is(err, models.ErrExpired) {
			services.SendErrorResponse(w, "your OTP has expired, please request a new one in 10 minutes", http.StatusBadRequest, nil)
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{Status: "success", Message: "your OTP has been verified", User: verified})
}

// SendOTP requests a standalone OTP
// @Summary Send OTP
// @Description Send an OTP to the user's phone number unless the second factor is already verified
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AuthResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Failure 502 {object} services.ErrorResponse
// @Router /users/sendOtp [post]
func (h *UserHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	user, _ := mW.UserFromContext(r.Context())

	result, err := h.service.RequestStandaloneOTP(r.Context(), user)
	writeLoginResult(w, result, err)
}

// UpdateMe changes profile fields
// @Summary Update profile
// @Description Change name, email or phone number. Passwords are changed through /users/updatePassword.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.UpdateMeRequest true "Profile changes"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 409 {object} services.ErrorResponse
// @Router /users/updateMe [patch]
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, _ := mW.UserFromContext(r.Context())

	var req services.UpdateMeRequest
	if !decodeJSON(w, r, &req, "USER") {
		return
	}

	updated, err := h.service.UpdateMe(r.Context(), user, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{Status: "success", User: updated})
}

// DeleteMe schedules the account for deletion
// @Summary Delete account
// @Description Schedule deletion in 30 days. Logging in before then cancels it.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.DeleteMeRequest true "Password, twice"
// @Success 200 {object} DeletionResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Router /users/deleteMe [patch]
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user, _ := mW.UserFromContext(r.Context())

	var req services.DeleteMeRequest
	if !decodeJSON(w, r, &req, "USER") {
		return
	}

	deadline, err := h.service.DeleteMe(r.Context(), user, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, DeletionResponse{
		Status:   "success",
		Message:  "your account will be deleted in 30 days, log in before then to keep it",
		Deadline: deadline,
	})
}

// UpdatePassword changes the password of the logged in user
// @Summary Update password
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body services.UpdatePasswordRequest true "Current and new password"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Router /users/updatePassword [patch]
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	user, _ := mW.UserFromContext(r.Context())

	var req services.UpdatePasswordRequest
	if !decodeJSON(w, r, &req, "USER") {
		return
	}

	session, err := h.service.UpdatePassword(r.Context(), user, req)
	if err != nil {
		writeError(w, err)
		return
	}

	setSessionCookie(w, session)
	writeJSON(w, http.StatusOK, AuthResponse{Status: "success", Token: session.Token})
}

// UserRoutes builds the /users router. authenticate resolves the session;
// the profile routes additionally require a confirmed account and a
// satisfied second factor.
func UserRoutes(auth *AuthHandler, users *UserHandler, authenticate func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/signup", auth.SignUp)
	r.Post("/login", auth.Login)
	r.Post("/logout", auth.Logout)
	r.Post("/verifyEmail/{token}", auth.VerifyEmail)
	r.Post("/forgotPassword", auth.ForgotPassword)
	r.Post("/resetPassword/{token}", auth.ResetPassword)

	r.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Get("/me", users.Me)
		r.Post("/confirmUser", users.ConfirmUser)
		r.Post("/twoFactorAuth/{sid}", users.TwoFactorAuth)
		r.Post("/sendOtp", users.SendOTP)

		r.Group(func(r chi.Router) {
			r.Use(mW.RequireActive, mW.RequireSecondFactor)

			r.Patch("/updateMe", users.UpdateMe)
			r.Patch("/deleteMe", users.DeleteMe)
			r.Patch("/updatePassword", users.UpdatePassword)
		})
	})

	return r
}
