package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID               uuid.UUID  `json:"id" example:"3f1c2b9e-6a0d-4c4e-9d57-1b7e2a4f9c10"` // User ID
	Email            string     `json:"email" example:"alice@example.com"`                  // User email
	Name             string     `json:"name" example:"Alice"`                               // Display name
	PhoneNumber      string     `json:"phoneNumber" example:"+2348012345678"`               // E.164 phone number
	Image            string     `json:"image" example:"img.jpg"`                            // Profile image
	PasswordHash     string     `json:"-"`
	Active           bool       `json:"active"`
	TwoFactorAuth    *bool      `json:"twoFactorAuth,omitempty"`
	OTPExpiry        *time.Time `json:"-"`
	OTPSessionID     *string    `json:"-"`
	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	PasswordSame     bool       `json:"-"`
	PendingDeletion  bool       `json:"-"`
	DeletionDeadline *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// SecondFactorPending reports whether an OTP challenge is outstanding or the
// last second-factor attempt failed.
func (u *User) SecondFactorPending() bool {
	return u.OTPSessionID != nil || (u.TwoFactorAuth != nil && !*u.TwoFactorAuth)
}

// SecondFactorVerified is true only after a successful OTP check.
func (u *User) SecondFactorVerified() bool {
	return u.TwoFactorAuth != nil && *u.TwoFactorAuth
}

// CooldownRemaining returns how long until a new OTP may be issued.
func (u *User) CooldownRemaining(now time.Time) time.Duration {
	if u.OTPExpiry == nil || !u.OTPExpiry.After(now) {
		return 0
	}
	return u.OTPExpiry.Sub(now)
}

// DeletionDue reports whether a scheduled deletion has passed its deadline.
func (u *User) DeletionDue(now time.Time) bool {
	return u.PendingDeletion && u.DeletionDeadline != nil && now.After(*u.DeletionDeadline)
}

// Bool returns a pointer to b, for the tri-state TwoFactorAuth field.
func Bool(b bool) *bool {
	return &b
}
