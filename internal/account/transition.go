package account

import (
	"fmt"
	"time"

	"github.com/shopwise/backend/internal/models"
)

// Event is something that happened to an account.
type Event interface {
	Name() string
}

// LoginSucceeded is applied once the password matched.
type LoginSucceeded struct{}

// EmailVerified is applied when a confirmation token was accepted.
type EmailVerified struct{}

// ResetTokenIssued stores the hash of a freshly issued single-use token.
type ResetTokenIssued struct {
	Hash   string
	Expiry time.Time
}

// ResetTokenCleared drops the stored token, e.g. after it expired.
type ResetTokenCleared struct{}

// OTPIssued records an outstanding challenge under an encrypted session id.
type OTPIssued struct {
	SessionID string
}

// OTPIssueFailed is applied when the gateway could not start a challenge.
type OTPIssueFailed struct{}

// OTPVerified is applied when the gateway approved the submitted code.
type OTPVerified struct{}

// OTPLockedOut is applied when the challenge expired or ran out of attempts.
type OTPLockedOut struct {
	Until time.Time
}

// SamePasswordAttempted is applied when a reset tried to reuse the current password.
type SamePasswordAttempted struct{}

// PasswordReset commits a password chosen through the emailed reset link.
type PasswordReset struct {
	Hash string
}

// PasswordUpdated commits a password changed by an authenticated user.
type PasswordUpdated struct {
	Hash string
}

// DeletionRequested schedules the account for removal.
type DeletionRequested struct {
	Deadline time.Time
}

func (LoginSucceeded) Name() string        { return "login_succeeded" }
func (EmailVerified) Name() string         { return "email_verified" }
func (ResetTokenIssued) Name() string      { return "reset_token_issued" }
func (ResetTokenCleared) Name() string     { return "reset_token_cleared" }
func (OTPIssued) Name() string             { return "otp_issued" }
func (OTPIssueFailed) Name() string        { return "otp_issue_failed" }
func (OTPVerified) Name() string           { return "otp_verified" }
func (OTPLockedOut) Name() string          { return "otp_locked_out" }
func (SamePasswordAttempted) Name() string { return "same_password_attempted" }
func (PasswordReset) Name() string         { return "password_reset" }
func (PasswordUpdated) Name() string       { return "password_updated" }
func (DeletionRequested) Name() string     { return "deletion_requested" }

// Outcome describes the state change produced by Apply.
type Outcome struct {
	From State
	To   State
}

// Changed reports whether the derived state moved.
func (o Outcome) Changed() bool {
	return o.From != o.To
}

// Apply returns a copy of u with ev applied. u itself is never modified.
func Apply(u models.User, ev Event, now time.Time) (models.User, Outcome, error) {
	from := Derive(&u, now)
	next := u

	switch e := ev.(type) {
	case LoginSucceeded:
		if from == StateResetRequired {
			return u, Outcome{From: from, To: from}, models.ErrPasswordResetRequired
		}
		// logging in cancels a scheduled deletion
		next.PendingDeletion = false
		next.DeletionDeadline = nil

	case EmailVerified:
		if next.Active {
			break
		}
		next.Active = true
		next.ResetToken = nil
		next.ResetTokenExpiry = nil

	case ResetTokenIssued:
		if e.Hash == "" || !e.Expiry.After(now) {
			return u, Outcome{From: from, To: from}, fmt.Errorf("%w: %s needs a hash and a future expiry", models.ErrInvalidTransition, ev.Name())
		}
		hash, expiry := e.Hash, e.Expiry
		next.ResetToken = &hash
		next.ResetTokenExpiry = &expiry

	case ResetTokenCleared:
		next.ResetToken = nil
		next.ResetTokenExpiry = nil

	case OTPIssued:
		if from == StateLocked {
			return u, Outcome{From: from, To: from}, models.ErrCooldownActive
		}
		sid := e.SessionID
		next.OTPSessionID = &sid
		next.TwoFactorAuth = models.Bool(false)
		next.OTPExpiry = nil

	case OTPIssueFailed:
		next.OTPSessionID = nil
		next.OTPExpiry = nil
		next.TwoFactorAuth = models.Bool(false)

	case OTPVerified:
		if u.OTPSessionID == nil {
			return u, Outcome{From: from, To: from}, fmt.Errorf("%w: no outstanding challenge", models.ErrInvalidTransition)
		}
		next.OTPSessionID = nil
		next.OTPExpiry = nil
		next.Active = true
		next.TwoFactorAuth = models.Bool(true)

	case OTPLockedOut:
		if u.OTPSessionID == nil {
			return u, Outcome{From: from, To: from}, fmt.Errorf("%w: no outstanding challenge", models.ErrInvalidTransition)
		}
		until := e.Until
		next.OTPExpiry = &until
		next.OTPSessionID = nil
		next.TwoFactorAuth = models.Bool(false)

	case SamePasswordAttempted:
		next.Active = false
		next.PasswordSame = true

	case PasswordReset:
		next.PasswordHash = e.Hash
		next.PasswordSame = false
		next.Active = false
		next.ResetToken = nil
		next.ResetTokenExpiry = nil

	case PasswordUpdated:
		if from == StateResetRequired {
			return u, Outcome{From: from, To: from}, models.ErrPasswordResetRequired
		}
		next.PasswordHash = e.Hash

	case DeletionRequested:
		deadline := e.Deadline
		next.PendingDeletion = true
		next.DeletionDeadline = &deadline

	default:
		return u, Outcome{From: from, To: from}, fmt.Errorf("%w: unknown event %T", models.ErrInvalidTransition, ev)
	}

	return next, Outcome{From: from, To: Derive(&next, now)}, nil
}
