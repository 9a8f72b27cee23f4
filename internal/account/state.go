// Package account models the authentication life-cycle of a user record as
// an explicit state machine. States are derived from the persisted fields and
// every mutation goes through Apply, so handlers never poke at the flags
// directly.
package account

import (
	"time"

	"github.com/shopwise/backend/internal/models"
)

type State int

const (
	StateActive State = iota
	StateUnconfirmed
	StatePendingSecondFactor
	StateLocked
	StateResetRequired
	StatePendingDeletion
)

// States lists every state, in precedence order (highest first).
var States = []State{
	StatePendingDeletion,
	StateResetRequired,
	StateLocked,
	StatePendingSecondFactor,
	StateUnconfirmed,
	StateActive,
}

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateUnconfirmed:
		return "unconfirmed"
	case StatePendingSecondFactor:
		return "pending_second_factor"
	case StateLocked:
		return "locked"
	case StateResetRequired:
		return "reset_required"
	case StatePendingDeletion:
		return "pending_deletion"
	default:
		return "unknown"
	}
}

// Derive computes the state of u at now.
func Derive(u *models.User, now time.Time) State {
	switch {
	case u.PendingDeletion:
		return StatePendingDeletion
	case u.PasswordSame:
		return StateResetRequired
	case u.SecondFactorPending() && u.CooldownRemaining(now) > 0:
		return StateLocked
	case u.SecondFactorPending():
		return StatePendingSecondFactor
	case !u.Active:
		return StateUnconfirmed
	default:
		return StateActive
	}
}
