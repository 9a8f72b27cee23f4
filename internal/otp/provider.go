// Package otp wraps SMS one-time-passcode delivery behind a small interface.
// Providers translate their own error vocabulary into the closed Outcome set;
// nothing outside this package looks at raw provider codes.
package otp

import (
	"context"
	"errors"
)

type Outcome int

const (
	// OutcomeApproved means the submitted code was correct.
	OutcomeApproved Outcome = iota
	// OutcomeRejected means the code was wrong but the challenge is still open.
	OutcomeRejected
	// OutcomeExpired means the challenge expired or ran out of attempts.
	OutcomeExpired
	// OutcomeUnavailable means the provider could not be reached or failed.
	OutcomeUnavailable
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApproved:
		return "approved"
	case OutcomeRejected:
		return "rejected"
	case OutcomeExpired:
		return "expired"
	default:
		return "unavailable"
	}
}

// ErrUnavailable is returned alongside OutcomeUnavailable.
var ErrUnavailable = errors.New("otp provider unavailable")

type Provider interface {
	// CreateSession opens a verification session and returns its identifier.
	CreateSession(ctx context.Context) (string, error)
	// StartChallenge sends a code for sessionID to destination.
	StartChallenge(ctx context.Context, sessionID, destination string) error
	// CheckChallenge submits code for the challenge sent to destination.
	CheckChallenge(ctx context.Context, sessionID, destination, code string) (Outcome, error)
}
