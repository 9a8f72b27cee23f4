package services

import (
	"context"
	"time"

	"github.com/shopwise/backend/internal/account"
	"github.com/shopwise/backend/internal/models"
)

// AuditLogger receives auth events. Implemented by audit.Logger.
type AuditLogger interface {
	LogAuth(eventType, userID, status string, details map[string]string)
	LogTransition(userID, event, from, to string)
	LogError(operation, userID string, err error)
}

// accountWriter applies state machine events and persists the result.
type accountWriter struct {
	users UserStore
	audit AuditLogger
	now   func() time.Time
}

// apply runs ev against user, stores the new record and updates user in place.
// Nothing is written when the transition is rejected.
func (w *accountWriter) apply(ctx context.Context, user *models.User, ev account.Event) error {
	next, outcome, err := account.Apply(*user, ev, w.now())
	if err != nil {
		return err
	}

	if err := w.users.Update(ctx, &next); err != nil {
		w.audit.LogError(ev.Name(), user.ID.String(), err)
		return err
	}

	if outcome.Changed() {
		w.audit.LogTransition(user.ID.String(), ev.Name(), outcome.From.String(), outcome.To.String())
	}
	*user = next
	return nil
}
