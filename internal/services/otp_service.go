package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopwise/backend/internal/account"
	"github.com/shopwise/backend/internal/metrics"
	"github.com/shopwise/backend/internal/models"
	"github.com/shopwise/backend/internal/otp"
	"github.com/shopwise/backend/internal/vault"
)

// OTPService issues and checks SMS challenges. The provider session id is
// sealed before it is stored or handed to the client.
type OTPService struct {
	writer   *accountWriter
	provider otp.Provider
	sealer   vault.Sealer
	cooldown time.Duration
}

func NewOTPService(users UserStore, provider otp.Provider, sealer vault.Sealer, auditLog AuditLogger, cooldown time.Duration) *OTPService {
	return &OTPService{
		writer:   &accountWriter{users: users, audit: auditLog, now: time.Now},
		provider: provider,
		sealer:   sealer,
		cooldown: cooldown,
	}
}

// RequestOTP starts a challenge to the user's own phone number and returns
// the sealed session handle.
func (s *OTPService) RequestOTP(ctx context.Context, user *models.User) (string, error) {
	if account.Derive(user, s.writer.now()) == account.StateLocked {
		return "", models.ErrCooldownActive
	}

	sid, err := s.provider.CreateSession(ctx)
	if err == nil {
		err = s.provider.StartChallenge(ctx, sid, user.PhoneNumber)
	}
	if err != nil {
		log.Printf("[OTP] challenge for user %s failed: %v", user.ID, err)
		if werr := s.writer.apply(ctx, user, account.OTPIssueFailed{}); werr != nil {
			log.Printf("[OTP] failed to clear session for user %s: %v", user.ID, werr)
		}
		return "", fmt.Errorf("%w: %v", models.ErrGatewayUnavailable, err)
	}

	sealed, err := s.sealer.Seal(sid)
	if err != nil {
		return "", fmt.Errorf("failed to seal otp session: %w", err)
	}

	if err := s.writer.apply(ctx, user, account.OTPIssued{SessionID: sealed}); err != nil {
		return "", err
	}

	log.Printf("[OTP] challenge sent for user %s", user.ID)
	return sealed, nil
}

// VerifyOTP checks code against the challenge identified by handle. The
// challenge must belong to requesterID.
func (s *OTPService) VerifyOTP(ctx context.Context, requesterID uuid.UUID, handle, code string) (*models.User, error) {
	user, err := s.writer.users.GetByOTPSession(ctx, handle)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if user.ID != requesterID {
		log.Printf("[OTP] user %s submitted a challenge owned by %s", requesterID, user.ID)
		return nil, models.ErrUnauthorized
	}

	sid, err := s.sealer.Open(handle)
	if err != nil {
		log.Printf("[OTP] stored session for user %s could not be opened: %v", user.ID, err)
		return nil, models.ErrUnauthorized
	}

	outcome, err := s.provider.CheckChallenge(ctx, sid, user.PhoneNumber, code)
	log.Printf("[OTP] check for user %s: %s", user.ID, outcome)
	metrics.OTPChecksTotal.WithLabelValues(outcome.String()).Inc()

	switch outcome {
	case otp.OutcomeApproved:
		if err := s.writer.apply(ctx, user, account.OTPVerified{}); err != nil {
			return nil, err
		}
		return user, nil

	case otp.OutcomeRejected:
		return user, models.ErrInvalidCode

	case otp.OutcomeExpired:
		until := s.writer.now().Add(s.cooldown)
		if err := s.writer.apply(ctx, user, account.OTPLockedOut{Until: until}); err != nil {
			return nil, err
		}
		return user, models.ErrExpired

	default:
		return nil, fmt.Errorf("%w: %v", models.ErrGatewayUnavailable, err)
	}
}
