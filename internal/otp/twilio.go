package otp

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/twilio/twilio-go"
	"github.com/twilio/twilio-go/client"
	verify "github.com/twilio/twilio-go/rest/verify/v2"
)

// Twilio error codes that end a challenge.
const (
	codeNotFound    = 20404 // verification expired or already approved
	codeMaxAttempts = 60202 // max check attempts reached
)

type verifyAPI interface {
	CreateService(params *verify.CreateServiceParams) (*verify.VerifyV2Service, error)
	CreateVerification(serviceSid string, params *verify.CreateVerificationParams) (*verify.VerifyV2Verification, error)
	CreateVerificationCheck(serviceSid string, params *verify.CreateVerificationCheckParams) (*verify.VerifyV2VerificationCheck, error)
}

type TwilioConfig struct {
	AccountSID   string
	AuthToken    string
	FriendlyName string
	CodeLength   int
	Channel      string
}

// TwilioProvider creates one Verify service per challenge, matching how
// session identifiers are handed to clients.
type TwilioProvider struct {
	api    verifyAPI
	config TwilioConfig
}

func NewTwilioProvider(config TwilioConfig) *TwilioProvider {
	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: config.AccountSID,
		Password: config.AuthToken,
	})
	return newTwilioProvider(rest.VerifyV2, config)
}

func newTwilioProvider(api verifyAPI, config TwilioConfig) *TwilioProvider {
	if config.CodeLength == 0 {
		config.CodeLength = 6
	}
	if config.Channel == "" {
		config.Channel = "sms"
	}
	if config.FriendlyName == "" {
		config.FriendlyName = "Shopwise"
	}
	return &TwilioProvider{api: api, config: config}
}

func (p *TwilioProvider) CreateSession(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &verify.CreateServiceParams{}
	params.SetFriendlyName(p.config.FriendlyName)
	params.SetCodeLength(p.config.CodeLength)
	params.SetLookupEnabled(true)
	params.SetDoNotShareWarningEnabled(true)

	svc, err := p.api.CreateService(params)
	if err != nil {
		log.Printf("[OTP] Twilio create service failed: %v", err)
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if svc == nil || svc.Sid == nil {
		return "", fmt.Errorf("%w: service created without sid", ErrUnavailable)
	}

	return *svc.Sid, nil
}

func (p *TwilioProvider) StartChallenge(ctx context.Context, sessionID, destination string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &verify.CreateVerificationParams{}
	params.SetTo(destination)
	params.SetChannel(p.config.Channel)

	if _, err := p.api.CreateVerification(sessionID, params); err != nil {
		log.Printf("[OTP] Twilio create verification failed: %v", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

func (p *TwilioProvider) CheckChallenge(ctx context.Context, sessionID, destination, code string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return OutcomeUnavailable, err
	}

	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(destination)
	params.SetCode(code)

	check, err := p.api.CreateVerificationCheck(sessionID, params)
	if err != nil {
		var restErr *client.TwilioRestError
		if errors.As(err, &restErr) && (restErr.Code == codeNotFound || restErr.Code == codeMaxAttempts) {
			return OutcomeExpired, nil
		}
		log.Printf("[OTP] Twilio verification check failed: %v", err)
		return OutcomeUnavailable, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if check != nil && check.Valid != nil && *check.Valid {
		return OutcomeApproved, nil
	}
	return OutcomeRejected, nil
}
