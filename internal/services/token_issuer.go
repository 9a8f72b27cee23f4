package services

import (
	"context"
	cryptorand "crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopwise/backend/internal/account"
	"github.com/shopwise/backend/internal/models"
)

const tokenBytes = 32

// TokenIssuer creates the single-use tokens embedded in confirmation and
// reset emails. Only the SHA-256 hash of a token is ever stored.
type TokenIssuer struct {
	users UserStore
	ttl   time.Duration
	now   func() time.Time
}

func NewTokenIssuer(users UserStore, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{users: users, ttl: ttl, now: time.Now}
}

// Issue returns a fresh plaintext token, its hash and its expiry.
func (t *TokenIssuer) Issue() (string, string, time.Time, error) {
	b := make([]byte, tokenBytes)
	if _, err := cryptorand.Read(b); err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}
	plaintext := hex.EncodeToString(b)
	return plaintext, HashToken(plaintext), t.now().Add(t.ttl), nil
}

func HashToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// Verify resolves plaintext to its user. An expired token is cleared from the
// record before ErrExpired is returned, so it can never be used again.
func (t *TokenIssuer) Verify(ctx context.Context, plaintext string) (*models.User, error) {
	if plaintext == "" {
		return nil, models.ErrInvalidToken
	}

	user, err := t.users.GetByResetToken(ctx, HashToken(plaintext))
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}

	now := t.now()
	if user.ResetTokenExpiry == nil || now.After(*user.ResetTokenExpiry) {
		next, _, err := account.Apply(*user, account.ResetTokenCleared{}, now)
		if err != nil {
			return nil, err
		}
		if err := t.users.Update(ctx, &next); err != nil {
			log.Printf("[AUTH] failed to clear expired token for user %s: %v", user.ID, err)
			return nil, err
		}
		return nil, models.ErrExpired
	}

	return user, nil
}
