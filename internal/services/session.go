package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopwise/backend/internal/models"
)

const blacklistPrefix = "session:revoked:"

// SessionManager issues and validates the HS256 session credential.
// Revoked credentials are kept in Redis until they would have expired anyway.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	redis  *redis.Client
	now    func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration, redisClient *redis.Client) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		ttl:    ttl,
		redis:  redisClient,
		now:    time.Now,
	}
}

func (m *SessionManager) Issue(userID uuid.UUID) (string, time.Time, error) {
	expiresAt := m.now().Add(m.ttl)
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"iat":     m.now().Unix(),
		"exp":     expiresAt.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, expiresAt, nil
}

// Parse validates the signature and expiry and returns the embedded user id.
func (m *SessionManager) Parse(ctx context.Context, tokenString string) (uuid.UUID, time.Time, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return uuid.Nil, time.Time{}, models.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, time.Time{}, models.ErrUnauthorized
	}

	raw, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, time.Time{}, models.ErrUnauthorized
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return uuid.Nil, time.Time{}, models.ErrUnauthorized
	}

	if m.isRevoked(ctx, tokenString) {
		return uuid.Nil, time.Time{}, models.ErrUnauthorized
	}

	return userID, exp.Time, nil
}

// Revoke blacklists the credential for the rest of its validity window.
func (m *SessionManager) Revoke(ctx context.Context, tokenString string, expiresAt time.Time) error {
	if m.redis == nil {
		log.Printf("[AUTH] Redis unavailable, session token not blacklisted")
		return nil
	}

	ttl := expiresAt.Sub(m.now())
	if ttl <= 0 {
		return nil
	}

	if err := m.redis.Set(ctx, blacklistKey(tokenString), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// isRevoked fails open when Redis errors.
func (m *SessionManager) isRevoked(ctx context.Context, tokenString string) bool {
	if m.redis == nil {
		return false
	}

	err := m.redis.Get(ctx, blacklistKey(tokenString)).Err()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		log.Printf("[AUTH] blacklist lookup failed: %v", err)
		return false
	}
	return true
}

func blacklistKey(tokenString string) string {
	sum := sha256.Sum256([]byte(tokenString))
	return blacklistPrefix + hex.EncodeToString(sum[:])
}
