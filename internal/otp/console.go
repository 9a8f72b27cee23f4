package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ConsoleProvider keeps challenges in memory and logs the codes instead of
// sending SMS. It mirrors the provider semantics (TTL, attempt limit) so the
// rest of the system behaves the same in development.
type ConsoleProvider struct {
	mu          sync.Mutex
	challenges  map[string]*challenge
	ttl         time.Duration
	maxAttempts int
	now         func() time.Time
	codeFn      func() string
}

type challenge struct {
	destination string
	code        string
	expiresAt   time.Time
	attempts    int
	started     bool
}

func NewConsoleProvider(ttl time.Duration, maxAttempts int) *ConsoleProvider {
	return &ConsoleProvider{
		challenges:  make(map[string]*challenge),
		ttl:         ttl,
		maxAttempts: maxAttempts,
		now:         time.Now,
		codeFn:      randomCode,
	}
}

func (p *ConsoleProvider) CreateSession(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	sid := "VA" + uuid.NewString()
	p.challenges[sid] = &challenge{}
	return sid, nil
}

func (p *ConsoleProvider) StartChallenge(ctx context.Context, sessionID, destination string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.challenges[sessionID]
	if !ok {
		return fmt.Errorf("%w: unknown session %s", ErrUnavailable, sessionID)
	}

	c.destination = destination
	c.code = p.codeFn()
	c.expiresAt = p.now().Add(p.ttl)
	c.attempts = 0
	c.started = true

	log.Printf("[OTP] console provider: code %s for %s (session %s)", c.code, destination, sessionID)
	return nil
}

func (p *ConsoleProvider) CheckChallenge(ctx context.Context, sessionID, destination, code string) (Outcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, ok := p.challenges[sessionID]
	if !ok || !c.started || c.destination != destination {
		return OutcomeExpired, nil
	}

	if p.now().After(c.expiresAt) {
		delete(p.challenges, sessionID)
		return OutcomeExpired, nil
	}

	c.attempts++
	if c.code == code {
		delete(p.challenges, sessionID)
		return OutcomeApproved, nil
	}

	if c.attempts >= p.maxAttempts {
		delete(p.challenges, sessionID)
		return OutcomeExpired, nil
	}

	return OutcomeRejected, nil
}

func randomCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}
