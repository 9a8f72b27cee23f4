package otp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConsole(clock *time.Time) *ConsoleProvider {
	p := NewConsoleProvider(10*time.Minute, 3)
	p.now = func() time.Time { return *clock }
	p.codeFn = func() string { return "424242" }
	return p
}

func TestConsoleProvider_Approve(t *testing.T) {
	clock := time.Now()
	p := newConsole(&clock)
	ctx := context.Background()

	sid, err := p.CreateSession(ctx)
	require.NoError(t, err)
	require.NoError(t, p.StartChallenge(ctx, sid, "+15550000000"))

	got, err := p.CheckChallenge(ctx, sid, "+15550000000", "424242")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeApproved, got)

	// a consumed challenge cannot be approved twice
	got, _ = p.CheckChallenge(ctx, sid, "+15550000000", "424242")
	assert.Equal(t, OutcomeExpired, got)
}

func TestConsoleProvider_MaxAttempts(t *testing.T) {
	clock := time.Now()
	p := newConsole(&clock)
	ctx := context.Background()

	sid, _ := p.CreateSession(ctx)
	require.NoError(t, p.StartChallenge(ctx, sid, "+15550000000"))

	got, _ := p.CheckChallenge(ctx, sid, "+15550000000", "000000")
	assert.Equal(t, OutcomeRejected, got)
	got, _ = p.CheckChallenge(ctx, sid, "+15550000000", "000001")
	assert.Equal(t, OutcomeRejected, got)
	got, _ = p.CheckChallenge(ctx, sid, "+15550000000", "000002")
	assert.Equal(t, OutcomeExpired, got)
}

func TestConsoleProvider_Expiry(t *testing.T) {
	clock := time.Now()
	p := newConsole(&clock)
	ctx := context.Background()

	sid, _ := p.CreateSession(ctx)
	require.NoError(t, p.StartChallenge(ctx, sid, "+15550000000"))

	clock = clock.Add(11 * time.Minute)
	got, _ := p.CheckChallenge(ctx, sid, "+15550000000", "424242")
	assert.Equal(t, OutcomeExpired, got)
}

func TestConsoleProvider_UnknownSession(t *testing.T) {
	clock := time.Now()
	p := newConsole(&clock)

	assert.ErrorIs(t, p.StartChallenge(context.Background(), "VAnope", "+15550000000"), ErrUnavailable)

	got, err := p.CheckChallenge(context.Background(), "VAnope", "+15550000000", "424242")
	assert.NoError(t, err)
	assert.Equal(t, OutcomeExpired, got)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "approved", OutcomeApproved.String())
	assert.Equal(t, "rejected", OutcomeRejected.String())
	assert.Equal(t, "expired", OutcomeExpired.String())
	assert.Equal(t, "unavailable", OutcomeUnavailable.String())
}
