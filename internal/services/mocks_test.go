package services

import (
	"context"
	"io"
	"log"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopwise/backend/internal/audit"
	"github.com/shopwise/backend/internal/config"
	"github.com/shopwise/backend/internal/models"
	"github.com/shopwise/backend/internal/otp"
	"github.com/shopwise/backend/internal/vault"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) CreateSession(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) StartChallenge(ctx context.Context, sessionID, destination string) error {
	args := m.Called(ctx, sessionID, destination)
	return args.Error(0)
}

func (m *MockProvider) CheckChallenge(ctx context.Context, sessionID, destination, code string) (otp.Outcome, error) {
	args := m.Called(ctx, sessionID, destination, code)
	return args.Get(0).(otp.Outcome), args.Error(1)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

type MockProductStore struct {
	mock.Mock
}

func (m *MockProductStore) List(ctx context.Context, sort []string) ([]models.Product, error) {
	args := m.Called(ctx, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductStore) SearchByTitle(ctx context.Context, name string) ([]models.Product, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductStore) Create(ctx context.Context, p *models.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductStore) Update(ctx context.Context, owner uuid.UUID, p *models.Product) error {
	args := m.Called(ctx, owner, p)
	return args.Error(0)
}

func (m *MockProductStore) Delete(ctx context.Context, owner, id uuid.UUID) error {
	args := m.Called(ctx, owner, id)
	return args.Error(0)
}

// memoryUserStore is an in-memory UserStore with the same uniqueness rules
// as the users table.
type memoryUserStore struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]models.User
	updates int
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{byID: make(map[uuid.UUID]models.User)}
}

func (s *memoryUserStore) Create(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.byID {
		if existing.Email == u.Email {
			return models.ErrDuplicateEmail
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.byID[u.ID] = *u
	return nil
}

func (s *memoryUserStore) find(match func(models.User) bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.byID {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *memoryUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.find(func(u models.User) bool { return u.ID == id })
}

func (s *memoryUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.find(func(u models.User) bool { return u.Email == email })
}

func (s *memoryUserStore) GetByResetToken(ctx context.Context, hash string) (*models.User, error) {
	return s.find(func(u models.User) bool { return u.ResetToken != nil && *u.ResetToken == hash })
}

func (s *memoryUserStore) GetByOTPSession(ctx context.Context, sessionID string) (*models.User, error) {
	return s.find(func(u models.User) bool { return u.OTPSessionID != nil && *u.OTPSessionID == sessionID })
}

func (s *memoryUserStore) Update(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[u.ID]; !ok {
		return models.ErrNotFound
	}
	s.updates++
	s.byID[u.ID] = *u
	return nil
}

func (s *memoryUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return models.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *memoryUserStore) get(t *testing.T, id uuid.UUID) models.User {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	require.True(t, ok, "user %s not stored", id)
	return u
}

// recordingMailer keeps every message so tests can pull the emailed token.
type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

type sentMail struct {
	to, subject, body string
}

var tokenPattern = regexp.MustCompile(`[0-9a-f]{64}`)

func (m *recordingMailer) Send(ctx context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (m *recordingMailer) lastToken(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent, "no mail sent")
	token := tokenPattern.FindString(m.sent[len(m.sent)-1].body)
	require.NotEmpty(t, token, "mail carries no token")
	return token
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type authFixture struct {
	svc      *AuthService
	users    *memoryUserStore
	provider *MockProvider
	mailer   *recordingMailer
	clock    *testClock
	vault    *vault.Vault
}

func setupArgon2() {
	viper.Set("argon2.salt_length", 16)
	viper.Set("argon2.time", 1)
	viper.Set("argon2.memory", 8*1024)
	viper.Set("argon2.threads", 1)
	viper.Set("argon2.key_length", 32)
	viper.Set("app.phone_region", "NG")
}

func testAuthConfig() *config.AuthConfig {
	return &config.AuthConfig{
		TokenTTL:         10 * time.Minute,
		OTPCooldown:      10 * time.Minute,
		DeletionGrace:    30 * 24 * time.Hour,
		SessionTTL:       24 * time.Hour,
		ConfirmURLPrefix: "http://localhost:8080/api/v1/users/verifyEmail/",
		ResetURLPrefix:   "http://localhost:8080/api/v1/users/resetPassword/",
	}
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	setupArgon2()

	v, err := vault.New(vault.Config{MasterKey: "test-master-key", Salt: []byte("0123456789abcdef")})
	require.NoError(t, err)

	f := &authFixture{
		users:    newMemoryUserStore(),
		provider: &MockProvider{},
		mailer:   &recordingMailer{},
		clock:    &testClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		vault:    v,
	}

	auditLog := audit.NewLoggerTo(log.New(io.Discard, "", 0))
	cfg := testAuthConfig()
	otpService := NewOTPService(f.users, f.provider, v, auditLog, cfg.OTPCooldown)
	sessions := NewSessionManager("test-secret", cfg.SessionTTL, nil)

	f.svc = NewAuthService(f.users, otpService, sessions, f.mailer, auditLog, cfg)
	f.svc.setClock(f.clock.Now)
	return f
}

// signUp registers alice@example.com with password Passw0rd!.
func (f *authFixture) signUp(t *testing.T) *models.User {
	t.Helper()
	user, _, err := f.svc.SignUp(context.Background(), SignUpRequest{
		Email:           "alice@example.com",
		Name:            "Alice",
		PhoneNumber:     "08012345678",
		Password:        "Passw0rd!",
		PasswordConfirm: "Passw0rd!",
	})
	require.NoError(t, err)
	return user
}

// mutate rewrites a stored user, for arranging test state.
func (f *authFixture) mutate(t *testing.T, id uuid.UUID, mutate func(u *models.User)) models.User {
	t.Helper()
	u := f.users.get(t, id)
	mutate(&u)
	require.NoError(t, f.users.Update(context.Background(), &u))
	return u
}
