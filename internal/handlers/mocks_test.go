package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	mW "github.com/shopwise/backend/internal/middleware"
	"github.com/shopwise/backend/internal/models"
	"github.com/shopwise/backend/internal/services"
	"github.com/stretchr/testify/mock"
)

type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) SignUp(ctx context.Context, req services.SignUpRequest) (*models.User, services.Session, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.Get(1).(services.Session), args.Error(2)
}

func (m *MockAuthAPI) Login(ctx context.Context, req services.LoginRequest) (*services.LoginResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*services.LoginResult)
	return result, args.Error(1)
}

func (m *MockAuthAPI) Logout(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockAuthAPI) VerifyEmailToken(ctx context.Context, plaintext string) (*models.User, services.Session, error) {
	args := m.Called(ctx, plaintext)
	user, _ := args.Get(0).(*models.User)
	return user, args.Get(1).(services.Session), args.Error(2)
}

func (m *MockAuthAPI) SendConfirmation(ctx context.Context, user *models.User) (bool, error) {
	args := m.Called(ctx, user)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthAPI) RequestPasswordReset(ctx context.Context, req services.ForgotPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockAuthAPI) ResetPassword(ctx context.Context, plaintext string, req services.ResetPasswordRequest) (*services.LoginResult, error) {
	args := m.Called(ctx, plaintext, req)
	result, _ := args.Get(0).(*services.LoginResult)
	return result, args.Error(1)
}

func (m *MockAuthAPI) RequestStandaloneOTP(ctx context.Context, user *models.User) (*services.LoginResult, error) {
	args := m.Called(ctx, user)
	result, _ := args.Get(0).(*services.LoginResult)
	return result, args.Error(1)
}

func (m *MockAuthAPI) VerifyOTP(ctx context.Context, requester *models.User, handle string, req services.OTPRequest) (*models.User, error) {
	args := m.Called(ctx, requester, handle, req)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockAuthAPI) UpdateMe(ctx context.Context, user *models.User, req services.UpdateMeRequest) (*models.User, error) {
	args := m.Called(ctx, user, req)
	updated, _ := args.Get(0).(*models.User)
	return updated, args.Error(1)
}

func (m *MockAuthAPI) DeleteMe(ctx context.Context, user *models.User, req services.DeleteMeRequest) (time.Time, error) {
	args := m.Called(ctx, user, req)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockAuthAPI) UpdatePassword(ctx context.Context, user *models.User, req services.UpdatePasswordRequest) (services.Session, error) {
	args := m.Called(ctx, user, req)
	return args.Get(0).(services.Session), args.Error(1)
}

type MockProductAPI struct {
	mock.Mock
}

func (m *MockProductAPI) List(ctx context.Context, sort string) ([]models.Product, error) {
	args := m.Called(ctx, sort)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *MockProductAPI) Search(ctx context.Context, name string) ([]models.Product, error) {
	args := m.Called(ctx, name)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *MockProductAPI) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *MockProductAPI) Create(ctx context.Context, owner *models.User, req services.CreateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, owner, req)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *MockProductAPI) Update(ctx context.Context, owner *models.User, id uuid.UUID, patch models.ProductPatch) (*models.Product, error) {
	args := m.Called(ctx, owner, id, patch)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *MockProductAPI) Delete(ctx context.Context, owner *models.User, id uuid.UUID) error {
	return m.Called(ctx, owner, id).Error(0)
}

// asUser is an authenticate middleware that always resolves to user.
func asUser(user *models.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(mW.WithUser(r.Context(), user)))
		})
	}
}
