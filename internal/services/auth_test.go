package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopwise/backend/internal/models"
	"github.com/shopwise/backend/internal/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const alicePhone = "+2348012345678"

func TestAuthService_SignUp(t *testing.T) {
	f := newAuthFixture(t)

	t.Run("creates an unconfirmed account", func(t *testing.T) {
		user, session, err := f.svc.SignUp(context.Background(), SignUpRequest{
			Email:           "Alice@Example.com",
			Name:            "Alice",
			PhoneNumber:     "08012345678",
			Password:        "Passw0rd!",
			PasswordConfirm: "Passw0rd!",
		})
		require.NoError(t, err)

		assert.False(t, user.Active)
		assert.Nil(t, user.TwoFactorAuth)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, alicePhone, user.PhoneNumber)
		assert.NotEmpty(t, session.Token)

		stored := f.users.get(t, user.ID)
		assert.NotEqual(t, "Passw0rd!", stored.PasswordHash)
		assert.NotContains(t, stored.PasswordHash, "Passw0rd!")
		assert.True(t, verifyPassword("Passw0rd!", stored.PasswordHash))
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, _, err := f.svc.SignUp(context.Background(), SignUpRequest{
			Email:           "alice@example.com",
			Name:            "Alice Again",
			PhoneNumber:     "08012345678",
			Password:        "Passw0rd!",
			PasswordConfirm: "Passw0rd!",
		})
		assert.ErrorIs(t, err, models.ErrDuplicateEmail)
	})

	t.Run("password confirmation mismatch", func(t *testing.T) {
		_, _, err := f.svc.SignUp(context.Background(), SignUpRequest{
			Email:           "bob@example.com",
			Name:            "Bob",
			PhoneNumber:     "08012345678",
			Password:        "Passw0rd!",
			PasswordConfirm: "Different1!",
		})
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("before confirmation", func(t *testing.T) {
		f := newAuthFixture(t)
		f.signUp(t)

		result, err := f.svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "Passw0rd!"})
		require.NoError(t, err)
		assert.Equal(t, StatusPendingConfirmation, result.Status)
		assert.NotEmpty(t, result.Token)
		f.provider.AssertNotCalled(t, "CreateSession", mock.Anything)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		f := newAuthFixture(t)
		f.signUp(t)

		_, err := f.svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "nope"})
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)

		_, err = f.svc.Login(ctx, LoginRequest{Email: "nobody@example.com", Password: "Passw0rd!"})
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)

		// unknown emails still pay for a full argon2 verification
		_, _, hash, err := decodeHash(dummyHash())
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
	})

	t.Run("fully verified account", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.signUp(t)
		f.mutate(t, user.ID, func(u *models.User) {
			u.Active = true
			u.TwoFactorAuth = models.Bool(true)
		})

		result, err := f.svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "Passw0rd!"})
		require.NoError(t, err)
		assert.Equal(t, StatusActive, result.Status)
	})

	t.Run("failed second factor sends a new challenge", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.signUp(t)
		f.mutate(t, user.ID, func(u *models.User) { u.TwoFactorAuth = models.Bool(false) })

		f.provider.On("CreateSession", mock.Anything).Return("VA100", nil).Once()
		f.provider.On("StartChallenge", mock.Anything, "VA100", alicePhone).Return(nil).Once()

		result, err := f.svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "Passw0rd!"})
		require.NoError(t, err)
		assert.Equal(t, StatusOTPSent, result.Status)
		assert.NotEmpty(t, result.ChallengeHandle)
		assert.NotEqual(t, "VA100", result.ChallengeHandle)

		stored := f.users.get(t, user.ID)
		require.NotNil(t, stored.OTPSessionID)
		assert.Equal(t, result.ChallengeHandle, *stored.OTPSessionID)
		f.provider.AssertExpectations(t)
	})

	t.Run("during cooldown", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.signUp(t)
		until := f.clock.Now().Add(7*time.Minute + 30*time.Second)
		f.mutate(t, user.ID, func(u *models.User) {
			u.TwoFactorAuth = models.Bool(false)
			u.OTPExpiry = &until
		})

		result, err := f.svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "Passw0rd!"})
		require.NoError(t, err)
		assert.Equal(t, StatusCooldown, result.Status)
		assert.Equal(t, 8, result.CooldownMinutes)
		f.provider.AssertNotCalled(t, "CreateSession", mock.Anything)
	})

	t.Run("gateway failure still returns the session", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.signUp(t)
		f.mutate(t, user.ID, func(u *models.User) { u.TwoFactorAuth = models.Bool(false) })

		f.provider.On("CreateSession", mock.Anything).Return("", otp.ErrUnavailable).Once()

		result, err := f.svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "Passw0rd!"})
		assert.ErrorIs(t, err, models.ErrGatewayUnavailable)
		require.NotNil(t, result)
		assert.NotEmpty(t, result.Token)

		stored := f.users.get(t, user.ID)
		assert.Nil(t, stored.OTPSessionID)
		assert.False(t, *stored.TwoFactorAuth)
	})
}

func TestAuthService_EmailConfirmation(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	user := f.signUp(t)

	alreadyVerified, err := f.svc.SendConfirmation(ctx, user)
	require.NoError(t, err)
	assert.False(t, alreadyVerified)

	mail := f.mailer.sent[0]
	assert.Equal(t, "alice@example.com", mail.to)
	assert.True(t, strings.Contains(mail.body, "verifyEmail/"))
	token := f.mailer.lastToken(t)

	stored := f.users.get(t, user.ID)
	require.NotNil(t, stored.ResetToken)
	assert.NotEqual(t, token, *stored.ResetToken)
	assert.Equal(t, HashToken(token), *stored.ResetToken)

	confirmed, session, err := f.svc.VerifyEmailToken(ctx, token)
	require.NoError(t, err)
	assert.True(t, confirmed.Active)
	assert.NotEmpty(t, session.Token)
	assert.Nil(t, f.users.get(t, user.ID).ResetToken)

	// the token is single use
	_, _, err = f.svc.VerifyEmailToken(ctx, token)
	assert.ErrorIs(t, err, models.ErrInvalidToken)

	alreadyVerified, err = f.svc.SendConfirmation(ctx, confirmed)
	require.NoError(t, err)
	assert.True(t, alreadyVerified)
	assert.Len(t, f.mailer.sent, 1)
}

func TestAuthService_VerifyEmailToken(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown token", func(t *testing.T) {
		f := newAuthFixture(t)
		f.signUp(t)

		_, _, err := f.svc.VerifyEmailToken(ctx, strings.Repeat("ab", 32))
		assert.ErrorIs(t, err, models.ErrInvalidToken)

		_, _, err = f.svc.VerifyEmailToken(ctx, "")
		assert.ErrorIs(t, err, models.ErrInvalidToken)
	})

	t.Run("already active account is left untouched", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.signUp(t)
		f.mutate(t, user.ID, func(u *models.User) { u.Active = true })

		require.NoError(t, f.svc.RequestPasswordReset(ctx, ForgotPasswordRequest{Email: "alice@example.com"}))
		token := f.mailer.lastToken(t)
		before := f.users.updates

		got, session, err := f.svc.VerifyEmailToken(ctx, token)
		require.NoError(t, err)
		assert.True(t, got.Active)
		assert.Empty(t, session.Token)
		assert.Equal(t, before, f.users.updates)
	})

	t.Run("expired token is cleared", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.signUp(t)

		_, err := f.svc.SendConfirmation(ctx, user)
		require.NoError(t, err)
		token := f.mailer.lastToken(t)

		f.clock.Advance(11 * time.Minute)

		_, _, err = f.svc.VerifyEmailToken(ctx, token)
		assert.ErrorIs(t, err, models.ErrExpired)
		assert.Nil(t, f.users.get(t, user.ID).ResetToken)

		_, _, err = f.svc.VerifyEmailToken(ctx, token)
		assert.ErrorIs(t, err, models.ErrInvalidToken)
	})
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		f := newAuthFixture(t)
		err := f.svc.RequestPasswordReset(ctx, ForgotPasswordRequest{Email: "nobody@example.com"})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("mail failure stores no token", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.signUp(t)
		f.mailer.err = errors.New("smtp down")

		err := f.svc.RequestPasswordReset(ctx, ForgotPasswordRequest{Email: "alice@example.com"})
		assert.ErrorIs(t, err, models.ErrMailUnavailable)
		assert.Nil(t, f.users.get(t, user.ID).ResetToken)
	})

	t.Run("a second request replaces the first token", func(t *testing.T) {
		f := newAuthFixture(t)
		f.signUp(t)

		require.NoError(t, f.svc.RequestPasswordReset(ctx, ForgotPasswordRequest{Email: "alice@example.com"}))
		first := f.mailer.lastToken(t)
		require.NoError(t, f.svc.RequestPasswordReset(ctx, ForgotPasswordRequest{Email: "alice@example.com"}))

		_, err := f.svc.ResetPassword(ctx, first, ResetPasswordRequest{Password: "N3wPassw0rd!", PasswordConfirm: "N3wPassw0rd!"})
		assert.ErrorIs(t, err, models.ErrInvalidToken)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	ctx := context.Background()
	newPassword := ResetPasswordRequest{Password: "N3wPassw0rd!", PasswordConfirm: "N3wPassw0rd!"}

	t.Run("success sends a challenge", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.signUp(t)
		f.mutate(t, user.ID, func(u *models.User) {
			u.Active = true
			u.TwoFactorAuth = models.Bool(true)
		})
		require.NoError(t, f.svc.RequestPasswordReset(ctx, ForgotPasswordRequest{Email: "alice@example.com"}))
		token := f.mailer.lastToken(t)

		f.provider.On("CreateSession", mock.Anything).Return("VA200", nil).Once()
		f.provider.On("StartChallenge", mock.Anything, "VA200", alicePhone).Return(nil).Once()

		result, err := f.svc.ResetPassword(ctx, token, newPassword)
		require.NoError(t, err)
		assert.Equal(t, StatusOTPSent, result.Status)
		assert.NotEmpty(t, result.Token)

		stored := f.users.get(t, user.ID)
		assert.False(t, stored.Active)
		assert.False(t, *stored.TwoFactorAuth)
		assert.Nil(t, stored.ResetToken)
		assert.True(t, verifyPassword("N3wPassw0rd!", stored.PasswordHash))
		f.provider.AssertExpectations(t)
	})

	t.Run("expired token fails twice", func(t *testing.T) {
		f := newAuthFixture(t)
		f.signUp(t)
		require.NoError(t, f.svc.RequestPasswordReset(ctx, ForgotPasswordRequest{Email: "alice@example.com"}))
		token := f.mailer.lastToken(t)

		f.clock.Advance(11 * time.Minute)

		_, err := f.svc.ResetPassword(ctx, token, newPassword)
		assert.ErrorIs(t, err, models.ErrExpired)

		_, err = f.svc.ResetPassword(ctx, token, newPassword)
		assert.ErrorIs(t, err, models.ErrInvalidToken)
	})

	t.Run("same password locks login until reset", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.signUp(t)
		f.mutate(t, user.ID, func(u *models.User) { u.Active = true })
		require.NoError(t, f.svc.RequestPasswordReset(ctx, ForgotPasswordRequest{Email: "alice@example.com"}))
		token := f.mailer.lastToken(t)

		_, err := f.svc.ResetPassword(ctx, token, ResetPasswordRequest{Password: "Passw0rd!", PasswordConfirm: "Passw0rd!"})
		assert.ErrorIs(t, err, models.ErrSamePassword)

		stored := f.users.get(t, user.ID)
		assert.False(t, stored.Active)
		assert.True(t, stored.PasswordSame)
		assert.NotNil(t, stored.ResetToken)

		_, err = f.svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "Passw0rd!"})
		assert.ErrorIs(t, err, models.ErrPasswordResetRequired)

		// the same link still works with a different password
		f.provider.On("CreateSession", mock.Anything).Return("VA300", nil).Once()
		f.provider.On("StartChallenge", mock.Anything, "VA300", alicePhone).Return(nil).Once()

		_, err = f.svc.ResetPassword(ctx, token, newPassword)
		require.NoError(t, err)
		assert.False(t, f.users.get(t, user.ID).PasswordSame)
	})
}

func TestAuthService_OTPLockout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	user := f.signUp(t)
	f.mutate(t, user.ID, func(u *models.User) { u.TwoFactorAuth = models.Bool(false) })

	f.provider.On("CreateSession", mock.Anything).Return("VA400", nil).Once()
	f.provider.On("StartChallenge", mock.Anything, "VA400", alicePhone).Return(nil).Once()

	result, err := f.svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "Passw0rd!"})
	require.NoError(t, err)
	require.Equal(t, StatusOTPSent, result.Status)
	handle := result.ChallengeHandle

	f.provider.On("CheckChallenge", mock.Anything, "VA400", alicePhone, mock.Anything).Return(otp.OutcomeRejected, nil).Twice()
	f.provider.On("CheckChallenge", mock.Anything, "VA400", alicePhone, mock.Anything).Return(otp.OutcomeExpired, nil).Once()

	_, err = f.svc.VerifyOTP(ctx, user, handle, OTPRequest{OTP: "111111"})
	assert.ErrorIs(t, err, models.ErrInvalidCode)
	_, err = f.svc.VerifyOTP(ctx, user, handle, OTPRequest{OTP: "222222"})
	assert.ErrorIs(t, err, models.ErrInvalidCode)
	_, err = f.svc.VerifyOTP(ctx, user, handle, OTPRequest{OTP: "333333"})
	assert.ErrorIs(t, err, models.ErrExpired)

	stored := f.users.get(t, user.ID)
	require.NotNil(t, stored.OTPExpiry)
	assert.Equal(t, f.clock.Now().Add(10*time.Minute), *stored.OTPExpiry)
	assert.Nil(t, stored.OTPSessionID)

	// the old handle is gone
	_, err = f.svc.VerifyOTP(ctx, &stored, handle, OTPRequest{OTP: "444444"})
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	cooldown, err := f.svc.RequestStandaloneOTP(ctx, &stored)
	require.NoError(t, err)
	assert.Equal(t, StatusCooldown, cooldown.Status)
	assert.Equal(t, 10, cooldown.CooldownMinutes)
	f.provider.AssertNumberOfCalls(t, "CreateSession", 1)

	f.clock.Advance(11 * time.Minute)
	f.provider.On("CreateSession", mock.Anything).Return("VA401", nil).Once()
	f.provider.On("StartChallenge", mock.Anything, "VA401", alicePhone).Return(nil).Once()

	again, err := f.svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "Passw0rd!"})
	require.NoError(t, err)
	assert.Equal(t, StatusOTPSent, again.Status)
	f.provider.AssertNumberOfCalls(t, "CreateSession", 2)
}

func TestAuthService_VerifyOTP(t *testing.T) {
	ctx := context.Background()

	issue := func(t *testing.T, f *authFixture, user *models.User, sid string) string {
		t.Helper()
		f.provider.On("CreateSession", mock.Anything).Return(sid, nil).Once()
		f.provider.On("StartChallenge", mock.Anything, sid, alicePhone).Return(nil).Once()
		result, err := f.svc.RequestStandaloneOTP(ctx, user)
		require.NoError(t, err)
		return result.ChallengeHandle
	}

	t.Run("approved code activates the account", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.signUp(t)
		handle := issue(t, f, user, "VA500")

		f.provider.On("CheckChallenge", mock.Anything, "VA500", alicePhone, "123456").Return(otp.OutcomeApproved, nil).Once()

		got, err := f.svc.VerifyOTP(ctx, user, handle, OTPRequest{OTP: "123456"})
		require.NoError(t, err)
		assert.True(t, got.Active)

		stored := f.users.get(t, user.ID)
		assert.True(t, stored.Active)
		assert.True(t, *stored.TwoFactorAuth)
		assert.Nil(t, stored.OTPSessionID)

		_, err = f.svc.RequestStandaloneOTP(ctx, &stored)
		assert.ErrorIs(t, err, models.ErrAlreadyVerified)
	})

	t.Run("someone else's challenge", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.signUp(t)
		handle := issue(t, f, user, "VA501")

		mallory, _, err := f.svc.SignUp(ctx, SignUpRequest{
			Email:           "mallory@example.com",
			Name:            "Mallory",
			PhoneNumber:     "08098765432",
			Password:        "Passw0rd!",
			PasswordConfirm: "Passw0rd!",
		})
		require.NoError(t, err)

		_, err = f.svc.VerifyOTP(ctx, mallory, handle, OTPRequest{OTP: "123456"})
		assert.ErrorIs(t, err, models.ErrUnauthorized)
		f.provider.AssertNotCalled(t, "CheckChallenge", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed code", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.signUp(t)

		_, err := f.svc.VerifyOTP(ctx, user, "anything", OTPRequest{OTP: "12ab"})
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestAuthService_Deletion(t *testing.T) {
	ctx := context.Background()
	creds := DeleteMeRequest{Password: "Passw0rd!", PasswordConfirm: "Passw0rd!"}

	t.Run("login before the deadline cancels it", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.signUp(t)

		deadline, err := f.svc.DeleteMe(ctx, user, creds)
		require.NoError(t, err)
		assert.Equal(t, f.clock.Now().Add(30*24*time.Hour), deadline)
		assert.True(t, f.users.get(t, user.ID).PendingDeletion)

		f.clock.Advance(24 * time.Hour)
		_, err = f.svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "Passw0rd!"})
		require.NoError(t, err)

		stored := f.users.get(t, user.ID)
		assert.False(t, stored.PendingDeletion)
		assert.Nil(t, stored.DeletionDeadline)
	})

	t.Run("login after the deadline removes the account", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.signUp(t)

		_, err := f.svc.DeleteMe(ctx, user, creds)
		require.NoError(t, err)

		f.clock.Advance(31 * 24 * time.Hour)
		_, err = f.svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "Passw0rd!"})
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)

		_, err = f.users.GetByID(ctx, user.ID)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("password confirmation must match", func(t *testing.T) {
		f := newAuthFixture(t)
		user := f.signUp(t)

		_, err := f.svc.DeleteMe(ctx, user, DeleteMeRequest{Password: "Passw0rd!", PasswordConfirm: "wrong"})
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
		assert.False(t, f.users.get(t, user.ID).PendingDeletion)
	})
}

func TestAuthService_UpdateMe(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	user := f.signUp(t)

	t.Run("rejects password fields", func(t *testing.T) {
		_, err := f.svc.UpdateMe(ctx, user, UpdateMeRequest{Password: "N3wPassw0rd!"})
		assert.ErrorIs(t, err, models.ErrValidation)
		assert.Contains(t, err.Error(), "not for password updates")
	})

	t.Run("updates the profile", func(t *testing.T) {
		name := "Alice Liddell"
		email := "Alice.L@Example.com"
		updated, err := f.svc.UpdateMe(ctx, user, UpdateMeRequest{Name: &name, Email: &email})
		require.NoError(t, err)

		assert.Equal(t, "Alice Liddell", updated.Name)
		assert.Equal(t, "alice.l@example.com", updated.Email)
		assert.Equal(t, alicePhone, updated.PhoneNumber)
		assert.Equal(t, "alice.l@example.com", f.users.get(t, user.ID).Email)
	})

	t.Run("invalid phone", func(t *testing.T) {
		phone := "12"
		_, err := f.svc.UpdateMe(ctx, user, UpdateMeRequest{PhoneNumber: &phone})
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestAuthService_UpdatePassword(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	user := f.signUp(t)

	_, err := f.svc.UpdatePassword(ctx, user, UpdatePasswordRequest{
		PasswordCurrent: "wrong",
		Password:        "N3wPassw0rd!",
		PasswordConfirm: "N3wPassw0rd!",
	})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, err = f.svc.UpdatePassword(ctx, user, UpdatePasswordRequest{
		PasswordCurrent: "Passw0rd!",
		Password:        "Passw0rd!",
		PasswordConfirm: "Passw0rd!",
	})
	assert.ErrorIs(t, err, models.ErrSamePassword)

	session, err := f.svc.UpdatePassword(ctx, user, UpdatePasswordRequest{
		PasswordCurrent: "Passw0rd!",
		Password:        "N3wPassw0rd!",
		PasswordConfirm: "N3wPassw0rd!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)

	_, err = f.svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "Passw0rd!"})
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	_, err = f.svc.Login(ctx, LoginRequest{Email: "alice@example.com", Password: "N3wPassw0rd!"})
	assert.NoError(t, err)
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture(t)
	user, session, err := f.svc.SignUp(ctx, SignUpRequest{
		Email:           "alice@example.com",
		Name:            "Alice",
		PhoneNumber:     "08012345678",
		Password:        "Passw0rd!",
		PasswordConfirm: "Passw0rd!",
	})
	require.NoError(t, err)

	got, err := f.svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = f.svc.Authenticate(ctx, "not-a-token")
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	require.NoError(t, f.users.Delete(ctx, user.ID))
	_, err = f.svc.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	// logout of a garbage token is a no-op
	assert.NoError(t, f.svc.Logout(ctx, "not-a-token"))
}
