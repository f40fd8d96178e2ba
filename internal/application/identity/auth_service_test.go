package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lifecurriculum/backend/internal/domain/family"
	"github.com/lifecurriculum/backend/internal/domain/identity"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/lifecurriculum/backend/internal/infrastructure/auth"
	"github.com/lifecurriculum/backend/internal/infrastructure/config"
)

// =============================================================================
// Mock Repositories
// =============================================================================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ListByFamily(ctx context.Context, familyID uuid.UUID) ([]*identity.User, error) {
	args := m.Called(ctx, familyID)
	return args.Get(0).([]*identity.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRefreshTokenRepository struct {
	mock.Mock
}

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *identity.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) FindByHash(ctx context.Context, tokenHash string) (*identity.RefreshToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Update(ctx context.Context, token *identity.RefreshToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockOneTimeTokenRepository struct {
	mock.Mock
}

func (m *MockOneTimeTokenRepository) Create(ctx context.Context, token *identity.OneTimeToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockOneTimeTokenRepository) FindValidByHash(ctx context.Context, purpose identity.TokenPurpose, tokenHash string) (*identity.OneTimeToken, error) {
	args := m.Called(ctx, purpose, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.OneTimeToken), args.Error(1)
}

func (m *MockOneTimeTokenRepository) Update(ctx context.Context, token *identity.OneTimeToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockOneTimeTokenRepository) InvalidateForUser(ctx context.Context, userID uuid.UUID, purpose identity.TokenPurpose) error {
	args := m.Called(ctx, userID, purpose)
	return args.Error(0)
}

type MockFamilyRepository struct {
	mock.Mock
}

func (m *MockFamilyRepository) Create(ctx context.Context, f *family.Family) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFamilyRepository) FindByID(ctx context.Context, id uuid.UUID) (*family.Family, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*family.Family), args.Error(1)
}

func (m *MockFamilyRepository) Update(ctx context.Context, f *family.Family) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFamilyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// recordingSender captures outgoing emails for assertions
type recordingSender struct {
	verifications []string
	resets        []string
}

func (s *recordingSender) SendVerification(to, token string) error {
	s.verifications = append(s.verifications, to)
	return nil
}

func (s *recordingSender) SendPasswordReset(to, token string) error {
	s.resets = append(s.resets, to)
	return nil
}

// =============================================================================
// Helpers
// =============================================================================

func newTestAuthService(
	userRepo *MockUserRepository,
	refreshRepo *MockRefreshTokenRepository,
	oneTimeRepo *MockOneTimeTokenRepository,
	familyRepo *MockFamilyRepository,
	sender *recordingSender,
) *AuthService {
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-that-is-long-enough",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "test",
	})
	return NewAuthService(userRepo, refreshRepo, oneTimeRepo, familyRepo, jwtService, sender, DefaultAuthServiceConfig(), zap.NewNop())
}

func newTestUser(t *testing.T, password string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(uuid.New(), "parent@example.com", password, "Sam", "Rivera", identity.RoleParent)
	require.NoError(t, err)
	return user
}

// =============================================================================
// Tests
// =============================================================================

func TestDefaultAuthServiceConfig(t *testing.T) {
	cfg := DefaultAuthServiceConfig()

	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	// verification links are good for one day, reset links for one hour
	assert.Equal(t, 24*time.Hour, cfg.VerificationTTL)
	assert.Equal(t, time.Hour, cfg.PasswordResetTTL)
}

func TestAuthService_Register(t *testing.T) {
	userRepo := new(MockUserRepository)
	refreshRepo := new(MockRefreshTokenRepository)
	oneTimeRepo := new(MockOneTimeTokenRepository)
	familyRepo := new(MockFamilyRepository)
	sender := &recordingSender{}
	svc := newTestAuthService(userRepo, refreshRepo, oneTimeRepo, familyRepo, sender)

	familyRepo.On("Create", mock.Anything, mock.AnythingOfType("*family.Family")).Return(nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)
	oneTimeRepo.On("InvalidateForUser", mock.Anything, mock.Anything, identity.PurposeEmailVerification).Return(nil)
	oneTimeRepo.On("Create", mock.Anything, mock.AnythingOfType("*identity.OneTimeToken")).Return(nil)
	refreshRepo.On("Create", mock.Anything, mock.AnythingOfType("*identity.RefreshToken")).Return(nil)

	result, err := svc.Register(context.Background(), RegisterInput{
		FamilyName: "The Riveras",
		Email:      "parent@example.com",
		Password:   "correct horse battery",
		FirstName:  "Sam",
		LastName:   "Rivera",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	assert.Equal(t, "Bearer", result.Tokens.TokenType)
	assert.Equal(t, "parent@example.com", result.User.Email)
	assert.Equal(t, "parent", result.User.Role)
	assert.False(t, result.User.EmailVerified)
	assert.Equal(t, []string{"parent@example.com"}, sender.verifications)

	familyRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmailCleansUpFamily(t *testing.T) {
	userRepo := new(MockUserRepository)
	refreshRepo := new(MockRefreshTokenRepository)
	oneTimeRepo := new(MockOneTimeTokenRepository)
	familyRepo := new(MockFamilyRepository)
	svc := newTestAuthService(userRepo, refreshRepo, oneTimeRepo, familyRepo, &recordingSender{})

	familyRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(shared.ErrAlreadyExists)
	familyRepo.On("Delete", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Register(context.Background(), RegisterInput{
		FamilyName: "The Riveras",
		Email:      "parent@example.com",
		Password:   "correct horse battery",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
	familyRepo.AssertCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	userRepo := new(MockUserRepository)
	refreshRepo := new(MockRefreshTokenRepository)
	oneTimeRepo := new(MockOneTimeTokenRepository)
	familyRepo := new(MockFamilyRepository)
	svc := newTestAuthService(userRepo, refreshRepo, oneTimeRepo, familyRepo, &recordingSender{})

	user := newTestUser(t, "correct horse battery")
	userRepo.On("FindByEmail", mock.Anything, "parent@example.com").Return(user, nil)
	userRepo.On("Update", mock.Anything, user).Return(nil)
	refreshRepo.On("Create", mock.Anything, mock.AnythingOfType("*identity.RefreshToken")).Return(nil)

	result, err := svc.Login(context.Background(), LoginInput{
		Email:    "parent@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotNil(t, user.LastLoginAt)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository), new(MockOneTimeTokenRepository), new(MockFamilyRepository), &recordingSender{})

	user := newTestUser(t, "correct horse battery")
	userRepo.On("FindByEmail", mock.Anything, "parent@example.com").Return(user, nil)

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "parent@example.com",
		Password: "wrong",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_UnknownEmailSameError(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository), new(MockOneTimeTokenRepository), new(MockFamilyRepository), &recordingSender{})

	userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, shared.ErrNotFound)

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	userRepo := new(MockUserRepository)
	refreshRepo := new(MockRefreshTokenRepository)
	svc := newTestAuthService(userRepo, refreshRepo, new(MockOneTimeTokenRepository), new(MockFamilyRepository), &recordingSender{})

	user := newTestUser(t, "correct horse battery")
	presented := "opaque-refresh-token"
	stored := identity.NewRefreshToken(user.ID, auth.HashToken(presented), time.Now().Add(time.Hour))

	refreshRepo.On("FindByHash", mock.Anything, auth.HashToken(presented)).Return(stored, nil)
	refreshRepo.On("Update", mock.Anything, stored).Return(nil)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	refreshRepo.On("Create", mock.Anything, mock.AnythingOfType("*identity.RefreshToken")).Return(nil)

	pair, err := svc.Refresh(context.Background(), presented)
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEqual(t, presented, pair.RefreshToken)
	assert.NotNil(t, stored.RevokedAt)
}

func TestAuthService_Refresh_ExpiredToken(t *testing.T) {
	refreshRepo := new(MockRefreshTokenRepository)
	svc := newTestAuthService(new(MockUserRepository), refreshRepo, new(MockOneTimeTokenRepository), new(MockFamilyRepository), &recordingSender{})

	presented := "expired-token"
	stored := identity.NewRefreshToken(uuid.New(), auth.HashToken(presented), time.Now().Add(-time.Hour))
	refreshRepo.On("FindByHash", mock.Anything, auth.HashToken(presented)).Return(stored, nil)

	_, err := svc.Refresh(context.Background(), presented)
	assert.ErrorIs(t, err, shared.ErrTokenExpired)
}

func TestAuthService_Logout_UnknownTokenIsNoop(t *testing.T) {
	refreshRepo := new(MockRefreshTokenRepository)
	svc := newTestAuthService(new(MockUserRepository), refreshRepo, new(MockOneTimeTokenRepository), new(MockFamilyRepository), &recordingSender{})

	refreshRepo.On("FindByHash", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

	assert.NoError(t, svc.Logout(context.Background(), "unknown"))
}

func TestAuthService_VerifyEmail(t *testing.T) {
	userRepo := new(MockUserRepository)
	oneTimeRepo := new(MockOneTimeTokenRepository)
	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository), oneTimeRepo, new(MockFamilyRepository), &recordingSender{})

	user := newTestUser(t, "correct horse battery")
	token := "verification-token"
	stored := identity.NewOneTimeToken(user.ID, identity.PurposeEmailVerification, auth.HashToken(token), time.Hour)

	oneTimeRepo.On("FindValidByHash", mock.Anything, identity.PurposeEmailVerification, auth.HashToken(token)).Return(stored, nil)
	oneTimeRepo.On("Update", mock.Anything, stored).Return(nil)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Update", mock.Anything, user).Return(nil)

	require.NoError(t, svc.VerifyEmail(context.Background(), token))
	assert.True(t, user.EmailVerified)
	assert.NotNil(t, stored.UsedAt)
}

func TestAuthService_RequestPasswordReset_UnknownEmailSilent(t *testing.T) {
	userRepo := new(MockUserRepository)
	sender := &recordingSender{}
	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository), new(MockOneTimeTokenRepository), new(MockFamilyRepository), sender)

	userRepo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, shared.ErrNotFound)

	require.NoError(t, svc.RequestPasswordReset(context.Background(), "nobody@example.com"))
	assert.Empty(t, sender.resets)
}

func TestAuthService_ResetPassword_RevokesSessions(t *testing.T) {
	userRepo := new(MockUserRepository)
	refreshRepo := new(MockRefreshTokenRepository)
	oneTimeRepo := new(MockOneTimeTokenRepository)
	svc := newTestAuthService(userRepo, refreshRepo, oneTimeRepo, new(MockFamilyRepository), &recordingSender{})

	user := newTestUser(t, "old password here")
	token := "reset-token"
	stored := identity.NewOneTimeToken(user.ID, identity.PurposePasswordReset, auth.HashToken(token), time.Hour)

	oneTimeRepo.On("FindValidByHash", mock.Anything, identity.PurposePasswordReset, auth.HashToken(token)).Return(stored, nil)
	oneTimeRepo.On("Update", mock.Anything, stored).Return(nil)
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	userRepo.On("Update", mock.Anything, user).Return(nil)
	refreshRepo.On("RevokeAllForUser", mock.Anything, user.ID).Return(nil)

	require.NoError(t, svc.ResetPassword(context.Background(), token, "brand new password"))
	assert.True(t, user.VerifyPassword("brand new password"))
	refreshRepo.AssertCalled(t, "RevokeAllForUser", mock.Anything, user.ID)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(userRepo, new(MockRefreshTokenRepository), new(MockOneTimeTokenRepository), new(MockFamilyRepository), &recordingSender{})

	user := newTestUser(t, "actual password")
	userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	err := svc.ChangePassword(context.Background(), ChangePasswordInput{
		UserID:          user.ID,
		CurrentPassword: "not it",
		NewPassword:     "new password here",
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}
