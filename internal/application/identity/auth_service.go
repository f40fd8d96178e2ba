package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lifecurriculum/backend/internal/domain/family"
	"github.com/lifecurriculum/backend/internal/domain/identity"
	"github.com/lifecurriculum/backend/internal/domain/shared"
	"github.com/lifecurriculum/backend/internal/infrastructure/auth"
	"github.com/lifecurriculum/backend/internal/infrastructure/email"
)

// AuthServiceConfig contains token lifetimes for the auth flows
type AuthServiceConfig struct {
	RefreshTokenTTL  time.Duration
	VerificationTTL  time.Duration
	PasswordResetTTL time.Duration
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		RefreshTokenTTL:  7 * 24 * time.Hour,
		VerificationTTL:  24 * time.Hour,
		PasswordResetTTL: time.Hour,
	}
}

// AuthService handles registration, login and the token lifecycle
type AuthService struct {
	userRepo    identity.UserRepository
	refreshRepo identity.RefreshTokenRepository
	oneTimeRepo identity.OneTimeTokenRepository
	familyRepo  family.Repository
	jwtService  *auth.JWTService
	sender      email.Sender
	config      AuthServiceConfig
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	refreshRepo identity.RefreshTokenRepository,
	oneTimeRepo identity.OneTimeTokenRepository,
	familyRepo family.Repository,
	jwtService *auth.JWTService,
	sender email.Sender,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		refreshRepo: refreshRepo,
		oneTimeRepo: oneTimeRepo,
		familyRepo:  familyRepo,
		jwtService:  jwtService,
		sender:      sender,
		config:      config,
		logger:      logger,
	}
}

// Register creates a family with its first parent account and signs them in
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	fam, err := family.NewFamily(input.FamilyName)
	if err != nil {
		return nil, err
	}

	user, err := identity.NewUser(fam.ID, input.Email, input.Password, input.FirstName, input.LastName, identity.RoleParent)
	if err != nil {
		return nil, err
	}

	if err := s.familyRepo.Create(ctx, fam); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Do not leave an empty family behind.
		if cleanupErr := s.familyRepo.Delete(ctx, fam.ID); cleanupErr != nil {
			s.logger.Error("Failed to clean up family after registration failure",
				zap.String("family_id", fam.ID.String()),
				zap.Error(cleanupErr),
			)
		}
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
		}
		return nil, err
	}

	s.logger.Info("Family registered",
		zap.String("family_id", fam.ID.String()),
		zap.String("user_id", user.ID.String()),
	)

	if err := s.sendVerification(ctx, user); err != nil {
		// Registration still succeeds; the user can request another email.
		s.logger.Warn("Failed to send verification email",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Tokens: *tokens, User: toUserInfo(user)}, nil
}

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
		}
		return nil, err
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	user.RecordLogin(time.Now())
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to record login time", zap.Error(err))
	}

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{Tokens: *tokens, User: toUserInfo(user)}, nil
}

// Refresh rotates a refresh token and returns a new token pair. The
// presented token is revoked whether or not rotation succeeds.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	stored, err := s.refreshRepo.FindByHash(ctx, auth.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}

	if err := stored.Validate(); err != nil {
		return nil, err
	}

	stored.Revoke()
	if err := s.refreshRepo.Update(ctx, stored); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, err
	}
	if !user.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the presented refresh token. Unknown tokens are
// ignored so logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	stored, err := s.refreshRepo.FindByHash(ctx, auth.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}

	stored.Revoke()
	return s.refreshRepo.Update(ctx, stored)
}

// VerifyEmail consumes a verification token and marks the account verified
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	stored, err := s.oneTimeRepo.FindValidByHash(ctx, identity.PurposeEmailVerification, auth.HashToken(token))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_TOKEN", "Verification link is invalid or has expired")
		}
		return err
	}

	if err := stored.Consume(); err != nil {
		return err
	}
	if err := s.oneTimeRepo.Update(ctx, stored); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return err
	}

	user.MarkEmailVerified()
	return s.userRepo.Update(ctx, user)
}

// ResendVerification sends a fresh verification email
func (s *AuthService) ResendVerification(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return shared.NewDomainError("ALREADY_VERIFIED", "Email address is already verified")
	}
	return s.sendVerification(ctx, user)
}

// RequestPasswordReset creates a reset token and emails it. It reports
// success for unknown addresses so the endpoint does not leak which
// emails have accounts.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Info("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	if err := s.oneTimeRepo.InvalidateForUser(ctx, user.ID, identity.PurposePasswordReset); err != nil {
		return err
	}

	token, err := auth.GenerateOpaqueToken()
	if err != nil {
		return err
	}

	record := identity.NewOneTimeToken(user.ID, identity.PurposePasswordReset, auth.HashToken(token), s.config.PasswordResetTTL)
	if err := s.oneTimeRepo.Create(ctx, record); err != nil {
		return err
	}

	return s.sender.SendPasswordReset(user.Email, token)
}

// ResetPassword consumes a reset token and sets the new password. All
// existing refresh tokens for the user are revoked.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	stored, err := s.oneTimeRepo.FindValidByHash(ctx, identity.PurposePasswordReset, auth.HashToken(token))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("INVALID_TOKEN", "Reset link is invalid or has expired")
		}
		return err
	}

	if err := stored.Consume(); err != nil {
		return err
	}
	if err := s.oneTimeRepo.Update(ctx, stored); err != nil {
		return err
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return err
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return s.refreshRepo.RevokeAllForUser(ctx, user.ID)
}

// ChangePassword verifies the current password and sets the new one
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return err
	}

	if !user.VerifyPassword(input.CurrentPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}

	if err := user.SetPassword(input.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	return s.refreshRepo.RevokeAllForUser(ctx, user.ID)
}

// CurrentUser returns the authenticated user's profile
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(user)
	return &info, nil
}

// AddCaregiver creates a caregiver account in an existing family
func (s *AuthService) AddCaregiver(ctx context.Context, input AddCaregiverInput) (*UserInfo, error) {
	if _, err := s.familyRepo.FindByID(ctx, input.FamilyID); err != nil {
		return nil, err
	}

	user, err := identity.NewUser(input.FamilyID, input.Email, input.Password, input.FirstName, input.LastName, identity.RoleCaregiver)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
		}
		return nil, err
	}

	if err := s.sendVerification(ctx, user); err != nil {
		s.logger.Warn("Failed to send verification email",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	info := toUserInfo(user)
	return &info, nil
}

// issueTokens creates an access token and a stored refresh token
func (s *AuthService) issueTokens(ctx context.Context, user *identity.User) (*TokenPair, error) {
	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(auth.GenerateTokenInput{
		FamilyID: user.FamilyID,
		UserID:   user.ID,
		Email:    user.Email,
		Role:     string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	refreshToken, err := auth.GenerateOpaqueToken()
	if err != nil {
		return nil, err
	}

	refreshExpiresAt := time.Now().Add(s.config.RefreshTokenTTL)
	record := identity.NewRefreshToken(user.ID, auth.HashToken(refreshToken), refreshExpiresAt)
	if err := s.refreshRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshTokenExpiresAt: refreshExpiresAt,
		TokenType:             "Bearer",
	}, nil
}

func (s *AuthService) sendVerification(ctx context.Context, user *identity.User) error {
	if err := s.oneTimeRepo.InvalidateForUser(ctx, user.ID, identity.PurposeEmailVerification); err != nil {
		return err
	}

	token, err := auth.GenerateOpaqueToken()
	if err != nil {
		return err
	}

	record := identity.NewOneTimeToken(user.ID, identity.PurposeEmailVerification, auth.HashToken(token), s.config.VerificationTTL)
	if err := s.oneTimeRepo.Create(ctx, record); err != nil {
		return err
	}

	return s.sender.SendVerification(user.Email, token)
}

func toUserInfo(user *identity.User) UserInfo {
	return UserInfo{
		ID:            user.ID,
		FamilyID:      user.FamilyID,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Role:          string(user.Role),
		EmailVerified: user.EmailVerified,
		CreatedAt:     user.CreatedAt,
		LastLoginAt:   user.LastLoginAt,
	}
}
