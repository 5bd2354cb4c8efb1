// File: internal/auth/service.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"clinic_backend/internal/common"
	"clinic_backend/internal/platform/crypto"
	"clinic_backend/internal/shared"
	"clinic_backend/internal/user"

	"go.uber.org/zap"
)

// Service implements the authentication flows: registration, login and
// Google sign-in.
type Service struct {
	users        user.Repository
	tokenService shared.TokenService
	google       GoogleVerifier
	logger       *zap.Logger
}

// NewService creates a new auth service.
func NewService(
	users user.Repository,
	tokenService shared.TokenService,
	google GoogleVerifier,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:        users,
		tokenService: tokenService,
		google:       google,
		logger:       logger.Named("AuthService"),
	}
}

// Register creates a patient account. When a placeholder patient already
// exists under the same email (created by an anonymous booking), the
// registration merges into it: name and password are overwritten and the
// existing record, with its appointments, becomes the real account.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*user.User, *shared.TokenResponse, error) {
	hashedPassword, err := common.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", zap.Error(err))
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	existing, err := s.users.FindByEmailAndRole(ctx, req.Email, common.RolePatient)
	switch {
	case err == nil:
		existing.Name = req.Name
		existing.PasswordHash = hashedPassword
		if err := s.users.Update(ctx, existing); err != nil {
			return nil, nil, err
		}
		s.logger.Info("Registration merged into existing patient record",
			zap.String("userID", existing.ID.Hex()))
		return s.withToken(existing)

	case errors.Is(err, common.ErrNotFound):
		newUser := &user.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hashedPassword,
			Role:         common.RolePatient,
		}
		if err := s.users.Create(ctx, newUser); err != nil {
			return nil, nil, err
		}
		s.logger.Info("User registered", zap.String("userID", newUser.ID.Hex()))
		return s.withToken(newUser)

	default:
		return nil, nil, fmt.Errorf("failed to check existing user by email: %w", err)
	}
}

// Login authenticates by email and password. An unknown email is NotFound,
// a wrong password Unauthorized.
func (s *Service) Login(ctx context.Context, email, password string) (*user.User, *shared.TokenResponse, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, common.ErrNotFound.WithDetails("User not found.")
		}
		s.logger.Error("Error finding user by email during login", zap.Error(err))
		return nil, nil, common.ErrInternalServer.WithDetails("Login failed due to an internal error.")
	}

	if !common.CheckPasswordHash(password, u.PasswordHash) {
		return nil, nil, common.ErrUnauthorized.WithDetails("Invalid credentials.")
	}

	return s.withToken(u)
}

// GoogleSignIn verifies an externally-issued ID token and upserts a patient
// account for the verified email. An existing account under a non-patient
// role is demoted to patient for the duration of this flow; the session is
// always issued with the patient role.
func (s *Service) GoogleSignIn(ctx context.Context, rawToken string) (*user.User, *shared.TokenResponse, error) {
	if s.google == nil {
		return nil, nil, common.NewAPIError(503, "SERVICE_UNAVAILABLE", "Google sign-in is not configured.")
	}

	profile, err := s.google.Verify(ctx, rawToken)
	if err != nil {
		s.logger.Warn("Google token verification failed", zap.Error(err))
		return nil, nil, common.ErrUnauthorized.WithDetails("Google authentication failed.")
	}
	if profile.Email == "" {
		return nil, nil, common.ErrBadRequest.WithDetails("Email not provided by Google.")
	}

	name := profile.Name
	if name == "" {
		name = strings.SplitN(profile.Email, "@", 2)[0]
	}

	u, err := s.users.FindByEmail(ctx, profile.Email)
	switch {
	case errors.Is(err, common.ErrNotFound):
		randomPassword, err := crypto.GenerateSecureRandomString(32)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to generate password: %w", err)
		}
		hashedPassword, err := common.HashPassword(randomPassword)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to hash password: %w", err)
		}
		u = &user.User{
			Name:         name,
			Email:        profile.Email,
			PasswordHash: hashedPassword,
			Role:         common.RolePatient,
		}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, nil, err
		}
		s.logger.Info("Patient account created via Google sign-in", zap.String("userID", u.ID.Hex()))

	case err != nil:
		return nil, nil, fmt.Errorf("failed to look up user by email: %w", err)

	default:
		if u.Role != common.RolePatient {
			s.logger.Info("Demoting account to patient for Google sign-in",
				zap.String("userID", u.ID.Hex()),
				zap.String("previousRole", u.Role.String()))
			u.Role = common.RolePatient
			if u.Name == "" {
				u.Name = name
			}
			if err := s.users.Update(ctx, u); err != nil {
				return nil, nil, err
			}
		}
	}

	return s.withToken(u)
}

func (s *Service) withToken(u *user.User) (*user.User, *shared.TokenResponse, error) {
	token, expiresAt, err := s.tokenService.GenerateToken(u)
	if err != nil {
		s.logger.Error("Failed to generate session token", zap.Error(err), zap.String("userID", u.ID.Hex()))
		return nil, nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return u, &shared.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
	}, nil
}
