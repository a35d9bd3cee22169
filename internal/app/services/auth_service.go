package services

import (
	"context"
	"time"

	"github.com/examplatform/backend/internal/app/models"
	"github.com/examplatform/backend/internal/app/models/dto"
	"github.com/examplatform/backend/internal/app/repositories"
	"github.com/examplatform/backend/internal/pkg/apperrors"
	"github.com/examplatform/backend/internal/pkg/auth"
	"github.com/examplatform/backend/internal/pkg/logger"
)

// AuthService handles registration, login and profile management
type AuthService struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	tokenTTL   time.Duration
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.IUserRepository, jwtService *auth.JWTService, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenTTL:   tokenTTL,
	}
}

// Register creates a new user account. Only the student and instructor roles
// may self-register; admin accounts come from seeding or other admins.
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	role, ok := models.ParseRoleType(req.RoleType)
	if !ok || role == models.RoleAdmin {
		return nil, apperrors.ErrInvalidRole
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleType:  role,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id

	logger.Info().Str("email", user.Email).Str("role", string(role)).Msg("User registered")
	return user, nil
}

// Login verifies credentials and issues a bearer token. Unknown emails and
// wrong passwords produce the same error so the endpoint does not leak which
// accounts exist.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.IssueFor(user.Email, []string{string(user.RoleType)})
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Email:     user.Email,
		Role:      string(user.RoleType),
		Token:     token,
		ExpiresIn: int(s.tokenTTL.Seconds()),
		Message:   "Login successful",
	}, nil
}

// GetProfile returns the account behind an email
func (s *AuthService) GetProfile(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// UpdateProfile applies a partial update to the actor's own account
func (s *AuthService) UpdateProfile(ctx context.Context, actor *models.User, req *dto.UpdateProfileRequest) (*models.User, error) {
	if req.Email != "" && req.Email != actor.Email {
		exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		actor.Email = req.Email
	}
	if req.Password != "" {
		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		actor.Password = hashed
	}
	if req.FirstName != "" {
		actor.FirstName = req.FirstName
	}
	if req.LastName != "" {
		actor.LastName = req.LastName
	}

	if err := s.userRepo.Update(ctx, actor); err != nil {
		return nil, err
	}
	return actor, nil
}
