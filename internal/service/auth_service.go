package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/Risingdell/Placement-mangement/internal/config"
	"github.com/Risingdell/Placement-mangement/internal/models"
	"github.com/Risingdell/Placement-mangement/internal/repository"
	"github.com/Risingdell/Placement-mangement/pkg/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account has been deactivated")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Authenticate(ctx context.Context, tokenString string) (models.CurrentUser, error)
	GetMe(ctx context.Context, userID string) (*models.StudentProfile, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	cfg       config.AuthConfig
	logger    zerolog.Logger
	now       func() time.Time
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenRepo repository.TokenRepository,
	cfg config.AuthConfig,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := &models.User{
		ID:           uuid.New().String(),
		USN:          req.USN,
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         models.RoleStudent.String(),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Phone != "" {
		user.Phone = &req.Phone
	}

	academics := &models.StudentAcademics{
		UserID:    user.ID,
		Branch:    req.Branch,
		BatchYear: req.BatchYear,
		UpdatedAt: now,
	}

	if err := s.userRepo.CreateWithAcademics(ctx, user, academics); err != nil {
		if err == repository.ErrDuplicateUser {
			return nil, reject("User with this USN or email already exists")
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("usn", user.USN).
		Msg("Student registered")

	return user, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &models.LoginResponse{
		Token: token,
		User:  *user,
	}, nil
}

// Authenticate resolves a bearer token to the current user, rejecting
// disabled accounts and deleted users.
func (s *authService) Authenticate(ctx context.Context, tokenString string) (models.CurrentUser, error) {
	claims := jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return models.CurrentUser{}, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.Subject)
	if err != nil {
		return models.CurrentUser{}, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return models.CurrentUser{}, ErrInvalidToken
	}
	if !user.IsActive {
		return models.CurrentUser{}, ErrAccountDisabled
	}

	return models.CurrentUser{
		ID:       user.ID,
		Role:     user.Role,
		IsPlaced: user.IsPlaced,
	}, nil
}

func (s *authService) GetMe(ctx context.Context, userID string) (*models.StudentProfile, error) {
	profile, err := s.userRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}

// ForgotPassword issues a single-use reset token. The caller always
// gets an opaque success so account existence is never revealed; the
// raw token is returned only when the deployment enables it (dev).
func (s *authService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return "", nil
	}

	rawToken, err := utils.GenerateSecureToken(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	now := s.now()
	token := &models.PasswordResetToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TokenHash: utils.HashToken(rawToken),
		ExpiresAt: now.Add(s.cfg.ResetTokenTTL),
		CreatedAt: now,
	}

	if err := s.tokenRepo.Issue(ctx, token); err != nil {
		return "", fmt.Errorf("failed to issue reset token: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Msg("Password reset token issued")

	if s.cfg.RevealResetTok {
		return rawToken, nil
	}
	return "", nil
}

func (s *authService) ResetPassword(ctx context.Context, token, newPassword string) error {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	ok, err := s.tokenRepo.Consume(ctx, utils.HashToken(token), string(passwordHash))
	if err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}
	if !ok {
		return reject("Invalid or expired reset token")
	}

	return nil
}

func (s *authService) issueToken(userID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
