package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	autherrors "github.com/Anuradha654321/faculty-leave-system/internal/auth/errors"
	"github.com/Anuradha654321/faculty-leave-system/internal/directory"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
}

type service struct {
	users     directory.Repository
	jwtSecret string
	tokenTTL  time.Duration
	logger    *zap.Logger
}

// NewService wires login against the faculty directory. Accounts are
// provisioned by the institution, so there is no self-registration.
func NewService(users directory.Repository, jwtSecret string, tokenTTL time.Duration, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if tokenTTL <= 0 {
		tokenTTL = 8 * time.Hour
	}
	return &service{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (string, AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", AuthResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login lookup failed", zap.Error(err))
		return "", AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Warn("login password mismatch", zap.String("email", email))
		return "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if user.Status != directory.StatusActive {
		return "", AuthResponse{}, autherrors.ErrAccountInactive
	}

	token, err := s.generateToken(user)
	if err != nil {
		s.logger.Error("login token generation failed", zap.Error(err))
		return "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role),
	)
	return token, mapToAuthResponse(user), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrUserNotFound
		}
		return nil, err
	}

	resp := mapToAuthResponse(user)
	return &resp, nil
}

func (s *service) generateToken(user *directory.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"dept_id": user.DeptID.String(),
		"role":    user.Role,
		"name":    user.FullName(),
		"iat":     now.Unix(),
		"exp":     now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func mapToAuthResponse(user *directory.User) AuthResponse {
	return AuthResponse{
		ID:     user.ID.String(),
		Email:  user.Email,
		Name:   user.FullName(),
		Role:   user.Role,
		DeptID: user.DeptID.String(),
	}
}
