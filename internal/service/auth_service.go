package service

import (
	"errors"
	"time"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"
	"go-pos-backend/pkg/jwt"

	"gorm.io/gorm"
)

type AuthService interface {
	CheckCredentials(username, password string) (*model.User, error)
	Login(username, password string) (*LoginResponse, error)
	ValidateToken(tokenString string) (*jwt.Claims, error)
	ResetPassword(username, newPassword string) error
}

type LoginResponse struct {
	Message string             `json:"message"`
	Token   string             `json:"token"`
	User    model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	secret   []byte
	ttl      time.Duration
}

func NewAuthService(userRepo repository.UserRepository, secret string, ttl time.Duration) AuthService {
	return &authService{
		userRepo: userRepo,
		secret:   []byte(secret),
		ttl:      ttl,
	}
}

// CheckCredentials verifies a username/password pair against the stored hash.
func (s *authService) CheckCredentials(username, password string) (*model.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login checks credentials and issues a signed token. Routes only demand the token when REQUIRE_AUTH is set.
func (s *authService) Login(username, password string) (*LoginResponse, error) {
	user, err := s.CheckCredentials(username, password)
	if err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(s.secret, s.ttl, user.ID, user.Username)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	return &LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user.ToResponse(),
	}, nil
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Claims, error) {
	claims, err := jwt.ValidateToken(s.secret, tokenString)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(claims.UserID); err != nil {
		return nil, translateDBError(err, ErrUserNotFound)
	}
	return claims, nil
}

func (s *authService) ResetPassword(username, newPassword string) error {
	if newPassword == "" {
		return validationError("new password is required")
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return translateDBError(err, ErrUserNotFound)
	}

	if err := user.SetPassword(newPassword); err != nil {
		return errors.New("failed to hash new password")
	}
	return translateDBError(s.userRepo.UpdatePassword(user.ID, user.Password), ErrUserNotFound)
}
