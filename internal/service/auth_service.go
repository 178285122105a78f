package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-mesinkasir/internal/model"
	"go-mesinkasir/internal/repository"
	"go-mesinkasir/pkg/jwt"
)

type AuthService interface {
	Login(req *LoginRequest) (*LoginResponse, error)
	LoginWithPIN(req *PINLoginRequest) (*LoginResponse, error)
	Me(userID uint) (*model.UserResponse, error)
	ResetPassword(username, newPassword string) error
	ResetPIN(username, pin string) error
}

type LoginRequest struct {
	Username *string `json:"username" validate:"required,max=255"`
	Password *string `json:"password" validate:"required"`
}

type PINLoginRequest struct {
	Username *string `json:"username" validate:"required,max=255"`
	PIN      *string `json:"pin" validate:"required,numeric,min=4,max=8"`
}

type LoginResponse struct {
	Token     string             `json:"token"`
	TokenType string             `json:"token_type"`
	ExpiresIn int64              `json:"expires_in"`
	User      model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		now:      time.Now,
	}
}

func (s *authService) Login(req *LoginRequest) (*LoginResponse, error) {
	v := validateRequest(req)
	requireText(v, "username", req.Username)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(strings.TrimSpace(*req.Username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.CheckPassword(*req.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.startSession(user)
}

func (s *authService) LoginWithPIN(req *PINLoginRequest) (*LoginResponse, error) {
	v := validateRequest(req)
	requireText(v, "username", req.Username)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(strings.TrimSpace(*req.Username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidPIN
	}
	if err != nil {
		return nil, err
	}

	if !user.CheckPIN(*req.PIN) {
		return nil, ErrInvalidPIN
	}
	return s.startSession(user)
}

// startSession rotates the token version so older tokens of the user stop
// working, then issues a new token.
func (s *authService) startSession(user *model.User) (*LoginResponse, error) {
	if !user.Active {
		return nil, ErrUserInactive
	}

	now := s.now()
	user.TokenVersion = uuid.New().String()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Username, user.Name, user.Role, user.TokenVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
		User:      user.ToResponse(),
	}, nil
}

func (s *authService) Me(userID uint) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

// ResetPassword also logs the user out everywhere.
func (s *authService) ResetPassword(username, newPassword string) error {
	if len(newPassword) < 6 {
		return errors.New("password must be at least 6 characters")
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return fmt.Errorf("user %q: %w", username, err)
	}

	if err := user.SetPassword(newPassword); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(user.ID, user.Password); err != nil {
		return err
	}
	return s.userRepo.UpdateTokenVersion(user.ID, uuid.New().String())
}

func (s *authService) ResetPIN(username, pin string) error {
	v := validateRequest(&PINLoginRequest{Username: &username, PIN: &pin})
	if msgs := v.Fields["pin"]; len(msgs) > 0 {
		return errors.New(msgs[0])
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return fmt.Errorf("user %q: %w", username, err)
	}

	if err := user.SetPIN(pin); err != nil {
		return fmt.Errorf("failed to hash pin: %w", err)
	}
	return s.userRepo.UpdatePinHash(user.ID, *user.PinHash)
}
