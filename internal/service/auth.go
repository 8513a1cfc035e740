package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/haven/api/internal/model"
	"github.com/forgo/haven/api/pkg/jwt"
)

const (
	// bcrypt cost factor (10-14 recommended for production)
	bcryptCost = 12

	// Password constraints
	minPasswordLength = 8
	maxPasswordLength = 128

	maxUsernameLength = 32
)

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// TokenSigner issues and validates access tokens
type TokenSigner interface {
	Sign(claims jwt.Claims) (string, error)
	Validate(token string) (*jwt.Claims, error)
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo UserRepository
	signer   TokenSigner
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo UserRepository
	Signer   TokenSigner
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		userRepo: cfg.UserRepo,
		signer:   cfg.Signer,
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

// AuthResult represents a successful registration or login
type AuthResult struct {
	User        *model.User
	AccessToken string
}

// Register creates a new user account with email/password
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(username) > maxUsernameLength {
		return nil, ErrUsernameTooLong
	}

	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:    username,
		Email:       email,
		Hash:        &hash,
		DisplayName: stringPtr(strings.TrimSpace(req.DisplayName)),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if isDuplicateError(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	token, err := s.signer.Sign(jwt.Claims{
		Subject:  user.ID,
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, AccessToken: token}, nil
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string
	Password string
}

// Login authenticates a user with email/password
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	// Bot accounts authenticate with tokens, never passwords
	if user.IsBot() || user.Hash == nil || *user.Hash == "" {
		return nil, ErrInvalidCredentials
	}

	if !checkPassword(req.Password, *user.Hash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.signer.Sign(jwt.Claims{
		Subject:  user.ID,
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
	})
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, AccessToken: token}, nil
}

// GetUserByID retrieves a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ValidateAccessToken validates an access token and returns the claims
func (s *AuthService) ValidateAccessToken(token string) (*model.TokenClaims, error) {
	claims, err := s.signer.Validate(token)
	if err != nil {
		return nil, err
	}

	return &model.TokenClaims{
		UserID:   claims.UserID,
		Email:    claims.Email,
		Username: claims.Username,
	}, nil
}

// Helper functions

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func isValidEmail(email string) bool {
	// Basic email validation
	if email == "" {
		return false
	}
	if len(email) > 254 {
		return false
	}
	atIndex := strings.Index(email, "@")
	if atIndex < 1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex < atIndex+2 {
		return false
	}
	if dotIndex >= len(email)-1 {
		return false
	}
	return true
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
