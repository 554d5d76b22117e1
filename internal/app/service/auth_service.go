package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"wishlist_api/internal/common"
	"wishlist_api/internal/common/security"
	"wishlist_api/internal/domain/model"
	"wishlist_api/internal/domain/repository"
)

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens *security.TokenManager) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (req *RegisterRequest) Validate() error {
	fields := common.FieldErrors{}
	if _, err := mail.ParseAddress(req.Email); err != nil || req.Email != strings.TrimSpace(req.Email) {
		fields["email"] = "must be a valid email address"
	}
	if n := utf8.RuneCountInString(req.Username); n < 3 || n > 50 {
		fields["username"] = "must be between 3 and 50 characters"
	}
	// The password bound is in bytes: bcrypt only reads the first 72.
	if n := len(req.Password); n < 8 || n > 72 {
		fields["password"] = "must be between 8 and 72 bytes"
	}
	if len(fields) > 0 {
		return common.NewValidationError(fields)
	}
	return nil
}

type LoginRequest struct {
	Username string `json:"username"` // matches email or username
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates a new account with role=user. Uniqueness of email and
// username is enforced by the database constraints; the repository maps a
// violation to the duplicate error kind.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Email:          req.Email,
		Username:       req.Username,
		HashedPassword: hashedPassword,
		Role:           model.RoleUser,
		IsActive:       true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a token. Every failure path wraps
// the same sentinel so the response message never reveals whether the
// account exists.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("missing credentials: %w", common.ErrUnauthorized)
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Username)
	if errors.Is(err, common.ErrNotFound) {
		user, err = s.userRepo.FindByUsername(ctx, req.Username)
	}
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("unknown account: %w", common.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("inactive account: %w", common.ErrUnauthorized)
	}
	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, fmt.Errorf("password mismatch: %w", common.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// CurrentUser loads the profile behind a principal for /auth/me.
func (s *AuthService) CurrentUser(ctx context.Context, principal model.Principal) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("account gone: %w", common.ErrUnauthorized)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("inactive account: %w", common.ErrUnauthorized)
	}
	return user, nil
}
