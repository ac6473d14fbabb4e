package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/harikeerthpv07/BarterSystem/internal/auth"
	"github.com/harikeerthpv07/BarterSystem/internal/clock"
	"github.com/harikeerthpv07/BarterSystem/internal/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TokenIssuer is the part of the token manager the auth service needs.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

type AuthService struct {
	repo   UserRepository
	tokens TokenIssuer
	clock  clock.Clock
}

func NewAuthService(repo UserRepository, tokens TokenIssuer, clk clock.Clock) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
		clock:  clk,
	}
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         "user",
		CreatedAt:    s.clock.Now(),
	}

	// Uniqueness is enforced by the store; a duplicate username or email
	// surfaces as ErrUserExists rather than a separate lookup racing the
	// insert.
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

type LoginInput struct {
	Email    string
	Password string
}

// Login verifies the credentials and returns a signed bearer token. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(auth.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	})
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
