package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"campusevents/internal/domain"
)

type authService struct {
	userRepo    domain.UserRepository
	collegeRepo domain.CollegeRepository
	hasher      domain.PasswordHasher
	issuer      domain.TokenIssuer
	tokenTTL    time.Duration
}

// NewAuthService creates an AuthService with the given repositories and crypto adapters.
func NewAuthService(
	userRepo domain.UserRepository,
	collegeRepo domain.CollegeRepository,
	hasher domain.PasswordHasher,
	issuer domain.TokenIssuer,
	tokenTTL time.Duration,
) domain.AuthService {
	return &authService{
		userRepo:    userRepo,
		collegeRepo: collegeRepo,
		hasher:      hasher,
		issuer:      issuer,
		tokenTTL:    tokenTTL,
	}
}

func (s *authService) SignUp(ctx context.Context, email, name, password string, role domain.Role, collegeID string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !role.Valid() {
		role = domain.RoleStudent
	}

	if _, err := s.collegeRepo.GetByID(ctx, collegeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get college: %w", err)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := domain.NewUser(email, name, role, collegeID, now, now)
	user.PasswordHash = hash
	user.PasswordSalt = salt
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrUnauthorized
		}
		return "", nil, fmt.Errorf("get user: %w", err)
	}
	if err := s.hasher.Compare(user.PasswordHash, user.PasswordSalt, password); err != nil {
		return "", nil, domain.ErrUnauthorized
	}

	token, err := s.issuer.Issue(user.ID, user.Email, user.Role, s.tokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}
