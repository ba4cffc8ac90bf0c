package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/siccrm/crm-api/internal/core/domain"
	"github.com/siccrm/crm-api/internal/core/ports"
)

// placeholderHash is a valid bcrypt hash of a random string. Login compares
// against it when the email is unknown so that unknown-email and
// wrong-password take comparable time and return the same error.
const placeholderHash = "$2a$12$3aD0H2mG32p2L3C2I6a7EebXbqgHjvC4m9h8qOIx0mC9i3Uu7s0l2"

const userListLimit = 200

// AuthService implements registration, login and user listing.
type AuthService struct {
	repo       ports.AuthRepository
	jwtSecret  string
	tokenTTL   time.Duration
	bcryptCost int
	logger     zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:       repo,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		bcryptCost: 12,
		logger:     logger,
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", domain.Invalid("Name, email, and password are required")
	}

	name = sanitizeText(name, 50)
	email = normalizeEmail(email)

	if len(name) < 2 {
		return nil, "", domain.Invalid("Name must be between 2 and 50 characters")
	}
	if !validEmail(email) {
		return nil, "", domain.Invalid("Invalid email format")
	}
	if len(password) < 8 {
		return nil, "", domain.Invalid("Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user, domain.RoleUser)
	if err != nil {
		return nil, "", err
	}

	token, err := s.signToken(created)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.Invalid("Email and password are required")
	}

	email = normalizeEmail(email)
	if !validEmail(email) {
		return nil, "", domain.Invalid("Invalid email format")
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a bcrypt comparison so the response time does not
			// reveal whether the account exists.
			_ = bcrypt.CompareHashAndPassword([]byte(placeholderHash), []byte(password))
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.ListUsers(ctx, userListLimit)
}

func (s *AuthService) signToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"roles": user.Roles,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
