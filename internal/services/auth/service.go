package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"shifa-clinic/internal/config"
	"shifa-clinic/internal/utils/crypto"
	"shifa-clinic/internal/utils/sanitize"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service handles registration and authentication business logic
type Service struct {
	repo   UsersRepo
	config config.Config
	log    *slog.Logger
}

// NewService creates a new auth service
func NewService(repo UsersRepo, cfg config.Config, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		config: cfg,
		log:    log,
	}
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Name               string `json:"name" validate:"required,max=120"`
	Email              string `json:"email" validate:"required,email"`
	Password           string `json:"password" validate:"required,password"`
	Phone              string `json:"phone" validate:"required,max=32"`
	Role               string `json:"role" validate:"required,oneof=doctor patient"`
	DiseaseDescription string `json:"disease_description" validate:"omitempty,max=2000"`
}

// LoginRequest represents a user login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents the response for successful authentication
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// RegisterResponse is an alias for AuthResponse
type RegisterResponse = AuthResponse

// LoginResponse is an alias for AuthResponse
type LoginResponse = AuthResponse

// Register creates a new doctor or patient account.
// On success exactly one document is persisted; on any failure none is.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role != RoleDoctor && role != RolePatient {
		return nil, ErrInvalidRole
	}

	email := normalizeEmail(req.Email)

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, ErrDuplicateEmail
	}

	hashedPassword, err := crypto.HashPassword(req.Password, s.config.BcryptCost)
	if err != nil {
		return nil, errors.New("failed to process password")
	}

	now := time.Now().UTC()
	user := &User{
		ID:                 bson.NewObjectID(),
		Name:               sanitize.Clean(req.Name),
		Email:              email,
		Phone:              strings.TrimSpace(req.Phone),
		Role:               role,
		PasswordHash:       hashedPassword,
		RegistrationNumber: RegistrationNumber(role, now),
		RegistrationDate:   now,
	}
	// Disease description is legal on patient records only.
	if role == RolePatient {
		user.DiseaseDescription = sanitize.Clean(req.DiseaseDescription)
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// The unique email index catches the race two concurrent
		// registrations can win past the FindByEmail check.
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		s.log.Error("failed to persist user", "error", err)
		return nil, ErrCreateUser
	}

	token, err := s.GenerateAccessToken(user)
	if err != nil {
		s.log.Error("failed to generate token", "error", err)
		return nil, ErrGenAccessToken
	}

	return &AuthResponse{
		User:  user,
		Token: token,
	}, nil
}

// Login authenticates a user against the stored bcrypt hash
func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// Same error for unknown email and wrong password.
		return nil, ErrInvalidCredentials
	}

	if err := crypto.CheckPassword(req.Password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.GenerateAccessToken(user)
	if err != nil {
		s.log.Error("failed to generate token", "error", err)
		return nil, ErrGenAccessToken
	}

	return &AuthResponse{
		User:  user,
		Token: token,
	}, nil
}

// GenerateAccessToken signs a bearer token carrying the user's identity and
// role claims, valid for the configured fixed window (24h by default).
// There is no refresh or revocation; expiry is the only invalidation.
func (s *Service) GenerateAccessToken(user *User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID.Hex(),
		"email":   user.Email,
		"role":    user.Role,
		"exp":     now.Add(time.Duration(s.config.TokenTTLHours) * time.Hour).Unix(),
		"iat":     now.Unix(),
	}

	if strings.ToUpper(s.config.JWTAlgorithm) != "HS256" {
		return "", ErrUnsupportedJWTAlg
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
