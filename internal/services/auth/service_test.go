package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"shifa-clinic/internal/config"
	"shifa-clinic/internal/utils/crypto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var silentLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

const testSecret = "super-secret-jwt-key-at-least-32-chars"

func testConfig() config.Config {
	return config.Config{
		BcryptCost:    12,
		JWTSecret:     testSecret,
		JWTAlgorithm:  "HS256",
		TokenTTLHours: 24,
	}
}

// MockUsersRepo is a mock implementation of UsersRepo
type MockUsersRepo struct {
	mock.Mock
}

func (m *MockUsersRepo) Create(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUsersRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUsersRepo) ListByRole(ctx context.Context, role string) ([]*User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

func TestService_Register(t *testing.T) {
	cfg := testConfig()

	tests := []struct {
		name    string
		req     RegisterRequest
		setup   func(*MockUsersRepo)
		wantErr error
	}{
		{
			name: "successful patient registration",
			req: RegisterRequest{
				Name:               "Alice Smith",
				Email:              "alice@example.com",
				Password:           "Password123",
				Phone:              "555-0100",
				Role:               "patient",
				DiseaseDescription: "chronic migraine",
			},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, ErrUserNotFound)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).Return(nil)
			},
		},
		{
			name: "successful doctor registration",
			req: RegisterRequest{
				Name:     "Dr. Bob Jones",
				Email:    "bob@example.com",
				Password: "Password123",
				Phone:    "555-0101",
				Role:     "doctor",
			},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, "bob@example.com").Return(nil, ErrUserNotFound)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).Return(nil)
			},
		},
		{
			name: "invalid role never touches the store",
			req: RegisterRequest{
				Name:     "Mallory",
				Email:    "mallory@example.com",
				Password: "Password123",
				Phone:    "555-0102",
				Role:     "admin",
			},
			setup:   func(repo *MockUsersRepo) {},
			wantErr: ErrInvalidRole,
		},
		{
			name: "duplicate email",
			req: RegisterRequest{
				Name:     "Alice Smith",
				Email:    "alice@example.com",
				Password: "Password123",
				Phone:    "555-0100",
				Role:     "patient",
			},
			setup: func(repo *MockUsersRepo) {
				existing := &User{
					ID:    bson.NewObjectID(),
					Email: "alice@example.com",
				}
				repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(existing, nil)
			},
			wantErr: ErrDuplicateEmail,
		},
		{
			name: "duplicate caught by the unique index after a racing insert",
			req: RegisterRequest{
				Name:     "Alice Smith",
				Email:    "alice@example.com",
				Password: "Password123",
				Phone:    "555-0100",
				Role:     "patient",
			},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, ErrUserNotFound)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).Return(ErrDuplicateEmail)
			},
			wantErr: ErrDuplicateEmail,
		},
		{
			name: "store failure",
			req: RegisterRequest{
				Name:     "Alice Smith",
				Email:    "alice@example.com",
				Password: "Password123",
				Phone:    "555-0100",
				Role:     "patient",
			},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, ErrUserNotFound)
				repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).Return(errors.New("connection reset"))
			},
			wantErr: ErrCreateUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUsersRepo)
			tt.setup(repo)

			service := NewService(repo, cfg, silentLogger)
			resp, err := service.Register(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.NotEmpty(t, resp.Token)
				assert.Equal(t, tt.req.Email, resp.User.Email)
				assert.Equal(t, tt.req.Role, resp.User.Role)
				assert.False(t, resp.User.RegistrationDate.IsZero())
				assert.NotEmpty(t, resp.User.RegistrationNumber)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestService_Register_PasswordStoredHashed(t *testing.T) {
	repo := new(MockUsersRepo)
	var persisted *User
	repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, ErrUserNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*User)
		}).
		Return(nil)

	service := NewService(repo, testConfig(), silentLogger)
	_, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Alice Smith",
		Email:    "alice@example.com",
		Password: "Password123",
		Phone:    "555-0100",
		Role:     "patient",
	})
	require.NoError(t, err)
	require.NotNil(t, persisted)

	assert.NotEqual(t, "Password123", persisted.PasswordHash)
	assert.NoError(t, crypto.CheckPassword("Password123", persisted.PasswordHash))
}

func TestService_Register_DiseaseDescriptionOnlyForPatients(t *testing.T) {
	tests := []struct {
		name        string
		role        string
		disease     string
		wantDisease string
	}{
		{"patient keeps description", "patient", "persistent cough", "persistent cough"},
		{"doctor never carries description", "doctor", "should be dropped", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUsersRepo)
			var persisted *User
			repo.On("FindByEmail", mock.Anything, mock.Anything).Return(nil, ErrUserNotFound)
			repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).
				Run(func(args mock.Arguments) {
					persisted = args.Get(1).(*User)
				}).
				Return(nil)

			service := NewService(repo, testConfig(), silentLogger)
			_, err := service.Register(context.Background(), RegisterRequest{
				Name:               "Someone",
				Email:              "someone@example.com",
				Password:           "Password123",
				Phone:              "555-0100",
				Role:               tt.role,
				DiseaseDescription: tt.disease,
			})
			require.NoError(t, err)
			require.NotNil(t, persisted)
			assert.Equal(t, tt.wantDisease, persisted.DiseaseDescription)
		})
	}
}

func TestService_Login(t *testing.T) {
	cfg := testConfig()

	storedHash, err := crypto.HashPassword("Password123", cfg.BcryptCost)
	require.NoError(t, err)

	storedUser := &User{
		ID:           bson.NewObjectID(),
		Name:         "Alice Smith",
		Email:        "alice@example.com",
		Role:         RolePatient,
		PasswordHash: storedHash,
	}

	tests := []struct {
		name     string
		req      LoginRequest
		setup    func(*MockUsersRepo)
		wantErr  error
		wantUser *User
	}{
		{
			name: "successful login",
			req:  LoginRequest{Email: "alice@example.com", Password: "Password123"},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(storedUser, nil)
			},
			wantUser: storedUser,
		},
		{
			name: "unknown email",
			req:  LoginRequest{Email: "nobody@example.com", Password: "Password123"},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, ErrUserNotFound)
			},
			wantErr: ErrInvalidCredentials,
		},
		{
			// A non-empty wrong password must be rejected: login compares
			// against the stored hash, it does not re-hash and test for
			// emptiness.
			name: "wrong password",
			req:  LoginRequest{Email: "alice@example.com", Password: "NotHerPassword1"},
			setup: func(repo *MockUsersRepo) {
				repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(storedUser, nil)
			},
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUsersRepo)
			tt.setup(repo)

			service := NewService(repo, cfg, silentLogger)
			resp, err := service.Login(context.Background(), tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
			} else {
				require.NoError(t, err)
				require.NotNil(t, resp)
				assert.NotEmpty(t, resp.Token)
				assert.Equal(t, tt.wantUser.Email, resp.User.Email)
				assert.Equal(t, tt.wantUser.Role, resp.User.Role)
			}

			repo.AssertExpectations(t)
		})
	}
}

func TestService_GenerateAccessToken_RoundTrip(t *testing.T) {
	cfg := testConfig()
	repo := new(MockUsersRepo)
	service := NewService(repo, cfg, silentLogger)

	user := &User{
		ID:    bson.NewObjectID(),
		Email: "alice@example.com",
		Role:  RoleDoctor,
	}

	tokenStr, err := service.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)

	// Token should be valid JWT format (3 parts separated by dots)
	parts := strings.Split(tokenStr, ".")
	assert.Equal(t, 3, len(parts), "JWT should have 3 parts: header.payload.signature")

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	assert.Equal(t, user.ID.Hex(), claims["user_id"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, user.Role, claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	iat, ok := claims["iat"].(float64)
	require.True(t, ok)
	assert.InDelta(t, 24*time.Hour.Seconds(), exp-iat, 1, "token should expire 24h after issuance")
}

func TestService_GenerateAccessToken_UnsupportedAlgorithm(t *testing.T) {
	cfg := testConfig()
	cfg.JWTAlgorithm = "NONE"

	repo := new(MockUsersRepo)
	service := NewService(repo, cfg, silentLogger)

	token, err := service.GenerateAccessToken(&User{ID: bson.NewObjectID()})
	assert.ErrorIs(t, err, ErrUnsupportedJWTAlg)
	assert.Empty(t, token)
}

func TestService_Register_NormalizesEmail(t *testing.T) {
	repo := new(MockUsersRepo)
	var persisted *User
	repo.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, ErrUserNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*auth.User")).
		Run(func(args mock.Arguments) {
			persisted = args.Get(1).(*User)
		}).
		Return(nil)

	service := NewService(repo, testConfig(), silentLogger)
	_, err := service.Register(context.Background(), RegisterRequest{
		Name:     "Alice Smith",
		Email:    "  Alice@Example.COM ",
		Password: "Password123",
		Phone:    "555-0100",
		Role:     "patient",
	})
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, "alice@example.com", persisted.Email)

	repo.AssertExpectations(t)
}
