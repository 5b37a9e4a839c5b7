package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"todolist/internal/auth"
	"todolist/internal/cache"
	apperrors "todolist/internal/errors"
	"todolist/internal/model"
	"todolist/internal/repository"
)

const (
	bcryptCost      = 10
	profileCacheTTL = 5 * time.Minute
)

var (
	// ErrInvalidCredentials is returned when the username is unknown or the
	// password is wrong. The two causes are logged but never distinguished
	// in the returned error.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserAlreadyExists is returned when registering a taken username.
	ErrUserAlreadyExists = errors.New("username already taken")
)

// CredentialVerifier checks a plaintext password against a stored credential.
type CredentialVerifier interface {
	Verify(hashed, plain string) bool
}

type bcryptVerifier struct{}

func (bcryptVerifier) Verify(hashed, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// NewBcryptVerifier returns the bcrypt-backed credential verifier.
func NewBcryptVerifier() CredentialVerifier {
	return bcryptVerifier{}
}

// AuthService handles registration, login and profile lookup.
type AuthService interface {
	Register(ctx context.Context, username, password, email, phone string) (*model.User, error)
	Login(ctx context.Context, username, password string) (token string, err error)
	Profile(ctx context.Context, userID string) (*model.User, error)
}

type authService struct {
	users    repository.UserRepository
	jwt      *auth.JWTService
	verifier CredentialVerifier
	cache    *cache.Client
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwt *auth.JWTService, verifier CredentialVerifier, cache *cache.Client) AuthService {
	return &authService{
		users:    users,
		jwt:      jwt,
		verifier: verifier,
		cache:    cache,
	}
}

// Register creates a new user with a hashed password. Usernames are unique
// under case-insensitive comparison.
func (s *authService) Register(ctx context.Context, username, password, email, phone string) (*model.User, error) {
	existing, err := s.users.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: string(hashedPassword),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns a signed identity token. Unknown
// username and wrong password collapse into the same error.
func (s *authService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		log.Printf("login failed: unknown username %q", username)
		return "", ErrInvalidCredentials
	}

	if !s.verifier.Verify(user.PasswordHash, password) {
		log.Printf("login failed: password mismatch for %q", username)
		return "", ErrInvalidCredentials
	}

	token, err := s.jwt.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// Profile returns the user record for the given id, served from cache when
// possible. User records are immutable in this core, so the cache needs no
// invalidation.
func (s *authService) Profile(ctx context.Context, userID string) (*model.User, error) {
	key := s.profileKey(userID)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, key, payload, profileCacheTTL)
	}
	return user, nil
}

func (s *authService) profileKey(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}
