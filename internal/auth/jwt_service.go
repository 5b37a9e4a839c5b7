package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"todolist/internal/model"
)

// TokenExpiry is the duration for which issued tokens are valid.
const TokenExpiry = 24 * time.Hour

var (
	// ErrInvalidIdentity is returned when a token is requested for a user
	// without a stable id (not yet persisted or half constructed).
	ErrInvalidIdentity = errors.New("user id is empty")
	// ErrInvalidToken is returned when a presented token fails verification.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims represents the claim set embedded in issued tokens.
type Claims struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies signed identity tokens. The signing secret
// is loaded once at startup and never rewritten.
type JWTService struct {
	secret   []byte
	issuer   string
	audience string
}

// NewJWTService creates a new JWT service. Issuer and audience are optional;
// when set they are embedded at issuance and enforced at verification.
func NewJWTService(secret, issuer, audience string) *JWTService {
	return &JWTService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
	}
}

// Issue mints a signed token asserting the user's identity. The token id is
// random per call, so repeated issuance yields distinct, both-valid tokens.
func (s *JWTService) Issue(user *model.User) (string, error) {
	if user.ID == "" {
		return "", ErrInvalidIdentity
	}

	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  user.RoleNames(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the signature, expiry and, when configured, issuer and
// audience of a presented token, returning its claims on success.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if s.issuer != "" && !claims.VerifyIssuer(s.issuer, true) {
		return nil, ErrInvalidToken
	}
	if s.audience != "" && !claims.VerifyAudience(s.audience, true) {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
