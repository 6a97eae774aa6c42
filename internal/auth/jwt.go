package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

// Identity is what the identity provider knows about the caller. UserID is
// the provider's stable subject id, not a Profile id.
type Identity struct {
	UserID   string
	Name     string
	Email    string
	ImageURL string
}

// Claims are the identity provider's session token claims. The subject is
// the provider user id.
type Claims struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 session tokens and can mint them for development
// and maintenance tooling.
type Verifier struct {
	secretKey []byte
	issuer    string
}

// NewVerifier creates a verifier for tokens signed with secretKey. When issuer
// is non-empty the "iss" claim must match it.
func NewVerifier(secretKey, issuer string) *Verifier {
	return &Verifier{
		secretKey: []byte(secretKey),
		issuer:    issuer,
	}
}

// Sign issues a token for identity that expires after ttl.
func (v *Verifier) Sign(identity Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Name:    identity.Name,
		Email:   identity.Email,
		Picture: identity.ImageURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			Issuer:    v.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(v.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify parses and validates tokenString, returning the caller identity.
func (v *Verifier) Verify(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return v.secretKey, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{
		UserID:   claims.Subject,
		Name:     claims.Name,
		Email:    claims.Email,
		ImageURL: claims.Picture,
	}, nil
}
