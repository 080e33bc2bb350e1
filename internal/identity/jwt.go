package identity

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pkordes/recipebox/internal/domain"
)

// CookieName is the cookie the identity provider sets on login.
const CookieName = "access_token"

var (
	ErrNoToken      = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Verifier validates HS256 tokens and maps their subject to a domain.User.
type Verifier struct {
	secret []byte
}

// NewVerifier constructs a Verifier for the given HMAC secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Authenticate extracts the token from the request and verifies it.
func (v *Verifier) Authenticate(r *http.Request) (domain.User, error) {
	token, err := tokenFromRequest(r)
	if err != nil {
		return domain.User{}, err
	}
	return v.Parse(token)
}

// Parse verifies a raw token string. The subject claim is the user id.
func (v *Verifier) Parse(raw string) (domain.User, error) {
	if raw == "" {
		return domain.User{}, ErrNoToken
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.User{}, ErrExpiredToken
		}
		return domain.User{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return domain.User{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return domain.User{ID: claims.Subject}, nil
}

// Sign issues an HS256 token for subject that expires after ttl.
// Used by the devtoken command and by tests; production tokens come from the
// identity provider.
func Sign(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("identity.Sign: %w", err)
	}
	return signed, nil
}

// tokenFromRequest prefers the access_token cookie and falls back to an
// Authorization: Bearer header.
func tokenFromRequest(r *http.Request) (string, error) {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}

	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrNoToken
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", ErrInvalidToken
	}
	return token, nil
}
