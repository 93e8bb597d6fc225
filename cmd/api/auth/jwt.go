package auth

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingSubject = errors.New("token missing sub claim")

// JWTManager verifies HS256 identity tokens issued with a single shared secret.
type JWTManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewJWTManagerFromEnv builds a JWTManager from the environment.
//
// - JWT_SECRET: HS256 secret (required)
// - JWT_ISSUER: expected iss claim (optional, default "fotofeed")
func NewJWTManagerFromEnv() (*JWTManager, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "fotofeed"
	}

	return &JWTManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    time.Hour,
	}, nil
}

// Sign issues a token for id. Used by local tooling and tests.
func (m *JWTManager) Sign(id Identity) (string, error) {
	claims := jwt.MapClaims{
		"sub":     id.Subject,
		"iss":     m.issuer,
		"exp":     time.Now().Add(m.ttl).Unix(),
		"name":    id.Name,
		"picture": id.Picture,
		"firebase": map[string]any{
			"sign_in_provider": id.SignInProvider,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *JWTManager) Parse(tokenString string) (*Identity, error) {
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer))
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrMissingSubject
	}

	id := &Identity{Subject: sub}
	id.Name, _ = claims["name"].(string)
	id.Picture, _ = claims["picture"].(string)
	id.SignInProvider = signInProvider(claims)
	return id, nil
}

// signInProvider reads firebase.sign_in_provider, falling back to a flat sign_in_provider claim.
func signInProvider(claims jwt.MapClaims) string {
	if fb, ok := claims["firebase"].(map[string]interface{}); ok {
		if p, ok := fb["sign_in_provider"].(string); ok && p != "" {
			return p
		}
	}
	p, _ := claims["sign_in_provider"].(string)
	return p
}
