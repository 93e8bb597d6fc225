package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fotofeed/cmd/internal/logger"
)

var (
	ErrMissingHeader = errors.New("missing_authorization_header")
	ErrInvalidFormat = errors.New("invalid_authorization_header")
	ErrEmptyToken    = errors.New("empty_token")
)

const contextKeyIdentity = "identity"

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(tokenString string) (*Identity, error)
}

// ExtractBearerToken extracts the Bearer token from the Authorization header.
func ExtractBearerToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", ErrMissingHeader
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", ErrInvalidFormat
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}

// AbortWithUnauthorized aborts the request with 401 status and error JSON.
func AbortWithUnauthorized(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
}

// IdentityMiddleware stores the verified caller on the context when a valid
// bearer token is present. Requests without one continue unauthenticated and
// the handler decides how to answer.
func IdentityMiddleware(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := ExtractBearerToken(c)
		if err != nil {
			if !errors.Is(err, ErrMissingHeader) {
				logger.Log.Debugf("ignoring authorization header: %v", err)
			}
			c.Next()
			return
		}

		id, err := parser.Parse(token)
		if err != nil {
			logger.Log.Warnf("token parse error: %v", err)
			c.Next()
			return
		}

		c.Set(contextKeyIdentity, id)
		c.Next()
	}
}

// IdentityFromContext returns the caller set by IdentityMiddleware, or nil.
func IdentityFromContext(c *gin.Context) *Identity {
	v, ok := c.Get(contextKeyIdentity)
	if !ok {
		return nil
	}
	id, _ := v.(*Identity)
	return id
}
