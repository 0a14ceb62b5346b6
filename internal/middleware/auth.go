package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// A private key for context access
type contextKey string

const userContextKey = contextKey("user")

// AuthUser is the verified identity of the acting user. Token issuance lives
// with the external auth provider; this service only validates.
type AuthUser struct {
	ID   string
	Name string
}

// Verifier validates bearer tokens, either against a remote JWKS or an HS256
// shared secret.
type Verifier struct {
	keyFn jwt.Keyfunc
}

// NewVerifier prefers the JWKS URL when set, falling back to the shared
// secret. At least one must be configured.
func NewVerifier(secret, jwksURL string) (*Verifier, error) {
	if jwksURL != "" {
		jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
			RefreshInterval: time.Hour,
			RefreshErrorHandler: func(err error) {
				log.Printf("[Auth] JWKS refresh failed: %v", err)
			},
		})
		if err != nil {
			return nil, fmt.Errorf("fetching JWKS from %s: %w", jwksURL, err)
		}
		return &Verifier{keyFn: jwks.Keyfunc}, nil
	}

	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET or AUTH_JWKS_URL must be set")
	}
	key := []byte(secret)
	return &Verifier{keyFn: func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return key, nil
	}}, nil
}

func (v *Verifier) verify(tokenString string) (*AuthUser, error) {
	token, err := jwt.Parse(tokenString, v.keyFn)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	name, _ := claims["name"].(string)
	return &AuthUser{ID: sub, Name: name}, nil
}

// AuthMiddleware verifies the bearer token and stores the identity in the
// request context for handlers to use.
func AuthMiddleware(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")

		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		user, err := v.verify(tokenString)
		if err != nil {
			log.Printf("[Auth] token rejected: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid auth token"})
			return
		}

		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))
		c.Next()
	}
}

// WithUser returns a context carrying the given identity.
func WithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// ForContext finds the user from the context.
func ForContext(ctx context.Context) *AuthUser {
	raw, _ := ctx.Value(userContextKey).(*AuthUser)
	return raw
}
