package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"hallway-backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	RoleVolunteer = "volunteer"
	RoleAdmin     = "admin"

	// ContextKey is the gin context key the middleware stores claims under.
	ContextKey = "session_user"

	defaultTTL = 30 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid session token")

// Claims is the typed principal carried by a session token.
type Claims struct {
	UserID        uuid.UUID `json:"user_id"`
	ReferenceCode string    `json:"reference_code"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	Role          string    `json:"role"`
	ExpiresAt     int64     `json:"exp"`
}

// SessionAuth issues and verifies HMAC-SHA256 signed session tokens.
// Token layout: base64url(claims JSON) "." base64url(signature).
type SessionAuth struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionAuth(secret string, ttl time.Duration) *SessionAuth {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &SessionAuth{secret: []byte(secret), ttl: ttl}
}

func (s *SessionAuth) IssueToken(claims Claims) (string, error) {
	claims.ExpiresAt = time.Now().Add(s.ttl).Unix()

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal claims")
	}

	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + s.sign(encoded), nil
}

func (s *SessionAuth) ParseToken(token string) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return nil, ErrInvalidToken
	}

	if !hmac.Equal([]byte(s.sign(parts[0])), []byte(parts[1])) {
		return nil, ErrInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, ErrInvalidToken
	}

	if time.Unix(claims.ExpiresAt, 0).Before(time.Now()) {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}

func (s *SessionAuth) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// SessionMiddleware authenticates requests carrying a Bearer session token
// and stores the typed claims in the gin context.
func (s *SessionAuth) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Logger()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Info("missing authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header is required"})
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			log.Info("invalid authorization header format")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			return
		}

		claims, err := s.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			log.Info("invalid session token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			return
		}

		c.Set(ContextKey, claims)
		c.Next()
	}
}

// ClaimsFromContext extracts the authenticated principal set by the middleware.
func ClaimsFromContext(c *gin.Context) (*Claims, bool) {
	value, exists := c.Get(ContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*Claims)
	return claims, ok
}
