package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/dedekindkali/FFF/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const authContextKey = "auth_context"

var jwtSecret []byte

// SetJWTSecret installs the signing key; called once at startup.
func SetJWTSecret(secret string) {
	jwtSecret = []byte(secret)
}

// SignToken issues a bearer token carrying the user identity and the admin
// elevation flag.
func SignToken(userID int64, isAdmin bool) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"admin":   isAdmin,
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
	})
	return token.SignedString(jwtSecret)
}

// Auth parses the Bearer token into a domain.RequestContext and rejects
// requests without a valid one.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
			return
		}

		token, err := jwt.Parse(strings.TrimSpace(raw), func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token claims"})
			return
		}
		userID, ok := claims["user_id"].(float64)
		if !ok || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token claims"})
			return
		}
		isAdmin, _ := claims["admin"].(bool)

		c.Set(authContextKey, domain.RequestContext{
			UserID:  int64(userID),
			IsAdmin: isAdmin,
		})
		c.Next()
	}
}

// RequireAdmin gates admin-only routes; it must run after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		rc, ok := GetAuth(c)
		if !ok || !rc.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "admin access required"})
			return
		}
		c.Next()
	}
}

// GetAuth returns the request's authenticated identity.
func GetAuth(c *gin.Context) (domain.RequestContext, bool) {
	v, ok := c.Get(authContextKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	rc, ok := v.(domain.RequestContext)
	return rc, ok
}
