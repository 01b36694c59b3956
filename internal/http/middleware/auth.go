package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenHeader is the header the admin console sends its JWT in.
const SessionTokenHeader = "X-DreamFactory-Session-Token"

const (
	userIDKey     = "session_user_id"
	userEmailKey  = "session_user_email"
	isSysAdminKey = "session_is_sys_admin"
)

// SessionClaims is the JWT payload issued on login.
type SessionClaims struct {
	Email      string `json:"email"`
	IsSysAdmin bool   `json:"is_sys_admin"`
	jwt.RegisteredClaims
}

// Auth validates the session token and stores the identity on the
// context. Tokens are accepted from the DreamFactory session header or
// a standard bearer Authorization header.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(SessionTokenHeader))
		if raw == "" {
			bearer := strings.TrimSpace(c.GetHeader("Authorization"))
			if strings.HasPrefix(strings.ToLower(bearer), "bearer ") {
				raw = strings.TrimSpace(bearer[len("bearer "):])
			}
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": http.StatusUnauthorized, "message": "session token required"},
			})
			return
		}

		claims := &SessionClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": http.StatusUnauthorized, "message": "session token is invalid or expired"},
			})
			return
		}

		userID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": http.StatusUnauthorized, "message": "session token is malformed"},
			})
			return
		}

		c.Set(userIDKey, userID)
		c.Set(userEmailKey, claims.Email)
		c.Set(isSysAdminKey, claims.IsSysAdmin)
		c.Next()
	}
}

// SessionUserID returns the authenticated user id, 0 when anonymous.
func SessionUserID(c *gin.Context) int64 {
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}

func SessionEmail(c *gin.Context) string {
	if v, ok := c.Get(userEmailKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func SessionIsSysAdmin(c *gin.Context) bool {
	if v, ok := c.Get(isSysAdminKey); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}
