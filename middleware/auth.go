package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fathy2028/shopeklopek/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by RequireSignIn.
const (
	UserIDKey = "user_id"
	RoleKey   = "role"
	EmailKey  = "email"
	NameKey   = "name"
)

const RoleAdmin = "admin"

// RequireSignIn verifies the bearer token in the Authorization header. The
// header may carry the raw token or "Bearer <token>". Browsers cannot set
// headers on a websocket handshake, so upgrades may pass ?token= instead.
func RequireSignIn(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimSpace(c.GetHeader("Authorization"))
		if tokenString == "" && c.IsWebsocket() {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization header is missing"})
			return
		}
		if len(tokenString) > 7 && strings.EqualFold(tokenString[:7], "bearer ") {
			tokenString = strings.TrimSpace(tokenString[7:])
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid token signing method")
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token claims"})
			return
		}
		userID := claimString(claims, "user_id")
		if userID == "" {
			userID = claimString(claims, "sub")
		}
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Token has no subject"})
			return
		}

		c.Set(UserIDKey, userID)
		c.Set(RoleKey, normalizeRole(claims["role"]))
		c.Set(EmailKey, claimString(claims, "email"))
		c.Set(NameKey, claimString(claims, "name"))
		c.Next()
	}
}

// IsAdmin must run after RequireSignIn.
func IsAdmin(c *gin.Context) {
	if c.GetString(RoleKey) != RoleAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Unauthorized access"})
		return
	}
	c.Next()
}

// UserID returns the signed-in user's id, or "" outside RequireSignIn.
func UserID(c *gin.Context) string {
	return c.GetString(UserIDKey)
}

// CurrentUser builds the user row the token describes.
func CurrentUser(c *gin.Context) models.User {
	return models.User{
		ID:    c.GetString(UserIDKey),
		Email: c.GetString(EmailKey),
		Name:  c.GetString(NameKey),
		Role:  c.GetString(RoleKey),
	}
}

func claimString(claims jwt.MapClaims, key string) string {
	switch v := claims[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}

// Tokens from the storefront's auth service mark admins with role 1; newer
// ones use "admin".
func normalizeRole(v interface{}) string {
	switch r := v.(type) {
	case string:
		return strings.ToLower(r)
	case float64:
		if r == 1 {
			return RoleAdmin
		}
		return "user"
	default:
		return "user"
	}
}
