package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Wezylnia/GymSystem-sub001/internal/api"
	"github.com/gin-gonic/gin"
)

const (
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
)

func AuthMiddleware(accessTokenSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			api.Abort(c, http.StatusUnauthorized, CodeUnauthorized, "Authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) != "Bearer" {
			api.Abort(c, http.StatusUnauthorized, CodeUnauthorized, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			api.Abort(c, http.StatusUnauthorized, CodeUnauthorized, "Token is empty")
			return
		}

		claims, err := ValidateToken(tokenString, accessTokenSecret)
		switch {
		case errors.Is(err, ErrTokenExpired):
			api.Abort(c, http.StatusUnauthorized, CodeUnauthorized, "Token expired")
			return
		case errors.Is(err, ErrInvalidTokenType):
			api.Abort(c, http.StatusUnauthorized, CodeUnauthorized, "Access token required")
			return
		case err != nil:
			api.Abort(c, http.StatusUnauthorized, CodeUnauthorized, "Invalid or malformed token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)

		c.Next()
	}
}

// RequireRole lets the request through when the caller has any of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			api.Abort(c, http.StatusUnauthorized, CodeUnauthorized, "User role not found")
			return
		}

		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}

		api.Abort(c, http.StatusForbidden, CodeForbidden, "Insufficient permissions")
	}
}

func GetUserID(c *gin.Context) (int, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}

	id, ok := userID.(int)
	if !ok {
		return 0, false
	}

	return id, true
}

func GetRole(c *gin.Context) (string, bool) {
	role, exists := c.Get("user_role")
	if !exists {
		return "", false
	}

	roleStr, ok := role.(string)
	return roleStr, ok
}

// CanActFor reports whether the caller may read or change data of memberID.
// Staff and admins may act for anyone, members only for themselves.
func CanActFor(c *gin.Context, memberID int) bool {
	role, _ := GetRole(c)
	switch role {
	case RoleStaff, RoleAdmin:
		return true
	case RoleMember:
		id, ok := GetUserID(c)
		return ok && id == memberID
	}
	return false
}

// ForbidUnlessActingFor writes a 403 and returns false when the caller may
// not act for memberID.
func ForbidUnlessActingFor(c *gin.Context, memberID int) bool {
	if CanActFor(c, memberID) {
		return true
	}
	api.Abort(c, http.StatusForbidden, CodeForbidden, "Insufficient permissions")
	return false
}
