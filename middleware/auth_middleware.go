package middleware

import (
	"net/http"
	"strings"

	"sports-federation-backend/utils"

	"github.com/gin-gonic/gin"
)

// RoleAdmin adalah satu-satunya role yang boleh mengubah template form.
const RoleAdmin = "admin"

// AuthMiddleware memvalidasi JWT dari header Authorization (Bearer token)
// dan menyimpan userID, role, permissions ke context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			c.JSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Authorization token required", "missing_or_invalid_authorization_header", nil))
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Authorization token required", "empty_token", nil))
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized,
				utils.BuildResponseFailed("Invalid or expired token", err.Error(), nil))
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("permissions", claims.Permissions)

		c.Next()
	}
}

// RequireAdmin menolak request dari user non-admin dengan 403.
// Dipasang setelah AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.JSON(http.StatusForbidden,
				utils.BuildResponseFailed("Hanya admin yang dapat mengakses fitur ini", "forbidden", nil))
			c.Abort()
			return
		}
		c.Next()
	}
}

// IsAdmin memeriksa role yang di-set AuthMiddleware.
func IsAdmin(c *gin.Context) bool {
	roleI, _ := c.Get("role")
	role, _ := roleI.(string)
	return role == RoleAdmin
}
