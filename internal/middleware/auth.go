package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkravtsov/rental-platform/internal/auth"
	"github.com/mkravtsov/rental-platform/internal/model"
)

const claimsContextKey = "authClaims"

// Authenticate проверяет JWT из заголовка Authorization и кладёт
// claims пользователя в контекст запроса.
func Authenticate(authSvc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": "authorization header required"})
			return
		}

		claims, err := authSvc.ValidateToken(header)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": "invalid token"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequireAdmin пускает дальше только администраторов.
// Вешается после Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": "authentication required"})
			return
		}
		if claims.Role != model.UserRoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden,
				gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

// ClaimsFromContext достаёт claims аутентифицированного пользователя.
func ClaimsFromContext(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}
