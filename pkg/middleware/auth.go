package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"logiroute/ms-delivery/pkg/utils"
)

// publicRoutes are reachable without a bearer token.
var publicRoutes = map[string]bool{
	"/health":        true,
	"/metrics":       true,
	"/auth/login":    true,
	"/auth/register": true,
	"/auth/refresh":  true,
}

func IsPublic(path string) bool {
	return publicRoutes[strings.TrimRight(path, "/")]
}

func bearer(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// GatewayAuth verifies the bearer token and forwards the identity as headers.
// Identity headers sent by the client are always dropped.
func GatewayAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Header.Del(utils.HeaderUserID)
		c.Request.Header.Del(utils.HeaderUserRole)

		if IsPublic(c.Request.URL.Path) {
			c.Next()
			return
		}

		claims, err := utils.ParseAccessToken(bearer(c), secret)
		if err != nil {
			logrus.WithContext(c.Request.Context()).
				WithField("path", c.Request.URL.Path).
				WithError(err).Warn("error_401: invalid bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": utils.MessageError()[http.StatusUnauthorized],
			})
			return
		}

		c.Request.Header.Set(utils.HeaderUserID, claims.Subject)
		c.Request.Header.Set(utils.HeaderUserRole, string(claims.Role))
		c.Next()
	}
}
