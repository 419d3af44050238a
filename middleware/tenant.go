package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nathan-the-coder/survey-profiling-tool-backend/config"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/services"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/store"
)

var (
	tenantConfig *config.Config
	jwtService   services.InterfaceJWTService
)

// InitTenantMiddleware initializes the tenant identity middleware
func InitTenantMiddleware(cfg *config.Config, jwt services.InterfaceJWTService) {
	tenantConfig = cfg
	jwtService = jwt
}

// extractToken strips the "Bearer " prefix from an authorization header
func extractToken(authHeader string) string {
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// TenantIdentity resolves the caller's tenant identity and stores it in
// the request context. A valid bearer token wins; otherwise the
// identity header is trusted as-is. The header value is compared
// case-sensitively against the super-tenant name, so a differently
// cased value scopes the caller down to a parish of that literal name.
// Requests without any identity proceed with an empty identity and
// match no households; this middleware never rejects.
func TenantIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("requestID", uuid.NewString())

		role, parish := resolveIdentity(c)
		c.Set("userRole", role)
		c.Set("userParish", parish)
		c.Next()
	}
}

func resolveIdentity(c *gin.Context) (role, parish string) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" && jwtService != nil {
		if claims, err := jwtService.ExtractClaims(extractToken(authHeader)); err == nil {
			return claims.Role, claims.Username
		}
	}

	username := c.GetHeader(tenantConfig.IdentityHeader)
	if username == "" {
		return "", ""
	}
	if username == tenantConfig.SuperTenantName {
		return store.RoleArchdiocese, username
	}
	return store.RoleParish, username
}

// TenantFromContext rebuilds the store tenant from gin context values
func TenantFromContext(c *gin.Context) store.Tenant {
	return store.Tenant{
		Role:   c.GetString("userRole"),
		Parish: c.GetString("userParish"),
	}
}
