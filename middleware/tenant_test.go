package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nathan-the-coder/survey-profiling-tool-backend/config"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/services"
	"github.com/nathan-the-coder/survey-profiling-tool-backend/store"
)

func identityRouter(t *testing.T) (*gin.Engine, services.InterfaceJWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecretKey:    "test-secret",
		IdentityHeader:  "X-Username",
		SuperTenantName: "Archdiocese of Tuguegarao",
	}
	jwt := services.NewJWTService(cfg)
	InitTenantMiddleware(cfg, jwt)

	r := gin.New()
	r.Use(TenantIdentity())
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"role":      c.GetString("userRole"),
			"parish":    c.GetString("userParish"),
			"requestID": c.GetString("requestID"),
		})
	})
	return r, jwt
}

func whoami(t *testing.T, r *gin.Engine, headers map[string]string) map[string]string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestIdentityFromHeader(t *testing.T) {
	r, _ := identityRouter(t)

	got := whoami(t, r, map[string]string{"X-Username": "San Jacinto"})
	assert.Equal(t, store.RoleParish, got["role"])
	assert.Equal(t, "San Jacinto", got["parish"])
	assert.NotEmpty(t, got["requestID"])
}

func TestIdentityFromHeaderSuperTenant(t *testing.T) {
	r, _ := identityRouter(t)

	got := whoami(t, r, map[string]string{"X-Username": "Archdiocese of Tuguegarao"})
	assert.Equal(t, store.RoleArchdiocese, got["role"])

	// the comparison is case-sensitive
	got = whoami(t, r, map[string]string{"X-Username": "archdiocese of tuguegarao"})
	assert.Equal(t, store.RoleParish, got["role"])
}

func TestIdentityFromToken(t *testing.T) {
	r, jwt := identityRouter(t)

	token, err := jwt.GenerateToken("San Jacinto", store.RoleParish)
	require.NoError(t, err)

	// a valid token beats the header
	got := whoami(t, r, map[string]string{
		"Authorization": "Bearer " + token,
		"X-Username":    "Archdiocese of Tuguegarao",
	})
	assert.Equal(t, store.RoleParish, got["role"])
	assert.Equal(t, "San Jacinto", got["parish"])

	// a garbage token falls back to the header
	got = whoami(t, r, map[string]string{
		"Authorization": "Bearer not-a-token",
		"X-Username":    "San Jacinto",
	})
	assert.Equal(t, store.RoleParish, got["role"])
}

func TestNoIdentity(t *testing.T) {
	r, _ := identityRouter(t)

	got := whoami(t, r, nil)
	assert.Equal(t, "", got["role"])
	assert.Equal(t, "", got["parish"])
}
