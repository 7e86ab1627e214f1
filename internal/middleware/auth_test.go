package middleware

import (
	"devcollab_backend/internal/config"
	"devcollab_backend/internal/model"
	"devcollab_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-test-secret-test-secret"

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JWT: config.JWTConfig{Secret: testSecret}}

	r := gin.New()
	r.Use(AuthMiddleware(cfg))
	r.GET("/me", func(c *gin.Context) {
		util.Success(c, util.CurrentUserID(c))
	})
	r.GET("/admin", RoleMiddleware(model.Maintainer), func(c *gin.Context) {
		util.Success(c, nil)
	})
	return r
}

func do(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthRouter()

	valid, err := util.GenerateJWT(42, model.Developer, testSecret, time.Hour)
	require.NoError(t, err)
	expired, err := util.GenerateJWT(42, model.Developer, testSecret, -time.Minute)
	require.NoError(t, err)
	forged, err := util.GenerateJWT(42, model.Developer, "another-secret", time.Hour)
	require.NoError(t, err)
	anonymous, err := util.GenerateJWT(0, model.Developer, testSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		code  int
	}{
		{"valid", valid, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"expired", expired, http.StatusUnauthorized},
		{"wrong secret", forged, http.StatusUnauthorized},
		{"zero user", anonymous, http.StatusUnauthorized},
		{"garbage", "not-a-jwt", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, "/me", tt.token)
			assert.Equal(t, tt.code, w.Code)
		})
	}

	w := do(r, "/me", valid)
	assert.JSONEq(t, `{"code":200,"message":"success","data":42}`, w.Body.String())
}

func TestRoleMiddleware(t *testing.T) {
	r := newAuthRouter()

	student, _ := util.GenerateJWT(1, model.Developer, testSecret, time.Hour)
	maintainer, _ := util.GenerateJWT(2, model.Maintainer, testSecret, time.Hour)
	admin, _ := util.GenerateJWT(3, model.Admin, testSecret, time.Hour)

	assert.Equal(t, http.StatusForbidden, do(r, "/admin", student).Code)
	assert.Equal(t, http.StatusOK, do(r, "/admin", maintainer).Code)
	assert.Equal(t, http.StatusOK, do(r, "/admin", admin).Code)
}
