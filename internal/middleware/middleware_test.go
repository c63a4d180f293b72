package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := CurrentPersonID(c)
		c.JSON(http.StatusOK, gin.H{"person_id": id})
	})
	r.GET("/things/:id", handlers...)
	return r
}

func perform(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/things/5", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	jwtService, err := auth.NewJWTService("test-secret", 1)
	require.NoError(t, err)
	m := NewAuthMiddleware(jwtService)
	token, _, err := jwtService.GenerateToken(3, string(entity.RoleTeacher))
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantType   string
	}{
		{"missing header", "", http.StatusUnauthorized, "token_missing"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "token_format"},
		{"garbage token", "Bearer abc", http.StatusUnauthorized, "token_invalid"},
		{"valid token", "Bearer " + token, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(newTestRouter(m.RequireAuth()), tt.header)
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantType != "" {
				assert.Contains(t, w.Body.String(), tt.wantType)
			} else {
				assert.JSONEq(t, `{"person_id":3}`, w.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	jwtService, err := auth.NewJWTService("test-secret", 1)
	require.NoError(t, err)
	m := NewAuthMiddleware(jwtService)
	student, _, err := jwtService.GenerateToken(1, string(entity.RoleStudent))
	require.NoError(t, err)
	teacher, _, err := jwtService.GenerateToken(2, string(entity.RoleTeacher))
	require.NoError(t, err)
	admin, _, err := jwtService.GenerateToken(3, string(entity.RoleAdmin))
	require.NoError(t, err)

	staff := newTestRouter(m.RequireAuth(), m.StaffOnly())
	assert.Equal(t, http.StatusForbidden, perform(staff, "Bearer "+student).Code)
	assert.Equal(t, http.StatusOK, perform(staff, "Bearer "+teacher).Code)
	assert.Equal(t, http.StatusOK, perform(staff, "Bearer "+admin).Code)

	admins := newTestRouter(m.RequireAuth(), m.AdminOnly())
	assert.Equal(t, http.StatusForbidden, perform(admins, "Bearer "+teacher).Code)
	assert.Equal(t, http.StatusOK, perform(admins, "Bearer "+admin).Code)

	withoutAuth := newTestRouter(m.AdminOnly())
	assert.Equal(t, http.StatusUnauthorized, perform(withoutAuth, "").Code)
}

func TestExtractUintParam(t *testing.T) {
	r := gin.New()
	r.GET("/things/:id", ExtractUintParam("id", "thingID"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.MustGet("thingID").(uint)})
	})

	for path, want := range map[string]int{
		"/things/12":  http.StatusOK,
		"/things/0":   http.StatusBadRequest,
		"/things/-1":  http.StatusBadRequest,
		"/things/abc": http.StatusBadRequest,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code, path)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
	assert.Equal(t, generated, w.Body.String())

	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, given)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, given, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}

func TestRateLimiter_FailsOpenWithoutRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	r := gin.New()
	r.POST("/login", NewRateLimiter(client).Limit(LoginRateLimitConfig(1, time.Minute)), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}
