package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"plantya-platform/internal/core/auth"
	"plantya-platform/internal/core/logger"
	resp "plantya-platform/internal/transport/http/response"
)

func init() { gin.SetMode(gin.TestMode) }

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func problemOf(t *testing.T, w *httptest.ResponseRecorder) resp.Problem {
	t.Helper()
	var p resp.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

func TestAuthJWT(t *testing.T) {
	j := auth.NewJWTer("secret", "plantya", time.Hour)
	r := gin.New()
	r.GET("/me", AuthJWT(j), func(c *gin.Context) {
		c.String(200, c.GetString(KeyUserID)+"/"+c.GetString(KeyRole))
	})
	r.GET("/admin", AuthJWT(j, "ADMIN"), func(c *gin.Context) { c.Status(200) })

	w := do(r, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, 401, w.Code)
	assert.Equal(t, resp.CodeTokenMissing, problemOf(t, w).Code)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = do(r, req)
	assert.Equal(t, 401, w.Code)
	assert.Equal(t, resp.CodeTokenInvalid, problemOf(t, w).Code)

	tok, _, err := j.Issue("S00002", "STAFF")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = do(r, req)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "S00002/STAFF", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = do(r, req)
	assert.Equal(t, 403, w.Code)
	assert.Equal(t, resp.CodeForbidden, problemOf(t, w).Code)
}

func TestAuthJWTReadsCookie(t *testing.T) {
	j := auth.NewJWTer("secret", "plantya", time.Hour)
	r := gin.New()
	r.GET("/me", AuthJWT(j), func(c *gin.Context) { c.String(200, c.GetString(KeyUserID)) })
	r.POST("/login", func(c *gin.Context) {
		tok, _, _ := j.Issue("U00001", "USER")
		SetTokenCookie(c, tok, 3600, true)
		c.Status(200)
	})
	r.POST("/logout", func(c *gin.Context) {
		ClearTokenCookie(c, true)
		c.Status(204)
	})

	w := do(r, httptest.NewRequest(http.MethodPost, "/login", nil))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	ck := cookies[0]
	assert.Equal(t, CookieToken, ck.Name)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteStrictMode, ck.SameSite)
	assert.Equal(t, 3600, ck.MaxAge)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: CookieToken, Value: ck.Value})
	w = do(r, req)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "U00001", w.Body.String())

	// 头优先于 cookie
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: CookieToken, Value: ck.Value})
	req.Header.Set("Authorization", "Bearer garbage")
	assert.Equal(t, 401, do(r, req).Code)

	w = do(r, httptest.NewRequest(http.MethodPost, "/logout", nil))
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestRequestIDPropagates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) {
		c.String(200, logger.RequestIDFromContext(c.Request.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "rid-1")
	w := do(r, req)
	assert.Equal(t, "rid-1", w.Body.String())
	assert.Equal(t, "rid-1", w.Header().Get(HeaderRequestID))

	w = do(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(HeaderRequestID))
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(0, 1))
	r.GET("/x", func(c *gin.Context) { c.Status(200) })

	assert.Equal(t, 200, do(r, httptest.NewRequest(http.MethodGet, "/x", nil)).Code)
	w := do(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, 429, w.Code)
	assert.Equal(t, resp.CodeTooManyRequests, problemOf(t, w).Code)
}

func TestMaxBodyBytes(t *testing.T) {
	r := gin.New()
	r.Use(MaxBodyBytes(8))
	r.POST("/x", func(c *gin.Context) { c.Status(200) })

	w := do(r, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"deviceName":"sensor-1"}`)))
	assert.Equal(t, 413, w.Code)
	assert.Equal(t, resp.CodeBodyTooLarge, problemOf(t, w).Code)
}

func TestRecovery(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	r := gin.New()
	r.Use(Recovery(zap.New(core)))
	r.GET("/x", func(*gin.Context) { panic("boom") })

	w := do(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, 500, w.Code)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", problemOf(t, w).Code)
	assert.NotZero(t, logs.Len())
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(10 * time.Millisecond))
	r.GET("/x", func(c *gin.Context) { <-c.Request.Context().Done() })

	w := do(r, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, 504, w.Code)
	assert.Equal(t, resp.CodeTimeout, problemOf(t, w).Code)
}

func TestAccessLogMasksSecrets(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(RequestID(), AccessLog(zap.New(core)))
	r.GET("/x", func(c *gin.Context) { c.Status(204) })

	do(r, httptest.NewRequest(http.MethodGet, "/x?token=abc&search=sensor", nil))
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	q, ok := fields["query"].(map[string][]string)
	require.True(t, ok)
	assert.Equal(t, []string{"****"}, q["token"])
	assert.Equal(t, []string{"sensor"}, q["search"])
	assert.EqualValues(t, 204, fields["status"])
	assert.NotEmpty(t, fields["rid"])
}
