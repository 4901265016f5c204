package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logiroute/ms-delivery/pkg/model"
	"logiroute/ms-delivery/pkg/utils"
)

type recordingReporter struct {
	mu      sync.Mutex
	reports []Report
}

func (r *recordingReporter) Report(_ context.Context, rep Report) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, rep)
}

func (r *recordingReporter) Flush(time.Duration) {}

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorReporter(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		panics     bool
		wantStatus int
		reported   bool
	}{
		{name: "ok", status: http.StatusOK, wantStatus: http.StatusOK},
		{name: "plain 404 is not reported", status: http.StatusNotFound, wantStatus: http.StatusNotFound},
		{name: "400 is not reported", status: http.StatusBadRequest, wantStatus: http.StatusBadRequest},
		{name: "409 is reported", status: http.StatusConflict, wantStatus: http.StatusConflict, reported: true},
		{name: "429 is reported", status: http.StatusTooManyRequests, wantStatus: http.StatusTooManyRequests, reported: true},
		{name: "500 is reported", status: http.StatusInternalServerError, wantStatus: http.StatusInternalServerError, reported: true},
		{name: "503 is reported", status: http.StatusServiceUnavailable, wantStatus: http.StatusServiceUnavailable, reported: true},
		{name: "panic becomes 500", panics: true, wantStatus: http.StatusInternalServerError, reported: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := &recordingReporter{}
			r := gin.New()
			r.Use(ErrorReporter(rep))
			r.GET("/x", func(c *gin.Context) {
				if tt.panics {
					panic("boom")
				}
				c.Status(tt.status)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set(utils.HeaderUserID, "u-1")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if !tt.reported {
				assert.Empty(t, rep.reports)
				return
			}
			require.Len(t, rep.reports, 1)
			assert.Equal(t, tt.wantStatus, rep.reports[0].Status)
			assert.Equal(t, "u-1", rep.reports[0].UserID)
			assert.Equal(t, tt.panics, rep.reports[0].Panic != nil)
		})
	}
}

func TestNewReporter_NoDSN(t *testing.T) {
	rep, err := NewReporter("", "test", "svc")
	require.NoError(t, err)
	assert.IsType(t, LogReporter{}, rep)
}

const secret = "gateway-secret"

func echoIdentity(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"id":   c.GetHeader(utils.HeaderUserID),
		"role": c.GetHeader(utils.HeaderUserRole),
	})
}

func TestGatewayAuth(t *testing.T) {
	user := model.User{Role: model.RoleMerchant}
	user.ID = uuid.New()
	valid, _, err := utils.CreateAccessToken(user, secret, time.Hour)
	require.NoError(t, err)
	expired, _, err := utils.CreateAccessToken(user, secret, -time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.Use(GatewayAuth(secret))
	r.Any("/*path", echoIdentity)

	tests := []struct {
		name       string
		path       string
		auth       string
		spoofID    string
		wantStatus int
		wantID     string
	}{
		{name: "public login", path: "/auth/login", wantStatus: http.StatusOK},
		{name: "public route drops spoofed identity", path: "/auth/register", spoofID: uuid.NewString(), wantStatus: http.StatusOK},
		{name: "missing token", path: "/orders", wantStatus: http.StatusUnauthorized},
		{name: "expired token", path: "/orders", auth: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", path: "/orders", auth: "Bearer abc", wantStatus: http.StatusUnauthorized},
		{name: "valid token", path: "/orders/123", auth: "Bearer " + valid, wantStatus: http.StatusOK, wantID: user.ID.String()},
		{name: "valid token overrides spoofed id", path: "/users/me", auth: "bearer " + valid, spoofID: uuid.NewString(), wantStatus: http.StatusOK, wantID: user.ID.String()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			if tt.spoofID != "" {
				req.Header.Set(utils.HeaderUserID, tt.spoofID)
				req.Header.Set(utils.HeaderUserRole, "admin")
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), `"id":"`+tt.wantID+`"`)
				if tt.wantID != "" {
					assert.Contains(t, w.Body.String(), `"role":"merchant"`)
				} else {
					assert.Contains(t, w.Body.String(), `"role":""`)
				}
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	r := gin.New()
	r.Use(rl.Handler())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func(user string) int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if user != "" {
			req.Header.Set(utils.HeaderUserID, user)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("a"))
	assert.Equal(t, http.StatusOK, do("a"))
	assert.Equal(t, http.StatusTooManyRequests, do("a"))
	// separate bucket per user
	assert.Equal(t, http.StatusOK, do("b"))

	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, 2, rl.Cleanup(time.Millisecond))
}

type codedError struct{ code int }

func (e codedError) Error() string { return http.StatusText(e.code) }

// renderErrors writes pending handler errors after the chain returns, the way
// the app's error handler does.
func renderErrors(c *gin.Context) {
	c.Next()
	if last := c.Errors.Last(); last != nil && !c.Writer.Written() {
		status := http.StatusInternalServerError
		var ce codedError
		if errors.As(last.Err, &ce) {
			status = ce.code
		}
		c.JSON(status, gin.H{"error": last.Err.Error()})
	}
}

func TestErrorReporter_ErrorsRenderedOutside(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		reported bool
		status   int
	}{
		{name: "404 is skipped", err: codedError{http.StatusNotFound}},
		{name: "409 is reported", err: codedError{http.StatusConflict}, reported: true, status: http.StatusConflict},
		{name: "plain error renders as 500", err: assert.AnError, reported: true, status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := &recordingReporter{}
			r := gin.New()
			r.Use(renderErrors)
			r.Use(ErrorReporter(rep))
			r.GET("/x", func(c *gin.Context) { _ = c.Error(tt.err) })

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			if !tt.reported {
				assert.Empty(t, rep.reports)
				return
			}
			assert.Equal(t, tt.status, w.Code)
			require.Len(t, rep.reports, 1)
			assert.Equal(t, tt.status, rep.reports[0].Status)
			assert.ErrorIs(t, rep.reports[0].Err, tt.err)
		})
	}
}
