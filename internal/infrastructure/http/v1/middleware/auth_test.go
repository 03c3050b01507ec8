package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	appctx "jobdesk/internal/core/context"
)

type fakeValidator struct {
	user *appctx.UserContext
}

func (v fakeValidator) ValidateToken(token string) (*appctx.UserContext, error) {
	if token != "good-token" {
		return nil, errors.New("invalid token")
	}
	return v.user, nil
}

func newAuthTestRouter(handler gin.HandlerFunc) (*gin.Engine, *string) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler())

	var seenUserID string
	router.GET("/resource", handler, func(c *gin.Context) {
		if user := appctx.GetUser(c.Request.Context()); user != nil {
			seenUserID = user.UserID
		}
		c.Status(http.StatusOK)
	})
	return router, &seenUserID
}

func TestAuthRequiresToken(t *testing.T) {
	validator := fakeValidator{user: &appctx.UserContext{UserID: "user-1"}}
	router, _ := newAuthTestRouter(Auth(validator))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "good-token", http.StatusUnauthorized},
		{"bad token", "Bearer bad-token", http.StatusUnauthorized},
		{"valid token", "Bearer good-token", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/resource", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestOptionalAuthPassesAnonymous(t *testing.T) {
	validator := fakeValidator{user: &appctx.UserContext{UserID: "user-1"}}
	router, seenUserID := newAuthTestRouter(OptionalAuth(validator))

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, *seenUserID)
}

func TestOptionalAuthPopulatesUserContext(t *testing.T) {
	validator := fakeValidator{user: &appctx.UserContext{UserID: "user-1"}}
	router, seenUserID := newAuthTestRouter(OptionalAuth(validator))

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", *seenUserID)
}

func TestOptionalAuthIgnoresBadToken(t *testing.T) {
	validator := fakeValidator{user: &appctx.UserContext{UserID: "user-1"}}
	router, seenUserID := newAuthTestRouter(OptionalAuth(validator))

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, *seenUserID)
}
