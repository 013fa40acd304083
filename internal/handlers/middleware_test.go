package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"stepping_debug/internal/service"

	"github.com/gin-gonic/gin"
)

// minimal router wiring only the middleware + protected endpoints
func newMiddlewareOnlyRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/secure", h.userIdMiddleware, func(c *gin.Context) {
		uid, _ := c.Get(ctxUserID)
		c.JSON(http.StatusOK, gin.H{"ok": true, "userId": uid, "scopes": c.GetStringSlice(ctxScopes)})
	})
	r.GET("/write-only", h.userIdMiddleware, h.requireScope(service.ScopeWrite), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestUserIDMiddleware_Errors(t *testing.T) {
	type want struct {
		code   int
		errMsg string
	}
	cases := []struct {
		name     string
		header   string
		parseErr error
		want     want
	}{
		{
			name:   "missing header",
			header: "",
			want:   want{code: http.StatusUnauthorized, errMsg: "missing Authorization header"},
		},
		{
			name:   "invalid scheme",
			header: "Token abc",
			want:   want{code: http.StatusUnauthorized, errMsg: "invalid Authorization header format"},
		},
		{
			name:   "bearer without token",
			header: "Bearer",
			want:   want{code: http.StatusUnauthorized, errMsg: "invalid Authorization header format"},
		},
		{
			name:   "bearer with blank token",
			header: "Bearer   ",
			want:   want{code: http.StatusUnauthorized, errMsg: "invalid Authorization header format"},
		},
		{
			name:     "expired/invalid token",
			header:   "Bearer expired",
			parseErr: errors.New("expired"),
			want:     want{code: http.StatusUnauthorized, errMsg: "invalid or expired token"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{parseErr: tc.parseErr}
			s := &service.Service{Authorization: auth}
			r := newMiddlewareOnlyRouter(s)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != tc.want.code {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.want.code, w.Body.String())
			}

			var out struct {
				Error string `json:"error"`
			}
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if out.Error != tc.want.errMsg {
				t.Fatalf("error message: got %q, want %q", out.Error, tc.want.errMsg)
			}
		})
	}
}

func TestUserIDMiddleware_SuccessSetsPrincipal(t *testing.T) {
	cases := []struct {
		name      string
		url       string
		header    string
		wantToken string
	}{
		{name: "bearer header", url: "/secure", header: "Bearer good-token", wantToken: "good-token"},
		{name: "query token", url: "/secure?access_token=q-token", wantToken: "q-token"},
		{name: "header wins over query", url: "/secure?access_token=q-token", header: "Bearer h-token", wantToken: "h-token"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{principal: service.Principal{UserID: 123, Scopes: []string{service.ScopeRead}}}
			r := newMiddlewareOnlyRouter(&service.Service{Authorization: auth})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.url, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status: got %d, want %d; body=%s", w.Code, http.StatusOK, w.Body.String())
			}

			var resp struct {
				OK     bool     `json:"ok"`
				UserID int      `json:"userId"`
				Scopes []string `json:"scopes"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !resp.OK || resp.UserID != 123 || len(resp.Scopes) != 1 || resp.Scopes[0] != service.ScopeRead {
				t.Fatalf("unexpected response: %+v", resp)
			}
			if auth.lastParseToken != tc.wantToken {
				t.Fatalf("ParseToken got %q, want %q", auth.lastParseToken, tc.wantToken)
			}
		})
	}
}

func TestRequireScope(t *testing.T) {
	cases := []struct {
		name     string
		scopes   []string
		wantCode int
	}{
		{name: "granted", scopes: []string{service.ScopeRead, service.ScopeWrite}, wantCode: http.StatusNoContent},
		{name: "read only", scopes: []string{service.ScopeRead}, wantCode: http.StatusForbidden},
		{name: "no scopes", scopes: nil, wantCode: http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			auth := &mockAuth{principal: service.Principal{UserID: 1, Scopes: tc.scopes}}
			r := newMiddlewareOnlyRouter(&service.Service{Authorization: auth})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/write-only", nil)
			req.Header.Set("Authorization", "Bearer t")
			r.ServeHTTP(w, req)

			if w.Code != tc.wantCode {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.wantCode, w.Body.String())
			}
			if tc.wantCode == http.StatusForbidden {
				var out map[string]string
				_ = json.Unmarshal(w.Body.Bytes(), &out)
				if out["error"] != "insufficient scope" || out["required"] != service.ScopeWrite {
					t.Fatalf("unexpected body: %v", out)
				}
			}
		})
	}
}
