package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-clinic-api/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func TestBearerAuthRejectsBeforeHandler(t *testing.T) {
	issued := time.Now().Add(-5 * time.Hour)
	jwt := helpers.NewJWTManager("secret", 4*time.Hour)
	valid, _, err := jwt.GenerateToken(9)
	if err != nil {
		t.Fatal(err)
	}
	expired, _, err := helpers.NewJWTManager("secret", 4*time.Hour).
		WithClock(func() time.Time { return issued }).GenerateToken(9)
	if err != nil {
		t.Fatal(err)
	}
	forged, _, err := helpers.NewJWTManager("other", 4*time.Hour).GenerateToken(9)
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"malformed token", "Bearer abc.def", http.StatusUnauthorized},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized},
		{"bad signature", "Bearer " + forged, http.StatusUnauthorized},
		{"valid token", "Bearer " + valid, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ran := false
			r := gin.New()
			r.GET("/p", BearerAuth(jwt), func(c *gin.Context) {
				ran = true
				uid, _ := UserID(c)
				c.JSON(http.StatusOK, gin.H{"uid": uid})
			})
			req := httptest.NewRequest(http.MethodGet, "/p", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			if tc.status == http.StatusUnauthorized {
				if ran {
					t.Fatal("handler ran for a rejected request")
				}
				var body map[string]any
				_ = json.Unmarshal(w.Body.Bytes(), &body)
				if body["success"] != false || body["error"] == "" {
					t.Fatalf("body = %s", w.Body.String())
				}
				return
			}
			if !ran || w.Body.String() != `{"uid":9}` {
				t.Fatalf("body = %s", w.Body.String())
			}
		})
	}
}
