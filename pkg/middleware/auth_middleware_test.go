package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pratomobowo/Pencatatan-Keuangan-UMKM-sub000/pkg/jwt"
)

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/private", AuthMiddleware("segredo"), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("user_id"))
	})

	valid, _ := jwt.GenerateToken("u-1", "admin", "segredo", time.Hour)
	forged, _ := jwt.GenerateToken("u-1", "admin", "outro", time.Hour)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"sem token", "", http.StatusUnauthorized},
		{"sem bearer", valid, http.StatusUnauthorized},
		{"assinatura errada", "Bearer " + forged, http.StatusUnauthorized},
		{"válido", "Bearer " + valid, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, w.Code)
			}
			if tt.want == http.StatusOK && w.Body.String() != "u-1" {
				t.Fatalf("expected user id in context, got %q", w.Body.String())
			}
		})
	}
}
