package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newCORSRouter(origins []string, called *bool) *gin.Engine {
	router := gin.New()
	router.Use(CORS(origins))
	handler := func(c *gin.Context) {
		if called != nil {
			*called = true
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/api/notes/1", handler)
	router.OPTIONS("/api/notes/1", handler)
	return router
}

// TestCORS はCORSミドルウェアを検証する。
func TestCORS(t *testing.T) {
	t.Parallel()

	t.Run("許可されたオリジンからのリクエストにCORSヘッダーが設定されること", func(t *testing.T) {
		t.Parallel()

		router := newCORSRouter([]string{"http://localhost:3000"}, nil)
		req := httptest.NewRequest(http.MethodGet, "/api/notes/1", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		want := map[string]string{
			"Access-Control-Allow-Origin":      "http://localhost:3000",
			"Access-Control-Allow-Credentials": "true",
			"Access-Control-Allow-Methods":     "GET, POST, PUT, DELETE, OPTIONS",
			"Access-Control-Allow-Headers":     "Authorization, Content-Type",
			"Vary":                             "Origin",
		}
		for key, value := range want {
			if got := w.Header().Get(key); got != value {
				t.Errorf("%s = %q, want %q", key, got, value)
			}
		}
	})

	t.Run("許可されていないオリジンにはCORSヘッダーが設定されないこと", func(t *testing.T) {
		t.Parallel()

		router := newCORSRouter([]string{"http://localhost:3000"}, nil)
		req := httptest.NewRequest(http.MethodGet, "/api/notes/1", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Access-Control-Allow-Origin = %q, want empty string", got)
		}
	})

	t.Run("空のオリジンは許可リストに含まれないこと", func(t *testing.T) {
		t.Parallel()

		router := newCORSRouter([]string{""}, nil)
		req := httptest.NewRequest(http.MethodGet, "/api/notes/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Access-Control-Allow-Origin = %q, want empty string", got)
		}
	})

	t.Run("プリフライトリクエストで204が返りハンドラーが呼ばれないこと", func(t *testing.T) {
		t.Parallel()

		called := false
		router := newCORSRouter([]string{"http://localhost:3000"}, &called)
		req := httptest.NewRequest(http.MethodOptions, "/api/notes/1", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPut)
		req.Header.Set("Access-Control-Request-Headers", "authorization, x-requested-with")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusNoContent)
		}
		if called {
			t.Error("プリフライトリクエストでハンドラーが呼ばれた")
		}
		if got := w.Header().Get("Access-Control-Allow-Headers"); got != "authorization, x-requested-with" {
			t.Errorf("Access-Control-Allow-Headers = %q", got)
		}
	})

	t.Run("プリフライトでないOPTIONSリクエストはハンドラーに渡されること", func(t *testing.T) {
		t.Parallel()

		called := false
		router := newCORSRouter([]string{"http://localhost:3000"}, &called)
		req := httptest.NewRequest(http.MethodOptions, "/api/notes/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if !called {
			t.Error("ハンドラーが呼ばれなかった")
		}
	})
}
