package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/medilabo/pkg/apierror"
)

// TestRecovery はRecoveryミドルウェアを検証する。
func TestRecovery(t *testing.T) {
	t.Parallel()

	newRouter := func() *gin.Engine {
		router := gin.New()
		router.Use(Recovery(apierror.NewResponder("test", apierror.BackendMessages)))
		router.GET("/panic", func(_ *gin.Context) {
			panic("database password is hunter2")
		})
		router.GET("/panic-int", func(_ *gin.Context) {
			panic(42)
		})
		router.GET("/ok", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		return router
	}

	t.Run("パニックが発生した場合500のエンベロープが返ること", func(t *testing.T) {
		t.Parallel()

		router := newRouter()
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusInternalServerError)
		}
		var body apierror.Envelope
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("レスポンスボディのパースに失敗: %v", err)
		}
		if body.Message != "Une erreur inattendue est survenue" {
			t.Errorf("message = %q", body.Message)
		}
		if body.Path != "/panic" {
			t.Errorf("path = %q, want %q", body.Path, "/panic")
		}
		if strings.Contains(w.Body.String(), "hunter2") {
			t.Error("パニックの内容がレスポンスに含まれている")
		}
	})

	t.Run("文字列以外のパニック値でも500が返ること", func(t *testing.T) {
		t.Parallel()

		router := newRouter()
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic-int", nil))

		if w.Code != http.StatusInternalServerError {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusInternalServerError)
		}
	})

	t.Run("パニック後もサーバーが次のリクエストを処理できること", func(t *testing.T) {
		t.Parallel()

		router := newRouter()
		w1 := httptest.NewRecorder()
		router.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/panic", nil))

		w2 := httptest.NewRecorder()
		router.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/ok", nil))
		if w2.Code != http.StatusOK {
			t.Errorf("2回目のステータスコード = %d, want %d", w2.Code, http.StatusOK)
		}
	})
}
