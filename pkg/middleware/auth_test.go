package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/medilabo/pkg/apierror"
	"github.com/nao1215/medilabo/pkg/security"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testSecret はテスト用の署名シークレット。
const testSecret = "test-secret-key-for-unit-tests-0123456789"

// testMatrix はユーザーサービスと同じ構成の認可表。
var testMatrix = security.NewMatrix(
	security.Rule{Pattern: "/auth/**", Access: security.Public()},
	security.Rule{Pattern: "/user/**", Access: security.RequireRoles(security.RoleUser, security.RoleAdmin)},
	security.Rule{Pattern: "/patients/**", Access: security.RequireRoles(security.RoleUser)},
	security.Rule{Pattern: "/admin/**", Access: security.RequireRoles(security.RoleAdmin)},
	security.Rule{Pattern: "/**", Access: security.Authenticated()},
)

func newTestSecurity(t *testing.T) (*security.Issuer, *security.Verifier) {
	t.Helper()

	cfg := security.Config{Secret: testSecret, TokenTTL: 10 * time.Hour}
	issuer, err := security.NewIssuer(cfg)
	if err != nil {
		t.Fatalf("NewIssuer()でエラーが発生: %v", err)
	}
	verifier, err := security.NewVerifier(cfg)
	if err != nil {
		t.Fatalf("NewVerifier()でエラーが発生: %v", err)
	}
	return issuer, verifier
}

func bearer(t *testing.T, issuer *security.Issuer, subject string, role security.Role, ttl time.Duration) string {
	t.Helper()

	token, err := issuer.Issue(subject, role, ttl)
	if err != nil {
		t.Fatalf("Issue()でエラーが発生: %v", err)
	}
	return security.BearerPrefix + token
}

// whoami はPrincipalとAuthorizationヘッダーの値をそのまま返すハンドラー。
func whoami(c *gin.Context) {
	p, ok := PrincipalFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"authenticated": ok,
		"subject":       p.SubjectID,
		"role":          p.Role,
		"userId":        GetUserID(c),
		"authorization": security.AuthorizationFromContext(c.Request.Context()),
	})
}

func newAuthRouter(verifier *security.Verifier, opts ...AuthOption) *gin.Engine {
	responder := apierror.NewResponder("test", apierror.BackendMessages)
	router := gin.New()
	router.Use(Authorize(verifier, testMatrix, responder, opts...))
	router.NoRoute(responder.RouteNotFound)
	router.POST("/auth/login", whoami)
	router.GET("/user/profile", whoami)
	router.GET("/patients", whoami)
	router.GET("/admin/users", whoami)
	return router
}

func serve(router http.Handler, method, path, authorization string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

// TestAuthorize はリクエストフィルターの判定を検証する。
func TestAuthorize(t *testing.T) {
	t.Parallel()

	t.Run("USERトークンでUSER専用ルートにアクセスできること", func(t *testing.T) {
		t.Parallel()

		issuer, verifier := newTestSecurity(t)
		router := newAuthRouter(verifier)
		header := bearer(t, issuer, "user-1", security.RoleUser, 36000*time.Second)

		w, body := serve(router, http.MethodGet, "/patients", header)
		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		if body["subject"] != "user-1" || body["role"] != "USER" || body["userId"] != "user-1" {
			t.Errorf("Principal = %v", body)
		}
		if body["authorization"] != header {
			t.Errorf("authorization = %v, want %q", body["authorization"], header)
		}
	})

	t.Run("期限切れトークンでは401と未認証メッセージが返ること", func(t *testing.T) {
		t.Parallel()

		issuer, verifier := newTestSecurity(t)
		router := newAuthRouter(verifier)
		header := bearer(t, issuer, "user-1", security.RoleUser, -1000*time.Second)

		w, body := serve(router, http.MethodGet, "/patients", header)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusUnauthorized)
		}
		if body["message"] != "Vous n'êtes pas authentifiés" {
			t.Errorf("message = %v", body["message"])
		}
	})

	t.Run("ADMINトークンでUSER専用ルートにアクセスすると403が返ること", func(t *testing.T) {
		t.Parallel()

		issuer, verifier := newTestSecurity(t)
		router := newAuthRouter(verifier)
		header := bearer(t, issuer, "admin-1", security.RoleAdmin, time.Hour)

		w, body := serve(router, http.MethodGet, "/patients", header)
		if w.Code != http.StatusForbidden {
			t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusForbidden)
		}
		if body["message"] != "Vous n'êtes pas autorisés à consulter cette ressource" {
			t.Errorf("message = %v", body["message"])
		}
	})

	t.Run("USERトークンでADMIN専用ルートにアクセスすると401ではなく403が返ること", func(t *testing.T) {
		t.Parallel()

		issuer, verifier := newTestSecurity(t)
		router := newAuthRouter(verifier)
		header := bearer(t, issuer, "user-1", security.RoleUser, time.Hour)

		w, _ := serve(router, http.MethodGet, "/admin/users", header)
		if w.Code != http.StatusForbidden {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusForbidden)
		}
	})

	t.Run("匿名で存在しないパスにアクセスすると404ではなく401が返ること", func(t *testing.T) {
		t.Parallel()

		_, verifier := newTestSecurity(t)
		router := newAuthRouter(verifier)

		w, _ := serve(router, http.MethodGet, "/does/not/exist", "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("認証済みで存在しないパスにアクセスすると404が返ること", func(t *testing.T) {
		t.Parallel()

		issuer, verifier := newTestSecurity(t)
		router := newAuthRouter(verifier)
		header := bearer(t, issuer, "user-1", security.RoleUser, time.Hour)

		w, body := serve(router, http.MethodGet, "/does/not/exist", header)
		if w.Code != http.StatusNotFound {
			t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusNotFound)
		}
		if body["message"] != "Route inexistante" {
			t.Errorf("message = %v", body["message"])
		}
	})

	t.Run("publicルートは改ざんされたトークンでも匿名として通過すること", func(t *testing.T) {
		t.Parallel()

		_, verifier := newTestSecurity(t)
		router := newAuthRouter(verifier)

		w, body := serve(router, http.MethodPost, "/auth/login", "Bearer abc.def.ghi")
		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		if body["authenticated"] != false {
			t.Errorf("authenticated = %v, want false", body["authenticated"])
		}
	})

	t.Run("存在しないユーザーのトークンは匿名として扱われること", func(t *testing.T) {
		t.Parallel()

		issuer, verifier := newTestSecurity(t)
		router := newAuthRouter(verifier, WithSubjectCheck(func(_ context.Context, id string) (bool, error) {
			return id == "user-1", nil
		}))

		w, _ := serve(router, http.MethodGet, "/user/profile", bearer(t, issuer, "deleted-user", security.RoleUser, time.Hour))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusUnauthorized)
		}
		w, _ = serve(router, http.MethodGet, "/user/profile", bearer(t, issuer, "user-1", security.RoleUser, time.Hour))
		if w.Code != http.StatusOK {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("ユーザーの存在確認に失敗した場合は500が返ること", func(t *testing.T) {
		t.Parallel()

		issuer, verifier := newTestSecurity(t)
		router := newAuthRouter(verifier, WithSubjectCheck(func(context.Context, string) (bool, error) {
			return false, errors.New("database is locked")
		}))

		w, _ := serve(router, http.MethodGet, "/user/profile", bearer(t, issuer, "user-1", security.RoleUser, time.Hour))
		if w.Code != http.StatusInternalServerError {
			t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusInternalServerError)
		}
	})
}

// TestAuthorize_PublicRouteSkipsSubjectCheck はpublicルートで存在確認を行わないことを検証する。
func TestAuthorize_PublicRouteSkipsSubjectCheck(t *testing.T) {
	t.Parallel()

	t.Run("存在確認が失敗する状況でもpublicルートは匿名として通過すること", func(t *testing.T) {
		t.Parallel()

		issuer, verifier := newTestSecurity(t)
		var (
			mu    sync.Mutex
			calls int
		)
		router := newAuthRouter(verifier, WithSubjectCheck(func(context.Context, string) (bool, error) {
			mu.Lock()
			defer mu.Unlock()
			calls++
			return false, errors.New("database is locked")
		}))

		w, body := serve(router, http.MethodPost, "/auth/login", bearer(t, issuer, "user-1", security.RoleUser, time.Hour))
		if w.Code != http.StatusOK {
			t.Fatalf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
		}
		if body["authenticated"] != false {
			t.Errorf("authenticated = %v, want false", body["authenticated"])
		}
		mu.Lock()
		defer mu.Unlock()
		if calls != 0 {
			t.Errorf("存在確認の呼び出し回数 = %d, want 0", calls)
		}
	})
}

// TestAuthorize_Concurrent は並行リクエスト間でPrincipalが混ざらないことを検証する。
func TestAuthorize_Concurrent(t *testing.T) {
	t.Parallel()

	issuer, verifier := newTestSecurity(t)
	router := newAuthRouter(verifier)

	const workers = 64
	headers := make([]string, workers)
	for i := range headers {
		headers[i] = bearer(t, issuer, fmt.Sprintf("user-%d", i), security.RoleUser, time.Hour)
	}

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for range 20 {
				// 偶数番は匿名でpublicルートにアクセスし、前のリクエストの情報が残らないことを確認する
				if i%2 == 0 {
					w, body := serve(router, http.MethodPost, "/auth/login", "")
					if w.Code != http.StatusOK || body["authenticated"] != false || body["authorization"] != "" {
						t.Errorf("匿名リクエストに他のリクエストの情報が含まれている: %v", body)
						return
					}
					continue
				}
				w, body := serve(router, http.MethodGet, "/user/profile", headers[i])
				if w.Code != http.StatusOK {
					t.Errorf("ステータスコード = %d, want %d", w.Code, http.StatusOK)
					return
				}
				if body["subject"] != fmt.Sprintf("user-%d", i) || body["authorization"] != headers[i] {
					t.Errorf("他のリクエストのPrincipalが混入した: got %v, want user-%d", body["subject"], i)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}
