package gateway

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/medilabo/pkg/apierror"
	"github.com/nao1215/medilabo/pkg/httpclient"
	"github.com/nao1215/medilabo/pkg/middleware"
	"github.com/nao1215/medilabo/pkg/security"
)

// Server はAPI GatewayサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// services は/api/{name}/... の転送先クライアント。
	services map[string]*httpclient.Client
	// frontend は/frontend/... の転送先クライアント。
	frontend *httpclient.Client
	// responder はエラーレスポンスを生成する。
	responder *apierror.Responder
}

// NewServer は新しいGatewayサーバーを生成する。
func NewServer(cfg Config) (*Server, error) {
	verifier, err := security.NewVerifier(cfg.Security)
	if err != nil {
		return nil, fmt.Errorf("トークン検証者の生成に失敗: %w", err)
	}

	s := &Server{
		router: gin.New(),
		port:   cfg.Port,
		services: map[string]*httpclient.Client{
			"users":      httpclient.New(cfg.UserServiceURL),
			"notes":      httpclient.New(cfg.NoteServiceURL),
			"evaluation": httpclient.New(cfg.EvaluationServiceURL),
		},
		frontend:  httpclient.New(cfg.FrontendServiceURL),
		responder: apierror.NewResponder("gateway", apierror.GatewayMessages),
	}
	s.setupRoutes(verifier, cfg.FrontendURL)
	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes(verifier *security.Verifier, frontendURL string) {
	// ヘルスチェック（認可フィルターの対象外）
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "gateway"})
	})

	s.router.Use(middleware.Recovery(s.responder))
	s.router.Use(gin.Logger())
	s.router.Use(middleware.CORS([]string{frontendURL}))
	s.router.Use(middleware.Authorize(verifier, AccessMatrix(), s.responder))
	s.router.NoRoute(s.responder.RouteNotFound)

	s.router.Any("/api/:service/*path", s.handleServiceProxy())
	s.router.Any("/frontend/*path", s.handleFrontendProxy())
}

// handleServiceProxy は/api/{service}/{path}を該当サービスの/{path}へ転送するハンドラを返す。
func (s *Server) handleServiceProxy() gin.HandlerFunc {
	return func(c *gin.Context) {
		client, ok := s.services[c.Param("service")]
		if !ok {
			s.responder.RouteNotFound(c)
			return
		}
		s.doProxy(c, client, upstreamPath(c, "/api/"+c.Param("service")))
	}
}

// handleFrontendProxy は/frontend/{path}をフロントエンドの/{path}へ転送するハンドラを返す。
func (s *Server) handleFrontendProxy() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.doProxy(c, s.frontend, upstreamPath(c, "/frontend"))
	}
}

// upstreamPath はリクエストのエスケープ済みパスからprefixを取り除いた転送先パスを返す。
// 呼び出し元が送ったエンコードをそのまま保つため、デコード済みのc.Param("path")は使わない。
func upstreamPath(c *gin.Context, prefix string) string {
	if rest, ok := strings.CutPrefix(c.Request.URL.EscapedPath(), prefix); ok && strings.HasPrefix(rest, "/") {
		return rest
	}
	// プレフィックス自体がエンコードされている場合はデコード済みの値を再エスケープする
	return (&url.URL{Path: c.Param("path")}).EscapedPath()
}

// doProxy はリクエストを内部サービスにプロキシする共通処理。pathはエスケープ済み。
// Authorizationヘッダーはhttpclientがリクエストのコンテキストから転送する。
// 転送先のステータス、Content-Type、ボディはそのまま返す。
func (s *Server) doProxy(c *gin.Context, client *httpclient.Client, path string) {
	if c.Request.URL.RawQuery != "" {
		path += "?" + c.Request.URL.RawQuery
	}

	var body io.Reader
	if c.Request.ContentLength != 0 {
		body = c.Request.Body
	}
	header := http.Header{}
	for _, key := range []string{"Content-Type", "Accept", "Accept-Language"} {
		if v := c.GetHeader(key); v != "" {
			header.Set(key, v)
		}
	}

	resp, err := client.Send(c.Request.Context(), c.Request.Method, path, body, header)
	if err != nil {
		s.responder.BadGateway(c, fmt.Errorf("%s%s への転送に失敗: %w", client.BaseURL(), path, err))
		return
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		s.responder.BadGateway(c, fmt.Errorf("%s%s のレスポンス読み取りに失敗: %w", client.BaseURL(), path, err))
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		log.Printf("[Gateway] 転送先がエラーを返した: %s %s%s status=%d", c.Request.Method, client.BaseURL(), path, resp.StatusCode)
	}
	c.Data(resp.StatusCode, contentType, respBody)
}
