package evaluation

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/medilabo/pkg/apierror"
	"github.com/nao1215/medilabo/pkg/httpclient"
	"github.com/nao1215/medilabo/pkg/middleware"
	"github.com/nao1215/medilabo/pkg/security"
)

// Server は評価サービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// userClient はユーザーサービスへのHTTPクライアント。
	userClient *httpclient.Client
	// noteClient はノートサービスへのHTTPクライアント。
	noteClient *httpclient.Client
	// responder はエラーレスポンスを生成する。
	responder *apierror.Responder
	// now は年齢計算に使う現在時刻。
	now func() time.Time
}

// NewServer は新しい評価サーバーを生成する。
func NewServer(cfg Config) (*Server, error) {
	verifier, err := security.NewVerifier(cfg.Security)
	if err != nil {
		return nil, fmt.Errorf("トークン検証者の生成に失敗: %w", err)
	}

	s := &Server{
		router:     gin.New(),
		port:       cfg.Port,
		userClient: httpclient.New(cfg.UserServiceURL),
		noteClient: httpclient.New(cfg.NoteServiceURL),
		responder:  apierror.NewResponder("evaluation", apierror.BackendMessages),
		now:        time.Now,
	}
	s.setupRoutes(verifier)
	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes(verifier *security.Verifier) {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "evaluation"})
	})

	s.router.Use(middleware.Recovery(s.responder))
	s.router.Use(gin.Logger())
	s.router.Use(middleware.Authorize(verifier, AccessMatrix(), s.responder))
	s.router.NoRoute(s.responder.RouteNotFound)

	s.router.GET("/:id", s.handleEvaluate())
}

// handleEvaluate は患者のリスクレベルを返すハンドラを返す。:idは患者ID。
// 患者とノートは並行に取得し、どちらかが失敗した時点で他方もキャンセルする。
func (s *Server) handleEvaluate() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		escaped := url.PathEscape(id)

		var (
			p     Patient
			notes []Note
		)
		g, ctx := errgroup.WithContext(c.Request.Context())
		g.Go(func() error {
			if err := s.userClient.GetJSON(ctx, "/patients/"+escaped, &p); err != nil {
				return apierror.Wrap(http.StatusInternalServerError, "Impossible de récupérer le patient", err)
			}
			return nil
		})
		g.Go(func() error {
			if err := s.noteClient.GetJSON(ctx, "/"+escaped, &notes); err != nil {
				return apierror.Wrap(http.StatusInternalServerError, "Impossible de récupérer les notes", err)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			s.responder.Error(c, err)
			return
		}

		risk := Evaluate(p, notes, s.now())
		log.Printf("[Evaluation] patient=%s notes=%d risk=%s", id, len(notes), risk)
		c.JSON(http.StatusOK, risk)
	}
}
