package note

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	notedb "github.com/nao1215/medilabo/internal/note/db"
	"github.com/nao1215/medilabo/pkg/apierror"
	"github.com/nao1215/medilabo/pkg/httpclient"
	"github.com/nao1215/medilabo/pkg/middleware"
	"github.com/nao1215/medilabo/pkg/migration"
	"github.com/nao1215/medilabo/pkg/security"
)

// noteNotFoundMessage はノートが存在しない場合のメッセージ。
const noteNotFoundMessage = "La note n'existe pas"

// Server はノートサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// queries はノートのクエリ実行オブジェクト。
	queries *notedb.Queries
	// db はSQLiteデータベース接続。
	db *sql.DB
	// userClient はユーザーサービスへのHTTPクライアント。
	userClient *httpclient.Client
	// responder はエラーレスポンスを生成する。
	responder *apierror.Responder
	// now はノートの記録日時に使う現在時刻。
	now func() time.Time
}

// NewServer は新しいノートサーバーを生成する。
func NewServer(cfg Config) (*Server, error) {
	sqlDB, err := sql.Open("sqlite", cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if _, err := migration.Run(context.Background(), sqlDB, migrationsFS, "migrations"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("マイグレーションに失敗: %w", err)
	}

	verifier, err := security.NewVerifier(cfg.Security)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("トークン検証者の生成に失敗: %w", err)
	}

	s := &Server{
		router:     gin.New(),
		port:       cfg.Port,
		queries:    notedb.New(sqlDB),
		db:         sqlDB,
		userClient: httpclient.New(cfg.UserServiceURL),
		responder:  apierror.NewResponder("note", apierror.BackendMessages),
		now:        time.Now,
	}
	s.setupRoutes(verifier)
	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// Close はデータベース接続を閉じる。
func (s *Server) Close() error {
	return s.db.Close()
}

// setupRoutes はAPIルーティングを設定する。
// ゲートウェイが/api/notesを取り除いて転送するため、ルートはサービスのルート直下に置く。
func (s *Server) setupRoutes(verifier *security.Verifier) {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "note"})
	})

	s.router.Use(middleware.Recovery(s.responder))
	s.router.Use(gin.Logger())
	s.router.Use(middleware.Authorize(verifier, AccessMatrix(), s.responder))
	s.router.NoRoute(s.responder.RouteNotFound)

	s.router.POST("/", s.handleCreate())
	s.router.GET("/:id", s.handleListByPatient())
	s.router.PUT("/:id", s.handleUpdate())
	s.router.DELETE("/:id", s.handleDelete())
}

// handleListByPatient は患者のノート一覧を返すハンドラを返す。:idは患者ID。
func (s *Server) handleListByPatient() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		p, err := s.fetchPatient(ctx, c.Param("id"))
		if err != nil {
			s.responder.Error(c, err)
			return
		}

		rows, err := s.queries.ListNotesByPatient(ctx, p.ID)
		if err != nil {
			s.responder.Internal(c, fmt.Errorf("ノート一覧の取得に失敗: %w", err))
			return
		}
		notes := make([]noteResponse, 0, len(rows))
		for _, n := range rows {
			notes = append(notes, toNoteResponse(n))
		}
		c.JSON(http.StatusOK, notes)
	}
}

// handleCreate はノートを作成するハンドラを返す。
func (s *Server) handleCreate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createNoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			s.responder.Validation(c, err)
			return
		}
		ctx := c.Request.Context()

		p, err := s.fetchPatient(ctx, req.PatientID)
		if err != nil {
			s.responder.Error(c, err)
			return
		}

		n := notedb.Note{
			ID:        uuid.New().String(),
			PatientID: p.ID,
			DateTime:  s.now().Truncate(time.Second),
			Note:      req.Note,
		}
		if err := s.queries.CreateNote(ctx, notedb.CreateNoteParams{
			ID:        n.ID,
			PatientID: n.PatientID,
			DateTime:  n.DateTime,
			Note:      n.Note,
		}); err != nil {
			s.responder.Internal(c, fmt.Errorf("ノートの作成に失敗: %w", err))
			return
		}
		log.Printf("[Note] 患者 %s のノート %s を作成", p.ID, n.ID)
		c.JSON(http.StatusOK, toNoteResponse(n))
	}
}

// handleUpdate はノートの本文を更新するハンドラを返す。
func (s *Server) handleUpdate() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateNoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			s.responder.Validation(c, err)
			return
		}
		ctx := c.Request.Context()

		n, err := s.ownedNote(ctx, c.Param("id"))
		if err != nil {
			s.responder.Error(c, err)
			return
		}
		if err := s.queries.UpdateNote(ctx, req.Note, n.ID); err != nil {
			s.responder.Internal(c, fmt.Errorf("ノートの更新に失敗: %w", err))
			return
		}
		n.Note = req.Note
		c.JSON(http.StatusOK, toNoteResponse(n))
	}
}

// handleDelete はノートを削除するハンドラを返す。
func (s *Server) handleDelete() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		n, err := s.ownedNote(ctx, c.Param("id"))
		if err != nil {
			s.responder.Error(c, err)
			return
		}
		if err := s.queries.DeleteNote(ctx, n.ID); err != nil {
			s.responder.Internal(c, fmt.Errorf("ノートの削除に失敗: %w", err))
			return
		}
		log.Printf("[Note] ノート %s を削除", n.ID)
		c.JSON(http.StatusOK, messageResponse{Message: "Note supprimée avec succès"})
	}
}

// ownedNote はIDのノートを取得し、その患者に呼び出し元がアクセスできることを確認する。
func (s *Server) ownedNote(ctx context.Context, id string) (notedb.Note, error) {
	n, err := s.queries.GetNoteByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return notedb.Note{}, apierror.NotFound(noteNotFoundMessage)
	}
	if err != nil {
		return notedb.Note{}, fmt.Errorf("ノートの取得に失敗: %w", err)
	}
	if _, err := s.fetchPatient(ctx, n.PatientID); err != nil {
		return notedb.Note{}, err
	}
	return n, nil
}
