package user

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
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	userdb "github.com/nao1215/medilabo/internal/user/db"
	"github.com/nao1215/medilabo/pkg/apierror"
	"github.com/nao1215/medilabo/pkg/middleware"
	"github.com/nao1215/medilabo/pkg/migration"
	"github.com/nao1215/medilabo/pkg/security"
)

// Server はユーザーサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// queries はユーザーと患者のクエリ実行オブジェクト。
	queries *userdb.Queries
	// db はSQLiteデータベース接続。
	db *sql.DB
	// issuer はログイン成功時にトークンを発行する。
	issuer *security.Issuer
	// tokenTTL は発行するトークンの有効期間。
	tokenTTL time.Duration
	// responder はエラーレスポンスを生成する。
	responder *apierror.Responder
	// passwordCost はbcryptのコスト。
	passwordCost int
}

// NewServer は新しいユーザーサーバーを生成する。
// データベースのマイグレーションと、設定されていれば管理者の作成を行う。
func NewServer(cfg Config) (*Server, error) {
	sqlDB, err := sql.Open("sqlite", cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	// SQLiteは書き込みが直列化されるため接続を1本に絞る
	sqlDB.SetMaxOpenConns(1)

	ctx := context.Background()
	if _, err := migration.Run(ctx, sqlDB, migrationsFS, "migrations"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("マイグレーションに失敗: %w", err)
	}

	issuer, err := security.NewIssuer(cfg.Security)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("トークン発行者の生成に失敗: %w", err)
	}
	verifier, err := security.NewVerifier(cfg.Security)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("トークン検証者の生成に失敗: %w", err)
	}

	responder := apierror.NewResponder("user", apierror.BackendMessages)
	s := &Server{
		router:       gin.New(),
		port:         cfg.Port,
		queries:      userdb.New(sqlDB),
		db:           sqlDB,
		issuer:       issuer,
		tokenTTL:     cfg.Security.TokenTTL,
		responder:    responder,
		passwordCost: bcrypt.DefaultCost,
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := s.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("管理者の作成に失敗: %w", err)
		}
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
func (s *Server) setupRoutes(verifier *security.Verifier) {
	// ヘルスチェック（認可フィルターの対象外）
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "user"})
	})

	s.router.Use(middleware.Recovery(s.responder))
	s.router.Use(gin.Logger())
	s.router.Use(middleware.Authorize(verifier, AccessMatrix(), s.responder,
		middleware.WithSubjectCheck(s.queries.UserExists)))
	s.router.NoRoute(s.responder.RouteNotFound)

	s.router.POST("/auth/login", s.handleLogin())

	s.router.GET("/user/profile", s.handleGetProfile())
	s.router.PUT("/user/profile", s.handleUpdateProfile())
	s.router.PUT("/password/update", s.handleUpdatePassword())

	patients := s.router.Group("/patients")
	{
		patients.GET("", s.handleListPatients())
		patients.GET("/:id", s.handleGetPatient())
		patients.POST("", s.handleCreatePatient())
		patients.PUT("/:id", s.handleUpdatePatient())
		patients.DELETE("/:id", s.handleDeletePatient())
	}

	admin := s.router.Group("/admin/users")
	{
		admin.GET("/search", s.handleSearchUsers())
		admin.GET("/:id", s.handleGetUser())
		admin.POST("", s.handleCreateUser())
		admin.PUT("/:id", s.handleUpdateUser())
		admin.PUT("/password/reset/:id", s.handleResetPassword())
		admin.DELETE("/:id", s.handleDeleteUser())
	}
}

// EnsureAdmin はメールアドレスのユーザーが存在しない場合に管理者として作成する。
func (s *Server) EnsureAdmin(ctx context.Context, email, password string) error {
	_, err := s.queries.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("管理者の取得に失敗: %w", err)
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return err
	}
	if err := s.queries.CreateUser(ctx, userdb.CreateUserParams{
		ID:           uuid.New().String(),
		FirstName:    "Admin",
		LastName:     "Medilabo",
		DateOfBirth:  "1970-01-01",
		Gender:       "M",
		Email:        email,
		PasswordHash: hash,
		Role:         security.RoleAdmin.String(),
	}); err != nil {
		return fmt.Errorf("管理者の登録に失敗: %w", err)
	}
	log.Printf("[User] 管理者 %s を作成しました", email)
	return nil
}

// connectedUser はリクエストのPrincipalに対応するユーザーを取得する。
func (s *Server) connectedUser(c *gin.Context) (userdb.User, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return userdb.User{}, apierror.Unauthorized("Erreur d'authentification")
	}
	u, err := s.queries.GetUserByID(c.Request.Context(), p.SubjectID)
	if errors.Is(err, sql.ErrNoRows) {
		return userdb.User{}, apierror.Unauthorized("Erreur d'authentification")
	}
	if err != nil {
		return userdb.User{}, fmt.Errorf("接続ユーザーの取得に失敗: %w", err)
	}
	return u, nil
}

// findUser はIDでユーザーを取得する。存在しない場合は404の業務エラーを返す。
func (s *Server) findUser(ctx context.Context, id string) (userdb.User, error) {
	u, err := s.queries.GetUserByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return userdb.User{}, apierror.NotFound("Utilisateur introuvable")
	}
	if err != nil {
		return userdb.User{}, fmt.Errorf("ユーザーの取得に失敗: %w", err)
	}
	return u, nil
}

// invalidFields はフィールド別のメッセージを持つ400の業務エラーを生成する。
func (s *Server) invalidFields(fields map[string]string) error {
	return &apierror.Error{
		Status:      http.StatusBadRequest,
		Message:     s.responder.Messages().Validation,
		FieldErrors: fields,
	}
}

// hashPassword はパスワードをbcryptでハッシュ化する。
func (s *Server) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.passwordCost)
	if err != nil {
		return "", fmt.Errorf("パスワードのハッシュ化に失敗: %w", err)
	}
	return string(hash), nil
}
