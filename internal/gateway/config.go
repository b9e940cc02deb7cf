package gateway

import (
	"fmt"

	"github.com/nao1215/medilabo/pkg/config"
	"github.com/nao1215/medilabo/pkg/security"
)

// Config はゲートウェイの設定。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string
	// Security はトークンの検証設定。
	Security security.Config
	// UserServiceURL は/api/usersの転送先。
	UserServiceURL string
	// NoteServiceURL は/api/notesの転送先。
	NoteServiceURL string
	// EvaluationServiceURL は/api/evaluationの転送先。
	EvaluationServiceURL string
	// FrontendServiceURL は/frontendの転送先。
	FrontendServiceURL string
	// FrontendURL はCORSで許可するブラウザのオリジン。
	FrontendURL string
}

// LoadConfig は環境変数からゲートウェイの設定を読み込む。
func LoadConfig() (Config, error) {
	sec, err := config.LoadSecurity()
	if err != nil {
		return Config{}, fmt.Errorf("セキュリティ設定の読み込みに失敗: %w", err)
	}
	return Config{
		Port:                 config.EnvOr("PORT", "8080"),
		Security:             sec,
		UserServiceURL:       config.EnvOr("USER_SERVICE_URL", "http://user:8081"),
		NoteServiceURL:       config.EnvOr("NOTE_SERVICE_URL", "http://note:8082"),
		EvaluationServiceURL: config.EnvOr("EVALUATION_SERVICE_URL", "http://evaluation:8083"),
		FrontendServiceURL:   config.EnvOr("FRONTEND_SERVICE_URL", "http://frontend:4200"),
		FrontendURL:          config.EnvOr("FRONTEND_URL", "http://localhost:4200"),
	}, nil
}
