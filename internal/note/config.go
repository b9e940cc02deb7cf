package note

import (
	"fmt"

	"github.com/nao1215/medilabo/pkg/config"
	"github.com/nao1215/medilabo/pkg/security"
)

// Config はノートサービスの設定。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string
	// DatabasePath はSQLiteデータベースのDSN。
	DatabasePath string
	// UserServiceURL は患者の確認に使うユーザーサービスのベースURL。
	UserServiceURL string
	// Security はトークンの検証設定。
	Security security.Config
}

// LoadConfig は環境変数からノートサービスの設定を読み込む。
func LoadConfig() (Config, error) {
	sec, err := config.LoadSecurity()
	if err != nil {
		return Config{}, fmt.Errorf("セキュリティ設定の読み込みに失敗: %w", err)
	}
	return Config{
		Port:           config.EnvOr("PORT", "8082"),
		DatabasePath:   config.EnvOr("DATABASE_PATH", "/data/note.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"),
		UserServiceURL: config.EnvOr("USER_SERVICE_URL", "http://user:8081"),
		Security:       sec,
	}, nil
}
