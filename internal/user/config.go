package user

import (
	"fmt"

	"github.com/nao1215/medilabo/pkg/config"
	"github.com/nao1215/medilabo/pkg/security"
)

// Config はユーザーサービスの設定。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string
	// DatabasePath はSQLiteデータベースのDSN。
	DatabasePath string
	// Security はトークンの署名と有効期間の設定。
	Security security.Config
	// AdminEmail は起動時に作成する管理者のメールアドレス。空の場合は作成しない。
	AdminEmail string
	// AdminPassword は起動時に作成する管理者のパスワード。
	AdminPassword string
}

// LoadConfig は環境変数からユーザーサービスの設定を読み込む。
func LoadConfig() (Config, error) {
	sec, err := config.LoadSecurity()
	if err != nil {
		return Config{}, fmt.Errorf("セキュリティ設定の読み込みに失敗: %w", err)
	}
	return Config{
		Port:          config.EnvOr("PORT", "8081"),
		DatabasePath:  config.EnvOr("DATABASE_PATH", "/data/user.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"),
		Security:      sec,
		AdminEmail:    config.EnvOr("ADMIN_EMAIL", ""),
		AdminPassword: config.EnvOr("ADMIN_PASSWORD", ""),
	}, nil
}
