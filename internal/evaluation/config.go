package evaluation

import (
	"fmt"

	"github.com/nao1215/medilabo/pkg/config"
	"github.com/nao1215/medilabo/pkg/security"
)

// Config は評価サービスの設定。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string
	// UserServiceURL は患者を取得するユーザーサービスのベースURL。
	UserServiceURL string
	// NoteServiceURL はノートを取得するノートサービスのベースURL。
	NoteServiceURL string
	// Security はトークンの検証設定。
	Security security.Config
}

// LoadConfig は環境変数から評価サービスの設定を読み込む。
func LoadConfig() (Config, error) {
	sec, err := config.LoadSecurity()
	if err != nil {
		return Config{}, fmt.Errorf("セキュリティ設定の読み込みに失敗: %w", err)
	}
	return Config{
		Port:           config.EnvOr("PORT", "8083"),
		UserServiceURL: config.EnvOr("USER_SERVICE_URL", "http://user:8081"),
		NoteServiceURL: config.EnvOr("NOTE_SERVICE_URL", "http://note:8082"),
		Security:       sec,
	}, nil
}
