package security

import (
	"errors"
	"time"
)

// ErrEmptySecret は署名用シークレットが設定されていないことを表す。
var ErrEmptySecret = errors.New("署名用シークレットが設定されていません")

// RecommendedSecretLength はHMAC署名用シークレットの推奨最小バイト数。
const RecommendedSecretLength = 32

// Config はトークンの発行と検証に使う設定。
// プロセス起動時に一度だけ生成し、以降は読み取り専用で共有する。
type Config struct {
	// Secret は全サービスで共有するHMAC署名用シークレット。
	Secret string
	// TokenTTL は発行するトークンの有効期間。
	TokenTTL time.Duration
}

// Validate は設定値を検証する。
func (c Config) Validate() error {
	if c.Secret == "" {
		return ErrEmptySecret
	}
	if c.TokenTTL <= 0 {
		return errors.New("トークンの有効期間は正の値である必要があります")
	}
	return nil
}
