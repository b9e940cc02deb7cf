// Package config は環境変数からサービスの設定を読み込む。
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/nao1215/medilabo/pkg/security"
)

// DefaultTokenTTL はJWT_TTLが未設定の場合のトークン有効期間。
const DefaultTokenTTL = 10 * time.Hour

// EnvOr は環境変数の値を取得し、未設定の場合はデフォルト値を返す。
func EnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// LoadSecurity はJWT_SECRETとJWT_TTLからトークンの設定を読み込む。
// JWT_SECRETは必須。JWT_TTLはGoのduration形式で、未設定の場合は10時間。
func LoadSecurity() (security.Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return security.Config{}, errors.New("環境変数 JWT_SECRET が設定されていません")
	}
	if len(secret) < security.RecommendedSecretLength {
		log.Printf("[Config] JWT_SECRET が推奨の%dバイトより短い（%dバイト）", security.RecommendedSecretLength, len(secret))
	}

	ttl := DefaultTokenTTL
	if raw := os.Getenv("JWT_TTL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return security.Config{}, fmt.Errorf("JWT_TTL の解析に失敗: %w", err)
		}
		ttl = d
	}

	cfg := security.Config{Secret: secret, TokenTTL: ttl}
	if err := cfg.Validate(); err != nil {
		return security.Config{}, fmt.Errorf("トークン設定が不正: %w", err)
	}
	return cfg, nil
}
