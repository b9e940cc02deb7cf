package config

import (
	"testing"
	"time"
)

// TestEnvOr は環境変数の取得を検証する。
func TestEnvOr(t *testing.T) {
	t.Run("環境変数が設定されている場合はその値を返すこと", func(t *testing.T) {
		t.Setenv("MEDILABO_TEST_ENV", "value")
		if got := EnvOr("MEDILABO_TEST_ENV", "default"); got != "value" {
			t.Errorf("EnvOr() = %q, want %q", got, "value")
		}
	})

	t.Run("環境変数が未設定の場合はデフォルト値を返すこと", func(t *testing.T) {
		t.Setenv("MEDILABO_TEST_ENV", "")
		if got := EnvOr("MEDILABO_TEST_ENV", "default"); got != "default" {
			t.Errorf("EnvOr() = %q, want %q", got, "default")
		}
	})
}

// TestLoadSecurity はトークン設定の読み込みを検証する。
func TestLoadSecurity(t *testing.T) {
	t.Run("JWT_TTLが未設定の場合は10時間になること", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("JWT_TTL", "")

		cfg, err := LoadSecurity()
		if err != nil {
			t.Fatalf("LoadSecurity()でエラーが発生: %v", err)
		}
		if cfg.TokenTTL != 10*time.Hour {
			t.Errorf("TokenTTL = %v, want %v", cfg.TokenTTL, 10*time.Hour)
		}
		if cfg.Secret != "0123456789abcdef0123456789abcdef" {
			t.Errorf("Secret = %q", cfg.Secret)
		}
	})

	t.Run("JWT_TTLを指定できること", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("JWT_TTL", "30m")

		cfg, err := LoadSecurity()
		if err != nil {
			t.Fatalf("LoadSecurity()でエラーが発生: %v", err)
		}
		if cfg.TokenTTL != 30*time.Minute {
			t.Errorf("TokenTTL = %v, want %v", cfg.TokenTTL, 30*time.Minute)
		}
	})

	t.Run("JWT_SECRETが未設定の場合はエラーになること", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		if _, err := LoadSecurity(); err == nil {
			t.Error("エラーが返されなかった")
		}
	})

	t.Run("JWT_TTLが不正な場合はエラーになること", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

		for _, raw := range []string{"ten hours", "-1h", "0s"} {
			t.Setenv("JWT_TTL", raw)
			if _, err := LoadSecurity(); err == nil {
				t.Errorf("JWT_TTL=%q でエラーが返されなかった", raw)
			}
		}
	})
}
