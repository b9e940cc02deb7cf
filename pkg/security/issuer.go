package security

import (
	"fmt"
	"time"
)

// Option はIssuerとVerifierの生成オプション。
type Option func(*options)

// options はIssuerとVerifierで共通の生成オプション。
type options struct {
	// now は現在時刻を返す関数。テストで差し替える。
	now func() time.Time
}

// WithClock は現在時刻の取得関数を差し替える。
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Issuer は認証済みユーザーに対してトークンを発行する。
// ストレージには触れず、壁時計と共有シークレットのみを参照する。
type Issuer struct {
	// secret はHMAC署名用シークレット。
	secret []byte
	// now は現在時刻を返す関数。
	now func() time.Time
}

// NewIssuer は新しいIssuerを生成する。
// シークレットが空の場合は起動時の設定エラーとしてエラーを返す。
func NewIssuer(cfg Config, opts ...Option) (*Issuer, error) {
	if cfg.Secret == "" {
		return nil, ErrEmptySecret
	}
	o := buildOptions(opts)
	return &Issuer{
		secret: []byte(cfg.Secret),
		now:    o.now,
	}, nil
}

// Issue はsubjectIDとroleを持つトークンを発行する。
// 有効期限は現在時刻にttlを加えた値になる。
func (i *Issuer) Issue(subjectID string, role Role, ttl time.Duration) (string, error) {
	now := i.now()
	token, err := Encode(Claims{
		Subject:   subjectID,
		Role:      role.String(),
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}, i.secret)
	if err != nil {
		return "", fmt.Errorf("トークンの発行に失敗: %w", err)
	}
	return token, nil
}
