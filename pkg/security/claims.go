package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformed はトークンが3セグメントの正しい形式でない、またはペイロードを解釈できないことを表す。
	ErrMalformed = errors.New("トークンの形式が不正です")
	// ErrSignatureInvalid はトークンの署名が共有シークレットで検証できないことを表す。
	ErrSignatureInvalid = errors.New("トークンの署名が不正です")
)

// Claims はトークンに署名付きで格納されるペイロード。
// 一度生成された値は変更しない。
type Claims struct {
	// Subject はユーザーの永続的な識別子。
	Subject string
	// Role はユーザーのロール文字列。
	Role string
	// IssuedAt は発行日時（秒精度）。
	IssuedAt time.Time
	// ExpiresAt は有効期限（秒精度）。
	ExpiresAt time.Time
}

// tokenClaims はJWTペイロードのワイヤ形式。
// {"sub", "role", "iat", "exp"} のみを出力する。
type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Encode はClaimsをHS256で署名したトークン文字列に変換する。
// 同じClaimsとシークレットからは常に同じトークンが得られる。
func Encode(claims Claims, secret []byte) (string, error) {
	wire := tokenClaims{
		Role: claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.Subject,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, wire).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("トークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// Decode はトークン文字列の署名を検証し、Claimsを取り出す。
// 有効期限の確認は行わない。期限切れの判定はVerifierの責務。
func Decode(token string, secret []byte) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
		jwt.WithStrictDecoding(),
	)

	wire := &tokenClaims{}
	_, err := parser.ParseWithClaims(token, wire, func(_ *jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrTokenUnverifiable) {
			return Claims{}, fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	claims := Claims{
		Subject: wire.Subject,
		Role:    wire.Role,
	}
	if wire.IssuedAt != nil {
		claims.IssuedAt = wire.IssuedAt.Time
	}
	if wire.ExpiresAt != nil {
		claims.ExpiresAt = wire.ExpiresAt.Time
	}
	return claims, nil
}
