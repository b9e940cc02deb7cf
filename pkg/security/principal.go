package security

import "context"

// Principal はリクエストの呼び出し元を表す。
// トークンのクレームから生成され、1リクエストの間だけ存在する。
type Principal struct {
	// SubjectID はユーザーの永続的な識別子。
	SubjectID string
	// Role はユーザーのロール。
	Role Role
}

type principalContextKey struct{}

type authorizationContextKey struct{}

// WithPrincipal はコンテキストに認証済みPrincipalを設定する。
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext はコンテキストから認証済みPrincipalを取得する。
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(Principal)
	return p, ok
}

// WithAuthorization はコンテキストに受信したAuthorizationヘッダーの値をそのまま設定する。
// サービス間通信で資格情報を転送するために使用する。
func WithAuthorization(ctx context.Context, header string) context.Context {
	return context.WithValue(ctx, authorizationContextKey{}, header)
}

// AuthorizationFromContext はコンテキストからAuthorizationヘッダーの値を取得する。
// 設定されていない場合は空文字列を返す。
func AuthorizationFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(authorizationContextKey{}).(string); ok {
		return v
	}
	return ""
}
