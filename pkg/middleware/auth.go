package middleware

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/nao1215/medilabo/pkg/apierror"
	"github.com/nao1215/medilabo/pkg/security"
)

// contextKeyPrincipal はGinコンテキストにPrincipalを格納するキー。
const contextKeyPrincipal = "principal"

// SubjectCheck はトークンのsubjectIDが現在も有効なユーザーかどうかを確認する関数。
// 存在しない場合はfalseを返す。
type SubjectCheck func(ctx context.Context, subjectID string) (bool, error)

// AuthOption はAuthorizeミドルウェアの生成オプション。
type AuthOption func(*authOptions)

type authOptions struct {
	subjectCheck SubjectCheck
}

// WithSubjectCheck はトークン検証後にsubjectIDの存在確認を行う。
// 存在しないユーザーのトークンは匿名として扱う。publicルートでは確認せず、常に匿名として扱う。
func WithSubjectCheck(check SubjectCheck) AuthOption {
	return func(o *authOptions) {
		o.subjectCheck = check
	}
}

// Authorize はトークン検証とルート認可を行うGinミドルウェアを返す。
// router.Useで登録すると、NoRouteハンドラーより先に評価されるため、
// 未認証のリクエストは存在しないパスに対しても401になる。
//
// 許可されたリクエストには、PrincipalとAuthorizationヘッダーの値を
// リクエストのcontext.Contextに設定する。
func Authorize(verifier *security.Verifier, matrix *security.Matrix, responder *apierror.Responder, opts ...AuthOption) gin.HandlerFunc {
	o := authOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		principal, outcome := verifier.Inspect(header)
		authenticated := outcome == security.OutcomeValid

		switch outcome {
		case security.OutcomeValid, security.OutcomeAbsent:
		default:
			// 検証に失敗したトークンは匿名として扱う
			log.Printf("[Auth] トークンを匿名として扱う %s %s: %s", c.Request.Method, c.Request.URL.Path, outcome)
		}

		if authenticated && o.subjectCheck != nil {
			if rule, ok := matrix.Match(c.Request.URL.Path); ok && rule.Access.IsPublic() {
				// 公開ルートでは存在確認を行わず、匿名として通過させる
				principal, authenticated = security.Principal{}, false
			}
		}
		if authenticated && o.subjectCheck != nil {
			exists, err := o.subjectCheck(c.Request.Context(), principal.SubjectID)
			if err != nil {
				responder.Internal(c, fmt.Errorf("ユーザーの存在確認に失敗: %w", err))
				return
			}
			if !exists {
				log.Printf("[Auth] 存在しないユーザーのトークン %s: %s", c.Request.URL.Path, principal.SubjectID)
				principal, authenticated = security.Principal{}, false
			}
		}

		switch matrix.Decide(c.Request.URL.Path, principal, authenticated) {
		case security.DenyUnauthenticated:
			responder.Unauthenticated(c)
			return
		case security.DenyForbidden:
			responder.Forbidden(c)
			return
		case security.DenyNotFound:
			responder.RouteNotFound(c)
			return
		}

		ctx := c.Request.Context()
		if authenticated {
			ctx = security.WithPrincipal(ctx, principal)
			c.Set(contextKeyPrincipal, principal)
		}
		if header != "" {
			ctx = security.WithAuthorization(ctx, header)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// PrincipalFrom はGinコンテキストから認証済みPrincipalを取得する。
// Authorizeミドルウェアが事前に適用されている必要がある。
func PrincipalFrom(c *gin.Context) (security.Principal, bool) {
	return security.PrincipalFromContext(c.Request.Context())
}

// GetUserID はGinコンテキストから認証済みユーザーのIDを取得する。
// 認証されていない場合は空文字列を返す。
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get(contextKeyPrincipal); ok {
		if p, ok := v.(security.Principal); ok {
			return p.SubjectID
		}
	}
	return ""
}
