package security

import (
	"slices"
	"strings"
)

// wildcardSuffix はプレフィックスパターンを表す接尾辞。
const wildcardSuffix = "/**"

// accessKind はルートが要求するアクセス種別。
type accessKind int

const (
	accessPublic accessKind = iota
	accessAuthenticated
	accessRoles
)

// Access はルートが要求するアクセス条件。
// Public、Authenticated、RequireRolesのいずれかで生成する。
type Access struct {
	kind  accessKind
	roles []Role
}

// Public は認証なしでアクセスできることを表す。
func Public() Access {
	return Access{kind: accessPublic}
}

// Authenticated は任意の認証済みユーザーがアクセスできることを表す。
func Authenticated() Access {
	return Access{kind: accessAuthenticated}
}

// RequireRoles は指定したロールのいずれかを持つユーザーのみアクセスできることを表す。
func RequireRoles(roles ...Role) Access {
	return Access{kind: accessRoles, roles: slices.Clone(roles)}
}

// IsPublic は認証不要のアクセス条件かどうかを返す。
func (a Access) IsPublic() bool {
	return a.kind == accessPublic
}

// Allows はPrincipalのロールがアクセス条件を満たすかどうかを返す。
func (a Access) Allows(role Role) bool {
	switch a.kind {
	case accessPublic, accessAuthenticated:
		return true
	default:
		return slices.Contains(a.roles, role)
	}
}

// String はログ用の表現を返す。
func (a Access) String() string {
	switch a.kind {
	case accessPublic:
		return "public"
	case accessAuthenticated:
		return "authenticated"
	default:
		names := make([]string, len(a.roles))
		for i, r := range a.roles {
			names[i] = r.String()
		}
		return "roles(" + strings.Join(names, "|") + ")"
	}
}

// Rule はパスパターンとアクセス条件の組。
// "/x/**" は "/x" と "/x/" 以下のすべてのパスに一致し、それ以外は完全一致で比較する。
type Rule struct {
	// Pattern はパスパターン。
	Pattern string
	// Access はアクセス条件。
	Access Access
}

// prefix はプレフィックスパターンの比較対象部分を返す。
func (r Rule) prefix() (string, bool) {
	return strings.CutSuffix(r.Pattern, wildcardSuffix)
}

// matches はパスがパターンに一致するかどうかと、一致の具体度を返す。
// 完全一致は常にプレフィックス一致より具体的とみなす。
func (r Rule) matches(path string) (int, bool) {
	prefix, wildcard := r.prefix()
	if !wildcard {
		if path == r.Pattern {
			return len(r.Pattern) + 1<<20, true
		}
		return 0, false
	}
	if path == prefix || strings.HasPrefix(path, prefix+"/") {
		return len(prefix), true
	}
	return 0, false
}

// Decision は認可判定の結果。
type Decision int

const (
	// Allow はリクエストを通過させる。
	Allow Decision = iota
	// DenyUnauthenticated は認証が必要であることを表す（401）。
	DenyUnauthenticated
	// DenyForbidden は権限が不足していることを表す（403）。
	DenyForbidden
	// DenyNotFound は一致するルールが無いことを表す（404）。
	DenyNotFound
)

// String はログ用の表現を返す。
func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyUnauthenticated:
		return "unauthenticated"
	case DenyForbidden:
		return "forbidden"
	case DenyNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Matrix はサービスごとのルート認可表。
// 起動時に一度だけ生成し、以降は変更しない。
type Matrix struct {
	rules []Rule
}

// NewMatrix は宣言順のルールから認可表を生成する。
func NewMatrix(rules ...Rule) *Matrix {
	return &Matrix{rules: slices.Clone(rules)}
}

// Rules は宣言順のルールのコピーを返す。
func (m *Matrix) Rules() []Rule {
	return slices.Clone(m.rules)
}

// Match はパスに最も具体的に一致するルールを返す。
// 完全一致はプレフィックス一致に優先し、長いプレフィックスは短いものに優先する。
// 具体度が同じ場合は先に宣言されたルールを返す。
func (m *Matrix) Match(path string) (Rule, bool) {
	var (
		best      Rule
		bestScore = -1
	)
	for _, r := range m.rules {
		score, ok := r.matches(path)
		if ok && score > bestScore {
			best, bestScore = r, score
		}
	}
	return best, bestScore >= 0
}

// Decide はパスとPrincipalから認可判定を行う。
// authenticatedがfalseの場合、principalは無視される。
func (m *Matrix) Decide(path string, principal Principal, authenticated bool) Decision {
	rule, found := m.Match(path)
	if found && rule.Access.IsPublic() {
		return Allow
	}
	if !authenticated {
		return DenyUnauthenticated
	}
	if !found {
		return DenyNotFound
	}
	if !rule.Access.Allows(principal.Role) {
		return DenyForbidden
	}
	return Allow
}
