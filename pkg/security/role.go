package security

// Role は認証済みユーザーのロールを表す。
type Role string

const (
	// RoleUser は一般ユーザー（医師）のロール。
	RoleUser Role = "USER"
	// RoleAdmin は管理者のロール。
	RoleAdmin Role = "ADMIN"
)

// ParseRole は文字列をRoleに変換する。
// 既知のロール以外はfalseを返す。
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// String はロールの文字列表現を返す。
func (r Role) String() string {
	return string(r)
}
