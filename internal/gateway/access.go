package gateway

import "github.com/nao1215/medilabo/pkg/security"

// accessRules はゲートウェイのルート認可表。
// /api/users/admin/** は /api/users/** より具体的なため、宣言順に関係なくADMIN専用になる。
var accessRules = []security.Rule{
	{Pattern: "/frontend/**", Access: security.Public()},
	{Pattern: "/.well-known/appspecific/com.chrome.devtools.json", Access: security.Public()},
	{Pattern: "/api/users/auth/login", Access: security.Public()},
	{Pattern: "/api/users/**", Access: security.RequireRoles(security.RoleUser, security.RoleAdmin)},
	{Pattern: "/api/users/admin/**", Access: security.RequireRoles(security.RoleAdmin)},
	{Pattern: "/api/notes/**", Access: security.RequireRoles(security.RoleUser)},
	{Pattern: "/api/evaluation/**", Access: security.RequireRoles(security.RoleUser)},
	{Pattern: "/**", Access: security.Authenticated()},
}

// AccessMatrix はゲートウェイの認可表を返す。
func AccessMatrix() *security.Matrix {
	return security.NewMatrix(accessRules...)
}
