package user

import "github.com/nao1215/medilabo/pkg/security"

// accessRules はユーザーサービスのルート認可表。
var accessRules = []security.Rule{
	{Pattern: "/auth/**", Access: security.Public()},
	{Pattern: "/user/**", Access: security.RequireRoles(security.RoleUser, security.RoleAdmin)},
	{Pattern: "/patients/**", Access: security.RequireRoles(security.RoleUser)},
	{Pattern: "/admin/**", Access: security.RequireRoles(security.RoleAdmin)},
	{Pattern: "/**", Access: security.Authenticated()},
}

// AccessMatrix はユーザーサービスの認可表を返す。
func AccessMatrix() *security.Matrix {
	return security.NewMatrix(accessRules...)
}
