package evaluation

import "github.com/nao1215/medilabo/pkg/security"

// accessRules は評価サービスのルート認可表。すべてのルートがUSER専用。
var accessRules = []security.Rule{
	{Pattern: "/**", Access: security.RequireRoles(security.RoleUser)},
}

// AccessMatrix は評価サービスの認可表を返す。
func AccessMatrix() *security.Matrix {
	return security.NewMatrix(accessRules...)
}
