package note

import "github.com/nao1215/medilabo/pkg/security"

// AccessMatrix はノートサービスの認可表を返す。すべてのルートがUSER専用。
func AccessMatrix() *security.Matrix {
	return security.NewMatrix(
		security.Rule{Pattern: "/**", Access: security.RequireRoles(security.RoleUser)},
	)
}
