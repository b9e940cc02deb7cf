package user

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/nao1215/medilabo/pkg/apierror"
	"github.com/nao1215/medilabo/pkg/security"
)

// loginFailedMessage はメールアドレスまたはパスワードが誤っている場合のメッセージ。
// どちらが誤っているかは区別しない。
const loginFailedMessage = "Identifiant ou mot de passe incorrecte"

// handleLogin はメールアドレスとパスワードを確認し、トークンを発行するハンドラを返す。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			s.responder.Validation(c, err)
			return
		}

		u, err := s.queries.GetUserByEmail(c.Request.Context(), req.Email)
		if errors.Is(err, sql.ErrNoRows) {
			s.responder.Error(c, apierror.Unauthorized(loginFailedMessage))
			return
		}
		if err != nil {
			s.responder.Internal(c, fmt.Errorf("ユーザーの取得に失敗: %w", err))
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
			s.responder.Error(c, apierror.Unauthorized(loginFailedMessage))
			return
		}

		role, ok := security.ParseRole(u.Role)
		if !ok {
			s.responder.Internal(c, fmt.Errorf("不明なロール %q", u.Role))
			return
		}
		token, err := s.issuer.Issue(u.ID, role, s.tokenTTL)
		if err != nil {
			s.responder.Internal(c, err)
			return
		}

		log.Printf("[Auth] ログイン成功: user=%s role=%s", u.ID, role)
		c.JSON(http.StatusOK, tokenResponse{Token: token})
	}
}
