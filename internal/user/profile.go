package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	userdb "github.com/nao1215/medilabo/internal/user/db"
)

// handleGetProfile は接続ユーザーのプロフィールを返すハンドラを返す。
func (s *Server) handleGetProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := s.connectedUser(c)
		if err != nil {
			s.responder.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, toUserResponse(u))
	}
}

// handleUpdateProfile は接続ユーザーのプロフィールを更新するハンドラを返す。
func (s *Server) handleUpdateProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := s.connectedUser(c)
		if err != nil {
			s.responder.Error(c, err)
			return
		}
		s.updateUser(c, u)
	}
}

// handleUpdatePassword は接続ユーザーのパスワードを変更するハンドラを返す。
// 現在のパスワード、新しいパスワードの形式、確認用パスワードの一致をまとめて検証する。
func (s *Server) handleUpdatePassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := s.connectedUser(c)
		if err != nil {
			s.responder.Error(c, err)
			return
		}

		var req passwordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			s.responder.Validation(c, err)
			return
		}

		fields := map[string]string{}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
			fields["currentPassword"] = "Mot de passe incorrecte"
		}
		if !ValidPasswordFormat(req.NewPassword) {
			fields["newPassword"] = "Format du mot de passe invalide"
		}
		if req.NewPassword != req.ConfirmPassword {
			fields["confirmPassword"] = "Les mots de passe sont différents"
		}
		if len(fields) > 0 {
			s.responder.Error(c, s.invalidFields(fields))
			return
		}

		hash, err := s.hashPassword(req.NewPassword)
		if err != nil {
			s.responder.Internal(c, err)
			return
		}
		if err := s.queries.UpdateUserPassword(c.Request.Context(), hash, u.ID); err != nil {
			s.responder.Internal(c, fmt.Errorf("パスワードの更新に失敗: %w", err))
			return
		}
		c.JSON(http.StatusOK, messageResponse{Message: "Mot de passe mis à jour avec succès"})
	}
}

// updateUser はリクエストの内容でユーザーのプロフィールを更新する。
// ロールとパスワードは変更しない。
func (s *Server) updateUser(c *gin.Context, u userdb.User) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.responder.Validation(c, err)
		return
	}
	if err := s.checkUserEmail(c.Request.Context(), req.Email, u.ID); err != nil {
		s.responder.Error(c, err)
		return
	}

	if err := s.queries.UpdateUserProfile(c.Request.Context(), userdb.UpdateUserProfileParams{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Email:       req.Email,
		Address:     req.Address,
		Phone:       req.Phone,
		ID:          u.ID,
	}); err != nil {
		s.responder.Internal(c, fmt.Errorf("ユーザーの更新に失敗: %w", err))
		return
	}

	updated, err := s.findUser(c.Request.Context(), u.ID)
	if err != nil {
		s.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(updated))
}

// checkUserEmail はメールアドレスが他のユーザーに使われていないことを確認する。
// selfIDには更新対象のユーザーIDを指定する。新規作成の場合は空文字列。
func (s *Server) checkUserEmail(ctx context.Context, email, selfID string) error {
	existing, err := s.queries.GetUserByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("メールアドレスの確認に失敗: %w", err)
	}
	if existing.ID != selfID {
		return s.invalidFields(map[string]string{"email": "Cet email est déjà utilisé"})
	}
	return nil
}
