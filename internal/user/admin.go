package user

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	userdb "github.com/nao1215/medilabo/internal/user/db"
	"github.com/nao1215/medilabo/pkg/apierror"
	"github.com/nao1215/medilabo/pkg/security"
)

// handleSearchUsers は名前またはメールアドレスでユーザーを検索するハンドラを返す。
func (s *Server) handleSearchUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		keyword, ok := c.GetQuery("keyword")
		if !ok {
			s.responder.Error(c, s.invalidFields(map[string]string{"keyword": "Ce champ est obligatoire"}))
			return
		}

		rows, err := s.queries.SearchUsers(c.Request.Context(), keyword)
		if err != nil {
			s.responder.Internal(c, fmt.Errorf("ユーザーの検索に失敗: %w", err))
			return
		}
		users := make([]userResponse, 0, len(rows))
		for _, u := range rows {
			users = append(users, toUserResponse(u))
		}
		c.JSON(http.StatusOK, users)
	}
}

// handleGetUser はIDでユーザーを返すハンドラを返す。
func (s *Server) handleGetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := s.findUser(c.Request.Context(), c.Param("id"))
		if err != nil {
			s.responder.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, toUserResponse(u))
	}
}

// handleCreateUser は医師（USER）を作成するハンドラを返す。
// 初期パスワードはDefaultPasswordで生成する。
func (s *Server) handleCreateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req userRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			s.responder.Validation(c, err)
			return
		}
		ctx := c.Request.Context()
		if err := s.checkUserEmail(ctx, req.Email, ""); err != nil {
			s.responder.Error(c, err)
			return
		}

		hash, err := s.hashPassword(DefaultPassword(req.LastName, req.DateOfBirth))
		if err != nil {
			s.responder.Internal(c, err)
			return
		}

		id := uuid.New().String()
		if err := s.queries.CreateUser(ctx, userdb.CreateUserParams{
			ID:           id,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			DateOfBirth:  req.DateOfBirth,
			Gender:       req.Gender,
			Email:        req.Email,
			Address:      req.Address,
			Phone:        req.Phone,
			PasswordHash: hash,
			Role:         security.RoleUser.String(),
		}); err != nil {
			s.responder.Internal(c, fmt.Errorf("ユーザーの作成に失敗: %w", err))
			return
		}

		created, err := s.findUser(ctx, id)
		if err != nil {
			s.responder.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, toUserResponse(created))
	}
}

// handleUpdateUser はIDのユーザーのプロフィールを更新するハンドラを返す。
func (s *Server) handleUpdateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := s.findUser(c.Request.Context(), c.Param("id"))
		if err != nil {
			s.responder.Error(c, err)
			return
		}
		s.updateUser(c, u)
	}
}

// handleResetPassword はIDのユーザーのパスワードを初期パスワードに戻すハンドラを返す。
// 新しいパスワードはレスポンスのメッセージで管理者に伝える。
func (s *Server) handleResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := s.findUser(c.Request.Context(), c.Param("id"))
		if err != nil {
			s.responder.Error(c, err)
			return
		}

		password := DefaultPassword(u.LastName, u.DateOfBirth)
		hash, err := s.hashPassword(password)
		if err != nil {
			s.responder.Internal(c, err)
			return
		}
		if err := s.queries.UpdateUserPassword(c.Request.Context(), hash, u.ID); err != nil {
			s.responder.Internal(c, fmt.Errorf("パスワードのリセットに失敗: %w", err))
			return
		}
		c.JSON(http.StatusOK, messageResponse{Message: "Mot de passe réinitialisé : " + password})
	}
}

// handleDeleteUser はIDのユーザーを削除するハンドラを返す。
// 担当患者がいる医師と管理者は削除できない。
func (s *Server) handleDeleteUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		u, err := s.findUser(ctx, c.Param("id"))
		if err != nil {
			s.responder.Error(c, err)
			return
		}

		count, err := s.queries.CountPatientsByDoctor(ctx, u.ID)
		if err != nil {
			s.responder.Internal(c, fmt.Errorf("担当患者数の取得に失敗: %w", err))
			return
		}
		if count > 0 {
			s.responder.Error(c, apierror.BadRequest("Vous ne pouvez pas supprimer un utilisateur qui a des patients"))
			return
		}
		if u.Role == security.RoleAdmin.String() {
			s.responder.Error(c, apierror.BadRequest("Vous ne pouvez pas supprimer un administrateur"))
			return
		}

		if err := s.queries.DeleteUser(ctx, u.ID); err != nil {
			s.responder.Internal(c, fmt.Errorf("ユーザーの削除に失敗: %w", err))
			return
		}
		c.JSON(http.StatusOK, messageResponse{Message: "Utilisateur supprimé avec succès"})
	}
}
