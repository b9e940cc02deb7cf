package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	userdb "github.com/nao1215/medilabo/internal/user/db"
	"github.com/nao1215/medilabo/pkg/apierror"
)

// handleListPatients は接続中の医師の担当患者一覧を返すハンドラを返す。
func (s *Server) handleListPatients() gin.HandlerFunc {
	return func(c *gin.Context) {
		doctor, err := s.connectedUser(c)
		if err != nil {
			s.responder.Error(c, err)
			return
		}

		rows, err := s.queries.ListPatientsByDoctor(c.Request.Context(), doctor.ID)
		if err != nil {
			s.responder.Internal(c, fmt.Errorf("患者一覧の取得に失敗: %w", err))
			return
		}

		patients := make([]patientResponse, 0, len(rows))
		for _, p := range rows {
			patients = append(patients, toPatientResponse(p))
		}
		c.JSON(http.StatusOK, patients)
	}
}

// handleGetPatient は担当患者の詳細を返すハンドラを返す。
// noteサービスとevaluationサービスからも転送された資格情報で呼び出される。
func (s *Server) handleGetPatient() gin.HandlerFunc {
	return func(c *gin.Context) {
		doctor, err := s.connectedUser(c)
		if err != nil {
			s.responder.Error(c, err)
			return
		}
		p, err := s.ownedPatient(c.Request.Context(), c.Param("id"), doctor.ID, "access")
		if err != nil {
			s.responder.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, toPatientResponse(p))
	}
}

// handleCreatePatient は患者を登録するハンドラを返す。
// 担当医師は接続中の医師自身でなければならない。
func (s *Server) handleCreatePatient() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req patientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			s.responder.Validation(c, err)
			return
		}
		ctx := c.Request.Context()

		if err := s.checkPatientEmail(ctx, req.Email, ""); err != nil {
			s.responder.Error(c, err)
			return
		}
		connected, err := s.connectedUser(c)
		if err != nil {
			s.responder.Error(c, err)
			return
		}
		doctor, err := s.findUser(ctx, req.DoctorID)
		if err != nil {
			s.responder.Error(c, err)
			return
		}
		if doctor.ID != connected.ID {
			s.responder.Error(c, apierror.Forbidden("User is not authorized to add this patient"))
			return
		}

		id := uuid.New().String()
		if err := s.queries.CreatePatient(ctx, userdb.CreatePatientParams{
			ID:          id,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			DateOfBirth: req.DateOfBirth,
			Gender:      req.Gender,
			Email:       req.Email,
			Address:     req.Address,
			Phone:       req.Phone,
			DoctorID:    doctor.ID,
		}); err != nil {
			s.responder.Internal(c, fmt.Errorf("患者の登録に失敗: %w", err))
			return
		}

		created, err := s.queries.GetPatientByID(ctx, id)
		if err != nil {
			s.responder.Internal(c, fmt.Errorf("登録した患者の取得に失敗: %w", err))
			return
		}
		c.JSON(http.StatusOK, toPatientResponse(created))
	}
}

// handleUpdatePatient は担当患者の情報を更新するハンドラを返す。
// 担当医師は変更できない。
func (s *Server) handleUpdatePatient() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req patientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			s.responder.Validation(c, err)
			return
		}
		ctx := c.Request.Context()

		doctor, err := s.connectedUser(c)
		if err != nil {
			s.responder.Error(c, err)
			return
		}
		p, err := s.ownedPatient(ctx, c.Param("id"), doctor.ID, "update")
		if err != nil {
			s.responder.Error(c, err)
			return
		}
		if err := s.checkPatientEmail(ctx, req.Email, p.ID); err != nil {
			s.responder.Error(c, err)
			return
		}

		if err := s.queries.UpdatePatient(ctx, userdb.UpdatePatientParams{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			DateOfBirth: req.DateOfBirth,
			Gender:      req.Gender,
			Email:       req.Email,
			Address:     req.Address,
			Phone:       req.Phone,
			ID:          p.ID,
		}); err != nil {
			s.responder.Internal(c, fmt.Errorf("患者の更新に失敗: %w", err))
			return
		}

		updated, err := s.queries.GetPatientByID(ctx, p.ID)
		if err != nil {
			s.responder.Internal(c, fmt.Errorf("更新した患者の取得に失敗: %w", err))
			return
		}
		c.JSON(http.StatusOK, toPatientResponse(updated))
	}
}

// handleDeletePatient は担当患者を削除するハンドラを返す。
func (s *Server) handleDeletePatient() gin.HandlerFunc {
	return func(c *gin.Context) {
		doctor, err := s.connectedUser(c)
		if err != nil {
			s.responder.Error(c, err)
			return
		}
		p, err := s.ownedPatient(c.Request.Context(), c.Param("id"), doctor.ID, "delete")
		if err != nil {
			s.responder.Error(c, err)
			return
		}
		if err := s.queries.DeletePatient(c.Request.Context(), p.ID); err != nil {
			s.responder.Internal(c, fmt.Errorf("患者の削除に失敗: %w", err))
			return
		}
		c.JSON(http.StatusOK, messageResponse{Message: "Le patient a été supprimé avec succès"})
	}
}

// ownedPatient はIDの患者を取得し、doctorIDの医師の担当であることを確認する。
// actionは権限エラーのメッセージに使う操作名。
func (s *Server) ownedPatient(ctx context.Context, id, doctorID, action string) (userdb.Patient, error) {
	p, err := s.queries.GetPatientByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return userdb.Patient{}, apierror.NotFound("Patient could not be found")
	}
	if err != nil {
		return userdb.Patient{}, fmt.Errorf("患者の取得に失敗: %w", err)
	}
	if p.DoctorID != doctorID {
		return userdb.Patient{}, apierror.Forbidden(fmt.Sprintf("User is not authorized to %s this patient", action))
	}
	return p, nil
}

// checkPatientEmail はメールアドレスが他の患者に使われていないことを確認する。
func (s *Server) checkPatientEmail(ctx context.Context, email, selfID string) error {
	existing, err := s.queries.GetPatientByEmail(ctx, email)
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
