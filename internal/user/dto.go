package user

import (
	userdb "github.com/nao1215/medilabo/internal/user/db"
)

// loginRequest はログインリクエストのJSON構造。
type loginRequest struct {
	// Email はログインID。
	Email string `json:"email" binding:"required,email"`
	// Password は平文のパスワード。
	Password string `json:"password" binding:"required"`
}

// tokenResponse はログイン成功時のJSONレスポンス構造。
type tokenResponse struct {
	// Token は署名済みのトークン。
	Token string `json:"token"`
}

// userRequest はユーザーの作成・更新リクエストのJSON構造。
// ロールとパスワードはこのリクエストでは変更できない。
type userRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required,datetime=2006-01-02"`
	Gender      string `json:"gender" binding:"required,oneof=M F"`
	Email       string `json:"email" binding:"required,email"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
}

// userResponse はユーザーのJSONレスポンス構造。
type userResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Role        string `json:"role"`
}

// toUserResponse はDB行をJSONレスポンスに変換する。パスワードハッシュは含めない。
func toUserResponse(u userdb.User) userResponse {
	return userResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		DateOfBirth: u.DateOfBirth,
		Gender:      u.Gender,
		Email:       u.Email,
		Address:     u.Address,
		Phone:       u.Phone,
		Role:        u.Role,
	}
}

// patientRequest は患者の作成・更新リクエストのJSON構造。
type patientRequest struct {
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required,datetime=2006-01-02"`
	Gender      string `json:"gender" binding:"required,oneof=M F"`
	Email       string `json:"email" binding:"required,email"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	// DoctorID は担当医師のユーザーID。
	DoctorID string `json:"doctorId" binding:"required"`
}

// patientResponse は患者のJSONレスポンス構造。
type patientResponse struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	DoctorID    string `json:"doctorId"`
}

// toPatientResponse はDB行をJSONレスポンスに変換する。
func toPatientResponse(p userdb.Patient) patientResponse {
	return patientResponse{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DateOfBirth: p.DateOfBirth,
		Gender:      p.Gender,
		Email:       p.Email,
		Address:     p.Address,
		Phone:       p.Phone,
		DoctorID:    p.DoctorID,
	}
}

// passwordRequest はパスワード変更リクエストのJSON構造。
type passwordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// messageResponse は処理結果のメッセージを返すJSON構造。
type messageResponse struct {
	Message string `json:"message"`
}
