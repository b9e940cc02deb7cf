package note

import (
	notedb "github.com/nao1215/medilabo/internal/note/db"
)

// dateTimeLayout はノートの記録日時のJSON表現。
const dateTimeLayout = "2006-01-02T15:04:05"

// createNoteRequest はノート作成リクエストのJSON構造。
type createNoteRequest struct {
	// PatientID はノートを記録する患者のID。
	PatientID string `json:"patientId" binding:"required"`
	// Note は所見の本文。
	Note string `json:"note" binding:"required"`
}

// updateNoteRequest はノート更新リクエストのJSON構造。本文のみ変更できる。
type updateNoteRequest struct {
	Note string `json:"note" binding:"required"`
}

// noteResponse はノートのJSONレスポンス構造。
type noteResponse struct {
	ID        string `json:"id"`
	PatientID string `json:"patientId"`
	DateTime  string `json:"dateTime"`
	Note      string `json:"note"`
}

func toNoteResponse(n notedb.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		PatientID: n.PatientID,
		DateTime:  n.DateTime.Local().Format(dateTimeLayout),
		Note:      n.Note,
	}
}

// patient はユーザーサービスから取得する患者情報のうち、ノートサービスが使う項目。
type patient struct {
	ID       string `json:"id"`
	LastName string `json:"lastName"`
}

// messageResponse は処理結果のメッセージを返すJSON構造。
type messageResponse struct {
	Message string `json:"message"`
}
