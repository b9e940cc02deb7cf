package db

import (
	"context"
	"time"
)

const noteColumns = `id, patient_id, date_time, note`

func scanNote(row interface{ Scan(...any) error }) (Note, error) {
	var n Note
	err := row.Scan(&n.ID, &n.PatientID, &n.DateTime, &n.Note)
	return n, err
}

const createNote = `-- name: CreateNote :exec
INSERT INTO notes (id, patient_id, date_time, note) VALUES (?, ?, ?, ?)
`

// CreateNoteParams はCreateNoteの引数。
type CreateNoteParams struct {
	ID        string
	PatientID string
	DateTime  time.Time
	Note      string
}

// CreateNote はノートを作成する。
func (q *Queries) CreateNote(ctx context.Context, arg CreateNoteParams) error {
	_, err := q.db.ExecContext(ctx, createNote, arg.ID, arg.PatientID, arg.DateTime, arg.Note)
	return err
}

const getNoteByID = `-- name: GetNoteByID :one
SELECT ` + noteColumns + ` FROM notes WHERE id = ?
`

// GetNoteByID はIDでノートを取得する。
func (q *Queries) GetNoteByID(ctx context.Context, id string) (Note, error) {
	return scanNote(q.db.QueryRowContext(ctx, getNoteByID, id))
}

const listNotesByPatient = `-- name: ListNotesByPatient :many
SELECT ` + noteColumns + ` FROM notes WHERE patient_id = ? ORDER BY date_time, id
`

// ListNotesByPatient は患者のノートを記録日時の古い順に取得する。
func (q *Queries) ListNotesByPatient(ctx context.Context, patientID string) ([]Note, error) {
	rows, err := q.db.QueryContext(ctx, listNotesByPatient, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateNote = `-- name: UpdateNote :exec
UPDATE notes SET note = ? WHERE id = ?
`

// UpdateNote はノートの本文を更新する。記録日時と患者は変更しない。
func (q *Queries) UpdateNote(ctx context.Context, note, id string) error {
	_, err := q.db.ExecContext(ctx, updateNote, note, id)
	return err
}

const deleteNote = `-- name: DeleteNote :exec
DELETE FROM notes WHERE id = ?
`

// DeleteNote はノートを削除する。
func (q *Queries) DeleteNote(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteNote, id)
	return err
}
