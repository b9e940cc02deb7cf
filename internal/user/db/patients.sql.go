package db

import (
	"context"
)

const patientColumns = `id, first_name, last_name, date_of_birth, gender, email, address, phone, doctor_id, created_at, updated_at`

func scanPatient(row interface{ Scan(...any) error }) (Patient, error) {
	var p Patient
	err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.DateOfBirth,
		&p.Gender,
		&p.Email,
		&p.Address,
		&p.Phone,
		&p.DoctorID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

const createPatient = `-- name: CreatePatient :exec
INSERT INTO patients (id, first_name, last_name, date_of_birth, gender, email, address, phone, doctor_id)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// CreatePatientParams はCreatePatientの引数。
type CreatePatientParams struct {
	ID          string
	FirstName   string
	LastName    string
	DateOfBirth string
	Gender      string
	Email       string
	Address     string
	Phone       string
	DoctorID    string
}

// CreatePatient は患者を作成する。
func (q *Queries) CreatePatient(ctx context.Context, arg CreatePatientParams) error {
	_, err := q.db.ExecContext(ctx, createPatient,
		arg.ID,
		arg.FirstName,
		arg.LastName,
		arg.DateOfBirth,
		arg.Gender,
		arg.Email,
		arg.Address,
		arg.Phone,
		arg.DoctorID,
	)
	return err
}

const getPatientByID = `-- name: GetPatientByID :one
SELECT ` + patientColumns + ` FROM patients WHERE id = ?
`

// GetPatientByID はIDで患者を取得する。
func (q *Queries) GetPatientByID(ctx context.Context, id string) (Patient, error) {
	return scanPatient(q.db.QueryRowContext(ctx, getPatientByID, id))
}

const getPatientByEmail = `-- name: GetPatientByEmail :one
SELECT ` + patientColumns + ` FROM patients WHERE email = ?
`

// GetPatientByEmail はメールアドレスで患者を取得する。
func (q *Queries) GetPatientByEmail(ctx context.Context, email string) (Patient, error) {
	return scanPatient(q.db.QueryRowContext(ctx, getPatientByEmail, email))
}

const listPatientsByDoctor = `-- name: ListPatientsByDoctor :many
SELECT ` + patientColumns + ` FROM patients WHERE doctor_id = ? ORDER BY last_name, first_name
`

// ListPatientsByDoctor は担当医師の患者一覧を取得する。
func (q *Queries) ListPatientsByDoctor(ctx context.Context, doctorID string) ([]Patient, error) {
	rows, err := q.db.QueryContext(ctx, listPatientsByDoctor, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countPatientsByDoctor = `-- name: CountPatientsByDoctor :one
SELECT COUNT(*) FROM patients WHERE doctor_id = ?
`

// CountPatientsByDoctor は担当医師の患者数を返す。
func (q *Queries) CountPatientsByDoctor(ctx context.Context, doctorID string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPatientsByDoctor, doctorID).Scan(&count)
	return count, err
}

const updatePatient = `-- name: UpdatePatient :exec
UPDATE patients
SET first_name = ?, last_name = ?, date_of_birth = ?, gender = ?, email = ?, address = ?, phone = ?,
    updated_at = datetime('now')
WHERE id = ?
`

// UpdatePatientParams はUpdatePatientの引数。
type UpdatePatientParams struct {
	FirstName   string
	LastName    string
	DateOfBirth string
	Gender      string
	Email       string
	Address     string
	Phone       string
	ID          string
}

// UpdatePatient は患者情報を更新する。担当医師は変更しない。
func (q *Queries) UpdatePatient(ctx context.Context, arg UpdatePatientParams) error {
	_, err := q.db.ExecContext(ctx, updatePatient,
		arg.FirstName,
		arg.LastName,
		arg.DateOfBirth,
		arg.Gender,
		arg.Email,
		arg.Address,
		arg.Phone,
		arg.ID,
	)
	return err
}

const deletePatient = `-- name: DeletePatient :exec
DELETE FROM patients WHERE id = ?
`

// DeletePatient は患者を削除する。
func (q *Queries) DeletePatient(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deletePatient, id)
	return err
}
