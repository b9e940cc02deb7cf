package db

import (
	"context"
)

const userColumns = `id, first_name, last_name, date_of_birth, gender, email, address, phone, password_hash, role, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.DateOfBirth,
		&u.Gender,
		&u.Email,
		&u.Address,
		&u.Phone,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

const createUser = `-- name: CreateUser :exec
INSERT INTO users (id, first_name, last_name, date_of_birth, gender, email, address, phone, password_hash, role)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// CreateUserParams はCreateUserの引数。
type CreateUserParams struct {
	ID           string
	FirstName    string
	LastName     string
	DateOfBirth  string
	Gender       string
	Email        string
	Address      string
	Phone        string
	PasswordHash string
	Role         string
}

// CreateUser はユーザーを作成する。
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) error {
	_, err := q.db.ExecContext(ctx, createUser,
		arg.ID,
		arg.FirstName,
		arg.LastName,
		arg.DateOfBirth,
		arg.Gender,
		arg.Email,
		arg.Address,
		arg.Phone,
		arg.PasswordHash,
		arg.Role,
	)
	return err
}

const getUserByID = `-- name: GetUserByID :one
SELECT ` + userColumns + ` FROM users WHERE id = ?
`

// GetUserByID はIDでユーザーを取得する。
func (q *Queries) GetUserByID(ctx context.Context, id string) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByID, id))
}

const getUserByEmail = `-- name: GetUserByEmail :one
SELECT ` + userColumns + ` FROM users WHERE email = ?
`

// GetUserByEmail はメールアドレスでユーザーを取得する。
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(q.db.QueryRowContext(ctx, getUserByEmail, email))
}

const userExists = `-- name: UserExists :one
SELECT EXISTS (SELECT 1 FROM users WHERE id = ?)
`

// UserExists はIDのユーザーが存在するかどうかを返す。
func (q *Queries) UserExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := q.db.QueryRowContext(ctx, userExists, id).Scan(&exists)
	return exists, err
}

const searchUsers = `-- name: SearchUsers :many
SELECT ` + userColumns + ` FROM users
WHERE LOWER(first_name) LIKE '%' || LOWER(?1) || '%'
   OR LOWER(last_name) LIKE '%' || LOWER(?1) || '%'
   OR LOWER(email) LIKE '%' || LOWER(?1) || '%'
ORDER BY last_name, first_name
`

// SearchUsers は名前またはメールアドレスにkeywordを含むユーザーを取得する。
func (q *Queries) SearchUsers(ctx context.Context, keyword string) ([]User, error) {
	rows, err := q.db.QueryContext(ctx, searchUsers, keyword)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateUserProfile = `-- name: UpdateUserProfile :exec
UPDATE users
SET first_name = ?, last_name = ?, date_of_birth = ?, gender = ?, email = ?, address = ?, phone = ?,
    updated_at = datetime('now')
WHERE id = ?
`

// UpdateUserProfileParams はUpdateUserProfileの引数。
type UpdateUserProfileParams struct {
	FirstName   string
	LastName    string
	DateOfBirth string
	Gender      string
	Email       string
	Address     string
	Phone       string
	ID          string
}

// UpdateUserProfile はユーザーのプロフィールを更新する。
func (q *Queries) UpdateUserProfile(ctx context.Context, arg UpdateUserProfileParams) error {
	_, err := q.db.ExecContext(ctx, updateUserProfile,
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

const updateUserPassword = `-- name: UpdateUserPassword :exec
UPDATE users SET password_hash = ?, updated_at = datetime('now') WHERE id = ?
`

// UpdateUserPassword はユーザーのパスワードハッシュを更新する。
func (q *Queries) UpdateUserPassword(ctx context.Context, passwordHash, id string) error {
	_, err := q.db.ExecContext(ctx, updateUserPassword, passwordHash, id)
	return err
}

const deleteUser = `-- name: DeleteUser :exec
DELETE FROM users WHERE id = ?
`

// DeleteUser はユーザーを削除する。
func (q *Queries) DeleteUser(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteUser, id)
	return err
}

const countAdmins = `-- name: CountAdmins :one
SELECT COUNT(*) FROM users WHERE role = 'ADMIN'
`

// CountAdmins は管理者の人数を返す。
func (q *Queries) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countAdmins).Scan(&count)
	return count, err
}
