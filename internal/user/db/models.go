package db

import "time"

// User はusersテーブルの行。
type User struct {
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
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Patient はpatientsテーブルの行。
type Patient struct {
	ID          string
	FirstName   string
	LastName    string
	DateOfBirth string
	Gender      string
	Email       string
	Address     string
	Phone       string
	DoctorID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
