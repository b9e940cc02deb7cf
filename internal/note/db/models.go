package db

import "time"

// Note は患者に紐づく医師の所見。
type Note struct {
	ID        string
	PatientID string
	DateTime  time.Time
	Note      string
}
