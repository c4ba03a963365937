package domain

import (
	"context"
	"fmt"
)

type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusExcused AttendanceStatus = "excused"
)

func (s AttendanceStatus) Validate() error {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusExcused:
		return nil
	default:
		return fmt.Errorf("invalid attendance status: %s", s)
	}
}

type Attendance struct {
	Id        int64            `json:"id"`
	StudentId int64            `json:"studentId"`
	SubjectId *int64           `json:"subjectId"`
	Date      string           `json:"date"`
	Status    AttendanceStatus `json:"status"`
}

type AttendanceStorage interface {
	CreateAttendance(ctx context.Context, attendance Attendance) (int64, error)
	GetAttendance(ctx context.Context, id int64) (Attendance, error)
	GetAllAttendance(ctx context.Context) ([]Attendance, error)
	GetAttendanceForStudent(ctx context.Context, studentId int64) ([]Attendance, error)
	UpdateAttendance(ctx context.Context, attendance Attendance) error
	DeleteAttendance(ctx context.Context, id int64) error
}
