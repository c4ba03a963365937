package domain

import "context"

// Enrollment records a student's standing for a term, optionally scoped to a
// single subject. Status is free text such as "active" or "dropped".
type Enrollment struct {
	Id        int64   `json:"id"`
	StudentId int64   `json:"studentId"`
	SubjectId *int64  `json:"subjectId"`
	Semester  *string `json:"semester"`
	Year      *int64  `json:"year"`
	Status    *string `json:"status"`
}

type EnrollmentStorage interface {
	CreateEnrollment(ctx context.Context, enrollment Enrollment) (int64, error)
	GetEnrollment(ctx context.Context, id int64) (Enrollment, error)
	GetAllEnrollments(ctx context.Context) ([]Enrollment, error)
	GetEnrollmentsForStudent(ctx context.Context, studentId int64) ([]Enrollment, error)
	UpdateEnrollment(ctx context.Context, enrollment Enrollment) error
	DeleteEnrollment(ctx context.Context, id int64) error
}
