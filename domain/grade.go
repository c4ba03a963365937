package domain

import "context"

// Grade holds the midterm and final marks a student received in one subject
// for a given term.
type Grade struct {
	Id           int64   `json:"id"`
	StudentId    int64   `json:"studentId"`
	SubjectId    int64   `json:"subjectId"`
	MidtermGrade *int64  `json:"midtermGrade"`
	FinalGrade   *int64  `json:"finalGrade"`
	Semester     *string `json:"semester"`
	Year         *int64  `json:"year"`
}

// GradeKind selects which mark a GradeRow reports.
type GradeKind string

const (
	GradeKindMidterm GradeKind = "grades"
	GradeKindFinal   GradeKind = "finals"
)

// GradeRow is a grade joined with the student's name, as listed by the
// grades/finals report.
type GradeRow struct {
	StudentId  int64  `json:"studentId"`
	Name       string `json:"name"`
	Grade      *int64 `json:"grade"`
	FinalGrade *int64 `json:"finalGrade"`
}

type GradeStorage interface {
	CreateGrade(ctx context.Context, grade Grade) (int64, error)
	GetGrade(ctx context.Context, id int64) (Grade, error)
	GetAllGrades(ctx context.Context) ([]Grade, error)
	GetGradesForStudent(ctx context.Context, studentId int64) ([]Grade, error)
	GetGradeRows(ctx context.Context, kind GradeKind) ([]GradeRow, error)
	UpdateGrade(ctx context.Context, grade Grade) error
	DeleteGrade(ctx context.Context, id int64) error
}
