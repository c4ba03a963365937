package domain

import "context"

type Subject struct {
	Id             int64   `json:"id"`
	SubjectCode    string  `json:"subjectCode"`
	SubjectName    string  `json:"subjectName"`
	InstructorName *string `json:"instructorName"`
	Credits        *int64  `json:"credits"`
}

type SubjectStorage interface {
	CreateSubject(ctx context.Context, subject Subject) (int64, error)
	GetSubject(ctx context.Context, id int64) (Subject, error)
	GetAllSubjects(ctx context.Context) ([]Subject, error)
	UpdateSubject(ctx context.Context, subject Subject) error
	DeleteSubject(ctx context.Context, id int64) error
}
