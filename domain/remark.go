package domain

import "context"

// Remark is a free-form note an instructor or adviser left about a student.
type Remark struct {
	Id        int64   `json:"id"`
	StudentId int64   `json:"studentId"`
	Author    *string `json:"author"`
	Note      string  `json:"note"`
	Date      *string `json:"date"`
}

type RemarkStorage interface {
	CreateRemark(ctx context.Context, remark Remark) (int64, error)
	GetRemark(ctx context.Context, id int64) (Remark, error)
	GetAllRemarks(ctx context.Context) ([]Remark, error)
	GetRemarksForStudent(ctx context.Context, studentId int64) ([]Remark, error)
	UpdateRemark(ctx context.Context, remark Remark) error
	DeleteRemark(ctx context.Context, id int64) error
}
