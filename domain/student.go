package domain

import "context"

// Student is the root record that every other table hangs off.
type Student struct {
	Id        int64   `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Birthdate *string `json:"birthdate"`
	Email     *string `json:"email"`
	Gender    *string `json:"gender"`
	Course    *string `json:"course"`
	Year      *int64  `json:"year"`
	Block     *string `json:"block"`
}

func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

type StudentStorage interface {
	CreateStudent(ctx context.Context, student Student) (int64, error)
	GetStudent(ctx context.Context, id int64) (Student, error)
	GetAllStudents(ctx context.Context) ([]Student, error)
	UpdateStudent(ctx context.Context, student Student) error
	DeleteStudent(ctx context.Context, id int64) error
}
