package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"studentrecords/domain"
	"studentrecords/srv"

	"github.com/rs/zerolog/log"
)

const studentColumns = "id, first_name, last_name, birthdate, email, gender, course, year, block"

func scanStudent(row rowScanner) (domain.Student, error) {
	var student domain.Student
	err := row.Scan(
		&student.Id,
		&student.FirstName,
		&student.LastName,
		&student.Birthdate,
		&student.Email,
		&student.Gender,
		&student.Course,
		&student.Year,
		&student.Block,
	)
	return student, err
}

func (s *Storage) CreateStudent(ctx context.Context, student domain.Student) (int64, error) {
	query := `
		INSERT INTO students (first_name, last_name, birthdate, email, gender, course, year, block)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := s.insert(ctx, "student", query,
		student.FirstName,
		student.LastName,
		student.Birthdate,
		student.Email,
		student.Gender,
		student.Course,
		student.Year,
		student.Block,
	)
	if err != nil {
		log.Error().Err(err).Str("lastName", student.LastName).Msg("Failed to create student")
		return 0, err
	}

	log.Debug().Int64("studentId", id).Msg("Student created")
	return id, nil
}

func (s *Storage) GetStudent(ctx context.Context, id int64) (domain.Student, error) {
	query := "SELECT " + studentColumns + " FROM students WHERE id = ?"

	student, err := scanStudent(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Student{}, srv.ErrNotFound
		}
		log.Error().Err(err).Int64("studentId", id).Msg("Failed to get student")
		return domain.Student{}, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

func (s *Storage) GetAllStudents(ctx context.Context) ([]domain.Student, error) {
	query := "SELECT " + studentColumns + " FROM students ORDER BY id"

	students := []domain.Student{}
	err := s.queryAll(ctx, "students", query, func(row rowScanner) error {
		student, err := scanStudent(row)
		if err != nil {
			return err
		}
		students = append(students, student)
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to list students")
		return nil, err
	}
	return students, nil
}

// UpdateStudent overwrites the required columns. Optional fields left nil keep
// their stored value, so partial updates never null out data.
func (s *Storage) UpdateStudent(ctx context.Context, student domain.Student) error {
	query := `
		UPDATE students
		SET first_name = ?, last_name = ?,
			birthdate = COALESCE(?, birthdate), email = COALESCE(?, email), gender = COALESCE(?, gender),
			course = COALESCE(?, course), year = COALESCE(?, year), block = COALESCE(?, block)
		WHERE id = ?
	`
	err := s.execOne(ctx, "student", query,
		student.FirstName,
		student.LastName,
		student.Birthdate,
		student.Email,
		student.Gender,
		student.Course,
		student.Year,
		student.Block,
		student.Id,
	)
	if err != nil && !errors.Is(err, srv.ErrNotFound) {
		log.Error().Err(err).Int64("studentId", student.Id).Msg("Failed to update student")
	}
	return err
}

// DeleteStudent also removes the student's grades, attendance, remarks and
// enrollments through the schema's cascading foreign keys.
func (s *Storage) DeleteStudent(ctx context.Context, id int64) error {
	err := s.execOne(ctx, "student", "DELETE FROM students WHERE id = ?", id)
	if err != nil && !errors.Is(err, srv.ErrNotFound) {
		log.Error().Err(err).Int64("studentId", id).Msg("Failed to delete student")
	}
	return err
}
