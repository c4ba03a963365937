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

const enrollmentColumns = "id, student_id, subject_id, semester, year, status"

func scanEnrollment(row rowScanner) (domain.Enrollment, error) {
	var enrollment domain.Enrollment
	err := row.Scan(
		&enrollment.Id,
		&enrollment.StudentId,
		&enrollment.SubjectId,
		&enrollment.Semester,
		&enrollment.Year,
		&enrollment.Status,
	)
	return enrollment, err
}

func (s *Storage) CreateEnrollment(ctx context.Context, enrollment domain.Enrollment) (int64, error) {
	query := `
		INSERT INTO enrollment (student_id, subject_id, semester, year, status)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := s.insert(ctx, "enrollment", query,
		enrollment.StudentId,
		enrollment.SubjectId,
		enrollment.Semester,
		enrollment.Year,
		enrollment.Status,
	)
	if err != nil {
		log.Error().Err(err).Int64("studentId", enrollment.StudentId).Msg("Failed to create enrollment")
		return 0, err
	}
	return id, nil
}

func (s *Storage) GetEnrollment(ctx context.Context, id int64) (domain.Enrollment, error) {
	query := "SELECT " + enrollmentColumns + " FROM enrollment WHERE id = ?"

	enrollment, err := scanEnrollment(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Enrollment{}, srv.ErrNotFound
		}
		return domain.Enrollment{}, fmt.Errorf("failed to get enrollment: %w", err)
	}
	return enrollment, nil
}

func (s *Storage) GetAllEnrollments(ctx context.Context) ([]domain.Enrollment, error) {
	return s.listEnrollments(ctx, "SELECT "+enrollmentColumns+" FROM enrollment ORDER BY id")
}

func (s *Storage) GetEnrollmentsForStudent(ctx context.Context, studentId int64) ([]domain.Enrollment, error) {
	return s.listEnrollments(ctx, "SELECT "+enrollmentColumns+" FROM enrollment WHERE student_id = ? ORDER BY id", studentId)
}

func (s *Storage) listEnrollments(ctx context.Context, query string, args ...interface{}) ([]domain.Enrollment, error) {
	enrollments := []domain.Enrollment{}
	err := s.queryAll(ctx, "enrollment", query, func(row rowScanner) error {
		enrollment, err := scanEnrollment(row)
		if err != nil {
			return err
		}
		enrollments = append(enrollments, enrollment)
		return nil
	}, args...)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list enrollment")
		return nil, err
	}
	return enrollments, nil
}

func (s *Storage) UpdateEnrollment(ctx context.Context, enrollment domain.Enrollment) error {
	query := `
		UPDATE enrollment
		SET student_id = ?, subject_id = COALESCE(?, subject_id), semester = COALESCE(?, semester),
			year = COALESCE(?, year), status = COALESCE(?, status)
		WHERE id = ?
	`
	return s.execOne(ctx, "enrollment", query,
		enrollment.StudentId,
		enrollment.SubjectId,
		enrollment.Semester,
		enrollment.Year,
		enrollment.Status,
		enrollment.Id,
	)
}

func (s *Storage) DeleteEnrollment(ctx context.Context, id int64) error {
	return s.execOne(ctx, "enrollment", "DELETE FROM enrollment WHERE id = ?", id)
}
