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

const subjectColumns = "id, subject_code, subject_name, instructor_name, credits"

func scanSubject(row rowScanner) (domain.Subject, error) {
	var subject domain.Subject
	err := row.Scan(&subject.Id, &subject.SubjectCode, &subject.SubjectName, &subject.InstructorName, &subject.Credits)
	return subject, err
}

func (s *Storage) CreateSubject(ctx context.Context, subject domain.Subject) (int64, error) {
	query := `
		INSERT INTO subjects (subject_code, subject_name, instructor_name, credits)
		VALUES (?, ?, ?, ?)
	`
	id, err := s.insert(ctx, "subject", query, subject.SubjectCode, subject.SubjectName, subject.InstructorName, subject.Credits)
	if err != nil {
		log.Error().Err(err).Str("subjectCode", subject.SubjectCode).Msg("Failed to create subject")
		return 0, err
	}
	return id, nil
}

func (s *Storage) GetSubject(ctx context.Context, id int64) (domain.Subject, error) {
	query := "SELECT " + subjectColumns + " FROM subjects WHERE id = ?"

	subject, err := scanSubject(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Subject{}, srv.ErrNotFound
		}
		return domain.Subject{}, fmt.Errorf("failed to get subject: %w", err)
	}
	return subject, nil
}

func (s *Storage) GetAllSubjects(ctx context.Context) ([]domain.Subject, error) {
	query := "SELECT " + subjectColumns + " FROM subjects ORDER BY id"

	subjects := []domain.Subject{}
	err := s.queryAll(ctx, "subjects", query, func(row rowScanner) error {
		subject, err := scanSubject(row)
		if err != nil {
			return err
		}
		subjects = append(subjects, subject)
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to list subjects")
		return nil, err
	}
	return subjects, nil
}

func (s *Storage) UpdateSubject(ctx context.Context, subject domain.Subject) error {
	query := `
		UPDATE subjects
		SET subject_code = ?, subject_name = ?, instructor_name = COALESCE(?, instructor_name), credits = COALESCE(?, credits)
		WHERE id = ?
	`
	return s.execOne(ctx, "subject", query, subject.SubjectCode, subject.SubjectName, subject.InstructorName, subject.Credits, subject.Id)
}

func (s *Storage) DeleteSubject(ctx context.Context, id int64) error {
	return s.execOne(ctx, "subject", "DELETE FROM subjects WHERE id = ?", id)
}
