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

const gradeColumns = "id, student_id, subject_id, midterm_grade, final_grade, semester, year"

func scanGrade(row rowScanner) (domain.Grade, error) {
	var grade domain.Grade
	err := row.Scan(
		&grade.Id,
		&grade.StudentId,
		&grade.SubjectId,
		&grade.MidtermGrade,
		&grade.FinalGrade,
		&grade.Semester,
		&grade.Year,
	)
	return grade, err
}

func (s *Storage) CreateGrade(ctx context.Context, grade domain.Grade) (int64, error) {
	query := `
		INSERT INTO grades (student_id, subject_id, midterm_grade, final_grade, semester, year)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := s.insert(ctx, "grade", query,
		grade.StudentId,
		grade.SubjectId,
		grade.MidtermGrade,
		grade.FinalGrade,
		grade.Semester,
		grade.Year,
	)
	if err != nil {
		log.Error().Err(err).Int64("studentId", grade.StudentId).Int64("subjectId", grade.SubjectId).Msg("Failed to create grade")
		return 0, err
	}
	return id, nil
}

func (s *Storage) GetGrade(ctx context.Context, id int64) (domain.Grade, error) {
	query := "SELECT " + gradeColumns + " FROM grades WHERE id = ?"

	grade, err := scanGrade(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Grade{}, srv.ErrNotFound
		}
		return domain.Grade{}, fmt.Errorf("failed to get grade: %w", err)
	}
	return grade, nil
}

func (s *Storage) GetAllGrades(ctx context.Context) ([]domain.Grade, error) {
	return s.listGrades(ctx, "SELECT "+gradeColumns+" FROM grades ORDER BY id")
}

func (s *Storage) GetGradesForStudent(ctx context.Context, studentId int64) ([]domain.Grade, error) {
	return s.listGrades(ctx, "SELECT "+gradeColumns+" FROM grades WHERE student_id = ? ORDER BY id", studentId)
}

func (s *Storage) listGrades(ctx context.Context, query string, args ...interface{}) ([]domain.Grade, error) {
	grades := []domain.Grade{}
	err := s.queryAll(ctx, "grades", query, func(row rowScanner) error {
		grade, err := scanGrade(row)
		if err != nil {
			return err
		}
		grades = append(grades, grade)
		return nil
	}, args...)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list grades")
		return nil, err
	}
	return grades, nil
}

// GetGradeRows lists every grade alongside the student's full name. Midterm
// rows carry Grade, final rows carry FinalGrade.
func (s *Storage) GetGradeRows(ctx context.Context, kind domain.GradeKind) ([]domain.GradeRow, error) {
	var column string
	switch kind {
	case domain.GradeKindMidterm:
		column = "g.midterm_grade"
	case domain.GradeKindFinal:
		column = "g.final_grade"
	default:
		return nil, fmt.Errorf("unknown grade kind: %q", kind)
	}

	query := `
		SELECT s.id, s.first_name || ' ' || s.last_name, ` + column + `
		FROM grades g
		JOIN students s ON s.id = g.student_id
		ORDER BY s.id, g.id
	`

	rows := []domain.GradeRow{}
	err := s.queryAll(ctx, "grade rows", query, func(row rowScanner) error {
		var gradeRow domain.GradeRow
		var mark *int64
		if err := row.Scan(&gradeRow.StudentId, &gradeRow.Name, &mark); err != nil {
			return err
		}
		if kind == domain.GradeKindFinal {
			gradeRow.FinalGrade = mark
		} else {
			gradeRow.Grade = mark
		}
		rows = append(rows, gradeRow)
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Msg("Failed to list grade rows")
		return nil, err
	}
	return rows, nil
}

func (s *Storage) UpdateGrade(ctx context.Context, grade domain.Grade) error {
	query := `
		UPDATE grades
		SET student_id = ?, subject_id = ?,
			midterm_grade = COALESCE(?, midterm_grade), final_grade = COALESCE(?, final_grade),
			semester = COALESCE(?, semester), year = COALESCE(?, year)
		WHERE id = ?
	`
	return s.execOne(ctx, "grade", query,
		grade.StudentId,
		grade.SubjectId,
		grade.MidtermGrade,
		grade.FinalGrade,
		grade.Semester,
		grade.Year,
		grade.Id,
	)
}

func (s *Storage) DeleteGrade(ctx context.Context, id int64) error {
	return s.execOne(ctx, "grade", "DELETE FROM grades WHERE id = ?", id)
}
