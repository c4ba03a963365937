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

const attendanceColumns = "id, student_id, subject_id, date, status"

func scanAttendance(row rowScanner) (domain.Attendance, error) {
	var attendance domain.Attendance
	var status string
	err := row.Scan(&attendance.Id, &attendance.StudentId, &attendance.SubjectId, &attendance.Date, &status)
	attendance.Status = domain.AttendanceStatus(status)
	return attendance, err
}

func (s *Storage) CreateAttendance(ctx context.Context, attendance domain.Attendance) (int64, error) {
	query := `
		INSERT INTO attendance (student_id, subject_id, date, status)
		VALUES (?, ?, ?, ?)
	`
	id, err := s.insert(ctx, "attendance", query,
		attendance.StudentId,
		attendance.SubjectId,
		attendance.Date,
		string(attendance.Status),
	)
	if err != nil {
		log.Error().Err(err).Int64("studentId", attendance.StudentId).Msg("Failed to create attendance")
		return 0, err
	}
	return id, nil
}

func (s *Storage) GetAttendance(ctx context.Context, id int64) (domain.Attendance, error) {
	query := "SELECT " + attendanceColumns + " FROM attendance WHERE id = ?"

	attendance, err := scanAttendance(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Attendance{}, srv.ErrNotFound
		}
		return domain.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return attendance, nil
}

func (s *Storage) GetAllAttendance(ctx context.Context) ([]domain.Attendance, error) {
	return s.listAttendance(ctx, "SELECT "+attendanceColumns+" FROM attendance ORDER BY date, id")
}

func (s *Storage) GetAttendanceForStudent(ctx context.Context, studentId int64) ([]domain.Attendance, error) {
	return s.listAttendance(ctx, "SELECT "+attendanceColumns+" FROM attendance WHERE student_id = ? ORDER BY date, id", studentId)
}

func (s *Storage) listAttendance(ctx context.Context, query string, args ...interface{}) ([]domain.Attendance, error) {
	records := []domain.Attendance{}
	err := s.queryAll(ctx, "attendance", query, func(row rowScanner) error {
		attendance, err := scanAttendance(row)
		if err != nil {
			return err
		}
		records = append(records, attendance)
		return nil
	}, args...)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list attendance")
		return nil, err
	}
	return records, nil
}

func (s *Storage) UpdateAttendance(ctx context.Context, attendance domain.Attendance) error {
	query := `
		UPDATE attendance
		SET student_id = ?, subject_id = COALESCE(?, subject_id), date = ?, status = ?
		WHERE id = ?
	`
	return s.execOne(ctx, "attendance", query,
		attendance.StudentId,
		attendance.SubjectId,
		attendance.Date,
		string(attendance.Status),
		attendance.Id,
	)
}

func (s *Storage) DeleteAttendance(ctx context.Context, id int64) error {
	return s.execOne(ctx, "attendance", "DELETE FROM attendance WHERE id = ?", id)
}
