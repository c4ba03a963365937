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

const remarkColumns = "id, student_id, author, note, date"

func scanRemark(row rowScanner) (domain.Remark, error) {
	var remark domain.Remark
	err := row.Scan(&remark.Id, &remark.StudentId, &remark.Author, &remark.Note, &remark.Date)
	return remark, err
}

func (s *Storage) CreateRemark(ctx context.Context, remark domain.Remark) (int64, error) {
	query := `
		INSERT INTO remarks (student_id, author, note, date)
		VALUES (?, ?, ?, ?)
	`
	id, err := s.insert(ctx, "remark", query, remark.StudentId, remark.Author, remark.Note, remark.Date)
	if err != nil {
		log.Error().Err(err).Int64("studentId", remark.StudentId).Msg("Failed to create remark")
		return 0, err
	}
	return id, nil
}

func (s *Storage) GetRemark(ctx context.Context, id int64) (domain.Remark, error) {
	query := "SELECT " + remarkColumns + " FROM remarks WHERE id = ?"

	remark, err := scanRemark(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Remark{}, srv.ErrNotFound
		}
		return domain.Remark{}, fmt.Errorf("failed to get remark: %w", err)
	}
	return remark, nil
}

func (s *Storage) GetAllRemarks(ctx context.Context) ([]domain.Remark, error) {
	return s.listRemarks(ctx, "SELECT "+remarkColumns+" FROM remarks ORDER BY id")
}

func (s *Storage) GetRemarksForStudent(ctx context.Context, studentId int64) ([]domain.Remark, error) {
	return s.listRemarks(ctx, "SELECT "+remarkColumns+" FROM remarks WHERE student_id = ? ORDER BY id", studentId)
}

func (s *Storage) listRemarks(ctx context.Context, query string, args ...interface{}) ([]domain.Remark, error) {
	remarks := []domain.Remark{}
	err := s.queryAll(ctx, "remarks", query, func(row rowScanner) error {
		remark, err := scanRemark(row)
		if err != nil {
			return err
		}
		remarks = append(remarks, remark)
		return nil
	}, args...)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list remarks")
		return nil, err
	}
	return remarks, nil
}

func (s *Storage) UpdateRemark(ctx context.Context, remark domain.Remark) error {
	query := `
		UPDATE remarks
		SET student_id = ?, author = COALESCE(?, author), note = ?, date = COALESCE(?, date)
		WHERE id = ?
	`
	return s.execOne(ctx, "remark", query, remark.StudentId, remark.Author, remark.Note, remark.Date, remark.Id)
}

func (s *Storage) DeleteRemark(ctx context.Context, id int64) error {
	return s.execOne(ctx, "remark", "DELETE FROM remarks WHERE id = ?", id)
}
