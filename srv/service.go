package srv

import (
	"context"
	"errors"
	"io"
	"studentrecords/domain"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrInvalidReference is returned when a row points at a student or
	// subject that does not exist.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

type Service interface {
	Storage
	SummaryCache
	io.Closer
}

type Storage interface {
	domain.StudentStorage
	domain.SubjectStorage
	domain.GradeStorage
	domain.AttendanceStorage
	domain.RemarkStorage
	domain.EnrollmentStorage

	CheckConnection(ctx context.Context) error
}

// SummaryCache stores generated summaries keyed by a digest of the prompt
// that produced them. GetSummary returns ErrNotFound on a miss.
type SummaryCache interface {
	GetSummary(ctx context.Context, key string) (string, error)
	PersistSummary(ctx context.Context, key string, summary string) error
}
