package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"studentrecords/domain"
	"studentrecords/llm"
	"studentrecords/srv"
	"studentrecords/telemetry"
	"time"

	"github.com/rs/zerolog/log"
)

// Report kinds, also used as metric labels.
const (
	KindStudents = "students"
	KindCustom   = "custom"
	KindStudent  = "student"
)

const CustomReportTypeSummary = "summary"

var ErrInvalidReportType = errors.New("invalid report type")

// Generator produces text for a prompt, delivering fragments to fn as they
// arrive when fn is non-nil.
type Generator interface {
	ModelName() string
	Stream(ctx context.Context, prompt string, fn llm.FragmentFunc) (string, error)
}

type Summarizer struct {
	service   srv.Service
	generator Generator
	metrics   *telemetry.Metrics
}

func NewSummarizer(service srv.Service, generator Generator, metrics *telemetry.Metrics) *Summarizer {
	return &Summarizer{
		service:   service,
		generator: generator,
		metrics:   metrics,
	}
}

type StudentsSummary struct {
	Summary  string           `json:"summary"`
	Students []domain.Student `json:"students"`
}

// SummarizeStudents summarizes every student on record.
func (s *Summarizer) SummarizeStudents(ctx context.Context) (StudentsSummary, error) {
	return s.StreamStudents(ctx, nil)
}

// StreamStudents is SummarizeStudents with incremental delivery. A cached
// summary is delivered to fn as a single fragment.
func (s *Summarizer) StreamStudents(ctx context.Context, fn llm.FragmentFunc) (StudentsSummary, error) {
	students, err := s.service.GetAllStudents(ctx)
	if err != nil {
		return StudentsSummary{}, fmt.Errorf("failed to load students: %w", err)
	}

	prompt, err := StudentsSummaryPrompt(students)
	if err != nil {
		return StudentsSummary{}, fmt.Errorf("failed to render students prompt: %w", err)
	}

	summary, err := s.summarize(ctx, KindStudents, prompt, fn)
	if err != nil {
		return StudentsSummary{}, err
	}
	return StudentsSummary{Summary: summary, Students: students}, nil
}

// CustomReport builds a report of the given type. Only "summary" is known,
// which covers students, subjects and attendance.
func (s *Summarizer) CustomReport(ctx context.Context, reportType string) (string, error) {
	if reportType != CustomReportTypeSummary {
		return "", fmt.Errorf("%w: %q", ErrInvalidReportType, reportType)
	}

	var data CustomReportData
	var err error
	if data.Students, err = s.service.GetAllStudents(ctx); err != nil {
		return "", fmt.Errorf("failed to load students: %w", err)
	}
	if data.Subjects, err = s.service.GetAllSubjects(ctx); err != nil {
		return "", fmt.Errorf("failed to load subjects: %w", err)
	}
	if data.Attendance, err = s.service.GetAllAttendance(ctx); err != nil {
		return "", fmt.Errorf("failed to load attendance: %w", err)
	}

	prompt, err := CustomReportPrompt(data)
	if err != nil {
		return "", err
	}
	return s.summarize(ctx, KindCustom, prompt, nil)
}

// StudentReport summarizes one student's grades, attendance, remarks and
// enrollment. An unknown student yields srv.ErrNotFound.
func (s *Summarizer) StudentReport(ctx context.Context, studentId int64) (string, error) {
	record, err := s.loadStudentRecord(ctx, studentId)
	if err != nil {
		return "", err
	}

	prompt, err := StudentReportPrompt(record)
	if err != nil {
		return "", fmt.Errorf("failed to render student report prompt: %w", err)
	}
	return s.summarize(ctx, KindStudent, prompt, nil)
}

func (s *Summarizer) loadStudentRecord(ctx context.Context, studentId int64) (StudentRecord, error) {
	var record StudentRecord
	var err error

	if record.Student, err = s.service.GetStudent(ctx, studentId); err != nil {
		return StudentRecord{}, err
	}
	if record.Grades, err = s.service.GetGradesForStudent(ctx, studentId); err != nil {
		return StudentRecord{}, fmt.Errorf("failed to load grades: %w", err)
	}
	if record.Attendance, err = s.service.GetAttendanceForStudent(ctx, studentId); err != nil {
		return StudentRecord{}, fmt.Errorf("failed to load attendance: %w", err)
	}
	if record.Remarks, err = s.service.GetRemarksForStudent(ctx, studentId); err != nil {
		return StudentRecord{}, fmt.Errorf("failed to load remarks: %w", err)
	}
	if record.Enrollments, err = s.service.GetEnrollmentsForStudent(ctx, studentId); err != nil {
		return StudentRecord{}, fmt.Errorf("failed to load enrollment: %w", err)
	}

	subjects, err := s.service.GetAllSubjects(ctx)
	if err != nil {
		return StudentRecord{}, fmt.Errorf("failed to load subjects: %w", err)
	}
	record.Subjects = make(map[int64]domain.Subject, len(subjects))
	for _, subject := range subjects {
		record.Subjects[subject.Id] = subject
	}

	return record, nil
}

// summarize consults the cache before calling the generator. The cache key is
// a digest of the model and prompt, so entries go stale only by expiring.
// Cache failures are logged and otherwise ignored.
func (s *Summarizer) summarize(ctx context.Context, kind, prompt string, fn llm.FragmentFunc) (string, error) {
	start := time.Now()
	key := cacheKey(s.generator.ModelName(), prompt)

	cached, err := s.service.GetSummary(ctx, key)
	if err == nil {
		if fn != nil && cached != "" {
			if err := fn(cached); err != nil {
				return "", err
			}
		}
		s.metrics.ObserveSummary(kind, telemetry.OutcomeCached, time.Since(start))
		return cached, nil
	}
	if !errors.Is(err, srv.ErrNotFound) {
		log.Warn().Err(err).Str("kind", kind).Msg("Summary cache lookup failed")
	}

	summary, err := s.generator.Stream(ctx, prompt, fn)
	if err != nil {
		s.metrics.ObserveSummary(kind, telemetry.OutcomeFailure, time.Since(start))
		return "", fmt.Errorf("failed to generate %s summary: %w", kind, err)
	}

	// empty results are never cached
	if summary != "" {
		if err := s.service.PersistSummary(ctx, key, summary); err != nil {
			log.Warn().Err(err).Str("kind", kind).Msg("Failed to cache summary")
		}
	}

	s.metrics.ObserveSummary(kind, telemetry.OutcomeSuccess, time.Since(start))
	return summary, nil
}

func cacheKey(model, prompt string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + prompt))
	return hex.EncodeToString(sum[:])
}
