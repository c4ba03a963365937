package report

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strconv"
	"studentrecords/domain"

	"github.com/cbroglie/mustache"
)

func init() {
	mustache.AllowMissingVariables = false
}

// fsPartialProvider resolves {{> name}} against prompts/<name>.mustache.
type fsPartialProvider struct {
	fs fs.ReadFileFS
}

func (p *fsPartialProvider) Get(name string) (string, error) {
	templateBytes, err := p.fs.ReadFile(fmt.Sprintf("prompts/%s.mustache", name))
	if err != nil {
		return "", err
	}
	return string(templateBytes), nil
}

func panicParseMustache(fileSystem fs.ReadFileFS, templateName string) *mustache.Template {
	templateBytes, err := fileSystem.ReadFile(fmt.Sprintf("prompts/%s.mustache", templateName))
	if err != nil {
		panic(err)
	}

	template, err := mustache.ParseStringPartials(string(templateBytes), &fsPartialProvider{fs: fileSystem})
	if err != nil {
		panic(err)
	}
	return template
}

//go:embed prompts/*
var promptsFS embed.FS

var (
	studentsSummaryTemplate = panicParseMustache(promptsFS, "students_summary")
	customReportTemplate    = panicParseMustache(promptsFS, "custom_report")
	studentReportTemplate   = panicParseMustache(promptsFS, "student_report")
)

const unknown = "unknown"

func orUnknown(s *string) string {
	if s == nil || *s == "" {
		return unknown
	}
	return *s
}

func intOrUnknown(i *int64) string {
	if i == nil {
		return unknown
	}
	return strconv.FormatInt(*i, 10)
}

func term(semester *string, year *int64) string {
	switch {
	case semester != nil && year != nil:
		return fmt.Sprintf("%s %d", *semester, *year)
	case semester != nil:
		return *semester
	case year != nil:
		return strconv.FormatInt(*year, 10)
	default:
		return ""
	}
}

// Template views are plain maps so that every key the templates reference is
// always present, which AllowMissingVariables=false requires.
func studentView(s domain.Student) map[string]interface{} {
	return map[string]interface{}{
		"name":   s.FullName(),
		"course": orUnknown(s.Course),
		"year":   intOrUnknown(s.Year),
		"block":  orUnknown(s.Block),
		"email":  orUnknown(s.Email),
	}
}

// StudentsSummaryPrompt lists one line per student.
func StudentsSummaryPrompt(students []domain.Student) (string, error) {
	views := make([]map[string]interface{}, 0, len(students))
	for _, s := range students {
		views = append(views, studentView(s))
	}
	return studentsSummaryTemplate.Render(map[string]interface{}{"students": views})
}

// CustomReportData is serialized verbatim into the custom report prompt.
type CustomReportData struct {
	Students   []domain.Student    `json:"students"`
	Subjects   []domain.Subject    `json:"subjects"`
	Attendance []domain.Attendance `json:"attendance"`
}

func CustomReportPrompt(data CustomReportData) (string, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to encode report data: %w", err)
	}
	return customReportTemplate.Render(map[string]interface{}{"data": string(encoded)})
}

// StudentRecord is everything known about one student.
type StudentRecord struct {
	Student     domain.Student
	Grades      []domain.Grade
	Subjects    map[int64]domain.Subject
	Attendance  []domain.Attendance
	Remarks     []domain.Remark
	Enrollments []domain.Enrollment
}

func StudentReportPrompt(record StudentRecord) (string, error) {
	grades := make([]map[string]interface{}, 0, len(record.Grades))
	for _, g := range record.Grades {
		subject := fmt.Sprintf("subject #%d", g.SubjectId)
		if s, ok := record.Subjects[g.SubjectId]; ok {
			subject = s.SubjectName
		}
		grades = append(grades, map[string]interface{}{
			"subject": subject,
			"midterm": intOrUnknown(g.MidtermGrade),
			"final":   intOrUnknown(g.FinalGrade),
			"term":    term(g.Semester, g.Year),
		})
	}

	attendance := make([]map[string]interface{}, 0, len(record.Attendance))
	for _, a := range record.Attendance {
		attendance = append(attendance, map[string]interface{}{
			"date":   a.Date,
			"status": string(a.Status),
		})
	}

	remarks := make([]map[string]interface{}, 0, len(record.Remarks))
	for _, r := range record.Remarks {
		author := ""
		if r.Author != nil {
			author = *r.Author
		}
		remarks = append(remarks, map[string]interface{}{
			"note":   r.Note,
			"author": author,
		})
	}

	enrollments := make([]map[string]interface{}, 0, len(record.Enrollments))
	for _, e := range record.Enrollments {
		enrollments = append(enrollments, map[string]interface{}{
			"status": orUnknown(e.Status),
			"term":   term(e.Semester, e.Year),
		})
	}

	return studentReportTemplate.Render(map[string]interface{}{
		"student":    studentView(record.Student),
		"grades":     grades,
		"attendance": attendance,
		"remarks":    remarks,
		"enrollment": enrollments,
	})
}
