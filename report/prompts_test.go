package report

import (
	"encoding/json"
	"strings"
	"studentrecords/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int64) *int64    { return &i }

func TestStudentsSummaryPrompt(t *testing.T) {
	t.Parallel()

	prompt, err := StudentsSummaryPrompt([]domain.Student{
		{Id: 1, FirstName: "Ana", LastName: "Reyes", Course: strPtr("BSCS"), Year: intPtr(2)},
		{Id: 2, FirstName: "Ben", LastName: "O'Neil & Co"},
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prompt, "Summarize the following student data:\n"))
	assert.Contains(t, prompt, "Name: Ana Reyes, Course: BSCS, Year: 2, Block: unknown")
	assert.Contains(t, prompt, "Name: Ben O'Neil & Co, Course: unknown", "names are not html escaped")
}

func TestStudentsSummaryPrompt_NoStudents(t *testing.T) {
	t.Parallel()

	prompt, err := StudentsSummaryPrompt(nil)
	require.NoError(t, err)
	assert.Contains(t, prompt, "There are no students on record.")
}

func TestCustomReportPrompt(t *testing.T) {
	t.Parallel()

	data := CustomReportData{
		Students:   []domain.Student{{Id: 1, FirstName: "Ana", LastName: "Reyes"}},
		Subjects:   []domain.Subject{{Id: 1, SubjectCode: "CS1", SubjectName: "Intro"}},
		Attendance: []domain.Attendance{{Id: 1, StudentId: 1, Date: "2024-06-01", Status: domain.AttendanceStatusPresent}},
	}
	prompt, err := CustomReportPrompt(data)
	require.NoError(t, err)

	header := "Generate a concise, readable summary of the following student data:\n"
	require.True(t, strings.HasPrefix(prompt, header))

	var decoded CustomReportData
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(strings.TrimPrefix(prompt, header))), &decoded))
	assert.Equal(t, data, decoded)
}

func TestStudentReportPrompt(t *testing.T) {
	t.Parallel()

	prompt, err := StudentReportPrompt(StudentRecord{
		Student: domain.Student{Id: 7, FirstName: "Carla", LastName: "Diaz", Email: strPtr("carla@example.com")},
		Grades: []domain.Grade{
			{SubjectId: 1, MidtermGrade: intPtr(85), FinalGrade: intPtr(90), Semester: strPtr("1st"), Year: intPtr(2024)},
			{SubjectId: 9, MidtermGrade: intPtr(70)},
		},
		Subjects:    map[int64]domain.Subject{1: {Id: 1, SubjectName: "Physics"}},
		Attendance:  []domain.Attendance{{Date: "2024-06-03", Status: domain.AttendanceStatusLate}},
		Remarks:     []domain.Remark{{Note: "Asks good questions", Author: strPtr("Adviser")}},
		Enrollments: []domain.Enrollment{{Status: strPtr("active"), Year: intPtr(2024)}},
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "Name: Carla Diaz")
	assert.Contains(t, prompt, "Email: carla@example.com")
	assert.Contains(t, prompt, "- Physics: midterm 85, final 90 (1st 2024)")
	assert.Contains(t, prompt, "- subject #9: midterm 70, final unknown")
	assert.Contains(t, prompt, "- 2024-06-03: late")
	assert.Contains(t, prompt, "- Asks good questions (Adviser)")
	assert.Contains(t, prompt, "- active for 2024")
}

func TestStudentReportPrompt_EmptySections(t *testing.T) {
	t.Parallel()

	prompt, err := StudentReportPrompt(StudentRecord{Student: domain.Student{FirstName: "Dan", LastName: "Ong"}})
	require.NoError(t, err)
	assert.Equal(t, 4, strings.Count(prompt, "- none recorded"))
}
