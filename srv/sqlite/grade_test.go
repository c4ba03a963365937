package sqlite

import (
	"context"
	"studentrecords/domain"
	"studentrecords/srv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeCRUD(t *testing.T) {
	t.Parallel()
	storage := NewTestSqliteStorage(t, "grade_test")
	ctx := context.Background()

	studentId := createTestStudent(t, storage, "Carla", "Diaz")
	subjectId, err := storage.CreateSubject(ctx, domain.Subject{SubjectCode: "PHY1", SubjectName: "Physics"})
	require.NoError(t, err)

	grade := domain.Grade{StudentId: studentId, SubjectId: subjectId, MidtermGrade: intPtr(85), Semester: strPtr("1st")}
	id, err := storage.CreateGrade(ctx, grade)
	require.NoError(t, err)
	grade.Id = id

	got, err := storage.GetGrade(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, grade, got)
	assert.Nil(t, got.FinalGrade)

	grade.FinalGrade = intPtr(92)
	require.NoError(t, storage.UpdateGrade(ctx, grade))

	forStudent, err := storage.GetGradesForStudent(ctx, studentId)
	require.NoError(t, err)
	require.Len(t, forStudent, 1)
	assert.Equal(t, int64(92), *forStudent[0].FinalGrade)

	require.NoError(t, storage.DeleteGrade(ctx, id))
	_, err = storage.GetGrade(ctx, id)
	assert.ErrorIs(t, err, srv.ErrNotFound)
}

func TestCreateGrade_InvalidReference(t *testing.T) {
	t.Parallel()
	storage := NewTestSqliteStorage(t, "grade_fk_test")

	_, err := storage.CreateGrade(context.Background(), domain.Grade{StudentId: 999, SubjectId: 999})
	assert.ErrorIs(t, err, srv.ErrInvalidReference)
}

func TestGetGradeRows(t *testing.T) {
	t.Parallel()
	storage := NewTestSqliteStorage(t, "grade_rows_test")
	ctx := context.Background()

	first := createTestStudent(t, storage, "Dan", "Ong")
	second := createTestStudent(t, storage, "Eve", "Tan")
	subjectId, err := storage.CreateSubject(ctx, domain.Subject{SubjectCode: "ENG1", SubjectName: "English"})
	require.NoError(t, err)

	_, err = storage.CreateGrade(ctx, domain.Grade{StudentId: first, SubjectId: subjectId, MidtermGrade: intPtr(80), FinalGrade: intPtr(88)})
	require.NoError(t, err)
	_, err = storage.CreateGrade(ctx, domain.Grade{StudentId: second, SubjectId: subjectId, MidtermGrade: intPtr(75)})
	require.NoError(t, err)

	t.Run("midterm", func(t *testing.T) {
		rows, err := storage.GetGradeRows(ctx, domain.GradeKindMidterm)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, domain.GradeRow{StudentId: first, Name: "Dan Ong", Grade: intPtr(80)}, rows[0])
		assert.Equal(t, domain.GradeRow{StudentId: second, Name: "Eve Tan", Grade: intPtr(75)}, rows[1])
	})

	t.Run("finals", func(t *testing.T) {
		rows, err := storage.GetGradeRows(ctx, domain.GradeKindFinal)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, intPtr(88), rows[0].FinalGrade)
		assert.Nil(t, rows[0].Grade)
		assert.Nil(t, rows[1].FinalGrade)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := storage.GetGradeRows(ctx, domain.GradeKind("bogus"))
		assert.Error(t, err)
	})
}
