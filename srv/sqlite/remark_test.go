package sqlite

import (
	"context"
	"studentrecords/domain"
	"studentrecords/srv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemarkCRUD(t *testing.T) {
	t.Parallel()
	storage := NewTestSqliteStorage(t, "remark_test")
	ctx := context.Background()

	studentId := createTestStudent(t, storage, "Hana", "Yu")

	remark := domain.Remark{StudentId: studentId, Author: strPtr("Adviser"), Note: "Needs support in math"}
	id, err := storage.CreateRemark(ctx, remark)
	require.NoError(t, err)
	remark.Id = id

	got, err := storage.GetRemark(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, remark, got)

	remark.Note = "Improving in math"
	require.NoError(t, storage.UpdateRemark(ctx, remark))

	remarks, err := storage.GetRemarksForStudent(ctx, studentId)
	require.NoError(t, err)
	require.Len(t, remarks, 1)
	assert.Equal(t, "Improving in math", remarks[0].Note)

	require.NoError(t, storage.DeleteRemark(ctx, id))
	_, err = storage.GetRemark(ctx, id)
	assert.ErrorIs(t, err, srv.ErrNotFound)

	_, err = storage.CreateRemark(ctx, domain.Remark{StudentId: studentId + 100, Note: "orphan"})
	assert.ErrorIs(t, err, srv.ErrInvalidReference)
}
