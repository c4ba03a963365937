package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectHandlers_CRUD(t *testing.T) {
	t.Parallel()
	env := newDefaultTestEnv(t)

	id := env.create(t, "/api/subjects", `{"subjectCode":"CS101","subjectName":"Intro to Computing","credits":3}`)

	w := env.do(t, http.MethodGet, fmt.Sprintf("/api/subjects/%d", id), "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "CS101", data["subjectCode"])
	assert.EqualValues(t, 3, data["credits"])
	assert.Nil(t, data["instructorName"])

	w = env.do(t, http.MethodPut, "/api/subjects",
		fmt.Sprintf(`{"id":%d,"subjectCode":"CS101","subjectName":"Computing I","instructorName":"Grace"}`, id))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/subjects/%d", id), "")
	data = decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Computing I", data["subjectName"])
	assert.Equal(t, "Grace", data["instructorName"])

	w = env.do(t, http.MethodDelete, "/api/subjects", fmt.Sprintf(`{"id":%d}`, id))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Subject deleted successfully", decodeBody(t, w)["message"])

	w = env.do(t, http.MethodDelete, "/api/subjects", fmt.Sprintf(`{"id":%d}`, id))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Subject not found", decodeBody(t, w)["error"])
}

func TestSubjectHandlers_MissingFields(t *testing.T) {
	t.Parallel()
	env := newDefaultTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/subjects", `{"subjectCode":"CS101"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing required fields (subjectCode, subjectName)", decodeBody(t, w)["error"])
}
