package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobCreateAndFetchByNumericID(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.sendForm(t, http.MethodPost, "/api/jobs", "",
		url.Values{"title": {"Nurse"}, "deadline": {"2026-10-31"}},
		[]filePart{{field: "file", filename: "application.pdf", content: []byte("form")}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	job := decodeMap(t, rec)["job"].(map[string]any)
	id := job["id"].(float64)
	assert.Greater(t, id, float64(0))
	assert.True(t, env.store.Exists(job["file"].(string)))

	got := env.sendJSON(t, http.MethodGet, "/api/jobs/"+jsonID(id), nil)
	assert.Equal(t, http.StatusOK, got.Code)
}

// A non-numeric id can never name a job, so it reads as not-found
// rather than a parse error.
func TestJobNonNumericIDIsNotFound(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	assert.Equal(t, http.StatusNotFound, env.sendJSON(t, http.MethodGet, "/api/jobs/abc", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.sendJSON(t, http.MethodDelete, "/api/jobs/abc", nil).Code)
}

func TestJobUpdate_ReplaceFile(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.sendForm(t, http.MethodPost, "/api/jobs", "",
		url.Values{"title": {"Pharmacist"}},
		[]filePart{{field: "file", filename: "v1.pdf", content: []byte("v1")}})
	require.Equal(t, http.StatusCreated, rec.Code)
	job := decodeMap(t, rec)["job"].(map[string]any)
	oldFile := job["file"].(string)

	rec = env.sendForm(t, http.MethodPut, "/api/jobs/"+jsonID(job["id"].(float64)), "",
		nil, []filePart{{field: "file", filename: "v2.pdf", content: []byte("v2")}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decodeMap(t, rec)["job"].(map[string]any)
	assert.Equal(t, "Pharmacist", updated["title"])
	assert.False(t, env.store.Exists(oldFile))
	assert.True(t, env.store.Exists(updated["file"].(string)))
}
