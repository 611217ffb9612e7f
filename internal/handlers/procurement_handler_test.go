package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createProcurement(t *testing.T, env *testEnv, fields url.Values, parts []filePart) map[string]any {
	t.Helper()
	rec := env.sendForm(t, http.MethodPost, "/api/procurement", "", fields, parts)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeMap(t, rec)["procurement"].(map[string]any)
}

func procurementFiles(record map[string]any) []string {
	raw, _ := record["files"].([]any)
	files := make([]string, 0, len(raw))
	for _, v := range raw {
		files = append(files, v.(string))
	}
	return files
}

func TestProcurementCreate_WithFiles(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	record := createProcurement(t, env,
		url.Values{"title": {"Medical supplies"}, "date": {"2026-08-01"}},
		[]filePart{
			{field: "files", filename: "a.pdf", content: []byte("a")},
			{field: "files", filename: "b.pdf", content: []byte("b")},
		})

	files := procurementFiles(record)
	require.Len(t, files, 2)
	for _, f := range files {
		assert.True(t, env.store.Exists(f), f)
	}
	assert.Equal(t, "2026-08-01", record["date"])
}

func TestProcurementCreate_DefaultsDateToToday(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	record := createProcurement(t, env, url.Values{"title": {"Undated notice"}}, nil)
	assert.Equal(t, time.Now().Format("2006-01-02"), record["date"])
}

// Removing one file while uploading another in the same update keeps
// survivors first, appends the new upload, and deletes the removed file
// from disk.
func TestProcurementUpdate_RemoveAndAppend(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	record := createProcurement(t, env, url.Values{"title": {"Office equipment"}},
		[]filePart{
			{field: "files", filename: "a.pdf", content: []byte("a")},
			{field: "files", filename: "b.pdf", content: []byte("b")},
		})
	files := procurementFiles(record)
	require.Len(t, files, 2)

	rec := env.sendForm(t, http.MethodPut, "/api/procurement/"+record["id"].(string), "",
		url.Values{"removedFiles": {files[0]}},
		[]filePart{{field: "files", filename: "c.pdf", content: []byte("c")}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decodeMap(t, rec)["procurement"].(map[string]any)
	newFiles := procurementFiles(updated)
	require.Len(t, newFiles, 2)
	assert.Equal(t, files[1], newFiles[0])
	assert.NotEqual(t, files[0], newFiles[1])

	assert.False(t, env.store.Exists(files[0]))
	assert.True(t, env.store.Exists(newFiles[1]))
}

// The removal subset also arrives as one JSON-encoded array string;
// that encoding must remove and delete just the same.
func TestProcurementUpdate_RemovedFilesJSONEncoding(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	record := createProcurement(t, env, url.Values{"title": {"Lab reagents"}},
		[]filePart{
			{field: "files", filename: "a.pdf", content: []byte("a")},
			{field: "files", filename: "b.pdf", content: []byte("b")},
		})
	files := procurementFiles(record)
	require.Len(t, files, 2)

	encoded, err := json.Marshal([]string{files[0]})
	require.NoError(t, err)

	rec := env.sendForm(t, http.MethodPut, "/api/procurement/"+record["id"].(string), "",
		url.Values{"removedFiles": {string(encoded)}}, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decodeMap(t, rec)["procurement"].(map[string]any)
	assert.Equal(t, []string{files[1]}, procurementFiles(updated))
	assert.False(t, env.store.Exists(files[0]))
	assert.True(t, env.store.Exists(files[1]))
}

func TestProcurementDelete_ReleasesAllFiles(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	record := createProcurement(t, env, url.Values{"title": {"Obsolete"}},
		[]filePart{{field: "files", filename: "a.pdf", content: []byte("a")}})
	files := procurementFiles(record)
	id := record["id"].(string)

	rec := env.sendJSON(t, http.MethodDelete, "/api/procurement/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, f := range files {
		assert.False(t, env.store.Exists(f))
	}
	assert.Equal(t, http.StatusNotFound, env.sendJSON(t, http.MethodGet, "/api/procurement/"+id, nil).Code)
	assert.Equal(t, http.StatusNotFound, env.sendJSON(t, http.MethodDelete, "/api/procurement/"+id, nil).Code)
}
