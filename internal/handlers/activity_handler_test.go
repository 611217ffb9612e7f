package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityLifecycle(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.sendForm(t, http.MethodPost, "/api/activities", "",
		url.Values{"title": {"Vaccination day"}},
		[]filePart{
			{field: "image", filename: "crowd.jpg", content: []byte("jpg")},
			{field: "pdf", filename: "summary.pdf", content: []byte("pdf")},
		})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	activity := decodeMap(t, rec)["activity"].(map[string]any)
	id := jsonID(activity["id"].(float64))
	image := activity["image"].(string)
	pdf := activity["pdf"].(string)
	assert.True(t, env.store.Exists(image))
	assert.True(t, env.store.Exists(pdf))

	require.Equal(t, http.StatusOK, env.sendJSON(t, http.MethodDelete, "/api/activities/"+id, nil).Code)
	assert.False(t, env.store.Exists(image))
	assert.False(t, env.store.Exists(pdf))
}

// Activities created without an image fall back to the site's stock
// card image; the placeholder is never a stored file, so a later
// replacement or delete leaves the filesystem alone.
func TestActivityCreate_DefaultImage(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.sendForm(t, http.MethodPost, "/api/activities", "",
		url.Values{"title": {"Blood drive"}}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	activity := decodeMap(t, rec)["activity"].(map[string]any)
	assert.Equal(t, "/images/default.png", activity["image"])

	id := jsonID(activity["id"].(float64))
	require.Equal(t, http.StatusOK, env.sendJSON(t, http.MethodDelete, "/api/activities/"+id, nil).Code)
}

func TestActivityUpdate_ReplaceImageKeepsPdf(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.sendForm(t, http.MethodPost, "/api/activities", "",
		url.Values{"title": {"Health fair"}},
		[]filePart{
			{field: "image", filename: "old.jpg", content: []byte("old")},
			{field: "pdf", filename: "program.pdf", content: []byte("pdf")},
		})
	require.Equal(t, http.StatusCreated, rec.Code)
	activity := decodeMap(t, rec)["activity"].(map[string]any)
	oldImage := activity["image"].(string)
	pdf := activity["pdf"].(string)

	rec = env.sendForm(t, http.MethodPut, "/api/activities/"+jsonID(activity["id"].(float64)), "",
		nil, []filePart{{field: "image", filename: "new.jpg", content: []byte("new")}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	updated := decodeMap(t, rec)["activity"].(map[string]any)
	assert.NotEqual(t, oldImage, updated["image"])
	assert.Equal(t, pdf, updated["pdf"])
	assert.False(t, env.store.Exists(oldImage))
	assert.True(t, env.store.Exists(updated["image"].(string)))
}
