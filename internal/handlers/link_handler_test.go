package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkCreate_RequiresTitleAndURL(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.sendForm(t, http.MethodPost, "/api/links", "",
		url.Values{"title": {"Ministry"}}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLinkUpdate_EmptyImageURLClearsSlot(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.sendForm(t, http.MethodPost, "/api/links", "",
		url.Values{"title": {"Ministry"}, "url": {"https://moph.go.th"}},
		[]filePart{{field: "image", filename: "logo.png", content: []byte("png")}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	link := decodeMap(t, rec)["link"].(map[string]any)
	image := link["image"].(string)
	require.True(t, env.store.Exists(image))

	rec = env.sendForm(t, http.MethodPut, "/api/links/"+link["id"].(string), "",
		url.Values{"imageUrl": {""}}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decodeMap(t, rec)["link"].(map[string]any)
	assert.Equal(t, "", updated["image"])
	assert.False(t, env.store.Exists(image))
}

func TestLinkUpdate_ExternalImageURLReleasesStoredFile(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.sendForm(t, http.MethodPost, "/api/links", "",
		url.Values{"title": {"Hospital"}, "url": {"https://example.org"}},
		[]filePart{{field: "image", filename: "old.png", content: []byte("old")}})
	require.Equal(t, http.StatusCreated, rec.Code)
	link := decodeMap(t, rec)["link"].(map[string]any)
	stored := link["image"].(string)

	rec = env.sendForm(t, http.MethodPut, "/api/links/"+link["id"].(string), "",
		url.Values{"imageUrl": {"https://cdn.example.org/logo.png"}}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decodeMap(t, rec)["link"].(map[string]any)
	assert.Equal(t, "https://cdn.example.org/logo.png", updated["image"])
	assert.False(t, env.store.Exists(stored))
}
