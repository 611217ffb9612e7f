package handlers_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadImage_StoresUnderRequestedKind(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.sendForm(t, http.MethodPost, "/api/upload/image?type=activities", "",
		nil, []filePart{{field: "image", filename: "banner.png", content: []byte("png")}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	fileURL := decodeMap(t, rec)["fileUrl"].(string)
	assert.True(t, strings.HasPrefix(fileURL, "/uploads/activities/"))
	assert.True(t, env.store.Exists(fileURL))
}

func TestUploadImage_DefaultsToNewsKind(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.sendForm(t, http.MethodPost, "/api/upload/image", "",
		nil, []filePart{{field: "image", filename: "x.jpg", content: []byte("x")}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(decodeMap(t, rec)["fileUrl"].(string), "/uploads/news/"))
}

func TestUploadImage_RejectsUnknownKind(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.sendForm(t, http.MethodPost, "/api/upload/image?type=secrets", "",
		nil, []filePart{{field: "image", filename: "x.jpg", content: []byte("x")}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadImage_RequiresFile(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.sendForm(t, http.MethodPost, "/api/upload/image", "", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
