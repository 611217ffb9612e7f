package attachments

import (
	"context"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records Save/Remove calls without touching the filesystem.
type fakeStore struct {
	saves   int
	removed []string
	failAll bool
}

func (f *fakeStore) Save(kind string, file *multipart.FileHeader) (string, error) {
	if f.failAll {
		return "", fmt.Errorf("disk full")
	}
	f.saves++
	return fmt.Sprintf("/uploads/%s/saved-%d%s", kind, f.saves, ext(file.Filename)), nil
}

func (f *fakeStore) Remove(publicPath string) error {
	f.removed = append(f.removed, publicPath)
	return nil
}

func (f *fakeStore) Exists(publicPath string) bool { return false }

func ext(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[i:]
		}
	}
	return ""
}

func strPtr(s string) *string { return &s }

func TestReconcileSingle_UploadSupersedesOld(t *testing.T) {
	t.Parallel()

	b := NewBinder(&fakeStore{})
	value, release, err := b.ReconcileSingle("/uploads/news/old.pdf", SlotRequest{
		Upload: &multipart.FileHeader{Filename: "new.pdf"},
		URL:    strPtr("https://example.com/ignored.pdf"),
	}, "news")
	require.NoError(t, err)

	assert.Equal(t, "/uploads/news/saved-1.pdf", value)
	assert.Equal(t, []string{"/uploads/news/old.pdf"}, release)
}

func TestReconcileSingle_URLAdoptedVerbatim(t *testing.T) {
	t.Parallel()

	b := NewBinder(&fakeStore{})
	value, release, err := b.ReconcileSingle("/uploads/news/old.pdf", SlotRequest{
		URL: strPtr("https://example.com/doc.pdf"),
	}, "news")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/doc.pdf", value)
	assert.Equal(t, []string{"/uploads/news/old.pdf"}, release)
}

func TestReconcileSingle_EmptyURLClearsSlot(t *testing.T) {
	t.Parallel()

	b := NewBinder(&fakeStore{})
	value, release, err := b.ReconcileSingle("/uploads/news/old.pdf", SlotRequest{
		URL: strPtr(""),
	}, "news")
	require.NoError(t, err)

	assert.Equal(t, "", value)
	assert.Equal(t, []string{"/uploads/news/old.pdf"}, release)
}

func TestReconcileSingle_AbsentRequestKeepsOld(t *testing.T) {
	t.Parallel()

	b := NewBinder(&fakeStore{})
	value, release, err := b.ReconcileSingle("/uploads/news/old.pdf", SlotRequest{}, "news")
	require.NoError(t, err)

	assert.Equal(t, "/uploads/news/old.pdf", value)
	assert.Empty(t, release)
}

func TestReconcileSingle_UnchangedURLReleasesNothing(t *testing.T) {
	t.Parallel()

	b := NewBinder(&fakeStore{})
	value, release, err := b.ReconcileSingle("https://example.com/doc.pdf", SlotRequest{
		URL: strPtr("https://example.com/doc.pdf"),
	}, "news")
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/doc.pdf", value)
	assert.Empty(t, release)
}

func TestReconcileSingle_SaveFailurePropagates(t *testing.T) {
	t.Parallel()

	b := NewBinder(&fakeStore{failAll: true})
	_, _, err := b.ReconcileSingle("", SlotRequest{
		Upload: &multipart.FileHeader{Filename: "new.pdf"},
	}, "news")
	assert.Error(t, err)
}

func TestReconcileList_RemovedThenAppended(t *testing.T) {
	t.Parallel()

	b := NewBinder(&fakeStore{})
	old := []string{"/uploads/procurement/a.pdf", "/uploads/procurement/b.pdf"}

	result, release, err := b.ReconcileList(old,
		[]*multipart.FileHeader{{Filename: "c.pdf"}},
		nil,
		[]string{"/uploads/procurement/a.pdf"},
		"procurement",
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"/uploads/procurement/b.pdf", "/uploads/procurement/saved-1.pdf"}, result)
	assert.Equal(t, []string{"/uploads/procurement/a.pdf"}, release)
}

func TestReconcileList_AppendsURLsAfterUploads(t *testing.T) {
	t.Parallel()

	b := NewBinder(&fakeStore{})
	result, release, err := b.ReconcileList(
		[]string{"/uploads/news/one.jpg"},
		[]*multipart.FileHeader{{Filename: "two.jpg"}},
		[]string{"https://example.com/three.jpg"},
		nil,
		"news",
	)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/uploads/news/one.jpg",
		"/uploads/news/saved-1.jpg",
		"https://example.com/three.jpg",
	}, result)
	assert.Empty(t, release)
}

func TestRelease_SkipsEmptyPaths(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	b := NewBinder(store)
	b.Release(context.Background(), []string{"", "/uploads/news/a.jpg", ""})

	assert.Equal(t, []string{"/uploads/news/a.jpg"}, store.removed)
}

func TestBuildItems_FlatFields(t *testing.T) {
	t.Parallel()

	b := NewBinder(&fakeStore{})
	form := &multipart.Form{
		Value: map[string][]string{
			"items[1][text]": {"B"},
			"items[0][text]": {"A"},
			"items[0][url]":  {"https://example.com/a.pdf"},
			"bogus[0]{text}": {"ignored"},
		},
	}

	items, err := b.BuildItems(form, "ita")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Text)
	assert.Equal(t, "https://example.com/a.pdf", items[0].URL)
	assert.Equal(t, "B", items[1].Text)
	assert.Equal(t, "", items[1].URL)
}

func TestBuildItems_FileOverridesURL(t *testing.T) {
	t.Parallel()

	b := NewBinder(&fakeStore{})
	form := &multipart.Form{
		Value: map[string][]string{
			"items[0][text]": {"A"},
			"items[0][url]":  {"https://example.com/stale.pdf"},
		},
		File: map[string][]*multipart.FileHeader{
			"items[0][file]": {{Filename: "fresh.pdf"}},
		},
	}

	items, err := b.BuildItems(form, "ita")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "/uploads/ita/saved-1.pdf", items[0].URL)
}

func TestBuildItems_StructuredJSON(t *testing.T) {
	t.Parallel()

	b := NewBinder(&fakeStore{})
	form := &multipart.Form{
		Value: map[string][]string{
			"items": {`[{"text":"A"},{"text":"B","url":"https://example.com/b.pdf"}]`},
		},
	}

	items, err := b.BuildItems(form, "ita")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "", items[0].URL)
	assert.Equal(t, "https://example.com/b.pdf", items[1].URL)
}

func TestBuildItems_DropsEmptyText(t *testing.T) {
	t.Parallel()

	b := NewBinder(&fakeStore{})
	form := &multipart.Form{
		Value: map[string][]string{
			"items[0][text]": {""},
			"items[0][url]":  {"https://example.com/a.pdf"},
			"items[1][text]": {"kept"},
		},
	}

	items, err := b.BuildItems(form, "ita")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "kept", items[0].Text)
}
