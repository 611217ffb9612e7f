// Package attachments reconciles the attachment state carried by an
// incoming request (uploaded file parts, explicit URL fields, removal
// lists) against the attachments already stored on a record. It decides
// the new stored value(s) and which previously stored files to release.
package attachments

import (
	"context"
	"mime/multipart"

	"healthoffice_backend/internal/logger"
	"healthoffice_backend/internal/storage"
)

// Binder owns the FileStore used to persist uploads and release
// superseded files.
type Binder struct {
	store storage.FileStore
}

func NewBinder(store storage.FileStore) *Binder {
	return &Binder{store: store}
}

// SlotRequest is the request-side state of a single-attachment slot.
// URL is nil when the field was absent from the request; a present but
// empty URL clears the slot.
type SlotRequest struct {
	Upload *multipart.FileHeader
	URL    *string
}

// ReconcileSingle resolves a single-attachment slot:
//   - a new upload supersedes the old value, which is released;
//   - otherwise an explicit URL is adopted verbatim (never validated),
//     releasing the old value when it changes;
//   - otherwise the old value is kept unchanged.
//
// Returned release paths have not been deleted yet; callers release
// them after the record mutation persists.
func (b *Binder) ReconcileSingle(old string, req SlotRequest, kind string) (string, []string, error) {
	if req.Upload != nil {
		path, err := b.store.Save(kind, req.Upload)
		if err != nil {
			return "", nil, err
		}
		if old != "" {
			return path, []string{old}, nil
		}
		return path, nil, nil
	}

	if req.URL != nil {
		if *req.URL != old && old != "" {
			return *req.URL, []string{old}, nil
		}
		return *req.URL, nil, nil
	}

	return old, nil, nil
}

// ReconcileList resolves a multi-attachment slot: entries named in
// removed are dropped and scheduled for release, new uploads are stored
// and appended, then extra URLs are appended verbatim. Survivor order
// is preserved; nothing is deduplicated.
func (b *Binder) ReconcileList(old []string, uploads []*multipart.FileHeader, extraURLs, removed []string, kind string) ([]string, []string, error) {
	removedSet := make(map[string]bool, len(removed))
	for _, r := range removed {
		removedSet[r] = true
	}

	result := make([]string, 0, len(old)+len(uploads)+len(extraURLs))
	var release []string
	for _, p := range old {
		if removedSet[p] {
			release = append(release, p)
			continue
		}
		result = append(result, p)
	}

	for _, f := range uploads {
		path, err := b.store.Save(kind, f)
		if err != nil {
			return nil, nil, err
		}
		result = append(result, path)
	}

	result = append(result, extraURLs...)
	return result, release, nil
}

// Release deletes superseded files best-effort. Cleanup is advisory: a
// failure is logged and never aborts the surrounding record mutation.
func (b *Binder) Release(ctx context.Context, paths []string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := b.store.Remove(p); err != nil {
			logger.CtxWarn(ctx, "failed to release attachment", "path", p, "error", err)
		}
	}
}

// Store exposes the underlying FileStore for direct saves.
func (b *Binder) Store() storage.FileStore {
	return b.store
}
