package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const publicPrefix = "/uploads/"

// LocalStore implements FileStore on the local filesystem.
type LocalStore struct {
	basePath string
}

// NewLocalStore creates the upload root and one subdirectory per known
// resource kind.
func NewLocalStore(cfg Config) (*LocalStore, error) {
	if cfg.BasePath == "" {
		cfg.BasePath = "./uploads"
	}

	for _, kind := range Kinds {
		if err := os.MkdirAll(filepath.Join(cfg.BasePath, kind), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory for %s: %w", kind, err)
		}
	}

	return &LocalStore{basePath: cfg.BasePath}, nil
}

// BasePath returns the local directory backing /uploads.
func (s *LocalStore) BasePath() string {
	return s.basePath
}

// Save stores the upload as <unix-ms>-<uuid><ext>, which makes name
// collisions practically impossible; existing files are never overwritten.
func (s *LocalStore) Save(kind string, file *multipart.FileHeader) (string, error) {
	if !knownKind(kind) {
		return "", fmt.Errorf("unknown resource kind: %s", kind)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := filepath.Ext(file.Filename)
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)

	dir := filepath.Join(s.basePath, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", err
	}

	return publicPrefix + kind + "/" + name, nil
}

func (s *LocalStore) Remove(publicPath string) error {
	full, ok := s.resolve(publicPath)
	if !ok {
		// External URL or a path outside the managed root; nothing to do.
		return nil
	}

	if _, err := os.Stat(full); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(full)
}

func (s *LocalStore) Exists(publicPath string) bool {
	full, ok := s.resolve(publicPath)
	if !ok {
		return false
	}
	_, err := os.Stat(full)
	return err == nil
}

// resolve maps a public path onto the local disk path, accepting only
// paths that lexically fall under /uploads/<known-kind>/.
func (s *LocalStore) resolve(publicPath string) (string, bool) {
	if !strings.HasPrefix(publicPath, publicPrefix) {
		return "", false
	}

	rel := strings.TrimPrefix(publicPath, publicPrefix)
	rel = filepath.Clean(rel)
	if strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", false
	}

	parts := strings.SplitN(filepath.ToSlash(rel), "/", 2)
	if len(parts) != 2 || !knownKind(parts[0]) {
		return "", false
	}

	return filepath.Join(s.basePath, rel), true
}

func knownKind(kind string) bool {
	for _, k := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}
