package storage

import (
	"mime/multipart"
)

// Resource kinds with a managed subdirectory under the upload root.
// Remove refuses paths outside these, so attacker-controlled strings can
// never reach arbitrary filesystem locations.
var Kinds = []string{
	"activities",
	"downloads",
	"staff",
	"news",
	"procurement",
	"ita",
	"jobs",
	"links",
	"donate",
}

// FileStore manages uploaded binary attachments under a public path
// scheme (/uploads/<kind>/<generated-name>).
type FileStore interface {
	// Save writes the uploaded file under the kind's subdirectory and
	// returns its public path.
	Save(kind string, file *multipart.FileHeader) (string, error)

	// Remove deletes the file behind a public path. Missing files and
	// external URLs are not errors; removal is idempotent.
	Remove(publicPath string) error

	// Exists reports whether a public path maps to a file on disk.
	Exists(publicPath string) bool
}

// Config holds file store configuration.
type Config struct {
	BasePath string // local directory backing /uploads
}
