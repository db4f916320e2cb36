// Package storage provides a filesystem abstraction used to archive
// completed meal plan documents.
//
// Two drivers are available out of the box:
//   - "local"  — local filesystem (default)
//   - "s3"     — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Quick start:
//
//	// boot once (e.g. in internal/server/server.go):
//	storage.Connect()
//
//	// default disk
//	storage.Put("plans/ref.md", data)
//	data, _ := storage.Get("plans/ref.md")
//	url  := storage.URL("plans/ref.md")
//
//	// named disk
//	storage.Use("s3").Put("plans/ref.md", data)
package storage

// Disk is the filesystem driver interface. Every driver must implement this.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// Exists reports whether a file exists at path.
	Exists(path string) bool

	// Delete removes a file. Returns nil if the file did not exist.
	Delete(path string) error

	// URL returns the public URL for path (meaningful for public disks / S3).
	URL(path string) string

	// Files lists non-recursive filenames directly inside directory.
	Files(directory string) ([]string, error)
}
