package model

import "time"

// ContentType classifies how file content is surfaced to the caller.
type ContentType string

const (
	ContentText   ContentType = "text"
	ContentBinary ContentType = "binary"
)

// TimestampFormat is the wire format for modification times (UTC, ISO 8601).
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in the wire format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// FileMetadata describes a single file discovered during enumeration.
// Produced transiently per call; never persisted.
type FileMetadata struct {
	Name         string `json:"name"`
	Path         string `json:"path"`
	RelativePath string `json:"relative_path"`
	Size         int64  `json:"size"`
	Modified     string `json:"modified"`
	Extension    string `json:"extension"`
}

// DirListing is the enumeration result for one allowed directory.
// A root that fails to enumerate records its error here instead of
// aborting the remaining roots.
type DirListing struct {
	Directory  string         `json:"directory"`
	Files      []FileMetadata `json:"files"`
	TotalFiles int            `json:"total_files"`
	Error      string         `json:"error,omitempty"`
}

// ListResult is the complete output of a list operation.
type ListResult struct {
	AllowedDirectories []string     `json:"allowed_directories"`
	Directories        []DirListing `json:"directories"`
	TotalDirectories   int          `json:"total_directories"`
}

// ReadResult is the complete output of a read operation. Content holds
// the decoded text for ContentText, or base64 for ContentBinary.
type ReadResult struct {
	FilePath    string      `json:"file_path"`
	Name        string      `json:"name"`
	Size        int64       `json:"size"`
	Modified    string      `json:"modified"`
	Extension   string      `json:"extension"`
	ContentType ContentType `json:"content_type"`
	Content     string      `json:"content"`
}

// ConfigSnapshot is the active configuration as reported by the
// config-introspection operation. Read-only, verbatim.
type ConfigSnapshot struct {
	AllowedDirectories []string `json:"allowed_directories"`
	MaxFileSize        int64    `json:"max_file_size"`
	AllowedExtensions  []string `json:"allowed_extensions"`
	Status             string   `json:"status"`
}

// StatusConfigured and StatusNotConfigured are the ConfigSnapshot states.
const (
	StatusConfigured    = "configured"
	StatusNotConfigured = "not_configured"
)
