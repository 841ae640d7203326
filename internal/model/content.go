package model

import (
	"fmt"
	"time"
)

// Content is a stored document with fixed file metadata (name, size, hash,
// mime type, path) and editable descriptive metadata (description,
// category, tags, custom key/value pairs).
type Content struct {
	ID             uint64    `json:"id"`
	FileName       string    `json:"file_name"`
	FileSize       int64     `json:"file_size"`
	FileType       string    `json:"file_type"`
	FileHash       string    `json:"file_hash,omitempty"`
	OriginalPath   string    `json:"original_path,omitempty"`
	MimeType       string    `json:"mime_type,omitempty"`
	UploadUser     string    `json:"upload_user,omitempty"`
	CustomMetadata Metadata  `json:"custom_metadata,omitempty"`
	Description    string    `json:"description,omitempty"`
	Category       string    `json:"category,omitempty"`
	Tags           string    `json:"tags,omitempty"`
	FileData       []byte    `json:"-"`
	CreatedAt      time.Time `json:"creation_date"`
	UpdatedAt      time.Time `json:"last_modified"`
}

// FormattedFileSize renders the size with a binary unit, e.g. "1.5 KB".
func (c *Content) FormattedFileSize() string { return FormatSize(c.FileSize) }

// FormatSize renders n bytes as "512 B", "1.5 KB", "2.0 MB" and so on.
func FormatSize(n int64) string {
	if n < 1024 {
		if n < 0 {
			n = 0
		}
		return fmt.Sprintf("%d B", n)
	}
	const units = "KMGTPE"
	v := float64(n)
	i := -1
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %cB", v, units[i])
}
