package model

import "time"

// FileStatus is the review state of an uploaded file.
type FileStatus string

const (
	FileStatusPending  FileStatus = "PENDING"
	FileStatusApproved FileStatus = "APPROVED"
	FileStatusRejected FileStatus = "REJECTED"
	FileStatusArchived FileStatus = "ARCHIVED"
)

// Valid reports whether s is one of the known statuses.
func (s FileStatus) Valid() bool {
	switch s {
	case FileStatusPending, FileStatusApproved, FileStatusRejected, FileStatusArchived:
		return true
	}
	return false
}

// FileUpload mirrors the `file_uploads` table.
type FileUpload struct {
	ID             uint64     `json:"id"`
	FileName       string     `json:"file_name"`
	UniqueFileName string     `json:"unique_file_name"`
	FileType       string     `json:"file_type,omitempty"`
	FileSize       int64      `json:"file_size"`
	FileData       []byte     `json:"-"`
	Description    string     `json:"description,omitempty"`
	Category       string     `json:"category,omitempty"`
	Status         FileStatus `json:"status"`
	UploadedBy     string     `json:"uploaded_by,omitempty"`
	ETag           string     `json:"etag,omitempty"`
	Metadata       Metadata   `json:"metadata,omitempty"`
	Transcription  string     `json:"transcription,omitempty"`
	Translation    string     `json:"translation,omitempty"`
	Active         bool       `json:"active"`
	UploadDate     time.Time  `json:"upload_date"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
