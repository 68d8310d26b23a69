package quotes

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// DefaultMaxAttachmentSize is the per-file cap for quote attachments.
const DefaultMaxAttachmentSize = 10 << 20

var allowedMimePrefixes = []string{"image/", "application/pdf", "text/"}

// CAD drawings come with vendor MIME types (or none), so they are allowed
// by extension.
var allowedExtensions = map[string]bool{
	".dwg": true,
	".dxf": true,
}

// File is one candidate attachment. The pipeline reads candidates through
// this interface so tests can submit in-memory files.
type File interface {
	Name() string
	Size() int64
	ContentType() string
	Open() (io.ReadCloser, error)
}

type multipartFile struct {
	fh *multipart.FileHeader
}

// FromMultipart adapts an uploaded form file. The declared Content-Type is
// used when present, falling back to the filename extension.
func FromMultipart(fh *multipart.FileHeader) File {
	return &multipartFile{fh: fh}
}

func (f *multipartFile) Name() string { return f.fh.Filename }
func (f *multipartFile) Size() int64  { return f.fh.Size }

func (f *multipartFile) ContentType() string {
	if ct := f.fh.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return mime.TypeByExtension(strings.ToLower(filepath.Ext(f.fh.Filename)))
}

func (f *multipartFile) Open() (io.ReadCloser, error) { return f.fh.Open() }

// RejectedFile reports one candidate dropped by the gate, with a
// human-readable reason for the submitter.
type RejectedFile struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// FileGate applies the per-file acceptance rule: size within the cap, and a
// supported MIME prefix or CAD extension.
type FileGate struct {
	maxSize int64
}

func NewFileGate(maxSizeMB int) *FileGate {
	if maxSizeMB <= 0 {
		return &FileGate{maxSize: DefaultMaxAttachmentSize}
	}
	return &FileGate{maxSize: int64(maxSizeMB) << 20}
}

// Check returns the rejection reason for a candidate, or "" if accepted.
func (g *FileGate) Check(name string, size int64, contentType string) string {
	if size > g.maxSize {
		return fmt.Sprintf("file too large (max %d MB)", g.maxSize>>20)
	}

	ct := strings.ToLower(strings.TrimSpace(contentType))
	for _, prefix := range allowedMimePrefixes {
		if strings.HasPrefix(ct, prefix) {
			return ""
		}
	}
	if allowedExtensions[strings.ToLower(filepath.Ext(name))] {
		return ""
	}
	return "unsupported file type"
}

// Partition splits candidates into the upload set and the rejected set,
// preserving order. Only accepted files ever reach the uploader.
func (g *FileGate) Partition(files []File) (accepted []File, rejected []RejectedFile) {
	for _, f := range files {
		if reason := g.Check(f.Name(), f.Size(), f.ContentType()); reason != "" {
			rejected = append(rejected, RejectedFile{Filename: f.Name(), Reason: reason})
			continue
		}
		accepted = append(accepted, f)
	}
	return accepted, rejected
}
