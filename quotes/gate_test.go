package quotes

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

type memFile struct {
	name        string
	size        int64
	contentType string
	content     []byte
	openErr     error
}

func (f *memFile) Name() string        { return f.name }
func (f *memFile) ContentType() string { return f.contentType }

func (f *memFile) Size() int64 {
	if f.size != 0 {
		return f.size
	}
	return int64(len(f.content))
}

func (f *memFile) Open() (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return io.NopCloser(bytes.NewReader(f.content)), nil
}

func TestFileGateCheck(t *testing.T) {
	gate := NewFileGate(10)

	tests := []struct {
		name        string
		filename    string
		size        int64
		contentType string
		wantReason  string
	}{
		{"jpeg accepted", "site.jpg", 1024, "image/jpeg", ""},
		{"png accepted", "plan.png", 1024, "image/png", ""},
		{"pdf accepted", "drawings.pdf", 1024, "application/pdf", ""},
		{"plain text accepted", "notes.txt", 512, "text/plain", ""},
		{"csv accepted", "measurements.csv", 512, "text/csv", ""},
		{"dwg accepted despite vendor mime", "shroud.dwg", 2048, "application/acad", ""},
		{"dxf accepted with no mime", "shroud.dxf", 2048, "", ""},
		{"uppercase extension accepted", "SHROUD.DWG", 2048, "", ""},
		{"exactly at the cap accepted", "big.pdf", 10 << 20, "application/pdf", ""},
		{"one byte over the cap rejected", "huge.pdf", 10<<20 + 1, "application/pdf", "file too large (max 10 MB)"},
		{"zip rejected", "archive.zip", 1024, "application/zip", "unsupported file type"},
		{"executable rejected", "setup.exe", 1024, "application/octet-stream", "unsupported file type"},
		{"video rejected", "walkthrough.mp4", 1024, "video/mp4", "unsupported file type"},
		{"oversized dwg rejected on size first", "huge.dwg", 11 << 20, "", "file too large (max 10 MB)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gate.Check(tt.filename, tt.size, tt.contentType)
			assert.Equal(t, tt.wantReason, got)
		})
	}
}

func TestFileGatePartitionPreservesOrder(t *testing.T) {
	gate := NewFileGate(10)

	files := []File{
		&memFile{name: "a.jpg", contentType: "image/jpeg", content: []byte("a")},
		&memFile{name: "b.zip", contentType: "application/zip", content: []byte("b")},
		&memFile{name: "c.pdf", contentType: "application/pdf", content: []byte("c")},
		&memFile{name: "d.mp4", contentType: "video/mp4", content: []byte("d")},
		&memFile{name: "e.dwg", content: []byte("e")},
	}

	accepted, rejected := gate.Partition(files)

	acceptedNames := make([]string, 0, len(accepted))
	for _, f := range accepted {
		acceptedNames = append(acceptedNames, f.Name())
	}
	assert.Equal(t, []string{"a.jpg", "c.pdf", "e.dwg"}, acceptedNames)

	assert.Equal(t, []RejectedFile{
		{Filename: "b.zip", Reason: "unsupported file type"},
		{Filename: "d.mp4", Reason: "unsupported file type"},
	}, rejected)
}

func TestFileGateDefaultCap(t *testing.T) {
	gate := NewFileGate(0)

	assert.Empty(t, gate.Check("ok.pdf", DefaultMaxAttachmentSize, "application/pdf"))
	assert.NotEmpty(t, gate.Check("big.pdf", DefaultMaxAttachmentSize+1, "application/pdf"))
}
