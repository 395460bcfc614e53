package docx

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
)

// ContentType is the media type of a WordprocessingML package.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const (
	documentPart = "word/document.xml"

	// maxPartSize bounds the decompressed size of a single part.
	maxPartSize = 64 << 20
)

// IsDocx reports whether filename carries the .docx extension.
func IsDocx(filename string) bool {
	return strings.EqualFold(path.Ext(filename), ".docx")
}

type archive struct {
	parts map[string]*zip.File
}

func openArchive(data []byte) (*archive, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotDocx, err)
	}

	parts := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		parts[f.Name] = f
	}

	return &archive{parts: parts}, nil
}

func (a *archive) has(name string) bool {
	_, ok := a.parts[name]
	return ok
}

func (a *archive) read(name string) ([]byte, error) {
	f, ok := a.parts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrNotDocx, name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxPartSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrNotDocx, name, err)
	}
	if len(data) > maxPartSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrNotDocx, name, maxPartSize)
	}

	return data, nil
}
