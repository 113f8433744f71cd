package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// ErrEmptyDocument is returned when a document has no content to open.
var ErrEmptyDocument = errors.New("document is empty")

type fileSource struct {
	path string
}

// File returns a Source reading the PDF at path with MuPDF.
func File(path string) Source {
	return &fileSource{path: path}
}

func (s *fileSource) Name() string { return s.path }

func (s *fileSource) Open(_ context.Context) (Pages, error) {
	path := strings.TrimSpace(s.path)
	if path == "" {
		return nil, errors.New("file path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if info.Size() == 0 {
		return nil, ErrEmptyDocument
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	return doc, nil
}

type memorySource struct {
	name string
	data []byte
}

// Memory returns a Source reading PDF bytes, e.g. an upload that was not stored yet.
func Memory(name string, data []byte) Source {
	return &memorySource{name: name, data: data}
}

func (s *memorySource) Name() string { return s.name }

func (s *memorySource) Open(_ context.Context) (Pages, error) {
	if len(s.data) == 0 {
		return nil, ErrEmptyDocument
	}

	doc, err := fitz.NewFromMemory(s.data)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	return doc, nil
}

// IsPDF reports whether path has a .pdf extension.
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
