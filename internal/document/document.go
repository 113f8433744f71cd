// Package document turns page-oriented documents into a single lowercase text blob.
package document

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Pages is an opened document able to yield page text in order.
type Pages interface {
	NumPage() int
	Text(page int) (string, error)
	Close() error
}

// Source opens a document. Every successfully opened Pages is closed by the extractor.
type Source interface {
	Name() string
	Open(ctx context.Context) (Pages, error)
}

// DocumentReadError reports a document that could not be opened or read.
// Page is the zero-based page that failed, or -1 when the failure is not page specific.
type DocumentReadError struct {
	Path string
	Page int
	Err  error
}

func (e *DocumentReadError) Error() string {
	if e.Page >= 0 {
		return fmt.Sprintf("reading document %q page %d: %v", e.Path, e.Page+1, e.Err)
	}
	return fmt.Sprintf("reading document %q: %v", e.Path, e.Err)
}

func (e *DocumentReadError) Unwrap() error {
	return e.Err
}

// Document is the ordered page text of a résumé.
type Document struct {
	Name  string
	Pages []string
}

// Text concatenates the pages in order and lowercases the result.
func (d *Document) Text() string {
	return strings.ToLower(strings.Join(d.Pages, ""))
}

// Extractor reads documents from a Source.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates an Extractor. A nil logger disables logging.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Read opens src and collects the text of every page. Either all pages are
// returned or an error of type *DocumentReadError.
func (e *Extractor) Read(ctx context.Context, src Source) (*Document, error) {
	name := src.Name()

	if err := ctx.Err(); err != nil {
		return nil, &DocumentReadError{Path: name, Page: -1, Err: err}
	}

	pages, err := src.Open(ctx)
	if err != nil {
		return nil, &DocumentReadError{Path: name, Page: -1, Err: err}
	}
	defer func() {
		if closeErr := pages.Close(); closeErr != nil {
			e.logger.Warn("closing document", zap.String("document", name), zap.Error(closeErr))
		}
	}()

	count := pages.NumPage()
	texts := make([]string, 0, count)

	for page := 0; page < count; page++ {
		if err := ctx.Err(); err != nil {
			return nil, &DocumentReadError{Path: name, Page: page, Err: err}
		}

		text, err := pages.Text(page)
		if err != nil {
			return nil, &DocumentReadError{Path: name, Page: page, Err: err}
		}

		texts = append(texts, text)
	}

	e.logger.Debug("document read", zap.String("document", name), zap.Int("pages", count))

	return &Document{Name: name, Pages: texts}, nil
}

// Extract reads src and returns its normalized text.
func (e *Extractor) Extract(ctx context.Context, src Source) (string, error) {
	doc, err := e.Read(ctx, src)
	if err != nil {
		return "", err
	}

	return doc.Text(), nil
}
