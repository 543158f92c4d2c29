package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dslipak/pdf"

	"github.com/researchkit/researcherAPI/pkg/logger_i"
)

// TextExtractor maps a document byte stream to per-page texts. A corrupt
// input fails with an error; an unreadable page just yields no text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) ([]string, error)
}

type PDFExtractor struct {
	pageTimeout time.Duration
	logger      *logger_i.Logger
}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{
		pageTimeout: 10 * time.Second,
		logger:      logger_i.NewLogger("PDF Extractor"),
	}
}

func (e *PDFExtractor) Extract(ctx context.Context, data []byte) ([]string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.logger.Error("failed opening pdf stream", "error", err)
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []string
	numPages := reader.NumPage()
	e.logger.Debug("extracting pdf", "pages", numPages)
	for i := 1; i <= numPages; i++ {
		if ctx.Err() != nil {
			return pages, ctx.Err()
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := e.protectExtract(page)
		if err != nil {
			// Log and keep going; other pages may still be readable.
			e.logger.Error("error parsing page content", "page", i, "error", err)
			continue
		}
		pages = append(pages, content)
	}
	return pages, nil
}

// protectExtract guards GetPlainText with a timeout; malformed content
// streams can make it spin.
func (e *PDFExtractor) protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(e.pageTimeout):
		return "", errors.New("page extraction timeout")
	}
}
