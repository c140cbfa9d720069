// Package pdftext extracts plain text from PDF judgments.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"

	"judgebrief/internal/domain"
)

// Extractor implements port.TextExtractor over ledongthuc/pdf.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the plain text of every page joined with "\n". Pages
// that fail to decode or carry no text layer contribute an empty string.
// A document that cannot be opened returns domain.ErrTextExtraction.
func (e *Extractor) ExtractText(ctx context.Context, data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty document", domain.ErrTextExtraction)
	}

	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: %v", domain.ErrTextExtraction, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTextExtraction, err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		pages = append(pages, pageText(reader.Page(i), i))
	}
	return strings.Join(pages, "\n"), nil
}

func pageText(page pdf.Page, num int) string {
	if page.V.IsNull() {
		return ""
	}
	fonts := make(map[string]*pdf.Font)
	for _, name := range page.Fonts() {
		f := page.Font(name)
		fonts[name] = &f
	}
	text, err := page.GetPlainText(fonts)
	if err != nil {
		log.Printf("pdftext.Extractor: page %d: %v", num, err)
		return ""
	}
	return text
}
