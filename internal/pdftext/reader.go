// Package pdftext acquires plain text from PDF documents, page by page.
//
// It uses ledongthuc/pdf (pure Go, no CGO) so the binary stays
// self-contained.
package pdftext

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/obras-dev/presupuestos/internal/common"
)

// Provider yields per-page text. Page numbers are 1-based.
type Provider interface {
	NumPages() int
	PageText(page int) (string, error)
}

// ProgressFunc is invoked after each page in a range is visited.
// done counts visited pages, total is the window size.
type ProgressFunc func(done, total int)

// Document is a Provider backed by a PDF file on disk.
type Document struct {
	path   string
	file   *os.File
	reader *pdf.Reader
}

// Open maps a PDF file into a Document. The caller owns Close.
func Open(path string) (*Document, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, common.WrapError(err, fmt.Sprintf("open pdf %q", path))
	}
	return &Document{path: path, file: f, reader: r}, nil
}

func (d *Document) Close() error { return d.file.Close() }

func (d *Document) NumPages() int { return d.reader.NumPage() }

// PageText returns the plain text of one page. Pages without readable
// content yield an empty string.
func (d *Document) PageText(page int) (string, error) {
	p := d.reader.Page(page)
	if p.V.IsNull() {
		return "", nil
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return "", common.WrapError(err, fmt.Sprintf("page %d of %q", page, d.path))
	}
	return text, nil
}

// ExtractRange reads the resolved page window from p and joins the page
// texts with newlines. Unreadable pages are logged and skipped; a window
// entirely past the end of the document yields an empty string. Returns
// the joined text and the number of pages read.
func ExtractRange(p Provider, r common.PageRange, progress ProgressFunc, logger *slog.Logger) (string, int) {
	if logger == nil {
		logger = slog.Default()
	}
	total := p.NumPages()
	first, last := r.Resolve(total)
	if first > last {
		return "", 0
	}

	var b strings.Builder
	read := 0
	for page := first; page <= last; page++ {
		text, err := p.PageText(page)
		if err != nil {
			logger.Warn("pdftext.page.unreadable", "page", page, "error", err)
		} else {
			read++
			if text != "" {
				if b.Len() > 0 {
					b.WriteString("\n")
				}
				b.WriteString(text)
			}
		}
		if progress != nil {
			progress(page-first+1, last-first+1)
		}
	}
	return b.String(), read
}
