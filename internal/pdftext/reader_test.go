package pdftext

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/obras-dev/presupuestos/internal/common"
)

type fakePDF struct {
	pages []string
	fail  map[int]error
}

func (f *fakePDF) NumPages() int { return len(f.pages) }

func (f *fakePDF) PageText(page int) (string, error) {
	if err, ok := f.fail[page]; ok {
		return "", err
	}
	return f.pages[page-1], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestExtractRange(t *testing.T) {
	doc := &fakePDF{pages: []string{"uno", "dos", "tres", "cuatro"}}

	tests := []struct {
		name     string
		r        common.PageRange
		wantText string
		wantRead int
	}{
		{"whole document", common.PageRange{First: 1, Last: 0}, "uno\ndos\ntres\ncuatro", 4},
		{"window", common.PageRange{First: 2, Last: 3}, "dos\ntres", 2},
		{"end clamped", common.PageRange{First: 3, Last: 99}, "tres\ncuatro", 2},
		{"start past end", common.PageRange{First: 9, Last: 0}, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, read := ExtractRange(doc, tt.r, nil, discardLogger())
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantRead, read)
		})
	}
}

func TestExtractRangeSkipsUnreadablePages(t *testing.T) {
	doc := &fakePDF{
		pages: []string{"uno", "dos", "tres"},
		fail:  map[int]error{2: errors.New("damaged stream")},
	}

	text, read := ExtractRange(doc, common.PageRange{First: 1, Last: 0}, nil, discardLogger())
	assert.Equal(t, "uno\ntres", text)
	assert.Equal(t, 2, read)
}

func TestExtractRangeSkipsEmptyPages(t *testing.T) {
	doc := &fakePDF{pages: []string{"uno", "", "tres"}}

	text, read := ExtractRange(doc, common.PageRange{First: 1, Last: 0}, nil, discardLogger())
	assert.Equal(t, "uno\ntres", text)
	// empty pages still count as read
	assert.Equal(t, 3, read)
}

func TestExtractRangeReportsProgress(t *testing.T) {
	doc := &fakePDF{pages: []string{"uno", "dos", "tres", "cuatro"}}

	var calls [][2]int
	progress := func(done, total int) { calls = append(calls, [2]int{done, total}) }

	ExtractRange(doc, common.PageRange{First: 2, Last: 4}, progress, discardLogger())
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, calls)
}
