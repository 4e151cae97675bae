// pdftext dumps the linearized page text of a PDF, the same text the
// extraction pipeline matches against. Useful for tuning page windows
// and patterns before a full run.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/obras-dev/presupuestos/internal/common"
	"github.com/obras-dev/presupuestos/internal/pdftext"
)

func main() {
	first := flag.Int("first", 1, "first page (1-based)")
	last := flag.Int("last", 0, "last page (0 means document end)")
	out := flag.String("o", "", "output file (stdout when empty)")
	raw := flag.Bool("raw", false, "skip whitespace normalization")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if flag.NArg() != 1 {
		logger.Error("usage", "cmd", "pdftext [-first N] [-last N] [-o file] [-raw] <budget.pdf>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	doc, err := pdftext.Open(path)
	if err != nil {
		logger.Error("open pdf", "path", path, "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil {
			logger.Error("close pdf", "error", cerr)
		}
	}()

	start := time.Now()
	text, pages := pdftext.ExtractRange(doc, common.PageRange{First: *first, Last: *last}, nil, logger)
	if !*raw {
		text = pdftext.Normalize(text)
	}
	dur := time.Since(start)

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			logger.Error("create output", "path", *out, "error", err)
			os.Exit(1)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logger.Error("close output", "error", cerr)
			}
		}()
		w = f
	}
	if _, err := fmt.Fprintln(w, text); err != nil {
		logger.Error("write text", "error", err)
		os.Exit(1)
	}

	logger.Info("page text OK",
		"pages", pages,
		"bytes", len(text),
		"duration_ms", dur.Milliseconds(),
	)
}
