// Package convert turns PPT/PPTX/PDF documents into page image sequences.
//
// The pipeline is strictly linear: detect the input format, render
// PPT-family inputs to PDF through LibreOffice, rasterize the PDF one image
// per page, optionally pull speaker notes from the original document, and
// package the pages as files and/or Base64 strings. All intermediates live
// in a per-call work area that is torn down on every exit path.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// Run performs a single conversion. Each call is self-contained; concurrent
// calls are safe since every conversion owns its work area.
func Run(ctx context.Context, inputPath string, cfg Config) (*Result, error) {
	if cfg.Format == "" {
		cfg.Format = FormatFile
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Renderer == nil {
		cfg.Renderer = &SofficeRenderer{Logger: cfg.Logger}
	}
	if cfg.Rasterizer == nil {
		cfg.Rasterizer = &FitzRasterizer{Logger: cfg.Logger}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(inputPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, inputPath)
	}
	// Classify before creating the work area so an unsupported input
	// leaves nothing behind.
	ft, err := detectType(inputPath)
	if err != nil {
		return nil, err
	}

	work, err := newWorkArea(cfg.TempDir, cfg.KeepTemp, cfg.Logger)
	if err != nil {
		return nil, err
	}
	defer work.release()

	pdfPath := inputPath
	if ft.pptFamily() {
		cfg.Logger.Info("rendering to pdf", "input", inputPath)
		pdfPath, err = cfg.Renderer.ToPDF(ctx, inputPath, work.dir)
		if err != nil {
			return nil, err
		}
	}

	pagesDir := work.path("pages")
	if err := os.MkdirAll(pagesDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating pages dir: %w", err)
	}
	cfg.Logger.Info("rasterizing", "pdf", pdfPath, "dpi", cfg.DPI)
	pages, err := cfg.Rasterizer.Rasterize(ctx, pdfPath, pagesDir, cfg.DPI)
	if err != nil {
		return nil, err
	}

	var texts *[]string
	if cfg.ExtractNotes {
		t, err := collectNotes(ctx, inputPath, ft, len(pages), cfg, work)
		if err != nil {
			return nil, err
		}
		texts = &t
	}

	res, err := assemble(pages, cfg)
	if err != nil {
		return nil, err
	}
	res.Texts = texts
	if cfg.KeepTemp {
		res.WorkDir = work.dir
	}
	cfg.Logger.Info("conversion done", "pages", res.Count, "format", res.Format)
	return res, nil
}

// collectNotes reads speaker notes from the original document. A PDF input
// has no notes stream, so it yields a present, empty sequence rather than
// an error. For PPT-family inputs the sequence is aligned to the rendered
// page count, "" standing in for noteless slides.
func collectNotes(ctx context.Context, inputPath string, ft fileType, pageCount int, cfg Config, work *workArea) ([]string, error) {
	if !ft.pptFamily() {
		return []string{}, nil
	}

	// Notes live in OOXML parts, so a legacy .ppt goes through an
	// intermediate .pptx first.
	pptxPath := inputPath
	if ft == typePPT {
		cfg.Logger.Info("converting legacy ppt for notes extraction", "input", inputPath)
		p, err := cfg.Renderer.ToPPTX(ctx, inputPath, work.dir)
		if err != nil {
			return nil, err
		}
		pptxPath = p
	}

	texts, err := extractNotes(pptxPath)
	if err != nil {
		return nil, err
	}
	for len(texts) < pageCount {
		texts = append(texts, "")
	}
	return texts[:pageCount], nil
}
