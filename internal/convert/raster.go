package convert

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"
)

// Rasterizer turns a PDF into one image file per page, numbered from 1,
// written into destDir. The returned paths are in page order.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfPath, destDir string, dpi int) ([]string, error)
}

// FitzRasterizer renders pages through MuPDF (go-fitz).
type FitzRasterizer struct {
	Logger *slog.Logger
}

func (r *FitzRasterizer) Rasterize(ctx context.Context, pdfPath, destDir string, dpi int) ([]string, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrRasterization, pdfPath, err)
	}
	defer doc.Close()

	total := doc.NumPage()
	if total == 0 {
		return nil, fmt.Errorf("%w: %s has no pages", ErrRasterization, pdfPath)
	}

	paths := make([]string, 0, total)
	for page := 0; page < total; page++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		img, err := doc.ImageDPI(page, float64(dpi))
		if err != nil {
			return nil, fmt.Errorf("%w: rendering page %d: %v", ErrRasterization, page+1, err)
		}
		out := filepath.Join(destDir, fmt.Sprintf("%d.png", page+1))
		if err := writePNG(out, img); err != nil {
			return nil, fmt.Errorf("%w: encoding page %d: %v", ErrRasterization, page+1, err)
		}
		if r.Logger != nil {
			r.Logger.Debug("rasterized page", "page", page+1, "path", out)
		}
		paths = append(paths, out)
	}
	return paths, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
