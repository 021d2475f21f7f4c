package convert

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFitzRasterize(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "doc.pdf")
	writeMinimalPDF(t, pdfPath, 2)

	r := &FitzRasterizer{Logger: testLogger()}
	pages, err := r.Rasterize(context.Background(), pdfPath, dir, 72)
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}

	for i, p := range pages {
		if want := filepath.Join(dir, []string{"1.png", "2.png"}[i]); p != want {
			t.Errorf("page %d path = %s, want %s", i+1, p, want)
		}
		f, err := os.Open(p)
		if err != nil {
			t.Fatalf("opening page %d: %v", i+1, err)
		}
		img, err := png.Decode(f)
		f.Close()
		if err != nil {
			t.Fatalf("page %d is not a valid png: %v", i+1, err)
		}
		if img.Bounds().Dx() <= 0 || img.Bounds().Dy() <= 0 {
			t.Errorf("page %d has empty bounds", i+1)
		}
	}
}

func TestFitzRasterizeZeroPages(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "empty.pdf")
	writeMinimalPDF(t, pdfPath, 0)

	r := &FitzRasterizer{Logger: testLogger()}
	if _, err := r.Rasterize(context.Background(), pdfPath, dir, 72); !errors.Is(err, ErrRasterization) {
		t.Errorf("zero-page pdf = %v, want ErrRasterization", err)
	}
}

func TestFitzRasterizeUnreadable(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "bad.pdf")
	if err := os.WriteFile(pdfPath, []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := &FitzRasterizer{Logger: testLogger()}
	if _, err := r.Rasterize(context.Background(), pdfPath, dir, 72); !errors.Is(err, ErrRasterization) {
		t.Errorf("unreadable pdf = %v, want ErrRasterization", err)
	}
}

func TestFitzRasterizeCancelled(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "doc.pdf")
	writeMinimalPDF(t, pdfPath, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &FitzRasterizer{Logger: testLogger()}
	if _, err := r.Rasterize(ctx, pdfPath, dir, 72); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled rasterize = %v, want context.Canceled", err)
	}
}
