package convert

import (
	"fmt"
	"log/slog"
)

// DefaultDPI is the rasterization resolution used when the caller does not
// pick one. Defaults live at the CLI boundary; Run itself rejects a
// non-positive DPI.
const DefaultDPI = 200

// Format selects how rendered pages are returned.
type Format string

const (
	FormatFile   Format = "file"
	FormatBase64 Format = "base64"
	FormatBoth   Format = "both"
)

func (f Format) valid() bool {
	switch f {
	case FormatFile, FormatBase64, FormatBoth:
		return true
	}
	return false
}

// needsDir reports whether the format writes image files and therefore
// requires an output directory.
func (f Format) needsDir() bool {
	return f == FormatFile || f == FormatBoth
}

// Config carries everything a single conversion needs. Renderer, Rasterizer
// and Logger are optional injection points; Run fills them with the
// LibreOffice and go-fitz implementations when nil.
type Config struct {
	OutputDir    string
	Format       Format
	DPI          int
	ExtractNotes bool
	TempDir      string
	KeepTemp     bool

	Renderer   OfficeRenderer
	Rasterizer Rasterizer
	Logger     *slog.Logger
}

func (c Config) validate() error {
	if !c.Format.valid() {
		return fmt.Errorf("%w: unknown format %q", ErrInvalidConfig, c.Format)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("%w: dpi must be a positive integer, got %d", ErrInvalidConfig, c.DPI)
	}
	if c.Format.needsDir() && c.OutputDir == "" {
		return fmt.Errorf("%w: output directory is required for format %q", ErrInvalidConfig, c.Format)
	}
	return nil
}

// Result is the outcome of one conversion. Images holds file paths for the
// "file" format and Base64 strings for "base64"; for "both" it holds paths
// and ImagesBase64 carries the encoded copies. Texts is nil when notes were
// not requested, so callers can tell "not requested" from "requested, all
// empty".
type Result struct {
	Images       []string  `json:"images"`
	ImagesBase64 []string  `json:"images_base64,omitempty"`
	Count        int       `json:"count"`
	Texts        *[]string `json:"texts,omitempty"`
	Format       Format    `json:"format"`
	WorkDir      string    `json:"work_dir,omitempty"`
}
