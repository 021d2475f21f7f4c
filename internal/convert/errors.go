package convert

import "errors"

// Every failure a conversion can surface wraps one of these sentinels, so
// callers can branch on the category with errors.Is.
var (
	ErrUnsupportedFormat = errors.New("unsupported input format")
	ErrInputNotFound     = errors.New("input file not found")
	ErrRenderFailure     = errors.New("office render failed")
	ErrRasterization     = errors.New("pdf rasterization failed")
	ErrNotesExtraction   = errors.New("notes extraction failed")
	ErrOutputWrite       = errors.New("output write failed")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// Kind names the error category for CLI and JSON reporting.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		return "UnsupportedFormatError"
	case errors.Is(err, ErrInputNotFound):
		return "InputNotFoundError"
	case errors.Is(err, ErrRenderFailure):
		return "RenderFailureError"
	case errors.Is(err, ErrRasterization):
		return "RasterizationError"
	case errors.Is(err, ErrNotesExtraction):
		return "NotesExtractionError"
	case errors.Is(err, ErrOutputWrite):
		return "OutputWriteError"
	case errors.Is(err, ErrInvalidConfig):
		return "InvalidConfigurationError"
	}
	return "ConversionError"
}
