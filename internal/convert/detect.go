package convert

import (
	"fmt"
	"path/filepath"
	"strings"
)

type fileType int

const (
	typeUnknown fileType = iota
	typePPT
	typePPTX
	typePDF
)

// pptFamily covers the inputs that need an office render before
// rasterization and that may carry speaker notes.
func (t fileType) pptFamily() bool {
	return t == typePPT || t == typePPTX
}

// detectType classifies an input path by extension. It never touches the
// filesystem.
func detectType(path string) (fileType, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppt":
		return typePPT, nil
	case ".pptx":
		return typePPTX, nil
	case ".pdf":
		return typePDF, nil
	}
	return typeUnknown, fmt.Errorf("%w: %q (supported: .ppt, .pptx, .pdf)", ErrUnsupportedFormat, filepath.Ext(path))
}
