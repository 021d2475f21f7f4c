package convert

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// workArea is the scratch directory owned by a single conversion. Every
// intermediate artifact (rendered PDF, intermediate PPTX, rasterized pages)
// lives beneath it, and Release tears the whole tree down on every exit
// path of Run unless the caller asked to keep it.
type workArea struct {
	dir  string
	keep bool
	log  *slog.Logger
}

// newWorkArea creates a uniquely named directory under root (or the OS
// temp dir when root is empty). A caller-supplied root is treated as a
// parent, never used verbatim, so concurrent conversions sharing a root
// cannot collide.
func newWorkArea(root string, keep bool, log *slog.Logger) (*workArea, error) {
	if root != "" {
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, fmt.Errorf("creating temp root %s: %w", root, err)
		}
	}
	dir, err := os.MkdirTemp(root, "ppt2img-")
	if err != nil {
		return nil, fmt.Errorf("creating work area: %w", err)
	}
	return &workArea{dir: dir, keep: keep, log: log}, nil
}

func (w *workArea) path(name string) string {
	return filepath.Join(w.dir, name)
}

// release is best-effort: a failed delete is logged, never surfaced, since
// the conversion itself may already have succeeded.
func (w *workArea) release() {
	if w.keep {
		w.log.Info("keeping work area", "dir", w.dir)
		return
	}
	if err := os.RemoveAll(w.dir); err != nil {
		w.log.Warn("work area cleanup failed", "dir", w.dir, "error", err)
	}
}
