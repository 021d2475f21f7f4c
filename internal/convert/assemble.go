package convert

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// assemble packages the rasterized pages into the requested output shape.
// Pages land in the output directory as 1.png .. N.png for the file formats;
// Base64 strings carry the raw PNG bytes.
func assemble(pages []string, cfg Config) (*Result, error) {
	res := &Result{Count: len(pages), Format: cfg.Format}

	if cfg.Format.needsDir() {
		paths, err := writeImages(pages, cfg.OutputDir)
		if err != nil {
			return nil, err
		}
		res.Images = paths
	}
	if cfg.Format == FormatBase64 || cfg.Format == FormatBoth {
		encoded, err := encodeImages(pages)
		if err != nil {
			return nil, err
		}
		if cfg.Format == FormatBase64 {
			res.Images = encoded
		} else {
			res.ImagesBase64 = encoded
		}
	}
	return res, nil
}

func writeImages(pages []string, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating %s: %v", ErrOutputWrite, outDir, err)
	}
	paths := make([]string, 0, len(pages))
	for i, src := range pages {
		dst := filepath.Join(outDir, fmt.Sprintf("%d%s", i+1, filepath.Ext(src)))
		if err := copyFile(src, dst); err != nil {
			return nil, fmt.Errorf("%w: writing %s: %v", ErrOutputWrite, dst, err)
		}
		paths = append(paths, dst)
	}
	return paths, nil
}

func encodeImages(pages []string) ([]string, error) {
	encoded := make([]string, 0, len(pages))
	for i, p := range pages {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", i+1, err)
		}
		encoded = append(encoded, base64.StdEncoding.EncodeToString(data))
	}
	return encoded, nil
}

// copyFile copies across filesystems; the work area and the output
// directory are often on different mounts, so rename is not an option.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
