package convert

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	rpdf "rsc.io/pdf"
)

// OfficeRenderer converts presentation documents through an office suite.
// ToPDF produces exactly one PDF in outDir; ToPPTX produces the modern
// OOXML form of a legacy .ppt so its notes parts can be read.
type OfficeRenderer interface {
	ToPDF(ctx context.Context, inputPath, outDir string) (string, error)
	ToPPTX(ctx context.Context, inputPath, outDir string) (string, error)
}

// SofficeRenderer shells out to LibreOffice in headless mode. The binary is
// resolved from PATH (soffice, then libreoffice) with a fallback to the
// macOS app bundle. A single failed invocation is fatal; there is no retry.
type SofficeRenderer struct {
	Bin    string // overrides binary resolution when set
	Logger *slog.Logger
}

func (r *SofficeRenderer) ToPDF(ctx context.Context, inputPath, outDir string) (string, error) {
	out, err := r.run(ctx, inputPath, outDir, "pdf")
	if err != nil {
		return "", err
	}
	if err := probePDF(out); err != nil {
		return "", fmt.Errorf("%w: rendered pdf is unreadable: %v", ErrRenderFailure, err)
	}
	return out, nil
}

func (r *SofficeRenderer) ToPPTX(ctx context.Context, inputPath, outDir string) (string, error) {
	return r.run(ctx, inputPath, outDir, "pptx")
}

func (r *SofficeRenderer) run(ctx context.Context, inputPath, outDir, target string) (string, error) {
	bin := r.Bin
	if bin == "" {
		b, err := lookupSoffice()
		if err != nil {
			return "", err
		}
		bin = b
	}

	cmd := exec.CommandContext(ctx, bin, "--headless", "--convert-to", target, "--outdir", outDir, inputPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w: %s --convert-to %s: %v: %s", ErrRenderFailure, bin, target, err, bytes.TrimSpace(out))
	}

	// LibreOffice names the output after the input stem and reports success
	// even for some failed conversions, so the file itself is the contract.
	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	produced := filepath.Join(outDir, stem+"."+target)
	if _, err := os.Stat(produced); err != nil {
		return "", fmt.Errorf("%w: no %s produced for %s", ErrRenderFailure, target, inputPath)
	}
	if r.Logger != nil {
		r.Logger.Debug("office conversion done", "input", inputPath, "output", produced)
	}
	return produced, nil
}

func lookupSoffice() (string, error) {
	for _, name := range []string{"soffice", "libreoffice"} {
		if p, err := exec.LookPath(name); err == nil {
			return p, nil
		}
	}
	const macSoffice = "/Applications/LibreOffice.app/Contents/MacOS/soffice"
	if _, err := os.Stat(macSoffice); err == nil {
		return macSoffice, nil
	}
	return "", fmt.Errorf("%w: LibreOffice not found; install it or put soffice on PATH", ErrRenderFailure)
}

// probePDF checks that a rendered file parses as a PDF with at least one
// page. rsc.io/pdf panics on some malformed inputs, hence the recover.
func probePDF(path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parsing pdf: %v", r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}
	doc, err := rpdf.NewReader(f, fi.Size())
	if err != nil {
		return err
	}
	if doc.NumPage() < 1 {
		return fmt.Errorf("pdf has no pages")
	}
	return nil
}
