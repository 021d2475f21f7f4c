package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hqit/ppt2img/internal/convert"
)

func newRootCmd() *cobra.Command {
	var (
		outputDir    string
		format       string
		dpi          int
		extractNotes bool
		outputJSON   bool
		tempDir      string
		keepTemp     bool
		verbose      bool
	)

	cmd := &cobra.Command{
		Use:           "ppt2img <input>",
		Short:         "Convert PPT/PPTX/PDF files to page image sequences",
		Args:          cobra.ExactArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(verbose)

			conf := convert.Config{
				OutputDir:    outputDir,
				Format:       convert.Format(format),
				DPI:          dpi,
				ExtractNotes: extractNotes,
				TempDir:      tempDir,
				KeepTemp:     keepTemp,
				Logger:       logger,
			}
			res, err := convert.Run(cmd.Context(), args[0], conf)
			if err != nil {
				printError(cmd, err, outputJSON)
				return err
			}

			if outputJSON {
				b, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			printSummary(cmd, res)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "output directory for image files (required for file/both)")
	cmd.Flags().StringVarP(&format, "format", "f", string(convert.FormatFile), "output format: file|base64|both")
	cmd.Flags().IntVar(&dpi, "dpi", convert.DefaultDPI, "image DPI/resolution")
	cmd.Flags().BoolVar(&extractNotes, "extract-notes", false, "extract speaker notes from slides")
	cmd.Flags().BoolVar(&outputJSON, "output-json", false, "emit the result as JSON")
	cmd.Flags().StringVar(&tempDir, "temp-dir", "", "root directory for the temporary work area")
	cmd.Flags().BoolVar(&keepTemp, "keep-temp", false, "keep the temporary work area (for debugging)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	return cmd
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

func printError(cmd *cobra.Command, err error, outputJSON bool) {
	if outputJSON {
		b, _ := json.Marshal(map[string]string{
			"error":   convert.Kind(err),
			"message": err.Error(),
		})
		fmt.Fprintln(cmd.OutOrStdout(), string(b))
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", convert.Kind(err), err)
}

func printSummary(cmd *cobra.Command, res *convert.Result) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Converted %d pages\n", res.Count)

	switch res.Format {
	case convert.FormatFile, convert.FormatBoth:
		for _, p := range res.Images {
			fmt.Fprintf(w, "  - %s\n", p)
		}
	case convert.FormatBase64:
		fmt.Fprintln(w, "Base64 output:")
		for i, b64 := range res.Images {
			fmt.Fprintf(w, "  Page %d: %s\n", i+1, truncate(b64, 50))
		}
	}

	if res.Texts != nil && len(*res.Texts) > 0 {
		fmt.Fprintln(w, "\nExtracted notes:")
		for i, text := range *res.Texts {
			fmt.Fprintf(w, "  Page %d: %s\n", i+1, truncate(text, 100))
		}
	}
	if res.WorkDir != "" {
		fmt.Fprintf(w, "\nWork area kept: %s\n", res.WorkDir)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
