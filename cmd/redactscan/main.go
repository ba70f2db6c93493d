// Command redactscan scans page fixtures for sensitive-data patterns and
// prints the resulting redaction candidates. A fixture file holds one page's
// extracted content: native text runs, a recognition result, or both.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/redactkit/redactkit/config"
	"github.com/redactkit/redactkit/coords"
	"github.com/redactkit/redactkit/glyphs"
	"github.com/redactkit/redactkit/match"
	"github.com/redactkit/redactkit/ocr"
	"github.com/redactkit/redactkit/redact"
	"github.com/redactkit/redactkit/report"
	"github.com/redactkit/redactkit/scan"
)

// pageFixture is the JSON shape of one page's extracted content.
type pageFixture struct {
	PageNumber int             `json:"pageNumber"`
	Native     []nativeRunJSON `json:"native,omitempty"`
	OCR        *ocr.Result     `json:"ocr,omitempty"`
}

type nativeRunJSON struct {
	Text      string     `json:"text"`
	Transform [6]float64 `json:"transform"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Advances  []float64  `json:"advances,omitempty"`
	Baseline  bool       `json:"baseline,omitempty"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "redactscan",
		Short:         "Scan extracted page text for sensitive data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newScanCmd())
	return root
}

func newScanCmd() *cobra.Command {
	var (
		configPath  string
		patternName string
		customExpr  string
		format      string
	)
	cmd := &cobra.Command{
		Use:   "scan [fixture.json...]",
		Short: "Scan page fixtures and print redaction candidates",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			scanner := scan.NewScanner(scan.WithConfig(cfg))
			for _, path := range args {
				if err := indexFixture(scanner, path); err != nil {
					return err
				}
			}
			cands, err := collect(cmd.Context(), scanner, patternName, customExpr)
			if err != nil {
				return err
			}
			scan.SortCandidates(cands)
			return emit(cmd.OutOrStdout(), format, cands)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to YAML tunables")
	cmd.Flags().StringVar(&patternName, "pattern", "all", "Pattern to scan for (ssn, credit-card, email, phone, date, all)")
	cmd.Flags().StringVar(&customExpr, "custom", "", "Custom pattern expression (overrides --pattern)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format (json, markdown, html)")
	return cmd
}

func indexFixture(scanner *scan.Scanner, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixture: %w", err)
	}
	var fixture pageFixture
	if err := json.Unmarshal(data, &fixture); err != nil {
		return fmt.Errorf("parse fixture %s: %w", path, err)
	}

	var runs []glyphs.Run
	if len(fixture.Native) > 0 {
		items := make([]glyphs.NativeTextRun, 0, len(fixture.Native))
		for _, n := range fixture.Native {
			origin := coords.OriginTopLeft
			if n.Baseline {
				origin = coords.OriginBaseline
			}
			items = append(items, glyphs.NativeTextRun{
				Text:      n.Text,
				Transform: coords.Matrix(n.Transform),
				Width:     n.Width,
				Height:    n.Height,
				Advances:  n.Advances,
				Origin:    origin,
			})
		}
		runs = append(runs, glyphs.NativeAdapter{}.Runs(items)...)
	}
	if fixture.OCR != nil {
		res := *fixture.OCR
		res.PageNumber = fixture.PageNumber
		runs = append(runs, glyphs.OCRAdapter{}.Runs(glyphs.ClassifyOCR(res))...)
	}
	return scanner.Index(fixture.PageNumber, runs)
}

func collect(ctx context.Context, scanner *scan.Scanner, patternName, customExpr string) ([]redact.Candidate, error) {
	if customExpr != "" {
		var out []redact.Candidate
		for _, page := range scanner.Registry().Pages() {
			cands, err := scanner.SearchCustom(ctx, page, match.CustomPattern{Expr: customExpr})
			if err != nil {
				return nil, err
			}
			out = append(out, cands...)
		}
		return out, nil
	}
	if patternName == "all" {
		return scanner.SearchAll(ctx)
	}
	kind, err := kindByName(patternName)
	if err != nil {
		return nil, err
	}
	var out []redact.Candidate
	for _, page := range scanner.Registry().Pages() {
		cands, err := scanner.SearchPage(page, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, cands...)
	}
	return out, nil
}

func kindByName(name string) (match.Kind, error) {
	for _, k := range match.Kinds() {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown pattern %q", name)
}

func emit(w io.Writer, format string, cands []redact.Candidate) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cands)
	case "markdown":
		return report.WriteMarkdown(w, "Scan results", cands)
	case "html":
		out, err := report.HTML("Scan results", cands)
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
