// Command analyze prints the case brief of a single judgment file.
// Usage: go run ./cmd/analyze [-format json|md|html] <judgment.pdf|judgment.txt>
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"judgebrief/internal/analysis"
	"judgebrief/internal/config"
	"judgebrief/internal/domain"
	"judgebrief/internal/pdftext"
	"judgebrief/internal/report"
	"judgebrief/internal/summarizer"
	"judgebrief/internal/summarizer/providers"
)

func main() {
	format := flag.String("format", "json", "output format: json, md or html")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: analyze [-format json|md|html] <file.pdf|file.txt>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(flag.Arg(0), *format, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(path, format string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	text, err := readJudgment(ctx, path)
	if err != nil {
		return err
	}

	providers.Register()
	summ, err := summarizer.Shared(&cfg.Summarizer)
	if err != nil {
		return fmt.Errorf("building summarizer: %w", err)
	}

	brief := analysis.NewPipeline(summ, config.CacheConfig{}).Analyze(ctx, text)
	return write(out, brief, format)
}

func readJudgment(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch domain.AllowedExtensions[ext] {
	case domain.FileTypePDF:
		text, err := pdftext.NewExtractor().ExtractText(ctx, data)
		if err != nil {
			return "", fmt.Errorf("extracting %s: %w", path, err)
		}
		return text, nil
	case domain.FileTypeText:
		return string(data), nil
	}
	return "", fmt.Errorf("%s: %w", path, domain.ErrUnsupportedFileType)
}

func write(out io.Writer, brief *domain.Brief, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(brief)
	case "md":
		_, err := io.WriteString(out, report.RenderMarkdown(brief))
		return err
	case "html":
		page, err := report.RenderHTML(brief)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, page)
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}
