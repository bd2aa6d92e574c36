// Package extract turns stored files into ordered page text for chunking.
package extract

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Page is one unit of extracted text. Number is 1-based and refers to the
// page's position in the source file.
type Page struct {
	Number int
	Text   string
}

// PageExtractor extracts ordered page text from a file on disk.
type PageExtractor interface {
	Extract(ctx context.Context, path string) ([]Page, error)
}

// CommandRunner executes an external command and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// PdftotextExtractor shells out to poppler's pdftotext, which separates pages
// with form feeds on stdout.
type PdftotextExtractor struct {
	runner CommandRunner
}

func NewPdftotextExtractor() *PdftotextExtractor {
	return &PdftotextExtractor{runner: execRunner{}}
}

// NewPdftotextExtractorWithRunner injects a runner, used by tests.
func NewPdftotextExtractorWithRunner(runner CommandRunner) *PdftotextExtractor {
	return &PdftotextExtractor{runner: runner}
}

func (e *PdftotextExtractor) Extract(ctx context.Context, path string) ([]Page, error) {
	out, err := e.runner.Run(ctx, "pdftotext", "-layout", path, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext failed for %s: %w", path, err)
	}

	raw := strings.Split(string(out), "\f")

	pages := make([]Page, 0, len(raw))
	for i, text := range raw {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		pages = append(pages, Page{Number: i + 1, Text: text})
	}

	return pages, nil
}
