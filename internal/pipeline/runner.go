package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/docsignal/pdf-outline/internal/config"
	"github.com/docsignal/pdf-outline/internal/pdf"
	"github.com/docsignal/pdf-outline/internal/pdf/extraction"
)

// FileResult records the outcome of processing one input file.
type FileResult struct {
	Input    string
	Output   string
	Strategy Strategy
	Err      error
}

// BatchResult summarizes a directory run.
type BatchResult struct {
	Results []FileResult
}

// Failed returns the results for inputs that could not be processed.
func (b *BatchResult) Failed() []FileResult {
	var failed []FileResult
	for _, r := range b.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}

// openFunc abstracts document opening so tests can substitute fixtures.
type openFunc func(path string) (extraction.Document, error)

// Runner processes every PDF in an input directory and writes one JSON
// outline per document to the output directory.
type Runner struct {
	config    *config.Config
	processor *Processor
	logger    *zap.Logger
	open      openFunc
}

// NewRunner creates a runner backed by the real PDF opener.
func NewRunner(cfg *config.Config, processor *Processor, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		config:    cfg,
		processor: processor,
		logger:    logger,
		open: func(path string) (extraction.Document, error) {
			return pdf.Open(path)
		},
	}
}

// Run processes all PDFs found in the input directory. Per-document
// failures are recorded in the batch result rather than aborting the
// run; the returned error is reserved for batch-level failures such as
// an unreadable input directory or context cancellation.
func (r *Runner) Run(ctx context.Context) (*BatchResult, error) {
	inputs, err := r.listInputs()
	if err != nil {
		return nil, err
	}

	r.logger.Info("starting batch",
		zap.String("input", r.config.InputDir),
		zap.String("output", r.config.OutputDir),
		zap.Int("documents", len(inputs)),
		zap.Int("workers", r.config.Workers))

	results := make([]FileResult, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Workers)
	for i, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.processFile(ctx, input)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := &BatchResult{Results: results}
	r.logger.Info("batch complete",
		zap.Int("processed", len(results)-len(batch.Failed())),
		zap.Int("failed", len(batch.Failed())))
	return batch, nil
}

// listInputs returns the PDF files in the input directory, sorted by
// name for deterministic processing order.
func (r *Runner) listInputs() ([]string, error) {
	entries, err := os.ReadDir(r.config.InputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var inputs []string
	for _, entry := range entries {
		if entry.IsDir() || !pdf.IsPDF(entry.Name()) {
			continue
		}
		inputs = append(inputs, filepath.Join(r.config.InputDir, entry.Name()))
	}
	sort.Strings(inputs)
	return inputs, nil
}

// processFile opens, processes and writes the outline for one input.
func (r *Runner) processFile(ctx context.Context, input string) FileResult {
	result := FileResult{Input: input}

	doc, err := r.open(input)
	if err != nil {
		r.logger.Error("failed to open document",
			zap.String("file", input),
			zap.Error(err))
		result.Err = err
		return result
	}
	defer doc.Close()

	docResult, err := r.processor.Process(ctx, doc)
	if err != nil {
		r.logger.Error("failed to process document",
			zap.String("file", input),
			zap.Error(err))
		result.Err = err
		return result
	}

	output := r.outputPath(input)
	if err := os.WriteFile(output, docResult.JSON, 0o600); err != nil {
		r.logger.Error("failed to write outline",
			zap.String("file", output),
			zap.Error(err))
		result.Err = err
		return result
	}

	result.Output = output
	result.Strategy = docResult.Strategy
	r.logger.Info("document complete",
		zap.String("file", filepath.Base(input)),
		zap.String("strategy", string(docResult.Strategy)),
		zap.Int("headings", len(docResult.Outline.Entries)))
	return result
}

// outputPath maps an input PDF path to its JSON output path.
func (r *Runner) outputPath(input string) string {
	base := filepath.Base(input)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".json"
	return filepath.Join(r.config.OutputDir, name)
}
