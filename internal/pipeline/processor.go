package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/docsignal/pdf-outline/internal/intelligence"
	"github.com/docsignal/pdf-outline/internal/pdf/extraction"
)

// Strategy identifies which classifier produced a document's outline.
type Strategy string

const (
	StrategyText   Strategy = "text"
	StrategyVisual Strategy = "visual"
)

// ProcessorConfig bundles the tuning knobs for every stage of the
// document pipeline.
type ProcessorConfig struct {
	Extraction extraction.Config
	Analyzer   intelligence.AnalyzerConfig
	Palette    intelligence.PaletteConfig
	Heading    intelligence.HeadingConfig
	Visual     intelligence.VisualConfig
}

// DefaultProcessorConfig returns the default configuration for all stages.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		Extraction: extraction.DefaultConfig(),
		Analyzer:   intelligence.DefaultAnalyzerConfig(),
		Palette:    intelligence.DefaultPaletteConfig(),
		Heading:    intelligence.DefaultHeadingConfig(),
		Visual:     intelligence.DefaultVisualConfig(),
	}
}

// DocumentResult holds everything produced for a single document.
type DocumentResult struct {
	Outline    intelligence.Outline
	JSON       []byte
	Strategy   Strategy
	SpanCount  int
	PageErrors []extraction.PageError
}

// Processor runs a single document through extraction, analysis,
// classification and formatting.
type Processor struct {
	config    ProcessorConfig
	extractor *extraction.Extractor
	analyzer  *intelligence.Analyzer
	text      *intelligence.HeadingClassifier
	visual    *intelligence.VisualClassifier
	logger    *zap.Logger
}

// NewProcessor creates a processor with the given configuration.
func NewProcessor(cfg ProcessorConfig, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Processor{
		config:    cfg,
		extractor: extraction.NewExtractor(cfg.Extraction),
		analyzer:  intelligence.NewAnalyzer(cfg.Analyzer),
		text:      intelligence.NewHeadingClassifier(cfg.Heading),
		visual:    intelligence.NewVisualClassifier(cfg.Visual),
		logger:    logger,
	}
}

// Process extracts spans from the document, picks a classification
// strategy and returns the formatted outline. Exactly one classifier
// runs per document.
func (p *Processor) Process(ctx context.Context, doc extraction.Document) (*DocumentResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := p.extractor.ExtractDocument(doc)
	for _, pe := range res.PageErrors {
		p.logger.Warn("skipping unreadable page",
			zap.Int("page", pe.Page),
			zap.Error(pe.Err))
	}

	profile := p.analyzer.Analyze(res.Spans)
	palette := intelligence.BuildPalette(res.Spans, p.config.Palette)

	var strategy Strategy
	var candidates []intelligence.HeadingCandidate
	if intelligence.IsVisuallyDriven(palette, p.config.Palette) {
		strategy = StrategyVisual
		candidates = p.visual.Classify(res.Spans, profile)
	} else {
		strategy = StrategyText
		candidates = p.text.Classify(res.Spans, profile)
	}

	outline := intelligence.BuildOutline(candidates)
	data, err := intelligence.FormatOutline(outline)
	if err != nil {
		return nil, fmt.Errorf("failed to format outline: %w", err)
	}

	p.logger.Debug("document processed",
		zap.String("strategy", string(strategy)),
		zap.Int("spans", len(res.Spans)),
		zap.Int("headings", len(outline.Entries)),
		zap.Float64("colorful_ratio", palette.ColorfulRatio()),
		zap.Float64("body_size", profile.BodySize))

	return &DocumentResult{
		Outline:    outline,
		JSON:       data,
		Strategy:   strategy,
		SpanCount:  len(res.Spans),
		PageErrors: res.PageErrors,
	}, nil
}
