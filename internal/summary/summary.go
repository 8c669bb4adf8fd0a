// Package summary ties parsing, walking and rendering into one call.
package summary

import (
	"fmt"
	"io"
	"log"

	"github.com/mcncl/jsonshape/internal/analyzer"
	"github.com/mcncl/jsonshape/internal/config"
	"github.com/mcncl/jsonshape/internal/errors"
	"github.com/mcncl/jsonshape/internal/formatter"
	"github.com/mcncl/jsonshape/internal/models"
	"github.com/mcncl/jsonshape/internal/parser"
)

// Summarizer analyzes JSON text and writes its structure summary.
type Summarizer struct {
	cfg    *config.Config
	logger *log.Logger
}

// NewSummarizer returns a Summarizer. A nil logger discards debug output.
func NewSummarizer(cfg *config.Config, logger *log.Logger) *Summarizer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Summarizer{cfg: cfg, logger: logger}
}

// Result is the outcome of a successful summary.
type Result struct {
	Document  models.Value
	Structure *models.StructureMap
}

// Summarize parses input, walks it and renders the summary to w. A decode
// error is reported on w as a single "JSON decode error: ..." line and
// returned; nothing else is written in that case.
func (s *Summarizer) Summarize(input []byte, w io.Writer) (*Result, error) {
	s.logger.Printf("parsing %d bytes", len(input))
	doc, err := parser.ParseBytes(input)
	if err != nil {
		if errors.IsDecodeError(err) {
			if _, werr := fmt.Fprintln(w, errors.UserFriendlyError(err)); werr != nil {
				return nil, errors.NewOutputError("failed to write decode error", werr)
			}
		}
		return nil, err
	}

	return s.SummarizeValue(doc, w)
}

// SummarizeValue walks an already parsed document and renders it to w.
func (s *Summarizer) SummarizeValue(doc models.Value, w io.Writer) (*Result, error) {
	s.logger.Printf("walking %s document (max depth %d)", doc.Kind, s.cfg.Walker.MaxDepth)
	m, err := analyzer.NewAnalyzerWithConfig(s.cfg).Analyze(doc)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("found %d distinct shapes over %d nodes", m.Len(), m.Total())

	if err := formatter.NewFormatterWithConfig(s.cfg).Render(w, m, doc); err != nil {
		return nil, errors.NewOutputError("failed to render structure", err)
	}

	return &Result{Document: doc, Structure: m}, nil
}

// AnalyzeJSON summarizes jsonStr to w with default settings and returns the
// parsed document, or nil if it could not be decoded.
func AnalyzeJSON(jsonStr string, w io.Writer) *models.Value {
	res, err := NewSummarizer(nil, nil).Summarize([]byte(jsonStr), w)
	if err != nil {
		return nil
	}
	return &res.Document
}
