// Package formatter renders structure summaries for people and for tools.
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcncl/jsonshape/internal/config"
	"github.com/mcncl/jsonshape/internal/models"
	"gopkg.in/yaml.v3"
)

const (
	// StatusLine announces a successful parse in text output.
	StatusLine = "Parsed JSON successfully. Structure:"
	// SourceHeading precedes the re-serialized document in text output.
	SourceHeading = "Original JSON:"
)

var rule = strings.Repeat("=", 50)

// Formatter is responsible for rendering a StructureMap and its source document
type Formatter struct {
	cfg *config.Config
}

// NewFormatter creates a new Formatter instance with default options
func NewFormatter() *Formatter {
	return &Formatter{cfg: config.NewConfig()}
}

// NewFormatterWithConfig creates a new Formatter instance with custom options
func NewFormatterWithConfig(cfg *config.Config) *Formatter {
	return &Formatter{cfg: cfg}
}

// IndentLevel is the nesting level of a path: one per "." and one per "[]".
func IndentLevel(path string) int {
	return strings.Count(path, ".") + strings.Count(path, "[]")
}

// DisplayPath applies the configured key case to every segment of path.
func (f *Formatter) DisplayPath(path string) string {
	if f.cfg.Display.KeyCase == config.KeyCaseOriginal || path == "" {
		return path
	}
	segments := strings.Split(path, ".")
	for i, seg := range segments {
		key := strings.TrimRight(seg, "[]")
		suffix := seg[len(key):]
		if key != "" {
			key = f.cfg.DisplayKey(key)
		}
		segments[i] = key + suffix
	}
	return strings.Join(segments, ".")
}

// Line renders a single structure entry.
func (f *Formatter) Line(e models.Entry) string {
	indent := strings.Repeat(" ", f.cfg.Output.Indent*IndentLevel(e.Path))
	line := fmt.Sprintf("%s- %s: (%s)", indent, f.DisplayPath(e.Path), e.Shape)
	if f.cfg.Output.ShowCounts {
		line += fmt.Sprintf(" x%d", e.Count)
	}
	return line
}

// Structure renders every entry of m, one per line, in insertion order.
func (f *Formatter) Structure(m *models.StructureMap) string {
	var b strings.Builder
	for _, e := range m.Entries() {
		b.WriteString(f.Line(e))
		b.WriteByte('\n')
	}
	return b.String()
}

// Source re-serializes v with two-space indentation. Non-ASCII text and HTML
// characters are written as-is.
func (f *Formatter) Source(v models.Value) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode JSON: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// report is the machine-readable rendering.
type report struct {
	Structure []models.Entry `json:"structure" yaml:"structure"`
	Total     int            `json:"total" yaml:"total"`
	Document  *models.Value  `json:"document,omitempty" yaml:"-"`
	YAMLDoc   *yaml.Node     `json:"-" yaml:"document,omitempty"`
}

// Render writes m, and the source document when enabled, in the configured format.
func (f *Formatter) Render(w io.Writer, m *models.StructureMap, source models.Value) error {
	switch f.cfg.Output.Format {
	case config.FormatJSON:
		return f.renderJSON(w, m, source)
	case config.FormatYAML:
		return f.renderYAML(w, m, source)
	default:
		return f.renderText(w, m, source)
	}
}

func (f *Formatter) renderText(w io.Writer, m *models.StructureMap, source models.Value) error {
	var b strings.Builder
	b.WriteString("\n" + StatusLine + "\n")
	b.WriteString(rule + "\n")
	b.WriteString(f.Structure(m))

	if f.cfg.Output.ShowSource {
		src, err := f.Source(source)
		if err != nil {
			return err
		}
		b.WriteString("\n" + SourceHeading + "\n")
		b.WriteString(src + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (f *Formatter) renderJSON(w io.Writer, m *models.StructureMap, source models.Value) error {
	r := report{Structure: m.Entries(), Total: m.Total()}
	if f.cfg.Output.ShowSource {
		r.Document = &source
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", strings.Repeat(" ", f.cfg.Output.Indent))
	return enc.Encode(r)
}

func (f *Formatter) renderYAML(w io.Writer, m *models.StructureMap, source models.Value) error {
	r := report{Structure: m.Entries(), Total: m.Total()}
	if f.cfg.Output.ShowSource {
		r.YAMLDoc = YAMLNode(source)
	}

	enc := yaml.NewEncoder(w)
	if f.cfg.Output.Indent > 0 {
		enc.SetIndent(f.cfg.Output.Indent)
	}
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}

// YAMLNode converts v into a yaml.Node tree that keeps object member order.
func YAMLNode(v models.Value) *yaml.Node {
	switch v.Kind {
	case models.Object:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, m := range v.Members {
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Key}
			node.Content = append(node.Content, key, YAMLNode(m.Value))
		}
		return node
	case models.Array:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items {
			node.Content = append(node.Content, YAMLNode(item))
		}
		return node
	case models.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Str}
	case models.Number:
		// Untagged so the literal is written exactly as parsed.
		return &yaml.Node{Kind: yaml.ScalarNode, Value: v.Num.String()}
	case models.Boolean:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprint(v.Bool)}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}
