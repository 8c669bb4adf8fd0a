// Package analyzer summarizes the structure of a parsed JSON document.
//
// Every node visited contributes one occurrence of its shape tag ("dict",
// "list[N]" or the scalar type name) at its path. Paths join object keys with
// "." and mark array descent with "[]". Arrays are assumed to be homogeneous:
// only the first element of each array is visited, so shapes that appear only
// in later elements are not reported.
package analyzer

import (
	"fmt"
	"strconv"

	"github.com/mcncl/jsonshape/internal/config"
	"github.com/mcncl/jsonshape/internal/errors"
	"github.com/mcncl/jsonshape/internal/models"
)

// Analyzer walks parsed JSON documents and builds their StructureMap.
type Analyzer struct {
	// maxDepth bounds nesting depth; 0 disables the limit
	maxDepth int
}

// NewAnalyzer creates a new Analyzer instance with default configuration.
func NewAnalyzer() *Analyzer {
	return NewAnalyzerWithConfig(config.NewConfig())
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom configuration.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	return &Analyzer{maxDepth: cfg.Walker.MaxDepth}
}

// Analyze walks value from the root path into a fresh StructureMap. If the
// document nests deeper than the configured limit, no map is returned.
func (a *Analyzer) Analyze(value models.Value) (*models.StructureMap, error) {
	m := models.NewStructureMap()
	if err := walk(value, "", m, a.maxDepth); err != nil {
		return nil, err
	}
	return m, nil
}

// Walk records value and everything reachable from it under path into m and
// returns m. A nil m is allocated. Walk never fails.
func Walk(value models.Value, path string, m *models.StructureMap) *models.StructureMap {
	if m == nil {
		m = models.NewStructureMap()
	}
	_ = walk(value, path, m, 0)
	return m
}

// ShapeTag returns the shape tag recorded for a single node.
func ShapeTag(value models.Value) string {
	switch value.Kind {
	case models.Object:
		return "dict"
	case models.Array:
		return "list[" + strconv.Itoa(len(value.Items)) + "]"
	default:
		return value.Kind.String()
	}
}

// ChildPath returns the path of an object member named key under path.
func ChildPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// ElementPath returns the path of the elements of an array at path.
func ElementPath(path string) string {
	return path + "[]"
}

type workItem struct {
	value models.Value
	path  string
	depth int
}

// walk is a depth-first pre-order traversal driven by an explicit stack, so
// that deeply nested input cannot exhaust the goroutine stack. Object members
// are pushed in reverse to pop in document order.
func walk(root models.Value, path string, m *models.StructureMap, maxDepth int) error {
	stack := []workItem{{value: root, path: path, depth: 1}}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if maxDepth > 0 && item.depth > maxDepth {
			return errors.NewAnalysisError(
				fmt.Sprintf("nesting depth %d exceeds limit of %d at path %q", item.depth, maxDepth, item.path),
				errors.ErrDepthExceeded,
			)
		}

		v := item.value
		m.Inc(item.path, ShapeTag(v))

		switch v.Kind {
		case models.Object:
			for i := len(v.Members) - 1; i >= 0; i-- {
				member := v.Members[i]
				stack = append(stack, workItem{
					value: member.Value,
					path:  ChildPath(item.path, member.Key),
					depth: item.depth + 1,
				})
			}
		case models.Array:
			if len(v.Items) > 0 {
				stack = append(stack, workItem{
					value: v.Items[0],
					path:  ElementPath(item.path),
					depth: item.depth + 1,
				})
			}
		}
	}

	return nil
}
