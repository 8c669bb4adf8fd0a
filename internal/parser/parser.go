// Package parser decodes JSON text into models.Value trees, keeping object
// members in document order.
package parser

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mcncl/jsonshape/internal/errors"
	"github.com/mcncl/jsonshape/internal/models"
)

// Position locates a byte offset in the input as a 1-based line and column.
type Position struct {
	Offset int64
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d (offset %d)", p.Line, p.Column, p.Offset)
}

// positionAt converts a byte offset into a line/column pair.
func positionAt(data []byte, offset int64) Position {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	if offset < 0 {
		offset = 0
	}
	prefix := data[:offset]
	line := bytes.Count(prefix, []byte{'\n'}) + 1
	col := int(offset) + 1
	if i := bytes.LastIndexByte(prefix, '\n'); i >= 0 {
		col = int(offset) - i
	}
	return Position{Offset: offset, Line: line, Column: col}
}

// frame is an open container on the decode stack.
type frame struct {
	kind    models.Kind
	key     string
	hasKey  bool
	items   []models.Value
	members []models.Member
	// index maps a key to its slot in members
	index map[string]int
}

func (f *frame) value() models.Value {
	if f.kind == models.Object {
		return models.ObjectValue(f.members...)
	}
	return models.ArrayValue(f.items...)
}

// Parse reads a single JSON document from reader.
func Parse(reader io.Reader) (models.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Value{}, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data)
}

// ParseBytes decodes a single JSON document held in memory.
func ParseBytes(data []byte) (models.Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber() // Keep number literals as json.Number

	var (
		stack []*frame
		root  models.Value
		done  bool
	)

	attach := func(v models.Value) {
		if len(stack) == 0 {
			root, done = v, true
			return
		}
		top := stack[len(stack)-1]
		if top.kind == models.Array {
			top.items = append(top.items, v)
			return
		}
		// A repeated key replaces the earlier value in place.
		if i, ok := top.index[top.key]; ok {
			top.members[i].Value = v
		} else {
			top.index[top.key] = len(top.members)
			top.members = append(top.members, models.Member{Key: top.key, Value: v})
		}
		top.key, top.hasKey = "", false
	}

	for !done {
		start := decoder.InputOffset()
		tok, err := decoder.Token()
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				if len(stack) == 0 {
					return models.Value{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
				}
				return models.Value{}, errors.NewParsingError(
					fmt.Sprintf("unexpected end of JSON input at %s", positionAt(data, int64(len(data)))),
					errors.ErrInvalidJSON,
				)
			}
			return models.Value{}, decodeError(data, start, err)
		}

		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '{':
				stack = append(stack, &frame{kind: models.Object, index: make(map[string]int)})
			case '[':
				stack = append(stack, &frame{kind: models.Array})
			case '}', ']':
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				attach(top.value())
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].kind == models.Object && !stack[n-1].hasKey {
				stack[n-1].key, stack[n-1].hasKey = t, true
				continue
			}
			attach(models.StringValue(t))
		case json.Number:
			attach(models.NumberValue(t))
		case bool:
			attach(models.BoolValue(t))
		case nil:
			attach(models.NullValue())
		default:
			return models.Value{}, errors.NewParsingError(fmt.Sprintf("unexpected token %T", tok), errors.ErrInvalidJSON)
		}
	}

	// Anything other than whitespace after the first document is rejected.
	start := decoder.InputOffset()
	if _, err := decoder.Token(); err == nil {
		return models.Value{}, errors.NewParsingError(
			fmt.Sprintf("multiple JSON values found at the root, second value at %s", positionAt(data, start)),
			errors.ErrMultipleJSON,
		)
	} else if !stderrors.Is(err, io.EOF) {
		return models.Value{}, errors.NewParsingError(
			fmt.Sprintf("invalid trailing data after first JSON value at %s", positionAt(data, start)),
			errors.ErrInvalidJSON,
		)
	}

	return root, nil
}

// decodeError turns a decoder failure into a parsing AppError carrying the
// position of the offending token.
func decodeError(data []byte, tokenStart int64, err error) error {
	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		// Scalar scan errors are relative to the token, delimiter errors are absolute.
		offset := tokenStart
		if syntaxError.Offset > offset {
			offset = syntaxError.Offset
		}
		return errors.NewParsingError(
			fmt.Sprintf("%s at %s", syntaxError.Error(), positionAt(data, offset)),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError(
			fmt.Sprintf("unexpected end of JSON input at %s", positionAt(data, int64(len(data)))),
			errors.ErrInvalidJSON,
		)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Value{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseBytes([]byte(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.Value, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Value{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Value{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return models.Value{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}
	return ParseBytes(data)
}
