package parser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mcncl/jsonshape/internal/errors"
	"github.com/mcncl/jsonshape/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func member(key string, v models.Value) models.Member {
	return models.Member{Key: key, Value: v}
}

func TestParse_SimpleObject(t *testing.T) {
	jsonStr := `{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`
	root, err := Parse(strings.NewReader(jsonStr))
	require.NoError(t, err)

	expected := models.ObjectValue(
		member("name", models.StringValue("John Doe")),
		member("age", models.NumberValue("30")),
		member("isStudent", models.BoolValue(false)),
		member("city", models.NullValue()),
	)
	assert.Equal(t, expected, root)
}

func TestParse_PreservesMemberOrder(t *testing.T) {
	root, err := ParseString(`{"zeta": 1, "alpha": 2, "mid": {"y": true, "b": false}}`)
	require.NoError(t, err)

	require.Equal(t, models.Object, root.Kind)
	keys := make([]string, 0, len(root.Members))
	for _, m := range root.Members {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys)

	mid, ok := root.Get("mid")
	require.True(t, ok)
	assert.Equal(t, "y", mid.Members[0].Key)
	assert.Equal(t, "b", mid.Members[1].Key)
}

func TestParse_DuplicateKeysLastValueWins(t *testing.T) {
	root, err := ParseString(`{"a": 1, "b": true, "a": "x", "c": {"d": 1, "d": null}}`)
	require.NoError(t, err)

	expected := models.ObjectValue(
		member("a", models.StringValue("x")),
		member("b", models.BoolValue(true)),
		member("c", models.ObjectValue(member("d", models.NullValue()))),
	)
	assert.Equal(t, expected, root)

	data, err := json.Marshal(root)
	require.NoError(t, err)
	assert.Equal(t, `{"a":"x","b":true,"c":{"d":null}}`, string(data))
}

func TestParse_SimpleArray(t *testing.T) {
	root, err := ParseString(`[1, "test", true, null, 3.14]`)
	require.NoError(t, err)

	expected := models.ArrayValue(
		models.NumberValue(json.Number("1")),
		models.StringValue("test"),
		models.BoolValue(true),
		models.NullValue(),
		models.NumberValue(json.Number("3.14")),
	)
	assert.Equal(t, expected, root)
}

func TestParse_NestedObject(t *testing.T) {
	root, err := ParseString(`{"user": {"name": "Jane Doe", "id": 123}, "active": true, "tags": ["go", "json"]}`)
	require.NoError(t, err)

	expected := models.ObjectValue(
		member("user", models.ObjectValue(
			member("name", models.StringValue("Jane Doe")),
			member("id", models.NumberValue("123")),
		)),
		member("active", models.BoolValue(true)),
		member("tags", models.ArrayValue(models.StringValue("go"), models.StringValue("json"))),
	)
	assert.Equal(t, expected, root)
}

func TestParse_EmptyContainers(t *testing.T) {
	root, err := ParseString(`{"o": {}, "a": []}`)
	require.NoError(t, err)

	o, _ := root.Get("o")
	a, _ := root.Get("a")
	assert.Equal(t, models.Object, o.Kind)
	assert.Equal(t, 0, o.Len())
	assert.Equal(t, models.Array, a.Kind)
	assert.Equal(t, 0, a.Len())
}

func TestParse_ScalarRoots(t *testing.T) {
	tests := []struct {
		input string
		kind  models.Kind
	}{
		{`"hello"`, models.String},
		{`42`, models.Number},
		{`-1.5e3`, models.Number},
		{`true`, models.Boolean},
		{`null`, models.Null},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			root, err := ParseString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, root.Kind)
		})
	}
}

func TestParse_EscapedSlash(t *testing.T) {
	root, err := ParseString(`{"CidrBlock": "10.0.0.0\/12"}`)
	require.NoError(t, err)

	v, ok := root.Get("CidrBlock")
	require.True(t, ok)
	assert.Equal(t, "10.0.0.0/12", v.Str)
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrEmptyInput)
	assert.Contains(t, err.Error(), "input is empty")
}

func TestParseString_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := ParseString(input)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrEmptyInput)
		assert.Contains(t, err.Error(), "input string is empty")
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{name: "bare key", input: `{invalid}`, contains: "line 1, column 2"},
		{name: "missing closing brace", input: `{"name": "John Doe", "age": 30`, contains: "unexpected end of JSON input"},
		{name: "missing closing bracket", input: `["item1", "item2",`, contains: "unexpected end of JSON input"},
		{name: "trailing comma in object", input: "{\n  \"a\": 1,\n}", contains: "line 3, column 1"},
		{name: "trailing comma in array", input: `[1, 2,]`, contains: "invalid character ']'"},
		{name: "single quotes", input: `{'a': 1}`, contains: "invalid character"},
		{name: "trailing garbage", input: `{"a": 1} }`, contains: "invalid trailing data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			require.Error(t, err)
			assert.True(t, errors.IsDecodeError(err), "expected a decode error, got %v", err)
			assert.ErrorIs(t, err, errors.ErrInvalidJSON)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestParse_MultipleRootValues(t *testing.T) {
	for _, input := range []string{`{} {}`, `1 2`, `[] "x"`} {
		_, err := ParseString(input)
		require.Error(t, err, input)
		assert.ErrorIs(t, err, errors.ErrMultipleJSON)
	}
}

func TestParse_TrailingWhitespaceAllowed(t *testing.T) {
	root, err := ParseString("{\"a\": 1}\n\n  \t")
	require.NoError(t, err)
	assert.Equal(t, 1, root.Len())
}

func TestParse_RoundTrip(t *testing.T) {
	input := `{"b": [1, 2.50, {"c": null}], "a": "ünïcødé <tag> & \"q\"", "n": -0.0001e10, "t": true}`
	first, err := ParseString(input)
	require.NoError(t, err)

	out, err := json.Marshal(first)
	require.NoError(t, err)

	second, err := ParseBytes(out)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseFile_SimpleObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simple.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"product": "Laptop", "price": 1200.50}`), 0644))

	root, err := ParseFile(path)
	require.NoError(t, err)

	expected := models.ObjectValue(
		member("product", models.StringValue("Laptop")),
		member("price", models.NumberValue("1200.50")),
	)
	assert.Equal(t, expected, root)
}

func TestParseFile_NonExistentFile(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "nonexistentfile.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFileNotFound)
}

func TestParseFile_EmptyPath(t *testing.T) {
	_, err := ParseFile("  ")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidFilePath)
}

func TestParseFile_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := ParseFile(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrFileEmpty)
}

func TestPositionAt(t *testing.T) {
	data := []byte("ab\ncd\nef")
	assert.Equal(t, Position{Offset: 0, Line: 1, Column: 1}, positionAt(data, 0))
	assert.Equal(t, Position{Offset: 4, Line: 2, Column: 2}, positionAt(data, 4))
	assert.Equal(t, Position{Offset: 8, Line: 3, Column: 3}, positionAt(data, 100))
}
