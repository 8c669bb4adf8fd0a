package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "null", Null.String())
	assert.Equal(t, "boolean", Boolean.String())
	assert.Equal(t, "number", Number.String())
	assert.Equal(t, "string", String.String())
	assert.Equal(t, "list", Array.String())
	assert.Equal(t, "dict", Object.String())
	assert.Equal(t, "unknown(42)", Kind(42).String())
	assert.True(t, Number.IsScalar())
	assert.False(t, Object.IsScalar())
}

func TestValue_MarshalJSON_KeepsOrder(t *testing.T) {
	v := ObjectValue(
		Member{Key: "z", Value: NumberValue("1.50")},
		Member{Key: "a", Value: ArrayValue(BoolValue(true), NullValue())},
		Member{Key: "m", Value: ObjectValue()},
	)

	out, err := v.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"z":1.50,"a":[true,null],"m":{}}`, string(out))
}

func TestValue_MarshalJSON_Strings(t *testing.T) {
	v := StringValue("勿删 <b> & \"quoted\"\n")

	out, err := v.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"勿删 <b> & \"quoted\"\n"`, string(out))
}

func TestValue_MarshalJSON_EmptyNumber(t *testing.T) {
	out, err := json.Marshal(Value{Kind: Number})
	require.NoError(t, err)
	assert.Equal(t, "0", string(out))
}

func TestValue_Get(t *testing.T) {
	v := ObjectValue(Member{Key: "a", Value: StringValue("x")})

	got, ok := v.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "x", got.Str)

	_, ok = v.Get("missing")
	assert.False(t, ok)

	_, ok = StringValue("a").Get("a")
	assert.False(t, ok)
}

func TestStructureMap_InsertionOrderAndCounts(t *testing.T) {
	m := NewStructureMap()
	m.Inc("", "dict")
	m.Inc("b", "number")
	m.Inc("a", "string")
	m.Inc("b", "number")

	assert.Equal(t, []string{" (dict)", "b (number)", "a (string)"}, m.Keys())
	assert.Equal(t, 2, m.Count("b (number)"))
	assert.Equal(t, 0, m.Count("missing (dict)"))
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 4, m.Total())
	assert.Equal(t, []Entry{
		{Path: "", Shape: "dict", Count: 1},
		{Path: "b", Shape: "number", Count: 2},
		{Path: "a", Shape: "string", Count: 1},
	}, m.Entries())
}

func TestStructureMap_EntriesIsACopy(t *testing.T) {
	m := NewStructureMap()
	m.Inc("a", "null")

	entries := m.Entries()
	entries[0].Count = 99

	assert.Equal(t, 1, m.Count("a (null)"))
}

func TestStructureMap_Equal(t *testing.T) {
	a := NewStructureMap()
	b := NewStructureMap()
	assert.True(t, a.Equal(b))

	a.Inc("x", "dict")
	assert.False(t, a.Equal(b))

	b.Inc("x", "dict")
	assert.True(t, a.Equal(b))

	a.Inc("y", "dict")
	b.Inc("z", "dict")
	assert.False(t, a.Equal(b))

	var nilMap *StructureMap
	assert.False(t, a.Equal(nilMap))
	assert.True(t, nilMap.Equal(nil))
}

func TestSplitKey(t *testing.T) {
	tests := []struct {
		key   string
		path  string
		shape string
		ok    bool
	}{
		{key: " (dict)", path: "", shape: "dict", ok: true},
		{key: "a[].b (list[3])", path: "a[].b", shape: "list[3]", ok: true},
		{key: "weird (key) (string)", path: "weird (key)", shape: "string", ok: true},
		{key: "no shape", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			path, shape, ok := SplitKey(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.path, path)
			assert.Equal(t, tt.shape, shape)
			if ok {
				assert.Equal(t, tt.key, Key(path, shape))
			}
		})
	}
}
