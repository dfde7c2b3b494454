package gvalue

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanhnguyen2187/gom-savior/gom/gerror"
)

func decode(t *testing.T, raw string, code TypeCode) FieldValue {
	t.Helper()
	value, err := Decode(json.RawMessage(raw), code)
	require.NoError(t, err)
	return value
}

func TestDecode_Scalars(t *testing.T) {
	tests := map[string]struct {
		raw      string
		code     TypeCode
		expected FieldValue
	}{
		"plain identifier":  {`1000`, TypeCodeIdentifier, Identifier(1000)},
		"bigint identifier": {`{"sign":1,"intLo":1000,"intHi":0,"len":2}`, TypeCodeIdentifier, Identifier(1000)},
		"wide identifier": {
			`{"sign":1,"intLo":2807709627,"intHi":3758157504,"len":9}`,
			TypeCodeIdentifier,
			Identifier(16141163575704698811),
		},
		"plain max identifier": {`18446744073709551615`, TypeCodeIdentifier, Identifier(math.MaxUint64)},
		"plain integer":        {`-1000`, TypeCodeInteger, Integer(-1000)},
		"bigint integer":       {`{"sign":-1,"intLo":30,"intHi":0,"len":1}`, TypeCodeInteger, Integer(-30)},
		"true":                 {`true`, TypeCodeBoolean, Boolean(true)},
		"false":                {`false`, TypeCodeBoolean, Boolean(false)},
		"narrowed float":       {`0.4000000059604645`, TypeCodeFloat32, Float32(0.4)},
		"negative float":       {`-1`, TypeCodeFloat32, Float32(-1)},
		"zero float":           {`0`, TypeCodeFloat32, Float32(0)},
		"whole float":          {`270`, TypeCodeFloat32, Float32(270)},
		"enum ref":             {`{"sign":1,"intLo":1195329202,"intHi":3758117139,"len":9}`, TypeCodeEnumRef, EnumRef(16140990207737415346)},
		"text":                 {`"viciousslash"`, TypeCodeText, Text("viciousslash")},
	}
	for name, test := range tests {
		value, err := Decode(json.RawMessage(test.raw), test.code)
		if assert.NoError(t, err, name) {
			assert.Equal(t, test.expected, value, name)
		}
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := map[string]struct {
		raw  string
		code TypeCode
		kind error
	}{
		"negative plain identifier":  {`-1000`, TypeCodeIdentifier, gerror.ErrNegativeIdentifier},
		"negative bigint identifier": {`{"sign":-1,"intLo":30,"intHi":0}`, TypeCodeIdentifier, gerror.ErrNegativeIdentifier},
		"negative enum ref":          {`-5`, TypeCodeEnumRef, gerror.ErrNegativeIdentifier},
		"fractional identifier":      {`1.5`, TypeCodeIdentifier, gerror.ErrShapeMismatch},
		"too wide identifier":        {`18446744073709551616`, TypeCodeIdentifier, gerror.ErrShapeMismatch},
		"text as identifier":         {`"1000"`, TypeCodeIdentifier, gerror.ErrShapeMismatch},
		"integer overflow":           {`{"sign":1,"intLo":0,"intHi":2147483648}`, TypeCodeInteger, gerror.ErrIntegerOverflow},
		"plain integer overflow":     {`9223372036854775808`, TypeCodeInteger, gerror.ErrIntegerOverflow},
		"fractional integer":         {`-0.5`, TypeCodeInteger, gerror.ErrShapeMismatch},
		"number as boolean":          {`1`, TypeCodeBoolean, gerror.ErrShapeMismatch},
		"number as text":             {`12`, TypeCodeText, gerror.ErrShapeMismatch},
		"text as float":              {`"0.4"`, TypeCodeFloat32, gerror.ErrShapeMismatch},
		"float out of range":         {`1e300`, TypeCodeFloat32, gerror.ErrShapeMismatch},
		"float below float32 range":  {`-3.5e38`, TypeCodeFloat32, gerror.ErrShapeMismatch},
		"list without type":          {`{"list":[]}`, TypeCodeList, gerror.ErrMissingKey},
		"list without list":          {`{"type":1}`, TypeCodeList, gerror.ErrMissingKey},
		"list of wrong shape":        {`{"type":1,"list":{}}`, TypeCodeList, gerror.ErrShapeMismatch},
		"list with negative type":    {`{"type":-1,"list":[]}`, TypeCodeList, gerror.ErrShapeMismatch},
		"lookup without indexType":   {`{"type":2,"list":[]}`, TypeCodeLookupList, gerror.ErrMissingKey},
		"lookup pair without val":    {`{"indexType":1,"type":2,"list":[{"key":1}]}`, TypeCodeLookupList, gerror.ErrMissingKey},
		"array as lookup":            {`[]`, TypeCodeLookupList, gerror.ErrShapeMismatch},
	}
	for name, test := range tests {
		_, err := Decode(json.RawMessage(test.raw), test.code)
		assert.ErrorIs(t, err, test.kind, name)
	}
}

func TestDecode_IdentifierList(t *testing.T) {
	value := decode(t, `{
		"type": 1,
		"list": [
			{"sign": 1, "intLo": 2385807014, "intHi": 3758149514, "len": 9},
			{"sign": 1, "intLo": 2385806453, "intHi": 3758149258, "len": 9},
			{"sign": 1, "intLo": 2385808156, "intHi": 3758150026, "len": 9}
		]
	}`, TypeCodeList)

	expected := NewList(
		TypeCodeIdentifier,
		Identifier(16141129258494101158),
		Identifier(16141128158982472821),
		Identifier(16141131457517357852),
	)
	assert.Equal(t, expected, value)
	assert.Equal(t, 3, value.(List).Len())
	assert.Equal(t, TypeCodeIdentifier, value.(List).ElemType())
}

func TestDecode_EmptyList(t *testing.T) {
	value := decode(t, `{"type": 6, "list": []}`, TypeCodeList)
	assert.Equal(t, NewList(TypeCodeText), value)
	assert.Equal(t, 0, value.(List).Len())
}

func TestDecode_NestedList(t *testing.T) {
	value := decode(t, `{"type": 7, "list": [{"type": 3, "list": [true, false]}]}`, TypeCodeList)
	expected := NewList(
		TypeCodeList,
		NewList(TypeCodeBoolean, Boolean(true), Boolean(false)),
	)
	assert.Equal(t, expected, value)
}

func TestDecode_ListElementError(t *testing.T) {
	_, err := Decode(json.RawMessage(`{"type": 1, "list": [1, 2, -3]}`), TypeCodeList)
	require.ErrorIs(t, err, gerror.ErrNegativeIdentifier)
	assert.Contains(t, err.Error(), "list[2]")
}

func TestDecode_LookupList(t *testing.T) {
	value := decode(t, `{
		"indexType": 1,
		"type": 2,
		"list": [
			{
				"key": {"sign": 1, "intLo": 1195329202, "intHi": 3758117139, "len": 9},
				"val": {"sign": -1, "intLo": 2873223640, "intHi": 695039895, "len": 8}
			}
		]
	}`, TypeCodeLookupList)

	lookup, ok := value.(LookupList)
	require.True(t, ok)
	assert.Equal(t, TypeCodeIdentifier, lookup.KeyType())
	assert.Equal(t, TypeCodeInteger, lookup.ValueType())
	require.Equal(t, 1, lookup.Len())
	assert.Equal(t, Identifier(16140990207737415346), lookup.At(0).Key)
	assert.Equal(t, Integer(-2985173621313497560), lookup.At(0).Value)

	found, ok := lookup.Lookup(Identifier(16140990207737415346))
	assert.True(t, ok)
	assert.Equal(t, Integer(-2985173621313497560), found)
}

func TestDecode_LookupListKeepsDuplicates(t *testing.T) {
	value := decode(t, `{
		"indexType": 6,
		"type": 2,
		"list": [
			{"key": "a", "val": 1},
			{"key": "b", "val": 2},
			{"key": "a", "val": 3}
		]
	}`, TypeCodeLookupList)

	lookup := value.(LookupList)
	assert.Equal(t, 3, lookup.Len())
	first, ok := lookup.Lookup(Text("a"))
	assert.True(t, ok)
	assert.Equal(t, Integer(1), first)
	assert.Equal(t, []FieldValue{Integer(1), Integer(3)}, lookup.LookupAll(Text("a")))

	_, ok = lookup.Lookup(Text("c"))
	assert.False(t, ok)
}

func TestDecode_LookupListPairError(t *testing.T) {
	_, err := Decode(
		json.RawMessage(`{"indexType": 1, "type": 2, "list": [{"key": 1, "val": 1}, {"key": 2, "val": "x"}]}`),
		TypeCodeLookupList,
	)
	require.ErrorIs(t, err, gerror.ErrShapeMismatch)
	assert.Contains(t, err.Error(), "list[1].val")
}

func TestDecode_Opaque(t *testing.T) {
	raw := `{"x": [1, 2,   3], "y": "z"}`
	value := decode(t, raw, TypeCode(99))

	opaque, ok := value.(Opaque)
	require.True(t, ok)
	assert.Equal(t, TypeCode(99), opaque.TypeCode())
	assert.Equal(t, raw, string(opaque.Raw()))
	assert.Equal(t, "Unknown(99)", opaque.TypeCode().String())

	// known but unmodelled codes are opaque as well
	value = decode(t, `{"x": 1.0, "y": 2.0, "z": 3.0}`, TypeCodeVector3)
	assert.IsType(t, Opaque{}, value)
	assert.False(t, TypeCodeVector3.IsModelled())
	assert.Equal(t, "Vector3", TypeCodeVector3.String())
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(Identifier(1), Identifier(1)))
	assert.False(t, Equal(Identifier(1), EnumRef(1)))
	assert.False(t, Equal(Identifier(1), nil))
	assert.True(t, Equal(nil, nil))
	assert.True(t, Equal(
		NewList(TypeCodeText, Text("a")),
		NewList(TypeCodeText, Text("a")),
	))
	assert.False(t, Equal(
		NewList(TypeCodeText, Text("a")),
		NewList(TypeCodeText, Text("a"), Text("b")),
	))
	assert.True(t, Equal(
		NewOpaque(99, json.RawMessage(`[1]`)),
		NewOpaque(99, json.RawMessage(`[1]`)),
	))
	assert.False(t, Equal(
		NewOpaque(99, json.RawMessage(`[1]`)),
		NewOpaque(98, json.RawMessage(`[1]`)),
	))
}

func TestContainers_AreImmutable(t *testing.T) {
	list := NewList(TypeCodeInteger, Integer(1), Integer(2))
	values := list.Values()
	values[0] = Integer(100)
	assert.Equal(t, Integer(1), list.At(0))

	opaque := NewOpaque(99, json.RawMessage(`[1]`))
	raw := opaque.Raw()
	raw[1] = '2'
	assert.Equal(t, `[1]`, string(opaque.Raw()))
}

func TestPlain(t *testing.T) {
	value := decode(t, `{"indexType": 6, "type": 7, "list": [{"key": "a", "val": {"type": 2, "list": [1, -2]}}]}`, TypeCodeLookupList)
	bs, err := json.Marshal(Plain(value))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"key": "a", "val": [1, -2]}]`, string(bs))
}

func roundTrip(value FieldValue) (FieldValue, error) {
	bs, err := json.Marshal(ToWire(value))
	if err != nil {
		return nil, err
	}
	return Decode(bs, value.TypeCode())
}

func TestToWire(t *testing.T) {
	bs, err := json.Marshal(ToWire(Identifier(16141163575704698811)))
	require.NoError(t, err)
	assert.JSONEq(t, `{"sign":1,"intLo":2807709627,"intHi":3758157504,"len":8}`, string(bs))

	bs, err = json.Marshal(ToWire(Integer(-30)))
	require.NoError(t, err)
	assert.Equal(t, `-30`, string(bs))

	bs, err = json.Marshal(ToWire(Integer(math.MinInt64)))
	require.NoError(t, err)
	assert.Equal(t, `-9223372036854775808`, string(bs))
	decoded, err := Decode(bs, TypeCodeInteger)
	require.NoError(t, err)
	assert.Equal(t, Integer(math.MinInt64), decoded)

	bs, err = json.Marshal(ToWire(NewOpaque(99, json.RawMessage(`{"a":1}`))))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(bs))
}

func TestWireRoundTrip_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("identifier", prop.ForAll(
		func(value uint64) bool {
			decoded, err := roundTrip(Identifier(value))
			return err == nil && Equal(decoded, Identifier(value))
		},
		gen.UInt64(),
	))

	properties.Property("integer", prop.ForAll(
		func(value int64) bool {
			decoded, err := roundTrip(Integer(value))
			return err == nil && Equal(decoded, Integer(value))
		},
		gen.Int64(),
	))

	properties.Property("float", prop.ForAll(
		func(value float32) bool {
			decoded, err := roundTrip(Float32(value))
			return err == nil && Equal(decoded, Float32(value))
		},
		gen.Float32(),
	))

	properties.Property("text list", prop.ForAll(
		func(values []string) bool {
			items := make([]FieldValue, 0, len(values))
			for _, value := range values {
				items = append(items, Text(value))
			}
			list := NewList(TypeCodeText, items...)
			decoded, err := roundTrip(list)
			return err == nil && Equal(decoded, list)
		},
		gen.SliceOf(gen.AnyString()),
	))

	properties.Property("identifier to integer lookup", prop.ForAll(
		func(keys []uint64, values []int64) bool {
			pairs := make([]Pair, 0)
			for i := 0; i < len(keys) && i < len(values); i++ {
				pairs = append(pairs, Pair{Key: Identifier(keys[i]), Value: Integer(values[i])})
			}
			lookup := NewLookupList(TypeCodeIdentifier, TypeCodeInteger, pairs...)
			decoded, err := roundTrip(lookup)
			return err == nil && Equal(decoded, lookup)
		},
		gen.SliceOf(gen.UInt64()),
		gen.SliceOf(gen.Int64()),
	))

	properties.TestingRun(t)
}
