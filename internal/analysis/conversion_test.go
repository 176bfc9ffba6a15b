package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobindgen/internal/library"
)

// typeOfEveryKind registers one anonymous type per kind and returns them by kind.
func typeOfEveryKind(t *testing.T, env *Env) map[library.Kind]library.TypeID {
	t.Helper()

	gint := env.Library.Fundamental(library.FundamentalInt)
	ids := make(map[library.Kind]library.TypeID)
	for _, kind := range library.AllKinds() {
		if kind == library.KindFundamental {
			ids[kind] = gint
			continue
		}
		id, err := env.Library.AddType(library.Type{
			Kind:      kind,
			Namespace: "Gtk",
			Name:      "Fence" + kind.String(),
			Elem:      gint,
			Key:       gint,
			Target:    gint,
		})
		require.NoError(t, err)
		ids[kind] = id
	}

	return ids
}

func TestResolvers_HandleEveryKind(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	directions := []library.Direction{
		library.DirectionIn, library.DirectionOut, library.DirectionInOut, library.DirectionReturn,
	}

	for kind, id := range typeOfEveryKind(t, env) {
		assert.NotPanics(t, func() { ConversionOf(kind) }, kind.String())
		assert.NotPanics(t, func() { DefaultValue(env, id) }, kind.String())
		assert.NotPanics(t, func() { GoType(env, id) }, kind.String())
		for _, direction := range directions {
			direction := direction
			assert.NotPanics(t, func() { RefModeOf(env, id, direction) }, kind.String())
		}
	}
}

func TestDefaultValue_HandlesEveryFundamental(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	for _, f := range library.AllFundamentals() {
		f := f
		assert.NotPanics(t, func() { DefaultValue(env, env.Library.Fundamental(f)) }, f.String())
	}
}

func TestConversionOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ConversionAsInteger, ConversionOf(library.KindEnumeration))
	assert.Equal(t, ConversionBitflagAsInteger, ConversionOf(library.KindBitfield))
	for _, kind := range library.AllKinds() {
		if kind == library.KindEnumeration || kind == library.KindBitfield {
			continue
		}
		assert.Equal(t, ConversionDirect, ConversionOf(kind), kind.String())
	}
}

func TestDefaultValue_Fundamentals(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	tests := []struct {
		fundamental library.Fundamental
		want        string
	}{
		{library.FundamentalBoolean, "false"},
		{library.FundamentalInt, "int32(0)"},
		{library.FundamentalUInt, "uint32(0)"},
		{library.FundamentalInt8, "int8(0)"},
		{library.FundamentalUChar, "uint8(0)"},
		{library.FundamentalInt64, "int64(0)"},
		{library.FundamentalSize, "uint(0)"},
		{library.FundamentalSSize, "int(0)"},
		{library.FundamentalFloat, "float32(0)"},
		{library.FundamentalDouble, "float64(0)"},
		{library.FundamentalUtf8, "(*string)(nil)"},
		{library.FundamentalPointer, "unsafe.Pointer(nil)"},
		{library.FundamentalType, "gobject.TypeNone"},
	}
	for _, tt := range tests {
		value, found := DefaultValue(env, env.Library.Fundamental(tt.fundamental))
		require.True(t, found, tt.fundamental.String())
		assert.Equal(t, tt.want, renderCode(value), tt.fundamental.String())
	}

	for _, f := range []library.Fundamental{
		library.FundamentalNone, library.FundamentalVarArgs, library.FundamentalFilename, library.FundamentalUnsupported,
	} {
		_, found := DefaultValue(env, env.Library.Fundamental(f))
		assert.False(t, found, f.String())
	}
}

func TestDefaultValue_NamedAndContainerTypes(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ids := typeOfEveryKind(t, env)

	value, found := DefaultValue(env, ids[library.KindEnumeration])
	require.True(t, found)
	assert.Equal(t, "int32(0)", renderCode(value))

	value, found = DefaultValue(env, ids[library.KindBitfield])
	require.True(t, found)
	assert.Equal(t, "uint32(0)", renderCode(value))

	value, found = DefaultValue(env, ids[library.KindRecord])
	require.True(t, found)
	assert.Equal(t, "(*Fencerecord)(nil)", renderCode(value))

	for _, kind := range []library.Kind{
		library.KindUnion, library.KindCallback, library.KindList, library.KindHashTable, library.KindFunction,
	} {
		_, found := DefaultValue(env, ids[kind])
		assert.False(t, found, kind.String())
	}
}
