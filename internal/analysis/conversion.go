package analysis

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"gobindgen/internal/library"
)

// PropertyConversion is how a property value moves between its Go type and
// the runtime's generic value container.
type PropertyConversion int

const (
	ConversionDirect PropertyConversion = iota
	// ConversionAsInteger stores an enumeration as a plain int32.
	ConversionAsInteger
	// ConversionBitflagAsInteger stores a bitfield as a plain uint32.
	ConversionBitflagAsInteger
)

func (c PropertyConversion) String() string {
	switch c {
	case ConversionAsInteger:
		return "AsInteger"
	case ConversionBitflagAsInteger:
		return "BitflagAsInteger"
	}

	return "Direct"
}

// ConversionOf classifies a type kind. Every kind is listed so that adding a
// kind without deciding its conversion panics in tests.
func ConversionOf(kind library.Kind) PropertyConversion {
	switch kind {
	case library.KindEnumeration:
		return ConversionAsInteger
	case library.KindBitfield:
		return ConversionBitflagAsInteger
	case library.KindFundamental, library.KindClass, library.KindInterface, library.KindRecord,
		library.KindUnion, library.KindCallback, library.KindAlias, library.KindFunction,
		library.KindList, library.KindSList, library.KindArray, library.KindPtrArray,
		library.KindCArray, library.KindFixedArray, library.KindHashTable:
		return ConversionDirect
	default:
		panic(fmt.Sprintf("ConversionOf: unhandled kind %s", kind))
	}
}

func zeroOf(goType string) *jen.Statement {
	return jen.Id(goType).Call(jen.Lit(0))
}

// fundamentalDefaultValue returns the placeholder literal of a primitive, or
// nil when the primitive cannot be read through a generic value.
func fundamentalDefaultValue(env *Env, f library.Fundamental) *jen.Statement {
	switch f {
	case library.FundamentalBoolean:
		return jen.False()
	case library.FundamentalInt8, library.FundamentalChar:
		return zeroOf("int8")
	case library.FundamentalUInt8, library.FundamentalUChar:
		return zeroOf("uint8")
	case library.FundamentalInt16, library.FundamentalShort:
		return zeroOf("int16")
	case library.FundamentalUInt16, library.FundamentalUShort:
		return zeroOf("uint16")
	case library.FundamentalInt32, library.FundamentalInt:
		return zeroOf("int32")
	case library.FundamentalUInt32, library.FundamentalUInt:
		return zeroOf("uint32")
	case library.FundamentalInt64, library.FundamentalLong:
		return zeroOf("int64")
	case library.FundamentalUInt64, library.FundamentalULong:
		return zeroOf("uint64")
	case library.FundamentalSize:
		return zeroOf("uint")
	case library.FundamentalSSize:
		return zeroOf("int")
	case library.FundamentalFloat:
		return zeroOf("float32")
	case library.FundamentalDouble:
		return zeroOf("float64")
	case library.FundamentalUniChar:
		return zeroOf("rune")
	case library.FundamentalUtf8:
		return jen.Parens(jen.Op("*").String()).Call(jen.Nil())
	case library.FundamentalPointer:
		return jen.Qual(SymbolUnsafe.Package, "Pointer").Call(jen.Nil())
	case library.FundamentalType:
		return jen.Qual(env.RuntimePackage(), "TypeNone")
	case library.FundamentalNone, library.FundamentalVarArgs, library.FundamentalFilename,
		library.FundamentalOsString, library.FundamentalIntPtr, library.FundamentalUIntPtr,
		library.FundamentalUnsupported:
		return nil
	default:
		panic(fmt.Sprintf("fundamentalDefaultValue: unhandled fundamental %s", f))
	}
}

// DefaultValue returns the placeholder passed to the runtime's generic
// property getter for a value of type tid. The second result is false when
// no placeholder exists, in which case no getter can be generated.
func DefaultValue(env *Env, tid library.TypeID) (jen.Code, bool) {
	t := env.Type(tid)

	switch t.Kind {
	case library.KindFundamental:
		if value := fundamentalDefaultValue(env, t.Fundamental); value != nil {
			return value, true
		}
		return nil, false

	case library.KindEnumeration:
		return zeroOf("int32"), true

	case library.KindBitfield:
		return zeroOf("uint32"), true

	case library.KindClass, library.KindRecord, library.KindInterface:
		goType, err := GoType(env, tid)
		if err != nil {
			return nil, false
		}
		return jen.Parens(jen.Op("*").Add(goType)).Call(jen.Nil()), true

	case library.KindUnion, library.KindCallback, library.KindAlias, library.KindFunction,
		library.KindList, library.KindSList, library.KindArray, library.KindPtrArray,
		library.KindCArray, library.KindFixedArray, library.KindHashTable:
		return nil, false

	default:
		panic(fmt.Sprintf("DefaultValue: unhandled kind %s", t.Kind))
	}
}
