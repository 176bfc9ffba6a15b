package analysis

import (
	"fmt"

	"github.com/dave/jennifer/jen"
	"github.com/ygrebnov/errorc"

	"gobindgen/internal/errors"
	"gobindgen/internal/library"
)

var fundamentalGoTypes = map[library.Fundamental]string{
	library.FundamentalBoolean:  "bool",
	library.FundamentalInt8:     "int8",
	library.FundamentalUInt8:    "uint8",
	library.FundamentalInt16:    "int16",
	library.FundamentalUInt16:   "uint16",
	library.FundamentalInt32:    "int32",
	library.FundamentalUInt32:   "uint32",
	library.FundamentalInt64:    "int64",
	library.FundamentalUInt64:   "uint64",
	library.FundamentalChar:     "int8",
	library.FundamentalUChar:    "uint8",
	library.FundamentalShort:    "int16",
	library.FundamentalUShort:   "uint16",
	library.FundamentalInt:      "int32",
	library.FundamentalUInt:     "uint32",
	library.FundamentalLong:     "int64",
	library.FundamentalULong:    "uint64",
	library.FundamentalSize:     "uint",
	library.FundamentalSSize:    "int",
	library.FundamentalFloat:    "float32",
	library.FundamentalDouble:   "float64",
	library.FundamentalUniChar:  "rune",
	library.FundamentalUtf8:     "string",
	library.FundamentalFilename: "string",
	library.FundamentalOsString: "string",
	library.FundamentalIntPtr:   "int",
	library.FundamentalUIntPtr:  "uintptr",
}

// GoType renders the Go type of tid. Named types from the namespace being
// generated are rendered bare, others qualified with their binding package.
func GoType(env *Env, tid library.TypeID) (*jen.Statement, error) {
	t := env.Type(tid)

	switch t.Kind {
	case library.KindFundamental:
		switch t.Fundamental {
		case library.FundamentalPointer:
			return jen.Qual(SymbolUnsafe.Package, "Pointer"), nil
		case library.FundamentalType:
			return jen.Qual(env.RuntimePackage(), "Type"), nil
		}
		if name, found := fundamentalGoTypes[t.Fundamental]; found {
			return jen.Id(name), nil
		}
		return nil, noGoType(t)

	case library.KindEnumeration, library.KindBitfield, library.KindClass, library.KindInterface,
		library.KindRecord, library.KindUnion, library.KindCallback, library.KindAlias:
		if t.Namespace == env.Namespace {
			return jen.Id(t.Name), nil
		}
		return jen.Qual(env.PackagePath(t.Namespace), t.Name), nil

	case library.KindList, library.KindSList, library.KindArray, library.KindPtrArray,
		library.KindCArray, library.KindFixedArray:
		elem, err := GoValueType(env, t.Elem)
		if err != nil {
			return nil, err
		}
		return jen.Index().Add(elem), nil

	case library.KindHashTable:
		key, err := GoValueType(env, t.Key)
		if err != nil {
			return nil, err
		}
		value, err := GoValueType(env, t.Elem)
		if err != nil {
			return nil, err
		}
		return jen.Map(key).Add(value), nil

	case library.KindFunction:
		return nil, noGoType(t)

	default:
		panic(fmt.Sprintf("GoType: unhandled kind %s", t.Kind))
	}
}

// GoValueType renders tid as it is held in values, container elements and
// accessor signatures; objects and records are held by pointer.
func GoValueType(env *Env, tid library.TypeID) (*jen.Statement, error) {
	elem, err := GoType(env, tid)
	if err != nil {
		return nil, err
	}

	switch env.Type(tid).Kind {
	case library.KindClass, library.KindInterface, library.KindRecord, library.KindUnion:
		return jen.Op("*").Add(elem), nil
	}

	return elem, nil
}

// GoTypeString is GoType rendered as source text.
func GoTypeString(env *Env, tid library.TypeID) (string, error) {
	code, err := GoType(env, tid)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%#v", code), nil
}

// UsedGoType returns the symbol generated code must import to use tid, if any.
func UsedGoType(env *Env, tid library.TypeID) (Symbol, bool) {
	t := env.Type(tid)

	switch t.Kind {
	case library.KindFundamental:
		switch t.Fundamental {
		case library.FundamentalPointer:
			return SymbolUnsafe, true
		case library.FundamentalType:
			return env.RuntimeSymbol("Type"), true
		}
		return Symbol{}, false

	case library.KindList, library.KindSList, library.KindArray, library.KindPtrArray,
		library.KindCArray, library.KindFixedArray:
		return UsedGoType(env, t.Elem)

	case library.KindHashTable:
		if symbol, found := UsedGoType(env, t.Key); found {
			return symbol, true
		}
		return UsedGoType(env, t.Elem)

	case library.KindFunction:
		return Symbol{}, false
	}

	if t.Namespace == env.Namespace {
		return Symbol{}, false
	}

	return Symbol{Package: env.PackagePath(t.Namespace), Name: t.Name}, true
}

func noGoType(t *library.Type) error {
	return errorc.With(
		errors.ErrNoGoType,
		errorc.String(errors.ErrorFieldTypeName, t.FullName()),
		errorc.String(errors.ErrorFieldTypeKind, t.Kind.String()),
	)
}
