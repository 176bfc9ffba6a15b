// Package library is the in-memory introspection model: types, properties,
// signals and functions of one or more namespaces.
package library

import "gobindgen/internal/version"

// InternalNamespace holds the fundamental types shared by every namespace.
const InternalNamespace = "*"

type TypeID int

// Kind is the category of a type.
type Kind int

const (
	KindFundamental Kind = iota
	KindEnumeration
	KindBitfield
	KindClass
	KindInterface
	KindRecord
	KindUnion
	KindCallback
	KindAlias
	KindFunction
	KindList
	KindSList
	KindArray
	KindPtrArray
	KindCArray
	KindFixedArray
	KindHashTable

	kindCount
)

var kindNames = [...]string{
	KindFundamental: "fundamental",
	KindEnumeration: "enumeration",
	KindBitfield:    "bitfield",
	KindClass:       "class",
	KindInterface:   "interface",
	KindRecord:      "record",
	KindUnion:       "union",
	KindCallback:    "callback",
	KindAlias:       "alias",
	KindFunction:    "function",
	KindList:        "list",
	KindSList:       "slist",
	KindArray:       "array",
	KindPtrArray:    "ptrarray",
	KindCArray:      "carray",
	KindFixedArray:  "fixedarray",
	KindHashTable:   "hash",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return "unknown"
	}

	return kindNames[k]
}

// AllKinds lists every kind in declaration order.
func AllKinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}

	return kinds
}

// IsContainer reports whether the kind holds element types.
func (k Kind) IsContainer() bool {
	switch k {
	case KindList, KindSList, KindArray, KindPtrArray, KindCArray, KindFixedArray, KindHashTable:
		return true
	}

	return false
}

// Fundamental is a primitive type.
type Fundamental int

const (
	FundamentalNone Fundamental = iota
	FundamentalBoolean
	FundamentalInt8
	FundamentalUInt8
	FundamentalInt16
	FundamentalUInt16
	FundamentalInt32
	FundamentalUInt32
	FundamentalInt64
	FundamentalUInt64
	FundamentalChar
	FundamentalUChar
	FundamentalShort
	FundamentalUShort
	FundamentalInt
	FundamentalUInt
	FundamentalLong
	FundamentalULong
	FundamentalSize
	FundamentalSSize
	FundamentalFloat
	FundamentalDouble
	FundamentalPointer
	FundamentalVarArgs
	FundamentalUniChar
	FundamentalUtf8
	FundamentalFilename
	FundamentalOsString
	FundamentalType
	FundamentalIntPtr
	FundamentalUIntPtr
	FundamentalUnsupported

	fundamentalCount
)

// fundamentalNames are the C-level names used in introspection data.
var fundamentalNames = [...]string{
	FundamentalNone:        "none",
	FundamentalBoolean:     "gboolean",
	FundamentalInt8:        "gint8",
	FundamentalUInt8:       "guint8",
	FundamentalInt16:       "gint16",
	FundamentalUInt16:      "guint16",
	FundamentalInt32:       "gint32",
	FundamentalUInt32:      "guint32",
	FundamentalInt64:       "gint64",
	FundamentalUInt64:      "guint64",
	FundamentalChar:        "gchar",
	FundamentalUChar:       "guchar",
	FundamentalShort:       "gshort",
	FundamentalUShort:      "gushort",
	FundamentalInt:         "gint",
	FundamentalUInt:        "guint",
	FundamentalLong:        "glong",
	FundamentalULong:       "gulong",
	FundamentalSize:        "gsize",
	FundamentalSSize:       "gssize",
	FundamentalFloat:       "gfloat",
	FundamentalDouble:      "gdouble",
	FundamentalPointer:     "gpointer",
	FundamentalVarArgs:     "va_list",
	FundamentalUniChar:     "gunichar",
	FundamentalUtf8:        "utf8",
	FundamentalFilename:    "filename",
	FundamentalOsString:    "os_string",
	FundamentalType:        "GType",
	FundamentalIntPtr:      "gintptr",
	FundamentalUIntPtr:     "guintptr",
	FundamentalUnsupported: "<unsupported>",
}

func (f Fundamental) String() string {
	if f < 0 || f >= fundamentalCount {
		return "unknown"
	}

	return fundamentalNames[f]
}

// AllFundamentals lists every fundamental in declaration order.
func AllFundamentals() []Fundamental {
	fundamentals := make([]Fundamental, 0, fundamentalCount)
	for f := Fundamental(0); f < fundamentalCount; f++ {
		fundamentals = append(fundamentals, f)
	}

	return fundamentals
}

type Direction int

const (
	DirectionIn Direction = iota
	DirectionOut
	DirectionInOut
	DirectionReturn
)

type Transfer int

const (
	TransferNone Transfer = iota
	TransferContainer
	TransferFull
)

// Type is one entry of the type table. Which fields are meaningful depends on Kind.
type Type struct {
	Kind      Kind
	Namespace string
	Name      string
	CType     string

	Fundamental Fundamental

	// Element, key and alias targets.
	Elem   TypeID
	Key    TypeID
	Target TypeID

	// Records passed by pointer and copied through the runtime's boxed type machinery.
	Boxed bool

	Parent     *TypeID
	Implements []TypeID
	Properties []Property
	Functions  []Function
	Signals    []Signal

	Version           *version.Version
	DeprecatedVersion *version.Version
}

// FullName is "Namespace.Name", or the bare name for internal types.
func (t *Type) FullName() string {
	if t.Namespace == InternalNamespace || t.Namespace == "" {
		return t.Name
	}

	return t.Namespace + "." + t.Name
}

// IsObject reports whether the type is a class or an interface.
func (t *Type) IsObject() bool {
	return t.Kind == KindClass || t.Kind == KindInterface
}

// Nullable is the nullability hint carried by properties and parameters.
type Nullable bool

type Property struct {
	Name          string
	Type          TypeID
	Readable      bool
	Writable      bool
	ConstructOnly bool
	Nullable      Nullable
	Transfer      Transfer

	Version           *version.Version
	DeprecatedVersion *version.Version
	Doc               string
}

type Parameter struct {
	Name              string
	Type              TypeID
	CType             string
	InstanceParameter bool
	Direction         Direction
	Transfer          Transfer
	CallerAllocates   bool
	Nullable          Nullable
	AllowNone         bool
	IsError           bool
}

type Signal struct {
	Name       string
	Parameters []Parameter
	Ret        Parameter

	Version           *version.Version
	DeprecatedVersion *version.Version
	Doc               string
}

type Function struct {
	Name        string
	CIdentifier string
	Parameters  []Parameter
	Ret         Parameter
	Throws      bool

	Version           *version.Version
	DeprecatedVersion *version.Version
}
