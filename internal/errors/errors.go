// Package errors holds the sentinel errors and structured error keys shared by
// the model loader, the configuration loader and the analyzers.
package errors

import "github.com/ygrebnov/errorc"

const Namespace = "gobindgen"

var namespace = errorc.Namespace(Namespace)

// Sentinel errors. Use errors.Is to match.
var (
	ErrUnknownType        = namespace.NewError("unknown type")
	ErrInvalidTypeRef     = namespace.NewError("invalid type reference")
	ErrDuplicateType      = namespace.NewError("duplicate type")
	ErrInvalidVersion     = namespace.NewError("invalid version")
	ErrInvalidOverride    = namespace.NewError("property override needs exactly one of name or pattern")
	ErrInvalidPattern     = namespace.NewError("invalid property pattern")
	ErrNoGoType           = namespace.NewError("type has no Go rendering")
	ErrNoDefaultValue     = namespace.NewError("no default value for getter of property")
	ErrUnsupportedClosure = namespace.NewError("unsupported closure shape")
	ErrUnknownOwner       = namespace.NewError("signal owner cannot be rendered")
	ErrNotAnObject        = namespace.NewError("type is neither a class nor an interface")
)

var newKey = errorc.KeyFactory(Namespace)

const (
	keySegmentType     = "type"
	keySegmentProperty = "property"
	keySegmentSignal   = "signal"
)

// Structured error field keys.
var (
	ErrorFieldTypeName   = newKey("name", keySegmentType)       // gobindgen.type.name
	ErrorFieldTypeRef    = newKey("ref", keySegmentType)        // gobindgen.type.ref
	ErrorFieldTypeKind   = newKey("kind", keySegmentType)       // gobindgen.type.kind
	ErrorFieldProperty   = newKey("name", keySegmentProperty)   // gobindgen.property.name
	ErrorFieldOwner      = newKey("owner", keySegmentProperty)  // gobindgen.property.owner
	ErrorFieldPattern    = newKey("pattern", keySegmentProperty) // gobindgen.property.pattern
	ErrorFieldSignalName = newKey("name", keySegmentSignal)     // gobindgen.signal.name
)

var (
	ErrorFieldVersion = newKey("version")
	ErrorFieldCause   = newKey("cause")
)
