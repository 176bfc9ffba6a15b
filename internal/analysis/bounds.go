package analysis

import "gobindgen/internal/library"

type BoundType int

const (
	// BoundIsA accepts any value implementing the object's capability
	// interface, rendered as <runtime>.IsA[T].
	BoundIsA BoundType = iota
)

// Bound lets a setter accept any implementer of a type instead of the exact type.
type Bound struct {
	Type          BoundType
	ParameterName string
	Alias         rune
	TypeStr       string
	TypeID        library.TypeID
	Nullable      library.Nullable
}

// BoundForPropertySetter returns the bound of a setter argument, or nil for
// non-object types.
func BoundForPropertySetter(env *Env, varName string, tid library.TypeID, nullable library.Nullable) *Bound {
	if !env.Type(tid).IsObject() {
		return nil
	}

	typeStr, err := GoTypeString(env, tid)
	if err != nil {
		return nil
	}

	return &Bound{
		Type:          BoundIsA,
		ParameterName: varName,
		Alias:         'P',
		TypeStr:       typeStr,
		TypeID:        tid,
		Nullable:      nullable,
	}
}
