package analysis

import (
	"fmt"

	"gobindgen/internal/library"
)

// RefMode is how a value crosses the binding boundary.
type RefMode int

const (
	RefModeNone RefMode = iota // by value
	RefModeByRef
	RefModeByRefMut
)

func (m RefMode) String() string {
	switch m {
	case RefModeByRef:
		return "ByRef"
	case RefModeByRefMut:
		return "ByRefMut"
	}

	return "None"
}

func (m RefMode) IsRef() bool {
	return m != RefModeNone
}

// ForSetterInput normalizes a mode for a setter argument. Setters only read
// their argument, so a mutable reference is downgraded.
func (m RefMode) ForSetterInput() RefMode {
	if m == RefModeByRefMut {
		return RefModeByRef
	}

	return m
}

// RefModeOf computes the reference mode of a value of type tid passed in
// the given direction. It is the rule used for every function parameter.
func RefModeOf(env *Env, tid library.TypeID, direction library.Direction) RefMode {
	t := env.Type(tid)

	switch t.Kind {
	case library.KindFundamental:
		switch t.Fundamental {
		case library.FundamentalUtf8, library.FundamentalFilename, library.FundamentalOsString:
			return byRefInput(direction)
		}
		return RefModeNone

	case library.KindClass, library.KindInterface, library.KindList, library.KindSList,
		library.KindArray, library.KindPtrArray, library.KindCArray, library.KindFixedArray,
		library.KindHashTable:
		return byRefInput(direction)

	case library.KindRecord:
		switch direction {
		case library.DirectionIn:
			if t.Boxed {
				return RefModeByRefMut
			}
			return RefModeByRef
		case library.DirectionInOut:
			return RefModeByRefMut
		case library.DirectionOut:
			// Boxed records are populated in place by the callee.
			if t.Boxed {
				return RefModeByRefMut
			}
		}
		return RefModeNone

	case library.KindUnion:
		if direction == library.DirectionIn || direction == library.DirectionInOut {
			return RefModeByRefMut
		}
		return RefModeNone

	case library.KindAlias:
		target := env.Library.Resolve(t.Target)
		if env.Type(target).Kind == library.KindAlias {
			return RefModeNone
		}
		return RefModeOf(env, target, direction)

	case library.KindEnumeration, library.KindBitfield, library.KindCallback, library.KindFunction:
		return RefModeNone

	default:
		panic(fmt.Sprintf("RefModeOf: unhandled kind %s", t.Kind))
	}
}

func byRefInput(direction library.Direction) RefMode {
	switch direction {
	case library.DirectionIn:
		return RefModeByRef
	case library.DirectionInOut:
		return RefModeByRefMut
	}

	return RefModeNone
}
