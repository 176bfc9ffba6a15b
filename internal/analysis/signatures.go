package analysis

import (
	"gobindgen/internal/library"
	"gobindgen/internal/version"
)

// Signature is what the registry knows about an existing function.
type Signature struct {
	Parameters        []library.TypeID
	HasReturn         bool
	Version           *version.Version
	DeprecatedVersion *version.Version
}

// Signatures holds the functions of one type by name.
type Signatures map[string]Signature

// SignaturesFor indexes a type's functions.
func SignaturesFor(lib *library.Library, functions []library.Function) Signatures {
	signatures := make(Signatures, len(functions))
	for _, fn := range functions {
		params := make([]library.TypeID, 0, len(fn.Parameters))
		for _, p := range fn.Parameters {
			params = append(params, p.Type)
		}
		ret := lib.Type(fn.Ret.Type)
		signatures[fn.Name] = Signature{
			Parameters:        params,
			HasReturn:         !(ret.Kind == library.KindFundamental && ret.Fundamental == library.FundamentalNone),
			Version:           fn.Version,
			DeprecatedVersion: fn.DeprecatedVersion,
		}
	}

	return signatures
}

// SignatureIndex holds the signatures of every type that has functions.
type SignatureIndex map[library.TypeID]Signatures

// IndexLibrary indexes the functions of every type in the library.
func IndexLibrary(lib *library.Library) SignatureIndex {
	index := make(SignatureIndex)
	for i := 0; i < lib.Len(); i++ {
		id := library.TypeID(i)
		if functions := lib.Type(id).Functions; len(functions) > 0 {
			index[id] = SignaturesFor(lib, functions)
		}
	}

	return index
}

// AddNames records functions known only by name, e.g. from binary metadata.
// They carry no version and are therefore available everywhere. Existing
// entries are kept.
func (index SignatureIndex) AddNames(tid library.TypeID, names []string) {
	signatures, found := index[tid]
	if !found {
		signatures = make(Signatures, len(names))
		index[tid] = signatures
	}
	for _, name := range names {
		if _, exists := signatures[name]; !exists {
			signatures[name] = Signature{}
		}
	}
}

// Registry returns the registry scoped to one type.
func (index SignatureIndex) Registry(own library.TypeID) *Registry {
	return &Registry{Index: index, Own: own}
}

// SignatureRegistry answers whether a function already exists for a type or
// its dependencies, and from which version.
type SignatureRegistry interface {
	HasFunction(name string, deps []library.TypeID) (bool, *version.Version)
}

// Registry looks a name up in its own type first, then in each dependency in order.
type Registry struct {
	Index SignatureIndex
	Own   library.TypeID
}

func (registry *Registry) HasFunction(name string, deps []library.TypeID) (bool, *version.Version) {
	if signature, found := registry.Index[registry.Own][name]; found {
		return true, signature.Version
	}

	for _, dep := range deps {
		if signature, found := registry.Index[dep][name]; found {
			return true, signature.Version
		}
	}

	return false, nil
}
