package library

import (
	"github.com/ygrebnov/errorc"

	"gobindgen/internal/errors"
)

// Library is the type table of every loaded namespace.
type Library struct {
	types []Type
	index map[string]TypeID
}

// New returns a library whose internal namespace already holds every fundamental type.
func New() *Library {
	library := &Library{
		types: make([]Type, 0, int(fundamentalCount)),
		index: make(map[string]TypeID),
	}

	for _, f := range AllFundamentals() {
		library.mustAdd(Type{
			Kind:        KindFundamental,
			Namespace:   InternalNamespace,
			Name:        f.String(),
			CType:       f.String(),
			Fundamental: f,
		})
	}

	return library
}

func key(namespace, name string) string {
	return namespace + "." + name
}

// AddType registers a type and returns its id. Adding a named type twice is an error.
func (library *Library) AddType(t Type) (TypeID, error) {
	if t.Name != "" {
		if _, found := library.index[key(t.Namespace, t.Name)]; found {
			return 0, errorc.With(errors.ErrDuplicateType, errorc.String(errors.ErrorFieldTypeName, t.FullName()))
		}
	}

	id := TypeID(len(library.types))
	library.types = append(library.types, t)
	if t.Name != "" {
		library.index[key(t.Namespace, t.Name)] = id
	}

	return id, nil
}

func (library *Library) mustAdd(t Type) TypeID {
	id, err := library.AddType(t)
	if err != nil {
		panic(err)
	}

	return id
}

// AddContainer registers an anonymous container type such as a list of widgets.
func (library *Library) AddContainer(kind Kind, elem TypeID, keyType TypeID) TypeID {
	return library.mustAdd(Type{Kind: kind, Elem: elem, Key: keyType})
}

// Type returns the type with the given id. It panics for ids the library never issued.
func (library *Library) Type(id TypeID) *Type {
	return &library.types[id]
}

// Len is the number of registered types.
func (library *Library) Len() int {
	return len(library.types)
}

func (library *Library) FindType(namespace, name string) (TypeID, bool) {
	id, found := library.index[key(namespace, name)]
	return id, found
}

// Fundamental returns the id of a fundamental type.
func (library *Library) Fundamental(f Fundamental) TypeID {
	id, found := library.FindType(InternalNamespace, f.String())
	if !found {
		panic("fundamental type missing from library: " + f.String())
	}

	return id
}

// Resolve follows alias chains to the aliased type. A cyclic chain resolves
// to one of its aliases.
func (library *Library) Resolve(id TypeID) TypeID {
	for i := 0; i < len(library.types); i++ {
		t := library.Type(id)
		if t.Kind != KindAlias {
			return id
		}
		id = t.Target
	}

	return id
}

// Deps returns the transitive parents and implemented interfaces of a type,
// nearest first, without duplicates.
func (library *Library) Deps(id TypeID) []TypeID {
	deps := make([]TypeID, 0)
	seen := map[TypeID]bool{id: true}

	var visit func(TypeID)
	visit = func(current TypeID) {
		t := library.Type(current)
		next := make([]TypeID, 0, len(t.Implements)+1)
		if t.Parent != nil {
			next = append(next, *t.Parent)
		}
		next = append(next, t.Implements...)

		fresh := make([]TypeID, 0, len(next))
		for _, dep := range next {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			deps = append(deps, dep)
			fresh = append(fresh, dep)
		}
		for _, dep := range fresh {
			visit(dep)
		}
	}
	visit(id)

	return deps
}

// Namespace returns the ids of every named type of a namespace in registration order.
func (library *Library) Namespace(namespace string) []TypeID {
	ids := make([]TypeID, 0)
	for i := range library.types {
		if library.types[i].Namespace == namespace && library.types[i].Name != "" {
			ids = append(ids, TypeID(i))
		}
	}

	return ids
}
