// Package metadata reads method tables from ECMA-335 metadata files (.winmd).
// The method names found there complete the signature registry for types whose
// introspection data omits hand-written accessors.
package metadata

import (
	"debug/pe"
	"fmt"

	"github.com/microsoft/go-winmd"

	"gobindgen/internal"
)

type WinMdReader struct {
	metadata *winmd.Metadata
}

// NewReader opens the metadata file under the given path.
func NewReader(winMdPath string) (*WinMdReader, error) {
	peFile, err := pe.Open(winMdPath)
	if err != nil {
		return nil, fmt.Errorf("could not open metadata file '%s': %w", winMdPath, err)
	}
	defer peFile.Close()

	winmdMetadata, err := winmd.New(peFile)
	if err != nil {
		return nil, fmt.Errorf("could not read metadata from '%s': %w", winMdPath, err)
	}

	return &WinMdReader{winmdMetadata}, nil
}

// TypeMethods returns the methods of the first type definition with the given name.
func (reader *WinMdReader) TypeMethods(typeName string) (TypeMethods, bool) {
	typeDef := findElementInTable(
		reader.metadata.Tables.TypeDef,
		func(typeDef *winmd.TypeDef) bool { return typeDef.Name.String() == typeName })
	if typeDef == nil {
		return TypeMethods{}, false
	}

	names, err := methodRange(typeDef.MethodList.Start, typeDef.MethodList.End, func(i winmd.Index) (string, error) {
		methodDef, err := reader.metadata.Tables.MethodDef.Record(i)
		if err != nil {
			return "", err
		}
		return methodDef.Name.String(), nil
	})
	internal.PanicOnError(err) // Indexes come from the type definition itself

	return TypeMethods{
		Namespace: typeDef.Namespace.String(),
		Name:      typeDef.Name.String(),
		Methods:   names,
	}, true
}

// methodRange collects the names of the method rows in [start, end).
func methodRange(start, end winmd.Index, name func(winmd.Index) (string, error)) ([]string, error) {
	if end < start {
		return nil, fmt.Errorf("invalid method list [%d, %d)", start, end)
	}

	names := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		methodName, err := name(i)
		if err != nil {
			return nil, fmt.Errorf("method row %d: %w", i, err)
		}
		names = append(names, methodName)
	}

	return names, nil
}

// MethodNames returns the method names of a type in registry form.
func (reader *WinMdReader) MethodNames(typeName string) ([]string, bool) {
	methods, found := reader.TypeMethods(typeName)
	if !found {
		return nil, false
	}

	return methods.RegistryNames(), true
}

// Finds element in given table and returns it. If element is not found then `nil` is returned.
func findElementInTable[T any, TP winmd.Record[T]](table winmd.Table[T, TP], match func(TP) bool) TP {
	for idx := uint32(0); idx < table.Len; idx++ {
		element, err := table.Record(winmd.Index(idx))
		internal.PanicOnError(err) // It returns an error only when creating return value and for out of scope file
		if match(element) {
			return element
		}
	}

	var notFound TP
	return notFound
}
