package library

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ygrebnov/errorc"
	"gopkg.in/yaml.v3"

	"gobindgen/internal/errors"
	"gobindgen/internal/version"
)

// The YAML documents below describe one namespace each. They stand in for the
// host introspection format; only the fields the analyzers read are modelled.

type namespaceDoc struct {
	Namespace string    `yaml:"namespace"`
	Version   string    `yaml:"version"`
	Types     []typeDoc `yaml:"types"`
}

type typeDoc struct {
	Name              string        `yaml:"name"`
	Kind              string        `yaml:"kind"`
	CType             string        `yaml:"c_type"`
	Target            string        `yaml:"target"`
	Boxed             bool          `yaml:"boxed"`
	Parent            string        `yaml:"parent"`
	Implements        []string      `yaml:"implements"`
	Properties        []propertyDoc `yaml:"properties"`
	Functions         []functionDoc `yaml:"functions"`
	Signals           []signalDoc   `yaml:"signals"`
	Version           string        `yaml:"version"`
	DeprecatedVersion string        `yaml:"deprecated_version"`
}

type propertyDoc struct {
	Name              string `yaml:"name"`
	Type              string `yaml:"type"`
	Readable          bool   `yaml:"readable"`
	Writable          bool   `yaml:"writable"`
	ConstructOnly     bool   `yaml:"construct_only"`
	Nullable          bool   `yaml:"nullable"`
	Transfer          string `yaml:"transfer"`
	Version           string `yaml:"version"`
	DeprecatedVersion string `yaml:"deprecated_version"`
	Doc               string `yaml:"doc"`
}

type parameterDoc struct {
	Name            string `yaml:"name"`
	Type            string `yaml:"type"`
	Direction       string `yaml:"direction"`
	Transfer        string `yaml:"transfer"`
	CallerAllocates bool   `yaml:"caller_allocates"`
	Nullable        bool   `yaml:"nullable"`
}

type functionDoc struct {
	Name              string         `yaml:"name"`
	CIdentifier       string         `yaml:"c_identifier"`
	Parameters        []parameterDoc `yaml:"parameters"`
	Return            string         `yaml:"return"`
	Throws            bool           `yaml:"throws"`
	Version           string         `yaml:"version"`
	DeprecatedVersion string         `yaml:"deprecated_version"`
}

type signalDoc struct {
	Name              string         `yaml:"name"`
	Parameters        []parameterDoc `yaml:"parameters"`
	Return            string         `yaml:"return"`
	Version           string         `yaml:"version"`
	DeprecatedVersion string         `yaml:"deprecated_version"`
	Doc               string         `yaml:"doc"`
}

var kindsByName = map[string]Kind{
	"enumeration": KindEnumeration,
	"enum":        KindEnumeration,
	"bitfield":    KindBitfield,
	"flags":       KindBitfield,
	"class":       KindClass,
	"interface":   KindInterface,
	"record":      KindRecord,
	"union":       KindUnion,
	"callback":    KindCallback,
	"alias":       KindAlias,
	"function":    KindFunction,
}

var containersByPrefix = map[string]Kind{
	"list":     KindList,
	"slist":    KindSList,
	"array":    KindArray,
	"ptrarray": KindPtrArray,
	"carray":   KindCArray,
	"fixed":    KindFixedArray,
	"hash":     KindHashTable,
}

// LoadFile reads one namespace document from disk into the library.
func (library *Library) LoadFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("cannot read %s: %w", path, err)
	}
	defer file.Close()

	namespace, err := library.Load(file)
	if err != nil {
		return "", fmt.Errorf("parse error in %s: %w", path, err)
	}

	return namespace, nil
}

// Load reads one namespace document into the library and returns the namespace name.
// Types may reference each other in any order and may reference namespaces loaded earlier.
// A document that fails to load leaves the library unchanged.
func (library *Library) Load(r io.Reader) (string, error) {
	var doc namespaceDoc
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return "", err
	}

	mark := len(library.types)
	namespace, err := library.load(doc)
	if err != nil {
		library.truncate(mark)
		return "", err
	}

	return namespace, nil
}

func (library *Library) load(doc namespaceDoc) (string, error) {
	ids := make([]TypeID, len(doc.Types))
	for i, td := range doc.Types {
		kind, found := kindsByName[td.Kind]
		if !found {
			return "", errorc.With(
				errors.ErrUnknownType,
				errorc.String(errors.ErrorFieldTypeName, td.Name),
				errorc.String(errors.ErrorFieldTypeKind, td.Kind),
			)
		}

		id, err := library.AddType(Type{Kind: kind, Namespace: doc.Namespace, Name: td.Name, CType: td.CType})
		if err != nil {
			return "", err
		}
		ids[i] = id
	}

	for i, td := range doc.Types {
		built, err := library.buildType(doc.Namespace, *library.Type(ids[i]), td)
		if err != nil {
			return "", fmt.Errorf("type %s: %w", td.Name, err)
		}
		*library.Type(ids[i]) = built
	}

	for i, td := range doc.Types {
		if library.Type(ids[i]).Kind != KindAlias {
			continue
		}
		if library.Type(library.Resolve(ids[i])).Kind == KindAlias {
			return "", errorc.With(
				errors.ErrInvalidTypeRef,
				errorc.String(errors.ErrorFieldTypeName, library.Type(ids[i]).FullName()),
				errorc.String(errors.ErrorFieldTypeRef, td.Target),
			)
		}
	}

	return doc.Namespace, nil
}

// truncate drops every type registered from mark on.
func (library *Library) truncate(mark int) {
	for _, t := range library.types[mark:] {
		if t.Name != "" {
			delete(library.index, key(t.Namespace, t.Name))
		}
	}
	library.types = library.types[:mark]
}

func (library *Library) buildType(namespace string, t Type, td typeDoc) (Type, error) {
	var err error
	if t.Version, err = parseVersion(td.Version); err != nil {
		return t, err
	}
	if t.DeprecatedVersion, err = parseVersion(td.DeprecatedVersion); err != nil {
		return t, err
	}

	if t.Kind == KindAlias {
		if t.Target, err = library.ResolveRef(namespace, td.Target); err != nil {
			return t, err
		}
	}
	t.Boxed = td.Boxed

	if td.Parent != "" {
		parent, err := library.ResolveRef(namespace, td.Parent)
		if err != nil {
			return t, err
		}
		t.Parent = &parent
	}
	for _, ref := range td.Implements {
		iface, err := library.ResolveRef(namespace, ref)
		if err != nil {
			return t, err
		}
		t.Implements = append(t.Implements, iface)
	}

	for _, pd := range td.Properties {
		property, err := library.buildProperty(namespace, pd)
		if err != nil {
			return t, fmt.Errorf("property %s: %w", pd.Name, err)
		}
		t.Properties = append(t.Properties, property)
	}

	for _, fd := range td.Functions {
		function := Function{Name: fd.Name, CIdentifier: fd.CIdentifier, Throws: fd.Throws}
		if function.Parameters, err = library.buildParameters(namespace, fd.Parameters); err != nil {
			return t, fmt.Errorf("function %s: %w", fd.Name, err)
		}
		if function.Ret, err = library.buildReturn(namespace, fd.Return); err != nil {
			return t, fmt.Errorf("function %s: %w", fd.Name, err)
		}
		if function.Version, err = parseVersion(fd.Version); err != nil {
			return t, err
		}
		if function.DeprecatedVersion, err = parseVersion(fd.DeprecatedVersion); err != nil {
			return t, err
		}
		t.Functions = append(t.Functions, function)
	}

	for _, sd := range td.Signals {
		signal := Signal{Name: sd.Name, Doc: sd.Doc}
		if signal.Parameters, err = library.buildParameters(namespace, sd.Parameters); err != nil {
			return t, fmt.Errorf("signal %s: %w", sd.Name, err)
		}
		if signal.Ret, err = library.buildReturn(namespace, sd.Return); err != nil {
			return t, fmt.Errorf("signal %s: %w", sd.Name, err)
		}
		if signal.Version, err = parseVersion(sd.Version); err != nil {
			return t, err
		}
		if signal.DeprecatedVersion, err = parseVersion(sd.DeprecatedVersion); err != nil {
			return t, err
		}
		t.Signals = append(t.Signals, signal)
	}

	return t, nil
}

func (library *Library) buildProperty(namespace string, pd propertyDoc) (Property, error) {
	typeID, err := library.ResolveRef(namespace, pd.Type)
	if err != nil {
		return Property{}, err
	}

	property := Property{
		Name:          pd.Name,
		Type:          typeID,
		Readable:      pd.Readable,
		Writable:      pd.Writable,
		ConstructOnly: pd.ConstructOnly,
		Nullable:      Nullable(pd.Nullable),
		Transfer:      parseTransfer(pd.Transfer),
		Doc:           pd.Doc,
	}
	if property.Version, err = parseVersion(pd.Version); err != nil {
		return Property{}, err
	}
	if property.DeprecatedVersion, err = parseVersion(pd.DeprecatedVersion); err != nil {
		return Property{}, err
	}

	return property, nil
}

func (library *Library) buildParameters(namespace string, docs []parameterDoc) ([]Parameter, error) {
	params := make([]Parameter, 0, len(docs))
	for _, pd := range docs {
		typeID, err := library.ResolveRef(namespace, pd.Type)
		if err != nil {
			return nil, err
		}
		params = append(params, Parameter{
			Name:            pd.Name,
			Type:            typeID,
			CType:           pd.Type,
			Direction:       parseDirection(pd.Direction),
			Transfer:        parseTransfer(pd.Transfer),
			CallerAllocates: pd.CallerAllocates,
			Nullable:        Nullable(pd.Nullable),
			AllowNone:       pd.Nullable,
		})
	}

	return params, nil
}

func (library *Library) buildReturn(namespace, ref string) (Parameter, error) {
	if ref == "" {
		ref = FundamentalNone.String()
	}
	typeID, err := library.ResolveRef(namespace, ref)
	if err != nil {
		return Parameter{}, err
	}

	return Parameter{Type: typeID, CType: ref, Direction: DirectionReturn}, nil
}

// ResolveRef resolves a type reference as written in a namespace document:
// a fundamental name ("gint"), a local name ("Widget"), a qualified name
// ("Gio.File") or a container ("list:Widget", "hash:utf8,gint").
func (library *Library) ResolveRef(namespace, ref string) (TypeID, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return 0, errorc.With(errors.ErrInvalidTypeRef, errorc.String(errors.ErrorFieldTypeRef, ref))
	}

	if prefix, rest, found := strings.Cut(ref, ":"); found {
		kind, known := containersByPrefix[prefix]
		if !known {
			return 0, errorc.With(errors.ErrInvalidTypeRef, errorc.String(errors.ErrorFieldTypeRef, ref))
		}
		if kind == KindHashTable {
			keyRef, valueRef, ok := strings.Cut(rest, ",")
			if !ok {
				return 0, errorc.With(errors.ErrInvalidTypeRef, errorc.String(errors.ErrorFieldTypeRef, ref))
			}
			keyID, err := library.ResolveRef(namespace, keyRef)
			if err != nil {
				return 0, err
			}
			valueID, err := library.ResolveRef(namespace, valueRef)
			if err != nil {
				return 0, err
			}
			return library.AddContainer(kind, valueID, keyID), nil
		}

		elem, err := library.ResolveRef(namespace, rest)
		if err != nil {
			return 0, err
		}
		return library.AddContainer(kind, elem, 0), nil
	}

	if id, found := library.FindType(InternalNamespace, ref); found {
		return id, nil
	}
	if ns, name, qualified := strings.Cut(ref, "."); qualified {
		if id, found := library.FindType(ns, name); found {
			return id, nil
		}
	} else if id, found := library.FindType(namespace, ref); found {
		return id, nil
	}

	return 0, errorc.With(errors.ErrUnknownType, errorc.String(errors.ErrorFieldTypeRef, ref))
}

func parseVersion(s string) (*version.Version, error) {
	if s == "" {
		return nil, nil
	}

	return version.Parse(s)
}

func parseTransfer(s string) Transfer {
	switch s {
	case "full":
		return TransferFull
	case "container":
		return TransferContainer
	}

	return TransferNone
}

func parseDirection(s string) Direction {
	switch s {
	case "out":
		return DirectionOut
	case "inout":
		return DirectionInOut
	}

	return DirectionIn
}
