// Package analysis decides which property bindings to generate for object and
// interface types and computes everything the emitter needs to render them.
package analysis

import (
	"path"
	"strings"

	"github.com/tliron/commonlog"

	"gobindgen/internal/config"
	"gobindgen/internal/library"
	"gobindgen/internal/version"
)

// Env is the read-only analysis environment. It is passed explicitly to every
// analyzer; nothing in this package keeps global state.
type Env struct {
	Library    *library.Library
	Config     *config.Config
	Namespace  string
	Signatures SignatureIndex
	Log        commonlog.Logger
}

// NewEnv builds an environment for generating the bindings of namespace, with
// the signature index populated from the functions of every loaded type.
func NewEnv(lib *library.Library, cfg *config.Config, namespace string) *Env {
	return &Env{
		Library:    lib,
		Config:     cfg,
		Namespace:  namespace,
		Signatures: IndexLibrary(lib),
		Log:        commonlog.GetLogger("gobindgen.analysis"),
	}
}

func (env *Env) Type(id library.TypeID) *library.Type {
	return env.Library.Type(id)
}

// IsTotallyDeprecated reports whether something deprecated at v is at or
// before the configured cutoff and must not be generated at all.
func (env *Env) IsTotallyDeprecated(v *version.Version) bool {
	cutoff := env.Config.DeprecationCutoff()
	if v == nil || cutoff == nil {
		return false
	}

	return version.LessOrEqual(v, cutoff)
}

// RuntimePackage is the import path of the object-system runtime.
func (env *Env) RuntimePackage() string {
	return env.Config.Options.RuntimePackage
}

// RuntimeSymbol qualifies name with the runtime package.
func (env *Env) RuntimeSymbol(name string) Symbol {
	return Symbol{Package: env.RuntimePackage(), Name: name}
}

// RuntimeImport is the runtime package import itself.
func (env *Env) RuntimeImport() Symbol {
	return Symbol{Package: env.RuntimePackage()}
}

// PackagePath is the import path of the bindings of a namespace. Binding
// packages live next to the runtime package.
func (env *Env) PackagePath(namespace string) string {
	return path.Join(path.Dir(env.RuntimePackage()), strings.ToLower(namespace))
}
