package analysis

import (
	"github.com/ygrebnov/errorc"

	"gobindgen/internal/errors"
	"gobindgen/internal/library"
)

// AnalyzeObject analyzes the properties of a class or interface using its
// configuration, its dependency chain and the environment's signature index.
func AnalyzeObject(env *Env, tid library.TypeID, trampolines TrampolineSynthesizer) (Result, error) {
	t := env.Type(tid)
	if !t.IsObject() {
		return Result{}, errorc.With(
			errors.ErrNotAnObject,
			errorc.String(errors.ErrorFieldTypeName, t.FullName()),
			errorc.String(errors.ErrorFieldTypeKind, t.Kind.String()),
		)
	}

	obj := env.Config.Object(t.FullName())
	deps := env.Library.Deps(tid)

	return AnalyzeProperties(
		env,
		t.Properties,
		tid,
		obj.GenerateTrait,
		trampolines,
		obj,
		env.Signatures.Registry(tid),
		deps,
	), nil
}
