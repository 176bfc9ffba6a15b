package analysis

import (
	"gobindgen/internal/config"
	"gobindgen/internal/library"
	"gobindgen/internal/nameutil"
	"gobindgen/internal/version"
)

// Eligibility is the decision taken for one property before any descriptor is built.
type Eligibility struct {
	// Skip drops the property entirely, notify signal included.
	Skip     bool
	Readable bool
	Writable bool
	Version  *version.Version
}

// EffectiveVersion is the minimum of the overridden versions, or the
// property's own version when no override carries one. An override never
// makes a property available before the version that introduced it.
func EffectiveVersion(prop *library.Property, overrides []*config.Property) *version.Version {
	versions := make([]*version.Version, 0, len(overrides))
	for _, override := range overrides {
		versions = append(versions, override.Version)
	}

	if v := version.Min(versions...); v != nil {
		return version.Max(v, prop.Version)
	}

	return prop.Version
}

// ResolveEligibility decides whether a getter and a setter may be generated.
// It depends only on its arguments.
func ResolveEligibility(
	env *Env,
	prop *library.Property,
	overrides []*config.Property,
	registry SignatureRegistry,
	deps []library.TypeID,
) Eligibility {
	for _, override := range overrides {
		if override.Ignore {
			return Eligibility{Skip: true}
		}
	}

	if env.IsTotallyDeprecated(prop.DeprecatedVersion) {
		return Eligibility{Skip: true}
	}

	propVersion := EffectiveVersion(prop, overrides)
	nameForFunc := nameutil.SignalToSnake(prop.Name)

	eligibility := Eligibility{
		Readable: prop.Readable,
		Writable: prop.Writable && !prop.ConstructOnly,
		Version:  propVersion,
	}

	if eligibility.Readable && hasManualAccessor(env, registry, "get_"+nameForFunc, deps, propVersion) {
		eligibility.Readable = false
	}
	if eligibility.Writable && hasManualAccessor(env, registry, "set_"+nameForFunc, deps, propVersion) {
		eligibility.Writable = false
	}

	return eligibility
}

// hasManualAccessor reports whether a hand-written accessor takes precedence
// over the generated one.
func hasManualAccessor(
	env *Env,
	registry SignatureRegistry,
	name string,
	deps []library.TypeID,
	propVersion *version.Version,
) bool {
	has, v := registry.HasFunction(name, deps)

	return has && (env.IsTotallyDeprecated(v) || version.LessOrEqual(v, propVersion))
}
