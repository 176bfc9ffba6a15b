package analysis

import (
	"github.com/dave/jennifer/jen"
	"github.com/ygrebnov/errorc"

	"gobindgen/internal/config"
	"gobindgen/internal/errors"
	"gobindgen/internal/library"
	"gobindgen/internal/nameutil"
	"gobindgen/internal/version"
)

// Property describes one generated property accessor: a getter when IsGet
// is set, a setter otherwise.
type Property struct {
	Name     string
	VarName  string
	Type     library.TypeID
	IsGet    bool
	FuncName string
	Nullable library.Nullable

	Conversion PropertyConversion
	// DefaultValue is the getter's placeholder for the generic value; nil for setters.
	DefaultValue jen.Code

	GetOutRefMode RefMode
	SetInRefMode  RefMode

	Version           *version.Version
	DeprecatedVersion *version.Version

	// Bound is set for setters taking any implementer of an object type.
	Bound *Bound
}

// Result is the outcome of analyzing the properties of one type.
type Result struct {
	// Properties holds getters and setters; per property the getter comes first.
	Properties    []*Property
	NotifySignals []*SignalInfo
	Imports       *Imports
	// Diagnostics are advisory; every property that produced one was still analyzed.
	Diagnostics []error
}

// AnalyzeProperties analyzes props of type typeTID in order.
func AnalyzeProperties(
	env *Env,
	props []library.Property,
	typeTID library.TypeID,
	generateTrait bool,
	trampolines TrampolineSynthesizer,
	obj *config.Object,
	registry SignatureRegistry,
	deps []library.TypeID,
) Result {
	result := Result{
		Properties:    make([]*Property, 0, len(props)*2),
		NotifySignals: make([]*SignalInfo, 0, len(props)),
		Imports:       NewImports(),
	}

	for i := range props {
		prop := &props[i]
		overrides := obj.Properties.Matched(prop.Name)

		eligibility := ResolveEligibility(env, prop, overrides, registry, deps)
		if eligibility.Skip {
			continue
		}

		analyzed := analyzeProperty(env, prop, typeTID, eligibility, generateTrait, trampolines, obj)
		if analyzed.diagnostic != nil {
			result.Diagnostics = append(result.Diagnostics, analyzed.diagnostic)
		}

		if analyzed.notifySignal != nil {
			result.NotifySignals = append(result.NotifySignals, analyzed.notifySignal)
			result.Imports.Merge(analyzed.signalReqs)
		}

		if analyzed.getter == nil && analyzed.setter == nil {
			continue
		}

		_, typeErr := GoType(env, prop.Type)
		usedType, hasUsedType := UsedGoType(env, prop.Type)

		if getter := analyzed.getter; getter != nil {
			result.Imports.Merge(getterRequirements(env, getter, typeErr == nil, usedType, hasUsedType))
			result.Properties = append(result.Properties, getter)
		}
		if setter := analyzed.setter; setter != nil {
			result.Imports.Merge(setterRequirements(env, setter, typeErr == nil, usedType, hasUsedType))
			result.Properties = append(result.Properties, setter)
		}
	}

	return result
}

type analyzedProperty struct {
	getter       *Property
	setter       *Property
	notifySignal *SignalInfo
	signalReqs   Requirements
	diagnostic   error
}

func analyzeProperty(
	env *Env,
	prop *library.Property,
	typeTID library.TypeID,
	eligibility Eligibility,
	generateTrait bool,
	trampolines TrampolineSynthesizer,
	obj *config.Object,
) analyzedProperty {
	var analyzed analyzedProperty

	nameForFunc := nameutil.SignalToSnake(prop.Name)
	varName := nameutil.MangleKeywords(nameForFunc)
	readable := eligibility.Readable
	writable := eligibility.Writable
	propVersion := eligibility.Version

	defaultValue, hasDefault := DefaultValue(env, prop.Type)
	if !hasDefault && readable {
		readable = false
		ownerName, err := GoTypeString(env, typeTID)
		if err != nil {
			ownerName = env.Type(typeTID).FullName()
		}
		env.Log.Warningf("No default value for getter of property `%s` for `%s`", prop.Name, ownerName)
		analyzed.diagnostic = errorc.With(
			errors.ErrNoDefaultValue,
			errorc.String(errors.ErrorFieldProperty, prop.Name),
			errorc.String(errors.ErrorFieldOwner, ownerName),
		)
	}

	conversion := ConversionOf(env.Type(prop.Type).Kind)
	getOutRefMode := RefModeOf(env, prop.Type, library.DirectionReturn)
	setInRefMode := RefModeOf(env, prop.Type, library.DirectionIn).ForSetterInput()
	nullable := library.Nullable(setInRefMode.IsRef())

	if readable {
		analyzed.getter = &Property{
			Name:              prop.Name,
			Type:              prop.Type,
			IsGet:             true,
			FuncName:          "get_property_" + nameForFunc,
			Nullable:          nullable,
			Conversion:        conversion,
			DefaultValue:      defaultValue,
			GetOutRefMode:     getOutRefMode,
			SetInRefMode:      setInRefMode,
			Version:           propVersion,
			DeprecatedVersion: prop.DeprecatedVersion,
		}
	}

	if writable {
		analyzed.setter = &Property{
			Name:              prop.Name,
			VarName:           varName,
			Type:              prop.Type,
			IsGet:             false,
			FuncName:          "set_property_" + nameForFunc,
			Nullable:          nullable,
			Conversion:        conversion,
			GetOutRefMode:     getOutRefMode,
			SetInRefMode:      setInRefMode,
			Version:           propVersion,
			DeprecatedVersion: prop.DeprecatedVersion,
			Bound:             BoundForPropertySetter(env, varName, prop.Type, nullable),
		}
	}

	analyzed.notifySignal, analyzed.signalReqs = AnalyzeNotifySignal(
		env, prop, nameForFunc, typeTID, generateTrait, trampolines, obj, propVersion,
	)

	return analyzed
}

func getterRequirements(env *Env, getter *Property, typeRenders bool, usedType Symbol, hasUsedType bool) Requirements {
	var reqs Requirements
	if hasUsedType {
		reqs.Add(usedType, getter.Version)
	}
	if getter.Conversion != ConversionDirect {
		reqs.Add(SymbolUnsafe, getter.Version)
	}
	if typeRenders && getter.DefaultValue != nil {
		reqs.Add(env.RuntimeSymbol("Value"), getter.Version)
	}

	return reqs
}

func setterRequirements(env *Env, setter *Property, typeRenders bool, usedType Symbol, hasUsedType bool) Requirements {
	var reqs Requirements
	if hasUsedType {
		reqs.Add(usedType, setter.Version)
	}
	if typeRenders {
		reqs.Add(env.RuntimeSymbol("Value"), setter.Version)
	}
	if setter.Bound != nil {
		reqs.Add(env.RuntimeImport(), setter.Version)
		reqs.Add(env.RuntimeSymbol("IsA"), setter.Version)
	}

	return reqs
}
