package analysis

import (
	"gobindgen/internal/config"
	"gobindgen/internal/library"
	"gobindgen/internal/version"
)

// SignalInfo describes a signal connector to generate.
type SignalInfo struct {
	ConnectName       string
	SignalName        string
	TrampolineName    string
	Version           *version.Version
	DeprecatedVersion *version.Version
	DocHidden         bool
}

// NotifySignalName is the detailed signal emitted when a property changes.
func NotifySignalName(propName string) string {
	return "notify::" + propName
}

// AnalyzeNotifySignal synthesizes the change-notification connector of a
// property. It is independent of whether a getter or setter survives. When
// the trampoline cannot be synthesized it returns nil and no requirements.
func AnalyzeNotifySignal(
	env *Env,
	prop *library.Property,
	nameForFunc string,
	owner library.TypeID,
	generateTrait bool,
	trampolines TrampolineSynthesizer,
	obj *config.Object,
	propVersion *version.Version,
) (*SignalInfo, Requirements) {
	signal := &library.Signal{
		Name: NotifySignalName(prop.Name),
		Ret: library.Parameter{
			Type:      env.Library.Fundamental(library.FundamentalNone),
			CType:     library.FundamentalNone.String(),
			Direction: library.DirectionReturn,
		},
		Version:           propVersion,
		DeprecatedVersion: prop.DeprecatedVersion,
	}

	trampolineName, usedTypes, err := trampolines.Synthesize(
		env,
		signal,
		owner,
		generateTrait,
		TrampolineContext{Object: obj, Version: propVersion},
	)
	if err != nil {
		env.Log.Debugf("no notify signal for property `%s`: %s", prop.Name, err)
		return nil, nil
	}

	reqs := make(Requirements, 0, len(usedTypes)+6)
	reqs.AddAll(usedTypes, propVersion)
	if generateTrait {
		reqs.Add(env.RuntimeImport(), propVersion)
		reqs.Add(env.RuntimeSymbol("Cast"), propVersion)
	}
	reqs.Add(env.RuntimeSymbol("SignalConnect"), propVersion)
	reqs.Add(env.RuntimeSymbol("SignalHandlerID"), propVersion)
	reqs.Add(SymbolUnsafe, propVersion)
	reqs.Add(SymbolCgoHandle, propVersion)

	return &SignalInfo{
		ConnectName:       "connect_property_" + nameForFunc + "_notify",
		SignalName:        signal.Name,
		TrampolineName:    trampolineName,
		Version:           propVersion,
		DeprecatedVersion: prop.DeprecatedVersion,
		DocHidden:         false,
	}, reqs
}
