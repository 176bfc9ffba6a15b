package analysis

import (
	"strings"

	"github.com/ygrebnov/errorc"

	"gobindgen/internal/config"
	"gobindgen/internal/errors"
	"gobindgen/internal/library"
	"gobindgen/internal/nameutil"
	"gobindgen/internal/version"
)

// Trampoline is a callback shim that turns a native signal emission into a
// call of a typed Go closure.
type Trampoline struct {
	Name          string
	SignalName    string
	Owner         library.TypeID
	Parameters    []library.Parameter
	Ret           library.Parameter
	GenerateTrait bool
	Version       *version.Version
}

// TrampolineContext carries what the synthesizer needs besides the signal shape.
type TrampolineContext struct {
	Object  *config.Object
	Version *version.Version
}

// TrampolineSynthesizer builds the trampoline of a signal. It returns the
// trampoline name and the symbols the trampoline uses.
type TrampolineSynthesizer interface {
	Synthesize(
		env *Env,
		signal *library.Signal,
		owner library.TypeID,
		generateTrait bool,
		extra TrampolineContext,
	) (string, []Symbol, error)
}

// Trampolines collects every trampoline synthesized for one output package.
type Trampolines struct {
	list   []Trampoline
	byName map[string]int
}

func NewTrampolines() *Trampolines {
	return &Trampolines{byName: make(map[string]int)}
}

// All returns the trampolines in synthesis order.
func (trampolines *Trampolines) All() []Trampoline {
	return trampolines.list
}

func (trampolines *Trampolines) Synthesize(
	env *Env,
	signal *library.Signal,
	owner library.TypeID,
	generateTrait bool,
	extra TrampolineContext,
) (string, []Symbol, error) {
	ownerType := env.Type(owner)
	if !ownerType.IsObject() {
		return "", nil, errorc.With(
			errors.ErrUnknownOwner,
			errorc.String(errors.ErrorFieldTypeName, ownerType.FullName()),
			errorc.String(errors.ErrorFieldSignalName, signal.Name),
		)
	}

	usedTypes := make([]Symbol, 0, len(signal.Parameters)+2)
	if symbol, found := UsedGoType(env, owner); found {
		usedTypes = append(usedTypes, symbol)
	}

	for _, param := range signal.Parameters {
		if err := checkClosureType(env, param.Type, signal.Name); err != nil {
			return "", nil, err
		}
		if symbol, found := UsedGoType(env, param.Type); found {
			usedTypes = append(usedTypes, symbol)
		}
	}

	if !isNone(env, signal.Ret.Type) {
		if err := checkClosureType(env, signal.Ret.Type, signal.Name); err != nil {
			return "", nil, err
		}
		if symbol, found := UsedGoType(env, signal.Ret.Type); found {
			usedTypes = append(usedTypes, symbol)
		}
	}

	name := trampolineName(ownerType, signal.Name)
	if index, exists := trampolines.byName[name]; exists {
		existing := &trampolines.list[index]
		existing.Version = version.Min(existing.Version, extra.Version)
		return name, usedTypes, nil
	}

	trampolines.byName[name] = len(trampolines.list)
	trampolines.list = append(trampolines.list, Trampoline{
		Name:          name,
		SignalName:    signal.Name,
		Owner:         owner,
		Parameters:    signal.Parameters,
		Ret:           signal.Ret,
		GenerateTrait: generateTrait,
		Version:       extra.Version,
	})

	return name, usedTypes, nil
}

// checkClosureType rejects argument types a trampoline cannot marshal.
func checkClosureType(env *Env, tid library.TypeID, signalName string) error {
	t := env.Type(tid)
	unsupported := t.Kind == library.KindCallback ||
		t.Kind == library.KindFunction ||
		(t.Kind == library.KindFundamental && t.Fundamental == library.FundamentalVarArgs)

	if !unsupported {
		if _, err := GoType(env, tid); err == nil {
			return nil
		}
	}

	return errorc.With(
		errors.ErrUnsupportedClosure,
		errorc.String(errors.ErrorFieldSignalName, signalName),
		errorc.String(errors.ErrorFieldTypeName, t.FullName()),
		errorc.String(errors.ErrorFieldTypeKind, t.Kind.String()),
	)
}

func isNone(env *Env, tid library.TypeID) bool {
	t := env.Type(tid)
	return t.Kind == library.KindFundamental && t.Fundamental == library.FundamentalNone
}

func trampolineName(owner *library.Type, signalName string) string {
	signal := nameutil.SignalToSnake(strings.ReplaceAll(signalName, "::", "_"))
	return strings.ToLower(owner.Name) + "_" + signal + "_trampoline"
}
