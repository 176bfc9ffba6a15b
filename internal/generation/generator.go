// Package generation renders analyzed property bindings to Go source files.
package generation

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/tliron/commonlog"

	"gobindgen/internal/analysis"
	"gobindgen/internal/library"
	"gobindgen/internal/nameutil"
	"gobindgen/internal/version"
)

const (
	headerComment       = "Code generated by gobindgen. DO NOT EDIT."
	trampolinesFileName = "trampolines.go"
	receiverName        = "o"
)

type Generator struct {
	PackageName string
	OutputPath  string

	files []namedFile
	log   commonlog.Logger
}

type namedFile struct {
	name string
	file *jen.File
}

func NewGenerator(packageName string, outputPath string) Generator {
	return Generator{
		PackageName: packageName,
		OutputPath:  outputPath,
		files:       make([]namedFile, 0),
		log:         commonlog.GetLogger("gobindgen.generation"),
	}
}

// Files returns the names of the registered files in registration order.
func (generator *Generator) Files() []string {
	names := make([]string, 0, len(generator.files))
	for _, f := range generator.files {
		names = append(names, f.name)
	}

	return names
}

// RegisterType renders the accessors and notify connectors of one analyzed
// type into a file of its own. Accessors whose types cannot be rendered are
// skipped with a warning.
func (generator *Generator) RegisterType(env *analysis.Env, tid library.TypeID, result analysis.Result) {
	owner := env.Type(tid)
	file := generator.newFile(result.Imports)

	for _, prop := range result.Properties {
		var code jen.Code
		var err error
		if prop.IsGet {
			code, err = generator.getter(env, owner, prop)
		} else {
			code, err = generator.setter(env, owner, prop)
		}
		if err != nil {
			generator.log.Warningf("skipping `%s` of `%s`: %s", prop.FuncName, owner.FullName(), err)
			continue
		}
		file.Add(code).Line()
	}

	for _, signal := range result.NotifySignals {
		code, err := generator.notifyConnector(env, tid, owner, signal)
		if err != nil {
			generator.log.Warningf("skipping `%s` of `%s`: %s", signal.ConnectName, owner.FullName(), err)
			continue
		}
		file.Add(code).Line()
	}

	generator.files = append(generator.files, namedFile{strings.ToLower(owner.Name) + ".go", file})
}

// RegisterTrampolines renders every synthesized trampoline into one file.
func (generator *Generator) RegisterTrampolines(env *analysis.Env, trampolines []analysis.Trampoline) {
	if len(trampolines) == 0 {
		return
	}

	file := generator.newFile(nil)
	for i := range trampolines {
		code, err := generator.trampoline(env, &trampolines[i])
		if err != nil {
			generator.log.Warningf("skipping trampoline `%s`: %s", trampolines[i].Name, err)
			continue
		}
		file.Add(code).Line()
	}

	generator.files = append(generator.files, namedFile{trampolinesFileName, file})
}

// Render writes the registered file with the given name.
func (generator *Generator) Render(name string, w io.Writer) error {
	for _, f := range generator.files {
		if f.name == name {
			return f.file.Render(w)
		}
	}

	return fmt.Errorf("no generated file named '%s'", name)
}

// Generate saves every registered file under outputPath.
func (generator *Generator) Generate(outputPath string) error {
	err := os.Mkdir(outputPath, os.ModePerm)
	if err != nil && !errors.Is(err, fs.ErrExist) {
		return err
	}

	for _, f := range generator.files {
		if err := f.file.Save(filepath.Join(outputPath, f.name)); err != nil {
			return fmt.Errorf("could not save '%s': %w", f.name, err)
		}
	}

	return nil
}

func (generator *Generator) newFile(imports *analysis.Imports) *jen.File {
	file := jen.NewFile(generator.PackageName)
	file.HeaderComment(headerComment)

	if imports != nil {
		for _, req := range imports.All() {
			pkg := req.Symbol.Package
			if name := path.Base(pkg); pkg != analysis.SymbolUnsafe.Package && token.IsIdentifier(name) {
				file.ImportName(pkg, name)
			}
		}
	}

	return file
}

func (generator *Generator) getter(env *analysis.Env, owner *library.Type, prop *analysis.Property) (jen.Code, error) {
	retType, err := analysis.GoValueType(env, prop.Type)
	if err != nil {
		return nil, err
	}

	rt := env.RuntimePackage()
	name := "Property" + nameutil.ToPascal(prop.Name)

	var newValue jen.Code
	if prop.DefaultValue != nil {
		newValue = jen.Qual(rt, "NewValue").Call(prop.DefaultValue)
	} else {
		newValue = jen.New(jen.Qual(rt, "Value"))
	}

	var result []jen.Code
	switch prop.Conversion {
	case analysis.ConversionDirect:
		result = []jen.Code{jen.Return(jen.Qual(rt, "ValueAs").Types(retType).Call(jen.Id("value")))}
	case analysis.ConversionAsInteger:
		result = integerReturn(rt, "int32", retType)
	case analysis.ConversionBitflagAsInteger:
		result = integerReturn(rt, "uint32", retType)
	default:
		panic(fmt.Sprintf("getter: unhandled conversion %s", prop.Conversion))
	}

	return jen.Add(docComment(
		fmt.Sprintf("%s returns the value of the %q property.", name, prop.Name),
		prop.Version, prop.DeprecatedVersion,
	)).
		Func().
		Params(receiver(owner)).
		Id(name).
		Params().
		Add(retType).
		BlockFunc(func(g *jen.Group) {
			g.Id("value").Op(":=").Add(newValue)
			g.Id(receiverName).Dot("GetProperty").Call(jen.Lit(prop.Name), jen.Id("value"))
			for _, statement := range result {
				g.Add(statement)
			}
		}), nil
}

// integerReturn reinterprets the integer held by the value as the enum or flags type.
func integerReturn(rt string, integer string, retType *jen.Statement) []jen.Code {
	return []jen.Code{
		jen.Id("raw").Op(":=").Qual(rt, "ValueAs").Types(jen.Id(integer)).Call(jen.Id("value")),
		jen.Return(jen.Op("*").Parens(jen.Op("*").Add(retType)).Parens(
			jen.Qual("unsafe", "Pointer").Call(jen.Op("&").Id("raw")),
		)),
	}
}

func (generator *Generator) setter(env *analysis.Env, owner *library.Type, prop *analysis.Property) (jen.Code, error) {
	paramType, err := setterParamType(env, prop)
	if err != nil {
		return nil, err
	}

	rt := env.RuntimePackage()
	name := nameutil.ToPascal(prop.FuncName)
	arg := jen.Id(prop.VarName)

	var value jen.Code
	switch prop.Conversion {
	case analysis.ConversionDirect:
		value = arg
	case analysis.ConversionAsInteger:
		value = jen.Id("int32").Call(arg)
	case analysis.ConversionBitflagAsInteger:
		value = jen.Id("uint32").Call(arg)
	default:
		panic(fmt.Sprintf("setter: unhandled conversion %s", prop.Conversion))
	}

	return jen.Add(docComment(
		fmt.Sprintf("%s sets the value of the %q property.", name, prop.Name),
		prop.Version, prop.DeprecatedVersion,
	)).
		Func().
		Params(receiver(owner)).
		Id(name).
		Params(jen.Id(prop.VarName).Add(paramType)).
		Block(
			jen.Id(receiverName).Dot("SetProperty").Call(
				jen.Lit(prop.Name),
				jen.Qual(rt, "NewValue").Call(value),
			),
		), nil
}

// setterParamType renders the setter argument: object types accept any
// implementer, nullable strings are passed by pointer.
func setterParamType(env *analysis.Env, prop *analysis.Property) (*jen.Statement, error) {
	if bound := prop.Bound; bound != nil {
		boundType, err := analysis.GoType(env, bound.TypeID)
		if err != nil {
			return nil, err
		}
		return jen.Qual(env.RuntimePackage(), "IsA").Types(boundType), nil
	}

	paramType, err := analysis.GoValueType(env, prop.Type)
	if err != nil {
		return nil, err
	}

	t := env.Type(prop.Type)
	if prop.Nullable && t.Kind == library.KindFundamental {
		return jen.Op("*").Add(paramType), nil
	}

	return paramType, nil
}

func (generator *Generator) notifyConnector(
	env *analysis.Env,
	tid library.TypeID,
	owner *library.Type,
	signal *analysis.SignalInfo,
) (jen.Code, error) {
	ownerType, err := analysis.GoValueType(env, tid)
	if err != nil {
		return nil, err
	}

	rt := env.RuntimePackage()
	name := nameutil.ToPascal(signal.ConnectName)

	code := jen.Add(docComment(
		fmt.Sprintf("%s connects f to the %q signal.", name, signal.SignalName),
		signal.Version, signal.DeprecatedVersion,
	))

	return code.
		Func().
		Params(receiver(owner)).
		Id(name).
		Params(jen.Id("f").Func().Params(ownerType)).
		Qual(rt, "SignalHandlerID").
		Block(
			jen.Return(jen.Qual(rt, "SignalConnect").Call(
				jen.Id(receiverName),
				jen.Lit(signal.SignalName),
				jen.Id(signal.TrampolineName),
				jen.Qual("runtime/cgo", "NewHandle").Call(jen.Id("f")),
			)),
		), nil
}

func (generator *Generator) trampoline(env *analysis.Env, trampoline *analysis.Trampoline) (jen.Code, error) {
	ownerType, err := analysis.GoValueType(env, trampoline.Owner)
	if err != nil {
		return nil, err
	}

	this, err := convertThis(env, trampoline, ownerType)
	if err != nil {
		return nil, err
	}

	callbackParams := []jen.Code{ownerType}
	params := []jen.Code{jen.Id("this").Qual("unsafe", "Pointer")}
	args := []jen.Code{this}

	for i, param := range trampoline.Parameters {
		paramType, err := analysis.GoValueType(env, param.Type)
		if err != nil {
			return nil, err
		}
		paramName := param.Name
		if paramName == "" {
			paramName = fmt.Sprintf("arg%d", i)
		}
		paramName = nameutil.MangleKeywords(nameutil.SignalToSnake(paramName))

		callbackParams = append(callbackParams, paramType)
		params = append(params, jen.Id(paramName).Add(paramType))
		args = append(args, jen.Id(paramName))
	}
	params = append(params, jen.Id("data").Uintptr())

	callback := jen.Func().Params(callbackParams...)
	signature := jen.Func().Id(trampoline.Name).Params(params...)
	call := jen.Id("f").Call(args...)
	body := call

	if ret := env.Type(trampoline.Ret.Type); !(ret.Kind == library.KindFundamental && ret.Fundamental == library.FundamentalNone) {
		retType, err := analysis.GoValueType(env, trampoline.Ret.Type)
		if err != nil {
			return nil, err
		}
		callback.Add(retType)
		signature.Add(retType)
		body = jen.Return(call)
	}

	comment := fmt.Sprintf("%s dispatches the %q signal to the closure held by data.", trampoline.Name, trampoline.SignalName)
	return jen.Add(docComment(comment, trampoline.Version, nil)).
		Add(signature).
		Block(
			jen.Id("f").Op(":=").Qual("runtime/cgo", "Handle").Call(jen.Id("data")).Dot("Value").Call().Assert(callback),
			body,
		), nil
}

// convertThis turns the raw instance pointer into the owner value. Owners with
// a generated trait are cast so that subclasses dispatch to the same closure.
func convertThis(env *analysis.Env, trampoline *analysis.Trampoline, ownerType *jen.Statement) (jen.Code, error) {
	if trampoline.GenerateTrait {
		baseType, err := analysis.GoType(env, trampoline.Owner)
		if err != nil {
			return nil, err
		}
		return jen.Qual(env.RuntimePackage(), "Cast").Types(baseType).Call(jen.Id("this")), nil
	}

	return jen.Parens(ownerType).Parens(jen.Id("this")), nil
}

func receiver(owner *library.Type) jen.Code {
	return jen.Id(receiverName).Op("*").Id(owner.Name)
}

// docComment renders the doc comment of a generated declaration with its
// availability and deprecation notes.
func docComment(summary string, since *version.Version, deprecated *version.Version) jen.Code {
	comment := jen.Comment(summary).Line()
	if since != nil {
		comment.Comment("//").Line().Comment(fmt.Sprintf("Available since %s (feature %s).", since, since.Feature())).Line()
	}
	if deprecated != nil {
		comment.Comment("//").Line().Comment(fmt.Sprintf("Deprecated: since %s.", deprecated)).Line()
	}

	return comment
}
