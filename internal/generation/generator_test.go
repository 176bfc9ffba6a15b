package generation

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gobindgen/internal/analysis"
	"gobindgen/internal/config"
	"gobindgen/internal/library"
)

const fixture = `
namespace: Gtk
types:
  - name: Orientation
    kind: enumeration
  - name: Widget
    kind: class
    properties:
      - {name: label, type: utf8, readable: true, writable: true, version: "3.10"}
      - {name: mode, type: Orientation, readable: true}
      - {name: child, type: Widget, writable: true}
      - {name: old, type: gint, readable: true, deprecated_version: "3.6"}
`

func generate(t *testing.T) (Generator, *analysis.Env) {
	t.Helper()

	return generateWith(t, config.Default("Gtk"))
}

func generateWith(t *testing.T, cfg *config.Config) (Generator, *analysis.Env) {
	t.Helper()

	lib := library.New()
	_, err := lib.Load(strings.NewReader(fixture))
	require.NoError(t, err)

	env := analysis.NewEnv(lib, cfg, "Gtk")
	widget, found := lib.FindType("Gtk", "Widget")
	require.True(t, found)

	trampolines := analysis.NewTrampolines()
	result, err := analysis.AnalyzeObject(env, widget, trampolines)
	require.NoError(t, err)

	generator := NewGenerator("gtk", t.TempDir())
	generator.RegisterType(env, widget, result)
	generator.RegisterTrampolines(env, trampolines.All())

	return generator, env
}

func render(t *testing.T, generator Generator, name string) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, generator.Render(name, &buf))
	return buf.String()
}

func TestGenerator_RendersAccessors(t *testing.T) {
	t.Parallel()

	generator, _ := generate(t)
	assert.Equal(t, []string{"widget.go", "trampolines.go"}, generator.Files())

	source := render(t, generator, "widget.go")
	for _, expected := range []string{
		"// Code generated by gobindgen. DO NOT EDIT.",
		"package gtk",
		"func (o *Widget) PropertyLabel() string {",
		"// Available since 3.10 (feature v3_10).",
		"func (o *Widget) SetPropertyLabel(label *string) {",
		"func (o *Widget) PropertyMode() Orientation {",
		"return *(*Orientation)(unsafe.Pointer(&raw))",
		"func (o *Widget) SetPropertyChild(child gobject.IsA[Widget]) {",
		"// Deprecated: since 3.6.",
		"func (o *Widget) ConnectPropertyLabelNotify(f func(*Widget)) gobject.SignalHandlerID {",
		`gobject.SignalConnect(o, "notify::label", widget_notify_label_trampoline, cgo.NewHandle(f))`,
	} {
		assert.Contains(t, source, expected)
	}
	assert.NotContains(t, source, "PropertyChild()")
	assert.NotContains(t, source, "SetPropertyMode")
}

func TestGenerator_RendersTrampolines(t *testing.T) {
	t.Parallel()

	generator, _ := generate(t)
	source := render(t, generator, "trampolines.go")

	assert.Contains(t, source, "func widget_notify_label_trampoline(this unsafe.Pointer, data uintptr) {")
	assert.Contains(t, source, "f := cgo.Handle(data).Value().(func(*Widget))")
	assert.Contains(t, source, "f((*Widget)(this))")
}

func TestGenerator_RenderUnknownFile(t *testing.T) {
	t.Parallel()

	generator, _ := generate(t)
	var buf bytes.Buffer
	assert.Error(t, generator.Render("button.go", &buf))
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	generator, _ := generate(t)
	output := filepath.Join(t.TempDir(), "gtk")
	require.NoError(t, generator.Generate(output))

	for _, name := range generator.Files() {
		content, err := os.ReadFile(filepath.Join(output, name))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "// Code generated by gobindgen. DO NOT EDIT."), name)
	}
}

func TestGenerator_TraitTrampolineCastsInstance(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse(`
[options]
library = "Gtk"

[[object]]
name = "Gtk.Widget"
generate_trait = true
`)
	require.NoError(t, err)

	generator, _ := generateWith(t, cfg)
	source := render(t, generator, "trampolines.go")

	assert.Contains(t, source, "f(gobject.Cast[Widget](this))")
	assert.NotContains(t, source, "f((*Widget)(this))")
}

func TestConvertThis_ReportsOwnerWithoutGoType(t *testing.T) {
	t.Parallel()

	_, env := generate(t)
	trampoline := &analysis.Trampoline{
		Name:          "varargs_notify_trampoline",
		Owner:         env.Library.Fundamental(library.FundamentalVarArgs),
		GenerateTrait: true,
	}

	_, err := convertThis(env, trampoline, jen.Id("Widget"))
	assert.Error(t, err)

	generator := NewGenerator("gtk", t.TempDir())
	_, err = generator.trampoline(env, trampoline)
	assert.Error(t, err)
}

func TestGenerator_DottedRuntimePackage(t *testing.T) {
	t.Parallel()

	cfg := config.Default("Gtk")
	cfg.Options.RuntimePackage = "example.com/glib.v2"

	generator, _ := generateWith(t, cfg)
	source := render(t, generator, "widget.go")

	assert.Contains(t, source, `"example.com/glib.v2"`)
	assert.NotContains(t, source, `"example.com/glib"`)
	assert.NotContains(t, source, "glib.v2.")
}
