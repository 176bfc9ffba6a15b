package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/require"

	"gobindgen/internal/config"
	"gobindgen/internal/library"
	"gobindgen/internal/version"
)

const gioFixture = `
namespace: Gio
types:
  - name: File
    kind: interface
`

const gtkFixture = `
namespace: Gtk
types:
  - name: Orientation
    kind: enumeration
  - name: StateFlags
    kind: flags
  - name: Border
    kind: record
    boxed: true
  - name: Buildable
    kind: interface
    functions:
      - name: get_name
        version: "2.12"
  - name: Widget
    kind: class
    implements: [Buildable]
    version: "3.0"
    functions:
      - name: get_mode
        version: "1.0"
      - name: set_label
        version: "3.20"
    properties:
      - {name: active, type: gboolean, readable: true, writable: true}
      - {name: mode, type: Orientation, readable: true, version: "2.0"}
      - {name: child, type: Widget, readable: true, writable: true}
      - {name: name, type: utf8, readable: true, writable: true, version: "3.0"}
      - {name: children, type: "list:Widget", readable: true, writable: true}
      - {name: flags, type: StateFlags, readable: true, writable: true, construct_only: true}
      - {name: border, type: Border, writable: true}
      - {name: label, type: utf8, readable: true, writable: true, version: "3.10"}
      - {name: old, type: gint, readable: true, deprecated_version: "3.2"}
      - {name: secret, type: gint, readable: true, writable: true}
      - {name: type, type: gint, writable: true}
  - name: Button
    kind: class
    parent: Widget
    properties:
      - {name: file, type: Gio.File, readable: true, writable: true, version: "3.12"}
      - {name: use-underline, type: gboolean, readable: true, writable: true, version: "3.6"}
  - name: Requisition
    kind: record
`

const gtkConfig = `
[options]
library = "Gtk"
min_cfg_version = "3.4"
deprecate_by_min_version = true

[[object]]
name = "Gtk.Widget"

  [[object.property]]
  name = "secret"
  ignore = true

[[object]]
name = "Gtk.Button"
generate_trait = true

  [[object.property]]
  pattern = "use-.*"
  version = "3.8"

  [[object.property]]
  name = "use-underline"
  version = "3.2"
`

func newTestEnv(t *testing.T) *Env {
	t.Helper()

	lib := library.New()
	_, err := lib.Load(strings.NewReader(gioFixture))
	require.NoError(t, err)
	_, err = lib.Load(strings.NewReader(gtkFixture))
	require.NoError(t, err)

	cfg, err := config.Parse(gtkConfig)
	require.NoError(t, err)

	return NewEnv(lib, cfg, "Gtk")
}

func mustFind(t *testing.T, env *Env, namespace, name string) library.TypeID {
	t.Helper()

	id, found := env.Library.FindType(namespace, name)
	require.True(t, found, "%s.%s", namespace, name)
	return id
}

func analyzeType(t *testing.T, env *Env, name string) Result {
	t.Helper()

	result, err := AnalyzeObject(env, mustFind(t, env, "Gtk", name), NewTrampolines())
	require.NoError(t, err)
	return result
}

func funcNames(props []*Property) []string {
	names := make([]string, 0, len(props))
	for _, p := range props {
		names = append(names, p.FuncName)
	}
	return names
}

func findProperty(props []*Property, funcName string) *Property {
	for _, p := range props {
		if p.FuncName == funcName {
			return p
		}
	}
	return nil
}

func signalNames(signals []*SignalInfo) []string {
	names := make([]string, 0, len(signals))
	for _, s := range signals {
		names = append(names, s.SignalName)
	}
	return names
}

// summarize renders a result to comparable text.
func summarize(result Result) []string {
	lines := make([]string, 0)
	for _, p := range result.Properties {
		bound := ""
		if p.Bound != nil {
			bound = p.Bound.TypeStr
		}
		lines = append(lines, fmt.Sprintf("%s get=%t var=%s conv=%s default=%s out=%s in=%s nullable=%t v=%s dv=%s bound=%s",
			p.FuncName, p.IsGet, p.VarName, p.Conversion, renderCode(p.DefaultValue), p.GetOutRefMode, p.SetInRefMode,
			p.Nullable, p.Version, p.DeprecatedVersion, bound))
	}
	for _, s := range result.NotifySignals {
		lines = append(lines, fmt.Sprintf("%s %s %s v=%s", s.ConnectName, s.SignalName, s.TrampolineName, s.Version))
	}
	for _, r := range result.Imports.All() {
		lines = append(lines, fmt.Sprintf("import %s v=%s", r.Symbol, r.Version))
	}
	for _, d := range result.Diagnostics {
		lines = append(lines, "diag "+d.Error())
	}
	return lines
}

// renderCode returns the source text of generated code.
func renderCode(code jen.Code) string {
	if code == nil {
		return ""
	}

	return fmt.Sprintf("%#v", code)
}

func importVersion(imports *Imports, symbol Symbol) (*version.Version, bool) {
	for _, req := range imports.All() {
		if req.Symbol == symbol {
			return req.Version, true
		}
	}

	return nil, false
}
