// Package nameutil converts introspection names into Go identifiers.
package nameutil

import (
	"go/token"
	"strings"
	"unicode"
)

// SignalToSnake converts a signal or property name to snake case,
// e.g. "has-focus" -> "has_focus", "notify::label" -> "notify__label".
func SignalToSnake(name string) string {
	return strings.NewReplacer("-", "_", ":", "_").Replace(name)
}

// predeclared identifiers that would shadow builtins when used as parameter names.
var predeclared = map[string]bool{
	"any": true, "append": true, "bool": true, "byte": true, "cap": true, "clear": true,
	"close": true, "complex": true, "copy": true, "delete": true, "error": true,
	"false": true, "float32": true, "float64": true, "imag": true, "int": true,
	"int8": true, "int16": true, "int32": true, "int64": true, "iota": true, "len": true,
	"make": true, "max": true, "min": true, "new": true, "nil": true, "panic": true,
	"print": true, "println": true, "real": true, "recover": true, "rune": true,
	"string": true, "true": true, "uint": true, "uint8": true, "uint16": true,
	"uint32": true, "uint64": true, "uintptr": true,
}

// MangleKeywords appends an underscore to Go keywords and predeclared identifiers.
func MangleKeywords(name string) string {
	if token.IsKeyword(name) || predeclared[name] {
		return name + "_"
	}

	return name
}

// ToPascal converts a snake, kebab or colon separated name to PascalCase.
func ToPascal(s string) string {
	var b strings.Builder
	nextUpper := true
	for _, r := range s {
		if r == '-' || r == '_' || r == ':' {
			nextUpper = true
			continue
		}
		if nextUpper {
			b.WriteRune(unicode.ToUpper(r))
			nextUpper = false
		} else {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// ToSnake converts a PascalCase or camelCase name to snake case. A run of
// capitals is kept together, e.g. "GetUTF8Name" -> "get_utf8_name".
func ToSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteRune('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
