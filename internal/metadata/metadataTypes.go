package metadata

import "gobindgen/internal/nameutil"

// TypeMethods lists the methods a metadata type definition declares.
type TypeMethods struct {
	Namespace string
	Name      string
	Methods   []string
}

// RegistryNames returns the method names in the snake case used by the
// introspection model, e.g. "GetLabel" -> "get_label".
func (t TypeMethods) RegistryNames() []string {
	names := make([]string, 0, len(t.Methods))
	for _, method := range t.Methods {
		names = append(names, nameutil.ToSnake(method))
	}

	return names
}
