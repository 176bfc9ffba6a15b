package analysis

import (
	"sort"

	"gobindgen/internal/version"
)

// Symbol is an identifier generated code refers to. A symbol without a name
// stands for the package import itself.
type Symbol struct {
	Package string
	Name    string
}

func (s Symbol) String() string {
	if s.Name == "" {
		return s.Package
	}

	return s.Package + "." + s.Name
}

// Well-known symbols outside the runtime package.
var (
	SymbolUnsafe    = Symbol{Package: "unsafe"}
	SymbolCgoHandle = Symbol{Package: "runtime/cgo", Name: "Handle"}
)

// Requirement is an external symbol needed by generated code from Version on.
type Requirement struct {
	Symbol  Symbol
	Version *version.Version
}

// Requirements is the ordered list of symbols one analysis step needs.
type Requirements []Requirement

func (reqs *Requirements) Add(symbol Symbol, v *version.Version) {
	*reqs = append(*reqs, Requirement{Symbol: symbol, Version: v})
}

func (reqs *Requirements) AddAll(symbols []Symbol, v *version.Version) {
	for _, symbol := range symbols {
		reqs.Add(symbol, v)
	}
}

// Imports aggregates requirements, keeping the lowest version per symbol.
type Imports struct {
	versions map[Symbol]*version.Version
}

func NewImports() *Imports {
	return &Imports{versions: make(map[Symbol]*version.Version)}
}

func (imports *Imports) Add(symbol Symbol, v *version.Version) {
	current, found := imports.versions[symbol]
	if !found || version.Compare(v, current) < 0 {
		imports.versions[symbol] = v
	}
}

func (imports *Imports) Merge(reqs Requirements) {
	for _, req := range reqs {
		imports.Add(req.Symbol, req.Version)
	}
}

func (imports *Imports) Has(symbol Symbol) bool {
	_, found := imports.versions[symbol]
	return found
}

func (imports *Imports) Len() int {
	return len(imports.versions)
}

// All returns every requirement sorted by symbol.
func (imports *Imports) All() []Requirement {
	all := make([]Requirement, 0, len(imports.versions))
	for symbol, v := range imports.versions {
		all = append(all, Requirement{Symbol: symbol, Version: v})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Symbol.String() < all[j].Symbol.String() })

	return all
}
