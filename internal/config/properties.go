package config

import (
	"github.com/dlclark/regexp2"
	"github.com/ygrebnov/errorc"

	"gobindgen/internal/errors"
	"gobindgen/internal/version"
)

// Property overrides the generation of every property it matches.
// Exactly one of Name and Pattern is set.
type Property struct {
	Name    string           `toml:"name"`
	Pattern string           `toml:"pattern"`
	Ignore  bool             `toml:"ignore"`
	Version *version.Version `toml:"version"`

	re *regexp2.Regexp
}

type Properties []*Property

func (p *Property) compile() error {
	if (p.Name == "") == (p.Pattern == "") {
		return errorc.With(
			errors.ErrInvalidOverride,
			errorc.String(errors.ErrorFieldProperty, p.Name),
			errorc.String(errors.ErrorFieldPattern, p.Pattern),
		)
	}
	if p.Pattern == "" {
		return nil
	}

	// Anchored so that "has-.*" does not match "can-has-focus".
	re, err := regexp2.Compile("^(?:"+p.Pattern+")$", regexp2.None)
	if err != nil {
		return errorc.With(
			errors.ErrInvalidPattern,
			errorc.String(errors.ErrorFieldPattern, p.Pattern),
			errorc.Error(errors.ErrorFieldCause, err),
		)
	}
	p.re = re

	return nil
}

// Matches reports whether the override applies to the named property.
func (p *Property) Matches(name string) bool {
	if p.re == nil {
		return p.Name == name
	}

	matched, err := p.re.MatchString(name)
	return err == nil && matched
}

func (properties Properties) compile() error {
	for _, p := range properties {
		if err := p.compile(); err != nil {
			return err
		}
	}

	return nil
}

// Matched returns every override applying to the named property, in declaration order.
func (properties Properties) Matched(name string) []*Property {
	matched := make([]*Property, 0)
	for _, p := range properties {
		if p.Matches(name) {
			matched = append(matched, p)
		}
	}

	return matched
}
