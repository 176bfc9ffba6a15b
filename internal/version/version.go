// Package version models library versions used to gate generated bindings.
//
// A nil *Version means "no version specified". Such a version compares as the
// minimum, so a binding without a version is available everywhere.
package version

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
	"github.com/ygrebnov/errorc"

	"gobindgen/internal/errors"
)

type Version struct {
	raw *goversion.Version
}

// Parse parses a dotted version such as "3.10" or "2.56.1".
func Parse(s string) (*Version, error) {
	raw, err := goversion.NewVersion(s)
	if err != nil {
		return nil, errorc.With(
			errors.ErrInvalidVersion,
			errorc.String(errors.ErrorFieldVersion, s),
			errorc.Error(errors.ErrorFieldCause, err),
		)
	}

	return &Version{raw: raw}, nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) *Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return v
}

func (v *Version) String() string {
	if v == nil || v.raw == nil {
		return ""
	}

	return v.raw.Original()
}

// Feature returns the conventional feature name for the version, e.g. "v3_10".
func (v *Version) Feature() string {
	if v == nil || v.raw == nil {
		return ""
	}

	segments := v.raw.Segments()
	if len(segments) > 2 && segments[2] != 0 {
		return fmt.Sprintf("v%d_%d_%d", segments[0], segments[1], segments[2])
	}

	return fmt.Sprintf("v%d_%d", segments[0], segments[1])
}

func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*v = *parsed
	return nil
}

// Compare orders versions with nil as the minimum.
func Compare(a, b *Version) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	return a.raw.Compare(b.raw)
}

func LessOrEqual(a, b *Version) bool {
	return Compare(a, b) <= 0
}

// Min returns the smallest non-nil version, or nil if every argument is nil.
func Min(versions ...*Version) *Version {
	var min *Version
	for _, v := range versions {
		if v == nil {
			continue
		}
		if min == nil || Compare(v, min) < 0 {
			min = v
		}
	}

	return min
}

// Max returns the greater of two versions.
func Max(a, b *Version) *Version {
	if Compare(a, b) >= 0 {
		return a
	}

	return b
}
