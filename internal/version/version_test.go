package version

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bgerrors "gobindgen/internal/errors"
)

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	_, err := Parse("not-a-version")
	require.Error(t, err)
	assert.True(t, errors.Is(err, bgerrors.ErrInvalidVersion))
	assert.Contains(t, err.Error(), "not-a-version")
}

func TestCompare_NilIsMinimum(t *testing.T) {
	t.Parallel()

	v1 := MustParse("1.0")
	v2 := MustParse("2.0")

	tests := []struct {
		name string
		a, b *Version
		want int
	}{
		{"both nil", nil, nil, 0},
		{"nil vs version", nil, v1, -1},
		{"version vs nil", v1, nil, 1},
		{"lower", v1, v2, -1},
		{"higher", v2, v1, 1},
		{"equal", v2, MustParse("2.0.0"), 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
		})
	}
}

func TestLessOrEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, LessOrEqual(nil, nil))
	assert.True(t, LessOrEqual(nil, MustParse("1.0")))
	assert.False(t, LessOrEqual(MustParse("1.0"), nil))
	assert.True(t, LessOrEqual(MustParse("3.8"), MustParse("3.10")))
}

func TestMin(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Min())
	assert.Nil(t, Min(nil, nil))
	assert.Equal(t, "2.4", Min(nil, MustParse("3.0"), MustParse("2.4")).String())
}

func TestFeature(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "v3_10", MustParse("3.10").Feature())
	assert.Equal(t, "v2_56_1", MustParse("2.56.1").Feature())
	assert.Equal(t, "v2_56", MustParse("2.56.0").Feature())
	assert.Equal(t, "", (*Version)(nil).Feature())
}

func TestUnmarshalText(t *testing.T) {
	t.Parallel()

	var v Version
	require.NoError(t, v.UnmarshalText([]byte("3.22")))
	assert.Equal(t, "3.22", v.String())

	require.Error(t, v.UnmarshalText([]byte("x.y")))
}
