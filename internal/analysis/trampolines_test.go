package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bgerrors "gobindgen/internal/errors"
	"gobindgen/internal/library"
	"gobindgen/internal/version"
)

func noneReturn(env *Env) library.Parameter {
	return library.Parameter{Type: env.Library.Fundamental(library.FundamentalNone), Direction: library.DirectionReturn}
}

func TestTrampolines_SynthesizeDeduplicates(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	button := mustFind(t, env, "Gtk", "Button")
	trampolines := NewTrampolines()
	signal := &library.Signal{Name: "notify::use-underline", Ret: noneReturn(env)}

	name, used, err := trampolines.Synthesize(env, signal, button, true, TrampolineContext{Version: version.MustParse("3.8")})
	require.NoError(t, err)
	assert.Equal(t, "button_notify_use_underline_trampoline", name)
	assert.Empty(t, used)

	again, _, err := trampolines.Synthesize(env, signal, button, true, TrampolineContext{Version: version.MustParse("3.6")})
	require.NoError(t, err)
	assert.Equal(t, name, again)

	all := trampolines.All()
	require.Len(t, all, 1)
	assert.Equal(t, "3.6", all[0].Version.String())
	assert.True(t, all[0].GenerateTrait)
}

func TestTrampolines_ForeignParameterTypesAreUsed(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	file := mustFind(t, env, "Gio", "File")
	signal := &library.Signal{
		Name:       "opened",
		Parameters: []library.Parameter{{Name: "file", Type: file}},
		Ret:        noneReturn(env),
	}

	_, used, err := NewTrampolines().Synthesize(env, signal, mustFind(t, env, "Gtk", "Widget"), false, TrampolineContext{})
	require.NoError(t, err)
	assert.Equal(t, []Symbol{{Package: "gobindgen/runtime/gio", Name: "File"}}, used)
}

func TestTrampolines_Failures(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	widget := mustFind(t, env, "Gtk", "Widget")
	ids := typeOfEveryKind(t, env)
	varargs := env.Library.Fundamental(library.FundamentalVarArgs)

	tests := []struct {
		name   string
		owner  library.TypeID
		signal *library.Signal
		want   error
	}{
		{
			name:   "owner is not an object",
			owner:  mustFind(t, env, "Gtk", "Requisition"),
			signal: &library.Signal{Name: "notify::x", Ret: noneReturn(env)},
			want:   bgerrors.ErrUnknownOwner,
		},
		{
			name:  "callback parameter",
			owner: widget,
			signal: &library.Signal{
				Name:       "x",
				Parameters: []library.Parameter{{Type: ids[library.KindCallback]}},
				Ret:        noneReturn(env),
			},
			want: bgerrors.ErrUnsupportedClosure,
		},
		{
			name:  "varargs parameter",
			owner: widget,
			signal: &library.Signal{
				Name:       "x",
				Parameters: []library.Parameter{{Type: varargs}},
				Ret:        noneReturn(env),
			},
			want: bgerrors.ErrUnsupportedClosure,
		},
		{
			name:   "unrenderable return",
			owner:  widget,
			signal: &library.Signal{Name: "x", Ret: library.Parameter{Type: ids[library.KindFunction]}},
			want:   bgerrors.ErrUnsupportedClosure,
		},
	}
	for _, tt := range tests {
		trampolines := NewTrampolines()
		_, _, err := trampolines.Synthesize(env, tt.signal, tt.owner, false, TrampolineContext{})
		require.Error(t, err, tt.name)
		assert.True(t, errors.Is(err, tt.want), tt.name)
		assert.Empty(t, trampolines.All(), tt.name)
	}
}
