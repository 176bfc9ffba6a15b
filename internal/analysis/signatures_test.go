package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_OwnTypeThenDependencies(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	widget := mustFind(t, env, "Gtk", "Widget")
	button := mustFind(t, env, "Gtk", "Button")

	registry := env.Signatures.Registry(button)
	deps := env.Library.Deps(button)

	has, v := registry.HasFunction("get_mode", deps)
	require.True(t, has)
	assert.Equal(t, "1.0", v.String())

	has, v = registry.HasFunction("get_name", deps)
	require.True(t, has)
	assert.Equal(t, "2.12", v.String())

	has, _ = registry.HasFunction("get_mode", nil)
	assert.False(t, has)

	has, _ = env.Signatures.Registry(widget).HasFunction("get_mode", nil)
	assert.True(t, has)

	has, v = registry.HasFunction("get_nothing", deps)
	assert.False(t, has)
	assert.Nil(t, v)
}

func TestSignatureIndex_AddNames(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	widget := mustFind(t, env, "Gtk", "Widget")
	button := mustFind(t, env, "Gtk", "Button")

	env.Signatures.AddNames(widget, []string{"get_mode", "get_tooltip"})
	env.Signatures.AddNames(button, []string{"get_relief"})

	// Existing entries keep their version.
	has, v := env.Signatures.Registry(widget).HasFunction("get_mode", nil)
	require.True(t, has)
	assert.Equal(t, "1.0", v.String())

	has, v = env.Signatures.Registry(widget).HasFunction("get_tooltip", nil)
	require.True(t, has)
	assert.Nil(t, v)

	has, _ = env.Signatures.Registry(button).HasFunction("get_relief", nil)
	assert.True(t, has)
}

func TestSignaturesFor_HasReturn(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	signatures := env.Signatures[mustFind(t, env, "Gtk", "Widget")]
	require.Contains(t, signatures, "set_label")
	assert.False(t, signatures["set_label"].HasReturn)
	assert.Empty(t, signatures["set_label"].Parameters)
}
