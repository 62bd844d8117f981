package store

import (
	"testing"

	"github.com/nakachan-ing/zentasks/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTheme(t *testing.T) {
	kv := NewMemoryKV("zentasks")
	keys := NewKeys("zentasks")

	assert.Equal(t, model.ThemeLight, LoadTheme(kv, keys))

	next, err := ToggleTheme(kv, keys)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeDark, next)
	assert.Equal(t, model.ThemeDark, LoadTheme(kv, keys))

	next, err = ToggleTheme(kv, keys)
	require.NoError(t, err)
	assert.Equal(t, model.ThemeLight, next)

	assert.ErrorIs(t, SaveTheme(kv, keys, "sepia"), model.ErrInvalidInput)

	require.NoError(t, kv.Set(keys.Theme, `"sepia"`))
	assert.Equal(t, model.ThemeLight, LoadTheme(kv, keys))
}

func TestToggleTheme_WriteFailureStillToggles(t *testing.T) {
	next, err := ToggleTheme(failingKV{NewMemoryKV("zentasks")}, NewKeys("zentasks"))
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Equal(t, model.ThemeDark, next)
}
