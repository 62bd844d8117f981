package cmd

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nakachan-ing/zentasks/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFields_CoverEveryKeyOnce(t *testing.T) {
	seen := map[string]bool{}
	config := model.DefaultConfig()
	for _, f := range configFields {
		assert.False(t, seen[f.key], "duplicate key %s", f.key)
		seen[f.key] = true

		// writing back the current value is always accepted
		updated, err := setConfigValue(config, f.key, f.get(&config))
		require.NoError(t, err, f.key)
		assert.Equal(t, config, updated, f.key)
	}
}

func TestSetConfigValue(t *testing.T) {
	config := model.DefaultConfig()

	updated, err := setConfigValue(config, "alarm.volume", "0.8")
	require.NoError(t, err)
	assert.Equal(t, 0.8, updated.Alarm.Volume)
	assert.Equal(t, 0.5, config.Alarm.Volume, "input config is untouched")

	updated, err = setConfigValue(config, "alarm.rearm_on_edit", "true")
	require.NoError(t, err)
	assert.True(t, updated.Alarm.RearmOnEdit)

	tests := []struct {
		key   string
		value string
	}{
		{"alarm.volume", "loud"},
		{"alarm.volume", "1.5"},
		{"alarm.interval_seconds", "0"},
		{"alarm.sound", "maybe"},
		{"storage.backend", "tape"},
		{"notifications.permission", "always"},
		{"namespace", "my tasks"},
		{"colour", "blue"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			got, err := setConfigValue(config, tt.key, tt.value)
			assert.Error(t, err)
			assert.Equal(t, config, got)
		})
	}
}

func TestReadRawConfig_KeepsTilde(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	config, err := readRawConfig(path)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), config)

	require.NoError(t, os.WriteFile(path, []byte("data_dir: ~/tasks\n"), 0644))
	config, err = readRawConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "~/tasks", config.DataDir)
}

func TestConfigModel_EditAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m := newConfigModel(model.DefaultConfig(), path)

	press := func(key tea.KeyType) {
		m.Update(tea.KeyMsg{Type: key})
	}
	typeText := func(s string) {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	}

	// move to namespace and replace it
	press(tea.KeyDown)
	press(tea.KeyEnter)
	require.True(t, m.editing)
	m.input.SetValue("")
	typeText("work")
	press(tea.KeyEnter)
	assert.False(t, m.editing)
	assert.Equal(t, "work", m.config.Namespace)

	// invalid edits leave the value alone
	press(tea.KeyEnter)
	m.input.SetValue("")
	typeText("not valid!")
	press(tea.KeyEnter)
	assert.Equal(t, "work", m.config.Namespace)
	assert.Contains(t, m.status, "⚠️")

	for i := 0; i < len(configFields); i++ {
		press(tea.KeyDown)
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.saved)
	assert.FileExists(t, path)
	assert.Contains(t, m.View(), "Save & Exit")
}
