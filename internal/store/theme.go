package store

import (
	"encoding/json"
	"fmt"

	"github.com/nakachan-ing/zentasks/internal/model"
)

// LoadTheme returns the persisted theme, light when absent or malformed.
func LoadTheme(kv KV, keys Keys) model.Theme {
	raw, ok, err := kv.Get(keys.Theme)
	if err != nil || !ok {
		return model.ThemeLight
	}
	var theme model.Theme
	if err := json.Unmarshal([]byte(raw), &theme); err != nil || !theme.Valid() {
		return model.ThemeLight
	}
	return theme
}

func SaveTheme(kv KV, keys Keys, theme model.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("unknown theme %q: %w", theme, model.ErrInvalidInput)
	}
	return SaveJson(kv, keys.Theme, theme)
}

// ToggleTheme flips light/dark and returns the new theme. The returned theme is
// valid for the session even if the write failed.
func ToggleTheme(kv KV, keys Keys) (model.Theme, error) {
	next := LoadTheme(kv, keys).Toggle()
	return next, SaveTheme(kv, keys, next)
}
