package store

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/nakachan-ing/zentasks/internal/model"
	"gopkg.in/yaml.v3"
)

const configEnv = "ZENTASKS_CONFIG"

// GetConfigPath resolves config.yaml: $ZENTASKS_CONFIG, else the OS config dir
// (%AppData% on Windows), else ~/.zentasks.
func GetConfigPath() (string, error) {
	if custom := os.Getenv(configEnv); custom != "" {
		return expandHomeDir(custom), nil
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "zentasks", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	fallback := filepath.Join(homeDir, ".zentasks", "config.yaml")
	log.Printf("⚠️ No user config directory, using fallback: %s", fallback)
	return fallback, nil
}

// expandHomeDir turns a leading ~ into the home directory.
func expandHomeDir(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~`+string(filepath.Separator)) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("⚠️ Failed to get home directory: %v", err)
		return path
	}
	return filepath.Join(home, path[1:])
}

// LoadConfig reads config.yaml over the defaults. A missing file is not an error:
// the defaults are used so the tool works before `zentasks init`.
func LoadConfig() (*model.Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadConfigFile(configPath)
}

func LoadConfigFile(configPath string) (*model.Config, error) {
	config := model.DefaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config file (%s): %w", configPath, err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", configPath, err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	for _, p := range []*string{&config.DataDir, &config.Storage.SQLitePath, &config.Notifications.Icon} {
		*p = expandHomeDir(*p)
	}
	return &config, nil
}

// SaveConfig writes config to the resolved config path, creating its directory.
func SaveConfig(config model.Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveConfigFile(configPath, config)
}

// SaveConfigFile validates config and replaces configPath with it in one rename.
func SaveConfigFile(configPath string, config model.Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	body, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("❌ Failed to generate config: %w", err)
	}

	// 同じディレクトリに書いてから rename する
	if err := NewFileKV(filepath.Dir(configPath), "").writeFile(filepath.Base(configPath), configHeader+string(body)); err != nil {
		return fmt.Errorf("❌ Failed to write config file: %w", err)
	}
	return nil
}

const configHeader = "# zentasks configuration. Edit with `zentasks config` or `zentasks config set`.\n"
