/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nakachan-ing/zentasks/internal/model"
	"github.com/nakachan-ing/zentasks/internal/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accentColor))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(accentColor))
	hintStyle     = lipgloss.NewStyle().Faint(true)
)

// configField is one editable config.yaml entry, addressed by its YAML path.
type configField struct {
	key string
	get func(c *model.Config) string
	set func(c *model.Config, v string) error
}

func stringField(key string, ptr func(c *model.Config) *string) configField {
	return configField{
		key: key,
		get: func(c *model.Config) string { return *ptr(c) },
		set: func(c *model.Config, v string) error { *ptr(c) = v; return nil },
	}
}

func boolField(key string, ptr func(c *model.Config) *bool) configField {
	return configField{
		key: key,
		get: func(c *model.Config) string { return strconv.FormatBool(*ptr(c)) },
		set: func(c *model.Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s expects true or false", key)
			}
			*ptr(c) = b
			return nil
		},
	}
}

var configFields = []configField{
	stringField("data_dir", func(c *model.Config) *string { return &c.DataDir }),
	stringField("namespace", func(c *model.Config) *string { return &c.Namespace }),
	stringField("editor", func(c *model.Config) *string { return &c.Editor }),
	stringField("storage.backend", func(c *model.Config) *string { return &c.Storage.Backend }),
	stringField("storage.sqlite_path", func(c *model.Config) *string { return &c.Storage.SQLitePath }),
	{
		key: "alarm.interval_seconds",
		get: func(c *model.Config) string { return strconv.Itoa(c.Alarm.IntervalSeconds) },
		set: func(c *model.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("alarm.interval_seconds expects a whole number")
			}
			c.Alarm.IntervalSeconds = n
			return nil
		},
	},
	boolField("alarm.sound", func(c *model.Config) *bool { return &c.Alarm.Sound }),
	{
		key: "alarm.volume",
		get: func(c *model.Config) string { return strconv.FormatFloat(c.Alarm.Volume, 'f', -1, 64) },
		set: func(c *model.Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("alarm.volume expects a number between 0 and 1")
			}
			c.Alarm.Volume = f
			return nil
		},
	},
	boolField("alarm.rearm_on_edit", func(c *model.Config) *bool { return &c.Alarm.RearmOnEdit }),
	boolField("notifications.enable", func(c *model.Config) *bool { return &c.Notifications.Enable }),
	stringField("notifications.permission", func(c *model.Config) *string { return &c.Notifications.Permission }),
	stringField("notifications.app_name", func(c *model.Config) *string { return &c.Notifications.AppName }),
	stringField("notifications.icon", func(c *model.Config) *string { return &c.Notifications.Icon }),
}

func lookupConfigField(key string) (configField, error) {
	for _, f := range configFields {
		if f.key == key {
			return f, nil
		}
	}
	return configField{}, fmt.Errorf("unknown config key %q: %w", key, model.ErrInvalidInput)
}

// setConfigValue applies v to a copy of config and keeps it only if the result validates.
func setConfigValue(config model.Config, key, v string) (model.Config, error) {
	field, err := lookupConfigField(key)
	if err != nil {
		return config, err
	}
	updated := config
	if err := field.set(&updated, strings.TrimSpace(v)); err != nil {
		return config, err
	}
	if err := updated.Validate(); err != nil {
		return config, err
	}
	return updated, nil
}

// readRawConfig loads config.yaml without expanding `~`, so edits write back what the user typed.
func readRawConfig(configPath string) (model.Config, error) {
	config := model.DefaultConfig()
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return config, nil
	} else if err != nil {
		return config, fmt.Errorf("❌ Failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("❌ Failed to parse YAML: %w", err)
	}
	return config, nil
}

// configModel is the bubbletea model of the interactive editor.
type configModel struct {
	cursor  int
	config  model.Config
	path    string
	status  string
	input   textinput.Model
	editing bool
	saved   bool
}

func newConfigModel(config model.Config, path string) *configModel {
	return &configModel{config: config, path: path, input: textinput.New()}
}

func (m *configModel) Init() tea.Cmd {
	return nil
}

func (m *configModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.editing {
		switch key.String() {
		case "enter":
			m.commit()
			m.editing = false
			m.input.Blur()
			return m, tea.ClearScreen
		case "esc":
			m.editing = false
			m.input.Blur()
		default:
			m.input, _ = m.input.Update(msg)
		}
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(configFields) {
			m.cursor++
		}
	case "enter":
		// the row after the fields is "Save & Exit"
		if m.cursor == len(configFields) {
			if err := store.SaveConfigFile(m.path, m.config); err != nil {
				m.status = "⚠️ " + err.Error()
				return m, nil
			}
			m.saved = true
			return m, tea.Quit
		}
		m.editing = true
		m.input.SetValue(configFields[m.cursor].get(&m.config))
		m.input.Focus()
	}
	return m, nil
}

func (m *configModel) commit() {
	updated, err := setConfigValue(m.config, configFields[m.cursor].key, m.input.Value())
	if err != nil {
		m.status = "⚠️ " + err.Error()
		return
	}
	m.config = updated
	m.status = "✅ " + configFields[m.cursor].key + " updated (not saved yet)"
}

func (m *configModel) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("📄 Configure zentasks") + "\n")
	s.WriteString(hintStyle.Render(m.path) + "\n\n")

	for i, field := range configFields {
		cursor := "  "
		line := fmt.Sprintf("%s: %s", field.key, field.get(&m.config))
		if m.cursor == i {
			cursor = "👉"
			line = selectedStyle.Render(line)
		}
		fmt.Fprintf(&s, "%s %s\n", cursor, line)
	}
	save := "💾 Save & Exit"
	if m.cursor == len(configFields) {
		fmt.Fprintf(&s, "👉 %s\n", selectedStyle.Render(save))
	} else {
		fmt.Fprintf(&s, "   %s\n", save)
	}

	if m.editing {
		s.WriteString("\n✏️  Editing: " + configFields[m.cursor].key + "\n")
		s.WriteString(m.input.View() + "\n")
		s.WriteString(hintStyle.Render("(Enter to apply, ESC to cancel)") + "\n")
	} else {
		s.WriteString("\n" + hintStyle.Render("⬆️⬇️ で移動, Enter で編集, Q で終了") + "\n")
	}
	if m.status != "" {
		s.WriteString("\n" + m.status + "\n")
	}
	return s.String()
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configure config.yaml interactively",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, err := store.GetConfigPath()
		if err != nil {
			log.Fatalf("❌ Failed to get config path: %v", err)
		}
		config, err := readRawConfig(configPath)
		if err != nil {
			log.Fatalf("%v", err)
		}

		final, err := tea.NewProgram(newConfigModel(config, configPath)).Run()
		if err != nil {
			log.Fatalf("❌ Error running TUI: %v", err)
		}
		if m, ok := final.(*configModel); ok && m.saved {
			fmt.Println("✅ Config saved to", configPath)
		}
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one config value, or all of them",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := store.GetConfigPath()
		if err != nil {
			return err
		}
		config, err := readRawConfig(configPath)
		if err != nil {
			return err
		}

		if len(args) == 1 {
			field, err := lookupConfigField(args[0])
			if err != nil {
				return err
			}
			fmt.Println(field.get(&config))
			return nil
		}
		for _, field := range configFields {
			fmt.Printf("%s: %s\n", field.key, field.get(&config))
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one config value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := store.GetConfigPath()
		if err != nil {
			return err
		}
		config, err := readRawConfig(configPath)
		if err != nil {
			return err
		}

		updated, err := setConfigValue(config, args[0], args[1])
		if err != nil {
			return err
		}
		if err := store.SaveConfigFile(configPath, updated); err != nil {
			return err
		}
		fmt.Printf("✅ %s = %s\n", args[0], args[1])
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print where config.yaml is read from",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, err := store.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(configPath)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
