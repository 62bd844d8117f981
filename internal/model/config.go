package model

import (
	"fmt"

	"github.com/asaskevich/govalidator"
)

type Config struct {
	DataDir   string `yaml:"data_dir" valid:"required"`
	Namespace string `yaml:"namespace" valid:"required,alphanum"`
	Editor    string `yaml:"editor"`
	Storage   struct {
		Backend    string `yaml:"backend" valid:"in(file|sqlite|memory)"`
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"storage"`
	Alarm struct {
		IntervalSeconds int     `yaml:"interval_seconds"`
		Sound           bool    `yaml:"sound"`
		Volume          float64 `yaml:"volume"`
		RearmOnEdit     bool    `yaml:"rearm_on_edit"`
	} `yaml:"alarm"`
	Notifications struct {
		Enable     bool   `yaml:"enable"`
		Permission string `yaml:"permission" valid:"in(default|granted|denied)"`
		AppName    string `yaml:"app_name"`
		Icon       string `yaml:"icon"`
	} `yaml:"notifications"`
}

func DefaultConfig() Config {
	var c Config
	c.DataDir = "~/.config/zentasks/data"
	c.Namespace = "zentasks"
	c.Editor = "vim"
	c.Storage.Backend = "file"
	c.Storage.SQLitePath = "~/.config/zentasks/zentasks.db"
	c.Alarm.IntervalSeconds = 1
	c.Alarm.Sound = true
	c.Alarm.Volume = 0.5
	c.Alarm.RearmOnEdit = false
	c.Notifications.Enable = true
	c.Notifications.Permission = "default"
	c.Notifications.AppName = "ZenTasks"
	return c
}

// Validate checks struct tags and the numeric ranges govalidator tags can't express.
func (c Config) Validate() error {
	if _, err := govalidator.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Alarm.IntervalSeconds < 1 {
		return fmt.Errorf("invalid config: alarm.interval_seconds must be at least 1")
	}
	if c.Alarm.Volume < 0 || c.Alarm.Volume > 1 {
		return fmt.Errorf("invalid config: alarm.volume must be between 0 and 1")
	}
	if c.Storage.Backend == "sqlite" && c.Storage.SQLitePath == "" {
		return fmt.Errorf("invalid config: storage.sqlite_path is required for the sqlite backend")
	}
	return nil
}
