package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	EnvConfigPath         = "TASKFLOW_CONFIG"
	appDirName            = "taskflow"
)

type Keymap struct {
	Quit          string `toml:"quit"`
	Dashboard     string `toml:"dashboard"`
	Tasks         string `toml:"tasks"`
	Analytics     string `toml:"analytics"`
	NextView      string `toml:"next_view"`
	Up            string `toml:"up"`
	Down          string `toml:"down"`
	Add           string `toml:"add"`
	Edit          string `toml:"edit"`
	Delete        string `toml:"delete"`
	Toggle        string `toml:"toggle"`
	AddSubtask    string `toml:"add_subtask"`
	SubtaskPrev   string `toml:"subtask_prev"`
	SubtaskNext   string `toml:"subtask_next"`
	ToggleSubtask string `toml:"toggle_subtask"`
	AddCategory   string `toml:"add_category"`
	Search        string `toml:"search"`
	CyclePriority string `toml:"cycle_priority"`
	CycleCategory string `toml:"cycle_category"`
	CycleStatus   string `toml:"cycle_status"`
	ClearFilter   string `toml:"clear_filter"`
	Confirm       string `toml:"confirm"`
	Cancel        string `toml:"cancel"`
}

type Category struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Color string `toml:"color"`
	Icon  string `toml:"icon"`
}

type Config struct {
	DefaultView   string     `toml:"default_view"`
	DefaultFilter string     `toml:"default_filter"`
	LogFile       string     `toml:"log_file"`
	Seed          bool       `toml:"seed"`
	Categories    []Category `toml:"categories"`
	Keys          Keymap     `toml:"keys"`
}

// ResolveConfigPath picks the config file: $TASKFLOW_CONFIG if set, else
// config.toml in the user config directory, else the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there first if
// the file does not exist. Values missing from the file keep their defaults.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, fmt.Errorf("write default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func Default() Config {
	return Config{
		DefaultView:   "dashboard",
		DefaultFilter: "all",
		Seed:          true,
		Keys: Keymap{
			Quit:          "q",
			Dashboard:     "1",
			Tasks:         "2",
			Analytics:     "3",
			NextView:      "tab",
			Up:            "k",
			Down:          "j",
			Add:           "a",
			Edit:          "e",
			Delete:        "d",
			Toggle:        " ",
			AddSubtask:    "s",
			SubtaskPrev:   "h",
			SubtaskNext:   "l",
			ToggleSubtask: "x",
			AddCategory:   "C",
			Search:        "/",
			CyclePriority: "p",
			CycleCategory: "c",
			CycleStatus:   "f",
			ClearFilter:   "g",
			Confirm:       "enter",
			Cancel:        "esc",
		},
	}
}
