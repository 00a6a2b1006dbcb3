package config

import (
	"fmt"
	"os"
	"path/filepath"

	"liturgi/internal/logger"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Output   OutputConfig   `toml:"output"`
	Mapping  MappingConfig  `toml:"mapping"`
	Hymns    HymnsConfig    `toml:"hymns"`
	UI       UIConfig       `toml:"ui"`
}

type ScheduleConfig struct {
	File       string `toml:"file"`
	Sheet      string `toml:"sheet"`
	DateColumn string `toml:"date_column"`
}

type OutputConfig struct {
	Directory  string `toml:"directory"`
	NamePrefix string `toml:"name_prefix"`
}

type MappingConfig struct {
	File string `toml:"file"`
}

type HymnsConfig struct {
	Database string `toml:"database"`
}

type UIConfig struct {
	RowsPerPage int `toml:"rows_per_page"`
}

// LoadConfig loads configuration from the specified config file path
func LoadConfig(configPath string) (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Create configs directory if it doesn't exist
		configDir := filepath.Dir(configPath)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %v", err)
		}

		// Create default config file
		defaultConfig := defaults()
		err = SaveConfig(configPath, defaultConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create default config: %v", err)
		}

		logger.Info("Created default config file", "path", configPath)
		return defaultConfig, nil
	}

	// Load existing config
	var config Config
	_, err := toml.DecodeFile(configPath, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %v", configPath, err)
	}

	// Set defaults if missing
	if config.Schedule.File == "" {
		config.Schedule.File = "Jadwal Liturgi.xlsx"
	}
	if config.Schedule.Sheet == "" {
		config.Schedule.Sheet = "LITURGI INDUK"
	}
	if config.Schedule.DateColumn == "" {
		config.Schedule.DateColumn = "Tanggal"
	}
	if config.Output.Directory == "" {
		config.Output.Directory = "."
	}
	if config.Output.NamePrefix == "" {
		config.Output.NamePrefix = "Liturgi"
	}
	if config.Mapping.File == "" {
		config.Mapping.File = filepath.Join("data", "property_mapping.json")
	}
	if config.Hymns.Database == "" {
		config.Hymns.Database = filepath.Join("data", "hymns.sqlite3")
	}
	if config.UI.RowsPerPage == 0 {
		config.UI.RowsPerPage = 15
	}

	logger.Info("Loaded configuration", "path", configPath)
	return &config, nil
}

// SaveConfig saves configuration to the specified config file path
func SaveConfig(configPath string, config *Config) error {
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	err = encoder.Encode(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %v", err)
	}

	logger.Info("Saved configuration", "path", configPath)
	return nil
}

func defaults() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			File:       "Jadwal Liturgi.xlsx",
			Sheet:      "LITURGI INDUK",
			DateColumn: "Tanggal",
		},
		Output: OutputConfig{
			Directory:  ".",
			NamePrefix: "Liturgi",
		},
		Mapping: MappingConfig{
			File: filepath.Join("data", "property_mapping.json"),
		},
		Hymns: HymnsConfig{
			Database: filepath.Join("data", "hymns.sqlite3"),
		},
		UI: UIConfig{
			RowsPerPage: 15,
		},
	}
}
