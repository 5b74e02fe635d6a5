package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// LayoutConfig fixes the number of inputs per group.
type LayoutConfig struct {
	DigitalInputs     int `json:"digitalInputs"`
	AnalogInputs      int `json:"analogInputs,omitempty"`
	TouchscreenInputs int `json:"touchscreenInputs,omitempty"`
}

// MIDIConfig selects the optional real MIDI ports. Empty names disable the
// corresponding side.
type MIDIConfig struct {
	InPort   string `json:"inPort,omitempty"`
	OutPort  string `json:"outPort,omitempty"`
	BaseNote uint8  `json:"baseNote,omitempty"` // input note mapped to button 0
}

// Config is the main configuration structure
type Config struct {
	Layout       LayoutConfig `json:"layout"`
	MIDI         MIDIConfig   `json:"midi,omitempty"`
	DatabaseFile string       `json:"databaseFile,omitempty"`
	Chromatic    bool         `json:"chromatic,omitempty"`
	Keys         string       `json:"keys,omitempty"` // monitor key row, one rune per digital input
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Layout: LayoutConfig{
			DigitalInputs:     10,
			AnalogInputs:      4,
			TouchscreenInputs: 4,
		},
		MIDI: MIDIConfig{
			BaseNote: 48,
		},
		Chromatic: true,
		Keys:      "asdfghjkl;",
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-deck"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DatabasePath returns the path of the persisted database, honoring the
// configured override.
func (c *Config) DatabasePath() (string, error) {
	if c.DatabaseFile != "" {
		return c.DatabaseFile, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "database.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Layout.DigitalInputs <= 0 {
		cfg.Layout = DefaultConfig().Layout
	}
	if cfg.Keys == "" {
		cfg.Keys = DefaultConfig().Keys
	}

	return &cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
