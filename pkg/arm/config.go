package arm

import (
	"encoding/json"
	"os"
)

const DefaultConfigFile = "scarabot.json"

// Config holds the arm configuration
type Config struct {
	Port        string      `json:"port"`
	MovesFile   string      `json:"moves_file"`
	StepDelayMs int         `json:"step_delay_ms"`
	Calibration Calibration `json:"calibration,omitempty"`
}

// DefaultConfig returns a config with the stock moves file, pacing, and
// calibration. The port is left empty until setup fills it in.
func DefaultConfig() *Config {
	return &Config{
		MovesFile:   "moves.txt",
		StepDelayMs: 100,
		Calibration: DefaultCalibration(),
	}
}

// IsCalibrated returns true if the config has calibration data
func (c *Config) IsCalibrated() bool {
	return len(c.Calibration) > 0
}

// LoadConfig loads configuration from the default config file
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.StepDelayMs <= 0 {
		cfg.StepDelayMs = 100
	}
	if cfg.Calibration == nil {
		cfg.Calibration = DefaultCalibration()
	}
	return &cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the default config file exists
func ConfigExists() bool {
	_, err := os.Stat(DefaultConfigFile)
	return err == nil
}
