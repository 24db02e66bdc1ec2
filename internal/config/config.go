package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the application configuration
type Config struct {
	Split   SplitConfig   `json:"split"`
	Cleanup CleanupConfig `json:"cleanup"`
	Output  OutputConfig  `json:"output"`
}

// SplitConfig holds configuration for the tile splitter
type SplitConfig struct {
	// OverlapRatio is the overlap band as a fraction of each image
	// dimension, 0 to 0.5.
	OverlapRatio    float64 `json:"overlap_ratio"`
	GenerateCenter  bool    `json:"generate_center"`
	RequireFullBBox bool    `json:"require_full_bbox"`
	KeepOriginal    bool    `json:"keep_original"`
}

// CleanupConfig holds configuration for the cleanup tool
type CleanupConfig struct {
	// KeepOriginal selects removal of derived tiles instead of originals.
	KeepOriginal bool `json:"keep_original"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	// Quality is the JPEG/WebP encode quality for tile images (1-100).
	Quality      int  `json:"quality"`
	DebugOverlay bool `json:"debug_overlay"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Split: SplitConfig{
			OverlapRatio:    0.1,
			GenerateCenter:  false,
			RequireFullBBox: false,
			KeepOriginal:    true,
		},
		Cleanup: CleanupConfig{
			KeepOriginal: false,
		},
		Output: OutputConfig{
			Quality:      95,
			DebugOverlay: false,
		},
	}
}

// LoadFromFile loads configuration from a JSON file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Split.OverlapRatio < 0 || c.Split.OverlapRatio > 0.5 {
		return fmt.Errorf("split.overlap_ratio must be between 0 and 0.5")
	}

	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "yolo-tiler", "config.json")
}
