/*
Package config manages TOML config for WordHunt.
*/
package config

import (
	"path/filepath"

	"github.com/bastiangx/wordhunt/internal/utils"
	"github.com/charmbracelet/log"
)

// FileName is the config file looked for in the user config dir.
const FileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Search  SearchConfig  `toml:"search"`
	Grid    GridConfig    `toml:"grid"`
	Dict    DictConfig    `toml:"dict"`
	Display DisplayConfig `toml:"display"`
	Score   ScoreConfig   `toml:"score"`
	Server  ServerConfig  `toml:"server"`
}

// SearchConfig tunes the word search.
type SearchConfig struct {
	MinWordLength int `toml:"min_word_length"`
	Workers       int `toml:"workers"`
}

// GridConfig is the board size letters are entered for.
type GridConfig struct {
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path string `toml:"path"`
}

// DisplayConfig controls terminal output.
type DisplayConfig struct {
	ReservedLines int  `toml:"reserved_lines"`
	ShowPaths     bool `toml:"show_paths"`
}

// ScoreConfig is the points table. Points[n] is the value of an n-letter
// word; words longer than the table earn the last entry plus ExtraLetter for
// every letter past it.
type ScoreConfig struct {
	Points      []int `toml:"points"`
	ExtraLetter int   `toml:"extra_letter"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit int `toml:"max_limit"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			MinWordLength: 3,
			Workers:       0,
		},
		Grid: GridConfig{
			Rows: 4,
			Cols: 4,
		},
		Dict: DictConfig{
			Path: "dictionary.txt",
		},
		Display: DisplayConfig{
			ReservedLines: 4,
			ShowPaths:     false,
		},
		Score: ScoreConfig{
			Points:      []int{0, 0, 0, 100, 400, 800, 1400, 1800, 2200},
			ExtraLetter: 400,
		},
		Server: ServerConfig{
			MaxLimit: 256,
		},
	}
}

// Sanitize replaces values that would break the search or the display with
// their defaults and logs what it changed.
func (c *Config) Sanitize() {
	def := DefaultConfig()
	if c.Search.MinWordLength < 1 {
		log.Warnf("search.min_word_length %d is invalid, using %d", c.Search.MinWordLength, def.Search.MinWordLength)
		c.Search.MinWordLength = def.Search.MinWordLength
	}
	if c.Search.Workers < 0 {
		c.Search.Workers = def.Search.Workers
	}
	if c.Grid.Rows < 1 || c.Grid.Cols < 1 {
		log.Warnf("grid size %dx%d is invalid, using %dx%d", c.Grid.Rows, c.Grid.Cols, def.Grid.Rows, def.Grid.Cols)
		c.Grid = def.Grid
	}
	if c.Dict.Path == "" {
		c.Dict.Path = def.Dict.Path
	}
	if c.Display.ReservedLines < 0 {
		c.Display.ReservedLines = def.Display.ReservedLines
	}
	if len(c.Score.Points) == 0 {
		c.Score.Points = def.Score.Points
	}
	if c.Server.MaxLimit < 1 {
		c.Server.MaxLimit = def.Server.MaxLimit
	}
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath(resolver *utils.PathResolver) string {
	return resolver.GetConfigPath(FileName)
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordhunt/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string, resolver *utils.PathResolver) (*Config, string) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}

	if resolver == nil {
		return DefaultConfig(), ""
	}
	defaultPath := GetDefaultConfigPath(resolver)
	config := InitConfig(defaultPath)
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath
}

// InitConfig loads config from file or creates default if missing. It never
// fails: anything unusable falls back to the built-in defaults.
func InitConfig(configPath string) *Config {
	configDir := filepath.Dir(configPath)
	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig()
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig()
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig()
	}
	return config
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	config.Sanitize()
	return config, nil
}

// tryPartialParse keeps whatever sections of a broken file still decode.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(section, &config.Search)
	}
	if section, ok := utils.ExtractSection(tempConfig, "grid"); ok {
		extractGridConfig(section, &config.Grid)
	}
	if section, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		if val, ok := utils.ExtractString(section, "path"); ok {
			config.Dict.Path = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "display"); ok {
		extractDisplayConfig(section, &config.Display)
	}
	if section, ok := utils.ExtractSection(tempConfig, "score"); ok {
		extractScoreConfig(section, &config.Score)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		if val, ok := utils.ExtractInt64(section, "max_limit"); ok {
			config.Server.MaxLimit = val
		}
	}
	config.Sanitize()
	return config, nil
}

func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.ExtractInt64(data, "min_word_length"); ok {
		search.MinWordLength = val
	}
	if val, ok := utils.ExtractInt64(data, "workers"); ok {
		search.Workers = val
	}
}

func extractGridConfig(data map[string]any, grid *GridConfig) {
	if val, ok := utils.ExtractInt64(data, "rows"); ok {
		grid.Rows = val
	}
	if val, ok := utils.ExtractInt64(data, "cols"); ok {
		grid.Cols = val
	}
}

func extractDisplayConfig(data map[string]any, display *DisplayConfig) {
	if val, ok := utils.ExtractInt64(data, "reserved_lines"); ok {
		display.ReservedLines = val
	}
	if val, ok := utils.ExtractBool(data, "show_paths"); ok {
		display.ShowPaths = val
	}
}

func extractScoreConfig(data map[string]any, score *ScoreConfig) {
	if val, ok := utils.ExtractIntSlice(data, "points"); ok {
		score.Points = val
	}
	if val, ok := utils.ExtractInt64(data, "extra_letter"); ok {
		score.ExtraLetter = val
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
