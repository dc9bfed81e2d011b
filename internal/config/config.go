// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for roomview.
//
// Configuration lives in TOML, with sensible defaults, environment variable
// overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.roomview/config.toml
//   - Built-in defaults
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/roomview-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete roomview configuration.
type Config struct {
	// General settings
	Version string `toml:"version"`

	// UserID is the identifier the client runs as, e.g. "@self:example.org".
	UserID string `toml:"user_id"`

	// Room configuration
	Room RoomConfig `toml:"room"`

	// Redaction configuration
	Redaction RedactionConfig `toml:"redaction"`

	// Transcript (persistent log) configuration
	Transcript TranscriptConfig `toml:"transcript"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// RoomConfig contains per-room projection settings.
type RoomConfig struct {
	// DefaultRoom is the room opened on startup, e.g. "!abcdef:example.org".
	DefaultRoom string `toml:"default_room"`
	// HighlightWords are extra words that trigger a highlight on message
	// lines. The own nick is always included.
	HighlightWords []string `toml:"highlight_words"`
}

// RedactionConfig controls what happens to redacted lines.
type RedactionConfig struct {
	// Policy is one of "strikethrough", "notice", "delete".
	Policy string `toml:"policy"`
}

// TranscriptConfig controls the persistent transcript store.
type TranscriptConfig struct {
	// Enabled controls whether lines are persisted at all.
	Enabled bool `toml:"enabled"`
	// Path is the sqlite database file (empty = ~/.roomview/transcript.db).
	Path string `toml:"path"`
	// LogMembership persists join/part/kick/invite lines.
	LogMembership bool `toml:"log_membership"`
	// LogTopics persists topic change lines.
	LogTopics bool `toml:"log_topics"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme"`
	// ShowTimestamps displays a timestamp column in the transcript.
	ShowTimestamps bool `toml:"show_timestamps"`
	// RosterWidth is the width of the member sidebar in columns.
	RosterWidth int `toml:"roster_width"`
	// CompactMode uses a more compact layout.
	CompactMode bool `toml:"compact_mode"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		UserID:  "",

		Room: RoomConfig{
			DefaultRoom:    "",
			HighlightWords: nil,
		},

		Redaction: RedactionConfig{
			Policy: "strikethrough",
		},

		Transcript: TranscriptConfig{
			Enabled:       true,
			Path:          "",
			LogMembership: true,
			LogTopics:     true,
		},

		UI: UIConfig{
			Theme:          "dark",
			ShowTimestamps: true,
			RosterWidth:    20,
			CompactMode:    false,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the roomview configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".roomview"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// TranscriptPath resolves the transcript database path, applying the default
// when the configured path is empty.
func (c *Config) TranscriptPath() (string, error) {
	if c.Transcript.Path != "" {
		return c.Transcript.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "transcript.db"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file, falling back to defaults
// when the file is absent. Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := loadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path with full
// validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := loadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("load config from %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("decode TOML file: %w", err)
	}
	return nil
}

// fillDefaults fills in any missing values with defaults.
func (c *Config) fillDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Redaction.Policy == "" {
		c.Redaction.Policy = defaults.Redaction.Policy
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.RosterWidth == 0 {
		c.UI.RosterWidth = defaults.UI.RosterWidth
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file. The write is atomic and
// the file is created owner read/write only.
func SaveTOML(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# roomview configuration file")
	fmt.Fprintln(&buf, "# Generated by roomview - edit with care")
	fmt.Fprintln(&buf, "")

	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Validate redaction policy
	validPolicies := map[string]bool{"strikethrough": true, "notice": true, "delete": true}
	if !validPolicies[strings.ToLower(c.Redaction.Policy)] {
		errs = append(errs, ValidationError{
			Field:   "redaction.policy",
			Message: fmt.Sprintf("invalid policy '%s', must be one of: strikethrough, notice, delete", c.Redaction.Policy),
		})
	}

	// Validate UI theme
	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	// Validate roster width
	if c.UI.RosterWidth < 10 || c.UI.RosterWidth > 60 {
		errs = append(errs, ValidationError{
			Field:   "ui.roster_width",
			Message: fmt.Sprintf("roster_width must be 10-60, got %d", c.UI.RosterWidth),
		})
	}

	// Validate user identifier when set
	if c.UserID != "" && !strings.HasPrefix(c.UserID, "@") {
		errs = append(errs, ValidationError{
			Field:   "user_id",
			Message: fmt.Sprintf("user identifier must start with '@', got '%s'", c.UserID),
		})
	}

	// Validate room identifier when set
	if r := c.Room.DefaultRoom; r != "" && !strings.HasPrefix(r, "!") && !strings.HasPrefix(r, "#") {
		errs = append(errs, ValidationError{
			Field:   "room.default_room",
			Message: fmt.Sprintf("room identifier must start with '!' or '#', got '%s'", r),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - ROOMVIEW_USER: overrides user_id
//   - ROOMVIEW_ROOM: overrides room.default_room
//   - ROOMVIEW_REDACTION_POLICY: overrides redaction.policy
//   - ROOMVIEW_TRANSCRIPT: set to "0" or "false" to disable the transcript
//   - ROOMVIEW_TRANSCRIPT_PATH: overrides transcript.path
//   - ROOMVIEW_THEME: overrides ui.theme
//   - ROOMVIEW_ROSTER_WIDTH: overrides ui.roster_width
func (c *Config) ApplyEnvOverrides() {
	if user := os.Getenv("ROOMVIEW_USER"); user != "" {
		c.UserID = user
	}

	if room := os.Getenv("ROOMVIEW_ROOM"); room != "" {
		c.Room.DefaultRoom = room
	}

	if policy := os.Getenv("ROOMVIEW_REDACTION_POLICY"); policy != "" {
		c.Redaction.Policy = policy
	}

	if transcript := os.Getenv("ROOMVIEW_TRANSCRIPT"); transcript != "" {
		c.Transcript.Enabled = transcript != "0" && strings.ToLower(transcript) != "false"
	}

	if path := os.Getenv("ROOMVIEW_TRANSCRIPT_PATH"); path != "" {
		c.Transcript.Path = path
	}

	if theme := os.Getenv("ROOMVIEW_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	if width := os.Getenv("ROOMVIEW_ROSTER_WIDTH"); width != "" {
		if n, err := strconv.Atoi(width); err == nil {
			c.UI.RosterWidth = n
		}
	}
}
