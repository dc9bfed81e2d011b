// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for roomview.
//
// Configuration is TOML, with sensible defaults, environment variable
// overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - RedactionConfig: Redaction policy selection
//   - TranscriptConfig: Persistent transcript settings
//   - UIConfig: Layout and theme settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (ROOMVIEW_*)
//   - ~/.roomview/config.toml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	policy := cfg.Redaction.Policy
//	theme := cfg.UI.Theme
package config
