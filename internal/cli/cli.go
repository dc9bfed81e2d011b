// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing for roomview.
package cli

import (
	"fmt"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI     Command = iota // interactive view (default)
	CmdReplay                 // print the demo transcript and exit
	CmdConfig                 // print the resolved configuration
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	Cmd Command

	// Global flags
	ConfigPath string // --config: explicit config file
	Room       string // --room: room identifier override
	User       string // --user: own user identifier override
	Policy     string // --policy: redaction policy override

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `roomview - chat room projection viewer

Roomview renders a chat room's event stream into a live transcript:
typed protocol events become display lines, a grouped member roster
and room metadata, with redactions rewriting history in place.

Usage:
  roomview                   Start the interactive view (default)
  roomview replay            Print the demo transcript and exit
  roomview config            Show the resolved configuration
  roomview version           Show version information
  roomview help              Show this help

Flags:
  --config <path>   Use an explicit config file
  --room <id>       Room identifier (e.g. !room:example.org)
  --user <id>       Own user identifier (e.g. @self:example.org)
  --policy <name>   Redaction policy: strikethrough, notice, delete

Environment:
  ROOMVIEW_USER, ROOMVIEW_ROOM, ROOMVIEW_REDACTION_POLICY,
  ROOMVIEW_TRANSCRIPT, ROOMVIEW_THEME override config file values.

Configuration: ~/.roomview/config.toml
`

// Usage returns the full help text.
func Usage() string {
	return usageText
}

// VersionString returns the one-line version banner.
func VersionString() string {
	return fmt.Sprintf("roomview %s (%s, built %s)", Version, GitCommit, BuildDate)
}

// =============================================================================
// PARSING
// =============================================================================

// Parse parses command-line arguments (without the program name).
func Parse(argv []string) (Args, error) {
	args := Args{Cmd: CmdTUI}

	i := 0
	for i < len(argv) {
		arg := argv[i]

		if !strings.HasPrefix(arg, "-") {
			break
		}

		name, value, hasValue := splitFlag(arg)
		switch name {
		case "--config", "--room", "--user", "--policy":
			if !hasValue {
				i++
				if i >= len(argv) {
					return args, fmt.Errorf("flag %s requires a value", name)
				}
				value = argv[i]
			}
			switch name {
			case "--config":
				args.ConfigPath = value
			case "--room":
				args.Room = value
			case "--user":
				args.User = value
			case "--policy":
				args.Policy = value
			}

		case "-h", "--help":
			args.Cmd = CmdHelp
			return args, nil

		case "-v", "--version":
			args.Cmd = CmdVersion
			return args, nil

		default:
			return args, fmt.Errorf("unknown flag: %s", name)
		}
		i++
	}

	if i < len(argv) {
		switch argv[i] {
		case "replay":
			args.Cmd = CmdReplay
		case "config":
			args.Cmd = CmdConfig
		case "version":
			args.Cmd = CmdVersion
		case "help":
			args.Cmd = CmdHelp
		default:
			return args, fmt.Errorf("unknown command: %s", argv[i])
		}
		args.Raw = argv[i+1:]
	}

	return args, nil
}

// splitFlag splits "--name=value" into its parts.
func splitFlag(arg string) (name, value string, hasValue bool) {
	if i := strings.IndexByte(arg, '='); i >= 0 {
		return arg[:i], arg[i+1:], true
	}
	return arg, "", false
}
