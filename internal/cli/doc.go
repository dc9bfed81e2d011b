// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line interface parsing for roomview.
//
// # Key Types
//
//   - Command: Enumeration of available CLI commands
//   - Args: Parsed command-line arguments
//
// # Usage
//
// Parse and dispatch commands:
//
//	args, err := cli.Parse(os.Args[1:])
//	if err != nil {
//	    log.Fatal(err)
//	}
//	switch args.Cmd {
//	case cli.CmdTUI:
//	    // start the interactive view
//	case cli.CmdReplay:
//	    // print the demo transcript
//	}
package cli
