// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"
)

func TestParse_Defaults(t *testing.T) {
	args, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if args.Cmd != CmdTUI {
		t.Errorf("Cmd = %v, want CmdTUI", args.Cmd)
	}
}

func TestParse_Commands(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{[]string{"replay"}, CmdReplay},
		{[]string{"config"}, CmdConfig},
		{[]string{"version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"--version"}, CmdVersion},
		{[]string{"-v"}, CmdVersion},
		{[]string{"--help"}, CmdHelp},
		{[]string{"-h"}, CmdHelp},
	}

	for _, tc := range tests {
		args, err := Parse(tc.argv)
		if err != nil {
			t.Errorf("Parse(%v): %v", tc.argv, err)
			continue
		}
		if args.Cmd != tc.want {
			t.Errorf("Parse(%v).Cmd = %v, want %v", tc.argv, args.Cmd, tc.want)
		}
	}
}

func TestParse_Flags(t *testing.T) {
	args, err := Parse([]string{
		"--config", "/tmp/rv.toml",
		"--room=!room:example.org",
		"--user", "@self:example.org",
		"--policy=delete",
		"replay",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if args.ConfigPath != "/tmp/rv.toml" {
		t.Errorf("ConfigPath = %q", args.ConfigPath)
	}
	if args.Room != "!room:example.org" {
		t.Errorf("Room = %q", args.Room)
	}
	if args.User != "@self:example.org" {
		t.Errorf("User = %q", args.User)
	}
	if args.Policy != "delete" {
		t.Errorf("Policy = %q", args.Policy)
	}
	if args.Cmd != CmdReplay {
		t.Errorf("Cmd = %v, want CmdReplay", args.Cmd)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := [][]string{
		{"--room"},       // missing value
		{"--frobnicate"}, // unknown flag
		{"dance"},        // unknown command
	}

	for _, argv := range tests {
		if _, err := Parse(argv); err == nil {
			t.Errorf("Parse(%v) should fail", argv)
		}
	}
}

func TestUsage_MentionsEveryCommand(t *testing.T) {
	usage := Usage()
	for _, cmd := range []string{"replay", "config", "version", "help"} {
		if !strings.Contains(usage, cmd) {
			t.Errorf("usage text missing command %q", cmd)
		}
	}
}

func TestVersionString(t *testing.T) {
	if !strings.Contains(VersionString(), Version) {
		t.Errorf("VersionString() = %q", VersionString())
	}
}
