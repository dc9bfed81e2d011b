// roomview TUI - A terminal viewer for chat room event streams.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/roomview-tui/internal/cli"
	"github.com/jeranaias/roomview-tui/internal/config"
	"github.com/jeranaias/roomview-tui/internal/display"
	"github.com/jeranaias/roomview-tui/internal/feed"
	"github.com/jeranaias/roomview-tui/internal/format"
	"github.com/jeranaias/roomview-tui/internal/room"
	"github.com/jeranaias/roomview-tui/internal/storage"
	"github.com/jeranaias/roomview-tui/internal/ui/roomview"
	"github.com/jeranaias/roomview-tui/internal/util"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

const (
	demoRoomID = "!demo:example.org"
	demoSelfID = "@self:example.org"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	args, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n%s", err, cli.Usage())
		os.Exit(2)
	}

	switch args.Cmd {
	case cli.CmdTUI:
		if err := runTUI(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdReplay:
		if err := runReplay(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdConfig:
		if err := runConfig(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdVersion:
		fmt.Println(cli.VersionString())
	case cli.CmdHelp:
		fmt.Print(cli.Usage())
	}
}

// =============================================================================
// SETUP
// =============================================================================

// loadConfig resolves the configuration with CLI flag overrides on top.
func loadConfig(args cli.Args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if args.User != "" {
		cfg.UserID = args.User
	}
	if args.Room != "" {
		cfg.Room.DefaultRoom = args.Room
	}
	if args.Policy != "" {
		cfg.Redaction.Policy = args.Policy
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// wiring holds the assembled projection pipeline for one room.
type wiring struct {
	buffer    *display.Buffer
	projector *room.Projector
	store     *storage.TranscriptStore
}

func (w *wiring) close() {
	if w.store != nil {
		w.store.Close()
	}
}

// buildRoom assembles buffer, optional transcript recorder and projector.
func buildRoom(cfg *config.Config, roomID, selfID string, width int) (*wiring, error) {
	policy, err := room.ParseRedactionPolicy(cfg.Redaction.Policy)
	if err != nil {
		return nil, err
	}

	buffer := display.NewBuffer(room.RosterGroups())
	buffer.SetHighlightWords(append([]string{util.ShortenSender(selfID)}, cfg.Room.HighlightWords...))

	var surface display.Surface = buffer
	w := &wiring{buffer: buffer}

	if cfg.Transcript.Enabled {
		path, err := cfg.TranscriptPath()
		if err != nil {
			return nil, err
		}
		store, err := storage.Open(path)
		if err != nil {
			return nil, err
		}
		w.store = store
		surface = storage.NewRecorder(buffer, store, roomID, storage.RecorderOptions{
			LogMembership: cfg.Transcript.LogMembership,
			LogTopics:     cfg.Transcript.LogTopics,
		})
	}

	renderer, err := format.NewRenderer(width)
	if err != nil {
		renderer = nil // plain bodies only
	}

	w.projector = room.New(room.Config{
		Surface:   surface,
		RoomID:    roomID,
		OwnUserID: selfID,
		Policy:    policy,
		Renderer:  renderer,
	})
	return w, nil
}

func resolveIdentity(cfg *config.Config) (roomID, selfID string) {
	roomID = cfg.Room.DefaultRoom
	if roomID == "" {
		roomID = demoRoomID
	}
	selfID = cfg.UserID
	if selfID == "" {
		selfID = demoSelfID
	}
	return roomID, selfID
}

// =============================================================================
// COMMANDS
// =============================================================================

func runTUI(args cli.Args) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	roomID, selfID := resolveIdentity(cfg)

	w, err := buildRoom(cfg, roomID, selfID, 80)
	if err != nil {
		return err
	}
	defer w.close()

	script := feed.Demo(roomID, selfID)
	for _, ev := range script.State {
		if err := w.projector.Project(ev, true); err != nil {
			return fmt.Errorf("state replay: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	player := feed.NewPlayer(script, 2*time.Second)

	model := roomview.New(roomview.Config{
		Buffer:         w.buffer,
		Projector:      w.projector,
		Events:         player.Run(ctx),
		RosterWidth:    cfg.UI.RosterWidth,
		ShowTimestamps: cfg.UI.ShowTimestamps,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	// A redaction policy edit in the config file takes effect on the next
	// event. A missing config file just means nothing to watch.
	if watcher := watchPolicy(args, p); watcher != nil {
		defer watcher.Close()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

// watchPolicy starts a config watcher that forwards policy changes into the
// running program. Returns nil when the config path cannot be watched.
func watchPolicy(args cli.Args, p *tea.Program) *config.Watcher {
	path := args.ConfigPath
	if path == "" {
		var err error
		path, err = config.ConfigPath()
		if err != nil {
			return nil
		}
	}

	watcher, err := config.Watch(path, func(cfg *config.Config) {
		policy, err := room.ParseRedactionPolicy(cfg.Redaction.Policy)
		if err != nil {
			return
		}
		p.Send(roomview.PolicyChangedMsg{Policy: policy})
	})
	if err != nil {
		return nil
	}
	return watcher
}

// runReplay projects the whole demo script and prints the resulting
// transcript to stdout, no TUI.
func runReplay(args cli.Args) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	roomID, selfID := resolveIdentity(cfg)

	w, err := buildRoom(cfg, roomID, selfID, 100)
	if err != nil {
		return err
	}
	defer w.close()

	script := feed.Demo(roomID, selfID)
	for _, ev := range script.State {
		if err := w.projector.Project(ev, true); err != nil {
			return fmt.Errorf("state replay: %w", err)
		}
	}
	for _, ev := range script.Timeline {
		if err := w.projector.Project(ev, false); err != nil {
			return fmt.Errorf("timeline: %w", err)
		}
	}

	fmt.Printf("%s  %s\n\n", w.buffer.ShortName(), w.buffer.Topic())
	for _, l := range w.buffer.Lines() {
		fmt.Printf("%s  %s %s\n", l.Date().Format("15:04:05"), l.Prefix(), l.Body())
	}
	return nil
}

func runConfig(args cli.Args) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	path, _ := config.ConfigPath()
	transcript, _ := cfg.TranscriptPath()

	fmt.Printf("config file:     %s\n", path)
	fmt.Printf("user:            %s\n", orUnset(cfg.UserID))
	fmt.Printf("room:            %s\n", orUnset(cfg.Room.DefaultRoom))
	fmt.Printf("redaction:       %s\n", cfg.Redaction.Policy)
	fmt.Printf("transcript:      %v (%s)\n", cfg.Transcript.Enabled, transcript)
	fmt.Printf("theme:           %s\n", cfg.UI.Theme)
	fmt.Printf("roster width:    %d\n", cfg.UI.RosterWidth)
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
