// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the WordHunt board solver.

WordHunt finds every dictionary word that can be traced on a grid of letters
by moving between horizontally, vertically or diagonally adjacent cells,
using each cell at most once per word. Words are ranked longest first, then
alphabetically.

# Usage

Type a board in, four letters per line, and get the words as soon as the
last cell is filled:

	wordhunt

Solve a single board and exit:

	wordhunt -grid "CATS/DOGE/EMIT/RAIN"

Serve msgpack requests on stdin/stdout for another program:

	wordhunt -s

# Dictionary

The word list is a plain text file with one word per line. Lines holding
anything other than letters are skipped, as are lines starting with # or //.
The file named by -dict, or dict.path in the config, is looked up relative to
the working directory, then next to the executable, then in its data/ dir,
then in the config dir. The program refuses to start without a usable list.

# Configuration

Settings live in config.toml in the user config dir, created with defaults
on first run:

	[search]
	min_word_length = 3
	workers = 0

	[grid]
	rows = 4
	cols = 4

	[dict]
	path = "dictionary.txt"

	[display]
	reserved_lines = 4
	show_paths = false

	[score]
	points = [0, 0, 0, 100, 400, 800, 1400, 1800, 2200]
	extra_letter = 400

	[server]
	max_limit = 256

workers = 0 uses one worker per CPU. Points only affect what is printed; the
ranking never uses them.

# Command Line Flags

	-version  Show current version
	-d        Enable debug mode with detailed logging
	-dict     Word list to load
	-config   Custom config file
	-s        Run the msgpack IPC server
	-grid     Solve one board given as rows separated by '/' and exit
	-min      Minimum word length
	-workers  Search workers, 0 for one per CPU
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordhunt/internal/cli"
	"github.com/bastiangx/wordhunt/internal/display"
	"github.com/bastiangx/wordhunt/internal/logger"
	"github.com/bastiangx/wordhunt/internal/utils"
	"github.com/bastiangx/wordhunt/pkg/config"
	"github.com/bastiangx/wordhunt/pkg/dictionary"
	"github.com/bastiangx/wordhunt/pkg/grid"
	"github.com/bastiangx/wordhunt/pkg/lexicon"
	"github.com/bastiangx/wordhunt/pkg/rank"
	"github.com/bastiangx/wordhunt/pkg/server"
	"github.com/bastiangx/wordhunt/pkg/solver"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0"
	AppName = "wordhunt"
	gh      = "https://github.com/bastiangx/wordhunt"
)

// sigHandler cancels ctx on the first interrupt and exits on the second.
func sigHandler(cancel context.CancelFunc) {
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		cancel()
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires the packages together; it holds no search logic itself.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigHandler(cancel)

	showVersion := flag.Bool("version", false, "Show current version")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	dictPath := flag.String("dict", "", "Word list, one word per line (default from config)")
	configPath := flag.String("config", "", "Custom config file path")
	serverMode := flag.Bool("s", false, "Run the msgpack IPC server on stdin/stdout")
	oneShot := flag.String("grid", "", "Solve a single board, rows separated by '/', and exit")
	minLength := flag.Int("min", 0, "Minimum word length (default from config)")
	workers := flag.Int("workers", -1, "Search workers, 0 for one per CPU (default from config)")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	appConfig, usedConfig := config.LoadConfigWithPriority(*configPath, pathResolver)
	log.Debugf("Using config file: (%s)", usedConfig)
	if *minLength > 0 {
		appConfig.Search.MinWordLength = *minLength
	}
	if *workers >= 0 {
		appConfig.Search.Workers = *workers
	}
	if *dictPath != "" {
		appConfig.Dict.Path = *dictPath
	}

	resolvedDict := pathResolver.GetDictionaryPath(appConfig.Dict.Path)
	store, stats, err := dictionary.Load(resolvedDict)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	lex := lexicon.Build(store.Words())
	log.Debug("Dictionary ready",
		"path", resolvedDict,
		"words", lex.Len(),
		"nodes", lex.Nodes(),
		"skipped", stats.Skipped)

	s := solver.New(lex, solver.Options{
		MinLength: appConfig.Search.MinWordLength,
		Workers:   appConfig.Search.Workers,
	})
	renderer := display.NewRenderer(
		display.NewScorer(appConfig.Score.Points, appConfig.Score.ExtraLetter),
		appConfig.Display.ShowPaths,
		appConfig.Display.ReservedLines,
	)

	switch {
	case *serverMode:
		log.Debug("spawning IPC")
		srv := server.NewServer(lex, store, appConfig)
		if err := srv.Start(ctx); err != nil {
			log.Fatalf("Server error: %v", err)
		}

	case *oneShot != "":
		if err := solveOnce(ctx, s, renderer, appConfig, *oneShot); err != nil {
			log.Fatalf("%v", err)
		}

	default:
		inputHandler := cli.NewInputHandler(s, renderer, appConfig.Grid.Rows, appConfig.Grid.Cols, nil, os.Stdin, os.Stdout)
		if err := inputHandler.Start(ctx); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
	}
}

// solveOnce parses a board from the command line and prints its words.
func solveOnce(ctx context.Context, s *solver.Solver, r *display.Renderer, cfg *config.Config, board string) error {
	g, err := grid.Parse(board, cfg.Grid.Rows, cfg.Grid.Cols)
	if err != nil {
		return fmt.Errorf("reading board: %w", err)
	}
	rs, err := s.Search(ctx, g)
	if err != nil {
		return fmt.Errorf("solving %s: %w", g, err)
	}
	_, height := display.Viewport()
	_, err = r.Render(os.Stdout, g, rank.Rank(rs), height)
	return err
}

// printVersion shows the version banner.
func printVersion() {
	banner := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	banner.SetStyles(styles)

	banner.Print("")
	banner.Print("[ WordHunt ] Finds every word on the board!")
	banner.Print("", "version", Version)
	banner.Print("")
	banner.Print("use -h or --help to see available options")
	banner.Print("Github Repo", "gh", gh)
}
