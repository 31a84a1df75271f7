// Package main is the entry point for the mapsmith editor core.
//
// The binary loads configuration and a brush catalog, assembles the editing
// engine, and optionally runs a Lua script against it. Without a script it
// prints a catalog summary and exits; the interactive surface lives in the
// host application, not here.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/mapsmith/mapsmith/internal/app"
	"github.com/mapsmith/mapsmith/internal/config"
	"github.com/mapsmith/mapsmith/internal/script"
	"github.com/mapsmith/mapsmith/internal/session"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath  string
	catalogPath string
	scriptPath  string
	sessionPath string
	logLevel    string
	watch       bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, showVersion := parseFlags()
	if showVersion {
		fmt.Printf("mapsmith %s (%s)\n", version, commit)
		return 0
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.catalogPath != "" {
		cfg.Catalog.Path = opts.catalogPath
	}
	if opts.sessionPath != "" {
		cfg.Session.Path = opts.sessionPath
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.watch {
		cfg.Catalog.Watch = true
	}

	log := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(cfg.Logging.Level),
		Output: os.Stderr,
		Prefix: "mapsmith",
	})

	editor := app.NewEditor(cfg, log)
	if err := editor.LoadCatalog(cfg.Catalog.Path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if cfg.Catalog.Watch {
		watcher, err := editor.WatchCatalog(cfg.Catalog.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: watching catalog: %v\n", err)
			return 1
		}
		defer watcher.Close()
	}

	// Cancel in-flight work on SIGINT/SIGTERM; strokes roll back cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Session.Path != "" {
		if st, err := session.Load(cfg.Session.Path); err != nil {
			log.Warnf("session: %v", err)
		} else if st.BrushName != "" {
			log.Infof("session restored: brush %q on floor %d", st.BrushName, st.FloorZ)
		}
	}

	if opts.scriptPath != "" {
		if err := script.New(editor).RunFile(ctx, opts.scriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		log.Infof("script done: %d tiles, %d undoable strokes",
			editor.Store().Count(), editor.History().UndoCount())
		return 0
	}

	printSummary(editor)
	return 0
}

func printSummary(editor *app.Editor) {
	names := editor.Catalog().Names()
	sort.Strings(names)
	fmt.Printf("catalog version %d, %d brushes\n", editor.Catalog().Version(), len(names))
	for _, name := range names {
		def, _ := editor.Catalog().GetByName(name)
		fmt.Printf("  %-20s %-7s id=%d group=%q\n", def.Name, def.Kind, def.ServerID, def.Group)
	}
}

func parseFlags() (options, bool) {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.catalogPath, "catalog", "", "Path to the brush catalog JSON")
	flag.StringVar(&opts.scriptPath, "script", "", "Lua script to run against the map")
	flag.StringVar(&opts.sessionPath, "session", "", "Path to the session state file")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&opts.watch, "watch", false, "Hot-reload the catalog on change")
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "mapsmith - tile map editing engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: mapsmith [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  mapsmith -catalog brushes.json              List the catalog\n")
		fmt.Fprintf(os.Stderr, "  mapsmith -catalog brushes.json -script p.lua Run a paint script\n")
	}

	flag.Parse()
	return opts, showVersion
}
