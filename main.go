// rkmon is a terminal telemetry dashboard for Rockchip RK3588 boards.
//
// It samples the SoC thermal zones, CPU and memory utilization, and the
// per-core NPU load on a fixed cadence, keeps a bounded history per metric,
// and surfaces the result through an interactive TUI, a one-shot JSON dump,
// or a one-line status summary for shell prompts.
//
// Usage:
//
//	rkmon [flags]
//
// Flags:
//
//	-config string  Path to configuration file (default: ~/.config/rkmon/config.yaml)
//	-tui            Launch the interactive dashboard (default mode)
//	-once           Sample a few ticks and print the final snapshot as JSON
//	-status         Print a one-line status summary from the cache
//	-daemon         Run the headless background sampler
//	-diagnose       Check data source readability and exit
//	-shell string   Output shell integration script (bash|zsh|fish|nushell)
//	-term-width     Terminal width override for -status (0 = auto-detect)
//	-verbose        Enable verbose logging
//	-version        Print version and exit
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/rkmon/config"
	"gitlab.com/tinyland/lab/rkmon/display/tui"
	"gitlab.com/tinyland/lab/rkmon/sampler"
	"gitlab.com/tinyland/lab/rkmon/shell"
	"gitlab.com/tinyland/lab/rkmon/snapshot"
)

// onceTicks is how many sampling passes -once runs. Two passes give the
// CPU usage source the delta it needs for a real value; the third smooths
// out a cold first read elsewhere.
const onceTicks = 3

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file (default: ~/.config/rkmon/config.yaml)")
		runOnceMode = flag.Bool("once", false, "Sample a few ticks and print the final snapshot as JSON")
		statusMode  = flag.Bool("status", false, "Print a one-line status summary from the cache")
		daemonMode  = flag.Bool("daemon", false, "Run the headless background sampler")
		diagMode    = flag.Bool("diagnose", false, "Check data source readability and exit")
		shellType   = flag.String("shell", "", "Output shell integration script (bash|zsh|fish|nushell)")
		promptSeg   = flag.Bool("prompt-segment", false, "Embed the status line in the prompt (with -shell)")
		termWidth   = flag.Int("term-width", 0, "Terminal width override for -status (0 = auto-detect)")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	// The dashboard is the default mode; -tui exists so invocations can be
	// explicit (and for the shell integration scripts).
	flag.Bool("tui", false, "Launch the interactive dashboard (default mode)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("rkmon %s (%s) built %s\n", version, commit, date)
		return
	}

	if *shellType != "" {
		if err := printShellIntegration(*shellType, *promptSeg, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "rkmon: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logger := newLogger(*verbose)
	cfg := config.Load(resolveConfigPath(*configPath), logger)

	var err error
	switch {
	case *statusMode:
		err = runStatus(cfg, *termWidth)
	case *diagMode:
		err = runDiagnose(cfg, os.Stdout)
	case *daemonMode:
		err = runDaemon(cfg, logger)
	case *runOnceMode:
		err = runOnce(cfg, logger, os.Stdout)
	default:
		// -tui and the bare invocation both land here.
		err = runTUI(cfg, logger)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "rkmon: %v\n", err)
		os.Exit(1)
	}
}

// printShellIntegration writes the integration script for the named shell.
func printShellIntegration(name string, promptSegment bool, w io.Writer) error {
	var st shell.ShellType
	switch name {
	case "bash":
		st = shell.Bash
	case "zsh":
		st = shell.Zsh
	case "fish":
		st = shell.Fish
	case "nushell", "nu":
		st = shell.Nushell
	default:
		return fmt.Errorf("unknown shell: %s (supported: bash, zsh, fish, nushell)", name)
	}

	cfg := shell.DefaultIntegrationConfig()
	cfg.PromptSegment = promptSegment
	_, err := fmt.Fprint(w, shell.GenerateIntegration(st, cfg))
	return err
}

// newLogger builds the process logger. Verbose mode lowers the level to
// Debug; otherwise only warnings and errors reach stderr so the status and
// once modes stay pipe-friendly.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// resolveConfigPath returns the explicit path if given, otherwise the
// default location under the user config directory.
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "rkmon", "config.yaml")
}

// runTUI starts the sampling engine and runs the dashboard on top of it
// until the user quits.
func runTUI(cfg *config.Config, logger *slog.Logger) error {
	engine, err := startEngine(cfg, logger)
	if err != nil {
		return err
	}
	defer engine.Stop()

	model := tui.NewModel(engine, tui.Options{
		Refresh:     cfg.RefreshInterval(),
		GraphWidth:  cfg.Display.GraphWidth,
		ShowHistory: cfg.Display.ShowHistory,
	})

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// runOnce runs the sampling engine for onceTicks passes and writes the
// final snapshot as indented JSON.
func runOnce(cfg *config.Config, logger *slog.Logger, w io.Writer) error {
	snaps := make(chan *snapshot.Snapshot, onceTicks)

	registry := buildRegistry(cfg, logger)
	engine, err := sampler.Start(sampler.Config{
		Interval:      cfg.TickInterval(),
		SourceTimeout: cfg.SourceTimeout(),
		Registry:      registry,
		Store:         buildStore(cfg, registry),
		Evaluator:     buildEvaluator(cfg, logger),
		OnSnapshot: func(snap *snapshot.Snapshot) {
			select {
			case snaps <- snap:
			default:
			}
		},
	}, logger)
	if err != nil {
		return err
	}

	var last *snapshot.Snapshot
	deadline := time.After(time.Duration(onceTicks+2) * cfg.TickInterval())
collect:
	for i := 0; i < onceTicks; i++ {
		select {
		case last = <-snaps:
		case <-deadline:
			break collect
		}
	}
	engine.Stop()

	if last == nil {
		return fmt.Errorf("no snapshot produced")
	}

	data, err := json.MarshalIndent(last, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
