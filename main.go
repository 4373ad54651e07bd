package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsoncmp/internal/config"
	"github.com/mcncl/jsoncmp/internal/counter"
	"github.com/mcncl/jsoncmp/internal/differ"
	"github.com/mcncl/jsoncmp/internal/errors"
	"github.com/mcncl/jsoncmp/internal/parser"
	"github.com/mcncl/jsoncmp/internal/report"
)

// CLI defines the command-line interface
var CLI struct {
	Left    string `arg:"" optional:"" name:"file1" help:"Path to the first JSON file." type:"path"`
	Right   string `arg:"" optional:"" name:"file2" help:"Path to the second JSON file." type:"path"`
	Config  string `help:"Path to a config file. Overrides discovery of .jsoncmp.yml." short:"c" type:"path"`
	Debug   bool   `help:"Enable debug logging." short:"d"`
	Quiet   bool   `help:"Suppress the printed report; write to the log only." short:"q"`
	Version bool   `help:"Show version information." short:"v"`
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsoncmp"),
		kong.Description("Compare the structural shape of two JSON documents"),
		kong.UsageOnError(),
	)

	if _, err := parser.Parse(os.Args[1:]); err != nil {
		// Usage is already shown by kong.UsageOnError().
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsoncmp version %s\n", Version)
		return
	}

	if CLI.Left == "" || CLI.Right == "" {
		fmt.Fprintln(os.Stderr, "Error: expected two JSON file arguments.")
		fmt.Fprintln(os.Stderr, "\nFor help, run: jsoncmp --help")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, closeLog := setupLogger(cfg, CLI.Debug)
	defer closeLog()

	var out io.Writer = os.Stdout
	if CLI.Quiet {
		out = io.Discard
	}

	if err := run(cfg, log, CLI.Left, CLI.Right, out); err != nil {
		log.Error("run failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: an explicit --config
// path, else a discovered config file, else defaults.
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	if path == "" {
		return config.NewConfig(), nil
	}
	return config.LoadConfig(path)
}

// setupLogger opens the append-only run log and returns a logger writing
// to it, plus a close function. When the log file cannot be opened the
// logger falls back to stderr so the run still proceeds.
func setupLogger(cfg *config.Config, debug bool) (*slog.Logger, func()) {
	if cfg.Log.Disabled {
		return slog.New(slog.DiscardHandler), func() {}
	}

	level := cfg.SlogLevel()
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	f, err := os.OpenFile(cfg.Log.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s: %v\n", cfg.Log.File, err)
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() {}
	}
	return slog.New(slog.NewTextHandler(f, opts)), func() { _ = f.Close() }
}

// run executes one comparison: load both files, count depths, diff,
// summarize, render to out and mirror the summary into the log. The
// packages it calls are pure; all I/O and logging happen here.
func run(cfg *config.Config, log *slog.Logger, leftPath, rightPath string, out io.Writer) error {
	start := time.Now()
	log.Info("run started", "left", leftPath, "right", rightPath)

	readStart := time.Now()
	left, err := parser.ParseFile(leftPath)
	if err != nil {
		return err
	}
	right, err := parser.ParseFile(rightPath)
	if err != nil {
		return err
	}
	readDur := time.Since(readStart)

	countStart := time.Now()
	leftHist := counter.CountDepths(left)
	rightHist := counter.CountDepths(right)
	countDur := time.Since(countStart)

	diffStart := time.Now()
	diffs := differ.Compare(left, right)
	diffDur := time.Since(diffStart)

	summary := report.Summarize(leftHist, rightHist, diffs)

	opts := report.Options{MaxValueLength: cfg.Report.MaxValueLength}
	if err := report.Render(out, summary, opts); err != nil {
		return errors.NewOutputError("failed to write report", err)
	}
	report.LogSummary(log, summary)

	log.Debug("phase timings",
		"read", readDur,
		"count", countDur,
		"diff", diffDur,
	)
	log.Info("run finished", "elapsed", time.Since(start))
	return nil
}
