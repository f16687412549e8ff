package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/cardmark"
	"github.com/fwojciec/cardmark/capture"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Captures   cardmark.CaptureService
	Strategies cardmark.StrategyRegistry
	Pipeline   *capture.Pipeline
	Dispatcher *capture.Dispatcher
	Source     cardmark.BookmarkSource
	Seen       cardmark.URLSet
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	API     string        `env:"CARDMARK_API" default:"http://localhost" help:"Base URL of the card storage API"`
	DB      string        `env:"CARDMARK_DB" default:"${db}" help:"Capture journal database path"`
	Browser string        `env:"CARDMARK_BROWSER" default:"http://127.0.0.1:9222" help:"DevTools URL of a running Chrome"`
	Timeout time.Duration `default:"10s" help:"Timeout for page fetches and card delivery"`
	Archive string        `type:"path" help:"Also write delivered cards to this directory"`
	Verbose bool          `short:"v" help:"Enable debug logging"`

	Watch      WatchCmd      `cmd:"" help:"Capture bookmarks as they are created in Chrome"`
	Capture    CaptureCmd    `cmd:"" help:"Capture a single URL"`
	Import     ImportCmd     `cmd:"" help:"Capture every bookmark in an export file"`
	History    HistoryCmd    `cmd:"" help:"Show recent captures"`
	Strategies StrategiesCmd `cmd:"" help:"List registered extraction strategies"`
}

// WatchCmd is the "watch" subcommand.
type WatchCmd struct {
	Bookmarks   string `type:"path" help:"Chrome Bookmarks file (default: the default profile)"`
	Concurrency int    `short:"c" default:"4" help:"Concurrent capture limit"`
}

// CaptureCmd is the "capture" subcommand.
type CaptureCmd struct {
	URL    string `arg:"" help:"URL of the bookmarked page"`
	ID     string `help:"Bookmark ID to report"`
	Static bool   `help:"Fetch the page over HTTP instead of reading the browser tab"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File        string  `arg:"" type:"existingfile" help:"Bookmark file (.html, .xbel or Chrome Bookmarks JSON)"`
	Static      bool    `help:"Fetch pages over HTTP instead of opening them in the browser"`
	Headless    bool    `help:"Launch a headless browser instead of attaching to --browser"`
	Concurrency int     `short:"c" default:"4" help:"Concurrent capture limit"`
	RPS         float64 `name:"rps" default:"1" help:"Requests per second per site"`
	Force       bool    `short:"f" help:"Capture sources that were already delivered"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Outcome string        `enum:",delivered,rejected,transport_failure,aborted" default:"" help:"Only show captures with this outcome"`
	Limit   int           `short:"n" default:"20" help:"Maximum number of captures to show"`
	Prune   time.Duration `help:"Delete captures older than this before listing"`
}

// StrategiesCmd is the "strategies" subcommand.
type StrategiesCmd struct{}
