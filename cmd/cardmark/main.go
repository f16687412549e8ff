package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cardmark"
	"github.com/fwojciec/cardmark/bloom"
	"github.com/fwojciec/cardmark/capture"
	"github.com/fwojciec/cardmark/fs"
	"github.com/fwojciec/cardmark/goquery"
	"github.com/fwojciec/cardmark/htmltomarkdown"
	cmhttp "github.com/fwojciec/cardmark/http"
	"github.com/fwojciec/cardmark/readability"
	"github.com/fwojciec/cardmark/rod"
	cmslog "github.com/fwojciec/cardmark/slog"
	"github.com/fwojciec/cardmark/sqlite"
	"github.com/fwojciec/cardmark/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the capture journal.
	DB *sqlite.DB

	// Browser connection, when a command needs one.
	Browser *rod.Browser
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Browser != nil {
		_ = m.Browser.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cardmark"),
		kong.Description("Capture bookmarked pages as cards"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"db": defaultDBPath()},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'cardmark --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps := &Dependencies{
		Ctx:        ctx,
		Stdout:     stdout,
		Stderr:     stderr,
		Logger:     logger,
		Strategies: cmslog.NewLoggingRegistry(newRegistry(), logger),
	}

	cmd := kongCtx.Command()
	if cmd == "strategies" {
		return kongCtx.Run(deps)
	}

	if err := os.MkdirAll(filepath.Dir(cli.DB), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	m.DB = sqlite.NewDB(cli.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set CARDMARK_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
	}
	defer m.Close()

	deps.Captures = sqlite.NewCaptureService(m.DB)
	if cmd == "history" {
		return kongCtx.Run(deps)
	}

	var tabs cardmark.TabResolver
	var sandbox cardmark.Sandbox
	switch {
	case cmd == "capture <url>" && cli.Capture.Static, cmd == "import <file>" && cli.Import.Static:
		tabs = cmhttp.NewTabResolver()
		sandbox = cmhttp.NewSandbox(cmhttp.WithTimeout(cli.Timeout))
	default:
		opts := []rod.Option{rod.WithPageTimeout(cli.Timeout)}
		if !(cmd == "import <file>" && cli.Import.Headless) {
			opts = append(opts, rod.WithControlURL(cli.Browser))
		}
		m.Browser, err = rod.NewBrowser(opts...)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: start Chrome with --remote-debugging-port=9222 or use --static")
			return fmt.Errorf("failed to connect to browser: %w", err)
		}
		if cmd == "import <file>" {
			tabs = rod.NewOpenTabResolver(m.Browser)
		} else {
			tabs = rod.NewActiveTabResolver(m.Browser)
		}
		sandbox = rod.NewSandbox(m.Browser)
	}

	deps.Pipeline = &capture.Pipeline{
		Tabs:      cmslog.NewLoggingTabResolver(tabs, logger),
		Extractor: capture.NewRunner(deps.Strategies, cmslog.NewLoggingSandbox(sandbox, logger)),
		Deliverer: cmslog.NewLoggingDeliverer(cmhttp.NewCardClient(cli.API, cmhttp.WithTimeout(cli.Timeout)), logger),
		Captures:  deps.Captures,
		Logger:    logger,
	}
	if cli.Archive != "" {
		deps.Pipeline.Archive = fs.NewArchive(cli.Archive)
	}

	switch cmd {
	case "watch":
		path := cli.Watch.Bookmarks
		if path == "" {
			if path, err = fs.DefaultBookmarksPath(); err != nil {
				return fmt.Errorf("failed to locate Chrome bookmarks: %w", err)
			}
		}
		deps.Source = fs.NewWatcher(path)
		deps.Dispatcher = &capture.Dispatcher{
			Pipeline:    deps.Pipeline,
			Concurrency: cli.Watch.Concurrency,
			Logger:      logger,
		}
	case "import <file>":
		deps.Dispatcher = &capture.Dispatcher{
			Pipeline:    deps.Pipeline,
			Concurrency: cli.Import.Concurrency,
			Limiter:     capture.NewDomainLimiter(cli.Import.RPS),
			Captures:    deps.Captures,
			Logger:      logger,
		}
		if !cli.Import.Force {
			seen := bloom.NewFilter(seenCapacity, seenFPRate)
			if _, err := seen.Load(ctx, deps.Captures); err != nil {
				return fmt.Errorf("failed to load capture history: %w", err)
			}
			deps.Seen = seen
			deps.Dispatcher.Seen = seen
		}
	}

	return kongCtx.Run(deps)
}

// Sizing of the delivered-source filter used by import.
const (
	seenCapacity = 100_000
	seenFPRate   = 0.001
)

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cardmark.db"
	}
	return filepath.Join(home, ".cardmark", "cardmark.db")
}

// newRegistry returns the strategy registry with every built-in site
// strategy registered.
func newRegistry() *goquery.Registry {
	registry := goquery.NewSiteRegistry(htmltomarkdown.NewConverter(htmltomarkdown.WithMaxRunes(maxMarkdownRunes)))
	registerArticleStrategies(registry, registry.Default())
	return registry
}

// maxMarkdownRunes bounds Markdown card text.
const maxMarkdownRunes = 2000

// registerArticleStrategies registers the strategies for long-form article
// sites that need full-document content extraction.
func registerArticleStrategies(registry cardmark.StrategyRegistry, base cardmark.Strategy) {
	registry.Register(cardmark.HostSuffix("medium.com"), readability.NewStrategy("medium", base))
	registry.Register(cardmark.HostSuffix("substack.com"), trafilatura.NewStrategy("substack", base))
}
