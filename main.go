package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/legacycrew/toolshub/internal/catalog"
	"github.com/legacycrew/toolshub/internal/filter"
	"github.com/legacycrew/toolshub/internal/platform"
	"github.com/legacycrew/toolshub/internal/render"
	"github.com/legacycrew/toolshub/internal/request"
	"github.com/legacycrew/toolshub/internal/server"
	"github.com/legacycrew/toolshub/internal/tui"
)

// version is set via -ldflags at build time
var version = "dev"

const helpText = `
toolshub - Legacy Crew Tools Hub

Usage:
  toolshub [global options] <command> [options]

Commands:
  browse                         Browse the catalog interactively (default on a terminal)
  list                           Print the tools matching a filter
    [--search TEXT]              Case-insensitive text to look for
    [--division NAME]            Only tools tagged with this division
    [--json]                     JSON output
  divisions                      List the division chips and how many tools each shows
  export                         Write the hub as a static HTML page
    [--search TEXT]              Filter as for list
    [--division NAME]
    [--out FILE]                 Write to FILE instead of stdout
  serve                          Serve the hub page over HTTP
    [--addr HOST:PORT]           Listen address (default 127.0.0.1:8080)
  request                        Generate a tool request
    [--name TEXT]                Tool name
    [--description TEXT]         What it should do, one requirement per line
    [--users TEXT]               Who will use it
    [--copy]                     Also copy the request to the clipboard

Global options:
  --catalog PATH     Catalog file (default: $TOOLSHUB_CATALOG, then the built-in catalog)
  --log-level LEVEL  debug, info, warn or error (default: $TOOLSHUB_LOG_LEVEL or warn)
  --help, -h         Show this help message
  --version, -v      Show version

Examples:
  toolshub
  toolshub list --division APS
  toolshub list --search "radio show" --json
  toolshub export --division Entertainment --out site/index.html
  toolshub serve --addr :8080
  toolshub request --name "Setlist Builder" --users DJs --copy
`

// globalOptions are accepted before the command and by every subcommand.
type globalOptions struct {
	catalogPath string
	logLevel    string
}

func (g *globalOptions) register(fs *pflag.FlagSet) {
	fs.StringVar(&g.catalogPath, "catalog", g.catalogPath, "catalog file")
	fs.StringVar(&g.logLevel, "log-level", g.logLevel, "log level")
}

// app carries the process streams so commands can be exercised in tests.
type app struct {
	stdout io.Writer
	stderr io.Writer
	// interactive reports whether the browser UI can take over the terminal.
	interactive func() bool
}

func main() {
	platform.InitColor()

	a := &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		interactive: func() bool {
			return platform.IsTerminal(os.Stdin) && platform.IsTerminal(os.Stdout)
		},
	}
	if err := a.run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) run(args []string) error {
	var global globalOptions
	root := pflag.NewFlagSet("toolshub", pflag.ContinueOnError)
	root.SetInterspersed(false)
	root.SetOutput(io.Discard)
	global.register(root)
	help := root.BoolP("help", "h", false, "")
	showVersion := root.BoolP("version", "v", false, "")
	if err := root.Parse(args); err != nil {
		return err
	}

	switch {
	case *help:
		fmt.Fprint(a.stdout, helpText)
		return nil
	case *showVersion:
		fmt.Fprintf(a.stdout, "toolshub %s\n", version)
		return nil
	}

	args = root.Args()
	if len(args) == 0 {
		if !a.interactive() {
			fmt.Fprint(a.stdout, helpText)
			return nil
		}
		args = []string{"browse"}
	}

	command, rest := args[0], args[1:]

	switch command {
	case "help":
		fmt.Fprint(a.stdout, helpText)
		return nil
	case "version":
		fmt.Fprintf(a.stdout, "toolshub %s\n", version)
		return nil
	case "browse":
		return a.browse(global, rest)
	case "list":
		return a.list(global, rest)
	case "divisions":
		return a.divisions(global, rest)
	case "export":
		return a.export(global, rest)
	case "serve":
		return a.serve(global, rest)
	case "request":
		return a.request(global, rest)
	default:
		return fmt.Errorf("unknown command %q (run toolshub --help)", command)
	}
}

// parse parses a subcommand's flags after registering the global ones.
func (a *app) parse(fs *pflag.FlagSet, global *globalOptions, args []string) error {
	fs.SetOutput(a.stderr)
	global.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%s: unexpected argument %q", fs.Name(), fs.Arg(0))
	}
	return nil
}

func (a *app) logger(global globalOptions) (*zap.Logger, error) {
	return platform.NewLogger(platform.ResolveLogLevel(global.logLevel), a.stderr)
}

func (a *app) loadCatalog(global globalOptions, logger *zap.Logger) (*catalog.Catalog, error) {
	c, err := catalog.Resolve(global.catalogPath, defaultCatalog, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog resolved", zap.String("source", c.Source()), zap.Int("tools", c.Len()))
	return c, nil
}

// filterFlags adds --search and --division to fs.
func filterFlags(fs *pflag.FlagSet) (search, division *string) {
	search = fs.String("search", "", "text to look for")
	division = fs.String("division", catalog.All, "division chip")
	return search, division
}

// filterState validates the division against the catalog's chips.
func filterState(c *catalog.Catalog, search, division string) (filter.State, error) {
	chip, ok := c.IsChip(division)
	if !ok {
		return filter.State{}, fmt.Errorf("unknown division %q (choose from: %s)", division, strings.Join(c.Chips(), ", "))
	}
	return filter.NewState().SetDivision(chip).SetSearch(search), nil
}

func (a *app) browse(global globalOptions, args []string) error {
	fs := pflag.NewFlagSet("browse", pflag.ContinueOnError)
	if err := a.parse(fs, &global, args); err != nil {
		return err
	}

	if tui.IsAccessible() || !a.interactive() {
		return a.list(global, nil)
	}

	logger, closeLog, err := platform.NewTUILogger(platform.ResolveLogLevel(global.logLevel))
	if err != nil {
		return err
	}
	defer closeLog()

	c, err := a.loadCatalog(global, logger)
	if err != nil {
		return err
	}
	return tui.Run(tui.Options{
		Catalog:     c,
		Version:     version,
		CatalogPath: global.catalogPath,
		Logger:      logger,
	})
}

// listOutput is the --json shape of list.
type listOutput struct {
	Title    string           `json:"title"`
	Division string           `json:"division"`
	Search   string           `json:"search"`
	Count    int              `json:"count"`
	Tools    []catalog.Record `json:"tools"`
}

func (a *app) list(global globalOptions, args []string) error {
	fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
	search, division := filterFlags(fs)
	asJSON := fs.Bool("json", false, "JSON output")
	if err := a.parse(fs, &global, args); err != nil {
		return err
	}

	logger, err := a.logger(global)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	c, err := a.loadCatalog(global, logger)
	if err != nil {
		return err
	}
	state, err := filterState(c, *search, *division)
	if err != nil {
		return err
	}
	records := state.Apply(c.Records())

	if *asJSON {
		return platform.WriteJSON(a.stdout, listOutput{
			Title:    c.Title(),
			Division: state.Division,
			Search:   state.Search,
			Count:    len(records),
			Tools:    records,
		})
	}

	platform.PrintBanner(a.stdout, render.SanitizeTerminal(c.Title()))
	render.PlainList(a.stdout, render.Build(records), platform.Bold)
	return nil
}

func (a *app) divisions(global globalOptions, args []string) error {
	fs := pflag.NewFlagSet("divisions", pflag.ContinueOnError)
	if err := a.parse(fs, &global, args); err != nil {
		return err
	}

	logger, err := a.logger(global)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	c, err := a.loadCatalog(global, logger)
	if err != nil {
		return err
	}
	records := c.Records()
	width := 0
	for _, chip := range c.Chips() {
		width = max(width, len(chip))
	}
	for i, chip := range c.Chips() {
		n := len(filter.NewState().SetDivision(chip).Apply(records))
		label := render.SanitizeTerminal(chip)
		fmt.Fprintf(a.stdout, "  %d  %s  %d tools\n", i, platform.Cyan(fmt.Sprintf("%-*s", width, label)), n)
	}
	return nil
}

func (a *app) export(global globalOptions, args []string) error {
	fs := pflag.NewFlagSet("export", pflag.ContinueOnError)
	search, division := filterFlags(fs)
	out := fs.String("out", "", "output file")
	if err := a.parse(fs, &global, args); err != nil {
		return err
	}

	logger, err := a.logger(global)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	c, err := a.loadCatalog(global, logger)
	if err != nil {
		return err
	}
	state, err := filterState(c, *search, *division)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	page := render.NewPage(c, state, render.PageOptions{Static: true})
	if err := render.WritePage(&buf, page); err != nil {
		return err
	}
	if *out == "" {
		_, err := buf.WriteTo(a.stdout)
		return err
	}
	if platform.FileExists(*out) {
		logger.Info("replacing existing file", zap.String("path", *out))
	}
	if err := platform.WriteFile(*out, buf.Bytes()); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	platform.PrintOK(a.stderr, fmt.Sprintf("Wrote %s (%d tools)", *out, page.Result.Count))
	return nil
}

func (a *app) serve(global globalOptions, args []string) error {
	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	addr := fs.String("addr", server.DefaultAddr, "listen address")
	if err := a.parse(fs, &global, args); err != nil {
		return err
	}

	if global.logLevel == "" && os.Getenv(platform.EnvLogLevel) == "" {
		global.logLevel = "info"
	}
	logger, err := a.logger(global)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	c, err := a.loadCatalog(global, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	platform.PrintInfo(a.stderr, fmt.Sprintf("Serving %s on http://%s (ctrl+c to stop)", c.Title(), displayAddr(*addr)))
	return server.New(c, logger).ListenAndServe(ctx, *addr)
}

// displayAddr turns ":8080" into "localhost:8080" for the banner.
func displayAddr(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

func (a *app) request(global globalOptions, args []string) error {
	fs := pflag.NewFlagSet("request", pflag.ContinueOnError)
	var draft request.Draft
	fs.StringVar(&draft.Name, "name", "", "tool name")
	fs.StringVar(&draft.Description, "description", "", "what it should do")
	fs.StringVar(&draft.Users, "users", "", "who will use it")
	copyOut := fs.Bool("copy", false, "copy to clipboard")
	if err := a.parse(fs, &global, args); err != nil {
		return err
	}

	logger, err := a.logger(global)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	c, err := a.loadCatalog(global, logger)
	if err != nil {
		return err
	}

	composer := request.NewComposer(c.Title())
	composer.SetDraft(draft)
	fmt.Fprintln(a.stdout, composer.Generate())

	if !*copyOut {
		return nil
	}
	copied, err := composer.Copy(context.Background(), request.SystemClipboard{})
	if err != nil {
		logger.Warn("clipboard unavailable", zap.Error(err))
		platform.PrintWarn(a.stderr, "Could not copy to the clipboard; copy the text above instead.")
		return fmt.Errorf("%w: %w", errCopyFailed, err)
	}
	if copied {
		platform.PrintOK(a.stderr, "Copied request to the clipboard")
	}
	return nil
}

var errCopyFailed = errors.New("copy failed")
