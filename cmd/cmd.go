package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/cacheoverflow/rnbindgen/analyzer"
	"github.com/cacheoverflow/rnbindgen/bindgen"
	"github.com/cacheoverflow/rnbindgen/config"
	"github.com/cacheoverflow/rnbindgen/output"
)

// Execute runs the rnbindgen CLI with the given version string.
func Execute(version string) {
	app := New(version, os.Stdout, os.Stderr)
	if err := app.Run(context.Background(), os.Args); err != nil {
		pal := newPalette(!app.Bool("no-color") && isTerminal(os.Stderr))
		fmt.Fprintf(os.Stderr, "%s %v\n", pal.red("error:"), err)
		os.Exit(1)
	}
}

// New builds the command tree. Output goes to stdout, diagnostics and logs
// to stderr.
func New(version string, stdout, stderr io.Writer) *cli.Command {
	var verbosity int
	return &cli.Command{
		Name:                   "rnbindgen",
		Usage:                  "Generate React Native Java bindings for Rust crates",
		Version:                version,
		UseShortOptionHandling: true,
		Writer:                 stdout,
		ErrWriter:              stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Increase log verbosity (repeatable)",
				Config:  cli.BoolConfig{Count: &verbosity},
			},
			&cli.StringFlag{
				Name:  "log",
				Usage: "Write logs to `FILE` instead of stderr",
			},
			&cli.BoolFlag{
				Name:    "no-color",
				Aliases: []string{"C"},
				Usage:   "Disable ANSI color output",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if path := cmd.String("log"); path != "" {
				commonlog.Configure(verbosity, &path)
			} else {
				commonlog.Configure(verbosity, nil)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "Write the generated Java sources to the output directory",
				ArgsUsage: "[project dirs...]",
				Flags:     append(configFlags(), outputFlags()...),
				Action:    generateAction,
			},
			{
				Name:      "emit",
				Usage:     "Print the generated Java sources",
				ArgsUsage: "[project dirs...]",
				Flags:     configFlags(),
				Action:    emitAction,
			},
			{
				Name:      "analyze",
				Usage:     "Print the canonicalized model of the Rust projects",
				ArgsUsage: "[project dirs...]",
				Flags:     configFlags(),
				Action:    analyzeAction,
			},
			{
				Name:   "types",
				Usage:  "List the built-in type correspondences",
				Action: typesAction,
			},
		},
	}
}

func configFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Read configuration from `FILE` (default ./" + config.FileName + ")",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Fail on syntax errors in Rust sources",
		},
		&cli.BoolFlag{
			Name:  "strict-types",
			Usage: "Fail when exported items use unresolved types",
			Value: true,
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Write sources below `DIR`",
		},
		&cli.StringFlag{
			Name:  "base-package",
			Usage: "Java base package whose generated subpackage is replaced",
		},
	}
}

// loadConfig reads the config file and applies the command line overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}
	if cmd.IsSet("strict") {
		cfg.Generator.Strict = cmd.Bool("strict")
	}
	if cmd.IsSet("strict-types") {
		cfg.Generator.StrictTypes = cmd.Bool("strict-types")
	}
	if cmd.IsSet("base-package") {
		cfg.Generator.BasePackage = cmd.String("base-package")
	}
	if cmd.IsSet("out") {
		out, err := filepath.Abs(cmd.String("out"))
		if err != nil {
			return nil, err
		}
		cfg.Generator.OutputDir = out
	}
	return cfg, nil
}

// projectDirs returns the positional arguments, or the configured
// projects when there are none.
func projectDirs(cmd *cli.Command, cfg *config.Config) ([]string, error) {
	dirs := cmd.Args().Slice()
	if len(dirs) == 0 {
		dirs = cfg.ProjectDirs()
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no Rust projects given; pass directories or set rust.modules in %s", config.FileName)
	}
	return dirs, nil
}

// sharedCache is used by every command run in the process.
var sharedCache = sync.OnceValues(func() (*analyzer.Cache, error) {
	return analyzer.NewCache(analyzer.DefaultCacheSize)
})

func newGenerator(cfg *config.Config) (*bindgen.Generator, error) {
	cache, err := sharedCache()
	if err != nil {
		return nil, err
	}
	gc := bindgen.FromConfig(cfg)
	gc.Cache = cache
	return bindgen.New(gc), nil
}

func generate(ctx context.Context, cmd *cli.Command) (*config.Config, *bindgen.Result, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	dirs, err := projectDirs(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}
	g, err := newGenerator(cfg)
	if err != nil {
		return nil, nil, err
	}
	res, err := g.Generate(ctx, dirs...)
	if err != nil {
		return nil, nil, err
	}
	return cfg, res, nil
}

func generateAction(ctx context.Context, cmd *cli.Command) error {
	cfg, res, err := generate(ctx, cmd)
	if err != nil {
		return err
	}
	sink := output.Dir{Root: cfg.OutputPath(), BasePackage: cfg.Generator.BasePackage}
	if err := sink.Write(ctx, res.Units); err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "generated %d classes in %s\n", len(res.Units), sink.Root)
	return nil
}

func emitAction(ctx context.Context, cmd *cli.Command) error {
	_, res, err := generate(ctx, cmd)
	if err != nil {
		return err
	}
	return output.Stream{W: cmd.Root().Writer}.Write(ctx, res.Units)
}

func analyzeAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dirs, err := projectDirs(cmd, cfg)
	if err != nil {
		return err
	}
	g, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	a, report, _, err := g.Analyze(ctx, dirs...)
	if err != nil {
		return err
	}
	w := cmd.Root().Writer
	printAnalysis(w, a, report, newPalette(useColor(cmd, w)))
	return nil
}

func typesAction(ctx context.Context, cmd *cli.Command) error {
	w := cmd.Root().Writer
	printTypes(w, newPalette(useColor(cmd, w)))
	return nil
}

func useColor(cmd *cli.Command, w io.Writer) bool {
	if cmd.Root().Bool("no-color") || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(w)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
