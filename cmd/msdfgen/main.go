// Command msdfgen generates distance field images for the glyphs of a font.
//
// Usage:
//
//	msdfgen [options] <characters>
//
// For every character it writes <kind>_U+XXXX.png to the output directory,
// and optionally a rendered preview and a JSON file with field metrics.
// Without -font, the Go Regular font is used.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/gogpu/msdf"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "msdfgen: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "msdfgen"
	app.Usage = "Generate multi-channel signed distance fields for font glyphs"
	app.ArgsUsage = "<characters>"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "font",
			Aliases: []string{"f"},
			Usage:   "TrueType or OpenType font file (default: Go Regular)",
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML configuration file; flags override its settings",
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Value:   ".",
			Usage:   "Output directory",
		},
		&cli.StringFlag{
			Name:  "kind",
			Value: "msdf",
			Usage: "Field kind: sdf, psdf, msdf or mtsdf",
		},
		&cli.IntFlag{
			Name:  "size",
			Value: 32,
			Usage: "Cell width and height in texels",
		},
		&cli.Float64Flag{
			Name:  "range",
			Value: 4,
			Usage: "Distance range in texels",
		},
		&cli.Float64Flag{
			Name:  "angle",
			Value: 3,
			Usage: "Corner angle threshold in radians",
		},
		&cli.StringFlag{
			Name:  "coloring",
			Value: "simple",
			Usage: "Edge coloring strategy: simple or inktrap",
		},
		&cli.Uint64Flag{
			Name:  "seed",
			Usage: "Edge coloring seed",
		},
		&cli.StringFlag{
			Name:  "error-correction",
			Value: "edge-priority",
			Usage: "Error correction mode: disabled, indiscriminate, edge-priority or edge-only",
		},
		&cli.BoolFlag{
			Name:  "no-overlap",
			Usage: "Disable overlapping contour support",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "Number of glyphs generated in parallel (0: all CPUs)",
		},
		&cli.IntFlag{
			Name:  "cache",
			Usage: "Fields kept per cache shard; glyphs shared by several characters are generated once",
		},
		&cli.IntFlag{
			Name:  "preview",
			Usage: "Also render each field at this size into preview_U+XXXX.png",
		},
		&cli.StringFlag{
			Name:  "metrics",
			Usage: "Write field metrics as JSON to this file",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log generation details",
		},
	}
	app.Before = func(c *cli.Context) error {
		setupLogger(c.Bool("verbose"))
		return nil
	}
	app.Action = run
	return app
}

// setupLogger installs a text handler on terminals and a JSON handler
// otherwise, so that redirected logs stay machine-readable.
func setupLogger(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if term.IsTerminal(int(os.Stderr.Fd())) {
		h = slog.NewTextHandler(os.Stderr, opts)
	} else {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	msdf.SetLogger(slog.New(h))
}

func run(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c.NArg() != 1 {
		return fmt.Errorf("expected one argument with the characters to generate, got %d", c.NArg())
	}
	cfg, err := configFromFlags(c)
	if err != nil {
		return err
	}
	job := &job{
		fontPath:    c.String("font"),
		chars:       c.Args().First(),
		outDir:      c.String("out"),
		previewSize: c.Int("preview"),
		metricsPath: c.String("metrics"),
		config:      cfg,
	}
	return job.run(ctx)
}

