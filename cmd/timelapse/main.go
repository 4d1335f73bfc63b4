// Package main provides the CLI entry point for timelapse.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/timelapse/pkg/adapters/ffmpeg"
	"github.com/user/timelapse/pkg/adapters/filesink"
	"github.com/user/timelapse/pkg/adapters/ggrenderer"
	"github.com/user/timelapse/pkg/adapters/logger"
	"github.com/user/timelapse/pkg/adapters/mp4probe"
	"github.com/user/timelapse/pkg/adapters/nullsink"
	"github.com/user/timelapse/pkg/adapters/osfilesystem"
	"github.com/user/timelapse/pkg/config"
	"github.com/user/timelapse/pkg/orchestrator"
	"github.com/user/timelapse/pkg/ports"
	"github.com/user/timelapse/pkg/stages/catalog"
	"github.com/user/timelapse/pkg/stages/crop"
	"github.com/user/timelapse/pkg/stages/encode"
	"github.com/user/timelapse/pkg/stages/overlay"
	"github.com/user/timelapse/pkg/summarizer"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "timelapse",
		Usage:   l10n.T("Assemble timestamped still frames into a timelapse video"),
		Version: version,
		Commands: []*cli.Command{
			renderCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     l10n.T("Render a directory of still frames as an MP4 video"),
		ArgsUsage: "<input-dir>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   l10n.T("Output MP4 file path (default: <input-dir>/timelapse.mp4)"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   l10n.T("YAML configuration file path"),
			},

			// Encoding
			&cli.Float64Flag{
				Name:  "fps",
				Usage: l10n.T("Input frames consumed per second of output"),
			},
			&cli.IntFlag{
				Name:  "crf",
				Usage: l10n.T("Video CRF value (0-51, lower is better)"),
			},
			&cli.StringFlag{
				Name:  "preset",
				Usage: l10n.T("Encoder speed/quality preset"),
			},

			// Overlay
			&cli.BoolFlag{
				Name:  "no-overlay",
				Usage: l10n.T("Disable the timestamp overlay"),
			},
			&cli.StringFlag{
				Name:  "font",
				Usage: l10n.T("TTF font file for the timestamp overlay"),
			},
			&cli.StringFlag{
				Name:  "placement",
				Usage: l10n.T("Overlay corner (top-left, top-right, bottom-left, bottom-right)"),
			},

			// Crop
			&cli.BoolFlag{
				Name:  "crop",
				Usage: l10n.T("Crop frames to a target aspect ratio"),
			},
			&cli.StringFlag{
				Name:  "aspect",
				Usage: l10n.T("Crop aspect ratio (e.g. 16:9)"),
			},
			&cli.StringFlag{
				Name:  "anchor",
				Usage: l10n.T("Crop anchor (center, top, bottom, left, right)"),
			},

			// Concurrency
			&cli.IntFlag{
				Name:  "workers",
				Usage: l10n.T("Number of parallel frame workers (0 = CPU count)"),
			},

			// Summary
			&cli.StringFlag{
				Name:  "summary",
				Usage: l10n.T("Output execution summary to file (Markdown format)"),
			},

			// Debug
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   l10n.T("Enable debug output"),
			},
			&cli.StringFlag{
				Name:  "debug-dir",
				Value: "./debug",
				Usage: l10n.T("Directory for debug output"),
			},

			// Logging
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   l10n.T("Log level (debug, info, warn, error)"),
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"Q"},
				Usage:   l10n.T("Suppress all log output"),
			},
		},
		Action: runRender,
	}
}

func runRender(cCtx *cli.Context) error {
	if cCtx.NArg() != 1 {
		return cli.Exit(l10n.T("Input directory argument is required"), 1)
	}

	cfg, err := buildConfig(cCtx)
	if err != nil {
		return err
	}

	var log ports.Logger
	if cCtx.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(cCtx.String("log-level")))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	encoder := ffmpeg.New(fs)
	prober := mp4probe.New()

	var sink ports.DebugSink
	if cCtx.Bool("debug") {
		debugDir := cCtx.String("debug-dir")
		if err := fs.MkdirAll(debugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(debugDir, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	catalogStage := catalog.NewStage(log)
	cropStage := crop.NewStage(renderer, fs, sink, log)
	overlayStage := overlay.NewStage(renderer, fs, sink, log)
	encodeStage := encode.NewStage(encoder, fs, sink, log)

	orch := orchestrator.New(
		catalogStage,
		cropStage,
		overlayStage,
		encodeStage,
		fs,
		prober,
		sink,
		log,
	)

	orchConfig := cfg.ToOrchestratorConfig()

	log.Info(l10n.F("Rendering %s...", orchConfig.InputDir))

	result, err := orch.Run(ctx, orchConfig)
	if err != nil {
		return err
	}

	log.Info(l10n.F("Output saved to %s", result.OutputPath))

	if summaryPath := cCtx.String("summary"); summaryPath != "" {
		if err := writeSummary(summaryPath, cfg, result); err != nil {
			log.Warn(l10n.F("Failed to write summary: %s", err))
		} else {
			log.Info(l10n.F("Summary saved to %s", summaryPath))
		}
	}

	return nil
}

// buildConfig loads defaults, applies an optional YAML file, then CLI
// flag overrides. Flags only override when explicitly set.
func buildConfig(cCtx *cli.Context) (config.Config, error) {
	cfg := config.Defaults()

	if path := cCtx.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	cfg.InputDir = cCtx.Args().First()
	if out := cCtx.String("output"); out != "" {
		cfg.OutputPath = out
	} else if cfg.OutputPath == "" {
		cfg.OutputPath = filepath.Join(cfg.InputDir, "timelapse.mp4")
	}

	if cCtx.IsSet("fps") {
		cfg.FPS = cCtx.Float64("fps")
	}
	if cCtx.IsSet("crf") {
		cfg.CRF = cCtx.Int("crf")
	}
	if cCtx.IsSet("preset") {
		cfg.Preset = cCtx.String("preset")
	}
	if cCtx.IsSet("no-overlay") {
		cfg.OverlayEnabled = false
	}
	if cCtx.IsSet("font") {
		cfg.Overlay.FontPath = cCtx.String("font")
	}
	if cCtx.IsSet("placement") {
		cfg.Overlay.Placement = cCtx.String("placement")
	}
	if cCtx.IsSet("crop") {
		cfg.CropEnabled = cCtx.Bool("crop")
	}
	if cCtx.IsSet("aspect") {
		cfg.Aspect = cCtx.String("aspect")
	}
	if cCtx.IsSet("anchor") {
		cfg.Anchor = cCtx.String("anchor")
	}
	if cCtx.IsSet("workers") {
		cfg.Workers = cCtx.Int("workers")
	}
	if cCtx.IsSet("debug") {
		cfg.Debug = cCtx.Bool("debug")
	}
	if cCtx.IsSet("debug-dir") {
		cfg.DebugDir = cCtx.String("debug-dir")
	}

	return cfg, nil
}

func writeSummary(path string, cfg config.Config, result orchestrator.RunResult) error {
	summary := summarizer.NewBuilder().
		WithSource(summarizer.SourceInfo{
			InputDir:     result.InputDir,
			FrameCount:   result.FrameCount,
			FirstCapture: result.FirstCapture,
			LastCapture:  result.LastCapture,
		}).
		WithSettings(summarizer.Settings{
			FPS:            cfg.FPS,
			CRF:            cfg.CRF,
			Preset:         cfg.Preset,
			OverlayEnabled: cfg.OverlayEnabled,
			FontPath:       cfg.Overlay.FontPath,
			CropEnabled:    cfg.CropEnabled,
			Aspect:         cfg.Aspect,
			Workers:        cfg.Workers,
		}).
		WithVideo(summarizer.VideoInfo{
			OutputPath:   result.OutputPath,
			DurationMs:   result.DurationMs,
			FileSize:     result.FileSize,
			CanvasWidth:  result.CanvasWidth,
			CanvasHeight: result.CanvasHeight,
			Verified:     result.Verified,
		}).
		Build()

	formatter := summarizer.NewMarkdownFormatter(
		summarizer.WithTranslator(l10n.T),
		summarizer.WithVersion(version),
	)
	return summarizer.NewWriter(formatter).Write(path, summary)
}
