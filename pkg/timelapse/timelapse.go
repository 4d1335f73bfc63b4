package timelapse

import (
	"context"

	"github.com/user/timelapse/pkg/adapters/ffmpeg"
	"github.com/user/timelapse/pkg/adapters/ggrenderer"
	"github.com/user/timelapse/pkg/adapters/logger"
	"github.com/user/timelapse/pkg/adapters/mp4probe"
	"github.com/user/timelapse/pkg/adapters/nullsink"
	"github.com/user/timelapse/pkg/adapters/osfilesystem"
	"github.com/user/timelapse/pkg/orchestrator"
	"github.com/user/timelapse/pkg/stages/catalog"
	"github.com/user/timelapse/pkg/stages/crop"
	"github.com/user/timelapse/pkg/stages/encode"
	"github.com/user/timelapse/pkg/stages/overlay"
)

// Render assembles a directory of still frames into a video using default
// adapters and discarding log output.
// For custom dependencies (e.g., custom logger, debug sink), wire
// orchestrator.New directly.
//
// Example:
//
//	cfg := timelapse.NewConfigBuilder().
//	    WithFPS(12).
//	    WithOverlay("/fonts/sans.ttf").
//	    Build("/photos/deck", "/videos/deck.mp4")
//	result, err := timelapse.Render(ctx, cfg)
func Render(ctx context.Context, config orchestrator.Config) (orchestrator.RunResult, error) {
	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	sink := nullsink.New()
	log := logger.NewNoop()

	orch := orchestrator.New(
		catalog.NewStage(log),
		crop.NewStage(renderer, fs, sink, log),
		overlay.NewStage(renderer, fs, sink, log),
		encode.NewStage(ffmpeg.New(fs), fs, sink, log),
		fs,
		mp4probe.New(),
		sink,
		log,
	)

	return orch.Run(ctx, config)
}
