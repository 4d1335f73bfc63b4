// Package integration contains integration tests for the timelapse pipeline.
package integration

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/user/timelapse/pkg/adapters/ggrenderer"
	"github.com/user/timelapse/pkg/adapters/logger"
	"github.com/user/timelapse/pkg/adapters/nullsink"
	"github.com/user/timelapse/pkg/adapters/osfilesystem"
	"github.com/user/timelapse/pkg/mocks"
	"github.com/user/timelapse/pkg/orchestrator"
	"github.com/user/timelapse/pkg/pipeline"
	"github.com/user/timelapse/pkg/ports"
	"github.com/user/timelapse/pkg/stages/catalog"
	"github.com/user/timelapse/pkg/stages/crop"
	"github.com/user/timelapse/pkg/stages/encode"
	"github.com/user/timelapse/pkg/stages/overlay"
)

// writeFrames writes PNG frames with filename timestamps one minute apart.
func writeFrames(t *testing.T, dir string, count, width, height int) {
	t.Helper()
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local)
	for i := 0; i < count; i++ {
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		shade := uint8(40 + i*20)
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				img.Set(x, y, color.RGBA{R: shade, G: shade, B: 255, A: 255})
			}
		}
		name := base.Add(time.Duration(i)*time.Minute).Format("2006-01-02_1504") + ".png"
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			t.Fatal(err)
		}
		f.Close()
	}
}

func writeFont(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "test.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestCatalogToOverlay runs the catalog and overlay stages against real
// files on disk.
func TestCatalogToOverlay(t *testing.T) {
	inputDir := t.TempDir()
	writeFrames(t, inputDir, 4, 160, 120)
	fontPath := writeFont(t, t.TempDir())

	log := logger.NewNoop()

	catalogStage := catalog.NewStage(log)
	catalogResult, err := catalogStage.Execute(context.Background(), pipeline.CatalogInput{
		Dir: inputDir,
	})
	if err != nil {
		t.Fatalf("Catalog stage failed: %v", err)
	}

	if len(catalogResult.FrameSet.Frames) != 4 {
		t.Fatalf("expected 4 frames, got %d", len(catalogResult.FrameSet.Frames))
	}
	if catalogResult.FrameSet.Dims.Width != 160 || catalogResult.FrameSet.Dims.Height != 120 {
		t.Errorf("unexpected dimensions %+v", catalogResult.FrameSet.Dims)
	}
	for i, frame := range catalogResult.FrameSet.Frames {
		if frame.Sequence != i {
			t.Errorf("frame %d has sequence %d", i, frame.Sequence)
		}
	}

	renderer := ggrenderer.New()
	fs := osfilesystem.New()
	overlayStage := overlay.NewStage(renderer, fs, nullsink.New(), log)

	overlayCfg := pipeline.DefaultOverlayConfig()
	overlayCfg.FontPath = fontPath

	overlayResult, err := overlayStage.Execute(context.Background(), pipeline.OverlayInput{
		Frames:  catalogResult.FrameSet.Frames,
		Dims:    catalogResult.FrameSet.Dims,
		Config:  overlayCfg,
		OutDir:  filepath.Join(t.TempDir(), "overlaid"),
		Workers: 2,
	})
	if err != nil {
		t.Fatalf("Overlay stage failed: %v", err)
	}

	if len(overlayResult.Frames) != 4 {
		t.Fatalf("expected 4 overlaid frames, got %d", len(overlayResult.Frames))
	}
	for _, frame := range overlayResult.Frames {
		info, err := os.Stat(frame.Path)
		if err != nil {
			t.Fatalf("overlaid frame missing: %v", err)
		}
		if info.Size() == 0 {
			t.Errorf("overlaid frame %s is empty", frame.Path)
		}
	}
}

// TestCropToOverlay runs the crop and overlay stages in sequence.
func TestCropToOverlay(t *testing.T) {
	inputDir := t.TempDir()
	writeFrames(t, inputDir, 2, 200, 150)
	fontPath := writeFont(t, t.TempDir())

	log := logger.NewNoop()
	renderer := ggrenderer.New()
	fs := osfilesystem.New()

	catalogStage := catalog.NewStage(log)
	catalogResult, err := catalogStage.Execute(context.Background(), pipeline.CatalogInput{Dir: inputDir})
	if err != nil {
		t.Fatalf("Catalog stage failed: %v", err)
	}

	cropStage := crop.NewStage(renderer, fs, nullsink.New(), log)
	cropResult, err := cropStage.Execute(context.Background(), pipeline.CropInput{
		Frames:  catalogResult.FrameSet.Frames,
		Dims:    catalogResult.FrameSet.Dims,
		AspectW: 16,
		AspectH: 9,
		Anchor:  pipeline.AnchorCenter,
		OutDir:  filepath.Join(t.TempDir(), "cropped"),
		Workers: 2,
	})
	if err != nil {
		t.Fatalf("Crop stage failed: %v", err)
	}

	// 200x150 constrained to 16:9 keeps the full width.
	if cropResult.Dims.Width != 200 {
		t.Errorf("expected width 200, got %d", cropResult.Dims.Width)
	}
	if cropResult.Dims.Height != 112 {
		t.Errorf("expected height 112, got %d", cropResult.Dims.Height)
	}

	overlayStage := overlay.NewStage(renderer, fs, nullsink.New(), log)
	overlayCfg := pipeline.DefaultOverlayConfig()
	overlayCfg.FontPath = fontPath

	if _, err := overlayStage.Execute(context.Background(), pipeline.OverlayInput{
		Frames:  cropResult.Frames,
		Dims:    cropResult.Dims,
		Config:  overlayCfg,
		OutDir:  filepath.Join(t.TempDir(), "overlaid"),
		Workers: 2,
	}); err != nil {
		t.Fatalf("Overlay stage failed: %v", err)
	}
}

// TestFullPipeline runs the orchestrator with real stages and a fake
// encoder process.
func TestFullPipeline(t *testing.T) {
	inputDir := t.TempDir()
	writeFrames(t, inputDir, 6, 160, 120)
	fontPath := writeFont(t, t.TempDir())
	outputPath := filepath.Join(t.TempDir(), "out.mp4")

	log := logger.NewNoop()
	renderer := ggrenderer.New()
	fs := osfilesystem.New()

	// The fake encoder writes a placeholder file where ffmpeg would.
	encoder := &mocks.VideoEncoder{
		EncodeFunc: func(ctx context.Context, job ports.EncodeJob) error {
			if len(job.FramePaths) != 6 {
				return fmt.Errorf("expected 6 frame paths, got %d", len(job.FramePaths))
			}
			return os.WriteFile(job.OutputPath, []byte("mp4"), 0644)
		},
	}
	prober := &mocks.OutputProber{
		ProbeFunc: func(path string) (ports.ProbeInfo, error) {
			return ports.ProbeInfo{DurationMs: 1000, HasVideoTrack: true, Width: 160, Height: 120}, nil
		},
	}

	orch := orchestrator.New(
		catalog.NewStage(log),
		crop.NewStage(renderer, fs, nullsink.New(), log),
		overlay.NewStage(renderer, fs, nullsink.New(), log),
		encode.NewStage(encoder, fs, nullsink.New(), log),
		fs,
		prober,
		nullsink.New(),
		log,
	)

	cfg := orchestrator.DefaultConfig()
	cfg.InputDir = inputDir
	cfg.OutputPath = outputPath
	cfg.Overlay.FontPath = fontPath
	cfg.Workers = 2

	result, err := orch.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}

	if result.FrameCount != 6 {
		t.Errorf("expected 6 frames, got %d", result.FrameCount)
	}
	if _, err := os.Stat(outputPath); err != nil {
		t.Errorf("output file missing: %v", err)
	}
	if !result.Verified {
		t.Error("expected output to verify")
	}
	// The capture span covers five one-minute gaps.
	if got := result.LastCapture.Sub(result.FirstCapture); got != 5*time.Minute {
		t.Errorf("expected 5m span, got %v", got)
	}

	// The encoder ran against the overlaid intermediates, not the sources.
	if len(encoder.EncodeCalls) != 1 {
		t.Fatalf("expected one encode call, got %d", len(encoder.EncodeCalls))
	}
	for _, path := range encoder.EncodeCalls[0].FramePaths {
		if filepath.Dir(path) == inputDir {
			t.Errorf("encoder consumed a source frame: %s", path)
		}
	}

	// The run-scoped working directory is cleaned up.
	workDir := filepath.Dir(filepath.Dir(encoder.EncodeCalls[0].FramePaths[0]))
	if _, err := os.Stat(workDir); !os.IsNotExist(err) {
		t.Errorf("expected working directory %s to be removed", workDir)
	}
}
