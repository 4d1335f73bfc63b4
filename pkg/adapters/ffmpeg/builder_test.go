package ffmpeg

import (
	"strings"
	"testing"

	"github.com/user/timelapse/pkg/ports"
)

func TestConcatList(t *testing.T) {
	got := ConcatList([]string{"/tmp/a.jpg", "/tmp/b.jpg"}, 6)

	want := "file '/tmp/a.jpg'\n" +
		"duration 0.166667\n" +
		"file '/tmp/b.jpg'\n" +
		"duration 0.166667\n"
	if got != want {
		t.Errorf("concat list mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestConcatList_EscapesQuotes(t *testing.T) {
	got := ConcatList([]string{"/tmp/it's.jpg"}, 1)
	if !strings.Contains(got, `file '/tmp/it'\''s.jpg'`) {
		t.Errorf("expected escaped quote in concat list, got:\n%s", got)
	}
}

func TestBuildArgs(t *testing.T) {
	job := ports.EncodeJob{
		FPS:                 30,
		CRF:                 18,
		Preset:              "slow",
		PixelFormat:         "yuv420p",
		KeyframeIntervalSec: 2,
		OutputPath:          "/out/video.mp4",
	}

	args := BuildArgs("ffmpeg", job, "/work/frames.txt")

	want := []string{
		"ffmpeg", "-hide_banner", "-nostdin", "-y", "-loglevel", "error",
		"-r", "30",
		"-f", "concat", "-safe", "0",
		"-i", "/work/frames.txt",
		"-c:v", "libx265", "-tag:v", "hvc1",
		"-crf", "18",
		"-preset", "slow",
		"-pix_fmt", "yuv420p",
		"-g", "60",
		"/out/video.mp4",
	}
	if len(args) != len(want) {
		t.Fatalf("expected %d args, got %d: %v", len(want), len(args), args)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d]: expected %q, got %q", i, want[i], args[i])
		}
	}
}

func TestBuildArgs_FractionalFPS(t *testing.T) {
	job := ports.EncodeJob{FPS: 1.5, CRF: 18, Preset: "slow", PixelFormat: "yuv420p", KeyframeIntervalSec: 2}
	args := BuildArgs("ffmpeg", job, "list.txt")

	found := false
	for i, a := range args {
		if a == "-r" && i+1 < len(args) {
			if args[i+1] != "1.5" {
				t.Errorf("expected -r 1.5, got -r %s", args[i+1])
			}
			found = true
		}
	}
	if !found {
		t.Error("missing -r flag")
	}
}

func TestBuildArgs_CustomBinary(t *testing.T) {
	job := ports.EncodeJob{FPS: 6, CRF: 18, Preset: "slow", PixelFormat: "yuv420p", KeyframeIntervalSec: 2}
	args := BuildArgs("/opt/ffmpeg/bin/ffmpeg", job, "list.txt")

	if args[0] != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("expected configured binary as argv[0], got %s", args[0])
	}
}

func TestKeyframeInterval_MinimumOne(t *testing.T) {
	job := ports.EncodeJob{FPS: 0.2, KeyframeIntervalSec: 2}
	if g := keyframeInterval(job); g != 1 {
		t.Errorf("expected minimum keyframe interval 1, got %d", g)
	}
}
