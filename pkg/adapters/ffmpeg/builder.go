// Package ffmpeg provides a ports.VideoEncoder implementation that drives
// an external ffmpeg process over the concat demuxer.
package ffmpeg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/user/timelapse/pkg/ports"
)

// ConcatList renders the concat demuxer input for the job: one `file` line
// per frame followed by its display duration (1/fps seconds). The trailing
// duration is ignored by the demuxer but kept for uniformity.
func ConcatList(framePaths []string, fps float64) string {
	var b strings.Builder
	duration := 1.0 / fps
	for _, p := range framePaths {
		fmt.Fprintf(&b, "file '%s'\n", escapeConcatPath(p))
		fmt.Fprintf(&b, "duration %.6f\n", duration)
	}
	return b.String()
}

// escapeConcatPath escapes single quotes for the concat demuxer, which
// terminates quoted strings on an unescaped quote.
func escapeConcatPath(p string) string {
	return strings.ReplaceAll(p, "'", `'\''`)
}

// BuildArgs constructs the complete argument slice for a job, starting with
// the encoder executable. The command reads the ordered frame sequence from
// the concat list at listPath and writes one video container to
// job.OutputPath.
func BuildArgs(binary string, job ports.EncodeJob, listPath string) []string {
	args := make([]string, 0, 32)

	// --- Preamble ---
	args = append(args, binary, "-hide_banner", "-nostdin", "-y", "-loglevel", "error")

	// --- Input: ordered frame sequence at the configured rate ---
	args = append(args,
		"-r", formatFPS(job.FPS),
		"-f", "concat", "-safe", "0",
		"-i", listPath,
	)

	// --- Video codec ---
	args = append(args,
		"-c:v", "libx265", "-tag:v", "hvc1",
		"-crf", strconv.Itoa(job.CRF),
		"-preset", job.Preset,
		"-pix_fmt", job.PixelFormat,
		"-g", strconv.Itoa(keyframeInterval(job)),
	)

	// --- Output ---
	args = append(args, job.OutputPath)

	return args
}

// keyframeInterval converts the keyframe time spacing into a frame count.
func keyframeInterval(job ports.EncodeJob) int {
	g := int(job.FPS * float64(job.KeyframeIntervalSec))
	if g < 1 {
		g = 1
	}
	return g
}

// formatFPS renders the frame rate without a trailing fraction when whole.
func formatFPS(fps float64) string {
	if fps == float64(int(fps)) {
		return strconv.Itoa(int(fps))
	}
	return strconv.FormatFloat(fps, 'f', -1, 64)
}
