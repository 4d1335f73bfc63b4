package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/user/timelapse/pkg/ports"
)

// stderrTailBytes bounds the diagnostic output carried in an ExitError.
const stderrTailBytes = 4096

// Encoder implements ports.VideoEncoder by invoking the ffmpeg binary.
type Encoder struct {
	// Binary is the encoder executable name or path. Defaults to "ffmpeg".
	Binary string

	fs ports.FileSystem
}

// New creates a new Encoder using the given filesystem for intermediates.
func New(fs ports.FileSystem) *Encoder {
	return &Encoder{
		Binary: "ffmpeg",
		fs:     fs,
	}
}

// Available verifies the encoder binary is reachable on PATH.
// This is a precondition check, not a retry target.
func (e *Encoder) Available() error {
	if _, err := exec.LookPath(e.Binary); err != nil {
		return fmt.Errorf("%s not found on PATH: %w", e.Binary, err)
	}
	return nil
}

// Encode writes the concat list, runs one ffmpeg process over the ordered
// frame sequence, and blocks until it exits. Stderr is captured silently
// and mirrored to job.LogPath when one is set; on a non-zero exit its tail
// is returned inside a *ports.ExitError.
func (e *Encoder) Encode(ctx context.Context, job ports.EncodeJob) error {
	listPath := filepath.Join(job.WorkDir, "frames.txt")
	if err := e.fs.WriteFile(listPath, []byte(ConcatList(job.FramePaths, job.FPS))); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}

	args := BuildArgs(e.Binary, job, listPath)

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	err := cmd.Run()

	if job.LogPath != "" {
		// Diagnostics are best effort and never mask the encode result.
		_ = e.fs.WriteFile(job.LogPath, stderrBuf.Bytes())
	}

	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ports.ExitError{
			Code:       exitErr.ExitCode(),
			StderrTail: tail(stderrBuf.Bytes(), stderrTailBytes),
		}
	}
	return fmt.Errorf("spawn %s: %w", e.Binary, err)
}

// tail returns the last n bytes of b as a string.
func tail(b []byte, n int) string {
	if len(b) > n {
		b = b[len(b)-n:]
	}
	return string(b)
}

// Ensure Encoder implements ports.VideoEncoder
var _ ports.VideoEncoder = (*Encoder)(nil)
