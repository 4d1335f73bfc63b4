// Package e2e contains end-to-end tests for the timelapse CLI.
// These tests require a working ffmpeg binary on PATH.
package e2e

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"golang.org/x/image/font/gofont/goregular"
)

// getBinaryName returns the test binary name with platform-specific extension
func getBinaryName() string {
	if runtime.GOOS == "windows" {
		return "timelapse-test.exe"
	}
	return "timelapse-test"
}

// getBinaryPath returns the path to execute the test binary
// If TIMELAPSE_BINARY env var is set, use that instead (for CI with pre-built binaries)
func getBinaryPath() string {
	if path := os.Getenv("TIMELAPSE_BINARY"); path != "" {
		return path
	}
	if runtime.GOOS == "windows" {
		return ".\\timelapse-test.exe"
	}
	return "./timelapse-test"
}

// shouldBuildBinary returns true if we need to build the binary (no pre-built binary provided)
func shouldBuildBinary() bool {
	return os.Getenv("TIMELAPSE_BINARY") == ""
}

func getProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return filepath.Dir(filepath.Dir(dir))
}

// writeTestFrames creates PNG frames with filename timestamps one minute apart.
func writeTestFrames(t *testing.T, dir string, count int) {
	t.Helper()
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local)
	for i := 0; i < count; i++ {
		img := image.NewRGBA(image.Rect(0, 0, 320, 240))
		shade := uint8(i * 16)
		for y := 0; y < 240; y++ {
			for x := 0; x < 320; x++ {
				img.Set(x, y, color.RGBA{R: shade, G: 128, B: 255 - shade, A: 255})
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

// TestRenderCommand tests the render subcommand against generated frames
func TestRenderCommand(t *testing.T) {
	if os.Getenv("TIMELAPSE_E2E") != "1" {
		t.Skip("Skipping E2E test (set TIMELAPSE_E2E=1 to run)")
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("Skipping E2E test (ffmpeg not found on PATH)")
	}

	// Build the CLI if no pre-built binary is provided
	if shouldBuildBinary() {
		buildCmd := exec.Command("go", "build", "-o", getBinaryName(), "./cmd/timelapse")
		buildCmd.Dir = getProjectRoot(t)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			t.Fatalf("Failed to build CLI: %v\n%s", err, out)
		}
		defer os.Remove(filepath.Join(getProjectRoot(t), getBinaryName()))
	}

	inputDir := t.TempDir()
	writeTestFrames(t, inputDir, 12)

	fontPath := filepath.Join(t.TempDir(), "test.ttf")
	if err := os.WriteFile(fontPath, goregular.TTF, 0644); err != nil {
		t.Fatal(err)
	}

	outputPath := filepath.Join(t.TempDir(), "timelapse.mp4")

	// Run the render command (flags must come before the directory argument)
	cmd := exec.Command(
		getBinaryPath(),
		"render",
		"-o", outputPath,
		"--fps", "6",
		"--preset", "ultrafast",
		"--font", fontPath,
		inputDir,
	)
	cmd.Dir = getProjectRoot(t)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Fatalf("Render command failed: %v\nstdout: %s\nstderr: %s", err, stdout.String(), stderr.String())
	}

	// Verify output file
	info, err := os.Stat(outputPath)
	if err != nil {
		t.Fatalf("Output file not found: %v", err)
	}
	if info.Size() < 1024 {
		t.Errorf("Output file too small: %d bytes", info.Size())
	}

	// Verify MP4 signature
	videoData, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if len(videoData) < 8 || string(videoData[4:8]) != "ftyp" {
		t.Error("Invalid MP4 file")
	}

	// No stray partial file remains next to the output
	partial := filepath.Join(filepath.Dir(outputPath), "timelapse.partial.mp4")
	if _, err := os.Stat(partial); !os.IsNotExist(err) {
		t.Errorf("Partial file left behind: %s", partial)
	}

	t.Logf("Video created: %d bytes", info.Size())
}

// TestRenderNoOverlay tests rendering without the timestamp overlay
func TestRenderNoOverlay(t *testing.T) {
	if os.Getenv("TIMELAPSE_E2E") != "1" {
		t.Skip("Skipping E2E test (set TIMELAPSE_E2E=1 to run)")
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("Skipping E2E test (ffmpeg not found on PATH)")
	}

	if shouldBuildBinary() {
		buildCmd := exec.Command("go", "build", "-o", getBinaryName(), "./cmd/timelapse")
		buildCmd.Dir = getProjectRoot(t)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			t.Fatalf("Failed to build CLI: %v\n%s", err, out)
		}
		defer os.Remove(filepath.Join(getProjectRoot(t), getBinaryName()))
	}

	inputDir := t.TempDir()
	writeTestFrames(t, inputDir, 6)
	outputPath := filepath.Join(t.TempDir(), "plain.mp4")

	cmd := exec.Command(
		getBinaryPath(),
		"render",
		"-o", outputPath,
		"--no-overlay",
		"--preset", "ultrafast",
		inputDir,
	)
	cmd.Dir = getProjectRoot(t)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.Fatalf("Render command failed: %v\nstdout: %s\nstderr: %s", err, stdout.String(), stderr.String())
	}

	if _, err := os.Stat(outputPath); err != nil {
		t.Fatalf("Output file not found: %v", err)
	}
}

// TestVersionFlag tests the version output
func TestVersionFlag(t *testing.T) {
	if os.Getenv("TIMELAPSE_E2E") != "1" {
		t.Skip("Skipping E2E test (set TIMELAPSE_E2E=1 to run)")
	}

	if shouldBuildBinary() {
		buildCmd := exec.Command("go", "build", "-o", getBinaryName(), "./cmd/timelapse")
		buildCmd.Dir = getProjectRoot(t)
		if out, err := buildCmd.CombinedOutput(); err != nil {
			t.Fatalf("Failed to build CLI: %v\n%s", err, out)
		}
		defer os.Remove(filepath.Join(getProjectRoot(t), getBinaryName()))
	}

	cmd := exec.Command(getBinaryPath(), "--version")
	cmd.Dir = getProjectRoot(t)

	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Version command failed: %v\n%s", err, out)
	}
	if !bytes.Contains(out, []byte("timelapse")) {
		t.Errorf("Unexpected version output: %s", out)
	}
}
