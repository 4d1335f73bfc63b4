package summarizer

import (
	"fmt"
	"strings"
	"time"
)

// Translator translates a display label. The default is the identity.
type Translator func(key string) string

// MarkdownFormatter formats a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate Translator
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator sets the label translator.
func WithTranslator(t Translator) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion includes the application version in the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(key string) string { return key },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format converts a Summary to Markdown.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Timelapse Summary"))

	fmt.Fprintf(&b, "## %s\n\n", t("Source"))
	fmt.Fprintf(&b, "- %s: %s\n", t("Input Directory"), summary.Source.InputDir)
	fmt.Fprintf(&b, "- %s: %d\n", t("Frame Count"), summary.Source.FrameCount)
	if !summary.Source.FirstCapture.IsZero() {
		fmt.Fprintf(&b, "- %s: %s\n", t("First Capture"), summary.Source.FirstCapture.Format("2006-01-02 15:04"))
		fmt.Fprintf(&b, "- %s: %s\n", t("Last Capture"), summary.Source.LastCapture.Format("2006-01-02 15:04"))
		fmt.Fprintf(&b, "- %s: %s\n", t("Capture Span"), formatSpan(summary.Source.LastCapture.Sub(summary.Source.FirstCapture)))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Settings"))
	fmt.Fprintf(&b, "- %s: %g fps\n", t("Frame Rate"), summary.Settings.FPS)
	fmt.Fprintf(&b, "- %s: %d\n", t("CRF"), summary.Settings.CRF)
	fmt.Fprintf(&b, "- %s: %s\n", t("Preset"), summary.Settings.Preset)
	fmt.Fprintf(&b, "- %s: %s\n", t("Overlay"), enabled(t, summary.Settings.OverlayEnabled))
	if summary.Settings.OverlayEnabled && summary.Settings.FontPath != "" {
		fmt.Fprintf(&b, "- %s: %s\n", t("Font"), summary.Settings.FontPath)
	}
	fmt.Fprintf(&b, "- %s: %s\n", t("Crop"), enabled(t, summary.Settings.CropEnabled))
	if summary.Settings.CropEnabled && summary.Settings.Aspect != "" {
		fmt.Fprintf(&b, "- %s: %s\n", t("Aspect Ratio"), summary.Settings.Aspect)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## %s\n\n", t("Video"))
	fmt.Fprintf(&b, "- %s: %s\n", t("Output"), summary.Video.OutputPath)
	fmt.Fprintf(&b, "- %s: %d ms\n", t("Duration"), summary.Video.DurationMs)
	fmt.Fprintf(&b, "- %s: %s\n", t("File Size"), formatBytes(summary.Video.FileSize))
	if summary.Video.CanvasWidth > 0 {
		fmt.Fprintf(&b, "- %s: %dx%d\n", t("Resolution"), summary.Video.CanvasWidth, summary.Video.CanvasHeight)
	}
	if summary.Video.Verified {
		fmt.Fprintf(&b, "- %s: %s\n", t("Verified"), t("Yes"))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "---\n%s: %s", t("Generated"), summary.GeneratedAt.Format(time.RFC3339))
	if f.version != "" {
		fmt.Fprintf(&b, " (%s)", f.version)
	}
	b.WriteString("\n")

	return b.String()
}

func enabled(t Translator, on bool) string {
	if on {
		return t("Enabled")
	}
	return t("Disabled")
}

// formatSpan renders a capture span in the largest useful units.
func formatSpan(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		h := int(d.Hours())
		m := int(d.Minutes()) % 60
		return fmt.Sprintf("%dh %dm", h, m)
	}
	days := int(d.Hours()) / 24
	h := int(d.Hours()) % 24
	return fmt.Sprintf("%dd %dh", days, h)
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
