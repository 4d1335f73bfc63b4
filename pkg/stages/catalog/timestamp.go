package catalog

import (
	"regexp"
	"time"
)

// timestampPatterns maps filename token shapes to Go time layouts. The
// primary format is the capture job's YYYY-MM-DD_HHMM convention; the rest
// cover common camera naming variants. Longer tokens are matched first so a
// seconds-bearing name is not truncated to the minute.
var timestampPatterns = []struct {
	re     *regexp.Regexp
	layout string
}{
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}_\d{2}-\d{2}-\d{2}`), "2006-01-02_15-04-05"},
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}_\d{2}-\d{2}`), "2006-01-02_15-04"},
	{regexp.MustCompile(`\d{4}-\d{2}-\d{2}_\d{4}`), "2006-01-02_1504"},
	{regexp.MustCompile(`\d{8}_\d{6}`), "20060102_150405"},
}

// ParseTimestamp extracts a capture timestamp token from a filename.
// The token may appear anywhere in the name. Returns false when no
// pattern yields a valid time, in which case the caller is expected to
// fall back to the file modification time.
func ParseTimestamp(name string) (time.Time, bool) {
	for _, p := range timestampPatterns {
		token := p.re.FindString(name)
		if token == "" {
			continue
		}
		ts, err := time.ParseInLocation(p.layout, token, time.Local)
		if err != nil {
			continue
		}
		return ts, true
	}
	return time.Time{}, false
}
