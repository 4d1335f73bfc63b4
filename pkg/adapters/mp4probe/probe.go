// Package mp4probe verifies a produced MP4 container using mp4ff.
package mp4probe

import (
	"fmt"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/timelapse/pkg/ports"
)

// Prober implements ports.OutputProber for MP4 files.
type Prober struct{}

// New creates a new Prober.
func New() *Prober {
	return &Prober{}
}

// Probe parses the container at path and returns its duration and whether a
// video track is present. It never decodes sample data.
func (p *Prober) Probe(path string) (ports.ProbeInfo, error) {
	info := ports.ProbeInfo{}

	f, err := os.Open(path)
	if err != nil {
		return info, fmt.Errorf("open output: %w", err)
	}
	defer f.Close()

	mp4File, err := mp4.DecodeFile(f)
	if err != nil {
		return info, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if moov == nil || moov.Mvhd == nil {
		return info, fmt.Errorf("no movie header in %s", path)
	}

	if moov.Mvhd.Timescale > 0 {
		info.DurationMs = int(moov.Mvhd.Duration * 1000 / uint64(moov.Mvhd.Timescale))
	}

	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
			continue
		}
		if trak.Mdia.Hdlr.HandlerType != "vide" {
			continue
		}
		info.HasVideoTrack = true
		if trak.Tkhd != nil {
			// Tkhd dimensions are 16.16 fixed point.
			info.Width = int(trak.Tkhd.Width >> 16)
			info.Height = int(trak.Tkhd.Height >> 16)
		}
		break
	}

	return info, nil
}

// Ensure Prober implements ports.OutputProber
var _ ports.OutputProber = (*Prober)(nil)
