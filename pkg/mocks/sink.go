package mocks

import (
	"image"
	"sync"

	"github.com/user/timelapse/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.Mutex

	EnabledValue bool

	CatalogJSON    []byte
	CroppedFrames  []int
	OverlaidFrames []int
	EncoderLogs    [][]byte
}

// NewDebugSink creates a new mock DebugSink that reports itself enabled.
func NewDebugSink() *DebugSink {
	return &DebugSink{EnabledValue: true}
}

func (m *DebugSink) Enabled() bool {
	return m.EnabledValue
}

func (m *DebugSink) SaveCatalogJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CatalogJSON = data
	return nil
}

func (m *DebugSink) SaveCroppedFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CroppedFrames = append(m.CroppedFrames, index)
	return nil
}

func (m *DebugSink) SaveOverlaidFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OverlaidFrames = append(m.OverlaidFrames, index)
	return nil
}

func (m *DebugSink) SaveEncoderLog(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EncoderLogs = append(m.EncoderLogs, data)
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
