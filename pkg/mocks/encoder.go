// Package mocks provides shared test doubles for the ports interfaces.
package mocks

import (
	"context"

	"github.com/user/timelapse/pkg/ports"
)

// VideoEncoder is a mock implementation of ports.VideoEncoder.
type VideoEncoder struct {
	AvailableFunc func() error
	EncodeFunc    func(ctx context.Context, job ports.EncodeJob) error

	// Recorded calls for verification
	AvailableCalled bool
	EncodeCalls     []ports.EncodeJob
}

func (m *VideoEncoder) Available() error {
	m.AvailableCalled = true
	if m.AvailableFunc != nil {
		return m.AvailableFunc()
	}
	return nil
}

func (m *VideoEncoder) Encode(ctx context.Context, job ports.EncodeJob) error {
	m.EncodeCalls = append(m.EncodeCalls, job)
	if m.EncodeFunc != nil {
		return m.EncodeFunc(ctx, job)
	}
	return nil
}

var _ ports.VideoEncoder = (*VideoEncoder)(nil)

// OutputProber is a mock implementation of ports.OutputProber.
type OutputProber struct {
	ProbeFunc func(path string) (ports.ProbeInfo, error)

	ProbeCalls []string
}

func (m *OutputProber) Probe(path string) (ports.ProbeInfo, error) {
	m.ProbeCalls = append(m.ProbeCalls, path)
	if m.ProbeFunc != nil {
		return m.ProbeFunc(path)
	}
	return ports.ProbeInfo{HasVideoTrack: true}, nil
}

var _ ports.OutputProber = (*OutputProber)(nil)
