package pipeline

import (
	"fmt"
)

// StageName identifies a pipeline stage in error reporting.
type StageName string

const (
	StageCataloging StageName = "cataloging"
	StageCropping   StageName = "cropping"
	StageOverlaying StageName = "overlaying"
	StageEncoding   StageName = "encoding"
)

// CatalogErrorKind classifies catalog failures.
type CatalogErrorKind int

const (
	// EmptyDirectory means no supported image files were found.
	EmptyDirectory CatalogErrorKind = iota
	// InconsistentDimensions means a frame's pixel dimensions differ from
	// the first frame's.
	InconsistentDimensions
	// UnreadableFile means an image file could not be read or decoded.
	UnreadableFile
)

// String returns the string representation of the kind.
func (k CatalogErrorKind) String() string {
	switch k {
	case EmptyDirectory:
		return "empty directory"
	case InconsistentDimensions:
		return "inconsistent dimensions"
	case UnreadableFile:
		return "unreadable file"
	default:
		return "unknown"
	}
}

// CatalogError reports a frame discovery or validation failure.
type CatalogError struct {
	Kind CatalogErrorKind

	// Path is the offending file or directory.
	Path string

	// Err is the underlying cause, if any.
	Err error
}

func (e *CatalogError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("catalog: %s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("catalog: %s: %s", e.Kind, e.Path)
}

func (e *CatalogError) Unwrap() error { return e.Err }

// OverlayErrorKind classifies overlay failures.
type OverlayErrorKind int

const (
	// FontNotFound means the configured font asset is missing.
	FontNotFound OverlayErrorKind = iota
	// RenderFailure means a frame could not be decoded, drawn, or written.
	RenderFailure
)

// String returns the string representation of the kind.
func (k OverlayErrorKind) String() string {
	switch k {
	case FontNotFound:
		return "font not found"
	case RenderFailure:
		return "render failure"
	default:
		return "unknown"
	}
}

// OverlayError reports a timestamp overlay failure.
type OverlayError struct {
	Kind OverlayErrorKind

	// Path is the font asset or frame the failure relates to.
	Path string

	Err error
}

func (e *OverlayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("overlay: %s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("overlay: %s: %s", e.Kind, e.Path)
}

func (e *OverlayError) Unwrap() error { return e.Err }

// EncodeErrorKind classifies encode failures.
type EncodeErrorKind int

const (
	// EncoderUnavailable means the external encoder binary is not reachable.
	EncoderUnavailable EncodeErrorKind = iota
	// EncoderProcessFailed means the encoder process ran but exited non-zero
	// or produced no output file.
	EncoderProcessFailed
)

// String returns the string representation of the kind.
func (k EncodeErrorKind) String() string {
	switch k {
	case EncoderUnavailable:
		return "encoder unavailable"
	case EncoderProcessFailed:
		return "encoder process failed"
	default:
		return "unknown"
	}
}

// EncodeError reports an external encoder failure. Spawn errors and non-zero
// exits are distinct kinds: EncoderUnavailable covers the precondition check
// and process spawn, EncoderProcessFailed covers a process that ran and
// failed, carrying its exit code and the tail of its stderr.
type EncodeError struct {
	Kind EncodeErrorKind

	// ExitCode is the encoder's exit status for EncoderProcessFailed.
	ExitCode int

	// StderrTail holds the last captured diagnostic output of the encoder.
	StderrTail string

	Err error
}

func (e *EncodeError) Error() string {
	if e.Kind == EncoderProcessFailed && e.StderrTail != "" {
		return fmt.Sprintf("encode: %s (exit %d): %s", e.Kind, e.ExitCode, e.StderrTail)
	}
	if e.Err != nil {
		return fmt.Sprintf("encode: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("encode: %s", e.Kind)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// PipelineError wraps the first failure of any stage, tagged with the stage
// it occurred in.
type PipelineError struct {
	Stage StageName
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }

// WrapStage tags err with the stage name. A nil err returns nil.
func WrapStage(stage StageName, err error) error {
	if err == nil {
		return nil
	}
	return &PipelineError{Stage: stage, Err: err}
}
