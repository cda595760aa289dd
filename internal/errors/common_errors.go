package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies a pipeline failure. Data-quality problems never
// become errors; only the types below can abort a run.
type ErrorType string

const (
	ErrTypeIO        ErrorType = "IO"
	ErrTypeBootstrap ErrorType = "BOOTSTRAP"
	ErrTypeConfig    ErrorType = "CONFIG"
	ErrTypeCancelled ErrorType = "CANCELLED"
)

// PipelineError is a fatal failure raised by a pipeline step.
type PipelineError struct {
	Type    ErrorType
	Step    string
	Path    string
	Message string
	Cause   error
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e == nil {
		return "unknown pipeline error"
	}
	msg := fmt.Sprintf("[%s] %s", e.Type, e.Message)
	if e.Step != "" {
		msg = fmt.Sprintf("[%s] %s: %s", e.Type, e.Step, e.Message)
	}
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap allows errors.Is and errors.As to see the cause
func (e *PipelineError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// WithStep returns a copy of the error attributed to the given step.
func (e *PipelineError) WithStep(step string) *PipelineError {
	c := *e
	c.Step = step
	return &c
}

// NewIOError reports a file that could not be read or written.
func NewIOError(path, message string, cause error) *PipelineError {
	return &PipelineError{
		Type:    ErrTypeIO,
		Path:    path,
		Message: message,
		Cause:   cause,
	}
}

// NewBootstrapError reports that sample data could not be generated.
func NewBootstrapError(path string, cause error) *PipelineError {
	return &PipelineError{
		Type:    ErrTypeBootstrap,
		Path:    path,
		Message: "failed to write bootstrap data",
		Cause:   cause,
	}
}

// NewConfigError reports an invalid configuration.
func NewConfigError(message string, cause error) *PipelineError {
	return &PipelineError{
		Type:    ErrTypeConfig,
		Message: message,
		Cause:   cause,
	}
}

// NewCancellationError reports a run stopped by its context.
func NewCancellationError(step string, cause error) *PipelineError {
	return &PipelineError{
		Type:    ErrTypeCancelled,
		Step:    step,
		Message: "pipeline was cancelled",
		Cause:   cause,
	}
}

// TypeOf returns the ErrorType of the first PipelineError in err's chain,
// or "" when there is none.
func TypeOf(err error) ErrorType {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Type
	}
	return ""
}
