package sortbench

import (
	"errors"
	"fmt"
)

// ErrRunInProgress is returned by Sort when the harness is already running.
var ErrRunInProgress = errors.New("sortbench: run already in progress")

// JobError represents a failure while executing a single job, either an
// error returned by the algorithm or a panic raised inside it
type JobError struct {
	// Algorithm is the ID of the algorithm the job ran
	Algorithm string
	// Sample is the sample index of the job
	Sample int
	// Cause is the original panic value or error
	Cause interface{}
}

func (e *JobError) Error() string {
	return fmt.Sprintf("job %s (sample %d) failed: %v", e.Algorithm, e.Sample, e.Cause)
}

func (e *JobError) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// NewJobError creates a JobError
func NewJobError(algorithm string, sample int, cause interface{}) error {
	return &JobError{Algorithm: algorithm, Sample: sample, Cause: cause}
}

// UnsupportedElementTypeError is returned when an algorithm that needs
// numeric elements is selected for a run over another element type
type UnsupportedElementTypeError struct {
	Algorithm   string
	ElementType string
}

func (e *UnsupportedElementTypeError) Error() string {
	return fmt.Sprintf("algorithm %s does not support %s elements", e.Algorithm, e.ElementType)
}

// NewUnsupportedElementTypeError creates an UnsupportedElementTypeError
func NewUnsupportedElementTypeError(algorithm, elementType string) error {
	return &UnsupportedElementTypeError{Algorithm: algorithm, ElementType: elementType}
}

// VerificationError is returned by a job run with Verify set when the
// algorithm's output is not ordered under the job's policy
type VerificationError struct {
	Algorithm string
	Sample    int
	// Index is the first offending position in the output
	Index  int
	Reason string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("%s output for sample %d invalid at index %d: %s", e.Algorithm, e.Sample, e.Index, e.Reason)
}

// NewVerificationError creates a VerificationError
func NewVerificationError(algorithm string, sample, index int, reason string) error {
	return &VerificationError{Algorithm: algorithm, Sample: sample, Index: index, Reason: reason}
}

// ConfigError represents an error in configuration parameters
type ConfigError struct {
	// Field is the name of the configuration field that's invalid
	Field string
	// Value is the invalid value provided
	Value interface{}
	// Reason explains why the value is invalid
	Reason string
	// Err is the underlying error, if any
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in field %s (value: %v): %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a ConfigError
func NewConfigError(field string, value interface{}, reason string, err error) error {
	return &ConfigError{Field: field, Value: value, Reason: reason, Err: err}
}
