package cascade

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a stage failure.
type ErrorCode string

const (
	// ErrorCapabilityUnavailable means a capability the stage needs is absent.
	ErrorCapabilityUnavailable ErrorCode = "CAPABILITY_UNAVAILABLE"
	// ErrorStageInternal is an error or panic inside the stage.
	ErrorStageInternal ErrorCode = "STAGE_INTERNAL"
	// ErrorNoRegion means the stage's detector found nothing to recognize.
	ErrorNoRegion ErrorCode = "NO_REGION"
)

// StageError is a recovered failure of one cascade stage.
type StageError struct {
	Stage Stage
	Code  ErrorCode
	Cause error
}

func (e *StageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Stage, e.Code, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Code)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

func newStageError(stage Stage, code ErrorCode, cause error) *StageError {
	return &StageError{Stage: stage, Code: code, Cause: cause}
}

// IsCode reports whether err is a StageError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var se *StageError
	return errors.As(err, &se) && se.Code == code
}
