package pipeline

import "fmt"

// PipelineError wraps any fault that escapes the four pipeline stages.
// The caller translates it to a transport-level response; nothing inside
// the core is fatal to the process.
type PipelineError struct {
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("chat pipeline: %s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}
