package pipeline

import "fmt"

// Stage names used in progress events and error reports.
const (
	StageValidating       = "validating"
	StageComputing        = "computing_breakdown"
	StageRendering        = "rendering"
	StageLetterheadLookup = "letterhead_lookup"
	StageCompositing      = "compositing"
	StageUploading        = "uploading"
	StagePersisting       = "persisting"
	StageNotifying        = "notifying"
	StageDone             = "done"
)

// GenerationError reports which stage of offer generation failed.
type GenerationError struct {
	Stage string
	Cause error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("offer generation failed at %s: %v", e.Stage, e.Cause)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

func stageErr(stage string, cause error) *GenerationError {
	return &GenerationError{Stage: stage, Cause: cause}
}
