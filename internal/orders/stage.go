package orders

import "errors"

// Stage names where in the placement sequence an attempt currently is.
// A placement moves validating -> locking -> checking -> mutating ->
// persisting -> committed; anything else aborts with a full rollback.
type Stage string

const (
	StageValidating Stage = "validating"
	StageLocking    Stage = "locking"
	StageChecking   Stage = "checking"
	StageMutating   Stage = "mutating"
	StagePersisting Stage = "persisting"
	StageCommitted  Stage = "committed"
)

type stageError struct {
	stage Stage
	err   error
}

func (e *stageError) Error() string { return string(e.stage) + ": " + e.err.Error() }
func (e *stageError) Unwrap() error { return e.err }

func failAt(stage Stage, err error) error { return &stageError{stage: stage, err: err} }

// FailedStage reports which step an unexpected failure came from, for logs.
// Business-rule rejections carry no stage; their sentinel says enough.
func FailedStage(err error) (Stage, bool) {
	var se *stageError
	if errors.As(err, &se) {
		return se.stage, true
	}
	return "", false
}
