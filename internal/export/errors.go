// Package export persists a run's artifacts: per-frame stills, the
// looping animation and the solution record.
package export

import "fmt"

// EncodingError reports a failed animation encode: an empty frame
// sequence or a missing frame file. Fatal to the animation export
// only; static and solution exports are unaffected.
type EncodingError struct {
	Reason string
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("encoding: %s: %v", e.Reason, e.Err)
	}
	return "encoding: " + e.Reason
}

func (e *EncodingError) Unwrap() error { return e.Err }

// AlreadyExistsError reports that a solution record target exists and
// overwriting is disabled. The existing file is left untouched.
type AlreadyExistsError struct {
	Path string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("solution record already exists at %s", e.Path)
}
