/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package action

import "errors"

// Failure is a check failure to be reported to the pull request author. Its
// message is shown verbatim.
type Failure struct {
	// Reason is the metrics reason label.
	Reason string
	Err    error
}

func (f *Failure) Error() string { return f.Err.Error() }

func (f *Failure) Unwrap() error { return f.Err }

func fail(reason string, err error) *Failure {
	return &Failure{Reason: reason, Err: err}
}

// IsFailure reports whether err is a check failure rather than an
// operational error.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}
