/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package classifier

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedHeader is matched by an UnknownOrMissingTypeError whose header
// did not follow the "type(scope): subject" format at all.
var ErrMalformedHeader = errors.New("header does not match the conventional commit format")

// UnknownOrMissingTypeError reports a commit type that is absent, empty or
// outside the allow-list. The message is shown verbatim to pull request authors.
type UnknownOrMissingTypeError struct {
	Type         string
	AllowedTypes []string

	malformed bool
}

func (e *UnknownOrMissingTypeError) Error() string {
	return fmt.Sprintf("Invalid or missing task type: '%s'. Must be one of: %s",
		e.Type, strings.Join(e.AllowedTypes, ", "))
}

// Unwrap returns ErrMalformedHeader when the header could not be decomposed.
func (e *UnknownOrMissingTypeError) Unwrap() error {
	if e.malformed {
		return ErrMalformedHeader
	}
	return nil
}

// TicketPatternMismatchError reports a title without the required ticket reference.
type TicketPatternMismatchError struct {
	MatchedText string
	Pattern     string
}

func (e *TicketPatternMismatchError) Error() string {
	return fmt.Sprintf("Invalid or missing task number: '%s'. Must match: %s", e.MatchedText, e.Pattern)
}
