/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package parser

import "regexp"

// Options configures a Parser. The zero value disables every optional
// behavior: no notes, no references, no header decomposition. Use
// DefaultOptions or ConventionalCommitsOptions as a starting point.
type Options struct {
	// NoteKeywords are the note titles recognized at the start of a footer line
	// (default: "BREAKING CHANGE", "BREAKING-CHANGE").
	NoteKeywords []string

	// NotesPattern optionally replaces the note matcher. It receives the
	// keywords joined with "|" and must return a pattern whose first group is
	// the note title and second group the note text.
	NotesPattern func(keywords string) *regexp.Regexp

	// IssuePrefixes are the literal prefixes that introduce an issue id
	// (default: "#"). When empty no reference is ever extracted.
	IssuePrefixes []string

	// IssuePrefixesCaseSensitive controls prefix matching (default: false).
	IssuePrefixesCaseSensitive bool

	// ReferenceActions are the verbs that introduce references, e.g. "fixes #1".
	// When empty every line is treated as a single sentence with no action.
	ReferenceActions []string

	// HeaderPattern decomposes the header line. Its groups are bound to
	// HeaderCorrespondence in order.
	HeaderPattern        *regexp.Regexp
	HeaderCorrespondence []string

	// BreakingHeaderPattern is tried before HeaderPattern. When it matches and
	// the message carries no notes, a BREAKING CHANGE note is synthesized from
	// its third group.
	BreakingHeaderPattern *regexp.Regexp

	// RevertPattern is matched against the whole raw message.
	RevertPattern        *regexp.Regexp
	RevertCorrespondence []string

	// FieldPattern recognizes "-name-" lines that redirect the following lines
	// into a named field.
	FieldPattern *regexp.Regexp

	// MergePattern recognizes a leading merge line that is consumed before the
	// header.
	MergePattern        *regexp.Regexp
	MergeCorrespondence []string

	// CommentChar strips lines starting with it, if set.
	CommentChar string
}

var (
	defaultHeaderPattern   = regexp.MustCompile(`^(\w*)(?:\(([\w$.\-*/ ]*)\))?: (.*)$`)
	defaultRevertPattern   = regexp.MustCompile(`^Revert\s"([\s\S]*)"\s*This reverts commit (\w*)\.`)
	defaultFieldPattern    = regexp.MustCompile(`^-(.*?)-$`)
	conventionalBreakingRe = regexp.MustCompile(`^(\w*)(?:\((.*)\))?!: (.*)$`)
)

// DefaultOptions returns the parser defaults.
func DefaultOptions() Options {
	return Options{
		NoteKeywords:  []string{"BREAKING CHANGE", "BREAKING-CHANGE"},
		IssuePrefixes: []string{"#"},
		ReferenceActions: []string{
			"close", "closes", "closed",
			"fix", "fixes", "fixed",
			"resolve", "resolves", "resolved",
		},
		HeaderPattern:        defaultHeaderPattern,
		HeaderCorrespondence: []string{FieldType, FieldScope, FieldSubject},
		RevertPattern:        defaultRevertPattern,
		RevertCorrespondence: []string{FieldHeader, "hash"},
		FieldPattern:         defaultFieldPattern,
	}
}

// ConventionalCommitsOptions returns DefaultOptions with the "type(scope)!: subject"
// breaking-change header convention enabled.
func ConventionalCommitsOptions() Options {
	opts := DefaultOptions()
	opts.BreakingHeaderPattern = conventionalBreakingRe
	return opts
}
