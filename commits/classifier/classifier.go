/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package classifier

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"chainguard.dev/prlabeler/commits/parser"
)

// Result is the outcome of classifying a commit.
type Result struct {
	Type     string `json:"type"`
	Scope    string `json:"scope"`
	Breaking bool   `json:"breaking"`
}

// Classifier validates parsed commits against an allow-list of types.
// It is safe for concurrent use.
type Classifier struct {
	parser  *parser.Parser
	allowed []string
}

// New returns a Classifier accepting the given types. A nil parser uses
// parser.ConventionalCommitsOptions.
func New(p *parser.Parser, allowed []string) *Classifier {
	if p == nil {
		p = parser.Must(parser.ConventionalCommitsOptions())
	}
	return &Classifier{
		parser:  p,
		allowed: slices.Clone(allowed),
	}
}

// AllowedTypes returns the allow-list in configuration order.
func (c *Classifier) AllowedTypes() []string {
	return slices.Clone(c.allowed)
}

// Classify derives the type, scope and breaking flag of a parsed commit.
func (c *Classifier) Classify(commit *parser.Commit) (Result, error) {
	if commit == nil || commit.Type == nil {
		return Result{}, &UnknownOrMissingTypeError{
			AllowedTypes: c.AllowedTypes(),
			malformed:    true,
		}
	}

	typ := commit.GetType()
	if typ == "" || !slices.Contains(c.allowed, typ) {
		return Result{}, &UnknownOrMissingTypeError{
			Type:         typ,
			AllowedTypes: c.AllowedTypes(),
		}
	}

	return Result{
		Type:     typ,
		Scope:    commit.GetScope(),
		Breaking: commit.HasNote(parser.BreakingChange),
	}, nil
}

// ClassifyMessage parses a pull request title and body as one commit message
// and classifies it. The parsed commit is returned even when classification
// fails.
func (c *Classifier) ClassifyMessage(title, body string) (Result, *parser.Commit, error) {
	msg := title
	if strings.TrimSpace(body) != "" {
		msg += "\n\n" + body
	}

	commit, err := c.parser.Parse(msg)
	if err != nil {
		return Result{}, nil, fmt.Errorf("parsing message: %w", err)
	}
	r, err := c.Classify(commit)
	return r, commit, err
}

// CheckTicketReference requires the first match of pattern in title to be
// non-empty. A nil pattern disables the check.
func CheckTicketReference(title string, pattern *regexp.Regexp) error {
	if pattern == nil {
		return nil
	}
	if m := pattern.FindString(title); m == "" {
		return &TicketPatternMismatchError{
			MatchedText: m,
			Pattern:     pattern.String(),
		}
	}
	return nil
}
