/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrEmptyInput is returned by Parse when the message is empty or only whitespace.
var ErrEmptyInput = errors.New("expected a raw commit message")

// Parser turns raw commit messages into Commits.
// A Parser is immutable and safe for concurrent use.
type Parser struct {
	opts Options
	re   *patterns
}

// New compiles the patterns derived from opts.
func New(opts Options) (*Parser, error) {
	re, err := compilePatterns(opts)
	if err != nil {
		return nil, fmt.Errorf("compiling patterns: %w", err)
	}
	return &Parser{opts: opts, re: re}, nil
}

// Must is like New but panics on error. It is intended for package-level
// parsers built from static options.
func Must(opts Options) *Parser {
	p, err := New(opts)
	if err != nil {
		panic(err)
	}
	return p
}

// Parse decomposes raw into a Commit.
func (p *Parser) Parse(raw string) (*Commit, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyInput
	}

	s := &state{
		Parser: p,
		lines:  p.prepare(raw),
		commit: &Commit{
			Notes:      []Note{},
			References: []Reference{},
			Mentions:   []string{},
		},
	}
	s.run()

	c := s.commit
	for _, m := range mentionsRe.FindAllStringSubmatch(raw, -1) {
		c.Mentions = append(c.Mentions, m[1])
	}
	if p.opts.RevertPattern != nil {
		if m := p.opts.RevertPattern.FindStringSubmatch(raw); m != nil {
			c.Revert = Revert{}
			for i, key := range p.opts.RevertCorrespondence {
				if i+1 < len(m) && m[i+1] != "" {
					c.Revert[key] = m[i+1]
				}
			}
		}
	}

	c.Body = trimmedOrNil(c.Body)
	c.Footer = trimmedOrNil(c.Footer)
	for i := range c.Notes {
		c.Notes[i].Text = trimNewLines(c.Notes[i].Text)
	}
	return c, nil
}

// prepare splits raw into lines, dropping everything below the scissor line,
// comment lines and gpg output.
func (p *Parser) prepare(raw string) []string {
	lines := strings.Split(trimNewLines(raw), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	for i, line := range lines {
		if line == scissor {
			lines = lines[:i]
			break
		}
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if p.opts.CommentChar != "" && strings.HasPrefix(line, p.opts.CommentChar) {
			continue
		}
		if gpgRe.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

type mode int

const (
	modeBody mode = iota
	modeFooter
	modeNote
	modeField
)

// state is the per-call line cursor and the commit being built.
type state struct {
	*Parser
	lines  []string
	pos    int
	commit *Commit
}

func (s *state) more() bool      { return s.pos < len(s.lines) }
func (s *state) current() string { return s.lines[s.pos] }
func (s *state) advance()        { s.pos++ }

func (s *state) run() {
	c := s.commit

	merged := s.parseMerge()
	s.parseHeader(merged)
	if c.Header != nil {
		c.References = append(c.References, s.re.references(*c.Header)...)
	}

	var (
		m      = modeBody
		resume = modeBody // mode to return to when a field block ends
		field  string     // active field name; empty when the delimiter named none
		note   = -1       // index of the note being extended
	)
	for s.more() {
		line := s.current()

		if m == modeField {
			if name, ok := s.fieldDelimiter(line); ok {
				field = name
				s.advance()
				continue
			}
			if field == "" {
				m = resume
				continue
			}
			s.appendField(field, line)
			s.advance()
			continue
		}

		if name, ok := s.fieldDelimiter(line); ok {
			resume = m
			if m == modeNote {
				resume = modeFooter
			}
			m, field = modeField, name
			s.advance()
			continue
		}

		if title, text, ok := s.noteStart(line); ok {
			c.Notes = append(c.Notes, Note{Title: title, Text: text})
			note = len(c.Notes) - 1
			appendLine(&c.Footer, line)
			m = modeNote
			s.advance()
			continue
		}

		refs := s.re.references(line)
		switch {
		case m == modeNote && len(refs) == 0:
			c.Notes[note].Text = joinLine(c.Notes[note].Text, line)
			appendLine(&c.Footer, line)
		case m == modeBody && len(refs) == 0:
			appendLine(&c.Body, line)
		default:
			c.References = append(c.References, refs...)
			appendLine(&c.Footer, line)
			m = modeFooter
		}
		s.advance()
	}

	s.parseBreakingHeader()
}

// parseMerge consumes a leading merge line, reporting whether one was found.
func (s *state) parseMerge() bool {
	if s.opts.MergePattern == nil || !s.more() || s.current() == "" {
		return false
	}
	loc := s.opts.MergePattern.FindStringSubmatchIndex(s.current())
	if loc == nil {
		return false
	}
	line := s.current()
	s.advance()
	if merge := line[loc[0]:loc[1]]; merge != "" {
		s.commit.Merge = &merge
	}
	bind(s.commit, line, loc, s.opts.MergeCorrespondence)
	return true
}

// parseHeader consumes the header line. Merge commits may separate the merge
// line from the header with blank lines.
func (s *state) parseHeader(merged bool) {
	if merged {
		for s.more() && strings.TrimSpace(s.current()) == "" {
			s.advance()
		}
	}
	if !s.more() {
		return
	}
	header := s.current()
	s.advance()
	if header == "" {
		return
	}
	s.commit.Header = &header

	for _, re := range []*regexp.Regexp{s.opts.BreakingHeaderPattern, s.opts.HeaderPattern} {
		if re == nil {
			continue
		}
		if loc := re.FindStringSubmatchIndex(header); loc != nil {
			bind(s.commit, header, loc, s.opts.HeaderCorrespondence)
			return
		}
	}
}

// parseBreakingHeader synthesizes a breaking-change note from a "type!:" header
// when the footer declared none.
func (s *state) parseBreakingHeader() {
	c := s.commit
	if s.opts.BreakingHeaderPattern == nil || len(c.Notes) > 0 || c.Header == nil {
		return
	}
	m := s.opts.BreakingHeaderPattern.FindStringSubmatch(*c.Header)
	if m == nil {
		return
	}
	var text string
	if len(m) > 3 {
		text = m[3]
	}
	c.Notes = append(c.Notes, Note{Title: BreakingChange, Text: text})
}

func (s *state) fieldDelimiter(line string) (string, bool) {
	if s.opts.FieldPattern == nil {
		return "", false
	}
	m := s.opts.FieldPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	if len(m) < 2 {
		return "", true
	}
	return m[1], true
}

func (s *state) noteStart(line string) (title, text string, ok bool) {
	if s.re.notes == nil {
		return "", "", false
	}
	m := s.re.notes.FindStringSubmatch(line)
	if len(m) < 3 {
		return "", "", false
	}
	return m[1], m[2], true
}

func (s *state) appendField(name, line string) {
	if f := s.commit.field(name); f != nil {
		appendLine(f, line)
		return
	}
	v := joinLine(s.commit.get(name), line)
	s.commit.set(name, &v)
}

// bind assigns the submatches in loc to the correspondence names. Groups that
// did not participate in the match are bound as absent.
func bind(c *Commit, input string, loc []int, names []string) {
	for i, name := range names {
		g := 2 * (i + 1)
		if g+1 >= len(loc) || loc[g] < 0 {
			c.set(name, nil)
			continue
		}
		v := input[loc[g]:loc[g+1]]
		c.set(name, &v)
	}
}
