/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package action

import (
	"fmt"
	"os"
	"regexp"

	"chainguard.dev/prlabeler/commits/parser"
	"gopkg.in/yaml.v3"
)

// File is the optional YAML configuration file. Action inputs take precedence
// over the values it sets.
//
//	task_types: [feat, fix, docs]
//	custom_labels:
//	  feat: enhancement
//	ticket_key_regex: '[A-Z]+-\d+'
//	parser:
//	  issue_prefixes: ["#", "GH-"]
type File struct {
	TaskTypes      []string          `yaml:"task_types"`
	CustomLabels   map[string]string `yaml:"custom_labels"`
	TicketKeyRegex string            `yaml:"ticket_key_regex"`
	Parser         ParserConfig      `yaml:"parser"`
}

// ParserConfig overrides parser.ConventionalCommitsOptions. Unset keys keep
// their defaults; an explicitly empty list disables the feature.
type ParserConfig struct {
	NoteKeywords               []string `yaml:"note_keywords"`
	IssuePrefixes              []string `yaml:"issue_prefixes"`
	IssuePrefixesCaseSensitive bool     `yaml:"issue_prefixes_case_sensitive"`
	ReferenceActions           []string `yaml:"reference_actions"`
	HeaderPattern              string   `yaml:"header_pattern"`
	BreakingHeaderPattern      string   `yaml:"breaking_header_pattern"`
	CommentChar                string   `yaml:"comment_char"`
}

// LoadFile reads the configuration file at path. An empty path yields an
// empty File.
func LoadFile(path string) (*File, error) {
	if path == "" {
		return &File{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decoding config file %s: %w", path, err)
	}
	return &f, nil
}

// Options returns the parser options described by c.
func (c ParserConfig) Options() (parser.Options, error) {
	opts := parser.ConventionalCommitsOptions()
	if c.NoteKeywords != nil {
		opts.NoteKeywords = c.NoteKeywords
	}
	if c.IssuePrefixes != nil {
		opts.IssuePrefixes = c.IssuePrefixes
	}
	opts.IssuePrefixesCaseSensitive = c.IssuePrefixesCaseSensitive
	if c.ReferenceActions != nil {
		opts.ReferenceActions = c.ReferenceActions
	}
	if c.HeaderPattern != "" {
		re, err := regexp.Compile(c.HeaderPattern)
		if err != nil {
			return parser.Options{}, fmt.Errorf("compiling header_pattern: %w", err)
		}
		opts.HeaderPattern = re
	}
	if c.BreakingHeaderPattern != "" {
		re, err := regexp.Compile(c.BreakingHeaderPattern)
		if err != nil {
			return parser.Options{}, fmt.Errorf("compiling breaking_header_pattern: %w", err)
		}
		opts.BreakingHeaderPattern = re
	}
	opts.CommentChar = c.CommentChar
	return opts, nil
}
