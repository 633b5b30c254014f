/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package parser

import (
	"regexp"
	"strings"
)

var (
	mentionsRe = regexp.MustCompile(`@([\w-]+)`)
	gpgRe      = regexp.MustCompile(`^\s*gpg:`)
)

// scissor marks the line below which git discards the message in verbose commits.
const scissor = "# ------------------------ >8 ------------------------"

// patterns holds the option-derived matchers. A nil matcher never matches.
type patterns struct {
	notes *regexp.Regexp

	// referenceParts matches one "owner/repo#123" occurrence within a sentence.
	referenceParts *regexp.Regexp

	// actionStart matches an action keyword followed by whitespace; actionAny
	// matches any action keyword and is used to find where a sentence ends.
	actionStart *regexp.Regexp
	actionAny   *regexp.Regexp
}

// joinQuoted trims, drops empty entries, quotes and joins with "|".
func joinQuoted(parts []string) string {
	quoted := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			quoted = append(quoted, regexp.QuoteMeta(p))
		}
	}
	return strings.Join(quoted, "|")
}

func compilePatterns(opts Options) (*patterns, error) {
	p := &patterns{}

	if keywords := joinQuoted(opts.NoteKeywords); keywords != "" {
		if opts.NotesPattern != nil {
			p.notes = opts.NotesPattern(keywords)
		} else {
			re, err := regexp.Compile(`(?i)^[\s|*]*(` + keywords + `)[:\s]+(.*)`)
			if err != nil {
				return nil, err
			}
			p.notes = re
		}
	}

	if prefixes := joinQuoted(opts.IssuePrefixes); prefixes != "" {
		flags := "(?i)"
		if opts.IssuePrefixesCaseSensitive {
			flags = ""
		}
		re, err := regexp.Compile(flags + `(?:.*?)??\s*([\w./-]*?)??(` + prefixes + `)([\w-]*\d+)`)
		if err != nil {
			return nil, err
		}
		p.referenceParts = re
	}

	if actions := joinQuoted(opts.ReferenceActions); actions != "" {
		start, err := regexp.Compile(`(?i)(` + actions + `)\s+`)
		if err != nil {
			return nil, err
		}
		p.actionStart = start
		p.actionAny = regexp.MustCompile(`(?i)(?:` + actions + `)`)
	}

	return p, nil
}

// sentence is a run of text following an optional action keyword.
type sentence struct {
	action *string
	text   string
}

// sentences splits input into action sentences. Each sentence runs from the
// whitespace after an action keyword up to the next keyword occurrence or the
// end of input. Input without any action keyword is a single sentence with no
// action.
func (p *patterns) sentences(input string) []sentence {
	var out []sentence
	if p.actionStart != nil {
		for pos := 0; pos < len(input); {
			loc := p.actionStart.FindStringSubmatchIndex(input[pos:])
			if loc == nil {
				break
			}
			action := input[pos+loc[2] : pos+loc[3]]
			start := pos + loc[1]
			end := len(input)
			if next := p.actionAny.FindStringIndex(input[start:]); next != nil {
				end = start + next[0]
			}
			out = append(out, sentence{action: &action, text: input[start:end]})
			pos = end
		}
	}
	if len(out) == 0 && input != "" {
		out = append(out, sentence{text: input})
	}
	return out
}

// references extracts every issue reference from input.
func (p *patterns) references(input string) []Reference {
	if p.referenceParts == nil {
		return nil
	}
	var refs []Reference
	for _, s := range p.sentences(input) {
		for _, m := range p.referenceParts.FindAllStringSubmatchIndex(s.text, -1) {
			ref := Reference{
				Raw:    s.text[m[0]:m[1]],
				Action: s.action,
				Prefix: s.text[m[4]:m[5]],
				Issue:  s.text[m[6]:m[7]],
			}
			if m[2] >= 0 && m[3] > m[2] {
				repository := s.text[m[2]:m[3]]
				if owner, repo, ok := strings.Cut(repository, "/"); ok {
					ref.Owner = &owner
					repository = repo
				}
				ref.Repository = &repository
			}
			refs = append(refs, ref)
		}
	}
	return refs
}
