/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package parser decomposes commit messages and pull request titles that follow
the Conventional Commits format into a structured Commit.

A message is a header line, an optional body and an optional footer made of
notes ("BREAKING CHANGE: ...") and issue references ("Closes #12"):

	feat(api)!: send an email to the customer when a product is shipped

	Customers now receive a shipping notification.

	BREAKING CHANGE: the mailer must be configured before startup.
	Closes acme/shop#42

# Basic Usage

	p, err := parser.New(parser.ConventionalCommitsOptions())
	if err != nil {
		return err
	}
	c, err := p.Parse(message)
	if errors.Is(err, parser.ErrEmptyInput) {
		// nothing to parse
	}
	fmt.Println(c.GetType(), c.GetScope(), c.HasNote(parser.BreakingChange))

# Parsing Rules

Lines are processed in a single forward pass:

  - Everything below the git scissor line is dropped, as are comment lines
    (Options.CommentChar) and "gpg:" signature output.
  - An optional merge line (Options.MergePattern) is consumed first.
  - The next line is the header. Options.BreakingHeaderPattern is tried before
    Options.HeaderPattern and the groups are bound to Options.HeaderCorrespondence.
    A group that did not participate leaves the field nil.
  - "-name-" lines (Options.FieldPattern) redirect the following lines into a
    named field.
  - Lines matching a note keyword start a note. Following lines extend the note
    until a line carrying an issue reference ends it.
  - Lines carrying references go to the footer. Once the footer starts, the
    body is closed for good.

After the pass, a "type!:" header without any footer note yields a synthesized
BREAKING CHANGE note, so callers only need to inspect Commit.Notes. Mentions and
revert metadata are matched against the whole raw message.

# Thread Safety

A Parser holds only compiled patterns and options; every call to Parse uses
its own cursor, so a single Parser can be shared across goroutines.
*/
package parser
