/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package parser

import (
	"errors"
	"regexp"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ptr(s string) *string { return &s }

// commit returns a Commit with the empty collections Parse always produces.
func commit(c Commit) *Commit {
	if c.Notes == nil {
		c.Notes = []Note{}
	}
	if c.References == nil {
		c.References = []Reference{}
	}
	if c.Mentions == nil {
		c.Mentions = []string{}
	}
	return &c
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		raw  string
		want *Commit
	}{{
		name: "type scope and subject",
		opts: DefaultOptions(),
		raw:  "feat(api): add x",
		want: commit(Commit{
			Header:  ptr("feat(api): add x"),
			Type:    ptr("feat"),
			Scope:   ptr("api"),
			Subject: ptr("add x"),
		}),
	}, {
		name: "no scope",
		opts: DefaultOptions(),
		raw:  "docs: correct spelling of CHANGELOG",
		want: commit(Commit{
			Header:  ptr("docs: correct spelling of CHANGELOG"),
			Type:    ptr("docs"),
			Subject: ptr("correct spelling of CHANGELOG"),
		}),
	}, {
		name: "scope keeps spaces and punctuation",
		opts: DefaultOptions(),
		raw:  "fix(core/$util .x-*): y",
		want: commit(Commit{
			Header:  ptr("fix(core/$util .x-*): y"),
			Type:    ptr("fix"),
			Scope:   ptr("core/$util .x-*"),
			Subject: ptr("y"),
		}),
	}, {
		name: "empty scope is present but empty",
		opts: DefaultOptions(),
		raw:  "fix(): y",
		want: commit(Commit{
			Header:  ptr("fix(): y"),
			Type:    ptr("fix"),
			Scope:   ptr(""),
			Subject: ptr("y"),
		}),
	}, {
		name: "unparseable header",
		opts: DefaultOptions(),
		raw:  "hit it with a hammer",
		want: commit(Commit{
			Header: ptr("hit it with a hammer"),
		}),
	}, {
		name: "breaking change footer",
		opts: DefaultOptions(),
		raw: "feat: allow provided config object to extend other configs\n\n" +
			"BREAKING CHANGE: `extends` key in config file is now used for extending other config files",
		want: commit(Commit{
			Header:  ptr("feat: allow provided config object to extend other configs"),
			Type:    ptr("feat"),
			Subject: ptr("allow provided config object to extend other configs"),
			Footer:  ptr("BREAKING CHANGE: `extends` key in config file is now used for extending other config files"),
			Notes: []Note{{
				Title: "BREAKING CHANGE",
				Text:  "`extends` key in config file is now used for extending other config files",
			}},
		}),
	}, {
		name: "bang without scope",
		opts: ConventionalCommitsOptions(),
		raw:  "feat!: send an email to the customer when a product is shipped",
		want: commit(Commit{
			Header:  ptr("feat!: send an email to the customer when a product is shipped"),
			Type:    ptr("feat"),
			Subject: ptr("send an email to the customer when a product is shipped"),
			Notes: []Note{{
				Title: BreakingChange,
				Text:  "send an email to the customer when a product is shipped",
			}},
		}),
	}, {
		name: "bang with scope",
		opts: ConventionalCommitsOptions(),
		raw:  "feat(api)!: send an email",
		want: commit(Commit{
			Header:  ptr("feat(api)!: send an email"),
			Type:    ptr("feat"),
			Scope:   ptr("api"),
			Subject: ptr("send an email"),
			Notes:   []Note{{Title: BreakingChange, Text: "send an email"}},
		}),
	}, {
		name: "bang ignored without breaking header pattern",
		opts: DefaultOptions(),
		raw:  "feat!: send an email",
		want: commit(Commit{
			Header: ptr("feat!: send an email"),
		}),
	}, {
		name: "bang and footer keep only the footer note",
		opts: ConventionalCommitsOptions(),
		raw:  "chore!: drop support for Node 6\n\nBREAKING CHANGE: use JavaScript features not available in Node 6.",
		want: commit(Commit{
			Header:  ptr("chore!: drop support for Node 6"),
			Type:    ptr("chore"),
			Subject: ptr("drop support for Node 6"),
			Footer:  ptr("BREAKING CHANGE: use JavaScript features not available in Node 6."),
			Notes:   []Note{{Title: BreakingChange, Text: "use JavaScript features not available in Node 6."}},
		}),
	}, {
		name: "multi paragraph body and footers",
		opts: DefaultOptions(),
		raw: "fix: prevent racing of requests\n\n" +
			"Introduce a request id and a reference to latest request. Dismiss\n" +
			"incoming responses other than from latest request.\n\n" +
			"Remove timeouts which were used to mitigate the racing issue but are\n" +
			"obsolete now.\n\n" +
			"Reviewed-by: Z\n" +
			"Refs: #123",
		want: commit(Commit{
			Header:  ptr("fix: prevent racing of requests"),
			Type:    ptr("fix"),
			Subject: ptr("prevent racing of requests"),
			Body: ptr("Introduce a request id and a reference to latest request. Dismiss\n" +
				"incoming responses other than from latest request.\n\n" +
				"Remove timeouts which were used to mitigate the racing issue but are\n" +
				"obsolete now.\n\n" +
				"Reviewed-by: Z"),
			Footer: ptr("Refs: #123"),
			References: []Reference{{
				Prefix: "#",
				Issue:  "123",
				Raw:    "Refs: #123",
			}},
		}),
	}, {
		name: "note spans lines until a reference",
		opts: DefaultOptions(),
		raw:  "feat: x\n\nBREAKING CHANGE: first line\nsecond line\nCloses #7\nafter",
		want: commit(Commit{
			Header:  ptr("feat: x"),
			Type:    ptr("feat"),
			Subject: ptr("x"),
			Footer:  ptr("BREAKING CHANGE: first line\nsecond line\nCloses #7\nafter"),
			Notes:   []Note{{Title: "BREAKING CHANGE", Text: "first line\nsecond line"}},
			References: []Reference{{
				Action: ptr("Closes"),
				Prefix: "#",
				Issue:  "7",
				Raw:    "#7",
			}},
		}),
	}, {
		name: "lowercase note keeps its title",
		opts: DefaultOptions(),
		raw:  "feat: x\n\n* breaking-change: gone",
		want: commit(Commit{
			Header:  ptr("feat: x"),
			Type:    ptr("feat"),
			Subject: ptr("x"),
			Footer:  ptr("* breaking-change: gone"),
			Notes:   []Note{{Title: "breaking-change", Text: "gone"}},
		}),
	}, {
		name: "qualified reference with action",
		opts: DefaultOptions(),
		raw:  "fix: thing\n\nfixes acme/widgets#45",
		want: commit(Commit{
			Header:  ptr("fix: thing"),
			Type:    ptr("fix"),
			Subject: ptr("thing"),
			Footer:  ptr("fixes acme/widgets#45"),
			References: []Reference{{
				Action:     ptr("fixes"),
				Owner:      ptr("acme"),
				Repository: ptr("widgets"),
				Prefix:     "#",
				Issue:      "45",
				Raw:        "acme/widgets#45",
			}},
		}),
	}, {
		name: "several actions on one line",
		opts: DefaultOptions(),
		raw:  "fix: thing\n\nCloses #1, #2 and fixes #3",
		want: commit(Commit{
			Header:  ptr("fix: thing"),
			Type:    ptr("fix"),
			Subject: ptr("thing"),
			Footer:  ptr("Closes #1, #2 and fixes #3"),
			References: []Reference{
				{Action: ptr("Closes"), Prefix: "#", Issue: "1", Raw: "#1"},
				{Action: ptr("Closes"), Prefix: "#", Issue: "2", Raw: ", #2"},
				{Action: ptr("fixes"), Prefix: "#", Issue: "3", Raw: "#3"},
			},
		}),
	}, {
		name: "reference in header",
		opts: DefaultOptions(),
		raw:  "fix: handle #42 overflow",
		want: commit(Commit{
			Header:     ptr("fix: handle #42 overflow"),
			Type:       ptr("fix"),
			Subject:    ptr("handle #42 overflow"),
			References: []Reference{{Prefix: "#", Issue: "42", Raw: "fix: handle #42"}},
		}),
	}, {
		name: "body closes once the footer starts",
		opts: DefaultOptions(),
		raw:  "feat: x\n\nintro\n\nRefs #9\ntrailing words",
		want: commit(Commit{
			Header:     ptr("feat: x"),
			Type:       ptr("feat"),
			Subject:    ptr("x"),
			Body:       ptr("intro"),
			Footer:     ptr("Refs #9\ntrailing words"),
			References: []Reference{{Prefix: "#", Issue: "9", Raw: "Refs #9"}},
		}),
	}, {
		name: "mentions",
		opts: DefaultOptions(),
		raw:  "feat: thanks @alice\n\ncc @bob-smith",
		want: commit(Commit{
			Header:   ptr("feat: thanks @alice"),
			Type:     ptr("feat"),
			Subject:  ptr("thanks @alice"),
			Body:     ptr("cc @bob-smith"),
			Mentions: []string{"alice", "bob-smith"},
		}),
	}, {
		name: "revert",
		opts: DefaultOptions(),
		raw:  "Revert \"feat: add x\"\n\nThis reverts commit 1234abcd.",
		want: commit(Commit{
			Header: ptr("Revert \"feat: add x\""),
			Body:   ptr("This reverts commit 1234abcd."),
			Revert: Revert{"header": "feat: add x", "hash": "1234abcd"},
		}),
	}, {
		name: "scissor truncates",
		opts: DefaultOptions(),
		raw:  "feat: x\n\nkeep\n# ------------------------ >8 ------------------------\ndropped\n",
		want: commit(Commit{
			Header:  ptr("feat: x"),
			Type:    ptr("feat"),
			Subject: ptr("x"),
			Body:    ptr("keep"),
		}),
	}, {
		name: "gpg output dropped",
		opts: DefaultOptions(),
		raw:  "feat: x\n  gpg: Signature made Tue\nbody",
		want: commit(Commit{
			Header:  ptr("feat: x"),
			Type:    ptr("feat"),
			Subject: ptr("x"),
			Body:    ptr("body"),
		}),
	}, {
		name: "comment lines dropped",
		opts: func() Options {
			o := DefaultOptions()
			o.CommentChar = "#"
			return o
		}(),
		raw: "\r\nfeat: x\r\n# Please enter the commit message\r\nbody line\r\n",
		want: commit(Commit{
			Header:  ptr("feat: x"),
			Type:    ptr("feat"),
			Subject: ptr("x"),
			Body:    ptr("body line"),
		}),
	}, {
		name: "field delimiters",
		opts: DefaultOptions(),
		raw:  "feat: x\n\nbody\n-hash-\n8bad\nf00d\n-signer-\nAlice",
		want: commit(Commit{
			Header:  ptr("feat: x"),
			Type:    ptr("feat"),
			Subject: ptr("x"),
			Body:    ptr("body"),
			Fields:  map[string]string{"hash": "8bad\nf00d", "signer": "Alice"},
		}),
	}, {
		name: "merge line",
		opts: func() Options {
			o := DefaultOptions()
			o.MergePattern = regexp.MustCompile(`^Merge pull request #(\d+) from (.*)$`)
			o.MergeCorrespondence = []string{"id", "source"}
			return o
		}(),
		raw: "Merge pull request #1 from acme/topic\n\n\nfeat: x",
		want: commit(Commit{
			Merge:   ptr("Merge pull request #1 from acme/topic"),
			Header:  ptr("feat: x"),
			Type:    ptr("feat"),
			Subject: ptr("x"),
			Fields:  map[string]string{"id": "1", "source": "acme/topic"},
		}),
	}, {
		name: "case sensitive prefixes",
		opts: func() Options {
			o := DefaultOptions()
			o.IssuePrefixes = []string{"gh-"}
			o.IssuePrefixesCaseSensitive = true
			return o
		}(),
		raw: "feat: x\n\nCloses GH-12\nCloses gh-13",
		want: commit(Commit{
			Header:     ptr("feat: x"),
			Type:       ptr("feat"),
			Subject:    ptr("x"),
			Body:       ptr("Closes GH-12"),
			Footer:     ptr("Closes gh-13"),
			References: []Reference{{Action: ptr("Closes"), Prefix: "gh-", Issue: "13", Raw: "gh-13"}},
		}),
	}, {
		name: "case insensitive prefixes",
		opts: func() Options {
			o := DefaultOptions()
			o.IssuePrefixes = []string{"gh-"}
			return o
		}(),
		raw: "feat: x\n\nCloses GH-12",
		want: commit(Commit{
			Header:     ptr("feat: x"),
			Type:       ptr("feat"),
			Subject:    ptr("x"),
			Footer:     ptr("Closes GH-12"),
			References: []Reference{{Action: ptr("Closes"), Prefix: "GH-", Issue: "12", Raw: "GH-12"}},
		}),
	}, {
		name: "no issue prefixes never extracts references",
		opts: func() Options {
			o := DefaultOptions()
			o.IssuePrefixes = nil
			return o
		}(),
		raw: "feat: x #1\n\nCloses #2",
		want: commit(Commit{
			Header:  ptr("feat: x #1"),
			Type:    ptr("feat"),
			Subject: ptr("x #1"),
			Body:    ptr("Closes #2"),
		}),
	}, {
		name: "no reference actions uses the whole line",
		opts: func() Options {
			o := DefaultOptions()
			o.ReferenceActions = nil
			return o
		}(),
		raw: "feat: x\n\nCloses #2",
		want: commit(Commit{
			Header:     ptr("feat: x"),
			Type:       ptr("feat"),
			Subject:    ptr("x"),
			Footer:     ptr("Closes #2"),
			References: []Reference{{Prefix: "#", Issue: "2", Raw: "Closes #2"}},
		}),
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.opts)
			if err != nil {
				t.Fatalf("New() = %v", err)
			}
			got, err := p.Parse(tt.raw)
			if err != nil {
				t.Fatalf("Parse() = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseEmptyInput(t *testing.T) {
	p := Must(DefaultOptions())
	for _, raw := range []string{"", "   ", "\n\t\r\n"} {
		if _, err := p.Parse(raw); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Parse(%q) error = %v, want %v", raw, err, ErrEmptyInput)
		}
	}
}

func TestParseIsIdempotent(t *testing.T) {
	p := Must(ConventionalCommitsOptions())
	raw := "feat(api)!: x @alice\n\nbody\n\nBREAKING CHANGE: y\nCloses #1"

	first, err := p.Parse(raw)
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	second, err := p.Parse(raw)
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second Parse() differs (-first +second):\n%s", diff)
	}
}

func TestParseConcurrent(t *testing.T) {
	p := Must(ConventionalCommitsOptions())
	want, err := p.Parse("fix(db): close pool\n\nfixes #12")
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := p.Parse("fix(db): close pool\n\nfixes #12")
			if err != nil {
				t.Errorf("Parse() = %v", err)
				return
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("concurrent Parse() mismatch (-want +got):\n%s", diff)
			}
		}()
	}
	wg.Wait()
}

func TestHasNote(t *testing.T) {
	c := &Commit{Notes: []Note{{Title: "breaking change"}, {Title: "Deprecated"}}}
	if c.HasNote(BreakingChange) {
		t.Errorf("HasNote(%q) = true, want false for a lowercase title", BreakingChange)
	}
	if !c.HasNote("Deprecated") {
		t.Error("HasNote(Deprecated) = false, want true")
	}
}

func TestRevertAccessors(t *testing.T) {
	r := Revert{"header": "feat: x", "hash": "abc"}
	if got, want := r.Header(), "feat: x"; got != want {
		t.Errorf("Header() = %q, want %q", got, want)
	}
	if got, want := r.Hash(), "abc"; got != want {
		t.Errorf("Hash() = %q, want %q", got, want)
	}
	var none Revert
	if none.Hash() != "" {
		t.Error("Hash() on nil Revert should be empty")
	}
}
