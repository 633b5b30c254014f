/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package parser

// Names of the Commit fields that correspondence lists and "-field-" lines
// can target. Any other name is stored in Commit.Fields.
const (
	FieldMerge   = "merge"
	FieldHeader  = "header"
	FieldType    = "type"
	FieldScope   = "scope"
	FieldSubject = "subject"
	FieldBody    = "body"
	FieldFooter  = "footer"
)

// BreakingChange is the note title synthesized for "type!: subject" headers.
const BreakingChange = "BREAKING CHANGE"

// Commit is the structured form of a commit message.
// Pointer fields are nil when the corresponding part is absent.
type Commit struct {
	Merge   *string `json:"merge"`
	Header  *string `json:"header"`
	Type    *string `json:"type"`
	Scope   *string `json:"scope"`
	Subject *string `json:"subject"`
	Body    *string `json:"body"`
	Footer  *string `json:"footer"`

	Notes      []Note      `json:"notes"`
	References []Reference `json:"references"`
	Mentions   []string    `json:"mentions"`
	Revert     Revert      `json:"revert"`

	// Fields holds values bound to names outside the fixed set above.
	Fields map[string]string `json:"fields,omitempty"`
}

// Note is a titled footer annotation such as "BREAKING CHANGE: ...".
type Note struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Reference points at an issue, optionally qualified by owner and repository.
type Reference struct {
	Action     *string `json:"action"`
	Owner      *string `json:"owner"`
	Repository *string `json:"repository"`
	Prefix     string  `json:"prefix"`
	Issue      string  `json:"issue"`
	Raw        string  `json:"raw"`
}

// Revert holds the revert message fields keyed by revert correspondence.
// Empty captures are omitted.
type Revert map[string]string

// Header returns the reverted header.
func (r Revert) Header() string { return r[FieldHeader] }

// Hash returns the reverted commit hash.
func (r Revert) Hash() string { return r["hash"] }

// GetMerge returns the Merge field if it's non-nil, zero value otherwise.
func (c *Commit) GetMerge() string { return deref(c.Merge) }

// GetHeader returns the Header field if it's non-nil, zero value otherwise.
func (c *Commit) GetHeader() string { return deref(c.Header) }

// GetType returns the Type field if it's non-nil, zero value otherwise.
func (c *Commit) GetType() string { return deref(c.Type) }

// GetScope returns the Scope field if it's non-nil, zero value otherwise.
func (c *Commit) GetScope() string { return deref(c.Scope) }

// GetSubject returns the Subject field if it's non-nil, zero value otherwise.
func (c *Commit) GetSubject() string { return deref(c.Subject) }

// GetBody returns the Body field if it's non-nil, zero value otherwise.
func (c *Commit) GetBody() string { return deref(c.Body) }

// GetFooter returns the Footer field if it's non-nil, zero value otherwise.
func (c *Commit) GetFooter() string { return deref(c.Footer) }

// HasNote reports whether any note carries exactly the given title.
func (c *Commit) HasNote(title string) bool {
	for _, n := range c.Notes {
		if n.Title == title {
			return true
		}
	}
	return false
}

// GetAction returns the Action field if it's non-nil, zero value otherwise.
func (r Reference) GetAction() string { return deref(r.Action) }

// GetOwner returns the Owner field if it's non-nil, zero value otherwise.
func (r Reference) GetOwner() string { return deref(r.Owner) }

// GetRepository returns the Repository field if it's non-nil, zero value otherwise.
func (r Reference) GetRepository() string { return deref(r.Repository) }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// field returns a pointer to the typed field named name, or nil if the name
// belongs in Fields.
func (c *Commit) field(name string) **string {
	switch name {
	case FieldMerge:
		return &c.Merge
	case FieldHeader:
		return &c.Header
	case FieldType:
		return &c.Type
	case FieldScope:
		return &c.Scope
	case FieldSubject:
		return &c.Subject
	case FieldBody:
		return &c.Body
	case FieldFooter:
		return &c.Footer
	}
	return nil
}

// set binds value to the named field. A nil value marks the field absent.
func (c *Commit) set(name string, value *string) {
	if f := c.field(name); f != nil {
		*f = value
		return
	}
	if value == nil {
		delete(c.Fields, name)
		return
	}
	if c.Fields == nil {
		c.Fields = map[string]string{}
	}
	c.Fields[name] = *value
}

// get returns the named field's current value.
func (c *Commit) get(name string) string {
	if f := c.field(name); f != nil {
		return deref(*f)
	}
	return c.Fields[name]
}
