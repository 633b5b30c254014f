/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package labels

import (
	"maps"
	"slices"

	"chainguard.dev/prlabeler/commits/classifier"
)

// BreakingChangeLabel is applied to pull requests that introduce a breaking change.
const BreakingChangeLabel = "breaking change"

// Policy decides which labels the labeler owns and which ones a classified
// pull request should carry.
type Policy struct {
	// AllowedTypes are the accepted commit types. Each is also a label name.
	AllowedTypes []string
	// CustomLabels maps a commit type to the label used instead of the type.
	CustomLabels map[string]string
}

// Plan is the set of label changes needed to bring a pull request in line
// with its classification.
type Plan struct {
	Remove []string `json:"remove"`
	Add    []string `json:"add"`
}

// Empty reports whether the plan changes nothing.
func (p Plan) Empty() bool {
	return len(p.Remove) == 0 && len(p.Add) == 0
}

// Managed returns the labels this policy may remove: the allowed types, the
// breaking change label and every custom label, without duplicates.
func (p Policy) Managed() []string {
	managed := make([]string, 0, len(p.AllowedTypes)+1+len(p.CustomLabels))
	add := func(label string) {
		if label != "" && !slices.Contains(managed, label) {
			managed = append(managed, label)
		}
	}
	for _, t := range p.AllowedTypes {
		add(t)
	}
	add(BreakingChangeLabel)
	for _, k := range slices.Sorted(maps.Keys(p.CustomLabels)) {
		add(p.CustomLabels[k])
	}
	return managed
}

// Target returns the labels a pull request classified as r should carry.
func (p Policy) Target(r classifier.Result) []string {
	label := r.Type
	if custom := p.CustomLabels[r.Type]; custom != "" {
		label = custom
	}
	target := []string{label}
	if r.Breaking && label != BreakingChangeLabel {
		target = append(target, BreakingChangeLabel)
	}
	return target
}

// Plan computes the changes from the current labels. Only managed labels are
// ever removed, and labels already present are not added again.
func (p Policy) Plan(current []string, r classifier.Result) Plan {
	managed := p.Managed()
	target := p.Target(r)

	var plan Plan
	for _, label := range current {
		if slices.Contains(managed, label) && !slices.Contains(target, label) && !slices.Contains(plan.Remove, label) {
			plan.Remove = append(plan.Remove, label)
		}
	}
	for _, label := range target {
		if !slices.Contains(current, label) {
			plan.Add = append(plan.Add, label)
		}
	}
	return plan
}
