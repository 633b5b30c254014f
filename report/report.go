/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package report renders the outcome of a labeler run as a markdown job summary.
package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

// Details holds the outcome of classifying and labeling one pull request.
type Details struct {
	// Generation is a hash of SHA + title + body identifying the PR state.
	Generation string   `json:"generation"`
	Title      string   `json:"title"`
	Valid      bool     `json:"valid"`
	Type       string   `json:"type,omitempty"`
	Scope      string   `json:"scope,omitempty"`
	Breaking   bool     `json:"breaking"`
	Added      []string `json:"added,omitempty"`
	Removed    []string `json:"removed,omitempty"`
	References []string `json:"references,omitempty"`
	Issues     []string `json:"issues,omitempty"`
}

// Markdown renders the details as markdown for the job summary.
func (d Details) Markdown() string {
	var sb strings.Builder
	sb.WriteString("## PR Labeler Report\n\n")

	status := "❌ Invalid"
	if d.Valid {
		status = "✅ Valid"
	}
	breaking := "No"
	if d.Breaking {
		breaking = "⚠️ Yes"
	}

	var rows summaryTable
	rows.add("Title", code(d.Title))
	rows.add("Conventional commit", status)
	if d.Valid {
		rows.add("Type", code(d.Type))
		rows.add("Scope", code(d.Scope))
		rows.add("Breaking change", breaking)
	}
	if len(d.Added) > 0 {
		rows.add("Labels added", codeList(d.Added))
	}
	if len(d.Removed) > 0 {
		rows.add("Labels removed", codeList(d.Removed))
	}
	if len(d.References) > 0 {
		rows.add("References", strings.Join(d.References, ", "))
	}
	_ = rows.render(&sb)

	if len(d.Issues) > 0 {
		sb.WriteString("\n### Issues\n\n")
		for _, issue := range d.Issues {
			sb.WriteString(fmt.Sprintf("- %s\n", issue))
		}
	}

	return sb.String()
}

func code(s string) string {
	if s == "" {
		return "-"
	}
	return "`" + strings.ReplaceAll(s, "|", `\|`) + "`"
}

func codeList(items []string) string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, code(item))
	}
	return strings.Join(out, ", ")
}

// ComputeGeneration creates a unique key from SHA, title, and body.
func ComputeGeneration(sha, title, body string) string {
	h := sha256.New()
	h.Write([]byte(sha))
	h.Write([]byte(title))
	h.Write([]byte(body))
	return hex.EncodeToString(h.Sum(nil))
}

// AppendSummary appends the rendered details to the job summary file at path.
// An empty path is a no-op.
func AppendSummary(path string, d Details) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening job summary: %w", err)
	}
	if _, err := f.WriteString(d.Markdown() + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing job summary: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing job summary: %w", err)
	}
	return nil
}
