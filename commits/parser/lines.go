/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package parser

import "strings"

// trimNewLines removes leading and trailing line breaks, keeping other whitespace.
func trimNewLines(s string) string {
	return strings.TrimRight(strings.TrimLeft(s, "\r\n"), "\r\n")
}

// joinLine appends line to src with a newline separator. An empty src is
// replaced rather than extended, so leading blank lines collapse.
func joinLine(src, line string) string {
	if src == "" {
		return line
	}
	return src + "\n" + line
}

// appendLine is joinLine for optional fields; a nil dst becomes present.
func appendLine(dst **string, line string) {
	var cur string
	if *dst != nil {
		cur = **dst
	}
	v := joinLine(cur, line)
	*dst = &v
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := trimNewLines(*s)
	if v == "" {
		return nil
	}
	return &v
}
