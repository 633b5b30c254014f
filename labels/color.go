/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package labels

import (
	"fmt"
	"unicode/utf16"
)

// Color derives a six digit hex color from label. The hash runs over UTF-16
// code units with 32-bit wraparound. The low three bytes are emitted least
// significant first.
func Color(label string) string {
	var h int32
	for _, c := range utf16.Encode([]rune(label)) {
		h = int32(c) + (h << 5) - h
	}
	return fmt.Sprintf("%02x%02x%02x", byte(h), byte(h>>8), byte(h>>16))
}
