/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package classifier turns a parsed conventional commit into a Result holding
// its type, scope and whether it introduces a breaking change, rejecting types
// outside a configured allow-list.
//
// A commit is breaking when it carries a note titled exactly "BREAKING CHANGE".
// Headers using the "type!:" convention get that note from the parser, so the
// classifier does not inspect the header itself.
//
// CheckTicketReference is an independent check that a title mentions a ticket
// matching a configured pattern, such as `[A-Z]+-\d+`.
package classifier
