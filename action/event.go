/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package action

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/go-github/v84/github"
)

// ErrNoPullRequest is returned for events that do not carry a pull request.
var ErrNoPullRequest = errors.New("event payload does not contain a pull request")

// LoadEvent decodes the workflow event payload at path.
func LoadEvent(path string) (*github.PullRequestEvent, error) {
	if path == "" {
		return nil, errors.New("GITHUB_EVENT_PATH is not set")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading event payload: %w", err)
	}
	var ev github.PullRequestEvent
	if err := json.Unmarshal(b, &ev); err != nil {
		return nil, fmt.Errorf("decoding event payload: %w", err)
	}
	if ev.PullRequest == nil {
		return nil, ErrNoPullRequest
	}
	return &ev, nil
}

// repository returns the owner and name of the repository the event belongs
// to, preferring GITHUB_REPOSITORY over the payload.
func repository(full string, ev *github.PullRequestEvent) (owner, repo string, err error) {
	if full != "" {
		owner, repo, ok := strings.Cut(full, "/")
		if !ok || owner == "" || repo == "" {
			return "", "", fmt.Errorf("malformed repository %q, expected owner/repo", full)
		}
		return owner, repo, nil
	}
	if r := ev.GetRepo(); r.GetOwner().GetLogin() != "" && r.GetName() != "" {
		return r.GetOwner().GetLogin(), r.GetName(), nil
	}
	return "", "", errors.New("unable to determine the repository")
}
