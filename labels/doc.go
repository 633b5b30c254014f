/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package labels keeps pull request labels in sync with the conventional commit
classification of the pull request title.

# Policy

A Policy names the labels the labeler owns ("managed" labels): every allowed
commit type, the "breaking change" label and every custom label value. Labels
outside that set are never touched, so labels applied by people or other
automation survive a sync.

	policy := labels.Policy{
		AllowedTypes: []string{"feat", "fix", "docs"},
		CustomLabels: map[string]string{"feat": "enhancement"},
	}
	plan := policy.Plan([]string{"fix", "needs review"}, classifier.Result{Type: "feat", Breaking: true})
	// plan.Remove == ["fix"], plan.Add == ["enhancement", "breaking change"]

# Synchronization

Syncer applies a plan through the GitHub issues API:

	syncer, err := labels.NewSyncer(client.Issues, "acme", "widgets",
		labels.WithRetryConfig(retry.DefaultConfig()),
		labels.WithConcurrency(4),
	)
	if err != nil {
		return err
	}
	plan, err := syncer.Sync(ctx, pr.GetNumber(), policy, result)

A plan with nothing to remove or add issues no requests beyond the listing.

Stale labels are removed concurrently; a label that is already gone is not an
error. Each label to add is looked up in the repository first and created with
Color when missing, then attached to the pull request. Rate limits and server
errors are retried with exponential backoff.

# Colors

Color derives a stable six digit hex color from the label name, so labels
created by different runs or repositories share the same color.
*/
package labels
