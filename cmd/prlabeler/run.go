/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"fmt"

	"chainguard.dev/prlabeler/action"
	"chainguard.dev/prlabeler/labels"
	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Check the pull request of the current workflow event and sync its labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			err := runAction(cmd)
			switch {
			case err == nil:
			case action.IsFailure(err):
				// Workflow command annotating the step with the failure.
				fmt.Fprintf(cmd.OutOrStdout(), "::error::%s\n", err)
				clog.WarnContextf(ctx, "Pull request check failed: %v", err)
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "::error title=prlabeler error::%s\n", err)
				clog.ErrorContextf(ctx, "prlabeler failed: %v", err)
			}
			return err
		},
	}
}

func runAction(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := action.LoadConfig(ctx, nil)
	if err != nil {
		return err
	}
	ev, err := action.LoadEvent(cfg.EventPath)
	if err != nil {
		return err
	}

	details, err := action.Run(ctx, cfg, action.Deps{
		Event: ev,
		NewIssues: func(ctx context.Context) (labels.Service, error) {
			gh, err := action.NewClient(ctx, cfg)
			if err != nil {
				return nil, err
			}
			return gh.Issues, nil
		},
	})
	if err != nil {
		return err
	}
	clog.InfoContextf(ctx, "Pull request #%d is valid: type=%s scope=%q breaking=%t",
		ev.GetPullRequest().GetNumber(), details.Type, details.Scope, details.Breaking)
	return nil
}
