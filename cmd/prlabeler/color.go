/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"fmt"

	"chainguard.dev/prlabeler/labels"
	"github.com/spf13/cobra"
)

func newColorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "color label...",
		Short: "Print the color assigned to newly created labels",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, label := range args {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", labels.Color(label), label)
			}
			return nil
		},
	}
}
