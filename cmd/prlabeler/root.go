/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	runCmd := newRunCmd()
	root := &cobra.Command{
		Use:           "prlabeler",
		Short:         "Validate conventional commit pull request titles and label pull requests by type",
		RunE:          runCmd.RunE,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCmd, newParseCmd(), newClassifyCmd(), newColorCmd())
	return root
}

// readMessage returns the message given as arguments, or stdin when there are none.
func readMessage(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	in := cmd.InOrStdin()
	if in == os.Stdin {
		if fi, err := os.Stdin.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
			return "", errors.New("no message given, pass it as arguments or on stdin")
		}
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading message: %w", err)
	}
	return string(b), nil
}
