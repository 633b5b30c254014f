/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"encoding/json"
	"fmt"

	"chainguard.dev/prlabeler/action"
	"chainguard.dev/prlabeler/commits/parser"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "parse [message]",
		Short: "Parse a commit message and print the result as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readMessage(cmd, args)
			if err != nil {
				return err
			}
			p, err := loadParser(configFile)
			if err != nil {
				return err
			}
			commit, err := p.Parse(msg)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(commit)
		},
	}
	cmd.Flags().StringVar(&configFile, "config", "", "YAML file with parser settings")
	return cmd
}

func loadParser(configFile string) (*parser.Parser, error) {
	f, err := action.LoadFile(configFile)
	if err != nil {
		return nil, err
	}
	opts, err := f.Parser.Options()
	if err != nil {
		return nil, err
	}
	p, err := parser.New(opts)
	if err != nil {
		return nil, fmt.Errorf("creating parser: %w", err)
	}
	return p, nil
}
