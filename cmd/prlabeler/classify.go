/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"encoding/json"
	"errors"

	"chainguard.dev/prlabeler/commits/classifier"
	"github.com/spf13/cobra"
)

func newClassifyCmd() *cobra.Command {
	var (
		types      []string
		configFile string
	)
	cmd := &cobra.Command{
		Use:   "classify [message]",
		Short: "Classify a commit message against the accepted types",
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := readMessage(cmd, args)
			if err != nil {
				return err
			}
			p, err := loadParser(configFile)
			if err != nil {
				return err
			}
			if len(types) == 0 {
				return errors.New("--types is required")
			}
			commit, err := p.Parse(msg)
			if err != nil {
				return err
			}
			r, err := classifier.New(p, types).Classify(commit)
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(r)
		},
	}
	cmd.Flags().StringSliceVar(&types, "types", nil, "accepted commit types")
	cmd.Flags().StringVar(&configFile, "config", "", "YAML file with parser settings")
	return cmd
}
