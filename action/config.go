/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package action

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"regexp"
	"strings"

	"github.com/sethvargo/go-envconfig"
)

// Literal messages reported for malformed inputs.
const (
	msgMissingTaskTypes     = "Missing required input: task_types"
	msgInvalidTaskTypes     = "Invalid task_types input. Expecting a JSON array."
	msgUnparseableLabels    = "Invalid custom_labels input. Unable to parse JSON."
	msgInvalidCustomLabels  = "Invalid custom_labels input. Expecting a JSON object with string keys and values."
	msgInvalidTicketPattern = "Invalid ticket_key_regex input"
)

// Config holds the action inputs and the workflow environment.
type Config struct {
	// TaskTypes is a JSON array of accepted commit types.
	TaskTypes string `env:"INPUT_TASK_TYPES"`
	// TicketKeyRegex, when set, must match somewhere in the title.
	TicketKeyRegex string `env:"INPUT_TICKET_KEY_REGEX"`
	// AddLabel disables labeling when set to "false".
	AddLabel string `env:"INPUT_ADD_LABEL,default=true"`
	// CustomLabels is a JSON object mapping commit types to label names.
	CustomLabels string `env:"INPUT_CUSTOM_LABELS"`
	// ConfigFile is an optional YAML file providing defaults for the inputs above.
	ConfigFile string `env:"INPUT_CONFIG_FILE"`

	// Token authenticates label requests.
	Token string `env:"INPUT_TOKEN"`
	// AppID, InstallationID and PrivateKey authenticate as a GitHub App
	// installation instead of Token.
	AppID          int64  `env:"INPUT_APP_ID"`
	InstallationID int64  `env:"INPUT_INSTALLATION_ID"`
	PrivateKey     string `env:"INPUT_PRIVATE_KEY"`

	// MetricsPushgateway is the Pushgateway URL metrics are pushed to.
	MetricsPushgateway string `env:"INPUT_METRICS_PUSHGATEWAY"`

	EventPath   string `env:"GITHUB_EVENT_PATH"`
	Repository  string `env:"GITHUB_REPOSITORY"`
	StepSummary string `env:"GITHUB_STEP_SUMMARY"`
	APIURL      string `env:"GITHUB_API_URL,default=https://api.github.com"`
}

// LoadConfig reads the configuration from l, or from the process environment
// when l is nil.
func LoadConfig(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	if l == nil {
		l = envconfig.OsLookuper()
	}
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("processing config: %w", err)
	}
	return &cfg, nil
}

// LabelingEnabled reports whether labels should be synchronized. Only the
// literal "false", in any case, disables labeling.
func (c *Config) LabelingEnabled() bool {
	return !strings.EqualFold(strings.TrimSpace(c.AddLabel), "false")
}

// ParseTaskTypes decodes the task_types input.
func ParseTaskTypes(input string) ([]string, error) {
	if strings.TrimSpace(input) == "" {
		return nil, errors.New(msgMissingTaskTypes)
	}
	var types []string
	if err := json.Unmarshal([]byte(input), &types); err != nil || types == nil {
		return nil, errors.New(msgInvalidTaskTypes)
	}
	return types, nil
}

// ParseCustomLabels decodes the custom_labels input. An empty input yields no
// custom labels.
func ParseCustomLabels(input string) (map[string]string, error) {
	if strings.TrimSpace(input) == "" {
		return map[string]string{}, nil
	}
	var raw any
	if err := json.Unmarshal([]byte(input), &raw); err != nil {
		return nil, errors.New(msgUnparseableLabels)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.New(msgInvalidCustomLabels)
	}
	labels := make(map[string]string, len(obj))
	for k, v := range obj {
		s, ok := v.(string)
		if !ok {
			return nil, errors.New(msgInvalidCustomLabels)
		}
		labels[k] = s
	}
	return labels, nil
}

// ParseTicketPattern compiles the ticket_key_regex input. An empty input
// disables the ticket check.
func ParseTicketPattern(input string) (*regexp.Regexp, error) {
	if input == "" {
		return nil, nil
	}
	re, err := regexp.Compile(input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", msgInvalidTicketPattern, err)
	}
	return re, nil
}

// taskTypes resolves the allow-list, preferring the input over the file.
func (c *Config) taskTypes(f *File) ([]string, error) {
	if strings.TrimSpace(c.TaskTypes) == "" && len(f.TaskTypes) > 0 {
		return f.TaskTypes, nil
	}
	return ParseTaskTypes(c.TaskTypes)
}

// customLabels resolves the custom labels. Input entries override file entries.
func (c *Config) customLabels(f *File) (map[string]string, error) {
	labels, err := ParseCustomLabels(c.CustomLabels)
	if err != nil {
		return nil, err
	}
	merged := make(map[string]string, len(f.CustomLabels)+len(labels))
	maps.Copy(merged, f.CustomLabels)
	maps.Copy(merged, labels)
	return merged, nil
}

// ticketPattern resolves the ticket pattern, preferring the input over the file.
func (c *Config) ticketPattern(f *File) (*regexp.Regexp, error) {
	if c.TicketKeyRegex != "" {
		return ParseTicketPattern(c.TicketKeyRegex)
	}
	return ParseTicketPattern(f.TicketKeyRegex)
}
