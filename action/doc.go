/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package action runs the pull request labeler as a GitHub Actions step.

Inputs arrive as INPUT_* environment variables and are loaded with LoadConfig:

	task_types        JSON array of accepted commit types (required)
	ticket_key_regex  pattern that must match somewhere in the title
	add_label         "false" disables label synchronization
	custom_labels     JSON object mapping commit types to label names
	config_file       YAML file providing defaults for the inputs above
	token             token used for label requests
	app_id, installation_id, private_key
	                  GitHub App credentials used instead of token
	metrics_pushgateway
	                  Pushgateway URL that receives run metrics

Malformed inputs are reported with the same messages the check uses for
invalid titles, for example "Invalid task_types input. Expecting a JSON array.".

# Flow

Run classifies the pull request title and body, checks the ticket reference,
and then synchronizes labels. Label synchronization only starts once the
classification is complete. The outcome is appended to the job summary and
metrics are pushed even when a check fails.

	cfg, err := action.LoadConfig(ctx, nil)
	ev, err := action.LoadEvent(cfg.EventPath)
	_, err = action.Run(ctx, cfg, action.Deps{
		Event: ev,
		NewIssues: func(ctx context.Context) (labels.Service, error) {
			gh, err := action.NewClient(ctx, cfg)
			if err != nil {
				return nil, err
			}
			return gh.Issues, nil
		},
	})
	if action.IsFailure(err) {
		// report err.Error() to the author
	}

The client is only built once the title has passed every check, so a missing
token never masks a title failure.
*/
package action
