/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package action

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/prlabeler/commits/classifier"
	"chainguard.dev/prlabeler/commits/parser"
	"chainguard.dev/prlabeler/labels"
	"chainguard.dev/prlabeler/metrics"
	"chainguard.dev/prlabeler/report"
	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

// MetricsJob is the Pushgateway job name.
const MetricsJob = "prlabeler"

// Deps are the collaborators of Run.
type Deps struct {
	// Event is the pull request event being checked.
	Event *github.PullRequestEvent
	// Issues is used to synchronize labels.
	Issues labels.Service
	// NewIssues builds the issues service when Issues is nil. It is only
	// called once the title has passed every check.
	NewIssues func(context.Context) (labels.Service, error)
	// SyncOptions configure the label Syncer.
	SyncOptions []labels.Option
}

// Run checks the pull request title and synchronizes its labels. The outcome
// is appended to the job summary and metrics are pushed whether or not the
// check passes. Check failures are returned as *Failure.
func Run(ctx context.Context, cfg *Config, deps Deps) (details report.Details, err error) {
	pr := deps.Event.GetPullRequest()
	title, body := pr.GetTitle(), pr.GetBody()

	tr := otel.Tracer("chainguard.dev.prlabeler.action",
		oteltrace.WithInstrumentationVersion("1.0.0"))
	ctx, span := tr.Start(ctx, "prlabeler.run", oteltrace.WithAttributes(
		attribute.Int("pull_request", pr.GetNumber()),
		attribute.String("title", title),
	))

	log := clog.FromContext(ctx).With("pr", pr.GetNumber())
	ctx = clog.WithLogger(ctx, log)

	details = report.Details{
		Generation: report.ComputeGeneration(pr.GetHead().GetSHA(), title, body),
		Title:      title,
	}

	defer func() {
		if err != nil {
			details.Issues = append(details.Issues, err.Error())
			var f *Failure
			if errors.As(err, &f) {
				metrics.RecordValidationFailure(f.Reason)
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		if serr := report.AppendSummary(cfg.StepSummary, details); serr != nil {
			log.Warnf("Failed to write job summary: %v", serr)
		}
		if perr := metrics.Push(ctx, cfg.MetricsPushgateway, MetricsJob); perr != nil {
			log.Warnf("Failed to push metrics: %v", perr)
		}
		span.End()
	}()

	err = process(ctx, cfg, deps, &details)
	return details, err
}

func process(ctx context.Context, cfg *Config, deps Deps, d *report.Details) error {
	pr := deps.Event.GetPullRequest()
	if pr == nil {
		return ErrNoPullRequest
	}
	log := clog.FromContext(ctx)

	file, err := LoadFile(cfg.ConfigFile)
	if err != nil {
		return fail(metrics.ReasonInput, err)
	}
	types, err := cfg.taskTypes(file)
	if err != nil {
		return fail(metrics.ReasonInput, err)
	}
	opts, err := file.Parser.Options()
	if err != nil {
		return fail(metrics.ReasonInput, err)
	}
	p, err := parser.New(opts)
	if err != nil {
		return fail(metrics.ReasonInput, err)
	}

	result, commit, err := classifier.New(p, types).ClassifyMessage(pr.GetTitle(), pr.GetBody())
	switch {
	case errors.Is(err, parser.ErrEmptyInput):
		return fail(metrics.ReasonEmpty, err)
	case err != nil:
		return fail(metrics.ReasonType, err)
	}
	metrics.RecordClassification(result.Type, result.Breaking)
	log.With("type", result.Type).With("scope", result.Scope).With("breaking", result.Breaking).Info("Classified pull request")

	d.Valid = true
	d.Type, d.Scope, d.Breaking = result.Type, result.Scope, result.Breaking
	for _, ref := range commit.References {
		d.References = append(d.References, formatReference(ref))
	}

	pattern, err := cfg.ticketPattern(file)
	if err != nil {
		return fail(metrics.ReasonInput, err)
	}
	if err := classifier.CheckTicketReference(pr.GetTitle(), pattern); err != nil {
		return fail(metrics.ReasonTicket, err)
	}

	if !cfg.LabelingEnabled() {
		log.Info("Labeling disabled, skipping label sync")
		return nil
	}
	custom, err := cfg.customLabels(file)
	if err != nil {
		return fail(metrics.ReasonInput, err)
	}
	owner, repo, err := repository(cfg.Repository, deps.Event)
	if err != nil {
		return err
	}
	issues, err := deps.issues(ctx)
	if err != nil {
		return err
	}
	syncer, err := labels.NewSyncer(issues, owner, repo, deps.SyncOptions...)
	if err != nil {
		return err
	}

	policy := labels.Policy{AllowedTypes: types, CustomLabels: custom}
	plan, err := syncer.Sync(ctx, pr.GetNumber(), policy, result)
	if err != nil {
		return fmt.Errorf("syncing labels: %w", err)
	}
	d.Added, d.Removed = plan.Add, plan.Remove
	return nil
}

func (d Deps) issues(ctx context.Context) (labels.Service, error) {
	switch {
	case d.Issues != nil:
		return d.Issues, nil
	case d.NewIssues != nil:
		return d.NewIssues(ctx)
	default:
		return nil, ErrNoCredentials
	}
}

func formatReference(ref parser.Reference) string {
	var prefix string
	if ref.Owner != nil {
		prefix = ref.GetOwner() + "/"
	}
	return prefix + ref.GetRepository() + ref.Prefix + ref.Issue
}
