/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package labels

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"chainguard.dev/prlabeler/commits/classifier"
	"chainguard.dev/prlabeler/metrics"
	"chainguard.dev/prlabeler/retry"
	"github.com/chainguard-dev/clog"
	"github.com/google/go-github/v84/github"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Service is the subset of the GitHub issues API used to synchronize labels.
type Service interface {
	ListLabelsByIssue(ctx context.Context, owner, repo string, number int, opts *github.ListOptions) ([]*github.Label, *github.Response, error)
	RemoveLabelForIssue(ctx context.Context, owner, repo string, number int, label string) (*github.Response, error)
	GetLabel(ctx context.Context, owner, repo, name string) (*github.Label, *github.Response, error)
	CreateLabel(ctx context.Context, owner, repo string, label *github.Label) (*github.Label, *github.Response, error)
	AddLabelsToIssue(ctx context.Context, owner, repo string, number int, labels []string) ([]*github.Label, *github.Response, error)
}

var _ Service = (*github.IssuesService)(nil)

// Syncer applies a Policy to pull requests of one repository.
type Syncer struct {
	svc         Service
	owner, repo string
	retry       retry.Config
	concurrency int
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithRetryConfig sets the backoff used for rate limited and failed requests.
func WithRetryConfig(cfg retry.Config) Option {
	return func(s *Syncer) {
		s.retry = cfg
	}
}

// WithConcurrency bounds the number of labels removed in parallel.
func WithConcurrency(n int) Option {
	return func(s *Syncer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewSyncer returns a Syncer for owner/repo. It fails when the retry
// configuration is invalid.
func NewSyncer(svc Service, owner, repo string, opts ...Option) (*Syncer, error) {
	s := &Syncer{
		svc:         svc,
		owner:       owner,
		repo:        repo,
		retry:       retry.DefaultConfig(),
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.retry.Validate(); err != nil {
		return nil, fmt.Errorf("invalid retry config: %w", err)
	}
	return s, nil
}

// Sync brings the labels of pull request number in line with r and returns
// the plan it applied.
func (s *Syncer) Sync(ctx context.Context, number int, policy Policy, r classifier.Result) (plan Plan, err error) {
	tr := otel.Tracer("chainguard.dev.prlabeler.labels",
		oteltrace.WithInstrumentationVersion("1.0.0"))
	ctx, span := tr.Start(ctx, "labels.sync", oteltrace.WithAttributes(
		attribute.String("repository", s.owner+"/"+s.repo),
		attribute.Int("pull_request", number),
		attribute.String("commit.type", r.Type),
		attribute.Bool("commit.breaking", r.Breaking),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(
				attribute.StringSlice("labels.removed", plan.Remove),
				attribute.StringSlice("labels.added", plan.Add),
			)
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	log := clog.FromContext(ctx).With("repository", s.owner+"/"+s.repo).With("issue", number)
	ctx = clog.WithLogger(ctx, log)

	current, err := s.currentLabels(ctx, number)
	if err != nil {
		return Plan{}, err
	}

	plan = policy.Plan(current, r)
	if plan.Empty() {
		log.With("current", current).Info("Labels already up to date")
		return plan, nil
	}
	log.With("current", current).With("remove", plan.Remove).With("add", plan.Add).Info("Computed label plan")

	if err := s.remove(ctx, number, plan.Remove); err != nil {
		return Plan{}, err
	}
	for _, label := range plan.Add {
		if err := s.ensure(ctx, label); err != nil {
			return Plan{}, err
		}
		if err := s.add(ctx, number, label); err != nil {
			return Plan{}, err
		}
		log.With("label", label).Info("Added label")
	}
	return plan, nil
}

// currentLabels lists every label on the issue, following pagination.
func (s *Syncer) currentLabels(ctx context.Context, number int) ([]string, error) {
	var names []string
	opts := &github.ListOptions{PerPage: 100}
	type page struct {
		labels []*github.Label
		next   int
	}
	for {
		p, err := retry.RetryWithBackoff(ctx, s.retry, "list labels", retry.IsRetryableGitHubError, func() (page, error) {
			metrics.RecordLabelOperation(metrics.OperationList)
			labels, resp, err := s.svc.ListLabelsByIssue(ctx, s.owner, s.repo, number, opts)
			if err != nil {
				return page{}, err
			}
			next := 0
			if resp != nil {
				next = resp.NextPage
			}
			return page{labels: labels, next: next}, nil
		})
		if err != nil {
			return nil, fmt.Errorf("listing labels on %s/%s#%d: %w", s.owner, s.repo, number, err)
		}
		for _, l := range p.labels {
			names = append(names, l.GetName())
		}
		if p.next == 0 {
			return names, nil
		}
		opts.Page = p.next
	}
}

// remove detaches labels concurrently. Labels already gone are ignored.
func (s *Syncer) remove(ctx context.Context, number int, labels []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, label := range labels {
		g.Go(func() error {
			_, err := retry.RetryWithBackoff(ctx, s.retry, "remove label", retry.IsRetryableGitHubError, func() (struct{}, error) {
				metrics.RecordLabelOperation(metrics.OperationRemove)
				_, err := s.svc.RemoveLabelForIssue(ctx, s.owner, s.repo, number, label)
				return struct{}{}, err
			})
			switch {
			case isNotFound(err):
				clog.FromContext(ctx).With("label", label).Info("Label already removed")
			case err != nil:
				return fmt.Errorf("removing label %q: %w", label, err)
			default:
				clog.FromContext(ctx).With("label", label).Info("Removed label")
			}
			return nil
		})
	}
	return g.Wait()
}

// ensure creates label in the repository when it does not exist yet.
func (s *Syncer) ensure(ctx context.Context, label string) error {
	_, err := retry.RetryWithBackoff(ctx, s.retry, "get label", retry.IsRetryableGitHubError, func() (*github.Label, error) {
		metrics.RecordLabelOperation(metrics.OperationGet)
		l, _, err := s.svc.GetLabel(ctx, s.owner, s.repo, label)
		return l, err
	})
	switch {
	case err == nil:
		return nil
	case !isNotFound(err):
		return fmt.Errorf("getting label %q: %w", label, err)
	}

	color := Color(label)
	_, err = retry.RetryWithBackoff(ctx, s.retry, "create label", retry.IsRetryableGitHubError, func() (*github.Label, error) {
		metrics.RecordLabelOperation(metrics.OperationCreate)
		l, _, err := s.svc.CreateLabel(ctx, s.owner, s.repo, &github.Label{
			Name:  github.Ptr(label),
			Color: github.Ptr(color),
		})
		return l, err
	})
	if err != nil {
		return fmt.Errorf("creating label %q: %w", label, err)
	}
	clog.FromContext(ctx).With("label", label).With("color", color).Info("Created label")
	return nil
}

func (s *Syncer) add(ctx context.Context, number int, label string) error {
	_, err := retry.RetryWithBackoff(ctx, s.retry, "add label", retry.IsRetryableGitHubError, func() ([]*github.Label, error) {
		metrics.RecordLabelOperation(metrics.OperationAdd)
		l, _, err := s.svc.AddLabelsToIssue(ctx, s.owner, s.repo, number, []string{label})
		return l, err
	})
	if err != nil {
		return fmt.Errorf("adding label %q: %w", label, err)
	}
	return nil
}

func isNotFound(err error) bool {
	var respErr *github.ErrorResponse
	return errors.As(err, &respErr) && respErr.Response != nil && respErr.Response.StatusCode == http.StatusNotFound
}
