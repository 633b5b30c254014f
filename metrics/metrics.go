/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Validation failure reasons.
const (
	ReasonType   = "type"
	ReasonTicket = "ticket"
	ReasonEmpty  = "empty"
	ReasonInput  = "input"
)

// Label operations against the issue tracker.
const (
	OperationList   = "list"
	OperationRemove = "remove"
	OperationGet    = "get"
	OperationCreate = "create"
	OperationAdd    = "add"
)

var (
	classificationCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prlabeler_classifications_total",
			Help: "Total number of pull request titles classified",
		},
		[]string{"type", "breaking"},
	)

	validationFailureCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prlabeler_validation_failures_total",
			Help: "Total number of pull request titles rejected",
		},
		[]string{"reason"},
	)

	labelOperationCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prlabeler_label_operations_total",
			Help: "Total number of label requests sent to the issue tracker",
		},
		[]string{"operation"},
	)
)

// RecordClassification counts a successful classification.
func RecordClassification(typ string, breaking bool) {
	classificationCounter.WithLabelValues(typ, strconv.FormatBool(breaking)).Inc()
}

// RecordValidationFailure counts a rejected title.
func RecordValidationFailure(reason string) {
	validationFailureCounter.WithLabelValues(reason).Inc()
}

// RecordLabelOperation counts one issue tracker request, including retries.
func RecordLabelOperation(operation string) {
	labelOperationCounter.WithLabelValues(operation).Inc()
}

// Push sends every registered metric to the Pushgateway at url under job.
// An empty url is a no-op.
func Push(ctx context.Context, url, job string) error {
	if url == "" {
		return nil
	}
	if err := push.New(url, job).Gatherer(prometheus.DefaultGatherer).PushContext(ctx); err != nil {
		return fmt.Errorf("pushing metrics to %s: %w", url, err)
	}
	return nil
}
