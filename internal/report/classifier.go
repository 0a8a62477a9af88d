// Package report classifies execution outcomes and renders the run artifacts.
package report

import (
	"slices"

	"github.com/jonesrussell/queryvalidator/internal/domain"
)

// Classifier accumulates outcomes into counters and ordered bucket lists.
// It is not safe for concurrent use.
type Classifier struct {
	thresholds domain.Thresholds
	summary    domain.RunSummary
}

// NewClassifier creates an empty Classifier.
func NewClassifier(thresholds domain.Thresholds) *Classifier {
	return &Classifier{thresholds: thresholds}
}

// Observe records one outcome and returns its bucket.
func (c *Classifier) Observe(o domain.ExecutionOutcome) domain.Bucket {
	c.summary.Total++

	bucket := c.thresholds.Classify(o)
	switch bucket {
	case domain.BucketFailed:
		c.summary.Failed++
		c.summary.FailedOutcomes = append(c.summary.FailedOutcomes, o)
	case domain.BucketVerySlow:
		c.summary.Succeeded++
		c.summary.VerySlowOutcomes = append(c.summary.VerySlowOutcomes, o)
	case domain.BucketSlow:
		c.summary.Succeeded++
		c.summary.SlowOutcomes = append(c.summary.SlowOutcomes, o)
	case domain.BucketNone:
		c.summary.Succeeded++
	}
	return bucket
}

// Summary returns a snapshot of the counters and lists. Run metadata is left
// to the caller.
func (c *Classifier) Summary() domain.RunSummary {
	s := c.summary
	s.FailedOutcomes = slices.Clone(s.FailedOutcomes)
	s.SlowOutcomes = slices.Clone(s.SlowOutcomes)
	s.VerySlowOutcomes = slices.Clone(s.VerySlowOutcomes)
	return s
}
