package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/vbonduro/fiximages/internal/domain"
)

// documentRepository is the subset of docstore.DocumentStore the Reconciler
// requires.
type documentRepository interface {
	List(ctx context.Context, collection string) ([]*domain.Document, error)
	Update(ctx context.Context, collection, id string, fields map[string]any) error
}

// Summary totals one pass. Processed counts every visited record, so it
// equals Fixed + Skipped + Failed plus the records already in shape.
type Summary struct {
	Processed int
	Fixed     int
	Skipped   int
	Failed    int
}

type Outcome int

const (
	OutcomeUnchanged Outcome = iota
	OutcomeFixed
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFixed:
		return "fixed"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unchanged"
	}
}

type Reconciler struct {
	store      documentRepository
	collection string
	progress   progress
	logger     *slog.Logger
	now        func() time.Time
	dryRun     bool
}

type Option func(*Reconciler)

// WithClock replaces the wall clock used for missing upload times.
func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) { r.now = now }
}

// WithDryRun computes and reports patches without writing them.
func WithDryRun(dryRun bool) Option {
	return func(r *Reconciler) { r.dryRun = dryRun }
}

func NewReconciler(store documentRepository, collection string, out io.Writer, logger *slog.Logger, opts ...Option) *Reconciler {
	r := &Reconciler{
		store:      store,
		collection: collection,
		progress:   progress{w: out},
		logger:     logger,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run makes a single pass over the collection. Per-record problems are
// reported and counted; only a failure to list the collection or a cancelled
// context ends the pass with an error.
func (r *Reconciler) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	docs, err := r.store.List(ctx, r.collection)
	if err != nil {
		return sum, fmt.Errorf("failed to list collection %s: %w", r.collection, err)
	}

	r.logger.Info("reconciliation started", "collection", r.collection, "documents", len(docs), "dry_run", r.dryRun)
	r.progress.start(r.collection, len(docs), r.dryRun)

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("reconciliation interrupted", "processed", sum.Processed, "error", err)
			return sum, fmt.Errorf("reconciliation interrupted: %w", err)
		}

		sum.Processed++
		outcome := r.reconcile(ctx, doc)
		r.logger.Debug("document reconciled", "id", doc.ID, "outcome", outcome.String())
		switch outcome {
		case OutcomeFixed:
			sum.Fixed++
		case OutcomeSkipped:
			sum.Skipped++
		case OutcomeFailed:
			sum.Failed++
		}
	}

	r.progress.summary(sum)
	r.logger.Info("reconciliation complete",
		"collection", r.collection,
		"processed", sum.Processed,
		"fixed", sum.Fixed,
		"skipped", sum.Skipped,
		"failed", sum.Failed,
	)
	return sum, nil
}

func (r *Reconciler) reconcile(ctx context.Context, doc *domain.Document) Outcome {
	r.progress.visiting(doc.ID)

	patch, err := Plan(doc, r.now())
	if errors.Is(err, ErrMissingURLSource) {
		r.progress.missingURL(doc.ID)
		r.logger.Warn("document has no URL source", "collection", r.collection, "id", doc.ID)
		return OutcomeSkipped
	}
	if err != nil {
		r.progress.failed(doc.ID, err)
		r.logger.Error("failed to plan document", "id", doc.ID, "error", err)
		return OutcomeFailed
	}

	if patch.IsEmpty() {
		r.progress.unchanged(doc.ID)
		return OutcomeUnchanged
	}

	for _, c := range patch.Changes() {
		r.progress.adding(c)
	}

	if r.dryRun {
		r.progress.updated(doc.ID, true)
		return OutcomeFixed
	}

	if err := r.store.Update(ctx, r.collection, doc.ID, patch.Fields()); err != nil {
		r.progress.failed(doc.ID, err)
		r.logger.Error("failed to update document", "collection", r.collection, "id", doc.ID, "error", err)
		return OutcomeFailed
	}

	r.progress.updated(doc.ID, false)
	r.logger.Debug("document updated", "id", doc.ID, "fields", patch.Len())
	return OutcomeFixed
}
