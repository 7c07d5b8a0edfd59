package roster

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tailscale-portfolio/clerkcli/internal/identity"
)

// Option configures the Aggregator.
type Option func(a *Aggregator)

// WithWorkers sets how many organizations are processed at once. Values below 2
// keep processing strictly sequential. Row order does not depend on this setting.
func WithWorkers(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.workers = n
		}
	}
}

// Aggregator collects rows for a list of organizations.
type Aggregator struct {
	verifier   *Verifier
	fetcher    *Fetcher
	normalizer *Normalizer
	logger     *slog.Logger
	workers    int
}

// NewAggregator wires a Verifier, Fetcher and Normalizer over one directory.
func NewAggregator(dir identity.Directory, logger *slog.Logger, opts ...Option) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Aggregator{
		verifier:   NewVerifier(dir, logger),
		fetcher:    NewFetcher(dir, logger),
		normalizer: NewNormalizer(dir, logger),
		logger:     logger,
		workers:    1,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// orgSlot holds one organization's output until it is merged in input order.
type orgSlot struct {
	done   bool
	rows   []Row
	report OrgReport
}

// Aggregate processes orgIDs and returns their rows in input order. Organizations
// that fail verification or have no members contribute no rows. Once ctx is done
// no further organizations are started; rows of finished ones are kept.
func (a *Aggregator) Aggregate(ctx context.Context, orgIDs []string, orderBy string) Result {
	slots := make([]orgSlot, len(orgIDs))

	if a.workers <= 1 {
		for i, orgID := range orgIDs {
			if ctx.Err() != nil {
				break
			}
			slots[i] = a.processOrg(ctx, orgID, orderBy)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(a.workers)
		for i, orgID := range orgIDs {
			i, orgID := i, orgID
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				slots[i] = a.processOrg(gctx, orgID, orderBy)
				return nil
			})
		}
		// Only context cancellation is returned; it is reflected by unfinished slots.
		_ = g.Wait()
	}

	var result Result
	for _, slot := range slots {
		if !slot.done {
			continue
		}
		result.Rows = append(result.Rows, slot.rows...)
		result.Reports = append(result.Reports, slot.report)
	}

	if len(result.Rows) == 0 {
		a.logger.Info("no users found for any organization")
	}
	return result
}

func (a *Aggregator) processOrg(ctx context.Context, orgID, orderBy string) orgSlot {
	slot := orgSlot{done: true, report: OrgReport{OrganizationID: orgID}}

	org, err := a.verifier.Verify(ctx, orgID)
	if err != nil {
		slot.report.Err = err
		slot.report.Outcome = OutcomeUnreachable
		if errors.Is(err, identity.ErrNotFound) {
			slot.report.Outcome = OutcomeNotFound
		}
		return slot
	}
	slot.report.OrganizationName = org.Name

	users, err := a.fetcher.Fetch(ctx, org.ID, orderBy)
	a.logger.Debug("received organization users", "org_name", org.Name, "count", len(users))
	if len(users) == 0 {
		a.logger.Info("no users found for organization", "org_name", org.Name)
		slot.report.Outcome = OutcomeEmpty
		if err != nil {
			slot.report.Outcome = OutcomeListFailed
			slot.report.Err = err
		}
		return slot
	}

	slot.rows = make([]Row, 0, len(users))
	for _, user := range users {
		slot.rows = append(slot.rows, a.normalizer.Normalize(ctx, org.Name, user))
	}
	slot.report.Outcome = OutcomeListed
	slot.report.Users = len(slot.rows)
	return slot
}
