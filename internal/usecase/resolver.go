package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nutriscan/backend/internal/domain"
)

const (
	// searchLimit caps candidate rows/results per query at both sources.
	searchLimit = 25
	// maxAlternatives caps the runner-up records per resolution.
	maxAlternatives = 4
)

// Resolver orchestrates the source fallback chain: the local source is
// authoritative when it has a match, the remote API is consulted only on
// a local miss. It is request-scoped and stateless between calls; no
// error from a single candidate ever escapes a call.
type Resolver struct {
	local  domain.FoodSource
	remote domain.RemoteAPI
	log    *zap.Logger
}

// NewResolver creates a resolver over a local source and the remote API.
func NewResolver(local domain.FoodSource, remote domain.RemoteAPI, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{local: local, remote: remote, log: log}
}

// ResolveByName resolves a free-text food name into a main record plus
// up to four alternatives. Local rows win outright: when any exist the
// remote API is not consulted at all.
func (r *Resolver) ResolveByName(ctx context.Context, query string) domain.ResolutionResult {
	if query == "" {
		return domain.ResolutionResult{
			Status:       domain.StatusError,
			Message:      "empty query",
			Alternatives: []domain.FoodRecord{},
		}
	}

	rows, err := r.local.SearchByName(ctx, query, searchLimit)
	if err != nil {
		// A broken local source degrades to the remote path.
		r.log.Warn("local search failed", zap.String("query", query), zap.Error(err))
		rows = nil
	}

	if len(rows) > 0 {
		r.log.Info("resolved locally", zap.String("query", query), zap.Int("rows", len(rows)))
		main := NormalizeFood(rows[0])
		alternatives := make([]domain.FoodRecord, 0, maxAlternatives)
		for _, row := range rows[1:min(len(rows), 1+maxAlternatives)] {
			alternatives = append(alternatives, NormalizeFood(row))
		}
		return domain.ResolutionResult{
			Status:       domain.StatusSuccess,
			Main:         &main,
			Alternatives: alternatives,
		}
	}

	return r.resolveRemote(ctx, query)
}

// resolveRemote runs the search + detail-fetch flow against the FDC API.
// The main slot fails closed; alternative slots are best-effort.
func (r *Resolver) resolveRemote(ctx context.Context, query string) domain.ResolutionResult {
	notFound := domain.ResolutionResult{
		Status:       domain.StatusError,
		Message:      fmt.Sprintf("no nutrition data found for %q", query),
		Alternatives: []domain.FoodRecord{},
	}

	results, err := r.remote.Search(ctx, query, searchLimit)
	if err != nil {
		r.log.Warn("remote search failed", zap.String("query", query), zap.Error(err))
		return notFound
	}
	if len(results) == 0 {
		r.log.Info("no remote results", zap.String("query", query))
		return notFound
	}

	main, err := r.fetchCandidate(ctx, results[0])
	if err != nil {
		r.log.Warn("main candidate fetch failed",
			zap.String("query", query),
			zap.String("fdcId", candidateID(results[0])),
			zap.Error(err))
		return notFound
	}

	return domain.ResolutionResult{
		Status:       domain.StatusSuccess,
		Main:         &main,
		Alternatives: r.fetchAlternatives(ctx, results),
	}
}

// fetchAlternatives fetches details for up to four runner-up results
// concurrently. Each record lands at its result index, so the output
// order matches the upstream ranking regardless of completion order; a
// failed fetch is logged and its slot dropped.
func (r *Resolver) fetchAlternatives(ctx context.Context, results []domain.RawFood) []domain.FoodRecord {
	candidates := results[1:min(len(results), 1+maxAlternatives)]
	slots := make([]*domain.FoodRecord, len(candidates))

	var g errgroup.Group
	for i, summary := range candidates {
		i, summary := i, summary
		g.Go(func() error {
			rec, err := r.fetchCandidate(ctx, summary)
			if err != nil {
				r.log.Warn("alternative fetch failed",
					zap.String("fdcId", candidateID(summary)),
					zap.Error(err))
				return nil // best-effort: swallow, keep the rest
			}
			slots[i] = &rec
			return nil
		})
	}
	g.Wait()

	alternatives := make([]domain.FoodRecord, 0, len(candidates))
	for _, rec := range slots {
		if rec != nil {
			alternatives = append(alternatives, *rec)
		}
	}
	return alternatives
}

// fetchCandidate fetches the full record behind one search result and
// normalizes it, backfilling the placeholder set when extraction comes
// back empty.
func (r *Resolver) fetchCandidate(ctx context.Context, summary domain.RawFood) (domain.FoodRecord, error) {
	id := candidateID(summary)
	if id == "" {
		return domain.FoodRecord{}, fmt.Errorf("search result without fdcId: %w", domain.ErrFoodNotFound)
	}

	detail, err := r.remote.GetFood(ctx, id)
	if err != nil {
		return domain.FoodRecord{}, err
	}

	rec := NormalizeFood(detail)
	if len(rec.Nutrients) == 0 {
		r.log.Info("no nutrients extracted, using placeholder", zap.String("fdcId", id))
		rec.Nutrients = domain.PlaceholderNutrients()
	}
	return rec, nil
}

// ResolveByBarcode resolves a barcode into at most one record. An exact
// local id match is authoritative and triggers no remote call; otherwise
// only result 0 of a remote search is considered — a barcode identifies
// exactly one product. Absence and upstream failure both surface as
// ErrFoodNotFound.
func (r *Resolver) ResolveByBarcode(ctx context.Context, code string) (*domain.FoodRecord, error) {
	if code == "" {
		return nil, domain.ErrInvalidRequest
	}

	raw, err := r.local.GetByFDCID(ctx, code)
	if err == nil {
		rec := NormalizeFood(raw)
		r.log.Info("barcode resolved locally", zap.String("code", code))
		return &rec, nil
	}

	results, err := r.remote.Search(ctx, code, searchLimit)
	if err != nil {
		r.log.Warn("remote barcode search failed", zap.String("code", code), zap.Error(err))
		return nil, domain.ErrFoodNotFound
	}
	if len(results) == 0 {
		r.log.Info("no product for barcode", zap.String("code", code))
		return nil, domain.ErrFoodNotFound
	}

	id := candidateID(results[0])
	detail, err := r.remote.GetFood(ctx, id)
	if err != nil {
		r.log.Warn("barcode detail fetch failed",
			zap.String("code", code), zap.String("fdcId", id), zap.Error(err))
		return nil, domain.ErrFoodNotFound
	}

	rec := NormalizeFood(detail)
	return &rec, nil
}

// candidateID extracts the opaque external identifier from a raw record.
func candidateID(raw domain.RawFood) string {
	return idField(raw, "fdcId")
}
