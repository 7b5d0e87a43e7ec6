// Package aggregator implements the tool-aggregation pipeline: query
// construction, remote fetch, merge and dedupe, popularity ranking,
// transformation into tool records, and the curated-dataset fallback policy.
//
// Entry-point policy: Trending never returns an error — provider failures,
// rate limits, and empty results all degrade to the curated catalog with the
// Fallback flag set. Search propagates classified errors so its caller can
// apply its own fallback.
package aggregator

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/T3chfalcon/offsec-radar/internal/domain"
	"github.com/T3chfalcon/offsec-radar/internal/infra/github"
)

// SearchProvider is the consumed repository-search interface, implemented by
// github.Client and by test doubles.
type SearchProvider interface {
	SearchRepositories(ctx context.Context, query, sort string, perPage int) ([]github.Repository, error)
	GetRepository(ctx context.Context, owner, name string) (github.Repository, error)
}

// Catalog supplies the curated fallback dataset.
type Catalog interface {
	Tools() []domain.ToolRecord
}

// Config wires an Aggregator.
type Config struct {
	Provider SearchProvider
	Catalog  Catalog
	Logger   *zap.Logger
	Metrics  domain.Metrics
	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}

type Aggregator struct {
	provider SearchProvider
	catalog  Catalog
	logger   *zap.Logger
	metrics  domain.Metrics
	now      func() time.Time
}

func New(cfg Config) *Aggregator {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = domain.NopMetrics{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Aggregator{
		provider: cfg.Provider,
		catalog:  cfg.Catalog,
		logger:   logger.Named("aggregator"),
		metrics:  metrics,
		now:      now,
	}
}

// Search runs one stars-sorted search and returns ranked tool records.
// Errors, including an empty result set, propagate to the caller; the caller
// owns the fallback decision for this entry point.
func (a *Aggregator) Search(ctx context.Context, query string, filters domain.FilterParams) ([]domain.ToolRecord, error) {
	const op = "aggregator.Search"
	start := a.now()
	logger := a.logger.With(zap.String("search_id", uuid.NewString()))

	q := BuildQuery(query, filters)
	logger.Debug("searching provider", zap.String("query", q))

	repos, err := a.provider.SearchRepositories(ctx, q, github.SortStars, domain.DefaultProviderPerPage)
	if err != nil {
		a.recordFailure("search", start, err, logger)
		return nil, domain.Wrap(domain.CodeUnavailable, op, err)
	}
	if len(repos) == 0 {
		err := domain.E(domain.CodeEmptyResult, op, "", domain.ErrEmptyResult)
		a.recordFailure("search", start, err, logger)
		return nil, err
	}

	tools := a.pipeline(repos)
	a.metrics.ObserveSearch(domain.SearchMetric{
		Entry:    "search",
		Status:   domain.SearchStatusOK,
		Tools:    len(tools),
		Duration: a.now().Sub(start),
	})
	logger.Info("search completed", zap.Int("tools", len(tools)))
	return tools, nil
}

// Trending aggregates broadly popular, recently pushed tools. It issues two
// concurrent searches (stars-sorted and recency-sorted) and merges them; if
// either fetch fails, or the merged set is empty, the whole fetch phase is
// treated as failed and the curated catalog is served instead. Trending
// never returns an error.
func (a *Aggregator) Trending(ctx context.Context) domain.SearchResult {
	start := a.now()
	logger := a.logger.With(zap.String("search_id", uuid.NewString()))

	filters := domain.FilterParams{
		MinStars:     domain.DefaultTrendingMinStars,
		UpdatedAfter: a.now().AddDate(0, 0, -domain.DefaultTrendingWindowDays),
	}
	q := BuildQuery("", filters)

	repos, err := a.fetchBoth(ctx, q)
	if err != nil {
		a.recordProviderError(err, logger)
		return a.fallback("trending", start, logger)
	}
	if len(repos) == 0 {
		logger.Warn("trending search returned no items")
		return a.fallback("trending", start, logger)
	}

	tools := a.pipeline(repos)
	tools = a.trendingFilter(tools)

	a.metrics.ObserveSearch(domain.SearchMetric{
		Entry:    "trending",
		Status:   domain.SearchStatusOK,
		Tools:    len(tools),
		Duration: a.now().Sub(start),
	})
	logger.Info("trending completed", zap.Int("tools", len(tools)))
	return domain.SearchResult{Tools: tools}
}

// Describe fetches and transforms a single repository. Errors propagate.
func (a *Aggregator) Describe(ctx context.Context, owner, name string) (domain.ToolRecord, error) {
	repo, err := a.provider.GetRepository(ctx, owner, name)
	if err != nil {
		return domain.ToolRecord{}, domain.Wrap(domain.CodeUnavailable, "aggregator.Describe", err)
	}
	return Transform(repo, a.now()), nil
}

// fetchBoth joins a stars-sorted and a recency-sorted search. Partial
// success discards both result sets: a failure of either fetch fails the
// whole phase so the fallback decision stays deterministic.
func (a *Aggregator) fetchBoth(ctx context.Context, query string) ([]github.Repository, error) {
	type fetchResult struct {
		repos []github.Repository
		err   error
	}

	results := make(chan fetchResult, 2)
	for _, sortBy := range []string{github.SortStars, github.SortUpdated} {
		go func(sortBy string) {
			repos, err := a.provider.SearchRepositories(ctx, query, sortBy, domain.DefaultProviderPerPage)
			results <- fetchResult{repos: repos, err: err}
		}(sortBy)
	}

	var merged []github.Repository
	for i := 0; i < 2; i++ {
		result := <-results
		if result.err != nil {
			return nil, result.err
		}
		merged = append(merged, result.repos...)
	}
	return dedupe(merged), nil
}

// pipeline ranks deduplicated repositories and transforms them into records.
func (a *Aggregator) pipeline(repos []github.Repository) []domain.ToolRecord {
	now := a.now()
	repos = dedupe(repos)

	scores := make(map[int64]float64, len(repos))
	for _, repo := range repos {
		scores[repo.ID] = popularityScore(repo, parseTimestamp(repo.UpdatedAt, now), now)
	}
	sort.SliceStable(repos, func(i, j int) bool {
		return scores[repos[i].ID] > scores[repos[j].ID]
	})

	tools := make([]domain.ToolRecord, 0, len(repos))
	for _, repo := range repos {
		tools = append(tools, Transform(repo, now))
	}
	return tools
}

// trendingFilter keeps recently updated tools with a minimum of adoption;
// when the filter empties the set, the top ranked tools are served so the
// entry point never degrades below a usable list.
func (a *Aggregator) trendingFilter(tools []domain.ToolRecord) []domain.ToolRecord {
	now := a.now()
	filtered := make([]domain.ToolRecord, 0, len(tools))
	for _, tool := range tools {
		days := now.Sub(tool.LastUpdated).Hours() / 24
		if days < domain.DefaultTrendingWindowDays && tool.Stars > 20 {
			filtered = append(filtered, tool)
		}
	}
	if len(filtered) > 0 {
		return filtered
	}
	if len(tools) > domain.DefaultTrendingLimit {
		tools = tools[:domain.DefaultTrendingLimit]
	}
	return tools
}

func (a *Aggregator) fallback(entry string, start time.Time, logger *zap.Logger) domain.SearchResult {
	tools := a.catalog.Tools()
	a.metrics.ObserveFallback(entry)
	a.metrics.ObserveSearch(domain.SearchMetric{
		Entry:    entry,
		Status:   domain.SearchStatusFallback,
		Tools:    len(tools),
		Duration: a.now().Sub(start),
	})
	logger.Info("serving curated fallback dataset", zap.Int("tools", len(tools)))
	return domain.SearchResult{Tools: tools, Fallback: true}
}

func (a *Aggregator) recordProviderError(err error, logger *zap.Logger) {
	if code, ok := domain.CodeFrom(err); ok {
		a.metrics.ObserveProviderError(code)
	} else {
		a.metrics.ObserveProviderError(domain.CodeInternal)
	}
	logger.Warn("provider fetch failed", zap.Error(err))
}

func (a *Aggregator) recordFailure(entry string, start time.Time, err error, logger *zap.Logger) {
	a.recordProviderError(err, logger)
	a.metrics.ObserveSearch(domain.SearchMetric{
		Entry:    entry,
		Status:   domain.SearchStatusError,
		Duration: a.now().Sub(start),
	})
}
