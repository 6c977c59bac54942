package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/hirewiz/hirewiz/internal/model"
)

// Matcher provides the LLM-backed pieces of the search pipeline.
type Matcher interface {
	MatchCandidate(ctx context.Context, query, profile string) (model.MatchResult, error)
	ExtractLocation(ctx context.Context, query string, countries []string) (string, error)
}

// Ranker runs the candidate search pipeline:
// load pool → extract location filter → score each candidate → rank by score.
type Ranker struct {
	store          model.CandidateStore
	matcher        Matcher
	maxConcurrency int
	minScore       int
	logger         *slog.Logger
}

// NewRanker creates a ranker wired with all its dependencies.
func NewRanker(store model.CandidateStore, matcher Matcher, maxConcurrency, minScore int, logger *slog.Logger) *Ranker {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Ranker{
		store:          store,
		matcher:        matcher,
		maxConcurrency: maxConcurrency,
		minScore:       minScore,
		logger:         logger,
	}
}

// Search ranks the candidate pool against a recruiter query.
// Candidates whose scoring call fails are logged and skipped; a single flaky
// LLM call never fails the whole search.
func (r *Ranker) Search(ctx context.Context, query string) ([]model.RankedCandidate, error) {
	candidates, err := r.store.List()
	if err != nil {
		return nil, fmt.Errorf("loading candidates: %w", err)
	}
	if len(candidates) == 0 {
		return []model.RankedCandidate{}, nil
	}

	countries, err := r.store.Countries()
	if err != nil {
		return nil, fmt.Errorf("loading countries: %w", err)
	}

	location, err := r.matcher.ExtractLocation(ctx, query, countries)
	if err != nil {
		// Location is a narrowing hint; search the whole pool without it.
		r.logger.Warn("location extraction failed, searching all countries", "error", err)
		location = ""
	}

	pool := candidates
	if location != "" {
		pool = filterByCountry(candidates, location)
	}

	ranked := r.scorePool(ctx, query, pool)

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Name < ranked[j].Name
	})

	r.logger.Info("search complete",
		"pool", len(candidates),
		"location", location,
		"considered", len(pool),
		"ranked", len(ranked),
	)

	return ranked, nil
}

// scorePool scores every candidate against the query with a bounded worker pool.
func (r *Ranker) scorePool(ctx context.Context, query string, pool []model.Candidate) []model.RankedCandidate {
	workers := r.maxConcurrency
	if workers > len(pool) {
		workers = len(pool)
	}

	jobs := make(chan model.Candidate)

	var mu sync.Mutex
	ranked := make([]model.RankedCandidate, 0, len(pool))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				result, err := r.matcher.MatchCandidate(ctx, query, Profile(c))
				if err != nil {
					r.logger.Warn("scoring candidate failed, skipping",
						"candidate", c.Name,
						"error", err,
					)
					continue
				}
				if result.Score < r.minScore {
					continue
				}
				mu.Lock()
				ranked = append(ranked, model.RankedCandidate{Candidate: c, MatchResult: result})
				mu.Unlock()
			}
		}()
	}

	for _, c := range pool {
		jobs <- c
	}
	close(jobs)
	wg.Wait()

	return ranked
}

// filterByCountry keeps candidates whose country matches the extracted
// location (case-insensitive substring, matching either way so "United
// States" also matches a "USA, United States" pool entry).
func filterByCountry(candidates []model.Candidate, location string) []model.Candidate {
	locationLower := strings.ToLower(location)

	var matched []model.Candidate
	for _, c := range candidates {
		countryLower := strings.ToLower(c.Country)
		if countryLower == "" {
			continue
		}
		if strings.Contains(countryLower, locationLower) || strings.Contains(locationLower, countryLower) {
			matched = append(matched, c)
		}
	}
	return matched
}

// Profile renders the candidate fields the match prompt sees.
func Profile(c model.Candidate) string {
	return fmt.Sprintf("Name: %s\nCountry: %s\nOpen To: %s\nResume: %s",
		c.Name, c.Country, c.OpenTo, c.Resume)
}
