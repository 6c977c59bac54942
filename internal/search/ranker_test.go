package search

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hirewiz/hirewiz/internal/model"
)

// memStore is an in-memory CandidateStore for tests.
type memStore struct {
	candidates []model.Candidate
	listErr    error
}

func (s *memStore) Add(c model.Candidate) (int64, error) {
	s.candidates = append(s.candidates, c)
	return int64(len(s.candidates)), nil
}

func (s *memStore) Get(id int64) (model.Candidate, error) {
	if id < 1 || int(id) > len(s.candidates) {
		return model.Candidate{}, errors.New("not found")
	}
	return s.candidates[id-1], nil
}

func (s *memStore) List() ([]model.Candidate, error) {
	return s.candidates, s.listErr
}

func (s *memStore) Countries() ([]string, error) {
	seen := map[string]bool{}
	var countries []string
	for _, c := range s.candidates {
		if c.Country != "" && !seen[c.Country] {
			seen[c.Country] = true
			countries = append(countries, c.Country)
		}
	}
	return countries, nil
}

func (s *memStore) Count() (int, error) {
	return len(s.candidates), nil
}

// stubMatcher scores candidates by name and returns a fixed location.
type stubMatcher struct {
	scores   map[string]int // keyed by candidate name found in the profile
	location string
	matchErr map[string]error
}

func (m *stubMatcher) MatchCandidate(_ context.Context, _ string, profile string) (model.MatchResult, error) {
	for name, score := range m.scores {
		if strings.Contains(profile, name) {
			if err := m.matchErr[name]; err != nil {
				return model.MatchResult{}, err
			}
			return model.MatchResult{Score: score, Skills: "Go", Explanation: "stub"}, nil
		}
	}
	return model.MatchResult{}, nil
}

func (m *stubMatcher) ExtractLocation(_ context.Context, _ string, _ []string) (string, error) {
	return m.location, nil
}

func testPool() []model.Candidate {
	return []model.Candidate{
		{Name: "John Smith", Country: "United States", Resume: "Python"},
		{Name: "Maria Garcia", Country: "United Kingdom", Resume: "Java"},
		{Name: "Alex Chen", Country: "China", Resume: "Node.js"},
	}
}

func TestSearch_RanksByScoreDescending(t *testing.T) {
	store := &memStore{candidates: testPool()}
	matcher := &stubMatcher{scores: map[string]int{
		"John Smith":   40,
		"Maria Garcia": 90,
		"Alex Chen":    70,
	}}
	r := NewRanker(store, matcher, 2, 0, nil)

	ranked, err := r.Search(context.Background(), "senior engineer")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("len = %d, want 3", len(ranked))
	}

	wantOrder := []string{"Maria Garcia", "Alex Chen", "John Smith"}
	for i, want := range wantOrder {
		if ranked[i].Name != want {
			t.Errorf("ranked[%d] = %q, want %q", i, ranked[i].Name, want)
		}
	}
	if ranked[0].Score != 90 {
		t.Errorf("top score = %d, want 90", ranked[0].Score)
	}
}

func TestSearch_LocationNarrowsPool(t *testing.T) {
	store := &memStore{candidates: testPool()}
	matcher := &stubMatcher{
		location: "United Kingdom",
		scores: map[string]int{
			"John Smith":   80,
			"Maria Garcia": 60,
			"Alex Chen":    95,
		},
	}
	r := NewRanker(store, matcher, 4, 0, nil)

	ranked, err := r.Search(context.Background(), "engineers in the UK")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(ranked) != 1 {
		t.Fatalf("len = %d, want 1 (UK only)", len(ranked))
	}
	if ranked[0].Name != "Maria Garcia" {
		t.Errorf("ranked[0] = %q, want Maria Garcia", ranked[0].Name)
	}
}

func TestSearch_ScoringFailureSkipsCandidate(t *testing.T) {
	store := &memStore{candidates: testPool()}
	matcher := &stubMatcher{
		scores: map[string]int{
			"John Smith":   40,
			"Maria Garcia": 90,
			"Alex Chen":    70,
		},
		matchErr: map[string]error{"Maria Garcia": errors.New("llm timeout")},
	}
	r := NewRanker(store, matcher, 1, 0, nil)

	ranked, err := r.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("len = %d, want 2 (failed candidate skipped)", len(ranked))
	}
	for _, rc := range ranked {
		if rc.Name == "Maria Garcia" {
			t.Error("failed candidate should have been skipped")
		}
	}
}

func TestSearch_MinScoreCutoff(t *testing.T) {
	store := &memStore{candidates: testPool()}
	matcher := &stubMatcher{scores: map[string]int{
		"John Smith":   40,
		"Maria Garcia": 90,
		"Alex Chen":    70,
	}}
	r := NewRanker(store, matcher, 2, 60, nil)

	ranked, err := r.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("len = %d, want 2 (score 40 dropped)", len(ranked))
	}
}

func TestSearch_EmptyStore(t *testing.T) {
	r := NewRanker(&memStore{}, &stubMatcher{}, 2, 0, nil)

	ranked, err := r.Search(context.Background(), "anyone")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if ranked == nil {
		t.Fatal("expected non-nil empty slice")
	}
	if len(ranked) != 0 {
		t.Errorf("len = %d, want 0", len(ranked))
	}
}

func TestProfileContainsCandidateFields(t *testing.T) {
	p := Profile(model.Candidate{
		Name:    "Jane Doe",
		Country: "France",
		OpenTo:  "Contract",
		Resume:  "Rust systems work",
	})
	for _, want := range []string{"Jane Doe", "France", "Contract", "Rust systems work"} {
		if !strings.Contains(p, want) {
			t.Errorf("profile missing %q", want)
		}
	}
}
