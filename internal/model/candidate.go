package model

// Candidate is a single profile in the talent pool.
type Candidate struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Country string `json:"country"`
	OpenTo  string `json:"open_to"` // work arrangements the candidate accepts, e.g. "Full-time, Remote"
	Email   string `json:"email"`
	Resume  string `json:"resume"` // plain-text resume body
}

// MatchResult is the LLM's assessment of a candidate against a recruiter query.
type MatchResult struct {
	Score       int    `json:"score"`  // 0-100 fit score
	Skills      string `json:"skills"` // comma-separated list
	Explanation string `json:"explanation"`
}

// RankedCandidate pairs a candidate with its match result for a search.
type RankedCandidate struct {
	Candidate
	MatchResult
}

// CandidateStore persists the talent pool.
type CandidateStore interface {
	Add(c Candidate) (int64, error)
	Get(id int64) (Candidate, error)
	List() ([]Candidate, error)
	Countries() ([]string, error)
	Count() (int, error)
}
