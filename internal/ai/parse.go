package ai

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/hirewiz/hirewiz/internal/model"
)

// cleanJSON strips markdown code fences some backends wrap around JSON output.
// OpenAI structured outputs never needs this; Gemini occasionally does.
func cleanJSON(raw string) string {
	clean := strings.TrimSpace(raw)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimLeft(clean, "\r\n")
	clean = strings.TrimSuffix(clean, "```")

	return strings.TrimSpace(clean)
}

// rawMatch is the JSON shape returned by the LLM (matches matchSchema).
// Score is `any` because models occasionally return it as a string or a range.
type rawMatch struct {
	Score       any    `json:"score"`
	Skills      string `json:"skills"`
	Explanation string `json:"explanation"`
}

// parseMatch deserializes the LLM response into a MatchResult.
func parseMatch(raw string) (model.MatchResult, error) {
	var rm rawMatch
	if err := json.Unmarshal([]byte(cleanJSON(raw)), &rm); err != nil {
		return model.MatchResult{}, fmt.Errorf("unmarshal match JSON: %w", err)
	}

	return model.MatchResult{
		Score:       clampScore(scoreValue(rm.Score)),
		Skills:      strings.TrimSpace(rm.Skills),
		Explanation: strings.TrimSpace(rm.Explanation),
	}, nil
}

// scoreValue coerces the score field to an int. Ranges like "80-85" resolve
// to their midpoint; anything unparseable resolves to 0.
func scoreValue(v any) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		s := strings.TrimSpace(val)
		if lo, hi, ok := strings.Cut(s, "-"); ok {
			a, errA := strconv.Atoi(strings.TrimSpace(lo))
			b, errB := strconv.Atoi(strings.TrimSpace(hi))
			if errA == nil && errB == nil {
				return (a + b) / 2
			}
			return 0
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// parseYears extracts an integer year count from a model response.
// Returns 0 when no leading number can be found.
func parseYears(raw string) int {
	s := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(s); err == nil {
		return maxInt(n, 0)
	}

	// Fall back to the first digit run, e.g. "about 7 years".
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start == -1 {
				start = i
			}
			continue
		}
		if start != -1 {
			n, _ := strconv.Atoi(s[start:i])
			return n
		}
	}
	if start != -1 {
		n, _ := strconv.Atoi(s[start:])
		return n
	}
	return 0
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
