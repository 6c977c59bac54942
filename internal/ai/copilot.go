package ai

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"text/template"

	"github.com/hirewiz/hirewiz/internal/model"
)

// System prompts, one per task.
const (
	matchSystem      = "You are PeopleGPT, an advanced AI hiring copilot for recruiters."
	skillsSystem     = "You are a precise skills extraction system."
	locationSystem   = "You are a location extraction system."
	experienceSystem = "You are an experience estimation system."
	outreachSystem   = "You are a professional recruiter writing personalized outreach emails. " +
		"Your goal is to write engaging, personalized emails that show you've reviewed the " +
		"candidate's background and are genuinely interested in their profile."
)

// matchSchema is the JSON Schema enforced server-side via OpenAI structured outputs.
// The schema matches rawMatch exactly so the response can be parsed directly.
var matchSchema = map[string]any{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]any{
		"score":       map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
		"skills":      map[string]any{"type": "string"},
		"explanation": map[string]any{"type": "string"},
	},
	"required": []string{"score", "skills", "explanation"},
}

// Models selects which model serves each copilot task.
type Models struct {
	Match   string
	Extract string
	Draft   string
}

// Copilot implements the hiring assistant tasks on top of an LLMProvider.
type Copilot struct {
	provider LLMProvider
	models   Models
	logger   *slog.Logger
}

// NewCopilot creates a copilot backed by the given provider.
func NewCopilot(provider LLMProvider, models Models, logger *slog.Logger) *Copilot {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Copilot{
		provider: provider,
		models:   models,
		logger:   logger,
	}
}

// MatchCandidate scores how well a candidate profile fits a recruiter query.
// The score is clamped to 0..100.
func (c *Copilot) MatchCandidate(ctx context.Context, query, profile string) (model.MatchResult, error) {
	prompt, err := render(matchTemplate, struct{ Query, Profile string }{query, profile})
	if err != nil {
		return model.MatchResult{}, err
	}

	raw, err := c.provider.Complete(ctx, Request{
		Model:       c.models.Match,
		System:      matchSystem,
		Prompt:      prompt,
		Temperature: 0.3,
		Schema:      matchSchema,
		SchemaName:  "candidate_match",
	})
	if err != nil {
		return model.MatchResult{}, fmt.Errorf("match complete: %w", err)
	}

	result, err := parseMatch(raw)
	if err != nil {
		// The model broke format; degrade to the zero score rather than failing
		// the whole request (mirrors the lenient extraction on the client side).
		c.logger.Warn("unparseable match response", "error", err)
		return model.MatchResult{Explanation: "Unable to extract information"}, nil
	}
	return result, nil
}

// ExtractSkills returns a comma-separated skill list pulled from resume text.
func (c *Copilot) ExtractSkills(ctx context.Context, resume string) (string, error) {
	prompt, err := render(skillsTemplate, struct{ Resume string }{resume})
	if err != nil {
		return "", err
	}

	raw, err := c.provider.Complete(ctx, Request{
		Model:       c.models.Extract,
		System:      skillsSystem,
		Prompt:      prompt,
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("skills complete: %w", err)
	}
	return strings.TrimSpace(raw), nil
}

// ExtractLocation pulls a location out of a recruiter query, constrained to the
// provided country list. Returns "" when the query names no known location.
func (c *Copilot) ExtractLocation(ctx context.Context, query string, countries []string) (string, error) {
	if len(countries) == 0 {
		return "", nil
	}

	prompt, err := render(locationTemplate, struct {
		Query     string
		Countries string
	}{query, strings.Join(countries, ", ")})
	if err != nil {
		return "", err
	}

	raw, err := c.provider.Complete(ctx, Request{
		Model:       c.models.Extract,
		System:      locationSystem,
		Prompt:      prompt,
		Temperature: 0.1,
	})
	if err != nil {
		return "", fmt.Errorf("location complete: %w", err)
	}

	answer := strings.ToLower(strings.TrimSpace(raw))
	switch answer {
	case "null", "none", "no location specified", "":
		return "", nil
	}

	// Only accept a location we actually have candidates for.
	for _, country := range countries {
		if strings.Contains(answer, strings.ToLower(country)) {
			return country, nil
		}
	}
	return "", nil
}

// EstimateExperience estimates total years of professional experience from
// resume text. An unparseable answer counts as 0 years.
func (c *Copilot) EstimateExperience(ctx context.Context, resume string) (int, error) {
	prompt, err := render(experienceTemplate, struct{ Resume string }{resume})
	if err != nil {
		return 0, err
	}

	raw, err := c.provider.Complete(ctx, Request{
		Model:       c.models.Extract,
		System:      experienceSystem,
		Prompt:      prompt,
		Temperature: 0.1,
	})
	if err != nil {
		return 0, fmt.Errorf("experience complete: %w", err)
	}
	return parseYears(raw), nil
}

// DraftOutreach writes a personalized outreach email for a candidate.
// Skills and experience extraction failures downgrade to placeholders so a
// flaky extraction never blocks the draft.
func (c *Copilot) DraftOutreach(ctx context.Context, name, resume, message string) (string, error) {
	skills, err := c.ExtractSkills(ctx, resume)
	if err != nil {
		c.logger.Warn("skills extraction failed during outreach", "candidate", name, "error", err)
		skills = "Skills extraction failed"
	}

	experience := "Experience extraction failed"
	if years, err := c.EstimateExperience(ctx, resume); err == nil {
		experience = strconv.Itoa(years)
	} else {
		c.logger.Warn("experience estimation failed during outreach", "candidate", name, "error", err)
	}

	prompt, err := render(outreachTemplate, struct {
		Name, Skills, Experience, Resume, Message string
	}{name, skills, experience, resume, message})
	if err != nil {
		return "", err
	}

	raw, err := c.provider.Complete(ctx, Request{
		Model:       c.models.Draft,
		System:      outreachSystem,
		Prompt:      prompt,
		Temperature: 0.7,
		MaxTokens:   800,
	})
	if err != nil {
		return "", fmt.Errorf("outreach complete: %w", err)
	}
	return strings.TrimSpace(raw), nil
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}
