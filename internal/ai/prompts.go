package ai

import (
	_ "embed"
	"text/template"
)

//go:embed prompts/match.md
var matchPromptRaw string

//go:embed prompts/skills.md
var skillsPromptRaw string

//go:embed prompts/location.md
var locationPromptRaw string

//go:embed prompts/experience.md
var experiencePromptRaw string

//go:embed prompts/outreach.md
var outreachPromptRaw string

// Prompt templates, parsed once at package init and reused on every call.
var (
	matchTemplate      = template.Must(template.New("match").Parse(matchPromptRaw))
	skillsTemplate     = template.Must(template.New("skills").Parse(skillsPromptRaw))
	locationTemplate   = template.Must(template.New("location").Parse(locationPromptRaw))
	experienceTemplate = template.Must(template.New("experience").Parse(experiencePromptRaw))
	outreachTemplate   = template.Must(template.New("outreach").Parse(outreachPromptRaw))
)
