package server

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hirewiz/hirewiz/internal/model"
	"github.com/hirewiz/hirewiz/internal/resume"
)

type matchRequest struct {
	Query            string `json:"query" binding:"required"`
	CandidateProfile string `json:"candidate_profile"`
}

type skillsResponse struct {
	Skills string `json:"skills"`
}

type locationResponse struct {
	Location *string `json:"location"`
}

type experienceResponse struct {
	Experience int `json:"experience"`
}

type searchRequest struct {
	Query string `json:"query" binding:"required"`
}

type outreachRequest struct {
	CandidateEmail  string `json:"candidateEmail" binding:"required"`
	Subject         string `json:"subject"`
	Message         string `json:"message" binding:"required"`
	CandidateName   string `json:"candidateName" binding:"required"`
	CandidateResume string `json:"candidateResume" binding:"required"`
}

type outreachResponse struct {
	GeneratedMessage string `json:"generatedMessage"`
}

type createCandidateRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Country string `json:"country"`
	OpenTo  string `json:"open_to"`
	Email   string `json:"email" binding:"required"`
	Resume  string `json:"resume"`
}

type resumeUploadResponse struct {
	Text       string `json:"text"`
	Skills     string `json:"skills"`
	Experience int    `json:"experience"`
}

// aiContext bounds a single LLM-backed handler call.
func (s *Server) aiContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), s.timeout)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleMatch scores a candidate profile against a recruiter query.
func (s *Server) handleMatch(c *gin.Context) {
	var req matchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	ctx, cancel := s.aiContext(c)
	defer cancel()

	result, err := s.copilot.MatchCandidate(ctx, req.Query, req.CandidateProfile)
	if err != nil {
		s.upstreamError(c, "match", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleSkills extracts a skill list from resume text.
func (s *Server) handleSkills(c *gin.Context) {
	resumeText := c.Query("resume")
	if resumeText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resume query parameter is required"})
		return
	}

	ctx, cancel := s.aiContext(c)
	defer cancel()

	skills, err := s.copilot.ExtractSkills(ctx, resumeText)
	if err != nil {
		s.upstreamError(c, "skills extraction", err)
		return
	}
	c.JSON(http.StatusOK, skillsResponse{Skills: skills})
}

// handleLocation extracts a location filter from a recruiter query,
// constrained to countries present in the pool.
func (s *Server) handleLocation(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter is required"})
		return
	}

	countries, err := s.store.Countries()
	if err != nil {
		s.log(c).Error("loading countries failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := s.aiContext(c)
	defer cancel()

	location, err := s.copilot.ExtractLocation(ctx, query, countries)
	if err != nil {
		s.upstreamError(c, "location extraction", err)
		return
	}

	resp := locationResponse{}
	if location != "" {
		resp.Location = &location
	}
	c.JSON(http.StatusOK, resp)
}

// handleExperience estimates years of experience from resume text.
func (s *Server) handleExperience(c *gin.Context) {
	resumeText := c.Query("resume")
	if resumeText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resume query parameter is required"})
		return
	}

	ctx, cancel := s.aiContext(c)
	defer cancel()

	years, err := s.copilot.EstimateExperience(ctx, resumeText)
	if err != nil {
		s.upstreamError(c, "experience estimation", err)
		return
	}
	c.JSON(http.StatusOK, experienceResponse{Experience: years})
}

// handleListCandidates returns the whole pool with skills extracted from each
// resume. Scores are zero; only search assigns them.
func (s *Server) handleListCandidates(c *gin.Context) {
	candidates, err := s.store.List()
	if err != nil {
		s.log(c).Error("listing candidates failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := s.aiContext(c)
	defer cancel()

	out := make([]model.RankedCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		skills, err := s.copilot.ExtractSkills(ctx, candidate.Resume)
		if err != nil {
			// Skills are best-effort here; the candidate row is still useful.
			s.log(c).Warn("skills extraction failed", "candidate", candidate.Name, "error", err)
			skills = ""
		}
		out = append(out, model.RankedCandidate{
			Candidate:   candidate,
			MatchResult: model.MatchResult{Skills: skills},
		})
	}
	c.JSON(http.StatusOK, out)
}

// handleCreateCandidate adds a candidate to the pool.
func (s *Server) handleCreateCandidate(c *gin.Context) {
	var req createCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	candidate := model.Candidate{
		Name:    req.Name,
		Phone:   req.Phone,
		Country: req.Country,
		OpenTo:  req.OpenTo,
		Email:   req.Email,
		Resume:  req.Resume,
	}

	id, err := s.store.Add(candidate)
	if err != nil {
		s.log(c).Error("adding candidate failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	candidate.ID = id

	c.JSON(http.StatusCreated, candidate)
}

// handleResumeUpload extracts text, skills and experience from an uploaded
// resume file so a client can prefill a candidate form.
func (s *Server) handleResumeUpload(c *gin.Context) {
	file, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resume file is required: " + err.Error()})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "open upload: " + err.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "read upload: " + err.Error()})
		return
	}

	text, err := resume.ExtractText(file.Filename, data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resume contains no extractable text"})
		return
	}

	ctx, cancel := s.aiContext(c)
	defer cancel()

	// Enrichment is best-effort; the extracted text alone is still useful.
	skills, err := s.copilot.ExtractSkills(ctx, text)
	if err != nil {
		s.log(c).Warn("skills extraction failed for upload", "file", file.Filename, "error", err)
		skills = ""
	}
	years, err := s.copilot.EstimateExperience(ctx, text)
	if err != nil {
		s.log(c).Warn("experience estimation failed for upload", "file", file.Filename, "error", err)
		years = 0
	}

	c.JSON(http.StatusOK, resumeUploadResponse{
		Text:       text,
		Skills:     skills,
		Experience: years,
	})
}

// handleSearch runs the ranked candidate search pipeline.
func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	s.log(c).Info("search query received", "query", req.Query)

	// No per-call timeout: a search fans out many scoring calls, each bounded
	// by the provider's own HTTP timeout.
	ranked, err := s.ranker.Search(c.Request.Context(), req.Query)
	if err != nil {
		s.upstreamError(c, "search", err)
		return
	}
	c.JSON(http.StatusOK, ranked)
}

// handleOutreach drafts a personalized outreach email for a candidate.
func (s *Server) handleOutreach(c *gin.Context) {
	var req outreachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	s.log(c).Info("drafting outreach", "candidate", req.CandidateName)

	ctx, cancel := s.aiContext(c)
	defer cancel()

	draft, err := s.copilot.DraftOutreach(ctx, req.CandidateName, req.CandidateResume, req.Message)
	if err != nil {
		s.upstreamError(c, "outreach drafting", err)
		return
	}
	c.JSON(http.StatusOK, outreachResponse{GeneratedMessage: draft})
}

// upstreamError reports an AI backend failure.
func (s *Server) upstreamError(c *gin.Context, action string, err error) {
	s.log(c).Error(action+" failed", "error", err)
	c.JSON(http.StatusBadGateway, gin.H{"error": action + " failed: " + err.Error()})
}
