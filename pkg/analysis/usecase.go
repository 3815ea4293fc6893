package analysis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mkrylov/resume-analyzer/pkg/jobs"
	"github.com/mkrylov/resume-analyzer/pkg/llm"
)

// UseCase covers the three analysis modes.
type UseCase interface {
	AnalyzeResume(ctx context.Context, r Resume, roleLevel string) (Result, error)
	AnalyzeJob(ctx context.Context, jd JobDescription) (Result, error)
	AnalyzeBoth(ctx context.Context, r Resume, jd JobDescription) (Result, error)
}

type service struct {
	llm             llm.ChatModel
	jobs            jobs.Provider
	defaultLocation string
	callTimeout     time.Duration
	maxPromptChars  int
}

// NewService wires the orchestrator with its collaborators.
func NewService(model llm.ChatModel, provider jobs.Provider) UseCase {
	return &service{
		llm:             model,
		jobs:            provider,
		defaultLocation: "United States",
		callTimeout:     30 * time.Second,
		maxPromptChars:  12_000,
	}
}

// AnalyzeResume extracts skills, asks the model for narrative feedback and
// enriches the result with scored job recommendations. Collaborator
// failures are substituted here: a failed model call falls back to the
// canned payload, a failed job search to the mock set.
func (s *service) AnalyzeResume(ctx context.Context, r Resume, roleLevel string) (Result, error) {
	content := strings.TrimSpace(r.Content)
	if content == "" {
		return Result{}, errors.New("empty resume content")
	}
	content = s.truncate(content)

	skills := ExtractSkills(content)

	payload, err := s.ask(ctx, resumeSystemPrompt, resumePrompt(content, skills))
	if err != nil {
		payload = defaultPayload()
	}

	resumeSkills := payload.ExtractedSkills
	if len(resumeSkills) == 0 {
		resumeSkills = skills
	}

	keywords := searchKeywords(payload.JobSearchKeyword, roleLevel, skills)
	postings, err := s.jobs.Search(ctx, keywords, s.defaultLocation)
	if err != nil {
		postings = jobs.Mock(keywords)
	}

	return normalized(Result{
		Type:                      TypeResumeOnly,
		Summary:                   payload.Summary,
		Strengths:                 payload.Strengths,
		Improvements:              payload.Improvements,
		SkillAssessments:          payload.SkillAssessments,
		JobRecommendations:        BuildRecommendations(postings, resumeSkills),
		ActionableRecommendations: payload.ActionableRecommendations,
	}), nil
}

// AnalyzeJob extracts requirement sentences and asks the model for resume
// optimization advice. No job search is performed in this mode.
func (s *service) AnalyzeJob(ctx context.Context, jd JobDescription) (Result, error) {
	content := strings.TrimSpace(jd.Content)
	if content == "" {
		return Result{}, errors.New("empty job description content")
	}
	content = s.truncate(content)

	requirements := ExtractRequirements(content)

	payload, err := s.ask(ctx, jobSystemPrompt, jobPrompt(content, requirements))
	if err != nil {
		payload = defaultPayload()
	}

	return normalized(Result{
		Type:                      TypeJobOnly,
		Summary:                   payload.Summary,
		Strengths:                 payload.Strengths,
		Improvements:              payload.Improvements,
		ActionableRecommendations: payload.ActionableRecommendations,
	}), nil
}

// AnalyzeBoth compares resume and job description. The match score is
// always computed locally with the overlap policy; the model supplies
// narrative fields and skill assessments only.
func (s *service) AnalyzeBoth(ctx context.Context, r Resume, jd JobDescription) (Result, error) {
	resumeContent := strings.TrimSpace(r.Content)
	jobContent := strings.TrimSpace(jd.Content)
	if resumeContent == "" || jobContent == "" {
		return Result{}, errors.New("both resume and job description content are required")
	}
	resumeContent = s.truncate(resumeContent)
	jobContent = s.truncate(jobContent)

	resumeSkills := ExtractSkills(resumeContent)
	jobRequirements := ExtractRequirements(jobContent)

	payload, err := s.ask(ctx, bothSystemPrompt, bothPrompt(resumeContent, jobContent, resumeSkills, jobRequirements))
	if err != nil {
		payload = defaultPayload()
	}

	score := MatchScore(resumeSkills, jobRequirements)

	return normalized(Result{
		Type:                      TypeBoth,
		Summary:                   payload.Summary,
		Strengths:                 payload.Strengths,
		Improvements:              payload.Improvements,
		MatchScore:                &score,
		SkillAssessments:          payload.SkillAssessments,
		ActionableRecommendations: payload.ActionableRecommendations,
	}), nil
}

// ask performs one model call under the fixed per-call timeout.
// No retries: any transport or parse error bubbles up so the caller can
// substitute the default payload.
func (s *service) ask(ctx context.Context, system, user string) (aiPayload, error) {
	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()
	raw, err := s.llm.Ask(ctx, system, user)
	if err != nil {
		return aiPayload{}, err
	}
	return parsePayload(raw)
}

func (s *service) truncate(text string) string {
	if len(text) > s.maxPromptChars {
		return text[:s.maxPromptChars]
	}
	return text
}

// searchKeywords picks the job-search query: the model-suggested keyword
// when present (prefixed with the role level unless "Any Level"),
// otherwise the extracted skills.
func searchKeywords(aiKeyword, roleLevel string, skills []string) []string {
	keyword := strings.TrimSpace(aiKeyword)
	if keyword == "" {
		if len(skills) > 0 {
			return skills
		}
		keyword = "general"
	}
	if roleLevel != "" && roleLevel != "Any Level" {
		keyword = roleLevel + " " + keyword
	}
	return []string{keyword}
}

// normalized replaces nil slices so responses always carry [] not null.
func normalized(res Result) Result {
	if res.Strengths == nil {
		res.Strengths = []string{}
	}
	if res.Improvements == nil {
		res.Improvements = []string{}
	}
	if res.ActionableRecommendations == nil {
		res.ActionableRecommendations = []string{}
	}
	return res
}
