package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrylov/resume-analyzer/pkg/jobs"
)

// fakeModel replays a canned reply or error.
type fakeModel struct {
	reply string
	err   error
	asked []string
}

func (m *fakeModel) Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	m.asked = append(m.asked, userPrompt)
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

// fakeProvider replays canned postings or an error.
type fakeProvider struct {
	postings []jobs.Job
	err      error
	keywords []string
}

func (p *fakeProvider) Search(ctx context.Context, keywords []string, location string) ([]jobs.Job, error) {
	p.keywords = keywords
	if p.err != nil {
		return nil, p.err
	}
	return p.postings, nil
}

func (p *fakeProvider) Categories(ctx context.Context) ([]string, error) {
	return nil, p.err
}

const resumeReply = `{
  "summary": "Seasoned frontend developer.",
  "strengths": ["Modern stack"],
  "improvements": ["Add metrics"],
  "extractedSkills": ["JavaScript", "React"],
  "jobSearchKeyword": "Frontend Developer",
  "actionableRecommendations": ["Add portfolio links"]
}`

func TestAnalyzeResumeAssemblesResult(t *testing.T) {
	model := &fakeModel{reply: resumeReply}
	provider := &fakeProvider{postings: []jobs.Job{
		{Title: "React Developer", Company: "Tech Corp", Description: "React role"},
	}}
	svc := NewService(model, provider)

	res, err := svc.AnalyzeResume(context.Background(), Resume{Content: "Experienced in JavaScript and React"}, "")
	require.NoError(t, err)

	assert.Equal(t, TypeResumeOnly, res.Type)
	assert.Equal(t, "Seasoned frontend developer.", res.Summary)
	assert.Equal(t, []string{"Modern stack"}, res.Strengths)
	require.Len(t, res.JobRecommendations, 1)
	assert.Equal(t, "React Developer", res.JobRecommendations[0].Title)
	assert.Nil(t, res.MatchScore)
	// model-suggested keyword drives the search
	assert.Equal(t, []string{"Frontend Developer"}, provider.keywords)
}

func TestAnalyzeResumeRoleLevelPrefixesKeyword(t *testing.T) {
	model := &fakeModel{reply: resumeReply}
	provider := &fakeProvider{}
	svc := NewService(model, provider)

	_, err := svc.AnalyzeResume(context.Background(), Resume{Content: "JavaScript developer resume"}, "Senior")
	require.NoError(t, err)
	assert.Equal(t, []string{"Senior Frontend Developer"}, provider.keywords)

	_, err = svc.AnalyzeResume(context.Background(), Resume{Content: "JavaScript developer resume"}, "Any Level")
	require.NoError(t, err)
	assert.Equal(t, []string{"Frontend Developer"}, provider.keywords)
}

func TestAnalyzeResumeModelFailureFallsBackToDefault(t *testing.T) {
	model := &fakeModel{err: errors.New("timeout")}
	provider := &fakeProvider{}
	svc := NewService(model, provider)

	res, err := svc.AnalyzeResume(context.Background(), Resume{Content: "Experienced in JavaScript and React"}, "")
	require.NoError(t, err)

	assert.Contains(t, res.Summary, "good technical skills")
	assert.NotEmpty(t, res.ActionableRecommendations)
}

func TestAnalyzeResumeUnparseableReplyFallsBackToDefault(t *testing.T) {
	model := &fakeModel{reply: "I could not produce JSON, sorry."}
	provider := &fakeProvider{}
	svc := NewService(model, provider)

	res, err := svc.AnalyzeResume(context.Background(), Resume{Content: "Experienced in JavaScript and React"}, "")
	require.NoError(t, err)

	assert.Contains(t, res.Summary, "good technical skills")
}

func TestAnalyzeResumeJobSearchFailureSubstitutesMocks(t *testing.T) {
	model := &fakeModel{reply: resumeReply}
	provider := &fakeProvider{err: errors.New("connection refused")}
	svc := NewService(model, provider)

	res, err := svc.AnalyzeResume(context.Background(), Resume{Content: "Experienced in JavaScript and React"}, "")
	require.NoError(t, err)

	require.Len(t, res.JobRecommendations, 1)
	assert.Equal(t, "Software Developer", res.JobRecommendations[0].Title)
	assert.Equal(t, "Tech Corp", res.JobRecommendations[0].Company)
}

func TestAnalyzeResumeZeroResultsYieldsNoRecommendations(t *testing.T) {
	model := &fakeModel{reply: resumeReply}
	provider := &fakeProvider{postings: []jobs.Job{}}
	svc := NewService(model, provider)

	res, err := svc.AnalyzeResume(context.Background(), Resume{Content: "Experienced in JavaScript and React"}, "")
	require.NoError(t, err)

	assert.Empty(t, res.JobRecommendations)
}

func TestAnalyzeResumeEmptyContent(t *testing.T) {
	svc := NewService(&fakeModel{}, &fakeProvider{})

	_, err := svc.AnalyzeResume(context.Background(), Resume{Content: "   "}, "")
	assert.Error(t, err)
}

func TestAnalyzeJobNoJobSearch(t *testing.T) {
	model := &fakeModel{reply: `{
		"summary": "Backend-heavy role.",
		"strengths": ["Emphasize Go services"],
		"improvements": ["Add cloud experience"],
		"actionableRecommendations": ["Mention Kubernetes"]
	}`}
	provider := &fakeProvider{err: errors.New("must not be called")}
	svc := NewService(model, provider)

	res, err := svc.AnalyzeJob(context.Background(), JobDescription{
		Content: "Must have 3+ years experience with Go. Knowledge of SQL preferred.",
	})
	require.NoError(t, err)

	assert.Equal(t, TypeJobOnly, res.Type)
	assert.Equal(t, "Backend-heavy role.", res.Summary)
	assert.Empty(t, res.JobRecommendations)
	assert.Nil(t, res.MatchScore)
	assert.Nil(t, provider.keywords, "job-only mode must not hit the job board")
}

func TestAnalyzeBothComputesLocalScore(t *testing.T) {
	model := &fakeModel{reply: `{
		"summary": "Strong match.",
		"strengths": ["Python"],
		"improvements": [],
		"skillAssessments": [{"skill": "Python", "level": "Advanced", "score": 90, "feedback": "Solid"}],
		"actionableRecommendations": ["Apply now"]
	}`}
	svc := NewService(model, &fakeProvider{})

	res, err := svc.AnalyzeBoth(context.Background(),
		Resume{Content: "Python developer with strong delivery record"},
		JobDescription{Content: "Must have 3+ years Python experience."},
	)
	require.NoError(t, err)

	assert.Equal(t, TypeBoth, res.Type)
	require.NotNil(t, res.MatchScore)
	assert.Equal(t, 100, *res.MatchScore)
	require.Len(t, res.SkillAssessments, 1)
	assert.Equal(t, "Python", res.SkillAssessments[0].Skill)
}

func TestAnalyzeBothModelFailureStillScores(t *testing.T) {
	model := &fakeModel{err: errors.New("rate limited")}
	svc := NewService(model, &fakeProvider{})

	res, err := svc.AnalyzeBoth(context.Background(),
		Resume{Content: "Python developer with strong delivery record"},
		JobDescription{Content: "Must have 3+ years Python experience."},
	)
	require.NoError(t, err)

	assert.Contains(t, res.Summary, "good technical skills")
	require.NotNil(t, res.MatchScore)
	assert.Equal(t, 100, *res.MatchScore)
}

func TestResultSlicesNeverNil(t *testing.T) {
	model := &fakeModel{reply: `{"summary": "Short."}`}
	svc := NewService(model, &fakeProvider{})

	res, err := svc.AnalyzeJob(context.Background(), JobDescription{Content: "Requires strong skills in Go programming."})
	require.NoError(t, err)

	assert.NotNil(t, res.Strengths)
	assert.NotNil(t, res.Improvements)
	assert.NotNil(t, res.ActionableRecommendations)
}

func TestParsePayloadStripsMarkdownFences(t *testing.T) {
	p, err := parsePayload("```json\n{\"summary\": \"fenced\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "fenced", p.Summary)
}

func TestParsePayloadExtractsEmbeddedObject(t *testing.T) {
	p, err := parsePayload("Here is your analysis:\n{\"summary\": \"embedded\"}\nHope it helps!")
	require.NoError(t, err)
	assert.Equal(t, "embedded", p.Summary)
}

func TestParsePayloadNoJSON(t *testing.T) {
	_, err := parsePayload("no object here")
	assert.Error(t, err)
}
