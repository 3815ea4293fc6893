package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrylov/resume-analyzer/pkg/analysis"
	"github.com/mkrylov/resume-analyzer/pkg/jobs"
)

type fakeUseCase struct {
	result     analysis.Result
	err        error
	gotResume  analysis.Resume
	gotJob     analysis.JobDescription
	gotRoleLvl string
}

func (f *fakeUseCase) AnalyzeResume(ctx context.Context, r analysis.Resume, roleLevel string) (analysis.Result, error) {
	f.gotResume = r
	f.gotRoleLvl = roleLevel
	return f.result, f.err
}

func (f *fakeUseCase) AnalyzeJob(ctx context.Context, jd analysis.JobDescription) (analysis.Result, error) {
	f.gotJob = jd
	return f.result, f.err
}

func (f *fakeUseCase) AnalyzeBoth(ctx context.Context, r analysis.Resume, jd analysis.JobDescription) (analysis.Result, error) {
	f.gotResume = r
	f.gotJob = jd
	return f.result, f.err
}

type fakeTester struct{ ok bool }

func (f fakeTester) Test(ctx context.Context) bool { return f.ok }

type fakeProvider struct {
	categories []string
	err        error
}

func (f *fakeProvider) Search(ctx context.Context, keywords []string, location string) ([]jobs.Job, error) {
	return nil, f.err
}

func (f *fakeProvider) Categories(ctx context.Context) ([]string, error) {
	return f.categories, f.err
}

type fakeHistory struct {
	saved []analysis.HistoryRecord
	items []analysis.HistoryRecord
	err   error
}

func (f *fakeHistory) Save(ctx context.Context, rec analysis.HistoryRecord) error {
	f.saved = append(f.saved, rec)
	return f.err
}

func (f *fakeHistory) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]analysis.HistoryRecord, error) {
	return f.items, f.err
}

func okResult() analysis.Result {
	return analysis.Result{
		Type:                      analysis.TypeResumeOnly,
		Summary:                   "Strong resume.",
		Strengths:                 []string{"Clear structure"},
		Improvements:              []string{},
		ActionableRecommendations: []string{"Add metrics"},
	}
}

func newApp(h *AnalysisHandler, userID string) *fiber.App {
	app := fiber.New()
	if userID != "" {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("userId", userID)
			return c.Next()
		})
	}
	app.Post("/analysis/resume-only", h.AnalyzeResume)
	app.Post("/analysis/job-only", h.AnalyzeJob)
	app.Post("/analysis/both", h.AnalyzeBoth)
	app.Get("/analysis/test-ai", h.TestAI)
	app.Get("/analysis/test-jobs", h.TestJobs)
	app.Get("/analysis/history", h.History)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	return m
}

func TestAnalyzeResumeSuccess(t *testing.T) {
	uc := &fakeUseCase{result: okResult()}
	h := NewAnalysisHandler(uc, fakeTester{ok: true}, &fakeProvider{}, nil)
	app := newApp(h, "")

	resp := postJSON(t, app, "/analysis/resume-only", fiber.Map{
		"content":   "Experienced in JavaScript and React, led a team of 4",
		"roleLevel": "Senior",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "resume-only", body["type"])
	assert.Equal(t, "Strong resume.", body["summary"])
	assert.Equal(t, "Senior", uc.gotRoleLvl)
	assert.Equal(t, "resume.txt", uc.gotResume.FileName, "missing fileName gets a default")
}

func TestAnalyzeResumeTooShort(t *testing.T) {
	h := NewAnalysisHandler(&fakeUseCase{}, fakeTester{}, &fakeProvider{}, nil)
	app := newApp(h, "")

	resp := postJSON(t, app, "/analysis/resume-only", fiber.Map{"content": "short"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeBody(t, resp)["message"], "too short")
}

func TestAnalyzeResumeTooLong(t *testing.T) {
	h := NewAnalysisHandler(&fakeUseCase{}, fakeTester{}, &fakeProvider{}, nil)
	app := newApp(h, "")

	resp := postJSON(t, app, "/analysis/resume-only", fiber.Map{
		"content": strings.Repeat("x", maxResumeLen+1),
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeBody(t, resp)["message"], "too long")
}

func TestAnalyzeResumeEmptyContent(t *testing.T) {
	h := NewAnalysisHandler(&fakeUseCase{}, fakeTester{}, &fakeProvider{}, nil)
	app := newApp(h, "")

	resp := postJSON(t, app, "/analysis/resume-only", fiber.Map{})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeBody(t, resp)["message"], "required")
}

func TestAnalyzeResumeUseCaseError(t *testing.T) {
	uc := &fakeUseCase{err: errors.New("boom")}
	h := NewAnalysisHandler(uc, fakeTester{}, &fakeProvider{}, nil)
	app := newApp(h, "")

	resp := postJSON(t, app, "/analysis/resume-only", fiber.Map{
		"content": "a perfectly reasonable resume text",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, decodeBody(t, resp)["message"], "analysis failed")
}

func TestAnalyzeJobDefaultsTitleAndCompany(t *testing.T) {
	uc := &fakeUseCase{result: okResult()}
	h := NewAnalysisHandler(uc, fakeTester{}, &fakeProvider{}, nil)
	app := newApp(h, "")

	resp := postJSON(t, app, "/analysis/job-only", fiber.Map{
		"content": "Must have 3+ years experience with Go.",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Unknown Position", uc.gotJob.Title)
	assert.Equal(t, "Unknown Company", uc.gotJob.Company)
}

func TestAnalyzeJobContentLimit(t *testing.T) {
	h := NewAnalysisHandler(&fakeUseCase{}, fakeTester{}, &fakeProvider{}, nil)
	app := newApp(h, "")

	resp := postJSON(t, app, "/analysis/job-only", fiber.Map{
		"content": strings.Repeat("x", maxJobContentLen+1),
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyzeBothValidatesEachPart(t *testing.T) {
	h := NewAnalysisHandler(&fakeUseCase{result: okResult()}, fakeTester{}, &fakeProvider{}, nil)
	app := newApp(h, "")

	resp := postJSON(t, app, "/analysis/both", fiber.Map{
		"resume":         fiber.Map{"content": "Experienced in Go and Python development"},
		"jobDescription": fiber.Map{"content": "tiny"},
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeBody(t, resp)["message"], "job description")
}

func TestAnalyzeBothSuccess(t *testing.T) {
	uc := &fakeUseCase{result: okResult()}
	h := NewAnalysisHandler(uc, fakeTester{}, &fakeProvider{}, nil)
	app := newApp(h, "")

	resp := postJSON(t, app, "/analysis/both", fiber.Map{
		"resume":         fiber.Map{"content": "Experienced in Go and Python development"},
		"jobDescription": fiber.Map{"content": "Must have 3+ years experience with Go."},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Experienced in Go and Python development", uc.gotResume.Content)
	assert.Equal(t, "Must have 3+ years experience with Go.", uc.gotJob.Content)
}

func TestTestAI(t *testing.T) {
	h := NewAnalysisHandler(&fakeUseCase{}, fakeTester{ok: true}, &fakeProvider{}, nil)
	app := newApp(h, "")

	req := httptest.NewRequest(http.MethodGet, "/analysis/test-ai", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", decodeBody(t, resp)["status"])
}

func TestTestAIFailure(t *testing.T) {
	h := NewAnalysisHandler(&fakeUseCase{}, fakeTester{ok: false}, &fakeProvider{}, nil)
	app := newApp(h, "")

	req := httptest.NewRequest(http.MethodGet, "/analysis/test-ai", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "error", decodeBody(t, resp)["status"])
}

func TestTestJobsTruncatesCategories(t *testing.T) {
	var categories []string
	for i := 0; i < 15; i++ {
		categories = append(categories, "Category")
	}
	h := NewAnalysisHandler(&fakeUseCase{}, fakeTester{}, &fakeProvider{categories: categories}, nil)
	app := newApp(h, "")

	req := httptest.NewRequest(http.MethodGet, "/analysis/test-jobs", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Len(t, body["jobCategories"], 10)
}

func TestTestJobsFailure(t *testing.T) {
	h := NewAnalysisHandler(&fakeUseCase{}, fakeTester{}, &fakeProvider{err: errors.New("down")}, nil)
	app := newApp(h, "")

	req := httptest.NewRequest(http.MethodGet, "/analysis/test-jobs", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestHistoryRequiresIdentifiedUser(t *testing.T) {
	h := NewAnalysisHandler(&fakeUseCase{}, fakeTester{}, &fakeProvider{}, &fakeHistory{})
	app := newApp(h, "")

	req := httptest.NewRequest(http.MethodGet, "/analysis/history", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHistoryReturnsRecords(t *testing.T) {
	userID := uuid.New()
	hist := &fakeHistory{items: []analysis.HistoryRecord{
		{ID: uuid.New(), UserID: userID, Mode: analysis.TypeResumeOnly, Result: okResult()},
	}}
	h := NewAnalysisHandler(&fakeUseCase{}, fakeTester{}, &fakeProvider{}, hist)
	app := newApp(h, userID.String())

	req := httptest.NewRequest(http.MethodGet, "/analysis/history", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	var items []analysis.HistoryRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	assert.Equal(t, analysis.TypeResumeOnly, items[0].Mode)
}

func TestAuthenticatedAnalysisIsSaved(t *testing.T) {
	userID := uuid.New()
	hist := &fakeHistory{}
	h := NewAnalysisHandler(&fakeUseCase{result: okResult()}, fakeTester{}, &fakeProvider{}, hist)
	app := newApp(h, userID.String())

	resp := postJSON(t, app, "/analysis/resume-only", fiber.Map{
		"content": "Experienced in JavaScript and React, led a team of 4",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, hist.saved, 1)
	assert.Equal(t, userID, hist.saved[0].UserID)
	assert.Equal(t, analysis.TypeResumeOnly, hist.saved[0].Mode)
}

func TestAnonymousAnalysisIsNotSaved(t *testing.T) {
	hist := &fakeHistory{}
	h := NewAnalysisHandler(&fakeUseCase{result: okResult()}, fakeTester{}, &fakeProvider{}, hist)
	app := newApp(h, "")

	resp := postJSON(t, app, "/analysis/resume-only", fiber.Map{
		"content": "Experienced in JavaScript and React, led a team of 4",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, hist.saved)
}
