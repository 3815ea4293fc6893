package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mkrylov/resume-analyzer/api/http/presenter"
	"github.com/mkrylov/resume-analyzer/pkg/analysis"
	"github.com/mkrylov/resume-analyzer/pkg/jobs"
)

// Input size limits, enforced before any processing.
const (
	minContentLen    = 10
	maxResumeLen     = 50_000
	maxJobContentLen = 20_000
)

// ConnTester is the connectivity probe exposed by the model client.
type ConnTester interface {
	Test(ctx context.Context) bool
}

type AnalysisHandler struct {
	uc      analysis.UseCase
	ai      ConnTester
	jobs    jobs.Provider
	history analysis.HistoryRepository
}

func NewAnalysisHandler(uc analysis.UseCase, ai ConnTester, provider jobs.Provider, history analysis.HistoryRepository) *AnalysisHandler {
	return &AnalysisHandler{uc: uc, ai: ai, jobs: provider, history: history}
}

type resumeOnlyRequest struct {
	Content   string `json:"content"`
	FileName  string `json:"fileName"`
	RoleLevel string `json:"roleLevel"`
}

type jobOnlyRequest struct {
	Content string `json:"content"`
	Title   string `json:"title"`
	Company string `json:"company"`
}

type bothRequest struct {
	Resume         resumeOnlyRequest `json:"resume"`
	JobDescription jobOnlyRequest    `json:"jobDescription"`
}

// AnalyzeResume runs resume-only analysis with job recommendations.
// @Summary Analyze a resume
// @Tags    analysis
// @Accept  json
// @Produce json
// @Param   input body resumeOnlyRequest true "resume content"
// @Success 200 {object} analysis.Result
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /analysis/resume-only [post]
func (h *AnalysisHandler) AnalyzeResume(c *fiber.Ctx) error {
	var req resumeOnlyRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if msg := validateContent(req.Content, maxResumeLen, "resume content"); msg != "" {
		return presenter.Error(c, http.StatusBadRequest, msg)
	}
	fileName := req.FileName
	if fileName == "" {
		fileName = "resume.txt"
	}
	r := analysis.Resume{
		Content:    req.Content,
		FileName:   fileName,
		UploadDate: time.Now().UTC(),
	}
	result, err := h.uc.AnalyzeResume(c.Context(), r, req.RoleLevel)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, fmt.Sprintf("analysis failed: %v", err))
	}
	h.saveHistory(c, result)
	return presenter.JSON(c, http.StatusOK, result)
}

// AnalyzeJob runs job-only analysis.
// @Summary Analyze a job description
// @Tags    analysis
// @Accept  json
// @Produce json
// @Param   input body jobOnlyRequest true "job description content"
// @Success 200 {object} analysis.Result
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /analysis/job-only [post]
func (h *AnalysisHandler) AnalyzeJob(c *fiber.Ctx) error {
	var req jobOnlyRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if msg := validateContent(req.Content, maxJobContentLen, "job description"); msg != "" {
		return presenter.Error(c, http.StatusBadRequest, msg)
	}
	jd := analysis.JobDescription{
		Content: req.Content,
		Title:   defaultStr(req.Title, "Unknown Position"),
		Company: defaultStr(req.Company, "Unknown Company"),
	}
	result, err := h.uc.AnalyzeJob(c.Context(), jd)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, fmt.Sprintf("analysis failed: %v", err))
	}
	h.saveHistory(c, result)
	return presenter.JSON(c, http.StatusOK, result)
}

// AnalyzeBoth compares a resume against a job description.
// @Summary Compare resume and job description
// @Tags    analysis
// @Accept  json
// @Produce json
// @Param   input body bothRequest true "resume + job description"
// @Success 200 {object} analysis.Result
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /analysis/both [post]
func (h *AnalysisHandler) AnalyzeBoth(c *fiber.Ctx) error {
	var req bothRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if msg := validateContent(req.Resume.Content, maxResumeLen, "resume content"); msg != "" {
		return presenter.Error(c, http.StatusBadRequest, msg)
	}
	if msg := validateContent(req.JobDescription.Content, maxJobContentLen, "job description"); msg != "" {
		return presenter.Error(c, http.StatusBadRequest, msg)
	}
	r := analysis.Resume{Content: req.Resume.Content, FileName: req.Resume.FileName}
	jd := analysis.JobDescription{
		Content: req.JobDescription.Content,
		Title:   defaultStr(req.JobDescription.Title, "Unknown Position"),
		Company: defaultStr(req.JobDescription.Company, "Unknown Company"),
	}
	result, err := h.uc.AnalyzeBoth(c.Context(), r, jd)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, fmt.Sprintf("analysis failed: %v", err))
	}
	h.saveHistory(c, result)
	return presenter.JSON(c, http.StatusOK, result)
}

// TestAI probes the model provider with a minimal prompt.
// @Summary AI connectivity test
// @Tags    analysis
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router  /analysis/test-ai [get]
func (h *AnalysisHandler) TestAI(c *fiber.Ctx) error {
	if h.ai.Test(c.Context()) {
		return presenter.JSON(c, http.StatusOK, fiber.Map{
			"status":    "success",
			"message":   "AI API is working correctly!",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
	return presenter.JSON(c, http.StatusInternalServerError, fiber.Map{
		"status":    "error",
		"message":   "AI API test failed",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// TestJobs probes the configured job board by listing categories.
// @Summary Job board connectivity test
// @Tags    analysis
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 500 {object} map[string]any
// @Router  /analysis/test-jobs [get]
func (h *AnalysisHandler) TestJobs(c *fiber.Ctx) error {
	categories, err := h.jobs.Categories(c.Context())
	if err != nil || len(categories) == 0 {
		return presenter.JSON(c, http.StatusInternalServerError, fiber.Map{
			"status":    "error",
			"message":   "job board API test failed",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
	if len(categories) > 10 {
		categories = categories[:10]
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{
		"status":        "success",
		"message":       "job board API is working correctly!",
		"jobCategories": categories,
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}

// History lists saved analyses of the authenticated user.
// @Summary Analysis history
// @Tags    analysis
// @Produce json
// @Security BearerAuth
// @Success 200 {array} analysis.HistoryRecord
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 500 {object} presenter.ErrorResponse
// @Router  /analysis/history [get]
func (h *AnalysisHandler) History(c *fiber.Ctx) error {
	userIDStr, _ := c.Locals("userId").(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, "unable to identify user")
	}
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.history.ListByUser(c.Context(), userID, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to load history")
	}
	if items == nil {
		items = []analysis.HistoryRecord{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// saveHistory records the result when the caller is authenticated.
// Failures are logged nowhere and never fail the request.
func (h *AnalysisHandler) saveHistory(c *fiber.Ctx, result analysis.Result) {
	if h.history == nil {
		return
	}
	userIDStr, _ := c.Locals("userId").(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return
	}
	_ = h.history.Save(c.Context(), analysis.HistoryRecord{
		ID:        uuid.New(),
		UserID:    userID,
		Mode:      result.Type,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	})
}

func validateContent(content string, maxLen int, label string) string {
	if len(content) == 0 {
		return label + " is required"
	}
	if len(content) < minContentLen {
		return label + " too short"
	}
	if len(content) > maxLen {
		return label + " too long"
	}
	return ""
}

func defaultStr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
