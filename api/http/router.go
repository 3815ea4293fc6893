package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mkrylov/resume-analyzer/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(
	app *fiber.App,
	auth *handlers.AuthHandler,
	health *handlers.HealthHandler,
	analysis *handlers.AnalysisHandler,
	pdf *handlers.PDFHandler,
	authMW fiber.Handler,
	optionalAuthMW fiber.Handler,
) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	a := v1.Group("/auth")
	a.Post("/register", auth.Register)
	a.Post("/login", auth.Login)

	// Analysis: open endpoints; a valid token additionally captures history
	ag := v1.Group("/analysis")
	ag.Get("/test-ai", analysis.TestAI)
	ag.Get("/test-jobs", analysis.TestJobs)
	ag.Post("/resume-only", optionalAuthMW, analysis.AnalyzeResume)
	ag.Post("/job-only", optionalAuthMW, analysis.AnalyzeJob)
	ag.Post("/both", optionalAuthMW, analysis.AnalyzeBoth)
	ag.Get("/history", authMW, analysis.History)

	// PDF text extraction
	pg := v1.Group("/pdf")
	pg.Post("/extract-text", pdf.ExtractText)
}
