package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Resume carries user-submitted resume text. Skills and Experience are
// derived during analysis, never stored authoritatively.
type Resume struct {
	Content    string    `json:"content"`
	FileName   string    `json:"fileName,omitempty"`
	UploadDate time.Time `json:"uploadDate,omitempty"`
	Skills     []string  `json:"skills,omitempty"`
	Experience int       `json:"experience,omitempty"`
}

// JobDescription carries user-submitted job posting text.
type JobDescription struct {
	Content      string   `json:"content"`
	Title        string   `json:"title,omitempty"`
	Company      string   `json:"company,omitempty"`
	Requirements []string `json:"requirements,omitempty"`
}

// SkillAssessment is produced by the LLM, not computed locally.
type SkillAssessment struct {
	Skill    string `json:"skill"`
	Level    string `json:"level"` // Beginner/Intermediate/Advanced/Expert
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Recommendation is a job posting enriched with a locally computed
// match score and generated match reasons.
type Recommendation struct {
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	MatchScore int      `json:"matchScore"`
	Location   string   `json:"location"`
	Salary     string   `json:"salary,omitempty"`
	Reasons    []string `json:"matchReasons"`
}

// ResultType discriminates the three analysis modes.
type ResultType string

const (
	TypeResumeOnly ResultType = "resume-only"
	TypeJobOnly    ResultType = "job-only"
	TypeBoth       ResultType = "both"
)

// Result is the assembled analysis response. Mode-specific fields are
// omitted when empty: jobRecommendations exist only for resume-only,
// matchScore and skillAssessments only for both.
type Result struct {
	Type                      ResultType        `json:"type"`
	Summary                   string            `json:"summary"`
	Strengths                 []string          `json:"strengths"`
	Improvements              []string          `json:"improvements"`
	MatchScore                *int              `json:"matchScore,omitempty"`
	SkillAssessments          []SkillAssessment `json:"skillAssessments,omitempty"`
	JobRecommendations        []Recommendation  `json:"jobRecommendations,omitempty"`
	ActionableRecommendations []string          `json:"actionableRecommendations"`
}

// HistoryRecord is a stored analysis of an authenticated user.
type HistoryRecord struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	Mode      ResultType `json:"mode"`
	Result    Result     `json:"result"`
	CreatedAt time.Time  `json:"createdAt"`
}

// HistoryRepository persists analyses for later retrieval.
type HistoryRepository interface {
	Save(ctx context.Context, rec HistoryRecord) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]HistoryRecord, error)
}
