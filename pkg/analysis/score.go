package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/mkrylov/resume-analyzer/pkg/jobs"
)

// MatchScore implements the overlap policy used in "both" mode: the share
// of job requirement sentences covered by resume skills, as a percentage.
// A skill covers a requirement when either contains the other as a
// case-insensitive substring. Empty requirements score 0.
func MatchScore(resumeSkills, jobRequirements []string) int {
	if len(jobRequirements) == 0 {
		return 0
	}
	matches := 0
	for _, skill := range resumeSkills {
		s := strings.ToLower(skill)
		if s == "" {
			continue
		}
		for _, req := range jobRequirements {
			r := strings.ToLower(req)
			if strings.Contains(r, s) || strings.Contains(s, r) {
				matches++
				break
			}
		}
	}
	score := int(math.Round(float64(matches) / float64(len(jobRequirements)) * 100))
	return clampScore(score)
}

// jobMatchScore implements the proportional-bonus policy used only for
// job recommendations: a fixed floor of 60 for baseline relevance plus a
// bonus proportional to how many resume skills appear in the job text.
func jobMatchScore(resumeSkills []string, jobText string) int {
	matched := matchingSkills(resumeSkills, jobText, len(resumeSkills))
	total := len(resumeSkills)
	if total < 1 {
		total = 1
	}
	score := int(math.Round(60 + 40*float64(len(matched))/float64(total)))
	return clampScore(score)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// matchingSkills returns up to limit resume skills found in the job text.
func matchingSkills(resumeSkills []string, jobText string, limit int) []string {
	lower := strings.ToLower(jobText)
	var out []string
	for _, skill := range resumeSkills {
		s := strings.ToLower(strings.TrimSpace(skill))
		if s == "" {
			continue
		}
		if strings.Contains(lower, s) {
			out = append(out, skill)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}

const maxRecommendations = 3

// BuildRecommendations turns job postings into scored recommendations,
// capped at three entries.
func BuildRecommendations(postings []jobs.Job, resumeSkills []string) []Recommendation {
	if len(postings) > maxRecommendations {
		postings = postings[:maxRecommendations]
	}
	out := make([]Recommendation, 0, len(postings))
	for _, job := range postings {
		jobText := job.Title + " " + job.Description
		out = append(out, Recommendation{
			Title:      job.Title,
			Company:    job.Company,
			MatchScore: jobMatchScore(resumeSkills, jobText),
			Location:   job.Location,
			Salary:     job.FormatSalary(),
			Reasons:    matchReasons(resumeSkills, jobText),
		})
	}
	return out
}

// matchReasons names up to two matching skills, then appends two generic
// reasons, so the list never exceeds three entries.
func matchReasons(resumeSkills []string, jobText string) []string {
	var reasons []string
	if matched := matchingSkills(resumeSkills, jobText, 2); len(matched) > 0 {
		reasons = append(reasons, fmt.Sprintf("Your skills in %s match this role", strings.Join(matched, " and ")))
	}
	reasons = append(reasons,
		"Company culture and role alignment",
		"Growth opportunities in this field",
	)
	return reasons
}
