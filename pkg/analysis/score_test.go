package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrylov/resume-analyzer/pkg/jobs"
)

func TestMatchScoreEmptyRequirements(t *testing.T) {
	assert.Equal(t, 0, MatchScore([]string{"Python", "Go"}, nil))
	assert.Equal(t, 0, MatchScore([]string{"Python", "Go"}, []string{}))
}

func TestMatchScoreFullOverlap(t *testing.T) {
	score := MatchScore([]string{"Python"}, []string{"3+ years Python experience"})

	assert.Equal(t, 100, score)
}

func TestMatchScorePartialOverlap(t *testing.T) {
	score := MatchScore(
		[]string{"Python"},
		[]string{"3+ years Python experience", "Knowledge of Kubernetes required"},
	)

	assert.Equal(t, 50, score)
}

func TestMatchScoreClampedWhenSkillsExceedRequirements(t *testing.T) {
	score := MatchScore(
		[]string{"Python", "SQL", "Docker"},
		[]string{"Python and SQL and Docker experience"},
	)

	assert.Equal(t, 100, score)
}

func TestMatchScoreAlwaysInRange(t *testing.T) {
	cases := [][2][]string{
		{{}, {"some requirement"}},
		{{"X"}, {"unrelated"}},
		{{"a", "b", "c"}, {"a b c", "a", "b"}},
	}
	for _, c := range cases {
		score := MatchScore(c[0], c[1])
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
}

func TestJobMatchScoreFloor(t *testing.T) {
	// Non-empty skill list with zero text matches yields exactly the floor.
	assert.Equal(t, 60, jobMatchScore([]string{"Haskell"}, "Looking for a pastry chef"))
}

func TestJobMatchScoreFullOverlapCapped(t *testing.T) {
	score := jobMatchScore([]string{"React", "Node.js"}, "Senior React and Node.js developer")

	assert.Equal(t, 100, score)
}

func TestBuildRecommendationsCap(t *testing.T) {
	var postings []jobs.Job
	for i := 0; i < 7; i++ {
		postings = append(postings, jobs.Job{Title: "Software Developer", Company: "Acme"})
	}
	recs := BuildRecommendations(postings, []string{"Go"})

	assert.Len(t, recs, 3)
}

func TestBuildRecommendationsReasons(t *testing.T) {
	postings := []jobs.Job{{
		Title:       "Frontend Engineer",
		Company:     "Tech Corp",
		Location:    "Atlanta, US",
		Description: "React and TypeScript position",
	}}
	recs := BuildRecommendations(postings, []string{"React", "TypeScript", "CSS"})

	require.Len(t, recs, 1)
	rec := recs[0]
	require.Len(t, rec.Reasons, 3)
	assert.Contains(t, rec.Reasons[0], "React")
	assert.Contains(t, rec.Reasons[0], "TypeScript")
	assert.Equal(t, "Company culture and role alignment", rec.Reasons[1])
	assert.Equal(t, "Growth opportunities in this field", rec.Reasons[2])
	assert.GreaterOrEqual(t, rec.MatchScore, 60)
	assert.LessOrEqual(t, rec.MatchScore, 100)
}

func TestBuildRecommendationsNoSkillMatch(t *testing.T) {
	postings := []jobs.Job{{Title: "Pastry Chef", Company: "Bakery"}}
	recs := BuildRecommendations(postings, []string{"Go"})

	require.Len(t, recs, 1)
	assert.Len(t, recs[0].Reasons, 2)
	assert.Equal(t, 60, recs[0].MatchScore)
}

func TestBuildRecommendationsSalary(t *testing.T) {
	postings := []jobs.Job{{
		Title:          "Software Developer",
		SalaryMin:      80000,
		SalaryMax:      120000,
		SalaryCurrency: "USD",
	}}
	recs := BuildRecommendations(postings, nil)

	require.Len(t, recs, 1)
	assert.Equal(t, "80000 - 120000 USD", recs[0].Salary)
}
