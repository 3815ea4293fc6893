package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// aiPayload is the JSON object the model is asked to return. Fields the
// provider omits stay zero; the boundary never propagates untyped values.
type aiPayload struct {
	Summary                   string            `json:"summary"`
	Strengths                 []string          `json:"strengths"`
	Improvements              []string          `json:"improvements"`
	ExtractedSkills           []string          `json:"extractedSkills"`
	JobSearchKeyword          string            `json:"jobSearchKeyword"`
	MatchScore                *int              `json:"matchScore"`
	SkillAssessments          []SkillAssessment `json:"skillAssessments"`
	ActionableRecommendations []string          `json:"actionableRecommendations"`
}

// defaultPayload is the canned fallback substituted whenever the model
// call fails or returns unparseable content.
func defaultPayload() aiPayload {
	return aiPayload{
		Summary:         "Resume shows good technical skills but could benefit from more quantifiable achievements.",
		Strengths:       []string{"Solid technical foundation", "Relevant project experience"},
		Improvements:    []string{"Add quantifiable achievements", "Tailor content to target roles"},
		ExtractedSkills: []string{"JavaScript", "React", "Node.js"},
		ActionableRecommendations: []string{
			"Add more specific project examples",
			"Include metrics and achievements",
		},
	}
}

const (
	resumeSystemPrompt = "You are a professional resume analyst. Provide detailed, actionable insights in valid JSON format."
	jobSystemPrompt    = "You are a career coach helping job seekers optimize their resumes. Return valid JSON."
	bothSystemPrompt   = "You are a hiring manager comparing resumes to job requirements. Return valid JSON."
)

func resumePrompt(content string, skills []string) string {
	return fmt.Sprintf(`Analyze this resume and return a JSON response with this EXACT structure:
{
  "summary": "2-3 sentence overview of the resume",
  "strengths": ["strength1", "strength2", "strength3"],
  "improvements": ["improvement1", "improvement2", "improvement3"],
  "extractedSkills": ["skill1", "skill2", "skill3"],
  "jobSearchKeyword": "keyword1",
  "skillAssessments": [
    {"skill": "JavaScript", "level": "Advanced", "score": 85, "feedback": "Strong foundation, consider learning frameworks"}
  ],
  "actionableRecommendations": ["Add quantifiable achievements", "Get relevant certifications"]
}

Resume: %s
Skills found: %s

Return ONLY the JSON object, no other text.`, content, strings.Join(skills, ", "))
}

func jobPrompt(content string, requirements []string) string {
	return fmt.Sprintf(`Analyze this job description and return resume optimization advice in this EXACT JSON structure:
{
  "summary": "Analysis of what this job requires",
  "strengths": ["skills to highlight", "experience to emphasize"],
  "improvements": ["what to add to resume", "what to strengthen"],
  "actionableRecommendations": ["Specific resume improvements for this job"]
}

Job Description: %s
Requirements: %s

Return ONLY the JSON object.`, content, strings.Join(requirements, ", "))
}

func bothPrompt(resumeContent, jobContent string, resumeSkills, jobRequirements []string) string {
	return fmt.Sprintf(`Compare this resume against the job description and return this EXACT JSON structure:
{
  "summary": "Overall match assessment",
  "strengths": ["matching skills", "relevant experience"],
  "improvements": ["missing skills", "gaps to address"],
  "skillAssessments": [
    {"skill": "React", "level": "Advanced", "score": 90, "feedback": "Strong match for job requirements"}
  ],
  "actionableRecommendations": ["Specific steps to improve match"]
}

Resume: %s
Job Description: %s
Resume skills: %s
Job requirements: %s

Return ONLY the JSON object.`, resumeContent, jobContent, strings.Join(resumeSkills, ", "), strings.Join(jobRequirements, ", "))
}

var errNoJSON = errors.New("no JSON object in model reply")

// parsePayload extracts the first {...} block from a free-text model
// reply and decodes it. Replies wrapped in markdown fences are handled.
func parsePayload(raw string) (aiPayload, error) {
	raw = stripFences(strings.TrimSpace(raw))
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return aiPayload{}, errNoJSON
	}
	var p aiPayload
	if err := json.Unmarshal([]byte(raw[start:end+1]), &p); err != nil {
		return aiPayload{}, fmt.Errorf("decode model reply: %w", err)
	}
	return p, nil
}

func stripFences(s string) string {
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
