package analysis

import (
	"regexp"
	"strings"
)

// skillVocabulary is the fixed list of recognized terms. Matching is a
// case-insensitive substring check, so "JavaScript" in a resume also
// yields "Java"; order here defines output order.
var skillVocabulary = []string{
	"JavaScript", "TypeScript", "Python", "Java", "C++", "C#", "Go",
	"Rust", "Ruby", "PHP", "Swift", "Kotlin", "SQL", "HTML", "CSS",
	"React", "Angular", "Vue", "Node.js", "Express", "Django", "Flask",
	"Spring", "AWS", "Azure", "Docker", "Kubernetes", "Git", "Linux",
	"MongoDB", "PostgreSQL", "Redis", "GraphQL", "REST",
	"Agile", "Leadership", "Communication", "Teamwork", "Problem Solving",
}

// FallbackSkill is substituted when no vocabulary term matches, so the
// extracted skill list is never empty.
const FallbackSkill = "General Software Development"

// requirementIndicators flag sentences that describe a qualification.
// Matched as whole words/phrases against normalized text, so that
// "experienced" does not trigger on "experience".
var requirementIndicators = []string{
	"experience", "years", "skills", "knowledge", "proficiency",
	"familiarity", "expertise", "background", "qualifications",
	"requirements", "must have", "should have", "preferred",
}

const maxRequirements = 5

// ExtractSkills scans free text for vocabulary terms.
func ExtractSkills(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, skill := range skillVocabulary {
		if strings.Contains(lower, strings.ToLower(skill)) {
			found = append(found, skill)
		}
	}
	if len(found) == 0 {
		return []string{FallbackSkill}
	}
	return found
}

var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// ExtractRequirements splits text into sentences and keeps those that
// contain a requirement indicator, capped to the first five matches.
func ExtractRequirements(text string) []string {
	var out []string
	for _, sentence := range sentenceEnd.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}
		if !containsIndicator(sentence) {
			continue
		}
		out = append(out, sentence)
		if len(out) == maxRequirements {
			break
		}
	}
	return out
}

func containsIndicator(sentence string) bool {
	normalized := normalizeText(sentence)
	for _, kw := range requirementIndicators {
		if containsPhrase(normalized, kw) {
			return true
		}
	}
	return false
}

var (
	reNonWord = regexp.MustCompile(`[^a-z0-9]+`)
	reSpaces  = regexp.MustCompile(`\s+`)
)

// normalizeText lowercases and replaces non-word runs with single spaces.
func normalizeText(s string) string {
	s = strings.ToLower(s)
	s = reNonWord.ReplaceAllString(s, " ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// containsPhrase checks for the phrase as whole words.
// "experience" is found in "3 years experience" but not in "experienced".
func containsPhrase(normalizedText, phrase string) bool {
	if phrase == "" {
		return false
	}
	hay := " " + normalizedText + " "
	needle := " " + phrase + " "
	return strings.Contains(hay, needle)
}
