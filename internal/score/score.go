package score

import (
	"fmt"
	"regexp"
	"strings"
)

// Scorer assigns a 0..5 fit score to a posting. Scoring is a pure function
// of title, description and location; the same inputs always produce the
// same score.
//
// A title matching an include rule is worth 3 points, each distinct skill
// found in the lowercased title+description is worth 1, and the total is
// clamped to 5. A preferred location adds 1 more, clamped to 5 again.
type Scorer struct {
	include   []*regexp.Regexp
	skills    []string
	preferred *regexp.Regexp
}

// New compiles the scoring rules. Include rules use the same whole-word,
// case-insensitive form as the title filter; skills are matched as plain
// lowercase substrings; location patterns are joined into one whole-word
// alternation.
func New(include, skills, locations []string) (*Scorer, error) {
	inc := make([]*regexp.Regexp, 0, len(include))
	for _, r := range include {
		re, err := regexp.Compile(`(?i)\b(?:` + r + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("compile include rule %q: %w", r, err)
		}
		inc = append(inc, re)
	}

	lowered := make([]string, 0, len(skills))
	for _, sk := range skills {
		lowered = append(lowered, strings.ToLower(sk))
	}

	var preferred *regexp.Regexp
	if len(locations) > 0 {
		re, err := regexp.Compile(`(?i)\b(?:` + strings.Join(locations, "|") + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("compile location rules: %w", err)
		}
		preferred = re
	}

	return &Scorer{include: inc, skills: lowered, preferred: preferred}, nil
}

// Score computes the fit score for one posting.
func (s *Scorer) Score(title, desc, location string) int {
	score := 0
	for _, re := range s.include {
		if re.MatchString(title) {
			score += 3
			break
		}
	}

	text := strings.ToLower(title + " " + desc)
	for _, sk := range s.skills {
		if strings.Contains(text, sk) {
			score++
		}
	}
	if score > 5 {
		score = 5
	}

	if s.preferred != nil && s.preferred.MatchString(location) {
		score++
	}
	if score > 5 {
		score = 5
	}
	return score
}
