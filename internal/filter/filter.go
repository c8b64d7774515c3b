package filter

import (
	"fmt"
	"regexp"

	"github.com/avelichko/jobsift/internal/model"
)

// Filter decides whether a posting title belongs to the tracked role
// taxonomy. Include and exclude rules match whole words, case-insensitively,
// and an exclude hit always wins. An empty include list accepts nothing.
type Filter struct {
	include []*regexp.Regexp
	exclude []*regexp.Regexp
}

// New compiles the include and exclude rules. Each rule is a regexp fragment
// wrapped in word boundaries, so "bi analyst" does not match "fbi analyst".
func New(include, exclude []string) (*Filter, error) {
	inc, err := compileRules(include)
	if err != nil {
		return nil, fmt.Errorf("include rules: %w", err)
	}
	exc, err := compileRules(exclude)
	if err != nil {
		return nil, fmt.Errorf("exclude rules: %w", err)
	}
	return &Filter{include: inc, exclude: exc}, nil
}

func compileRules(rules []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile(`(?i)\b(?:` + r + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", r, err)
		}
		res = append(res, re)
	}
	return res, nil
}

// Accept returns true if the title matches at least one include rule and no
// exclude rule.
func (f *Filter) Accept(title string) bool {
	if !matchAny(f.include, title) {
		return false
	}
	return !matchAny(f.exclude, title)
}

func matchAny(res []*regexp.Regexp, s string) bool {
	for _, re := range res {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

var _ model.TitleFilter = (*Filter)(nil)
