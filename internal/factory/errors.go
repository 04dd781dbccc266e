package factory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const maxSuggestions = 3

// LookupError reports a tag with no registered constructor.
type LookupError struct {
	Space       string
	Tag         string
	Suggestions []string
}

func (e *LookupError) Error() string {
	space := e.Space
	if space == "" {
		space = "factory"
	}
	msg := fmt.Sprintf("%s: no binding for tag %q", space, e.Tag)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(e.Suggestions, ", "))
	}
	return msg
}

// DuplicateError reports tags bound more than once in a registration table.
type DuplicateError struct {
	Space string
	Tags  []string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: duplicate bindings for %s", e.Space, strings.Join(e.Tags, ", "))
}

// suggest ranks known tags against the missing one. Both directions are tried
// so abbreviations ("travel" for "travel-menu") and over-long tags match.
func suggest(tag string, known []string) []string {
	if tag == "" || len(known) == 0 {
		return nil
	}
	ranks := fuzzy.RankFindNormalizedFold(tag, known)
	for i, candidate := range known {
		if fuzzy.MatchNormalizedFold(candidate, tag) {
			ranks = append(ranks, fuzzy.Rank{Source: candidate, Target: candidate, Distance: len(tag) - len(candidate), OriginalIndex: i})
		}
	}
	sort.Sort(ranks)
	out := make([]string, 0, maxSuggestions)
	seen := make(map[string]struct{}, len(ranks))
	for _, r := range ranks {
		if _, ok := seen[r.Target]; ok {
			continue
		}
		seen[r.Target] = struct{}{}
		out = append(out, r.Target)
		if len(out) == maxSuggestions {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
