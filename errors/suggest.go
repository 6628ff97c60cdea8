package errors

import (
	"sort"
	"strings"
)

// MaxSuggestions is the maximum number of suggestions returned by Suggest.
const MaxSuggestions = 3

// Suggest returns names from candidates that are a small edit distance from
// target, closest first.
func Suggest(target string, candidates []string) []string {
	if target == "" {
		return nil
	}
	limit := 3
	switch {
	case len(target) <= 3:
		limit = 1
	case len(target) <= 5:
		limit = 2
	}
	type scored struct {
		name string
		dist int
	}
	var found []scored
	lower := strings.ToLower(target)
	for _, c := range candidates {
		if c == "" || c == target {
			continue
		}
		if d := editDistance(lower, strings.ToLower(c)); d <= limit {
			found = append(found, scored{c, d})
		}
	}
	sort.Slice(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].name < found[j].name
	})
	if len(found) > MaxSuggestions {
		found = found[:MaxSuggestions]
	}
	out := make([]string, len(found))
	for i, s := range found {
		out[i] = s.name
	}
	return out
}

// SuggestionHint phrases suggestions as a hint, or returns "" if there are none.
func SuggestionHint(suggestions []string) string {
	switch len(suggestions) {
	case 0:
		return ""
	case 1:
		return "did you mean '" + suggestions[0] + "'?"
	}
	return "did you mean one of: '" + strings.Join(suggestions, "', '") + "'?"
}

// editDistance is the Levenshtein distance over runes.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			above := row[j]
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			row[j] = min(row[j]+1, row[j-1]+1, diag+cost)
			diag = above
		}
	}
	return row[len(rb)]
}
