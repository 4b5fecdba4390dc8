package lint

import (
	"sort"
	"strings"

	"github.com/sajari/fuzzy"
)

// Suggest returns the candidates that look like name, for "did you mean"
// hints. Case-insensitive matches come first, then fuzzy matches within an
// edit distance of two.
func Suggest(name string, candidates []string) []string {
	if name == "" || len(candidates) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		if s != name && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	for _, c := range candidates {
		if strings.EqualFold(c, name) {
			add(c)
		}
	}

	model := fuzzy.NewModel()
	model.SetThreshold(1)
	model.SetDepth(2)
	model.Train(candidates)

	fuzzyMatches := model.Suggestions(name, false)
	sort.Strings(fuzzyMatches)
	for _, s := range fuzzyMatches {
		add(s)
	}

	return out
}
