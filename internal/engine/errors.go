package engine

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// QueryError describes a query that failed to compile or evaluate.
type QueryError struct {
	// Pos is the byte offset into the query, or -1 for runtime errors.
	Pos  int
	Msg  string
	Hint string
}

func (e *QueryError) Error() string {
	msg := e.Msg
	if e.Pos >= 0 {
		msg = fmt.Sprintf("%s at position %d", msg, e.Pos)
	}
	if e.Hint != "" {
		msg = fmt.Sprintf("%s (did you mean %s?)", msg, e.Hint)
	}
	return msg
}

func runtimeError(format string, args ...interface{}) *QueryError {
	return &QueryError{Pos: -1, Msg: fmt.Sprintf(format, args...)}
}

// suggest returns the closest known name for an unknown one. Names that
// extend the input (".he" -> ".heading") are preferred, then known names
// hidden inside the input (".hx" -> ".h").
func suggest(name string, candidates []string) string {
	if name == "" {
		return ""
	}
	ranks := fuzzy.RankFindNormalizedFold(name, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best := ""
	for _, candidate := range candidates {
		if !fuzzy.MatchNormalizedFold(candidate, name) {
			continue
		}
		if len(candidate) > len(best) || (len(candidate) == len(best) && candidate < best) {
			best = candidate
		}
	}
	return best
}
