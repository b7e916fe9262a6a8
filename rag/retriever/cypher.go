package retriever

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const maxResultRows = 100

var (
	fencePattern = regexp.MustCompile("(?s)```(?:cypher|sql)?\\s*(.*?)```")
	// relationship patterns carrying a type, e.g. [r:CEO_OF] or [:OWNS*]
	typedRelPattern = regexp.MustCompile(`\[\s*(\w*)\s*:\s*\w+[^\]]*\]`)
	// node patterns matching id by exact equality, e.g. (c:Company {id: 'Tesla'})
	exactIDPattern   = regexp.MustCompile(`\(\s*(\w*)\s*(:\w+)?\s*\{\s*id\s*:\s*'([^']*)'\s*\}\s*\)`)
	limitPattern     = regexp.MustCompile(`(?i)\bLIMIT\s+(\d+)`)
	matchLinePattern = regexp.MustCompile(`(?im)^[ \t]*(?:OPTIONAL[ \t]+)?MATCH\b`)
	wherePattern     = regexp.MustCompile(`(?i)\bWHERE\b`)
	returnPattern    = regexp.MustCompile(`(?i)\bRETURN\b`)
)

// RepairCypher normalizes model-generated Cypher so it obeys the generation
// rules even when the model ignores them. Fences and prose are stripped,
// typed relationship patterns are widened to match any relationship, exact
// id equality is rewritten into case-insensitive substring matching, and a
// row cap is enforced.
func RepairCypher(raw string) (string, error) {
	cypher := strings.TrimSpace(raw)

	if m := fencePattern.FindStringSubmatch(cypher); m != nil {
		cypher = strings.TrimSpace(m[1])
	}
	cypher = strings.TrimPrefix(cypher, "Cypher Query:")
	cypher = strings.TrimSpace(cypher)

	// keep only the statement when the model adds commentary before it.
	// Anchoring on a MATCH-leading line keeps OPTIONAL MATCH intact and
	// ignores prose that merely mentions the word match.
	if loc := matchLinePattern.FindStringIndex(cypher); loc != nil {
		cypher = strings.TrimSpace(cypher[loc[0]:])
	} else if idx := strings.Index(cypher, "MATCH"); idx > 0 {
		cypher = cypher[idx:]
	}

	upper := strings.ToUpper(cypher)
	if cypher == "" || (!strings.HasPrefix(upper, "MATCH") && !strings.HasPrefix(upper, "OPTIONAL MATCH")) {
		return "", fmt.Errorf("no MATCH statement in %q", raw)
	}

	// rule: no relationship types in the pattern, match anything
	cypher = typedRelPattern.ReplaceAllStringFunc(cypher, func(match string) string {
		sub := typedRelPattern.FindStringSubmatch(match)
		if sub[1] == "" {
			return "[r]"
		}
		return "[" + sub[1] + "]"
	})

	// rule: ids match by lowercase substring, never exact equality
	cypher = rewriteExactIDMatches(cypher)

	// rule: results are capped at 100 rows
	if m := limitPattern.FindStringSubmatch(cypher); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > maxResultRows {
			cypher = limitPattern.ReplaceAllString(cypher, fmt.Sprintf("LIMIT %d", maxResultRows))
		}
	} else {
		cypher = strings.TrimSuffix(strings.TrimSpace(cypher), ";")
		cypher = fmt.Sprintf("%s LIMIT %d", cypher, maxResultRows)
	}

	return strings.TrimSpace(cypher), nil
}

// rewriteExactIDMatches lifts inline id property matches out of node patterns
// into toLower/CONTAINS conditions. Anonymous nodes get a generated variable
// so the condition can reference them.
func rewriteExactIDMatches(cypher string) string {
	var conds []string
	seq := 0
	cypher = exactIDPattern.ReplaceAllStringFunc(cypher, func(match string) string {
		sub := exactIDPattern.FindStringSubmatch(match)
		name, label, value := sub[1], sub[2], sub[3]
		if name == "" {
			seq++
			name = fmt.Sprintf("n%d", seq)
		}
		conds = append(conds, fmt.Sprintf("toLower(%s.id) CONTAINS '%s'", name, strings.ToLower(value)))
		return "(" + name + label + ")"
	})
	if len(conds) == 0 {
		return cypher
	}

	joined := strings.Join(conds, " AND ")
	if loc := wherePattern.FindStringIndex(cypher); loc != nil {
		return cypher[:loc[1]] + " " + joined + " AND" + cypher[loc[1]:]
	}
	if loc := returnPattern.FindStringIndex(cypher); loc != nil {
		return cypher[:loc[0]] + "WHERE " + joined + " " + cypher[loc[0]:]
	}
	return cypher + " WHERE " + joined
}
