package store

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/RaSh6119/Agentic-Hybrid-RAG-Engine/rag"
)

var labelSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// sanitizeLabel makes an arbitrary extracted string safe as a Cypher label
// or relationship type. Spaces and hyphens become underscores, everything
// else outside [a-zA-Z0-9_] is dropped.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	label = strings.ReplaceAll(label, " ", "_")
	label = strings.ReplaceAll(label, "-", "_")
	label = labelSanitizer.ReplaceAllString(label, "")
	if label == "" {
		return "Entity"
	}
	return label
}

// escapeString escapes a value for embedding in single-quoted Cypher strings
func escapeString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return s
}

// parseGraphReply converts a raw GRAPH.QUERY reply into a QueryTable. The
// verbose reply is a three-element array: header, result rows, statistics.
// Write-only statements return a single statistics array with no header.
func parseGraphReply(reply any) (rag.QueryTable, error) {
	outer, ok := reply.([]any)
	if !ok {
		return rag.QueryTable{}, fmt.Errorf("unexpected graph reply type %T", reply)
	}
	if len(outer) < 3 {
		// statistics only, nothing was projected
		return rag.QueryTable{}, nil
	}

	var table rag.QueryTable

	if header, ok := outer[0].([]any); ok {
		table.Columns = make([]string, 0, len(header))
		for _, col := range header {
			table.Columns = append(table.Columns, headerName(col))
		}
	}

	rows, ok := outer[1].([]any)
	if !ok {
		return table, nil
	}
	table.Rows = make([][]any, 0, len(rows))
	for _, raw := range rows {
		cells, ok := raw.([]any)
		if !ok {
			continue
		}
		row := make([]any, 0, len(cells))
		for _, cell := range cells {
			row = append(row, parseValue(cell))
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// headerName unwraps a header cell. Verbose replies use plain strings,
// compact ones wrap the name in [type, name].
func headerName(col any) string {
	if s, ok := col.(string); ok {
		return s
	}
	if pair, ok := col.([]any); ok && len(pair) == 2 {
		if s, ok := pair[1].(string); ok {
			return s
		}
	}
	return fmt.Sprint(col)
}

// parseValue normalizes one reply cell. Nodes and edges collapse to the
// small maps the formatter renders; scalars pass through.
func parseValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return val
	case int64:
		return val
	case []any:
		if entity, ok := parseEntity(val); ok {
			return entity
		}
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, parseValue(item))
		}
		return out
	default:
		return val
	}
}

// parseEntity recognizes the key-value pair shape FalkorDB uses for nodes
// and relationships and reduces it to its properties map. A node shows up
// as its id, which is what graph answers are built from.
func parseEntity(pairs []any) (any, bool) {
	if len(pairs) == 0 {
		return nil, false
	}
	props := map[string]any{}
	hasProps := false
	for _, raw := range pairs {
		pair, ok := raw.([]any)
		if !ok || len(pair) != 2 {
			return nil, false
		}
		key, ok := pair[0].(string)
		if !ok {
			return nil, false
		}
		if key == "properties" {
			hasProps = true
			propPairs, ok := pair[1].([]any)
			if !ok {
				continue
			}
			for _, rawProp := range propPairs {
				prop, ok := rawProp.([]any)
				if ok && len(prop) == 2 {
					props[fmt.Sprint(prop[0])] = parseValue(prop[1])
				}
			}
		}
	}
	if !hasProps {
		return nil, false
	}
	if id, ok := props["id"]; ok {
		return id, true
	}
	if name, ok := props["name"]; ok {
		return name, true
	}
	return props, true
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	case string:
		i, _ := strconv.Atoi(n)
		return i
	default:
		return 0
	}
}
