package autocomplete

import (
	"strings"

	"github.com/nhath/ezsql/internal/savedquery"
)

// SavedLabel prefixes suggestions that come from saved query names
const SavedLabel = "Saved: "

// DisplayLimit is how many suggestions the panel shows.
// Suggest itself is unbounded; autocomplete only consumes the first entry.
const DisplayLimit = 5

// Keywords are matched in this order, ahead of any saved query
var Keywords = []string{
	"SELECT", "FROM", "WHERE", "INSERT", "UPDATE", "DELETE", "CREATE", "DROP", "ALTER",
	"TABLE", "INDEX", "VIEW", "TRIGGER", "JOIN", "INNER", "LEFT", "RIGHT", "FULL", "ON",
	"GROUP BY", "ORDER BY", "HAVING", "LIMIT", "OFFSET", "VALUES", "SET", "AND", "OR", "NOT",
}

// Suggest returns every keyword starting with input, then every saved query
// whose name starts with input (labelled with SavedLabel, in store order).
// Matching is case-insensitive. Empty input yields nothing.
func Suggest(input string, saved []savedquery.SavedQuery) []string {
	if input == "" {
		return nil
	}
	prefix := strings.ToUpper(input)

	var out []string
	for _, kw := range Keywords {
		if strings.HasPrefix(kw, prefix) {
			out = append(out, kw)
		}
	}
	for _, q := range saved {
		if strings.HasPrefix(strings.ToUpper(q.Name), prefix) {
			out = append(out, SavedLabel+q.Name)
		}
	}
	return out
}

// StripLabel returns the text autocomplete should insert for a suggestion
func StripLabel(suggestion string) string {
	return strings.TrimPrefix(suggestion, SavedLabel)
}

// Visible caps suggestions to what the panel displays
func Visible(suggestions []string) []string {
	if len(suggestions) > DisplayLimit {
		return suggestions[:DisplayLimit]
	}
	return suggestions
}
