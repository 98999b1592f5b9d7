package highlight

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SQL keywords
var sqlKeywords = map[string]bool{
	"SELECT": true, "FROM": true, "WHERE": true, "AND": true, "OR": true,
	"INSERT": true, "INTO": true, "VALUES": true, "UPDATE": true, "SET": true,
	"DELETE": true, "CREATE": true, "TABLE": true, "DROP": true, "ALTER": true,
	"INDEX": true, "VIEW": true, "TRIGGER": true, "FULL": true,
	"JOIN": true, "LEFT": true, "RIGHT": true, "INNER": true, "OUTER": true,
	"ON": true, "AS": true, "ORDER": true, "BY": true, "GROUP": true,
	"HAVING": true, "LIMIT": true, "OFFSET": true, "DISTINCT": true,
	"NULL": true, "NOT": true, "IN": true, "LIKE": true, "BETWEEN": true,
	"IS": true, "TRUE": true, "FALSE": true, "ASC": true, "DESC": true,
	"UNION": true, "ALL": true, "EXISTS": true, "CASE": true, "WHEN": true,
	"THEN": true, "ELSE": true, "END": true, "COUNT": true, "SUM": true,
	"AVG": true, "MIN": true, "MAX": true,
}

// IsKeyword reports whether word is a highlighted SQL keyword
func IsKeyword(word string) bool {
	return sqlKeywords[strings.ToUpper(word)]
}

// Styled returns a keyword renderer backed by a lipgloss style
func Styled(style lipgloss.Style) func(string) string {
	return func(s string) string { return style.Render(s) }
}

// SQL passes every keyword through render and leaves the rest untouched.
// Quoted literals are skipped so that 'select' inside a string stays plain.
func SQL(sql string, render func(string) string) string {
	var result strings.Builder
	i := 0

	for i < len(sql) {
		c := sql[i]

		// String literals and quoted identifiers
		if c == '\'' || c == '"' || c == '`' {
			quote := c
			j := i + 1
			for j < len(sql) && sql[j] != quote {
				j++
			}
			if j < len(sql) {
				j++ // include closing quote
			}
			result.WriteString(sql[i:j])
			i = j
			continue
		}

		// Words (keywords or identifiers)
		if isWordStart(c) {
			j := i
			for j < len(sql) && (isWordStart(sql[j]) || (sql[j] >= '0' && sql[j] <= '9')) {
				j++
			}
			word := sql[i:j]
			if IsKeyword(word) {
				result.WriteString(render(word))
			} else {
				result.WriteString(word)
			}
			i = j
			continue
		}

		// Other characters
		result.WriteByte(c)
		i++
	}

	return result.String()
}

func isWordStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
