package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func brackets(s string) string { return "[" + s + "]" }

func TestSQLMarksKeywordsOnly(t *testing.T) {
	got := SQL("select name from users where age > 30", brackets)
	assert.Equal(t, "[select] name [from] users [where] age > 30", got)
}

func TestSQLSkipsQuotedText(t *testing.T) {
	got := SQL(`SELECT 'from here', "order" FROM t`, brackets)
	assert.Equal(t, `[SELECT] 'from here', "order" [FROM] t`, got)
}

func TestSQLUnterminatedQuote(t *testing.T) {
	assert.Equal(t, "[SELECT] 'abc", SQL("SELECT 'abc", brackets))
}

func TestSQLKeepsIdentifiersContainingKeywords(t *testing.T) {
	assert.Equal(t, "selected_from1", SQL("selected_from1", brackets))
}

func TestSQLPreservesNonASCII(t *testing.T) {
	assert.Equal(t, "[SELECT] 'héllo' -- ✓", SQL("SELECT 'héllo' -- ✓", brackets))
}

func TestIsKeyword(t *testing.T) {
	assert.True(t, IsKeyword("trigger"))
	assert.False(t, IsKeyword("users"))
}
