package customer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeTags(t *testing.T) {
	t.Run("union preserves existing order and dedupes", func(t *testing.T) {
		merged, added := mergeTags([]string{"Wholesale", "High Value"}, []string{TagHighValue, TagFrequentBooker})
		assert.Equal(t, []string{"Wholesale", "High Value", "Frequent Booker"}, merged)
		assert.Equal(t, []string{"Frequent Booker"}, added)
	})

	t.Run("nothing to add", func(t *testing.T) {
		merged, added := mergeTags([]string{TagHighValue}, []string{TagHighValue})
		assert.Equal(t, []string{TagHighValue}, merged)
		assert.Empty(t, added)
	})

	t.Run("empty existing", func(t *testing.T) {
		merged, added := mergeTags(nil, []string{TagHighValue})
		assert.Equal(t, []string{TagHighValue}, merged)
		assert.Equal(t, []string{TagHighValue}, added)
	})

	t.Run("duplicates inside existing collapse", func(t *testing.T) {
		merged, _ := mergeTags([]string{"A", "A", "B"}, nil)
		assert.Equal(t, []string{"A", "B"}, merged)
	})
}

func TestAppendNote(t *testing.T) {
	t.Run("appends on its own line", func(t *testing.T) {
		assert.Equal(t, "old\nnew", appendNote("old", "new"))
	})

	t.Run("empty existing notes", func(t *testing.T) {
		assert.Equal(t, "new", appendNote("", "new"))
	})

	t.Run("trims oldest prefix when over the cap", func(t *testing.T) {
		existing := strings.Repeat("x", MaxNotesLength)
		note := "latest entry"

		result := appendNote(existing, note)
		assert.LessOrEqual(t, len(result), MaxNotesLength)
		assert.True(t, strings.HasSuffix(result, note), "new note must survive whole")
		assert.NotContains(t, result[:len(result)-len(note)], note)
	})

	t.Run("trim resumes at a line boundary when possible", func(t *testing.T) {
		var lines []string
		for i := 0; i < 200; i++ {
			lines = append(lines, strings.Repeat("a", 48))
		}
		existing := strings.Join(lines, "\n")
		note := "the newest note"

		result := appendNote(existing, note)
		assert.LessOrEqual(t, len(result), MaxNotesLength)
		assert.True(t, strings.HasSuffix(result, note))
		// Kept content starts with a whole line, not a partial one.
		assert.Equal(t, strings.Repeat("a", 48), strings.SplitN(result, "\n", 2)[0])
	})

	t.Run("oversized note is kept whole", func(t *testing.T) {
		note := strings.Repeat("n", MaxNotesLength+100)
		assert.Equal(t, note, appendNote("old", note))
	})
}
