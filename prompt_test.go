package diaclass_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/diaclass"
	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	t.Run("embeds content", func(t *testing.T) {
		t.Parallel()

		prompt := diaclass.BuildPrompt("# Install\n\nRun the installer.")

		assert.Contains(t, prompt, "# Install\n\nRun the installer.")
		assert.NotContains(t, prompt, "{content}")
	})

	t.Run("names every expected key", func(t *testing.T) {
		t.Parallel()

		prompt := diaclass.BuildPrompt("x")

		for _, q := range diaclass.Quadrants() {
			assert.Contains(t, prompt, "'"+string(q)+"'")
		}
		assert.Contains(t, prompt, "'dominant'")
	})

	t.Run("leaves braces in content untouched", func(t *testing.T) {
		t.Parallel()

		prompt := diaclass.BuildPrompt("use {content} and {{ jinja }}")

		assert.Contains(t, prompt, "use {content} and {{ jinja }}")
	})
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	t.Run("keeps short content", func(t *testing.T) {
		t.Parallel()

		out, truncated := diaclass.Truncate("hello", 10)

		assert.Equal(t, "hello", out)
		assert.False(t, truncated)
	})

	t.Run("keeps content at exactly the budget", func(t *testing.T) {
		t.Parallel()

		out, truncated := diaclass.Truncate("hello", 5)

		assert.Equal(t, "hello", out)
		assert.False(t, truncated)
	})

	t.Run("keeps prefix of long content", func(t *testing.T) {
		t.Parallel()

		out, truncated := diaclass.Truncate(strings.Repeat("a", 20)+"tail", 20)

		assert.Equal(t, strings.Repeat("a", 20), out)
		assert.True(t, truncated)
	})

	t.Run("counts characters, not bytes", func(t *testing.T) {
		t.Parallel()

		out, truncated := diaclass.Truncate("Diátaxis", 3)

		assert.Equal(t, "Diá", out)
		assert.True(t, truncated)
	})

	t.Run("zero budget disables truncation", func(t *testing.T) {
		t.Parallel()

		out, truncated := diaclass.Truncate("hello", 0)

		assert.Equal(t, "hello", out)
		assert.False(t, truncated)
	})
}
