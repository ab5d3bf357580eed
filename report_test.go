package diaclass_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/fwojciec/diaclass"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	t.Parallel()

	t.Run("keeps insertion order", func(t *testing.T) {
		t.Parallel()

		report := diaclass.NewReport()
		report.Set("z.md", diaclass.ParseFailure("x", "bad"))
		report.Set("a.md", diaclass.ParseFailure("y", "bad"))
		report.Set("m.md", diaclass.ParseFailure("z", "bad"))

		assert.Equal(t, []string{"z.md", "a.md", "m.md"}, report.Refs())
		assert.Equal(t, 3, report.Len())
	})

	t.Run("replacing a result keeps its position", func(t *testing.T) {
		t.Parallel()

		report := diaclass.NewReport()
		report.Set("a.md", diaclass.ParseFailure("x", "bad"))
		report.Set("b.md", diaclass.ParseFailure("y", "bad"))
		report.Set("a.md", diaclass.Success(&diaclass.Classification{Dominant: diaclass.QuadrantTutorial}))

		assert.Equal(t, []string{"a.md", "b.md"}, report.Refs())
		result, ok := report.Get("a.md")
		require.True(t, ok)
		assert.True(t, result.OK())
	})

	t.Run("zero value is usable", func(t *testing.T) {
		t.Parallel()

		var report diaclass.Report
		report.Set("a.md", nil)

		_, ok := report.Get("a.md")
		assert.True(t, ok)
		_, ok = report.Get("missing.md")
		assert.False(t, ok)
	})

	t.Run("marshals keys in insertion order", func(t *testing.T) {
		t.Parallel()

		report := diaclass.NewReport()
		report.Set("index.md", diaclass.Success(&diaclass.Classification{
			Dominant: diaclass.QuadrantExplanation, Explanation: 60, Tutorial: 10, HowTo: 10, Reference: 20,
		}))
		report.Set("setup.md", diaclass.RequestFailure(diaclass.Errorf(diaclass.EUNAVAILABLE, "no response")))

		b, err := json.Marshal(report)

		require.NoError(t, err)
		assert.JSONEq(t, `{
			"index.md": {"status": "success", "classification": {"dominant": "explanation", "explanation": 60, "tutorial": 10, "how_to": 10, "reference": 20}},
			"setup.md": {"status": "request_failure", "reason": "no response", "code": "unavailable"}
		}`, string(b))
		assert.Less(t, strings.Index(string(b), "index.md"), strings.Index(string(b), "setup.md"))
	})

	t.Run("marshals empty report as empty object", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(diaclass.NewReport())

		require.NoError(t, err)
		assert.Equal(t, "{}", string(b))
	})

	t.Run("summarizes by status", func(t *testing.T) {
		t.Parallel()

		report := diaclass.NewReport()
		report.Set("a.md", diaclass.Success(&diaclass.Classification{Dominant: diaclass.QuadrantTutorial}))
		report.Set("b.md", diaclass.ParseFailure("x", "bad"))
		report.Set("c.md", diaclass.ParseFailure("y", "bad"))

		summary := report.Summary()

		assert.Equal(t, 1, summary[diaclass.StatusSuccess])
		assert.Equal(t, 2, summary[diaclass.StatusParseFailure])
		assert.Equal(t, 0, summary[diaclass.StatusRequestFailure])
	})
}
