package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/diaclass"
	"github.com/fwojciec/diaclass/mock"
	dslog "github.com/fwojciec/diaclass/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingMaterializer_Materialize(t *testing.T) {
	t.Parallel()

	t.Run("logs each repository and a summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Materializer{
			MaterializeFn: func(ctx context.Context, repos []*diaclass.Repository) []*diaclass.RepositoryStatus {
				return []*diaclass.RepositoryStatus{
					{Name: "lib", Dir: "tmp/lib", Action: diaclass.RepositoryCloned},
					{Name: "tools", Dir: "tmp/tools", Action: diaclass.RepositoryUpdated, Err: errors.New("pull failed")},
				}
			},
		}

		materializer := dslog.NewLoggingMaterializer(inner, logger)
		statuses := materializer.Materialize(context.Background(), []*diaclass.Repository{
			{Name: "lib", ImportURL: "https://example.com/lib.git"},
			{Name: "tools", ImportURL: "https://example.com/tools.git"},
		})

		require.Len(t, statuses, 2)
		output := buf.String()
		assert.Contains(t, output, "name=lib")
		assert.Contains(t, output, "action=clone")
		assert.Contains(t, output, "name=tools")
		assert.Contains(t, output, `err="pull failed"`)
		assert.Contains(t, output, "msg=materialize")
		assert.Contains(t, output, "count=2")
		assert.Contains(t, output, "failed=1")
	})
}
