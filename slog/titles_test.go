package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/mabho/pagecarve/mock"
	carveslog "github.com/mabho/pagecarve/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingTitleResolver_ResolveTitle(t *testing.T) {
	t.Parallel()

	t.Run("logs resolved title with duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.TitleResolver{
			ResolveTitleFn: func(ctx context.Context, url string) (string, error) {
				return "Daily Poll", nil
			},
		}

		resolver := carveslog.NewLoggingTitleResolver(inner, logger)
		title, err := resolver.ResolveTitle(context.Background(), "https://example.com/embed/1")

		require.NoError(t, err)
		assert.Equal(t, "Daily Poll", title)
		output := buf.String()
		assert.Contains(t, output, "title resolution")
		assert.Contains(t, output, "url=https://example.com/embed/1")
		assert.Contains(t, output, "title=\"Daily Poll\"")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.TitleResolver{
			ResolveTitleFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("no heading found")
			},
		}

		resolver := carveslog.NewLoggingTitleResolver(inner, logger)
		_, err := resolver.ResolveTitle(context.Background(), "https://example.com/embed/1")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "title resolution")
		assert.Contains(t, output, "err=\"no heading found\"")
	})
}
