package carve_test

import (
	"testing"

	"github.com/mabho/pagecarve/carve"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	t.Run("returns URL unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "https://x.com", carve.TruncateURL("https://x.com", 50))
	})

	t.Run("truncates with ellipsis when longer than max", func(t *testing.T) {
		t.Parallel()
		url := "https://example.com/politics/2026/senate-race-results"
		result := carve.TruncateURL(url, 20)
		assert.Equal(t, "...nate-race-results", result)
		assert.Len(t, result, 20)
	})

	t.Run("returns URL unchanged when exactly max length", func(t *testing.T) {
		t.Parallel()
		url := "https://example.com"
		assert.Equal(t, url, carve.TruncateURL(url, len(url)))
	})

	t.Run("returns empty string for non-positive max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", carve.TruncateURL("https://example.com", 0))
	})
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	t.Run("formats bytes as B", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "512 B", carve.FormatBytes(512))
	})

	t.Run("formats kilobytes as KB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1.5 KB", carve.FormatBytes(1536))
	})

	t.Run("formats megabytes as MB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2.0 MB", carve.FormatBytes(2*1024*1024))
	})
}

func TestComputeHash(t *testing.T) {
	t.Parallel()

	t.Run("returns consistent hash for same content", func(t *testing.T) {
		t.Parallel()
		content := "<p>test content</p>"
		hash1 := carve.ComputeHash(content)
		hash2 := carve.ComputeHash(content)
		assert.Equal(t, hash1, hash2)
	})

	t.Run("returns different hashes for different content", func(t *testing.T) {
		t.Parallel()
		hash1 := carve.ComputeHash("content a")
		hash2 := carve.ComputeHash("content b")
		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("returns hex string", func(t *testing.T) {
		t.Parallel()
		hash := carve.ComputeHash("test")
		assert.Regexp(t, `^[0-9a-f]+$`, hash)
	})
}
