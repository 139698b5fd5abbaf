package bloom_test

import (
	"fmt"
	"testing"

	"github.com/mabho/pagecarve/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://example.com/articles/one"))

	f.Add("https://example.com/articles/one")

	assert.True(t, f.Test("https://example.com/articles/one"))
	assert.False(t, f.Test("https://example.com/articles/two"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("https://example.com/articles/one")
	f.Add("https://example.com/articles/two")
	f.Add("https://example.com/articles/three")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	url := "https://example.com/articles/one"

	f.Add(url)
	countAfterFirst := f.EstimatedCount()

	f.Add(url)
	f.Add(url)

	assert.Equal(t, countAfterFirst, f.EstimatedCount())
	assert.True(t, f.Test(url))
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.Add(fmt.Sprintf("https://example.com/added/%d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		url := fmt.Sprintf("https://example.com/notadded/%d", i)
		if f.Test(url) {
			falsePositives++
		}
	}

	// Allow up to 2% to absorb statistical variance around the 1% target
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
