// Package bloom provides probabilistic URL deduplication for follow
// frontiers.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter remembers which URLs a walk has already queued.
// It may report a URL as seen when it was not (false positive), but
// never the reverse, so a walk can skip a page by mistake but will
// never process one twice.
type Filter struct {
	set *bloom.BloomFilter
}

// NewFilter creates a filter sized for n expected URLs with the given
// false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		set: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a URL as seen.
func (f *Filter) Add(url string) {
	f.set.AddString(url)
}

// Test returns true if the URL might have been added.
func (f *Filter) Test(url string) bool {
	return f.set.TestString(url)
}

// EstimatedCount returns the approximate number of URLs added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.set.ApproximatedSize())
}
