// Package bloom tracks page URLs seen while building an index.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// URLSet records page URLs. A Bloom filter answers the common "never seen"
// case; possible hits are confirmed against an exact set so that false
// positives never drop a page.
type URLSet struct {
	f     *bloom.BloomFilter
	exact map[string]struct{}
}

// NewURLSet creates a set sized for n expected URLs with the given false
// positive rate for the filter.
func NewURLSet(n uint, fpRate float64) *URLSet {
	if n == 0 {
		n = 1
	}
	return &URLSet{
		f:     bloom.NewWithEstimates(n, fpRate),
		exact: make(map[string]struct{}, n),
	}
}

// Add records url and reports whether it was not already present.
func (s *URLSet) Add(url string) bool {
	if s.f.TestString(url) {
		if _, ok := s.exact[url]; ok {
			return false
		}
	}
	s.f.AddString(url)
	s.exact[url] = struct{}{}
	return true
}

// Len returns the number of distinct URLs added.
func (s *URLSet) Len() int {
	return len(s.exact)
}
