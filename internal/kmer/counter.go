// Package kmer provides k-mer counting and shared-k-mer detection.
//
// The multiple-alignment orchestrator uses the shared-k-mer screen as a
// cheap relatedness check before paying for suffix-tree construction.
package kmer

import (
	"fmt"
	"sort"

	"github.com/seqeron/seqeron-go/internal/sequence"
)

// KMerCount pairs a k-mer with its occurrence count.
type KMerCount struct {
	KMer  string
	Count int
}

// Counter counts k-mers of a fixed length.
type Counter struct {
	k      int
	counts map[string]int
	total  int
}

// NewCounter creates a counter for k-mers of length k.
func NewCounter(k int) (*Counter, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	return &Counter{
		k:      k,
		counts: make(map[string]int),
	}, nil
}

// K returns the k-mer length.
func (c *Counter) K() int {
	return c.k
}

// CountFromSequence adds all k-mers of the sequence to the counter.
func (c *Counter) CountFromSequence(seq *sequence.Sequence) {
	bases := seq.Bases
	for i := 0; i+c.k <= len(bases); i++ {
		c.counts[bases[i:i+c.k]]++
		c.total++
	}
}

// GetCount returns the count for a specific k-mer.
func (c *Counter) GetCount(kmer string) int {
	return c.counts[kmer]
}

// UniqueCount returns the number of distinct k-mers seen.
func (c *Counter) UniqueCount() int {
	return len(c.counts)
}

// Total returns the total number of k-mer occurrences seen.
func (c *Counter) Total() int {
	return c.total
}

// MostFrequent returns the n most frequent k-mers, ordered by count
// descending, ties broken lexicographically.
func (c *Counter) MostFrequent(n int) []KMerCount {
	all := make([]KMerCount, 0, len(c.counts))
	for km, count := range c.counts {
		all = append(all, KMerCount{KMer: km, Count: count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].KMer < all[j].KMer
	})
	if n < len(all) {
		all = all[:n]
	}
	return all
}

// CountKMers counts all k-mers in a sequence.
func CountKMers(seq *sequence.Sequence, k int) (*Counter, error) {
	if seq == nil {
		return nil, fmt.Errorf("sequence cannot be nil")
	}
	c, err := NewCounter(k)
	if err != nil {
		return nil, err
	}
	c.CountFromSequence(seq)
	return c, nil
}

// SharedKMers returns the k-mers present in both sequences, sorted.
func SharedKMers(seq1, seq2 *sequence.Sequence, k int) ([]string, error) {
	c1, err := CountKMers(seq1, k)
	if err != nil {
		return nil, err
	}
	c2, err := CountKMers(seq2, k)
	if err != nil {
		return nil, err
	}

	shared := make([]string, 0)
	for km := range c1.counts {
		if c2.counts[km] > 0 {
			shared = append(shared, km)
		}
	}
	sort.Strings(shared)
	return shared, nil
}

// SharedAcross reports whether at least one k-mer occurs in every one
// of the given sequences. Sequences shorter than k make this false.
func SharedAcross(seqs []*sequence.Sequence, k int) bool {
	if len(seqs) == 0 || k <= 0 {
		return false
	}
	for _, s := range seqs {
		if s == nil || s.Len() < k {
			return false
		}
	}

	// Survivors after each sequence are the k-mers seen in all of the
	// sequences processed so far.
	survivors := make(map[string]bool)
	for i := 0; i+k <= seqs[0].Len(); i++ {
		survivors[seqs[0].Bases[i:i+k]] = true
	}
	for _, s := range seqs[1:] {
		if len(survivors) == 0 {
			return false
		}
		seen := make(map[string]bool, len(survivors))
		for i := 0; i+k <= s.Len(); i++ {
			km := s.Bases[i : i+k]
			if survivors[km] {
				seen[km] = true
			}
		}
		survivors = seen
	}
	return len(survivors) > 0
}
