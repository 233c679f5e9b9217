// Package msa aligns multiple sequences into a single equal-length
// alignment with a majority consensus.
//
// Two strategies are provided. The classical strategy is a star
// alignment: every sequence is globally aligned against sequence 0 and
// the resulting gap columns are reconciled. The anchor-accelerated
// strategy first derives a chain of exact-match anchors from a
// generalized suffix tree; anchor blocks are copied verbatim and only
// the free blocks between them are star-aligned. When no usable chain
// exists the accelerated strategy degrades to the classical one, so the
// two are always score-equivalent on unrelated inputs.
package msa

import (
	"errors"
	"fmt"
	"strings"

	"github.com/seqeron/seqeron-go/internal/alignment"
	"github.com/seqeron/seqeron-go/internal/anchor"
	"github.com/seqeron/seqeron-go/internal/kmer"
	"github.com/seqeron/seqeron-go/internal/sequence"
	"github.com/seqeron/seqeron-go/internal/suffixtree"
)

// ErrNilSequence is returned when the input set contains a nil sequence.
var ErrNilSequence = errors.New("msa: nil sequence")

// Result is a completed multiple alignment. All rows have identical
// length and appear in input order; stripping gaps from row i
// reproduces input sequence i exactly.
type Result struct {
	AlignedSequences []string
	Consensus        string
	TotalScore       int
}

// Empty returns the canonical result for zero input sequences.
func Empty() *Result {
	return &Result{AlignedSequences: []string{}}
}

// IsEmpty reports whether the result holds no rows.
func (r *Result) IsEmpty() bool {
	return len(r.AlignedSequences) == 0
}

// Width returns the common row length.
func (r *Result) Width() int {
	if len(r.AlignedSequences) == 0 {
		return 0
	}
	return len(r.AlignedSequences[0])
}

// Options tunes the anchor-accelerated strategy.
type Options struct {
	Scoring         *alignment.ScoringMatrix
	MinAnchorLength int
}

func (o Options) scoring() *alignment.ScoringMatrix {
	if o.Scoring == nil {
		return alignment.DefaultDNA()
	}
	return o.Scoring
}

func (o Options) minAnchorLength() int {
	if o.MinAnchorLength <= 0 {
		return anchor.DefaultMinLength
	}
	return o.MinAnchorLength
}

func validate(seqs []*sequence.Sequence) error {
	for i, s := range seqs {
		if s == nil {
			return fmt.Errorf("%w: index %d", ErrNilSequence, i)
		}
	}
	return nil
}

// trivial handles the zero- and one-sequence cases common to both
// strategies; handled reports whether it applied.
func trivial(seqs []*sequence.Sequence) (*Result, bool) {
	switch len(seqs) {
	case 0:
		return Empty(), true
	case 1:
		return &Result{
			AlignedSequences: []string{seqs[0].Bases},
			Consensus:        seqs[0].Bases,
		}, true
	}
	return nil, false
}

// AlignClassic performs a star alignment: sequence 0 is the reference,
// every other sequence is globally aligned against it, and reference
// gap columns are merged so all rows share one column set. TotalScore
// is the sum of the pairwise scores against the reference.
func AlignClassic(seqs []*sequence.Sequence, scoring *alignment.ScoringMatrix) (*Result, error) {
	if err := validate(seqs); err != nil {
		return nil, err
	}
	if r, ok := trivial(seqs); ok {
		return r, nil
	}
	if scoring == nil {
		scoring = alignment.DefaultDNA()
	}

	ref := seqs[0]
	n := ref.Len()

	pairs := make([]*alignment.Alignment, len(seqs))
	profiles := make([][]int, len(seqs))
	maxIns := make([]int, n+1)
	total := 0

	for i := 1; i < len(seqs); i++ {
		a, err := alignment.Align(ref, seqs[i], scoring, alignment.Global)
		if err != nil {
			return nil, err
		}
		pairs[i] = a
		total += a.Score

		prof := insertionProfile(a.AlignedSeq1, n)
		profiles[i] = prof
		for p := 0; p <= n; p++ {
			if prof[p] > maxIns[p] {
				maxIns[p] = prof[p]
			}
		}
	}

	rows := make([]string, len(seqs))
	rows[0] = padReference(ref.Bases, maxIns)
	for i := 1; i < len(seqs); i++ {
		rows[i] = padRow(pairs[i], profiles[i], maxIns)
	}

	return &Result{
		AlignedSequences: rows,
		Consensus:        Consensus(rows),
		TotalScore:       total,
	}, nil
}

// insertionProfile counts, for each reference position p (p == n means
// after the last character), how many gap columns the aligned reference
// carries immediately before consuming character p.
func insertionProfile(alignedRef string, n int) []int {
	ins := make([]int, n+1)
	p := 0
	run := 0
	for k := 0; k < len(alignedRef); k++ {
		if alignedRef[k] == alignment.Gap {
			run++
		} else {
			ins[p] = run
			run = 0
			p++
		}
	}
	ins[p] = run
	return ins
}

// padReference renders the reference row under the merged column set.
func padReference(ref string, maxIns []int) string {
	var sb strings.Builder
	for p := 0; p <= len(ref); p++ {
		for r := 0; r < maxIns[p]; r++ {
			sb.WriteByte(alignment.Gap)
		}
		if p < len(ref) {
			sb.WriteByte(ref[p])
		}
	}
	return sb.String()
}

// padRow renders one non-reference row under the merged column set:
// its own insertions first, then gap padding up to the merged insertion
// count, then the character aligned to the reference position.
func padRow(a *alignment.Alignment, prof, maxIns []int) string {
	var sb strings.Builder
	seqRow := a.AlignedSeq2
	k := 0
	for p := 0; p < len(maxIns); p++ {
		for r := 0; r < prof[p]; r++ {
			sb.WriteByte(seqRow[k])
			k++
		}
		for r := prof[p]; r < maxIns[p]; r++ {
			sb.WriteByte(alignment.Gap)
		}
		if p < len(maxIns)-1 {
			sb.WriteByte(seqRow[k])
			k++
		}
	}
	return sb.String()
}

// Align performs the anchor-accelerated multiple alignment with
// automatic fallback to the classical strategy.
func Align(seqs []*sequence.Sequence, scoring *alignment.ScoringMatrix) (*Result, error) {
	return AlignWithOptions(seqs, Options{Scoring: scoring})
}

// AlignWithOptions is Align with explicit anchor tuning.
func AlignWithOptions(seqs []*sequence.Sequence, opts Options) (*Result, error) {
	if err := validate(seqs); err != nil {
		return nil, err
	}
	if r, ok := trivial(seqs); ok {
		return r, nil
	}

	minLen := opts.minAnchorLength()

	// Unrelated sequences cannot produce an anchor chain; skip the
	// suffix tree entirely when no k-mer of anchor length is shared.
	if !kmer.SharedAcross(seqs, minLen) {
		return AlignClassic(seqs, opts.Scoring)
	}

	tree, err := suffixtree.Build(seqs)
	if err != nil {
		return nil, err
	}
	chain, err := anchor.FindChain(tree, anchor.Options{MinLength: minLen})
	if err != nil {
		return nil, err
	}
	if chain.IsEmpty() {
		return AlignClassic(seqs, opts.Scoring)
	}

	return assembleAnchored(seqs, chain, opts.scoring())
}

// assembleAnchored builds the final alignment from a chain: anchor
// blocks are copied verbatim (they are character-identical across all
// sequences by construction), and each group of free blocks between
// consecutive anchors is star-aligned independently.
func assembleAnchored(seqs []*sequence.Sequence, chain *anchor.Chain, scoring *alignment.ScoringMatrix) (*Result, error) {
	nSeqs := len(seqs)
	rows := make([]strings.Builder, nSeqs)
	prevEnd := make([]int, nSeqs)
	total := 0

	appendFree := func(ends []int) error {
		blocks := make([]*sequence.Sequence, nSeqs)
		allEmpty := true
		for s := 0; s < nSeqs; s++ {
			sub, err := seqs[s].Subsequence(prevEnd[s], ends[s])
			if err != nil {
				return err
			}
			blocks[s] = sub
			if sub.Len() > 0 {
				allEmpty = false
			}
		}
		if allEmpty {
			return nil
		}
		part, err := AlignClassic(blocks, scoring)
		if err != nil {
			return err
		}
		for s := 0; s < nSeqs; s++ {
			rows[s].WriteString(part.AlignedSequences[s])
		}
		total += part.TotalScore
		return nil
	}

	for _, a := range chain.Anchors {
		if err := appendFree(a.Starts); err != nil {
			return nil, err
		}
		text := seqs[0].Bases[a.Starts[0]:a.End(0)]
		for s := 0; s < nSeqs; s++ {
			rows[s].WriteString(text)
		}
		// Anchor columns are all matches; score them against the
		// reference like any other star column.
		total += (nSeqs - 1) * a.Length * scoring.Match
		for s := 0; s < nSeqs; s++ {
			prevEnd[s] = a.End(s)
		}
	}

	tails := make([]int, nSeqs)
	for s := 0; s < nSeqs; s++ {
		tails[s] = seqs[s].Len()
	}
	if err := appendFree(tails); err != nil {
		return nil, err
	}

	out := make([]string, nSeqs)
	for s := 0; s < nSeqs; s++ {
		out[s] = rows[s].String()
	}
	return &Result{
		AlignedSequences: out,
		Consensus:        Consensus(out),
		TotalScore:       total,
	}, nil
}

// Consensus computes the column-wise majority character over an
// equal-length row set, gap included as a candidate; ties are broken in
// favor of the character seen first in row order.
func Consensus(rows []string) string {
	if len(rows) == 0 {
		return ""
	}
	width := len(rows[0])
	out := make([]byte, width)
	counts := make(map[byte]int, 8)
	order := make([]byte, 0, 8)

	for c := 0; c < width; c++ {
		for k := range counts {
			delete(counts, k)
		}
		order = order[:0]
		for _, row := range rows {
			ch := row[c]
			if counts[ch] == 0 {
				order = append(order, ch)
			}
			counts[ch]++
		}
		best := order[0]
		for _, ch := range order[1:] {
			if counts[ch] > counts[best] {
				best = ch
			}
		}
		out[c] = best
	}
	return string(out)
}
