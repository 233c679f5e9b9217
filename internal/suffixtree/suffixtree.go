// Package suffixtree implements a generalized suffix tree built with
// Ukkonen's online linear-time algorithm.
//
// The tree indexes one or more sequences at once: the inputs are
// concatenated with a distinct sentinel byte after each one, so no
// repeated substring can falsely span two sources. Nodes live in an
// arena and reference each other by index; edges reference [start, end)
// ranges of the shared text buffer and never copy substrings.
//
// Construction mutates the tree; once Build returns, the tree is frozen
// and may be queried from any number of goroutines concurrently.
package suffixtree

import (
	"errors"
	"fmt"

	"github.com/seqeron/seqeron-go/internal/sequence"
)

// Sentinel bytes occupy the low, non-printable byte range, which can
// never collide with sequence alphabets.
const (
	sentinelBase = 0x01
	maxSequences = 250
)

// ErrNilSequence is returned when a nil sequence reference is passed to Build.
var ErrNilSequence = errors.New("suffixtree: nil sequence")

// ErrTooManySequences is returned when the sentinel range is exhausted.
var ErrTooManySequences = errors.New("suffixtree: too many sequences")

// none marks an absent arena index.
const none int32 = -1

// openEnd marks a leaf edge that grows with the text during construction.
const openEnd int32 = -1

// node is one suffix-tree node. Child and suffix-link references are
// arena indices, never pointers, so the suffix-link back-references
// carry no ownership.
type node struct {
	start    int32          // edge label start in text
	end      int32          // edge label end (exclusive); openEnd while building
	link     int32          // suffix link, construction only
	children map[byte]int32 // first edge byte -> arena index
	depth    int32          // string depth of the node, set at freeze
	suffix   int32          // suffix start for leaves, -1 for internal nodes
}

// SuffixTree is a frozen generalized suffix tree over a set of sequences.
type SuffixTree struct {
	text      []byte
	nodes     []node
	seqStarts []int
	seqLens   []int
	leafCount int
}

// Position locates one occurrence of a substring: a 0-based offset into
// one of the indexed sequences.
type Position struct {
	SeqIndex int
	Offset   int
}

// Build constructs a generalized suffix tree over the given sequences.
// An empty input set yields a valid tree containing only the root; all
// queries on it report "not found".
func Build(seqs []*sequence.Sequence) (*SuffixTree, error) {
	if len(seqs) > maxSequences {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManySequences, len(seqs), maxSequences)
	}

	total := 0
	for i, s := range seqs {
		if s == nil {
			return nil, fmt.Errorf("%w: index %d", ErrNilSequence, i)
		}
		total += s.Len() + 1
	}

	t := &SuffixTree{
		text:      make([]byte, 0, total),
		nodes:     make([]node, 0, 2*total+2),
		seqStarts: make([]int, len(seqs)),
		seqLens:   make([]int, len(seqs)),
	}
	for i, s := range seqs {
		t.seqStarts[i] = len(t.text)
		t.seqLens[i] = s.Len()
		t.text = append(t.text, s.Bases...)
		t.text = append(t.text, byte(sentinelBase+i))
	}

	b := builder{tree: t, activeNode: t.newNode(0, 0), activeEdge: -1, needLink: none}
	for pos := range t.text {
		b.extend(int32(pos))
	}
	t.freeze()
	return t, nil
}

// newNode appends a node to the arena and returns its index.
func (t *SuffixTree) newNode(start, end int32) int32 {
	t.nodes = append(t.nodes, node{
		start:    start,
		end:      end,
		link:     none,
		children: make(map[byte]int32),
		suffix:   none,
	})
	return int32(len(t.nodes) - 1)
}

// builder carries the Ukkonen active point and pending-suffix counter.
type builder struct {
	tree       *SuffixTree
	activeNode int32
	activeEdge int32 // absolute text index of the active edge's first byte
	activeLen  int32
	remainder  int32
	needLink   int32
}

const root int32 = 0

// edgeLen returns the current length of a node's incoming edge given
// how much text has been consumed so far.
func (b *builder) edgeLen(n int32, pos int32) int32 {
	nd := &b.tree.nodes[n]
	if nd.end == openEnd {
		return pos + 1 - nd.start
	}
	return nd.end - nd.start
}

func (b *builder) addLink(n int32) {
	if b.needLink != none {
		b.tree.nodes[b.needLink].link = n
	}
	b.needLink = n
}

// extend performs one Ukkonen phase, inserting all suffixes that end at
// text position pos.
func (b *builder) extend(pos int32) {
	t := b.tree
	b.needLink = none
	b.remainder++

	for b.remainder > 0 {
		if b.activeLen == 0 {
			b.activeEdge = pos
		}
		edgeByte := t.text[b.activeEdge]
		child, ok := t.nodes[b.activeNode].children[edgeByte]
		if !ok {
			// No edge: create a leaf here.
			leaf := t.newNode(pos, openEnd)
			t.nodes[b.activeNode].children[edgeByte] = leaf
			b.addLink(b.activeNode)
		} else {
			// Walk down if the active point sits past this edge.
			if el := b.edgeLen(child, pos); b.activeLen >= el {
				b.activeEdge += el
				b.activeLen -= el
				b.activeNode = child
				continue
			}
			if t.text[t.nodes[child].start+b.activeLen] == t.text[pos] {
				// Current character already present: rule 3, stop the phase.
				b.activeLen++
				b.addLink(b.activeNode)
				break
			}
			// Split the edge and hang a new leaf off the split node.
			split := t.newNode(t.nodes[child].start, t.nodes[child].start+b.activeLen)
			t.nodes[b.activeNode].children[edgeByte] = split
			leaf := t.newNode(pos, openEnd)
			t.nodes[split].children[t.text[pos]] = leaf
			t.nodes[child].start += b.activeLen
			t.nodes[split].children[t.text[t.nodes[child].start]] = child
			b.addLink(split)
		}

		b.remainder--
		if b.activeNode == root && b.activeLen > 0 {
			b.activeLen--
			b.activeEdge = pos - b.remainder + 1
		} else if b.activeNode != root {
			if l := t.nodes[b.activeNode].link; l != none {
				b.activeNode = l
			} else {
				b.activeNode = root
			}
		}
	}
}

// freeze closes open leaf edges, computes string depths, and assigns
// each leaf its suffix start. After freeze the tree is read-only.
func (t *SuffixTree) freeze() {
	if len(t.nodes) == 0 {
		t.newNode(0, 0)
	}
	textLen := int32(len(t.text))
	for i := range t.nodes {
		if t.nodes[i].end == openEnd {
			t.nodes[i].end = textLen
		}
	}

	// Iterative DFS; recursion depth is linear in the text for
	// degenerate inputs.
	type frame struct {
		idx   int32
		depth int32
	}
	stack := []frame{{root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		nd := &t.nodes[f.idx]
		nd.depth = f.depth
		if len(nd.children) == 0 && f.idx != root {
			nd.suffix = textLen - f.depth
			t.leafCount++
			continue
		}
		for _, c := range nd.children {
			edge := t.nodes[c].end - t.nodes[c].start
			stack = append(stack, frame{c, f.depth + edge})
		}
	}
}

// TextLen returns the length of the concatenated text, sentinels included.
func (t *SuffixTree) TextLen() int {
	return len(t.text)
}

// NumSequences returns the number of indexed sequences.
func (t *SuffixTree) NumSequences() int {
	return len(t.seqStarts)
}

// NumNodes returns the number of nodes in the arena, root included.
func (t *SuffixTree) NumNodes() int {
	return len(t.nodes)
}

// NumLeaves returns the number of leaves.
func (t *SuffixTree) NumLeaves() int {
	return t.leafCount
}

// SequenceLen returns the length of the k-th indexed sequence.
func (t *SuffixTree) SequenceLen(k int) int {
	if k < 0 || k >= len(t.seqLens) {
		return 0
	}
	return t.seqLens[k]
}

// locate maps an absolute text position to a (sequence, offset) pair.
// Positions that land on a sentinel report ok == false.
func (t *SuffixTree) locate(abs int) (Position, bool) {
	lo, hi := 0, len(t.seqStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if t.seqStarts[mid] <= abs {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if len(t.seqStarts) == 0 {
		return Position{}, false
	}
	off := abs - t.seqStarts[lo]
	if off >= t.seqLens[lo] {
		return Position{}, false
	}
	return Position{SeqIndex: lo, Offset: off}, true
}
