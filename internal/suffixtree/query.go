package suffixtree

import (
	"fmt"
	"sort"
	"strings"
)

// walk follows pattern from the root and returns the last node reached,
// how far into its incoming edge the match ended, and how many pattern
// bytes matched in total.
func (t *SuffixTree) walk(pattern []byte) (at int32, edgeOff int32, matched int) {
	cur := root
	i := 0
	for i < len(pattern) {
		child, ok := t.nodes[cur].children[pattern[i]]
		if !ok {
			return cur, 0, i
		}
		nd := &t.nodes[child]
		for off := nd.start; off < nd.end; off++ {
			if i == len(pattern) {
				return child, off - nd.start, i
			}
			if t.text[off] != pattern[i] {
				return child, off - nd.start, i
			}
			i++
		}
		cur = child
	}
	return cur, t.nodes[cur].end - t.nodes[cur].start, i
}

// Contains reports whether pattern occurs as a substring of any indexed
// sequence. The empty pattern is trivially contained in a non-empty tree.
func (t *SuffixTree) Contains(pattern string) bool {
	p := strings.ToUpper(pattern)
	if len(p) == 0 {
		return t.leafCount > 0
	}
	_, _, matched := t.walk([]byte(p))
	return matched == len(p)
}

// LongestExtension returns the length of the longest prefix of pattern
// that occurs in the indexed text.
func (t *SuffixTree) LongestExtension(pattern string) int {
	p := strings.ToUpper(pattern)
	_, _, matched := t.walk([]byte(p))
	return matched
}

// Occurrences enumerates every position at which pattern occurs, across
// all indexed sequences, ordered by sequence then offset. A pattern not
// present anywhere yields an empty list; so does the empty pattern.
func (t *SuffixTree) Occurrences(pattern string) []Position {
	p := strings.ToUpper(pattern)
	if len(p) == 0 {
		return nil
	}
	at, _, matched := t.walk([]byte(p))
	if matched != len(p) {
		return nil
	}

	var out []Position
	t.collectLeaves(at, func(suffixStart int) {
		if pos, ok := t.locate(suffixStart); ok {
			out = append(out, pos)
		}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].SeqIndex != out[j].SeqIndex {
			return out[i].SeqIndex < out[j].SeqIndex
		}
		return out[i].Offset < out[j].Offset
	})
	return out
}

// collectLeaves invokes fn with the suffix start of every leaf in the
// subtree rooted at n.
func (t *SuffixTree) collectLeaves(n int32, fn func(suffixStart int)) {
	stack := []int32{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nd := &t.nodes[cur]
		if nd.suffix != none {
			fn(int(nd.suffix))
			continue
		}
		for _, c := range nd.children {
			stack = append(stack, c)
		}
	}
}

// edgeLabel renders an edge's text range for diagnostics, with sentinel
// bytes shown as $k.
func (t *SuffixTree) edgeLabel(n int32) string {
	nd := &t.nodes[n]
	var sb strings.Builder
	for i := nd.start; i < nd.end; i++ {
		c := t.text[i]
		if c < sentinelBase+maxSequences && c >= sentinelBase {
			fmt.Fprintf(&sb, "$%d", int(c-sentinelBase))
		} else {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// Dump produces a depth-first serialization of the tree for diagnostics.
// Child edges are visited in byte order, so output is deterministic.
// Works on an empty tree.
func (t *SuffixTree) Dump() string {
	var sb strings.Builder
	sb.WriteString("root\n")
	t.dumpNode(&sb, root, 1)
	return sb.String()
}

func (t *SuffixTree) dumpNode(sb *strings.Builder, n int32, indent int) {
	nd := &t.nodes[n]
	order := make([]byte, 0, len(nd.children))
	for b := range nd.children {
		order = append(order, b)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	for _, b := range order {
		c := nd.children[b]
		sb.WriteString(strings.Repeat("  ", indent))
		cn := &t.nodes[c]
		if cn.suffix != none {
			fmt.Fprintf(sb, "%s [leaf @%d]\n", t.edgeLabel(c), cn.suffix)
		} else {
			fmt.Fprintf(sb, "%s\n", t.edgeLabel(c))
			t.dumpNode(sb, c, indent+1)
		}
	}
}

// Summary returns a one-line structural description of the tree.
func (t *SuffixTree) Summary() string {
	maxDepth := int32(0)
	for i := range t.nodes {
		if t.nodes[i].suffix == none && t.nodes[i].depth > maxDepth {
			maxDepth = t.nodes[i].depth
		}
	}
	return fmt.Sprintf("suffix tree: %d sequences, %d text bytes, %d nodes, %d leaves, max internal depth %d",
		len(t.seqStarts), len(t.text), len(t.nodes), t.leafCount, maxDepth)
}

// Repeat is a substring of length Length that occurs in several of the
// indexed sequences. Positions[s] lists its offsets within sequence s,
// sorted ascending; sequences without an occurrence have an empty list.
type Repeat struct {
	Length    int
	Positions [][]int
}

// Text returns the repeat's characters, taken from the first sequence
// that contains it.
func (r *Repeat) Text(t *SuffixTree) string {
	for s, offs := range r.Positions {
		if len(offs) > 0 {
			abs := t.seqStarts[s] + offs[0]
			return string(t.text[abs : abs+r.Length])
		}
	}
	return ""
}

// CommonSubstrings finds the deepest repeated substrings of length at
// least minLen that occur in at least minSeqs distinct sequences. Only
// nodes none of whose children already satisfy the coverage requirement
// are reported, so each result is a locally longest common substring.
func (t *SuffixTree) CommonSubstrings(minLen, minSeqs int) []*Repeat {
	if minLen < 1 || minSeqs < 1 || t.leafCount == 0 {
		return nil
	}
	nSeqs := len(t.seqStarts)
	if minSeqs > nSeqs {
		return nil
	}

	words := (nSeqs + 63) / 64
	cover := make([][]uint64, len(t.nodes))
	counts := make([]int, len(t.nodes))

	// Post-order pass: children before parents. Arena order does not
	// guarantee that, so do an explicit DFS producing a processing order.
	order := make([]int32, 0, len(t.nodes))
	stack := []int32{root}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, cur)
		for _, c := range t.nodes[cur].children {
			stack = append(stack, c)
		}
	}

	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		nd := &t.nodes[n]
		bits := make([]uint64, words)
		if nd.suffix != none {
			if pos, ok := t.locate(int(nd.suffix)); ok {
				bits[pos.SeqIndex/64] |= 1 << uint(pos.SeqIndex%64)
			}
		} else {
			for _, c := range nd.children {
				for w := 0; w < words; w++ {
					bits[w] |= cover[c][w]
				}
			}
		}
		cover[n] = bits
		counts[n] = popcount(bits)
	}

	var out []*Repeat
	for i, n := range t.nodes {
		idx := int32(i)
		if n.suffix != none || idx == root {
			continue
		}
		if int(n.depth) < minLen || counts[idx] < minSeqs {
			continue
		}
		childCovers := false
		for _, c := range n.children {
			if counts[c] >= minSeqs {
				childCovers = true
				break
			}
		}
		if childCovers {
			continue
		}

		rep := &Repeat{Length: int(n.depth), Positions: make([][]int, nSeqs)}
		t.collectLeaves(idx, func(suffixStart int) {
			if pos, ok := t.locate(suffixStart); ok {
				rep.Positions[pos.SeqIndex] = append(rep.Positions[pos.SeqIndex], pos.Offset)
			}
		})
		for s := range rep.Positions {
			sort.Ints(rep.Positions[s])
		}
		out = append(out, rep)
	}

	// Longer repeats first; ties by first occurrence for determinism.
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Length != out[j].Length {
			return out[i].Length > out[j].Length
		}
		return firstOffset(out[i]) < firstOffset(out[j])
	})
	return out
}

func firstOffset(r *Repeat) int {
	for _, offs := range r.Positions {
		if len(offs) > 0 {
			return offs[0]
		}
	}
	return 0
}

func popcount(bits []uint64) int {
	n := 0
	for _, w := range bits {
		for ; w != 0; w &= w - 1 {
			n++
		}
	}
	return n
}
