package alignment

import (
	"errors"
	"fmt"
	"strings"
)

// Gap is the character used for gap columns in aligned strings.
const Gap = '-'

// Argument errors. A nil reference where an alignment or sequence is
// required is a programming error and fails fast.
var (
	ErrNilSequence  = errors.New("alignment: nil sequence")
	ErrNilAlignment = errors.New("alignment: nil alignment result")
)

// Alignment is the result of aligning two sequences. AlignedSeq1 and
// AlignedSeq2 always have equal length; stripping gap characters from
// either yields exactly the substring [Start, End] (0-based, inclusive)
// of the corresponding original sequence.
type Alignment struct {
	AlignedSeq1 string
	AlignedSeq2 string
	Score       int
	Start1      int
	End1        int
	Start2      int
	End2        int
	Mode        Mode
}

// Empty returns the canonical degenerate alignment: empty strings,
// score 0, sentinel positions.
func Empty(mode Mode) *Alignment {
	return &Alignment{
		Start1: -1,
		End1:   -1,
		Start2: -1,
		End2:   -1,
		Mode:   mode,
	}
}

// IsEmpty reports whether this is the canonical degenerate alignment.
func (a *Alignment) IsEmpty() bool {
	return len(a.AlignedSeq1) == 0 && len(a.AlignedSeq2) == 0
}

// Length returns the number of alignment columns.
func (a *Alignment) Length() int {
	return len(a.AlignedSeq1)
}

// Identity returns the fraction of columns that are exact matches.
func (a *Alignment) Identity() float64 {
	if len(a.AlignedSeq1) == 0 {
		return 0.0
	}
	return float64(a.MatchCount()) / float64(len(a.AlignedSeq1))
}

// MatchCount returns the number of match columns.
func (a *Alignment) MatchCount() int {
	count := 0
	for i := 0; i < len(a.AlignedSeq1); i++ {
		if a.AlignedSeq1[i] == a.AlignedSeq2[i] && a.AlignedSeq1[i] != Gap {
			count++
		}
	}
	return count
}

// MismatchCount returns the number of mismatch columns.
func (a *Alignment) MismatchCount() int {
	count := 0
	for i := 0; i < len(a.AlignedSeq1); i++ {
		if a.AlignedSeq1[i] != a.AlignedSeq2[i] &&
			a.AlignedSeq1[i] != Gap && a.AlignedSeq2[i] != Gap {
			count++
		}
	}
	return count
}

// GapCount returns the number of columns containing a gap on either side.
func (a *Alignment) GapCount() int {
	count := 0
	for i := 0; i < len(a.AlignedSeq1); i++ {
		if a.AlignedSeq1[i] == Gap || a.AlignedSeq2[i] == Gap {
			count++
		}
	}
	return count
}

// GapOpenings counts the number of gap runs across both rows.
func (a *Alignment) GapOpenings() int {
	openings := 0
	inGap1, inGap2 := false, false

	for i := 0; i < len(a.AlignedSeq1); i++ {
		if a.AlignedSeq1[i] == Gap && !inGap1 {
			openings++
			inGap1 = true
		} else if a.AlignedSeq1[i] != Gap {
			inGap1 = false
		}

		if a.AlignedSeq2[i] == Gap && !inGap2 {
			openings++
			inGap2 = true
		} else if a.AlignedSeq2[i] != Gap {
			inGap2 = false
		}
	}

	return openings
}

// ToCIGAR generates a CIGAR string representation.
func (a *Alignment) ToCIGAR() string {
	if len(a.AlignedSeq1) == 0 {
		return ""
	}

	var cigar strings.Builder
	currentOp := byte(0)
	count := 0

	for i := 0; i < len(a.AlignedSeq1); i++ {
		var op byte
		if a.AlignedSeq1[i] == Gap {
			op = 'I'
		} else if a.AlignedSeq2[i] == Gap {
			op = 'D'
		} else if a.AlignedSeq1[i] == a.AlignedSeq2[i] {
			op = 'M'
		} else {
			op = 'X'
		}

		if op == currentOp {
			count++
		} else {
			if count > 0 {
				cigar.WriteString(fmt.Sprintf("%d%c", count, currentOp))
			}
			currentOp = op
			count = 1
		}
	}

	if count > 0 {
		cigar.WriteString(fmt.Sprintf("%d%c", count, currentOp))
	}

	return cigar.String()
}

// Ungapped1 returns AlignedSeq1 with gap characters removed.
func (a *Alignment) Ungapped1() string {
	return strings.ReplaceAll(a.AlignedSeq1, string(rune(Gap)), "")
}

// Ungapped2 returns AlignedSeq2 with gap characters removed.
func (a *Alignment) Ungapped2() string {
	return strings.ReplaceAll(a.AlignedSeq2, string(rune(Gap)), "")
}

func (a *Alignment) String() string {
	return fmt.Sprintf("Alignment { mode: %s, score: %d, identity: %.1f%%, length: %d }",
		a.Mode, a.Score, a.Identity()*100, a.Length())
}
