package alignment

import (
	"fmt"
	"math"

	"github.com/seqeron/seqeron-go/internal/sequence"
)

// negInf is a safe "minus infinity" for the DP matrices: low enough to
// never win a max, high enough that adding a penalty cannot underflow.
const negInf = math.MinInt32 / 2

// matrix identifiers for the three DP layers and their traceback.
type matrixID uint8

const (
	matM  matrixID = iota // column ends in a match/mismatch
	matIx                 // column ends in a gap in sequence 2
	matIy                 // column ends in a gap in sequence 1
	matNone
)

// Align aligns seq1 against seq2 under the given scoring parameters and
// mode, producing the optimal alignment with full traceback.
//
// All DP state is allocated per call; concurrent calls are independent.
// Traceback ties are broken deterministically, preferring match/mismatch
// over a gap in sequence 2 over a gap in sequence 1.
func Align(seq1, seq2 *sequence.Sequence, scoring *ScoringMatrix, mode Mode) (*Alignment, error) {
	if seq1 == nil {
		return nil, fmt.Errorf("%w: seq1", ErrNilSequence)
	}
	if seq2 == nil {
		return nil, fmt.Errorf("%w: seq2", ErrNilSequence)
	}
	if scoring == nil {
		scoring = DefaultDNA()
	}

	n, m := seq1.Len(), seq2.Len()
	s1, s2 := seq1.Bases, seq2.Bases

	switch mode {
	case Local:
		// No positive-score region can exist against an empty sequence.
		if n == 0 || m == 0 {
			return Empty(Local), nil
		}
	case SemiGlobal:
		if n == 0 {
			return Empty(SemiGlobal), nil
		}
	default:
		if n == 0 && m == 0 {
			return Empty(Global), nil
		}
	}

	d := newDP(n, m)
	d.initialize(mode, scoring)
	d.fill(s1, s2, mode, scoring)

	endMat, endI, endJ, score := d.terminal(mode)
	if mode == Local && score <= 0 {
		return Empty(Local), nil
	}

	aligned1, aligned2, startI, startJ := d.traceback(s1, s2, mode, endMat, endI, endJ)

	a := &Alignment{
		AlignedSeq1: aligned1,
		AlignedSeq2: aligned2,
		Score:       score,
		Mode:        mode,
	}
	switch mode {
	case Local:
		a.Start1, a.End1 = startI, endI-1
		a.Start2, a.End2 = startJ, endJ-1
	case SemiGlobal:
		a.Start1, a.End1 = 0, n-1
		a.Start2, a.End2 = startJ, endJ-1
	default:
		a.Start1, a.End1 = 0, n-1
		a.Start2, a.End2 = 0, m-1
	}
	return a, nil
}

// dp holds the three score matrices and their traceback layers for one
// alignment call.
type dp struct {
	n, m       int
	sM, sX, sY [][]int
	tM         [][]matrixID // predecessor matrix at (i-1, j-1)
	tX         [][]matrixID // predecessor matrix at (i-1, j)
	tY         [][]matrixID // predecessor matrix at (i, j-1)
}

func newDP(n, m int) *dp {
	d := &dp{n: n, m: m}
	alloc := func() [][]int {
		rows := make([][]int, n+1)
		for i := range rows {
			rows[i] = make([]int, m+1)
		}
		return rows
	}
	allocT := func() [][]matrixID {
		rows := make([][]matrixID, n+1)
		for i := range rows {
			rows[i] = make([]matrixID, m+1)
		}
		return rows
	}
	d.sM, d.sX, d.sY = alloc(), alloc(), alloc()
	d.tM, d.tX, d.tY = allocT(), allocT(), allocT()
	return d
}

// initialize sets row 0 and column 0 according to the mode. This is the
// first of the three seams where modes differ.
func (d *dp) initialize(mode Mode, scoring *ScoringMatrix) {
	switch mode {
	case Local:
		// Everything floors at zero; boundaries are already zero.
		return
	case SemiGlobal:
		// Leading reference characters are free: row 0 costs nothing.
		for j := 1; j <= d.m; j++ {
			d.sM[0][j] = 0
			d.sY[0][j] = 0
			d.sX[0][j] = negInf
		}
		for i := 1; i <= d.n; i++ {
			d.sX[i][0] = scoring.GapCost(i)
			d.sM[i][0] = negInf
			d.sY[i][0] = negInf
			if i > 1 {
				d.tX[i][0] = matIx
			} else {
				d.tX[i][0] = matM
			}
		}
	default: // Global
		for i := 1; i <= d.n; i++ {
			d.sX[i][0] = scoring.GapCost(i)
			d.sM[i][0] = negInf
			d.sY[i][0] = negInf
			if i > 1 {
				d.tX[i][0] = matIx
			} else {
				d.tX[i][0] = matM
			}
		}
		for j := 1; j <= d.m; j++ {
			d.sY[0][j] = scoring.GapCost(j)
			d.sM[0][j] = negInf
			d.sX[0][j] = negInf
			if j > 1 {
				d.tY[0][j] = matIy
			} else {
				d.tY[0][j] = matM
			}
		}
	}
}

// fill runs the Gotoh recurrences. The only mode-dependent piece is the
// zero floor applied in local mode.
func (d *dp) fill(s1, s2 string, mode Mode, scoring *ScoringMatrix) {
	local := mode == Local
	for i := 1; i <= d.n; i++ {
		for j := 1; j <= d.m; j++ {
			subst := scoring.Score(s1[i-1], s2[j-1])

			// M: predecessor is any matrix at the diagonal cell.
			best, from := d.sM[i-1][j-1], matM
			if d.sX[i-1][j-1] > best {
				best, from = d.sX[i-1][j-1], matIx
			}
			if d.sY[i-1][j-1] > best {
				best, from = d.sY[i-1][j-1], matIy
			}
			mVal := best + subst
			if local && mVal < 0 {
				mVal = 0
			}
			d.sM[i][j] = mVal
			d.tM[i][j] = from

			// Ix: open a gap in sequence 2 or extend one.
			open := d.sM[i-1][j] + scoring.GapOpen
			extend := d.sX[i-1][j] + scoring.GapExtend
			if open >= extend {
				d.sX[i][j] = open
				d.tX[i][j] = matM
			} else {
				d.sX[i][j] = extend
				d.tX[i][j] = matIx
			}
			if local && d.sX[i][j] < 0 {
				d.sX[i][j] = 0
			}

			// Iy: open a gap in sequence 1 or extend one.
			open = d.sM[i][j-1] + scoring.GapOpen
			extend = d.sY[i][j-1] + scoring.GapExtend
			if open >= extend {
				d.sY[i][j] = open
				d.tY[i][j] = matM
			} else {
				d.sY[i][j] = extend
				d.tY[i][j] = matIy
			}
			if local && d.sY[i][j] < 0 {
				d.sY[i][j] = 0
			}
		}
	}
}

// terminal locates the cell the traceback starts from. This is the
// third mode seam: global reads the bottom-right corner, local the
// maximum anywhere, semi-global the maximum in the last row.
func (d *dp) terminal(mode Mode) (matrixID, int, int, int) {
	pick := func(i, j int) (matrixID, int) {
		best, mat := d.sM[i][j], matM
		if d.sX[i][j] > best {
			best, mat = d.sX[i][j], matIx
		}
		if d.sY[i][j] > best {
			best, mat = d.sY[i][j], matIy
		}
		return mat, best
	}

	switch mode {
	case Local:
		bestMat, bestI, bestJ, bestScore := matM, 0, 0, 0
		for i := 1; i <= d.n; i++ {
			for j := 1; j <= d.m; j++ {
				if mat, v := pick(i, j); v > bestScore {
					bestMat, bestI, bestJ, bestScore = mat, i, j, v
				}
			}
		}
		return bestMat, bestI, bestJ, bestScore
	case SemiGlobal:
		bestMat, bestJ := matM, 0
		bestScore := negInf
		for j := 0; j <= d.m; j++ {
			if mat, v := pick(d.n, j); v > bestScore {
				bestMat, bestJ, bestScore = mat, j, v
			}
		}
		return bestMat, d.n, bestJ, bestScore
	default:
		mat, v := pick(d.n, d.m)
		return mat, d.n, d.m, v
	}
}

// value reads the score of a (matrix, cell) state.
func (d *dp) value(mat matrixID, i, j int) int {
	switch mat {
	case matIx:
		return d.sX[i][j]
	case matIy:
		return d.sY[i][j]
	default:
		return d.sM[i][j]
	}
}

// traceback reconstructs the aligned strings from the terminal state
// back to the mode-specific start, returning the (i, j) position where
// reconstruction stopped.
func (d *dp) traceback(s1, s2 string, mode Mode, mat matrixID, i, j int) (string, string, int, int) {
	buf1 := make([]byte, 0, i+j)
	buf2 := make([]byte, 0, i+j)

	for {
		if i == 0 && j == 0 {
			break
		}
		if mode == Local && d.value(mat, i, j) == 0 {
			break
		}
		if mode == SemiGlobal && i == 0 {
			// Remaining reference prefix is free and stays unaligned.
			break
		}

		switch mat {
		case matM:
			buf1 = append(buf1, s1[i-1])
			buf2 = append(buf2, s2[j-1])
			mat = d.tM[i][j]
			i--
			j--
		case matIx:
			buf1 = append(buf1, s1[i-1])
			buf2 = append(buf2, Gap)
			mat = d.tX[i][j]
			i--
		default: // matIy
			buf1 = append(buf1, Gap)
			buf2 = append(buf2, s2[j-1])
			mat = d.tY[i][j]
			j--
		}
	}

	reverseBytes(buf1)
	reverseBytes(buf2)
	return string(buf1), string(buf2), i, j
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// ScoreOnly calculates the local alignment score without traceback,
// using two rolling rows per matrix instead of full matrices.
func ScoreOnly(seq1, seq2 *sequence.Sequence, scoring *ScoringMatrix) (int, error) {
	if seq1 == nil || seq2 == nil {
		return 0, ErrNilSequence
	}
	if scoring == nil {
		scoring = DefaultDNA()
	}

	n, m := seq1.Len(), seq2.Len()
	if n == 0 || m == 0 {
		return 0, nil
	}
	s1, s2 := seq1.Bases, seq2.Bases

	prevM := make([]int, m+1)
	currM := make([]int, m+1)
	prevX := make([]int, m+1)
	currX := make([]int, m+1)
	prevY := make([]int, m+1)
	currY := make([]int, m+1)

	maxScore := 0
	for i := 1; i <= n; i++ {
		currM[0], currX[0], currY[0] = 0, 0, 0
		for j := 1; j <= m; j++ {
			subst := scoring.Score(s1[i-1], s2[j-1])

			best := prevM[j-1]
			if prevX[j-1] > best {
				best = prevX[j-1]
			}
			if prevY[j-1] > best {
				best = prevY[j-1]
			}
			mVal := best + subst
			if mVal < 0 {
				mVal = 0
			}
			currM[j] = mVal

			xVal := prevM[j] + scoring.GapOpen
			if v := prevX[j] + scoring.GapExtend; v > xVal {
				xVal = v
			}
			if xVal < 0 {
				xVal = 0
			}
			currX[j] = xVal

			yVal := currM[j-1] + scoring.GapOpen
			if v := currY[j-1] + scoring.GapExtend; v > yVal {
				yVal = v
			}
			if yVal < 0 {
				yVal = 0
			}
			currY[j] = yVal

			if mVal > maxScore {
				maxScore = mVal
			}
		}
		prevM, currM = currM, prevM
		prevX, currX = currX, prevX
		prevY, currY = currY, prevY
	}

	return maxScore, nil
}
