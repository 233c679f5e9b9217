package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/seqeron/seqeron-go/pkg/seqeron"
)

// AlignmentRequest represents an alignment request.
type AlignmentRequest struct {
	Sequence1 string `json:"sequence1"`
	Sequence2 string `json:"sequence2"`
}

// AlignmentResponse represents the response for alignment.
type AlignmentResponse struct {
	AlignedSeq1 string  `json:"aligned_seq1"`
	AlignedSeq2 string  `json:"aligned_seq2"`
	Score       int     `json:"score"`
	Identity    float64 `json:"identity"`
	CIGAR       string  `json:"cigar"`
	Matches     int     `json:"matches"`
	Mismatches  int     `json:"mismatches"`
	Gaps        int     `json:"gaps"`
	Start1      int     `json:"start1"`
	End1        int     `json:"end1"`
	Start2      int     `json:"start2"`
	End2        int     `json:"end2"`
}

func decodePair(w http.ResponseWriter, r *http.Request) (*seqeron.Sequence, *seqeron.Sequence, bool) {
	var req AlignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return nil, nil, false
	}

	seq1, err := seqeron.NewSequence(req.Sequence1)
	if err != nil {
		http.Error(w, `{"error": "sequence1: `+err.Error()+`"}`, http.StatusBadRequest)
		return nil, nil, false
	}

	seq2, err := seqeron.NewSequence(req.Sequence2)
	if err != nil {
		http.Error(w, `{"error": "sequence2: `+err.Error()+`"}`, http.StatusBadRequest)
		return nil, nil, false
	}

	return seq1, seq2, true
}

func writeAlignment(w http.ResponseWriter, a *seqeron.Alignment) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AlignmentResponse{
		AlignedSeq1: a.AlignedSeq1,
		AlignedSeq2: a.AlignedSeq2,
		Score:       a.Score,
		Identity:    a.Identity(),
		CIGAR:       a.ToCIGAR(),
		Matches:     a.MatchCount(),
		Mismatches:  a.MismatchCount(),
		Gaps:        a.GapCount(),
		Start1:      a.Start1,
		End1:        a.End1,
		Start2:      a.Start2,
		End2:        a.End2,
	})
}

// LocalAlignHandler handles local alignment requests.
func LocalAlignHandler(w http.ResponseWriter, r *http.Request) {
	seq1, seq2, ok := decodePair(w, r)
	if !ok {
		return
	}

	result, err := seqeron.AlignLocal(seq1, seq2)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	writeAlignment(w, result)
}

// GlobalAlignHandler handles global alignment requests.
func GlobalAlignHandler(w http.ResponseWriter, r *http.Request) {
	seq1, seq2, ok := decodePair(w, r)
	if !ok {
		return
	}

	result, err := seqeron.AlignGlobal(seq1, seq2)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	writeAlignment(w, result)
}

// SemiGlobalAlignHandler handles semi-global alignment requests. The
// second sequence is aligned in full against a window of the first.
func SemiGlobalAlignHandler(w http.ResponseWriter, r *http.Request) {
	seq1, seq2, ok := decodePair(w, r)
	if !ok {
		return
	}

	result, err := seqeron.AlignSemiGlobal(seq1, seq2)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	writeAlignment(w, result)
}

// ScoreResponse represents the response for alignment score.
type ScoreResponse struct {
	Score int `json:"score"`
}

// AlignmentScoreHandler handles local alignment score requests.
func AlignmentScoreHandler(w http.ResponseWriter, r *http.Request) {
	seq1, seq2, ok := decodePair(w, r)
	if !ok {
		return
	}

	score, err := seqeron.AlignScore(seq1, seq2, nil)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ScoreResponse{Score: score})
}

// FormatResponse represents a pretty-printed alignment.
type FormatResponse struct {
	Formatted string `json:"formatted"`
	Score     int    `json:"score"`
}

// AlignmentFormatHandler renders a global alignment with a match
// indicator line.
func AlignmentFormatHandler(w http.ResponseWriter, r *http.Request) {
	seq1, seq2, ok := decodePair(w, r)
	if !ok {
		return
	}

	result, err := seqeron.AlignGlobal(seq1, seq2)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	formatted, err := seqeron.FormatAlignment(result, 60)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(FormatResponse{
		Formatted: formatted,
		Score:     result.Score,
	})
}
