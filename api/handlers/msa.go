package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/seqeron/seqeron-go/pkg/seqeron"
)

// MSARequest represents a multiple alignment request.
type MSARequest struct {
	Sequences       []string `json:"sequences"`
	Strategy        string   `json:"strategy,omitempty"`
	MinAnchorLength int      `json:"min_anchor_length,omitempty"`
}

// MSAResponse represents the response for a multiple alignment.
type MSAResponse struct {
	AlignedSequences []string `json:"aligned_sequences"`
	Consensus        string   `json:"consensus"`
	TotalScore       int      `json:"total_score"`
	Width            int      `json:"width"`
}

// MultipleAlignHandler handles multiple alignment requests. The
// optional strategy field selects "anchored" (default) or "classic".
func MultipleAlignHandler(w http.ResponseWriter, r *http.Request) {
	var req MSARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	seqs, ok := parseSequences(w, req.Sequences)
	if !ok {
		return
	}

	var result *seqeron.MSAResult
	var err error
	switch req.Strategy {
	case "", "anchored":
		result, err = seqeron.MultipleAlignWithOptions(seqs, seqeron.MSAOptions{
			MinAnchorLength: req.MinAnchorLength,
		})
	case "classic":
		result, err = seqeron.MultipleAlignClassic(seqs, nil)
	default:
		http.Error(w, `{"error": "unknown strategy: `+req.Strategy+`"}`, http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(MSAResponse{
		AlignedSequences: result.AlignedSequences,
		Consensus:        result.Consensus,
		TotalScore:       result.TotalScore,
		Width:            result.Width(),
	})
}
