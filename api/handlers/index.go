package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/seqeron/seqeron-go/pkg/seqeron"
)

// parseSequences converts raw strings into validated sequences,
// writing a 400 response on the first invalid one.
func parseSequences(w http.ResponseWriter, raw []string) ([]*seqeron.Sequence, bool) {
	seqs := make([]*seqeron.Sequence, len(raw))
	for i, bases := range raw {
		seq, err := seqeron.NewSequence(bases)
		if err != nil {
			http.Error(w, `{"error": "sequence `+strconv.Itoa(i)+`: `+err.Error()+`"}`, http.StatusBadRequest)
			return nil, false
		}
		seqs[i] = seq
	}
	return seqs, true
}

// IndexSearchRequest represents a pattern search over a sequence set.
type IndexSearchRequest struct {
	Sequences []string `json:"sequences"`
	Pattern   string   `json:"pattern"`
}

// OccurrenceResponse is one pattern occurrence.
type OccurrenceResponse struct {
	SeqIndex int `json:"seq_index"`
	Offset   int `json:"offset"`
}

// IndexSearchResponse represents the response for a pattern search.
type IndexSearchResponse struct {
	Found       bool                 `json:"found"`
	Occurrences []OccurrenceResponse `json:"occurrences"`
}

// IndexSearchHandler builds a suffix tree over the sequences and lists
// every occurrence of the pattern.
func IndexSearchHandler(w http.ResponseWriter, r *http.Request) {
	var req IndexSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	seqs, ok := parseSequences(w, req.Sequences)
	if !ok {
		return
	}

	tree, err := seqeron.BuildIndex(seqs)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	positions := seqeron.FindOccurrences(tree, req.Pattern)
	occurrences := make([]OccurrenceResponse, len(positions))
	for i, p := range positions {
		occurrences[i] = OccurrenceResponse{SeqIndex: p.SeqIndex, Offset: p.Offset}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(IndexSearchResponse{
		Found:       len(occurrences) > 0,
		Occurrences: occurrences,
	})
}

// IndexSummaryRequest represents an index summary request.
type IndexSummaryRequest struct {
	Sequences []string `json:"sequences"`
}

// IndexSummaryResponse describes the built suffix tree.
type IndexSummaryResponse struct {
	NumSequences int    `json:"num_sequences"`
	TextLen      int    `json:"text_len"`
	NumNodes     int    `json:"num_nodes"`
	NumLeaves    int    `json:"num_leaves"`
	Summary      string `json:"summary"`
}

// IndexSummaryHandler builds a suffix tree and reports its shape.
func IndexSummaryHandler(w http.ResponseWriter, r *http.Request) {
	var req IndexSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	seqs, ok := parseSequences(w, req.Sequences)
	if !ok {
		return
	}

	tree, err := seqeron.BuildIndex(seqs)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(IndexSummaryResponse{
		NumSequences: tree.NumSequences(),
		TextLen:      tree.TextLen(),
		NumNodes:     tree.NumNodes(),
		NumLeaves:    tree.NumLeaves(),
		Summary:      tree.Summary(),
	})
}

// CommonSubstringsRequest asks for substrings shared across sequences.
type CommonSubstringsRequest struct {
	Sequences []string `json:"sequences"`
	MinLength int      `json:"min_length"`
	MinSeqs   int      `json:"min_seqs"`
}

// CommonSubstringResponse is one shared substring.
type CommonSubstringResponse struct {
	Text      string  `json:"text"`
	Length    int     `json:"length"`
	Positions [][]int `json:"positions"`
}

// CommonSubstringsHandler lists maximal substrings shared by at least
// min_seqs of the sequences.
func CommonSubstringsHandler(w http.ResponseWriter, r *http.Request) {
	var req CommonSubstringsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	seqs, ok := parseSequences(w, req.Sequences)
	if !ok {
		return
	}

	tree, err := seqeron.BuildIndex(seqs)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	repeats := seqeron.CommonSubstrings(tree, req.MinLength, req.MinSeqs)
	out := make([]CommonSubstringResponse, len(repeats))
	for i, rep := range repeats {
		out[i] = CommonSubstringResponse{
			Text:      rep.Text(tree),
			Length:    rep.Length,
			Positions: rep.Positions,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// AnchorsRequest asks for the best anchor chain across sequences.
type AnchorsRequest struct {
	Sequences []string `json:"sequences"`
	MinLength int      `json:"min_length,omitempty"`
}

// AnchorResponse is one anchor in the chain.
type AnchorResponse struct {
	Length int   `json:"length"`
	Starts []int `json:"starts"`
}

// AnchorsResponse represents the chained anchors.
type AnchorsResponse struct {
	Anchors        []AnchorResponse `json:"anchors"`
	AnchoredLength int              `json:"anchored_length"`
}

// AnchorsHandler finds the best non-crossing anchor chain shared by
// all of the sequences.
func AnchorsHandler(w http.ResponseWriter, r *http.Request) {
	var req AnchorsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	seqs, ok := parseSequences(w, req.Sequences)
	if !ok {
		return
	}

	tree, err := seqeron.BuildIndex(seqs)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	chain, err := seqeron.FindAnchors(tree, req.MinLength)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	anchors := make([]AnchorResponse, chain.Len())
	for i, a := range chain.Anchors {
		anchors[i] = AnchorResponse{Length: a.Length, Starts: a.Starts}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AnchorsResponse{
		Anchors:        anchors,
		AnchoredLength: chain.AnchoredLength(),
	})
}
