// Package handlers provides HTTP handlers for the Seqeron API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/seqeron/seqeron-go/pkg/seqeron"
)

// SequenceRequest represents a request with a sequence.
type SequenceRequest struct {
	Sequence string `json:"sequence"`
}

func decodeSequence(w http.ResponseWriter, r *http.Request) (*seqeron.Sequence, bool) {
	var req SequenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return nil, false
	}

	seq, err := seqeron.NewSequence(req.Sequence)
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return nil, false
	}
	return seq, true
}

// SequenceInfoResponse represents sequence information.
type SequenceInfoResponse struct {
	Length    int     `json:"length"`
	GCContent float64 `json:"gc_content"`
	Type      string  `json:"type"`
	Empty     bool    `json:"empty"`
}

// SequenceInfoHandler handles sequence info requests.
func SequenceInfoHandler(w http.ResponseWriter, r *http.Request) {
	seq, ok := decodeSequence(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SequenceInfoResponse{
		Length:    seq.Len(),
		GCContent: seq.GCContent(),
		Type:      seq.SeqType.String(),
		Empty:     seq.IsEmpty(),
	})
}

// ComplementResponse represents the response for complement.
type ComplementResponse struct {
	Complement string `json:"complement"`
}

// ComplementHandler handles complement requests.
func ComplementHandler(w http.ResponseWriter, r *http.Request) {
	seq, ok := decodeSequence(w, r)
	if !ok {
		return
	}

	comp, err := seq.Complement()
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ComplementResponse{Complement: comp.Bases})
}

// ReverseComplementHandler handles reverse complement requests.
func ReverseComplementHandler(w http.ResponseWriter, r *http.Request) {
	seq, ok := decodeSequence(w, r)
	if !ok {
		return
	}

	rc, err := seq.ReverseComplement()
	if err != nil {
		http.Error(w, `{"error": "`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ComplementResponse{Complement: rc.Bases})
}

// ValidateResponse represents the response for validation.
type ValidateResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ValidateHandler handles sequence validation requests. Unlike the
// other endpoints an invalid sequence is a 200 with valid=false.
func ValidateHandler(w http.ResponseWriter, r *http.Request) {
	var req SequenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "invalid request body"}`, http.StatusBadRequest)
		return
	}

	resp := ValidateResponse{Valid: true}
	if _, err := seqeron.NewSequence(req.Sequence); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
