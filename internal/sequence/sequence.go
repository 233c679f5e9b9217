// Package sequence provides immutable, validated biological sequences.
//
// A Sequence is uppercase-normalized at construction and never mutated
// afterwards, so values may be shared freely across goroutines by
// read-only reference.
package sequence

import (
	"fmt"
	"strings"
)

// Type identifies the alphabet of a sequence.
type Type int

const (
	// DNA represents a DNA sequence (A, C, G, T, N)
	DNA Type = iota
	// RNA represents an RNA sequence (A, C, G, U, N)
	RNA
	// Protein represents an amino-acid sequence
	Protein
	// Unknown represents an unclassified sequence
	Unknown
)

func (t Type) String() string {
	switch t {
	case DNA:
		return "DNA"
	case RNA:
		return "RNA"
	case Protein:
		return "protein"
	default:
		return "unknown"
	}
}

// Valid alphabet characters per sequence type.
var (
	ValidDNABases     = map[rune]bool{'A': true, 'C': true, 'G': true, 'T': true, 'N': true}
	ValidRNABases     = map[rune]bool{'A': true, 'C': true, 'G': true, 'U': true, 'N': true}
	ValidAminoAcids   = validAminoAcids()
	validAminoLetters = "ACDEFGHIKLMNPQRSTVWYBZX*"
)

func validAminoAcids() map[rune]bool {
	m := make(map[rune]bool, len(validAminoLetters))
	for _, c := range validAminoLetters {
		m[c] = true
	}
	return m
}

// Sequence is a validated genomic or protein sequence. The zero-length
// sequence is valid; degenerate inputs are handled by consumers, not
// rejected here.
type Sequence struct {
	Bases       string
	ID          string
	Description string
	SeqType     Type
}

// New creates a new DNA sequence with validation. Empty input yields a
// valid zero-length sequence.
func New(bases string) (*Sequence, error) {
	return WithMetadata(bases, "", "", DNA)
}

// WithID creates a new DNA sequence with an identifier.
func WithID(bases, id string) (*Sequence, error) {
	if len(id) == 0 {
		return nil, fmt.Errorf("ID cannot be empty")
	}
	return WithMetadata(bases, id, "", DNA)
}

// WithMetadata creates a new sequence with full metadata.
func WithMetadata(bases, id, description string, seqType Type) (*Sequence, error) {
	normalized := strings.ToUpper(bases)

	var validErr error
	switch seqType {
	case RNA:
		validErr = ValidateRNA(normalized)
	case Protein:
		validErr = ValidateProtein(normalized)
	default:
		validErr = ValidateDNA(normalized)
	}
	if validErr != nil {
		return nil, validErr
	}

	return &Sequence{
		Bases:       normalized,
		ID:          id,
		Description: description,
		SeqType:     seqType,
	}, nil
}

// Len returns the length of the sequence.
func (s *Sequence) Len() int {
	return len(s.Bases)
}

// IsEmpty reports whether the sequence has no bases.
func (s *Sequence) IsEmpty() bool {
	return len(s.Bases) == 0
}

// IsValid checks if all bases are valid for the sequence type.
func (s *Sequence) IsValid() bool {
	switch s.SeqType {
	case RNA:
		return ValidateRNA(s.Bases) == nil
	case Protein:
		return ValidateProtein(s.Bases) == nil
	default:
		return ValidateDNA(s.Bases) == nil
	}
}

// BaseAt returns the base at a specific index, or false if out of bounds.
func (s *Sequence) BaseAt(index int) (rune, bool) {
	if index < 0 || index >= len(s.Bases) {
		return 0, false
	}
	return rune(s.Bases[index]), true
}

// Subsequence returns the half-open slice [start, end) of the sequence.
// An empty slice (start == end) is valid.
func (s *Sequence) Subsequence(start, end int) (*Sequence, error) {
	if start < 0 {
		return nil, fmt.Errorf("start index must be non-negative")
	}
	if end < start {
		return nil, fmt.Errorf("end must not precede start")
	}
	if end > len(s.Bases) {
		return nil, fmt.Errorf("end must not exceed sequence length")
	}

	return &Sequence{
		Bases:       s.Bases[start:end],
		ID:          s.ID,
		Description: s.Description,
		SeqType:     s.SeqType,
	}, nil
}

// complementBase returns the complement of a DNA base.
func complementBase(c byte) byte {
	switch c {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'C':
		return 'G'
	case 'G':
		return 'C'
	default:
		return 'N'
	}
}

// Complement returns the complement of the sequence (A<->T, C<->G).
func (s *Sequence) Complement() (*Sequence, error) {
	if s.SeqType != DNA {
		return nil, fmt.Errorf("complement only available for DNA sequences")
	}

	comp := make([]byte, len(s.Bases))
	s.ComplementInto(comp)

	return &Sequence{
		Bases:       string(comp),
		ID:          s.ID,
		Description: s.Description,
		SeqType:     s.SeqType,
	}, nil
}

// ComplementInto writes the complement of the sequence into dst and
// reports whether dst was large enough. On a false return dst is left
// untouched. Hot-path callers use this to avoid both allocation and
// error-handling overhead.
func (s *Sequence) ComplementInto(dst []byte) bool {
	if len(dst) < len(s.Bases) {
		return false
	}
	for i := 0; i < len(s.Bases); i++ {
		dst[i] = complementBase(s.Bases[i])
	}
	return true
}

// CopyInto writes the raw bases into dst and reports whether dst was
// large enough.
func (s *Sequence) CopyInto(dst []byte) bool {
	if len(dst) < len(s.Bases) {
		return false
	}
	copy(dst, s.Bases)
	return true
}

// Reverse returns the reverse of the sequence.
func (s *Sequence) Reverse() *Sequence {
	b := []byte(s.Bases)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}

	return &Sequence{
		Bases:       string(b),
		ID:          s.ID,
		Description: s.Description,
		SeqType:     s.SeqType,
	}
}

// ReverseComplement returns the reverse complement of the sequence.
func (s *Sequence) ReverseComplement() (*Sequence, error) {
	comp, err := s.Complement()
	if err != nil {
		return nil, err
	}
	return comp.Reverse(), nil
}

// GCContent calculates the GC content (proportion of G and C bases).
func (s *Sequence) GCContent() float64 {
	if len(s.Bases) == 0 {
		return 0.0
	}

	gcCount := 0
	for _, b := range s.Bases {
		if b == 'G' || b == 'C' {
			gcCount++
		}
	}

	return float64(gcCount) / float64(len(s.Bases))
}

// ContainsMotif checks if the sequence contains a motif (substring).
func (s *Sequence) ContainsMotif(motif string) (bool, error) {
	if len(motif) == 0 {
		return false, fmt.Errorf("motif cannot be empty")
	}
	return strings.Contains(s.Bases, strings.ToUpper(motif)), nil
}

// FindMotifPositions finds all positions where a motif occurs.
func (s *Sequence) FindMotifPositions(motif string) ([]int, error) {
	if len(motif) == 0 {
		return nil, fmt.Errorf("motif cannot be empty")
	}

	motifUpper := strings.ToUpper(motif)
	positions := make([]int, 0)

	for i := 0; i+len(motifUpper) <= len(s.Bases); i++ {
		if s.Bases[i:i+len(motifUpper)] == motifUpper {
			positions = append(positions, i)
		}
	}

	return positions, nil
}

// ToFASTA returns the sequence in FASTA format.
func (s *Sequence) ToFASTA() string {
	var header string
	if s.ID != "" {
		header = ">" + s.ID
		if s.Description != "" {
			header += " " + s.Description
		}
	} else {
		header = ">sequence"
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteRune('\n')

	// Split sequence into 80-character lines
	for i := 0; i < len(s.Bases); i += 80 {
		end := i + 80
		if end > len(s.Bases) {
			end = len(s.Bases)
		}
		sb.WriteString(s.Bases[i:end])
		sb.WriteRune('\n')
	}

	return sb.String()
}

// String returns a string representation of the sequence.
func (s *Sequence) String() string {
	if s.ID != "" {
		return fmt.Sprintf(">%s\n%s", s.ID, s.Bases)
	}
	return s.Bases
}

// Equal checks equality with another sequence.
func (s *Sequence) Equal(other *Sequence) bool {
	if other == nil {
		return false
	}
	return s.Bases == other.Bases && s.SeqType == other.SeqType
}
