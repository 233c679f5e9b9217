package sequence

import "fmt"

// SequenceError is the base error type for sequence operations.
type SequenceError interface {
	error
	IsSequenceError()
}

// InvalidBaseError is returned when a character outside the sequence
// alphabet is encountered.
type InvalidBaseError struct {
	Position int
	Found    rune
}

func (e *InvalidBaseError) Error() string {
	return fmt.Sprintf("invalid base '%c' at position %d", e.Found, e.Position)
}

func (e *InvalidBaseError) IsSequenceError() {}

// ValidateDNA validates that a string contains only valid DNA bases.
func ValidateDNA(bases string) error {
	for i, b := range bases {
		if !ValidDNABases[b] {
			return &InvalidBaseError{Position: i, Found: b}
		}
	}
	return nil
}

// ValidateRNA validates that a string contains only valid RNA bases.
func ValidateRNA(bases string) error {
	for i, b := range bases {
		if !ValidRNABases[b] {
			return &InvalidBaseError{Position: i, Found: b}
		}
	}
	return nil
}

// ValidateProtein validates that a string contains only amino-acid codes.
func ValidateProtein(bases string) error {
	for i, b := range bases {
		if !ValidAminoAcids[b] {
			return &InvalidBaseError{Position: i, Found: b}
		}
	}
	return nil
}

// IsValidDNABase checks if a character is a valid DNA base.
func IsValidDNABase(c rune) bool {
	return ValidDNABases[c]
}

// IsValidRNABase checks if a character is a valid RNA base.
func IsValidRNABase(c rune) bool {
	return ValidRNABases[c]
}
