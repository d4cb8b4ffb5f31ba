package errors

import (
	"regexp"
	"unicode"
)

// accessionRE matches the UniProtKB accession format: six or ten characters,
// e.g. "P69905", "Q5VSL9", "A0A024R1R8".
var accessionRE = regexp.MustCompile(
	`^([OPQ][0-9][A-Z0-9]{3}[0-9]|[A-NR-Z][0-9]([A-Z][A-Z0-9]{2}[0-9]){1,2})$`)

// ValidateAccession validates a UniProt accession for safety and correctness.
// It rejects strings that could be used for path traversal or URL injection
// before checking the UniProtKB accession pattern.
func ValidateAccession(acc string) error {
	if acc == "" {
		return New(ErrCodeInvalidAccession, "accession cannot be empty")
	}

	if len(acc) > 10 {
		return New(ErrCodeInvalidAccession, "accession too long (max 10 characters)")
	}

	for _, r := range acc {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidAccession, "accession contains control characters")
		}
	}

	if !accessionRE.MatchString(acc) {
		return New(ErrCodeInvalidAccession, "%q is not a valid UniProt accession", acc)
	}

	return nil
}

// ValidateSequenceLength validates a protein sequence length.
// Lengths must be positive; the upper bound guards against garbage input
// (no known protein exceeds ~36,000 residues).
func ValidateSequenceLength(length int) error {
	if length <= 0 {
		return New(ErrCodeInvalidInput, "sequence length must be positive, got %d", length)
	}
	if length > 100_000 {
		return New(ErrCodeInvalidInput, "sequence length %d exceeds maximum (100000)", length)
	}
	return nil
}
