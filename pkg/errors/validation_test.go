package errors

import "testing"

func TestValidateAccession(t *testing.T) {
	tests := []struct {
		name    string
		acc     string
		wantErr bool
	}{
		{name: "classic six-char", acc: "P69905", wantErr: false},
		{name: "Q accession", acc: "Q5VSL9", wantErr: false},
		{name: "ten-char accession", acc: "A0A024R1R8", wantErr: false},
		{name: "empty", acc: "", wantErr: true},
		{name: "too long", acc: "A0A024R1R8X", wantErr: true},
		{name: "lowercase", acc: "p69905", wantErr: true},
		{name: "path traversal", acc: "../P6990", wantErr: true},
		{name: "pdb id", acc: "1ABC", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAccession(tt.acc)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateAccession(%q) error = %v, wantErr %v", tt.acc, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidAccession) {
				t.Errorf("error code = %q, want %q", GetCode(err), ErrCodeInvalidAccession)
			}
		})
	}
}

func TestValidateSequenceLength(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantErr bool
	}{
		{name: "single residue", length: 1, wantErr: false},
		{name: "typical protein", length: 141, wantErr: false},
		{name: "titin-scale", length: 35991, wantErr: false},
		{name: "zero", length: 0, wantErr: true},
		{name: "negative", length: -5, wantErr: true},
		{name: "absurd", length: 1_000_000, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSequenceLength(tt.length)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSequenceLength(%d) error = %v, wantErr %v", tt.length, err, tt.wantErr)
			}
		})
	}
}
