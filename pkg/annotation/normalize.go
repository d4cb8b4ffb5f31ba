package annotation

import (
	"sort"
	"strconv"
	"strings"

	"github.com/protviz/protviz/pkg/errors"
)

// checkSpan validates an inclusive interval against the sequence bounds.
// Coordinates outside [1, seqLen] or inverted intervals are rejected rather
// than clamped; clipping to the view window is a separate rendering step.
func checkSpan(start, end, seqLen int) error {
	if start > end {
		return errors.New(errors.ErrCodeInvalidCoordinate,
			"start %d greater than end %d", start, end)
	}
	if start < 1 || end > seqLen {
		return errors.New(errors.ErrCodeInvalidCoordinate,
			"interval %d-%d outside sequence 1-%d", start, end, seqLen)
	}
	return nil
}

func checkPosition(pos, seqLen int) error {
	if pos < 1 || pos > seqLen {
		return errors.New(errors.ErrCodeInvalidCoordinate,
			"position %d outside sequence 1-%d", pos, seqLen)
	}
	return nil
}

// NormalizePDBCoverage converts PDBe coverage records into Range annotations.
// Input order is preserved so downstream lane allocation stays deterministic.
func NormalizePDBCoverage(recs []PDBCoverageRecord, seqLen int) ([]Annotation, []RecordError) {
	var anns []Annotation
	var errs []RecordError
	for i, r := range recs {
		if r.PDBID == "" {
			errs = append(errs, RecordError{i, errors.New(errors.ErrCodeMalformedRecord,
				"missing pdb_id")})
			continue
		}
		if err := checkSpan(r.UNPStart, r.UNPEnd, seqLen); err != nil {
			errs = append(errs, RecordError{i, err})
			continue
		}
		a := NewRange(r.UNPStart, r.UNPEnd)
		a.Label = r.PDBID
		a.GroupKey = r.PDBID
		anns = append(anns, a)
	}
	return anns, errs
}

// NormalizeLigands flattens ligand interaction records into one Range per
// binding-site segment, all segments of a ligand sharing its GroupKey.
// A record without site segments contributes nothing; a record without a
// ligand id is malformed.
func NormalizeLigands(recs []LigandRecord, seqLen int) ([]Annotation, []RecordError) {
	var anns []Annotation
	var errs []RecordError
	for i, r := range recs {
		if r.LigandID == "" {
			errs = append(errs, RecordError{i, errors.New(errors.ErrCodeMalformedRecord,
				"missing ligand_id")})
			continue
		}
		bad := false
		segs := make([]Annotation, 0, len(r.Sites))
		for _, s := range r.Sites {
			if err := checkSpan(s.StartIndex, s.EndIndex, seqLen); err != nil {
				errs = append(errs, RecordError{i, err})
				bad = true
				break
			}
			a := NewRange(s.StartIndex, s.EndIndex)
			a.Label = r.LigandID
			a.GroupKey = r.LigandID
			segs = append(segs, a)
		}
		if !bad {
			anns = append(anns, segs...)
		}
	}
	return anns, errs
}

// ParseChopping parses a TED chopping string ("12-148_200-251") into
// inclusive segments. An empty string or any unparseable segment fails the
// whole chopping.
func ParseChopping(chopping string) ([][2]int, error) {
	if chopping == "" {
		return nil, errors.New(errors.ErrCodeMalformedRecord, "empty chopping string")
	}
	var segs [][2]int
	for _, part := range strings.Split(chopping, "_") {
		lo, hi, ok := strings.Cut(part, "-")
		if !ok {
			return nil, errors.New(errors.ErrCodeMalformedRecord,
				"chopping segment %q is not a start-end range", part)
		}
		s, err1 := strconv.Atoi(lo)
		e, err2 := strconv.Atoi(hi)
		if err1 != nil || err2 != nil {
			return nil, errors.New(errors.ErrCodeMalformedRecord,
				"chopping segment %q has non-numeric bounds", part)
		}
		segs = append(segs, [2]int{s, e})
	}
	return segs, nil
}

// NormalizeTED expands TED records into Range annotations, one per chopping
// segment, all segments of an entry sharing its GroupKey.
func NormalizeTED(recs []TEDRecord, seqLen int) ([]Annotation, []RecordError) {
	var anns []Annotation
	var errs []RecordError
	for i, r := range recs {
		segs, err := ParseChopping(r.Chopping)
		if err != nil {
			errs = append(errs, RecordError{i, err})
			continue
		}
		key := r.TEDID
		if key == "" {
			key = r.UniprotAcc + "_TED" + strconv.Itoa(i+1)
		}
		bad := false
		out := make([]Annotation, 0, len(segs))
		for _, seg := range segs {
			if err := checkSpan(seg[0], seg[1], seqLen); err != nil {
				errs = append(errs, RecordError{i, err})
				bad = true
				break
			}
			a := NewRange(seg[0], seg[1])
			a.GroupKey = key
			a.Label = tedLabel(r)
			out = append(out, a)
		}
		if !bad {
			anns = append(anns, out...)
		}
	}
	return anns, errs
}

func tedLabel(r TEDRecord) string {
	if r.CATHLabel == "" || r.CATHLabel == "-" {
		return "Not assigned"
	}
	return r.CATHLabel
}

// NormalizePLDDT converts per-residue pLDDT records into scored annotations
// with Confidence values in [0, 100].
func NormalizePLDDT(recs []PLDDTRecord, seqLen int) ([]Annotation, []RecordError) {
	var anns []Annotation
	var errs []RecordError
	for i, r := range recs {
		if err := checkPosition(r.ResidueNumber, seqLen); err != nil {
			errs = append(errs, RecordError{i, err})
			continue
		}
		if r.PLDDT < 0 || r.PLDDT > 100 {
			errs = append(errs, RecordError{i, errors.New(errors.ErrCodeMalformedRecord,
				"plddt %.2f outside [0, 100]", r.PLDDT)})
			continue
		}
		anns = append(anns, NewScored(r.ResidueNumber, r.PLDDT, Confidence))
	}
	return anns, errs
}

// NormalizeAlphaMissense averages per-substitution pathogenicity predictions
// into one scored annotation per residue, sorted by position. Records with an
// out-of-range score or position are reported and excluded from the average.
func NormalizeAlphaMissense(recs []AlphaMissenseRecord, seqLen int) ([]Annotation, []RecordError) {
	var errs []RecordError
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for i, r := range recs {
		if err := checkPosition(r.ResidueNumber, seqLen); err != nil {
			errs = append(errs, RecordError{i, err})
			continue
		}
		if r.Pathogenicity < 0 || r.Pathogenicity > 1 {
			errs = append(errs, RecordError{i, errors.New(errors.ErrCodeMalformedRecord,
				"am_pathogenicity %.3f outside [0, 1]", r.Pathogenicity)})
			continue
		}
		sums[r.ResidueNumber] += r.Pathogenicity
		counts[r.ResidueNumber]++
	}

	residues := make([]int, 0, len(sums))
	for res := range sums {
		residues = append(residues, res)
	}
	sort.Ints(residues)

	anns := make([]Annotation, 0, len(residues))
	for _, res := range residues {
		anns = append(anns, NewScored(res, sums[res]/float64(counts[res]), Pathogenicity))
	}
	return anns, errs
}

// NormalizeInterPro converts member-database signature records into Range
// annotations labeled "ACCESSION name [DB]". The member database name is part
// of the label contract; records normalized without one are malformed.
func NormalizeInterPro(recs []InterProRecord, dbName string, seqLen int) ([]Annotation, []RecordError) {
	var anns []Annotation
	var errs []RecordError
	db := strings.ToUpper(dbName)
	for i, r := range recs {
		if db == "" {
			errs = append(errs, RecordError{i, errors.New(errors.ErrCodeMalformedRecord,
				"missing source database name for label")})
			continue
		}
		if r.Accession == "" {
			errs = append(errs, RecordError{i, errors.New(errors.ErrCodeMalformedRecord,
				"missing accession")})
			continue
		}
		if len(r.Locations) == 0 {
			errs = append(errs, RecordError{i, errors.New(errors.ErrCodeMalformedRecord,
				"signature %s has no locations", r.Accession)})
			continue
		}
		label := r.Accession
		if r.Name != "" {
			label += " " + r.Name
		}
		label += " [" + db + "]"

		bad := false
		out := make([]Annotation, 0, len(r.Locations))
		for _, loc := range r.Locations {
			if err := checkSpan(loc.Start, loc.End, seqLen); err != nil {
				errs = append(errs, RecordError{i, err})
				bad = true
				break
			}
			a := NewRange(loc.Start, loc.End)
			a.Label = label
			a.GroupKey = r.Accession
			out = append(out, a)
		}
		if !bad {
			anns = append(anns, out...)
		}
	}
	return anns, errs
}

// NormalizeCustom converts user-authored records into Range or Point
// annotations. A record keyed by position becomes a point with the marker
// display default; a record keyed by start/end stays a bar even when
// start == end. A record with neither is malformed, as is an inverted
// interval (no silent swapping).
func NormalizeCustom(recs []CustomRecord, seqLen int) ([]Annotation, []RecordError) {
	var anns []Annotation
	var errs []RecordError
	for i, r := range recs {
		a, err := normalizeCustomRecord(r, seqLen)
		if err != nil {
			errs = append(errs, RecordError{i, err})
			continue
		}
		anns = append(anns, a)
	}
	return anns, errs
}

func normalizeCustomRecord(r CustomRecord, seqLen int) (Annotation, error) {
	var a Annotation
	switch {
	case r.Position != 0:
		if err := checkPosition(r.Position, seqLen); err != nil {
			return Annotation{}, err
		}
		a = NewPoint(r.Position)
	case r.Start != 0 || r.End != 0:
		if r.Start == 0 || r.End == 0 {
			return Annotation{}, errors.New(errors.ErrCodeMalformedRecord,
				"start/end must both be set (got start=%d end=%d)", r.Start, r.End)
		}
		if err := checkSpan(r.Start, r.End, seqLen); err != nil {
			return Annotation{}, err
		}
		a = NewRange(r.Start, r.End)
	default:
		return Annotation{}, errors.New(errors.ErrCodeMalformedRecord,
			"record needs either position or start/end")
	}

	switch DisplayType(r.DisplayType) {
	case "":
		// keep the kind's default
	case DisplayBar, DisplayMarker:
		a.Display = DisplayType(r.DisplayType)
	default:
		return Annotation{}, errors.New(errors.ErrCodeMalformedRecord,
			"unknown display_type %q", r.DisplayType)
	}

	a.Label = r.Label
	a.GroupKey = r.RowLabel
	a.Color = r.Color
	a.MarkerSymbol = r.MarkerSymbol
	a.MarkerSize = r.MarkerSize
	return a, nil
}
