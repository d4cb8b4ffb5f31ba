package annotation

// Source record types form the contract between the data-retrieval clients
// and the normalizers. Field names mirror the upstream API payloads so the
// clients can decode responses directly into them.

// PDBCoverageRecord is one structure's coverage of a UniProt sequence,
// as returned by the PDBe graph API.
type PDBCoverageRecord struct {
	PDBID    string `json:"pdb_id"`
	UNPStart int    `json:"unp_start"`
	UNPEnd   int    `json:"unp_end"`
}

// SiteSegment is one contiguous run of binding-site residues.
type SiteSegment struct {
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

// LigandRecord describes the binding sites of one ligand in one PDB entry.
type LigandRecord struct {
	LigandID string        `json:"ligand_id"`
	PDBID    string        `json:"pdb_id"`
	Sites    []SiteSegment `json:"binding_site_uniprot_residues"`
}

// TEDRecord is one TED consensus domain assignment. Chopping encodes the
// domain's segments as "-"-delimited ranges separated by "_",
// e.g. "12-148_200-251".
type TEDRecord struct {
	UniprotAcc     string `json:"uniprot_acc"`
	TEDID          string `json:"ted_id"`
	ConsensusLevel string `json:"consensus_level"`
	Chopping       string `json:"chopping"`
	CATHLabel      string `json:"cath_label"`
}

// PLDDTRecord is one residue's predicted confidence from AlphaFold DB.
type PLDDTRecord struct {
	ResidueNumber int     `json:"residue_number"`
	PLDDT         float64 `json:"plddt"`
}

// AlphaMissenseRecord is one substitution's pathogenicity prediction.
// Multiple records exist per residue (one per substitution); the normalizer
// averages them into a single per-residue score.
type AlphaMissenseRecord struct {
	ResidueNumber int     `json:"residue_number"`
	RefAA         string  `json:"ref_aa"`
	AltAA         string  `json:"alt_aa"`
	Pathogenicity float64 `json:"am_pathogenicity"`
	Class         string  `json:"am_class"`
}

// Location is one start/end segment of an InterPro signature match.
type Location struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// InterProRecord is one member-database signature matched on a protein.
type InterProRecord struct {
	Accession   string     `json:"accession"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	EntryType   string     `json:"entry_type"`
	Locations   []Location `json:"locations"`
}

// CustomRecord is a user-authored annotation row. Either Position or the
// Start/End pair must be set; the zero value means "absent" since valid
// sequence positions start at 1. Optional display fields default per the
// track's configuration.
type CustomRecord struct {
	Start    int `json:"start" toml:"start"`
	End      int `json:"end" toml:"end"`
	Position int `json:"position" toml:"position"`

	Label        string  `json:"label" toml:"label"`
	RowLabel     string  `json:"row_label" toml:"row_label"`
	Color        string  `json:"color" toml:"color"`
	DisplayType  string  `json:"display_type" toml:"display_type"`
	MarkerSymbol string  `json:"marker_symbol" toml:"marker_symbol"`
	MarkerSize   float64 `json:"marker_size" toml:"marker_size"`
}
