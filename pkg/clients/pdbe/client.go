// Package pdbe fetches experimental structure coverage and ligand binding
// sites from the PDBe graph API.
package pdbe

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/protviz/protviz/pkg/annotation"
	"github.com/protviz/protviz/pkg/cache"
	"github.com/protviz/protviz/pkg/clients"
)

// Client provides access to the PDBe graph API.
// All methods are safe for concurrent use.
type Client struct {
	*clients.Client
	baseURL string
}

// NewClient creates a PDBe client with the given cache backend.
func NewClient(store cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  clients.NewClient(store, "pdbe", cacheTTL, nil),
		baseURL: "https://www.ebi.ac.uk/pdbe/graph-api",
	}
}

// The graph API keys every response by the queried accession (lower case).

type coverageResponse map[string][]struct {
	PDBID    string `json:"pdb_id"`
	UNPStart int    `json:"unp_start"`
	UNPEnd   int    `json:"unp_end"`
}

type ligandResponse map[string][]struct {
	LigandID string                   `json:"ligand_id"`
	PDBID    string                   `json:"pdb_id"`
	Sites    []annotation.SiteSegment `json:"binding_site_uniprot_residues"`
}

// FetchCoverage retrieves the PDB structures covering a UniProt sequence.
// A protein with no structures yields an empty slice, not an error.
func (c *Client) FetchCoverage(ctx context.Context, accession string, refresh bool) ([]annotation.PDBCoverageRecord, error) {
	var recs []annotation.PDBCoverageRecord
	err := c.Cached(ctx, "coverage:"+accession, refresh, &recs, func() error {
		var data coverageResponse
		url := fmt.Sprintf("%s/mappings/best_structures/%s", c.baseURL, accession)
		if err := c.Get(ctx, url, &data); err != nil {
			if errors.Is(err, clients.ErrNotFound) {
				return nil // no structures for this protein
			}
			return err
		}
		for _, r := range data[strings.ToLower(accession)] {
			recs = append(recs, annotation.PDBCoverageRecord{
				PDBID: r.PDBID, UNPStart: r.UNPStart, UNPEnd: r.UNPEnd,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// FetchLigands retrieves ligand binding-site records for a protein.
// A protein with no ligand data yields an empty slice, not an error.
func (c *Client) FetchLigands(ctx context.Context, accession string, refresh bool) ([]annotation.LigandRecord, error) {
	var recs []annotation.LigandRecord
	err := c.Cached(ctx, "ligands:"+accession, refresh, &recs, func() error {
		var data ligandResponse
		url := fmt.Sprintf("%s/uniprot/ligand_sites/%s", c.baseURL, accession)
		if err := c.Get(ctx, url, &data); err != nil {
			if errors.Is(err, clients.ErrNotFound) {
				return nil
			}
			return err
		}
		for _, r := range data[strings.ToLower(accession)] {
			recs = append(recs, annotation.LigandRecord{
				LigandID: r.LigandID, PDBID: r.PDBID, Sites: r.Sites,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}
