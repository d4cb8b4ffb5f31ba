// Package interpro fetches member-database signature matches from the
// InterPro REST API.
package interpro

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/protviz/protviz/pkg/annotation"
	"github.com/protviz/protviz/pkg/cache"
	"github.com/protviz/protviz/pkg/clients"
)

// MemberDatabases lists the source databases the API accepts.
var MemberDatabases = []string{
	"interpro", "pfam", "cathgene3d", "smart", "prosite", "panther", "cdd",
}

// EntryTypeLetter abbreviates an InterPro entry type for compact display.
func EntryTypeLetter(entryType string) string {
	switch entryType {
	case "domain":
		return "D"
	case "family":
		return "F"
	case "homologous_superfamily":
		return "H"
	case "repeat":
		return "R"
	case "site", "active_site", "binding_site", "conserved_site":
		return "S"
	case "ptm":
		return "P"
	default:
		return "U"
	}
}

// Client provides access to the InterPro REST API.
// All methods are safe for concurrent use.
type Client struct {
	*clients.Client
	baseURL string
}

// NewClient creates an InterPro client with the given cache backend.
func NewClient(store cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  clients.NewClient(store, "interpro", cacheTTL, nil),
		baseURL: "https://www.ebi.ac.uk/interpro/api",
	}
}

type matchResponse struct {
	Next    string `json:"next"`
	Results []struct {
		Metadata struct {
			Accession string `json:"accession"`
			Name      string `json:"name"`
			Type      string `json:"type"`
		} `json:"metadata"`
		Proteins []struct {
			EntryProteinLocations []struct {
				Fragments []struct {
					Start int `json:"start"`
					End   int `json:"end"`
				} `json:"fragments"`
			} `json:"entry_protein_locations"`
		} `json:"proteins"`
	} `json:"results"`
}

// FetchMatches retrieves all signatures of one member database matched on a
// protein, following pagination. A protein with no matches yields an empty
// slice, not an error.
func (c *Client) FetchMatches(ctx context.Context, db, accession string, refresh bool) ([]annotation.InterProRecord, error) {
	var recs []annotation.InterProRecord
	key := fmt.Sprintf("%s:%s", db, accession)
	err := c.Cached(ctx, key, refresh, &recs, func() error {
		url := fmt.Sprintf("%s/entry/%s/protein/uniprot/%s/?page_size=100", c.baseURL, db, accession)
		for url != "" {
			var page matchResponse
			if err := c.Get(ctx, url, &page); err != nil {
				if errors.Is(err, clients.ErrNotFound) {
					return nil
				}
				return err
			}
			recs = append(recs, flatten(page)...)
			url = page.Next
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func flatten(page matchResponse) []annotation.InterProRecord {
	var recs []annotation.InterProRecord
	for _, r := range page.Results {
		rec := annotation.InterProRecord{
			Accession: r.Metadata.Accession,
			Name:      r.Metadata.Name,
			EntryType: r.Metadata.Type,
		}
		for _, p := range r.Proteins {
			for _, loc := range p.EntryProteinLocations {
				for _, f := range loc.Fragments {
					rec.Locations = append(rec.Locations, annotation.Location{
						Start: f.Start, End: f.End,
					})
				}
			}
		}
		if len(rec.Locations) > 0 {
			recs = append(recs, rec)
		}
	}
	return recs
}
