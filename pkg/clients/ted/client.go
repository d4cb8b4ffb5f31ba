// Package ted fetches consensus domain assignments from The Encyclopedia of
// Domains (TED) API.
package ted

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/protviz/protviz/pkg/annotation"
	"github.com/protviz/protviz/pkg/cache"
	"github.com/protviz/protviz/pkg/clients"
)

// Client provides access to the TED API.
// All methods are safe for concurrent use.
type Client struct {
	*clients.Client
	baseURL string
}

// NewClient creates a TED client with the given cache backend.
func NewClient(store cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  clients.NewClient(store, "ted", cacheTTL, nil),
		baseURL: "https://ted.cathdb.info/api/v1",
	}
}

type summaryResponse struct {
	Data []struct {
		UniprotAcc     string `json:"uniprot_acc"`
		TEDID          string `json:"ted_id"`
		ConsensusLevel string `json:"consensus_level"`
		Chopping       string `json:"chopping"`
		CATHLabel      string `json:"cath_label"`
	} `json:"data"`
}

// FetchSummary retrieves a protein's TED consensus domains. A protein absent
// from TED yields an empty slice, not an error.
func (c *Client) FetchSummary(ctx context.Context, accession string, refresh bool) ([]annotation.TEDRecord, error) {
	var recs []annotation.TEDRecord
	err := c.Cached(ctx, accession, refresh, &recs, func() error {
		var data summaryResponse
		url := fmt.Sprintf("%s/uniprot/summary/%s", c.baseURL, accession)
		if err := c.Get(ctx, url, &data); err != nil {
			if errors.Is(err, clients.ErrNotFound) {
				return nil
			}
			return err
		}
		for _, d := range data.Data {
			recs = append(recs, annotation.TEDRecord{
				UniprotAcc:     d.UniprotAcc,
				TEDID:          d.TEDID,
				ConsensusLevel: d.ConsensusLevel,
				Chopping:       d.Chopping,
				CATHLabel:      d.CATHLabel,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}
