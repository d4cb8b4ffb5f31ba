// Package uniprot fetches protein metadata from the UniProtKB REST API.
package uniprot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/protviz/protviz/pkg/cache"
	"github.com/protviz/protviz/pkg/clients"
	pverrors "github.com/protviz/protviz/pkg/errors"
)

// ProteinInfo holds the subset of UniProt metadata the pipeline needs.
type ProteinInfo struct {
	Accession string `json:"accession"`
	Name      string `json:"name"`
	Length    int    `json:"length"`
}

// Client provides access to the UniProtKB REST API.
// All methods are safe for concurrent use.
type Client struct {
	*clients.Client
	baseURL string
}

// NewClient creates a UniProt client with the given cache backend.
func NewClient(store cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  clients.NewClient(store, "uniprot", cacheTTL, nil),
		baseURL: "https://rest.uniprot.org/uniprotkb",
	}
}

type apiResponse struct {
	PrimaryAccession   string `json:"primaryAccession"`
	ProteinDescription struct {
		RecommendedName struct {
			FullName struct {
				Value string `json:"value"`
			} `json:"fullName"`
		} `json:"recommendedName"`
	} `json:"proteinDescription"`
	Sequence struct {
		Length int `json:"length"`
	} `json:"sequence"`
}

// FetchProtein retrieves a protein's name and sequence length. The accession
// is validated before any network traffic.
func (c *Client) FetchProtein(ctx context.Context, accession string, refresh bool) (*ProteinInfo, error) {
	if err := pverrors.ValidateAccession(accession); err != nil {
		return nil, err
	}

	var info ProteinInfo
	err := c.Cached(ctx, accession, refresh, &info, func() error {
		return c.fetch(ctx, accession, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) fetch(ctx context.Context, accession string, info *ProteinInfo) error {
	var data apiResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/%s.json", c.baseURL, accession), &data); err != nil {
		if errors.Is(err, clients.ErrNotFound) {
			return fmt.Errorf("%w: uniprot entry %s", err, accession)
		}
		return err
	}
	if data.Sequence.Length < 1 {
		return fmt.Errorf("uniprot entry %s has no sequence length", accession)
	}
	*info = ProteinInfo{
		Accession: data.PrimaryAccession,
		Name:      data.ProteinDescription.RecommendedName.FullName.Value,
		Length:    data.Sequence.Length,
	}
	if info.Accession == "" {
		info.Accession = accession
	}
	return nil
}
