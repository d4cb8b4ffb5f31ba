// Package afdb fetches predicted structure metadata, per-residue confidence
// and AlphaMissense pathogenicity data from the AlphaFold Database.
package afdb

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/protviz/protviz/pkg/annotation"
	"github.com/protviz/protviz/pkg/cache"
	"github.com/protviz/protviz/pkg/clients"
)

// PredictionEntry is one model's metadata from the prediction endpoint.
type PredictionEntry struct {
	UniprotAccession string `json:"uniprotAccession"`
	LatestVersion    int    `json:"latestVersion"`
	AMAnnotationsURL string `json:"amAnnotationsUrl"`
}

// Client provides access to the AlphaFold DB API and its model files.
// All methods are safe for concurrent use.
type Client struct {
	*clients.Client
	baseURL  string
	filesURL string
}

// NewClient creates an AlphaFold DB client with the given cache backend.
func NewClient(store cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:   clients.NewClient(store, "afdb", cacheTTL, nil),
		baseURL:  "https://alphafold.ebi.ac.uk/api",
		filesURL: "https://alphafold.ebi.ac.uk/files",
	}
}

// FetchPrediction retrieves the model entries for a protein. Proteins without
// a predicted structure yield an empty slice, not an error.
func (c *Client) FetchPrediction(ctx context.Context, accession string, refresh bool) ([]PredictionEntry, error) {
	var entries []PredictionEntry
	err := c.Cached(ctx, "prediction:"+accession, refresh, &entries, func() error {
		url := fmt.Sprintf("%s/prediction/%s", c.baseURL, accession)
		if err := c.Get(ctx, url, &entries); err != nil {
			if errors.Is(err, clients.ErrNotFound) {
				return nil
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

type confidenceFile struct {
	ResidueNumber   []int     `json:"residueNumber"`
	ConfidenceScore []float64 `json:"confidenceScore"`
}

// FetchPLDDT retrieves the per-residue confidence scores for a protein's
// latest model. Proteins without a model yield an empty slice.
func (c *Client) FetchPLDDT(ctx context.Context, accession string, refresh bool) ([]annotation.PLDDTRecord, error) {
	entries, err := c.FetchPrediction(ctx, accession, refresh)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	version := entries[0].LatestVersion
	if version < 1 {
		version = 4
	}

	var recs []annotation.PLDDTRecord
	err = c.Cached(ctx, "plddt:"+accession, refresh, &recs, func() error {
		var file confidenceFile
		url := fmt.Sprintf("%s/AF-%s-F1-confidence_v%d.json", c.filesURL, accession, version)
		if err := c.Get(ctx, url, &file); err != nil {
			if errors.Is(err, clients.ErrNotFound) {
				return nil
			}
			return err
		}
		if len(file.ResidueNumber) != len(file.ConfidenceScore) {
			return fmt.Errorf("confidence file for %s: %d residues vs %d scores",
				accession, len(file.ResidueNumber), len(file.ConfidenceScore))
		}
		for i, res := range file.ResidueNumber {
			recs = append(recs, annotation.PLDDTRecord{
				ResidueNumber: res, PLDDT: file.ConfidenceScore[i],
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// FetchAlphaMissense downloads and parses the per-substitution pathogenicity
// CSV referenced by the protein's model entry. Proteins without AlphaMissense
// data yield an empty slice.
func (c *Client) FetchAlphaMissense(ctx context.Context, accession string, refresh bool) ([]annotation.AlphaMissenseRecord, error) {
	entries, err := c.FetchPrediction(ctx, accession, refresh)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 || entries[0].AMAnnotationsURL == "" {
		return nil, nil
	}

	var recs []annotation.AlphaMissenseRecord
	err = c.Cached(ctx, "missense:"+accession, refresh, &recs, func() error {
		body, err := c.GetText(ctx, entries[0].AMAnnotationsURL)
		if err != nil {
			if errors.Is(err, clients.ErrNotFound) {
				return nil
			}
			return err
		}
		parsed, err := ParseAlphaMissenseCSV(body)
		if err != nil {
			return err
		}
		recs = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// ParseAlphaMissenseCSV parses the published CSV format: a header line
// followed by protein_variant,am_pathogenicity,am_class rows where the
// variant encodes "<ref><position><alt>", e.g. "M1V".
func ParseAlphaMissenseCSV(data string) ([]annotation.AlphaMissenseRecord, error) {
	reader := csv.NewReader(strings.NewReader(data))
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("alphamissense csv: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	var recs []annotation.AlphaMissenseRecord
	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}
		ref, pos, alt, ok := splitVariant(row[0])
		if !ok {
			continue
		}
		score, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			continue
		}
		recs = append(recs, annotation.AlphaMissenseRecord{
			ResidueNumber: pos,
			RefAA:         ref,
			AltAA:         alt,
			Pathogenicity: score,
			Class:         row[2],
		})
	}
	return recs, nil
}

// splitVariant decomposes "M1V" into ref "M", position 1, alt "V".
func splitVariant(v string) (ref string, pos int, alt string, ok bool) {
	if len(v) < 3 {
		return "", 0, "", false
	}
	num, err := strconv.Atoi(v[1 : len(v)-1])
	if err != nil || num < 1 {
		return "", 0, "", false
	}
	return v[:1], num, v[len(v)-1:], true
}
