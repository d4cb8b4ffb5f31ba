package pipeline

import (
	"context"
	"time"

	"github.com/protviz/protviz/pkg/annotation"
	"github.com/protviz/protviz/pkg/cache"
	"github.com/protviz/protviz/pkg/clients/afdb"
	"github.com/protviz/protviz/pkg/clients/interpro"
	"github.com/protviz/protviz/pkg/clients/pdbe"
	"github.com/protviz/protviz/pkg/clients/ted"
	"github.com/protviz/protviz/pkg/clients/uniprot"
)

// The source interfaces mirror the client methods the pipeline consumes, so
// tests can substitute in-memory fakes for the network clients.

// ProteinSource resolves a protein's metadata.
type ProteinSource interface {
	FetchProtein(ctx context.Context, accession string, refresh bool) (*uniprot.ProteinInfo, error)
}

// StructureSource provides experimental structure data.
type StructureSource interface {
	FetchCoverage(ctx context.Context, accession string, refresh bool) ([]annotation.PDBCoverageRecord, error)
	FetchLigands(ctx context.Context, accession string, refresh bool) ([]annotation.LigandRecord, error)
}

// DomainSource provides consensus domain assignments.
type DomainSource interface {
	FetchSummary(ctx context.Context, accession string, refresh bool) ([]annotation.TEDRecord, error)
}

// ModelSource provides predicted-model score series.
type ModelSource interface {
	FetchPLDDT(ctx context.Context, accession string, refresh bool) ([]annotation.PLDDTRecord, error)
	FetchAlphaMissense(ctx context.Context, accession string, refresh bool) ([]annotation.AlphaMissenseRecord, error)
}

// SignatureSource provides member-database signature matches.
type SignatureSource interface {
	FetchMatches(ctx context.Context, db, accession string, refresh bool) ([]annotation.InterProRecord, error)
}

// Sources bundles the upstream data providers the pipeline draws from.
type Sources struct {
	UniProt  ProteinSource
	PDBe     StructureSource
	TED      DomainSource
	AFDB     ModelSource
	InterPro SignatureSource
}

// NewSources wires the real API clients, all sharing one cache backend.
func NewSources(store cache.Cache, ttl time.Duration) Sources {
	return Sources{
		UniProt:  uniprot.NewClient(store, ttl),
		PDBe:     pdbe.NewClient(store, ttl),
		TED:      ted.NewClient(store, ttl),
		AFDB:     afdb.NewClient(store, ttl),
		InterPro: interpro.NewClient(store, ttl),
	}
}
