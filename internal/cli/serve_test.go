package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/protviz/protviz/pkg/annotation"
	"github.com/protviz/protviz/pkg/cache"
	"github.com/protviz/protviz/pkg/clients/uniprot"
	"github.com/protviz/protviz/pkg/pipeline"
)

type stubSources struct{}

func (stubSources) FetchProtein(ctx context.Context, acc string, refresh bool) (*uniprot.ProteinInfo, error) {
	return &uniprot.ProteinInfo{Accession: acc, Name: "Hemoglobin subunit alpha", Length: 141}, nil
}

func (stubSources) FetchCoverage(ctx context.Context, acc string, refresh bool) ([]annotation.PDBCoverageRecord, error) {
	return []annotation.PDBCoverageRecord{{PDBID: "1a3n", UNPStart: 10, UNPEnd: 120}}, nil
}

func (stubSources) FetchLigands(ctx context.Context, acc string, refresh bool) ([]annotation.LigandRecord, error) {
	return nil, nil
}

func (stubSources) FetchSummary(ctx context.Context, acc string, refresh bool) ([]annotation.TEDRecord, error) {
	return nil, nil
}

func (stubSources) FetchPLDDT(ctx context.Context, acc string, refresh bool) ([]annotation.PLDDTRecord, error) {
	return nil, nil
}

func (stubSources) FetchAlphaMissense(ctx context.Context, acc string, refresh bool) ([]annotation.AlphaMissenseRecord, error) {
	return nil, nil
}

func (stubSources) FetchMatches(ctx context.Context, db, acc string, refresh bool) ([]annotation.InterProRecord, error) {
	return nil, nil
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	src := pipeline.Sources{
		UniProt: stubSources{}, PDBe: stubSources{}, TED: stubSources{},
		AFDB: stubSources{}, InterPro: stubSources{},
	}
	runner := pipeline.NewRunner(src, cache.NewNullCache(), nil, nil)
	srv := httptest.NewServer(newServer(runner, nil).routes())
	t.Cleanup(srv.Close)
	return srv
}

func TestServeHealthz(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestServeFigureGet(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/proteins/P69905/figure?tracks=pdb,axis")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q, want image/svg+xml", ct)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "Protein: P69905") {
		t.Error("response missing figure title")
	}
}

func TestServeFigureGetInvalidWindow(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/proteins/P69905/figure?start=50&end=10")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	var payload map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatal(err)
	}
	if payload["code"] != "INVALID_VIEW_WINDOW" {
		t.Errorf("code = %q, want INVALID_VIEW_WINDOW", payload["code"])
	}
}

func TestServeFigureGetBadParam(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/proteins/P69905/figure?start=abc")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestServeFigurePost(t *testing.T) {
	srv := testServer(t)

	body := `{"accession": "P69905", "tracks": ["pdb", "axis"], "formats": ["svg"]}`
	resp, err := http.Post(srv.URL+"/api/v1/figure", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q, want image/svg+xml", ct)
	}
}

func TestServeFigurePostBadJSON(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/figure", "application/json", strings.NewReader("{"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
