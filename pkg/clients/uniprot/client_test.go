package uniprot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/protviz/protviz/pkg/cache"
	"github.com/protviz/protviz/pkg/clients"
)

func testClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := NewClient(cache.NewNullCache(), time.Hour)
	c.baseURL = srv.URL
	return c, srv
}

func TestFetchProtein(t *testing.T) {
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/P69905.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{
			"primaryAccession": "P69905",
			"proteinDescription": {"recommendedName": {"fullName": {"value": "Hemoglobin subunit alpha"}}},
			"sequence": {"length": 142}
		}`))
	})
	defer srv.Close()

	info, err := c.FetchProtein(context.Background(), "P69905", false)
	if err != nil {
		t.Fatalf("FetchProtein: %v", err)
	}
	if info.Accession != "P69905" || info.Length != 142 {
		t.Errorf("info = %+v", info)
	}
	if info.Name != "Hemoglobin subunit alpha" {
		t.Errorf("name = %q", info.Name)
	}
}

func TestFetchProteinNotFound(t *testing.T) {
	c, srv := testClient(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	defer srv.Close()

	_, err := c.FetchProtein(context.Background(), "P99999", false)
	if !errors.Is(err, clients.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestFetchProteinInvalidAccession(t *testing.T) {
	c := NewClient(cache.NewNullCache(), time.Hour)
	for _, acc := range []string{"", "notanaccession", "p69905", "12345"} {
		if _, err := c.FetchProtein(context.Background(), acc, false); err == nil {
			t.Errorf("accession %q should be rejected before any request", acc)
		}
	}
}

func TestFetchProteinUsesCache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"primaryAccession": "P69905", "sequence": {"length": 142}}`))
	}))
	defer srv.Close()

	store, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	c := NewClient(store, time.Hour)
	c.baseURL = srv.URL

	for i := 0; i < 2; i++ {
		if _, err := c.FetchProtein(context.Background(), "P69905", false); err != nil {
			t.Fatalf("FetchProtein #%d: %v", i+1, err)
		}
	}
	if calls != 1 {
		t.Errorf("server hit %d times, want 1 (second call cached)", calls)
	}

	if _, err := c.FetchProtein(context.Background(), "P69905", true); err != nil {
		t.Fatalf("FetchProtein refresh: %v", err)
	}
	if calls != 2 {
		t.Errorf("refresh should bypass cache, got %d calls", calls)
	}
}
