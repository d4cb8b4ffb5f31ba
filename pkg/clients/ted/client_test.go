package ted

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/protviz/protviz/pkg/cache"
)

func TestFetchSummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/uniprot/summary/Q8NBP7" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"data": [
			{"uniprot_acc": "Q8NBP7", "ted_id": "Q8NBP7_TED01", "consensus_level": "high",
			 "chopping": "76-152_171-330", "cath_label": "3.40.50.200"},
			{"uniprot_acc": "Q8NBP7", "ted_id": "Q8NBP7_TED02", "consensus_level": "medium",
			 "chopping": "531-692", "cath_label": "-"}
		]}`))
	}))
	defer srv.Close()

	c := NewClient(cache.NewNullCache(), time.Hour)
	c.baseURL = srv.URL

	recs, err := c.FetchSummary(context.Background(), "Q8NBP7", false)
	if err != nil {
		t.Fatalf("FetchSummary: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].TEDID != "Q8NBP7_TED01" || recs[0].Chopping != "76-152_171-330" {
		t.Errorf("first record = %+v", recs[0])
	}
	if recs[1].CATHLabel != "-" {
		t.Errorf("second record = %+v", recs[1])
	}
}

func TestFetchSummaryNotFoundIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	c := NewClient(cache.NewNullCache(), time.Hour)
	c.baseURL = srv.URL

	recs, err := c.FetchSummary(context.Background(), "Q8NBP7", false)
	if err != nil {
		t.Fatalf("absent summary should not be an error: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("got %d records, want none", len(recs))
	}
}
