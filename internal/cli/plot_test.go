package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		format  string
		formats int
		want    string
	}{
		{"default", "", "svg", 1, "P69905_plot.svg"},
		{"explicit single", "out/figure.svg", "svg", 1, "out/figure.svg"},
		{"explicit mismatched ext", "figure.img", "png", 1, "figure.img"},
		{"base path multiple", "out/figure.svg", "pdf", 2, "out/figure.pdf"},
		{"base path without ext", "out/figure", "png", 3, "out/figure.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := artifactPath(tt.output, "P69905", tt.format, tt.formats)
			if got != tt.want {
				t.Errorf("artifactPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{"svg,png,pdf", []string{"svg", "png", "pdf"}},
		{"pdb, ted", []string{"pdb", "ted"}},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAppendCustomTrack(t *testing.T) {
	tests := []struct {
		name   string
		tracks []string
		want   []string
	}{
		{"defaults get custom above axis", nil, []string{"pdb", "ted", "alphafold", "custom", "axis"}},
		{"axis stays last", []string{"pdb", "axis"}, []string{"pdb", "custom", "axis"}},
		{"no axis appends", []string{"pdb"}, []string{"pdb", "custom"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := appendCustomTrack(tt.tracks); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("appendCustomTrack(%v) = %v, want %v", tt.tracks, got, tt.want)
			}
		})
	}
}

func TestLoadCustomFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "annotations.toml")
	content := `label = "Mutagenesis"

[[annotation]]
start = 10
end = 30
row_label = "Regions"
label = "binding"

[[annotation]]
position = 55
row_label = "Sites"
marker_symbol = "^"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	recs, label, err := loadCustomFile(path)
	if err != nil {
		t.Fatalf("loadCustomFile: %v", err)
	}
	if label != "Mutagenesis" {
		t.Errorf("label = %q, want Mutagenesis", label)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}
	if recs[0].Start != 10 || recs[0].End != 30 || recs[0].RowLabel != "Regions" {
		t.Errorf("first record = %+v", recs[0])
	}
	if recs[1].Position != 55 || recs[1].MarkerSymbol != "^" {
		t.Errorf("second record = %+v", recs[1])
	}
}

func TestLoadCustomFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.toml")
	if err := os.WriteFile(path, []byte(`label = "nothing"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := loadCustomFile(path); err == nil {
		t.Error("expected an error for a file without annotations")
	}
}

func TestLoadCustomFileMissing(t *testing.T) {
	if _, _, err := loadCustomFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
