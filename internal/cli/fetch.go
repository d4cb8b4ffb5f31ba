package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/protviz/protviz/pkg/annotation"
	"github.com/protviz/protviz/pkg/clients/interpro"
	"github.com/protviz/protviz/pkg/pipeline"
)

// fetchOpts holds the command-line flags for the fetch command.
type fetchOpts struct {
	refresh    bool   // bypass the cache
	asJSON     bool   // emit raw records as JSON instead of a summary
	interproDB string // member database for the interpro source
	store      storeFlags
}

// newFetchCmd creates the fetch command for inspecting raw source records.
// It is mainly a debugging aid: it shows what the plot command would feed
// into the normalizers, without composing a figure.
func newFetchCmd() *cobra.Command {
	opts := fetchOpts{interproDB: pipeline.DefaultInterProDB}

	cmd := &cobra.Command{
		Use:   "fetch [source] [accession]",
		Short: "Print the raw annotation records for one source",
		Long: `Print the raw annotation records for one source.

Sources: protein, pdb, ligands, ted, plddt, alphamissense, interpro.

Records are printed as fetched, before validation, so this shows malformed
entries that plot would reject with a warning.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd.Context(), args[0], args[1], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the cache and refetch")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "emit records as JSON")
	cmd.Flags().StringVar(&opts.interproDB, "interpro-db", opts.interproDB, "InterPro member database for the interpro source")
	opts.store.addFlags(cmd)

	return cmd
}

func runFetch(ctx context.Context, source, accession string, opts *fetchOpts) error {
	store, err := opts.store.open(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	src := pipeline.NewSources(store, pipeline.DefaultCacheTTL)
	p := newProgress(loggerFromContext(ctx))

	switch source {
	case "protein":
		info, err := src.UniProt.FetchProtein(ctx, accession, opts.refresh)
		if err != nil {
			return fmt.Errorf("fetch protein %s: %w", accession, err)
		}
		if opts.asJSON {
			return emitJSON(info)
		}
		printKeyValue("Accession", info.Accession)
		printKeyValue("Name", info.Name)
		printKeyValue("Length", fmt.Sprintf("%d aa", info.Length))
		return nil

	case "pdb":
		recs, err := src.PDBe.FetchCoverage(ctx, accession, opts.refresh)
		if err != nil {
			return fmt.Errorf("fetch coverage %s: %w", accession, err)
		}
		if opts.asJSON {
			return emitJSON(recs)
		}
		for _, rec := range recs {
			printDetail("%s  %d-%d", rec.PDBID, rec.UNPStart, rec.UNPEnd)
		}
		p.done(fmt.Sprintf("Fetched %d structures", len(recs)))
		return nil

	case "ligands":
		recs, err := src.PDBe.FetchLigands(ctx, accession, opts.refresh)
		if err != nil {
			return fmt.Errorf("fetch ligands %s: %w", accession, err)
		}
		if opts.asJSON {
			return emitJSON(recs)
		}
		for _, rec := range recs {
			segs := make([]string, 0, len(rec.Sites))
			for _, s := range rec.Sites {
				segs = append(segs, fmt.Sprintf("%d-%d", s.StartIndex, s.EndIndex))
			}
			printDetail("%s (%s)  %s", rec.LigandID, rec.PDBID, strings.Join(segs, " "))
		}
		p.done(fmt.Sprintf("Fetched %d ligand records", len(recs)))
		return nil

	case "ted":
		recs, err := src.TED.FetchSummary(ctx, accession, opts.refresh)
		if err != nil {
			return fmt.Errorf("fetch domains %s: %w", accession, err)
		}
		if opts.asJSON {
			return emitJSON(recs)
		}
		for _, rec := range recs {
			printDetail("%s", formatTEDRecord(rec))
		}
		p.done(fmt.Sprintf("Fetched %d domains", len(recs)))
		return nil

	case "plddt":
		recs, err := src.AFDB.FetchPLDDT(ctx, accession, opts.refresh)
		if err != nil {
			return fmt.Errorf("fetch plddt %s: %w", accession, err)
		}
		if opts.asJSON {
			return emitJSON(recs)
		}
		p.done(fmt.Sprintf("Fetched %d per-residue scores", len(recs)))
		return nil

	case "alphamissense":
		recs, err := src.AFDB.FetchAlphaMissense(ctx, accession, opts.refresh)
		if err != nil {
			return fmt.Errorf("fetch alphamissense %s: %w", accession, err)
		}
		if opts.asJSON {
			return emitJSON(recs)
		}
		p.done(fmt.Sprintf("Fetched %d substitution scores", len(recs)))
		return nil

	case "interpro":
		recs, err := src.InterPro.FetchMatches(ctx, opts.interproDB, accession, opts.refresh)
		if err != nil {
			return fmt.Errorf("fetch %s matches %s: %w", opts.interproDB, accession, err)
		}
		if opts.asJSON {
			return emitJSON(recs)
		}
		for _, rec := range recs {
			segs := make([]string, 0, len(rec.Locations))
			for _, loc := range rec.Locations {
				segs = append(segs, fmt.Sprintf("%d-%d", loc.Start, loc.End))
			}
			printDetail("[%s] %s %s  %s",
				interpro.EntryTypeLetter(rec.EntryType), rec.Accession, rec.Name, strings.Join(segs, " "))
		}
		p.done(fmt.Sprintf("Fetched %d signatures", len(recs)))
		return nil

	default:
		return fmt.Errorf("unknown source %q (must be protein, pdb, ligands, ted, plddt, alphamissense, or interpro)", source)
	}
}

// formatTEDRecord summarizes one domain assignment, including how much
// consensus backs it.
func formatTEDRecord(rec annotation.TEDRecord) string {
	level := rec.ConsensusLevel
	if level == "" {
		level = "unknown"
	}
	return fmt.Sprintf("%s  %s  CATH %s  consensus %s",
		rec.TEDID, rec.Chopping, rec.CATHLabel, level)
}

func emitJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
