package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"vecstore/config"
	"vecstore/internal/adapter/cache"
	"vecstore/internal/adapter/embedding"
	"vecstore/internal/adapter/memstore"
	"vecstore/internal/domain"
	"vecstore/internal/port"
	"vecstore/internal/registry"
	"vecstore/internal/usecase"
)

var (
	runCollection string
	runDocuments  int
	runQuery      string
	runTopK       int
	runJSON       bool
	runSeed       uint64
	runNoProgress bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Populate a collection and run one search",
	Long: `Create a collection, insert synthetic documents, then search it once and
print the ranked results together with init and search timings.

Examples:
  vecstore run
  vecstore run -n 50000 -q "example query" -k 5 --json`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runCollection, "collection", "", "collection name (default from config)")
	runCmd.Flags().IntVarP(&runDocuments, "documents", "n", -1, "number of documents to insert (default from config)")
	runCmd.Flags().StringVarP(&runQuery, "query", "q", "example query", "query text (does not influence the synthetic query embedding)")
	runCmd.Flags().IntVarP(&runTopK, "top-k", "k", 0, "number of results (default from config)")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "output as JSON")
	runCmd.Flags().Uint64Var(&runSeed, "seed", 0, "seed for reproducible embeddings (default from config, 0 = random)")
	runCmd.Flags().BoolVar(&runNoProgress, "no-progress", false, "disable the progress bar")
}

type runOptions struct {
	Collection string
	Documents  int
	Query      string
	TopK       int
	Seed       uint64
	Progress   bool
	JSON       bool
}

// runReport is the JSON form of a run.
type runReport struct {
	Collection string          `json:"collection"`
	Query      string          `json:"query"`
	InitMS     int64           `json:"init_ms"`
	SearchMS   int64           `json:"search_ms"`
	Length     int             `json:"length"`
	Results    []domain.Result `json:"results"`
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	opts := runOptions{
		Collection: cfg.Collection.Name,
		Documents:  cfg.Populate.Documents,
		Query:      runQuery,
		TopK:       cfg.Collection.TopNResults,
		Seed:       cfg.Populate.Seed,
		Progress:   !runNoProgress,
		JSON:       runJSON,
	}
	if runCollection != "" {
		opts.Collection = runCollection
	}
	if runDocuments >= 0 {
		opts.Documents = runDocuments
	}
	if runTopK > 0 {
		opts.TopK = runTopK
	}
	if runSeed != 0 {
		opts.Seed = runSeed
	}

	return execute(cmd.Context(), cfg, GetLogger(), opts, cmd.OutOrStdout())
}

func newEmbedder(dimension int, seed uint64) port.Embedder {
	if seed == 0 {
		return embedding.NewRandomEmbedder(dimension)
	}
	return embedding.NewSeededRandomEmbedder(dimension, seed)
}

func execute(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts runOptions, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	dim := cfg.Collection.EmbeddingSize

	reg := registry.New(func(name string) *memstore.Collection {
		return memstore.NewCollection(name, dim, newEmbedder(dim, opts.Seed))
	})
	coll, err := reg.Create(opts.Collection)
	if err != nil {
		return err
	}

	var progress usecase.ProgressFunc
	if opts.Progress && opts.Documents > 0 {
		bar := progressbar.NewOptions(opts.Documents,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowBytes(false),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionSetDescription("[cyan]Inserting[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		)
		progress = func(processed, total int) {
			bar.Set(processed)
		}
	}

	populated, err := usecase.NewPopulateUseCase(coll, logger).Populate(ctx, opts.Documents, false, progress)
	if err != nil {
		return fmt.Errorf("populate failed: %w", err)
	}

	querySeed := opts.Seed
	if querySeed != 0 {
		querySeed++
	}
	var searcher port.Searcher = usecase.NewSearchUseCase(coll, newEmbedder(dim, querySeed), usecase.SearchOptions{
		TopN:              opts.TopK,
		Workers:           cfg.Search.Workers,
		ParallelThreshold: cfg.Search.ParallelThreshold,
		Logger:            logger,
	})
	if cfg.Search.CacheSize > 0 {
		qc, err := cache.NewQueryCache(cfg.Search.CacheSize, 0)
		if err != nil {
			return fmt.Errorf("failed to create query cache: %w", err)
		}
		searcher = cache.NewCachedSearcher(searcher, coll, coll.Name(), opts.TopK, qc)
	}

	start := time.Now()
	results, err := searcher.Search(ctx, opts.Query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	searchTime := time.Since(start)

	if opts.JSON {
		report := runReport{
			Collection: coll.Name(),
			Query:      opts.Query,
			InitMS: populated.Duration.Milliseconds(),
			SearchMS:   searchTime.Milliseconds(),
			Length:     coll.Len(),
			Results:    results,
		}
		output, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(output))
		return nil
	}

	fmt.Fprintf(out, "Init time: %d\n", populated.Duration.Milliseconds())
	fmt.Fprintf(out, "Search time: %d\n", searchTime.Milliseconds())
	if len(results) == 0 {
		fmt.Fprintln(out, "No results found.")
	}
	for _, r := range results {
		fmt.Fprintf(out, "Document ID: %s, Similarity: %f\n", r.ID, r.Score)
	}
	fmt.Fprintf(out, "Collection length : %d\n", coll.Len())
	return nil
}
