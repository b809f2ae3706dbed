package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"vecstore/internal/adapter/embedding"
	"vecstore/internal/adapter/memstore"
	"vecstore/internal/domain"
	"vecstore/internal/usecase"
)

func main() {
	sizes := flag.String("n", "10000,100000,1000000", "Comma separated collection sizes")
	dim := flag.Int("dim", 768, "Embedding dimension")
	topK := flag.Int("k", 10, "Number of results")
	workers := flag.String("workers", "1,0", "Comma separated worker counts (0 = number of CPUs)")
	queries := flag.Int("queries", 5, "Searches per configuration")
	seed := flag.Uint64("seed", 1, "Embedding seed")
	flag.Parse()

	sizeList, err := parseInts(*sizes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -n: %v\n", err)
		os.Exit(1)
	}
	workerList, err := parseInts(*workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -workers: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("BRUTE-FORCE SEARCH BENCHMARK")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Dimension: %d   Top-K: %d   Queries per run: %d\n\n", *dim, *topK, *queries)
	fmt.Printf("%-12s %-10s %-14s %-14s %-10s\n", "documents", "workers", "init", "avg search", "top-1")
	fmt.Println(strings.Repeat("-", 70))

	ctx := context.Background()
	for _, n := range sizeList {
		coll := memstore.NewCollection("bench", *dim, embedding.NewSeededRandomEmbedder(*dim, *seed))

		start := time.Now()
		for i := 0; i < n; i++ {
			if err := coll.Insert(domain.NewDocumentID()); err != nil {
				fmt.Fprintf(os.Stderr, "Insert error: %v\n", err)
				os.Exit(1)
			}
		}
		initTime := time.Since(start)

		for _, w := range workerList {
			uc := usecase.NewSearchUseCase(coll, embedding.NewSeededRandomEmbedder(*dim, *seed+1), usecase.SearchOptions{
				TopN:    *topK,
				Workers: w,
			})

			var total time.Duration
			var top float64
			for q := 0; q < *queries; q++ {
				start := time.Now()
				results, err := uc.Search(ctx, "benchmark query")
				if err != nil {
					fmt.Fprintf(os.Stderr, "Search error: %v\n", err)
					os.Exit(1)
				}
				total += time.Since(start)
				if len(results) > 0 {
					top = results[0].Score
				}
			}

			avg := total / time.Duration(max(*queries, 1))
			fmt.Printf("%-12d %-10s %-14s %-14s %.4f\n", n, workerLabel(w), initTime.Round(time.Millisecond), avg.Round(time.Microsecond), top)
		}
	}
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		if v < 0 {
			return nil, fmt.Errorf("negative value %d", v)
		}
		out = append(out, v)
	}
	return out, nil
}

func workerLabel(w int) string {
	if w == 0 {
		return "cpus"
	}
	return strconv.Itoa(w)
}
