package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"vecstore/config"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Collection.EmbeddingSize = 32
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestExecuteText(t *testing.T) {
	var out bytes.Buffer
	opts := runOptions{Collection: "docs", Documents: 25, Query: "example query", TopK: 10}

	if err := execute(context.Background(), testConfig(), discardLogger(), opts, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := out.String()
	if got := strings.Count(text, "Document ID:"); got != 10 {
		t.Errorf("expected 10 result lines, got %d:\n%s", got, text)
	}
	for _, want := range []string{"Init time:", "Search time:", "Collection length : 25"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected output to contain %q:\n%s", want, text)
		}
	}
}

func TestExecuteJSON(t *testing.T) {
	cfg := testConfig()
	cfg.Search.CacheSize = 8

	var out bytes.Buffer
	opts := runOptions{Collection: "docs", Documents: 4, Query: "q", TopK: 10, Seed: 5, JSON: true}
	if err := execute(context.Background(), cfg, discardLogger(), opts, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var report runReport
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("expected JSON output: %v\n%s", err, out.String())
	}
	if report.Length != 4 || len(report.Results) != 4 {
		t.Errorf("expected 4 documents and 4 results, got %+v", report)
	}
	for i := 1; i < len(report.Results); i++ {
		if report.Results[i].Score > report.Results[i-1].Score {
			t.Errorf("results not descending at %d", i)
		}
	}
}

func TestExecuteEmptyCollection(t *testing.T) {
	var out bytes.Buffer
	opts := runOptions{Collection: "empty", Documents: 0, Query: "q", TopK: 10}
	if err := execute(context.Background(), testConfig(), discardLogger(), opts, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No results found.") {
		t.Errorf("expected empty result message, got:\n%s", out.String())
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := t.TempDir() + "/vecstore.yaml"

	if err := writeDefaultConfig(path, false); err != nil {
		t.Fatal(err)
	}
	if err := writeDefaultConfig(path, false); err == nil {
		t.Error("expected refusal to overwrite without force")
	}
	if err := writeDefaultConfig(path, true); err != nil {
		t.Errorf("expected overwrite with force, got %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *config.DefaultConfig() {
		t.Errorf("expected written config to equal defaults, got %+v", cfg)
	}
}
