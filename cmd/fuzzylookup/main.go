// Command fuzzylookup loads a newline-delimited word list and answers
// fuzzy lookups against it from the command line. It exists to exercise
// fuzzytrie end to end outside of its test suite.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"fuzzytrie"
)

func main() {
	wordlist := flag.String("wordlist", "", "path to a newline-delimited word list (required)")
	query := flag.String("query", "", "word to search for (required)")
	k := flag.Int("distance", 2, "maximum edit distance")
	metricName := flag.String("metric", "levenshtein", "levenshtein or restricted-edit")
	insensitive := flag.Bool("insensitive", false, "case-insensitive matching")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(getEnv("FUZZYLOOKUP_LOG_LEVEL", "info")),
	}))
	slog.SetDefault(logger)

	if *wordlist == "" || *query == "" {
		fmt.Fprintln(os.Stderr, "usage: fuzzylookup -wordlist words.txt -query term [-distance 2] [-metric levenshtein|restricted-edit] [-insensitive]")
		os.Exit(2)
	}

	policy := fuzzytrie.Sensitive
	if *insensitive {
		policy = fuzzytrie.Insensitive
	}
	m, err := parseMetric(*metricName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	words, err := readWords(*wordlist)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read word list: %v\n", err)
		os.Exit(1)
	}

	pairs := make([]fuzzytrie.KV[string], len(words))
	for i, w := range words {
		pairs[i] = fuzzytrie.KV[string]{Key: w, Value: w}
	}

	start := time.Now()
	store, err := fuzzytrie.Build(pairs, policy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build index: %v\n", err)
		os.Exit(1)
	}
	store.SetLogger(logger)
	logger.Info("index built", "words", len(words), "elapsed", time.Since(start))

	results, err := store.Search(*query, *k, m, policy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "search failed: %v\n", err)
		os.Exit(1)
	}
	if len(results) == 0 {
		fmt.Println("no matches")
		return
	}
	for _, r := range results {
		fmt.Printf("%d\t%s\n", r.Distance, r.Value)
	}
}

func readWords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	seen := map[string]bool{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	return words, scanner.Err()
}

func parseMetric(name string) (fuzzytrie.Metric, error) {
	switch name {
	case "levenshtein":
		return fuzzytrie.Levenshtein, nil
	case "restricted-edit":
		return fuzzytrie.RestrictedEdit, nil
	default:
		return 0, fmt.Errorf("unknown metric %q (want levenshtein or restricted-edit)", name)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
