// Package cli implements the mempress CLI commands.
package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agentmem/mempress/internal/config"
	"github.com/agentmem/mempress/internal/store"
)

var (
	configPath string
	formatFlag string
	corpusPath string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "mempress",
	Short: "Bounded compression memory for coding agents",
	Long: "An in-process store that compresses session snippets (conversation, code,\n" +
		"errors, solutions), scores their importance, and keeps the most valuable\n" +
		"ones under a capacity cap. One engine per process; preload a JSONL corpus\n" +
		"with --corpus or drive a live session with `mempress repl`.",
}

func init() {
	godotenv.Load()

	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $MEMPRESS_CONFIG)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
	RootCmd.PersistentFlags().StringVar(&corpusPath, "corpus", "", "JSONL corpus to preload ({content, kind, meta} per line)")
}

func getConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return os.Getenv("MEMPRESS_CONFIG")
}

// openEngine builds a store from config and preloads the corpus when
// one was given.
func openEngine() (*store.Store, error) {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return nil, err
	}
	s, err := store.New(cfg)
	if err != nil {
		return nil, err
	}
	if corpusPath != "" {
		if _, err := loadCorpus(s, corpusPath); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// loadCorpus batch-compresses a JSONL file of {content, kind, meta}
// objects. Blank lines are skipped; a malformed line is an error.
func loadCorpus(s *store.Store, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	var items []store.BatchItem
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var it store.BatchItem
		if err := json.Unmarshal(line, &it); err != nil {
			return 0, fmt.Errorf("corpus line %d: %w", lineNo, err)
		}
		items = append(items, it)
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("read corpus: %w", err)
	}

	return s.BatchCompress(items), nil
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
