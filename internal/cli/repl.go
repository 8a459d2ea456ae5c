package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentmem/mempress/internal/model"
	"github.com/agentmem/mempress/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Drive one engine interactively for a whole session",
		Long: "Run an interactive session against a single engine instance.\n" +
			"Commands: compress <kind> <text>, search <query>, stats, summarize [kind],\n" +
			"export, reset, help, exit.",
		Run: runRepl,
	}

	RootCmd.AddCommand(cmd)
}

func runRepl(cmd *cobra.Command, args []string) {
	s, err := openEngine()
	if err != nil {
		exitErr("open engine", err)
	}

	sc := bufio.NewScanner(os.Stdin)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	fmt.Println("mempress session (type 'help' for commands)")
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			return
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		verb, rest, _ := strings.Cut(line, " ")
		switch verb {
		case "compress":
			replCompress(s, rest)
		case "search":
			if rest == "" {
				fmt.Println("usage: search <query>")
				continue
			}
			fmt.Print(renderSearch(s.Search(store.SearchParams{Query: rest})))
		case "stats":
			fmt.Print(renderStats(s.Stats()))
		case "summarize":
			kind := strings.TrimSpace(rest)
			sum, ok := s.Summarize(kind, nil)
			if !ok {
				fmt.Println("no memories to summarize")
				continue
			}
			fmt.Print(renderSummary(sum))
		case "export":
			for _, m := range s.Export() {
				fmt.Printf("%s  %-12s  %.2f  %s\n", m.ID, m.Kind, m.Importance, preview(m.Compressed, 60))
			}
		case "reset":
			s.Reset()
			fmt.Println("engine reset")
		case "help":
			fmt.Println("commands: compress <kind> <text> | search <query> | stats | summarize [kind] | export | reset | exit")
		case "exit", "quit":
			return
		default:
			fmt.Printf("unknown command %q (try 'help')\n", verb)
		}
	}
}

func replCompress(s *store.Store, rest string) {
	kind, text, _ := strings.Cut(rest, " ")
	if text == "" {
		fmt.Println("usage: compress <kind> <text>")
		return
	}
	if !model.ValidKinds[kind] {
		fmt.Printf("note: unrecognized kind %q, using generic behavior\n", kind)
	}
	m, err := s.Compress(text, kind, nil)
	if err != nil {
		fmt.Printf("compress failed: %v\n", err)
		return
	}
	fmt.Printf("stored %s (%.1f%% of original, importance %.2f)\n",
		m.ID, m.CompressionRatio*100, m.Importance)
}
