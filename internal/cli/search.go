package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentmem/mempress/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search memories by keyword",
		Long:  "Search compressed content and entities for matching text, ranked by relevance.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().StringP("kind", "k", "", "Filter by kind")
	cmd.Flags().IntP("limit", "l", 0, "Max results (default 5)")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("kind")
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s, err := openEngine()
	if err != nil {
		exitErr("open engine", err)
	}

	results := s.Search(store.SearchParams{Query: query, Kind: kind, Limit: limit})

	if formatFlag == "text" {
		fmt.Print(renderSearch(results))
		return
	}
	if len(results) == 0 {
		fmt.Println("[]")
		return
	}
	printJSON(results)
}
