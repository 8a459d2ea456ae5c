package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump all current entries as JSONL",
		Long:  "Dump every current memory entry in insertion order, one JSON object per line.",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	s, err := openEngine()
	if err != nil {
		exitErr("open engine", err)
	}

	for _, m := range s.Export() {
		b, _ := json.Marshal(m)
		fmt.Println(string(b))
	}
}
