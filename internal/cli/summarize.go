package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Roll recent memories up into a summary",
		Run:   runSummarize,
	}

	cmd.Flags().StringP("kind", "k", "session", "Summary kind: session, task, project")
	cmd.Flags().StringSlice("id", nil, "Specific memory ids to include (default: recent ring)")

	RootCmd.AddCommand(cmd)
}

func runSummarize(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("kind")
	ids, _ := cmd.Flags().GetStringSlice("id")

	s, err := openEngine()
	if err != nil {
		exitErr("open engine", err)
	}

	if len(ids) == 0 {
		ids = nil
	}
	sum, ok := s.Summarize(kind, ids)
	if !ok {
		fmt.Println("no memories to summarize")
		return
	}

	if formatFlag == "text" {
		fmt.Print(renderSummary(sum))
		return
	}
	printJSON(sum)
}
