package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "compress [content]",
		Short: "Compress a snippet into a memory entry",
		Long:  "Compress a snippet. Content can be a positional arg or piped via stdin.",
		Run:   runCompress,
	}

	cmd.Flags().StringP("kind", "k", "generic", "Kind: conversation, code, error, solution, context, generic")
	cmd.Flags().String("meta", "", "JSON metadata (e.g. '{\"relevance\": 0.8}')")

	RootCmd.AddCommand(cmd)
}

func runCompress(cmd *cobra.Command, args []string) {
	kind, _ := cmd.Flags().GetString("kind")
	metaStr, _ := cmd.Flags().GetString("meta")

	// Content: positional arg first, then stdin.
	var content string
	if len(args) > 0 {
		content = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			content = string(b)
		}
	}
	if strings.TrimSpace(content) == "" {
		exitErr("compress", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	var meta map[string]any
	if metaStr != "" {
		if err := json.Unmarshal([]byte(metaStr), &meta); err != nil {
			exitErr("parse meta", err)
		}
	}

	s, err := openEngine()
	if err != nil {
		exitErr("open engine", err)
	}

	m, err := s.Compress(content, kind, meta)
	if err != nil {
		exitErr("compress", err)
	}

	if formatFlag == "text" {
		fmt.Printf("compressed %s (%s): %d -> %d bytes (%.1f%%)\n",
			m.ID, m.Kind, len(m.Original), len(m.Compressed), m.CompressionRatio*100)
		return
	}
	printJSON(m)
}
