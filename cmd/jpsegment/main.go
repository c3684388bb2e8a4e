// Command jpsegment is a minimal pass-through CLI over the Segmenter
// facade: it reads Japanese text from stdin (or a positional argument)
// and prints the dictionary-anchored token list, one per line.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"jpsegment/tokenize"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("jpsegment failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dictPath, rulesPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "jpsegment [text]",
		Short: "Segment Japanese text into dictionary-anchored tokens",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}

			var opts []tokenize.Option
			if dictPath != "" {
				opts = append(opts, tokenize.WithDictionaryPath(dictPath))
			}
			if rulesPath != "" {
				opts = append(opts, tokenize.WithRulesPath(rulesPath))
			}
			seg, err := tokenize.NewSegmenter(opts...)
			if err != nil {
				return err
			}

			tokens, err := seg.Segment(context.Background(), text)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(tokens)
			}
			for _, tok := range tokens {
				fmt.Fprintln(cmd.OutOrStdout(), tok)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dictPath, "dict", "", "override system dictionary archive path")
	cmd.Flags().StringVar(&rulesPath, "rules", "", "override deconjugation rule file path")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the token list as a JSON array")
	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	data, err := io.ReadAll(bufio.NewReader(cmd.InOrStdin()))
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
