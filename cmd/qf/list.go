package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lvim-tech/qf/pkg/output"
	"github.com/lvim-tech/qf/pkg/search"
	"github.com/spf13/cobra"
)

var outputFormat string

var listCmd = &cobra.Command{
	Use:   "list <query...>",
	Short: "Print the results of a search",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := output.ParseFormat(outputFormat)
		if err != nil {
			return err
		}

		s, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer s.close()

		kw, words := splitQuery(s.prefs, keyword, args)
		query := strings.TrimSpace(strings.Join(words, " "))
		if utf8.RuneCountInString(query) < search.MinQueryLength {
			return fmt.Errorf("query %q is too short (at least %d characters)", query, search.MinQueryLength)
		}

		mode, _ := resolveMode(s.prefs, kw)
		list, err := s.dispatcher.Search(s.ctx, query, mode, s.prefs)
		if err != nil {
			return err
		}

		return output.Write(cmd.OutOrStdout(), format, output.NewReport(list))
	},
}

func init() {
	listCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json or yaml")
	rootCmd.AddCommand(listCmd)
}
