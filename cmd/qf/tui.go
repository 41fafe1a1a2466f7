package main

import (
	"strings"

	"github.com/lvim-tech/qf/internal/logging"
	"github.com/lvim-tech/qf/pkg/tui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "tui [query...]",
		Short: "Search as you type in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			_, kw := resolveMode(s.prefs, keyword)
			action, err := tui.Run(s.ctx, s.newHandler(logOnly), s.prefs, kw, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if action == nil {
				return nil
			}

			logging.Debug("action " + action.Kind.String())
			if err := action.Run(); err != nil {
				s.notifyError(err.Error())
				return err
			}
			return nil
		},
	})
}
