package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lvim-tech/qf/internal/logging"
	"github.com/lvim-tech/qf/pkg/commands"
	_ "github.com/lvim-tech/qf/pkg/commands/find"
	"github.com/lvim-tech/qf/pkg/config"
	"github.com/lvim-tech/qf/pkg/launcher"
	"github.com/lvim-tech/qf/pkg/search"
	"github.com/spf13/cobra"
)

var (
	cfgFile      string
	verbose      bool
	launcherName string
	keyword      string
	version      = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "qf [query...]",
	Short: "Quick file finder for rofi, fuzzel, dmenu, bemenu and fzf",
	Long: `qf searches files and folders with fd and shows the results in a launcher.

The first word may be a search keyword (default "f" everything, "ff" files,
"fd" folders). Enter opens the result, Alt+Enter opens a terminal in its
folder (launchers without Alt+Enter ask which action to run).`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runInteractive,
}

func Execute() error { return rootCmd.Execute() }

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a config file (default ~/.config/qf/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log search states and commands")
	rootCmd.PersistentFlags().StringVarP(&keyword, "keyword", "k", "", "search keyword or mode (all, file, directory)")
	rootCmd.Flags().StringVarP(&launcherName, "launcher", "l", "", "launcher to use: "+strings.Join(launcher.Names, ", ")+" or auto")
	rootCmd.Version = version
}

func runInteractive(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	name := launcherName
	if name == "" {
		name = s.cfg.DefaultLauncher
	}
	l, err := launcher.New(name, s.cfg)
	if err != nil {
		return fmt.Errorf("failed to create launcher: %w", err)
	}
	logging.Debug("launcher " + l.Name())

	lctx := commands.NewContext(s.ctx, l, s.cfg, s.prefs, s.handler)

	kw, words := splitQuery(s.prefs, keyword, args)

	if kw == "" && len(words) == 0 {
		return runMenu(lctx, s)
	}

	mode, _ := resolveMode(s.prefs, kw)
	c := commands.Find(mode.String())
	if c == nil {
		return fmt.Errorf("no command for mode %s", mode)
	}

	result := c.Run(lctx.Direct(words))
	if result.Error != nil && !errors.Is(result.Error, commands.ErrBack) {
		return result.Error
	}
	return nil
}

// runMenu shows the search modes until one of them finishes
func runMenu(ctx *commands.Context, s *session) error {
	registered := commands.List()
	if len(registered) == 0 {
		return fmt.Errorf("no commands registered")
	}

	for {
		var options []string
		optionToCommand := make(map[string]commands.Command)
		for _, c := range registered {
			options = append(options, c.Description)
			optionToCommand[c.Description] = c
		}

		choice, err := ctx.Show(options, "qf")
		if err != nil {
			return nil
		}

		c, ok := optionToCommand[choice]
		if !ok {
			s.notifyError(fmt.Sprintf("Unknown command: %s", choice))
			continue
		}

		result := c.Run(ctx)
		if result.Success {
			return nil
		}

		if result.Error != nil && !errors.Is(result.Error, commands.ErrBack) {
			s.notifyError(result.Error.Error())
		}
	}
}

// splitQuery separates a leading search keyword from the query words.
// An explicit --keyword wins and the words are kept as they are.
func splitQuery(prefs search.Preferences, kw string, words []string) (string, []string) {
	if kw != "" || len(words) == 0 {
		return kw, words
	}
	if k, q := prefs.SplitKeyword(strings.Join(words, " ")); k != "" {
		return k, strings.Fields(q)
	}
	return kw, words
}

// resolveMode maps the --keyword value, a search keyword or a mode name, to a mode and its keyword
func resolveMode(prefs search.Preferences, kw string) (search.Mode, string) {
	if kw == "" {
		return search.All, prefs.AllKeyword
	}
	for _, k := range prefs.Keywords() {
		if k == kw {
			return prefs.ModeForKeyword(kw), kw
		}
	}
	if m, ok := search.ParseMode(kw); ok {
		return m, prefs.KeywordForMode(m)
	}
	return search.All, prefs.AllKeyword
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "qf version %s\n", version)
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default config to ~/.config/qf/config.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.InitUserConfig(cfgFile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config initialized at: %s\n", path)
			fmt.Fprintln(out, "\nYou can now edit the config file to customize qf.")
			fmt.Fprintln(out, "Run 'qf' to start using it!")
			return nil
		},
	})
}
