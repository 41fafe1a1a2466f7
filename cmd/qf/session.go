package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lvim-tech/qf/internal/logging"
	"github.com/lvim-tech/qf/pkg/config"
	"github.com/lvim-tech/qf/pkg/icons"
	"github.com/lvim-tech/qf/pkg/search"
	"github.com/lvim-tech/qf/pkg/utils"
)

// session is everything a qf command needs, built once per run
type session struct {
	ctx        context.Context
	cfg        *config.Config
	prefs      search.Preferences
	icons      *icons.Bundled
	dispatcher *search.Dispatcher
	handler    *search.Handler
}

func newSession(ctx context.Context) (*session, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logging.Init(logging.DefaultPath()); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
	}
	logging.SetVerbose(verbose)

	s := &session{ctx: ctx, cfg: cfg}

	prefs, err := search.DecodePreferences(cfg.GetSearchConfig())
	if err != nil {
		s.notifyError(fmt.Sprintf("invalid [search] config, using defaults: %v", err))
	}
	s.prefs = prefs

	s.icons = icons.NewBundled(filepath.Join(utils.GetCacheDir(), "qf", "icons"))
	resolver := icons.NewThemeResolver(prefs.IconTheme, prefs.IconSize, s.icons)

	runner := search.NewExecRunner()
	s.dispatcher = search.NewDispatcher(runner, search.NewToolResolver(runner), resolver)
	s.handler = s.newHandler(s.notify)

	return s, nil
}

// newHandler builds a search handler that reports failures to onError
func (s *session) newHandler(onError func(title, message string)) *search.Handler {
	return search.NewHandler(s.dispatcher, s.icons.Path(icons.AppIcon), onError)
}

// logOnly reports handler failures to the log file only
func logOnly(title, message string) {
	logging.Error(title + ": " + message)
}

func (s *session) close() {
	logging.Close()
}

func (s *session) notify(title, message string) {
	logging.Error(title + ": " + message)
	notifCfg := s.cfg.GetNotificationConfig()
	utils.ShowErrorNotificationWithConfig(&notifCfg, title, message)
}

func (s *session) notifyError(message string) {
	s.notify("qf", message)
}
