// Package scenario wires the scenario command: flags, logging and content
// loading around the Lua scenario runner.
package scenario

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"

	platformcmd "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/cmd"
	i18ncatalog "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/i18n/catalog"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/platform/logging"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	rulesi18n "github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/i18n"
	storagesqlite "github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/storage/sqlite"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/tools/scenario"
)

// Config holds scenario command configuration.
type Config struct {
	Scenario   string `env:"TACTICS_SCENARIO_FILE"`
	ContentDB  string `env:"TACTICS_SCENARIO_CONTENT_DB"`
	Assertions bool   `env:"TACTICS_SCENARIO_ASSERT"  envDefault:"true"`
	Verbose    bool   `env:"TACTICS_SCENARIO_VERBOSE"`
	Locale     string `env:"TACTICS_SCENARIO_LOCALE"  envDefault:"en-US"`
	Log        logging.Config
}

// ParseConfig parses env defaults and then flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, "path to a scenario lua file or a directory of them")
	fs.StringVar(&cfg.ContentDB, "content-db", cfg.ContentDB, "content database to load the catalog from (default: built-in catalog)")
	fs.BoolVar(&cfg.Assertions, "assert", cfg.Assertions, "enable assertions (disable to log expectations)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable verbose logging")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for failure reasons")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes every scenario named by cfg and prints one line per scenario
// to out.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if strings.TrimSpace(cfg.Scenario) == "" {
		return errors.New("scenario path is required")
	}

	logger, err := logging.New(cfg.Log, errOut)
	if err != nil {
		return err
	}
	logger = logging.Component(logger, "scenario")

	cat, err := loadCatalog(ctx, cfg.ContentDB)
	if err != nil {
		return err
	}

	paths, err := scenarioPaths(cfg.Scenario)
	if err != nil {
		return err
	}

	mode := scenario.AssertionStrict
	if !cfg.Assertions {
		mode = scenario.AssertionLogOnly
	}
	runnerCfg := scenario.Config{
		Catalog:    cat,
		Assertions: mode,
		Verbose:    cfg.Verbose,
		Logger:     logger,
	}

	locale := cfg.Locale
	if strings.TrimSpace(locale) == "" {
		locale = i18ncatalog.BaseLocale
	}
	describer := rulesi18n.NewDescriber(nil)

	var failed []string
	for _, path := range paths {
		report, err := scenario.RunFile(ctx, runnerCfg, path)
		if err != nil {
			st := status.Convert(describer.RejectionStatus(locale, err))
			logger.Error().Err(err).
				Str("path", path).
				Str("grpc_code", st.Code().String()).
				Str("reason", localizedReason(st)).
				Msg("scenario failed")
			fmt.Fprintf(out, "FAIL %s [%s]: %v\n", path, st.Code(), err)
			failed = append(failed, path)
			continue
		}
		fmt.Fprintf(out, "ok   %s (%d expectations, %d failures)\n", report.Name, report.Expectations, report.Failures)
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d scenarios failed", len(failed), len(paths))
	}
	return nil
}

// localizedReason returns the LocalizedMessage detail of st, or its message.
func localizedReason(st *status.Status) string {
	for _, detail := range st.Details() {
		if msg, ok := detail.(*errdetails.LocalizedMessage); ok {
			return msg.GetMessage()
		}
	}
	return st.Message()
}

func loadCatalog(ctx context.Context, path string) (*catalog.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return catalog.Default(), nil
	}
	store, err := storagesqlite.OpenContent(path)
	if err != nil {
		return nil, fmt.Errorf("open content store: %w", err)
	}
	defer store.Close()
	cat, err := store.LoadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

// scenarioPaths expands a directory into its .lua files in name order.
func scenarioPaths(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	paths, err := filepath.Glob(filepath.Join(path, "*.lua"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenarios found in %s", path)
	}
	sort.Strings(paths)
	return paths, nil
}
