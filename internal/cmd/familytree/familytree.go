// Package familytree parses familytree command flags and runs a generation
// session: load tables, grow the tree, answer menu questions.
package familytree

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	treegen "github.com/louisbranch/familytree/internal/familytree"
	"github.com/louisbranch/familytree/internal/menu"
	"github.com/louisbranch/familytree/internal/person"
	entrypoint "github.com/louisbranch/familytree/internal/platform/cmd"
	"github.com/louisbranch/familytree/internal/platform/logging"
	"github.com/louisbranch/familytree/internal/random"
	"github.com/louisbranch/familytree/internal/refdata"
)

// Config holds familytree command configuration. Variables carry the
// FAMILYTREE_ prefix, e.g. FAMILYTREE_DATA_DIR.
type Config struct {
	DataDir     string `env:"DATA_DIR" envDefault:"data"`
	Seed        int64  `env:"SEED"`
	HorizonYear int    `env:"HORIZON_YEAR" envDefault:"2120"`
	FounderYear int    `env:"FOUNDER_YEAR" envDefault:"1950"`
	LogJSON     bool   `env:"LOG_JSON"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"warn"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Directory holding the reference CSV tables")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for reproducibility (0 = random)")
	fs.IntVar(&cfg.HorizonYear, "horizon", cfg.HorizonYear, "Last birth year at which individuals are created")
	fs.IntVar(&cfg.FounderYear, "founder-year", cfg.FounderYear, "Birth year of the two founders")
	fs.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "Emit JSON logs")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		return Config{}, errors.New("data dir is required")
	}
	return cfg, nil
}

// Run loads the reference tables, generates the tree and serves the menu on
// in/out. Logs go to errOut.
func Run(ctx context.Context, cfg Config, in io.Reader, out, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	logger, err := logging.New(errOut, logging.Options{JSON: cfg.LogJSON, Level: cfg.LogLevel})
	if err != nil {
		return err
	}
	defer logger.Sync()

	opts := entrypoint.RunOptions{Logger: logger}
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceFamilyTree, opts, func(ctx context.Context) error {
		rng, seed, err := random.NewSeededRNG(cfg.Seed)
		if err != nil {
			return err
		}
		logger.Info("random source ready", zap.Int64("seed", seed))

		fmt.Fprintln(out, "Reading files...")
		tables, err := refdata.LoadDir(ctx, cfg.DataDir)
		if err != nil {
			return fmt.Errorf("read reference tables: %w", err)
		}
		provider := refdata.NewProvider(tables, rng)

		treeCfg := treegen.DefaultConfig()
		treeCfg.HorizonYear = cfg.HorizonYear
		treeCfg.FounderYear = cfg.FounderYear
		tree := treegen.New(treeCfg, provider, person.NewGenerator(provider, rng), rng, logger)

		fmt.Fprintln(out, "Generating family tree...")
		if err := tree.Generate(ctx); err != nil {
			return fmt.Errorf("generate tree (seed %d): %w", seed, err)
		}

		return menu.Run(ctx, in, out, tree)
	})
}
