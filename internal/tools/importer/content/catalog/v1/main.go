// Package contentimporter loads catalog content from JSON files, validates it
// and writes it to the content database.
package contentimporter

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nkzw-tech/athena-crisis-sub002/internal/platform/config"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/platform/logging"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/core/encoding"
	storagesqlite "github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/storage/sqlite"
)

const (
	fileMovementTypes = "movement_types.json"
	fileWeapons       = "weapons.json"
	fileTiles         = "tiles.json"
	fileUnits         = "units.json"
	fileBuildings     = "buildings.json"
)

// Config holds configuration for the content importer.
type Config struct {
	Dir    string
	DBPath string
	DryRun bool
	Log    logging.Config
}

// ParseConfig parses CLI flags into a Config. Logging settings come from the
// environment.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{
		DBPath: filepath.Join("data", "rules-content.db"),
	}
	if err := config.ParseEnv(&cfg.Log); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Dir, "dir", "", "directory containing content JSON files")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "content database path")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "validate without writing to the database")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if strings.TrimSpace(cfg.Dir) == "" {
		return Config{}, errors.New("dir is required")
	}
	if !cfg.DryRun && strings.TrimSpace(cfg.DBPath) == "" {
		return Config{}, errors.New("db-path is required")
	}
	return cfg, nil
}

// Run executes the importer using the provided Config.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}
	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	logger = logging.Component(logger, "content-importer")

	dir := strings.TrimSpace(cfg.Dir)
	if dir == "" {
		return errors.New("dir is required")
	}

	payloads, err := readPayloads(dir)
	if err != nil {
		return err
	}
	if err := validatePayloads(payloads); err != nil {
		return err
	}
	content := payloads.content()
	cat, err := catalog.New(content)
	if err != nil {
		return fmt.Errorf("validate content: %w", err)
	}
	logger.Debug().
		Int("units", len(cat.Units())).
		Int("buildings", len(cat.Buildings())).
		Int("tiles", len(cat.Tiles())).
		Msg("content validated")

	if cfg.DryRun {
		hash, err := encoding.ContentHash(cat.Content())
		if err != nil {
			return fmt.Errorf("hash content: %w", err)
		}
		_, err = fmt.Fprintf(out, "validated content %s\n", hash)
		return err
	}

	store, err := storagesqlite.OpenContent(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open content store: %w", err)
	}
	defer store.Close()

	revision, err := store.PutContent(ctx, content)
	if err != nil {
		return fmt.Errorf("import content: %w", err)
	}
	logger.Info().Str("revision", revision).Str("db_path", cfg.DBPath).Msg("content imported")
	_, err = fmt.Fprintf(out, "imported content %s into %s\n", revision, cfg.DBPath)
	return err
}

func readPayloads(dir string) (contentPayloads, error) {
	var payloads contentPayloads
	var err error
	if payloads.MovementTypes, err = readJSON[movementTypePayload](dir, fileMovementTypes); err != nil {
		return payloads, err
	}
	if payloads.Weapons, err = readJSON[weaponPayload](dir, fileWeapons); err != nil {
		return payloads, err
	}
	if payloads.Tiles, err = readJSON[tilePayload](dir, fileTiles); err != nil {
		return payloads, err
	}
	if payloads.Units, err = readJSON[unitPayload](dir, fileUnits); err != nil {
		return payloads, err
	}
	if payloads.Buildings, err = readJSON[buildingPayload](dir, fileBuildings); err != nil {
		return payloads, err
	}
	return payloads, nil
}

func readJSON[T any](dir string, name string) (*T, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return &value, nil
}

func validatePayloads(payloads contentPayloads) error {
	validate := func(name, version, source string) error {
		if version != payloadVersion {
			return fmt.Errorf("%s: unsupported version %q", name, version)
		}
		if strings.TrimSpace(source) == "" {
			return fmt.Errorf("%s: source is required", name)
		}
		return nil
	}
	if err := validate(fileMovementTypes, payloads.MovementTypes.Version, payloads.MovementTypes.Source); err != nil {
		return err
	}
	if err := validate(fileWeapons, payloads.Weapons.Version, payloads.Weapons.Source); err != nil {
		return err
	}
	if err := validate(fileTiles, payloads.Tiles.Version, payloads.Tiles.Source); err != nil {
		return err
	}
	if err := validate(fileUnits, payloads.Units.Version, payloads.Units.Source); err != nil {
		return err
	}
	return validate(fileBuildings, payloads.Buildings.Version, payloads.Buildings.Source)
}
