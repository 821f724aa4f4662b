package contentimporter

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/platform/logging"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/core/encoding"
	storagesqlite "github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/storage/sqlite"
)

var quietLog = logging.Config{Level: "disabled"}

func writePayload[T any](t *testing.T, dir, name, version string, items []T) {
	t.Helper()
	data, err := json.Marshal(payload[T]{Version: version, Source: "test", Items: items})
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func writeContent(t *testing.T, dir string, content catalog.Content) {
	t.Helper()
	writePayload(t, dir, fileMovementTypes, payloadVersion, content.MovementTypes)
	writePayload(t, dir, fileWeapons, payloadVersion, content.Weapons)
	writePayload(t, dir, fileTiles, payloadVersion, content.Tiles)
	writePayload(t, dir, fileUnits, payloadVersion, content.Units)
	writePayload(t, dir, fileBuildings, payloadVersion, content.Buildings)
}

func TestParseConfig(t *testing.T) {
	fs := flag.NewFlagSet("importer", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-dir", "content", "-dry-run"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Dir != "content" || !cfg.DryRun {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.DBPath != filepath.Join("data", "rules-content.db") {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
}

func TestParseConfigRequiresDir(t *testing.T) {
	fs := flag.NewFlagSet("importer", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected error for missing dir")
	}
}

func TestRunDryRunPrintsContentHash(t *testing.T) {
	dir := t.TempDir()
	content := catalog.Default().Content()
	writeContent(t, dir, content)

	var out bytes.Buffer
	if err := Run(context.Background(), Config{Dir: dir, DryRun: true, Log: quietLog}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	hash, err := encoding.ContentHash(content)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if got, want := out.String(), "validated content "+hash+"\n"; got != want {
		t.Fatalf("output = %q, want %q", got, want)
	}
}

func TestRunImportsIntoStore(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, catalog.Default().Content())
	dbPath := filepath.Join(t.TempDir(), "content.db")

	var out bytes.Buffer
	if err := Run(context.Background(), Config{Dir: dir, DBPath: dbPath, Log: quietLog}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "imported content ") {
		t.Fatalf("output = %q", out.String())
	}

	store, err := storagesqlite.OpenContent(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	cat, err := store.LoadCatalog(context.Background())
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	if !reflect.DeepEqual(cat.Content(), catalog.Default().Content()) {
		t.Fatal("stored content differs from imported files")
	}
	revision, err := store.Revision(context.Background())
	if err != nil {
		t.Fatalf("revision: %v", err)
	}
	if !strings.Contains(out.String(), revision) {
		t.Fatalf("output %q does not name revision %s", out.String(), revision)
	}
}

func TestRunRejectsBadPayloads(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		dir := t.TempDir()
		writeContent(t, dir, catalog.Default().Content())
		if err := os.Remove(filepath.Join(dir, fileTiles)); err != nil {
			t.Fatalf("remove: %v", err)
		}
		err := Run(context.Background(), Config{Dir: dir, DryRun: true, Log: quietLog}, nil)
		if err == nil || !strings.Contains(err.Error(), "read tiles.json") {
			t.Fatalf("err = %v, want read tiles.json error", err)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		dir := t.TempDir()
		writeContent(t, dir, catalog.Default().Content())
		if err := os.WriteFile(filepath.Join(dir, fileUnits), []byte("{"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		err := Run(context.Background(), Config{Dir: dir, DryRun: true, Log: quietLog}, nil)
		if err == nil || !strings.Contains(err.Error(), "decode units.json") {
			t.Fatalf("err = %v, want decode error", err)
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		dir := t.TempDir()
		content := catalog.Default().Content()
		writeContent(t, dir, content)
		writePayload(t, dir, fileWeapons, "v2", content.Weapons)
		err := Run(context.Background(), Config{Dir: dir, DryRun: true, Log: quietLog}, nil)
		if err == nil || !strings.Contains(err.Error(), "unsupported version") {
			t.Fatalf("err = %v, want version error", err)
		}
	})

	t.Run("duplicate unit", func(t *testing.T) {
		dir := t.TempDir()
		content := catalog.Default().Content()
		content.Units = append(content.Units, content.Units[0])
		writeContent(t, dir, content)
		err := Run(context.Background(), Config{Dir: dir, DryRun: true, Log: quietLog}, nil)
		if got := apperrors.CodeOf(err); got != apperrors.CodeDuplicateEntry {
			t.Fatalf("code = %v, want %v (%v)", got, apperrors.CodeDuplicateEntry, err)
		}
	})
}
