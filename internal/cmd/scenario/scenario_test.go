package scenario

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/errors"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/platform/logging"
	"github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/domain/catalog"
	rulesi18n "github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/i18n"
	storagesqlite "github.com/nkzw-tech/athena-crisis-sub002/internal/services/rules/storage/sqlite"
)

var quietLog = logging.Config{Level: "disabled"}

const passing = `return Scenario.new("passing"):expect_cost{unit = "Infantry", cost = 200}`
const failing = `return Scenario.new("failing"):expect_cost{unit = "Infantry", cost = 1}`

func writeScenario(t *testing.T, dir, name, source string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("scenario", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if !cfg.Assertions {
		t.Fatal("expected assertions to default to true")
	}
	if cfg.ContentDB != "" {
		t.Fatalf("content db = %q, want empty", cfg.ContentDB)
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv("TACTICS_SCENARIO_FILE", "from-env.lua")
	fs := flag.NewFlagSet("scenario", flag.ContinueOnError)

	cfg, err := ParseConfig(fs, []string{"-scenario", "from-flag.lua", "-assert=false"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Scenario != "from-flag.lua" || cfg.Assertions {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestRunRequiresScenario(t *testing.T) {
	if err := Run(context.Background(), Config{Log: quietLog}, nil, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunDirectory(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "a.lua", passing)
	writeScenario(t, dir, "b.lua", failing)
	writeScenario(t, dir, "notes.txt", "ignored")

	var out bytes.Buffer
	err := Run(context.Background(), Config{Scenario: dir, Assertions: true, Log: quietLog}, &out, nil)
	if err == nil || !strings.Contains(err.Error(), "1 of 2 scenarios failed") {
		t.Fatalf("err = %v, want one failure", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "ok   passing") || !strings.HasPrefix(lines[1], "FAIL ") ||
		!strings.Contains(lines[1], "[FailedPrecondition]") {
		t.Fatalf("output = %q", out.String())
	}

	out.Reset()
	if err := Run(context.Background(), Config{Scenario: dir, Log: quietLog}, &out, nil); err != nil {
		t.Fatalf("log-only run: %v", err)
	}
	if !strings.Contains(out.String(), "ok   failing (1 expectations, 1 failures)") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunLoadsCatalogFromContentDB(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "content.db")
	store, err := storagesqlite.OpenContent(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	content := catalog.Default().Content()
	for i := range content.Units {
		if content.Units[i].ID == catalog.Infantry {
			content.Units[i].Cost = 1
		}
	}
	if _, err := store.PutContent(context.Background(), content); err != nil {
		t.Fatalf("put content: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	path := writeScenario(t, t.TempDir(), "cheap.lua", failing)
	cfg := Config{Scenario: path, ContentDB: dbPath, Assertions: true, Log: quietLog}
	if err := Run(context.Background(), cfg, nil, nil); err != nil {
		t.Fatalf("run against stored catalog: %v", err)
	}
}

func TestRunLogsLocalizedFailureReason(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "failing.lua", failing)
	var out, logs bytes.Buffer
	cfg := Config{
		Scenario:   path,
		Assertions: true,
		Locale:     "de-DE",
		Log:        logging.Config{Level: "error", Format: "json"},
	}
	if err := Run(context.Background(), cfg, &out, &logs); err == nil {
		t.Fatal("expected failure")
	}
	if !strings.Contains(logs.String(), `"grpc_code":"FailedPrecondition"`) {
		t.Fatalf("logs = %q, want grpc code", logs.String())
	}
	want := rulesi18n.NewDescriber(nil).RejectionReason("de-DE", apperrors.WithMetadata(
		apperrors.CodeScenarioAssertion, "", map[string]string{"Step": "1"},
	))
	if !strings.Contains(logs.String(), `"reason":"`+want+`"`) {
		t.Fatalf("logs = %q, want reason %q", logs.String(), want)
	}
	if strings.Contains(want, "no value") {
		t.Fatalf("reason %q is missing the step", want)
	}
}
