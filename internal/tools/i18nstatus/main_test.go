package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestMissingKeys(t *testing.T) {
	base := map[string]string{"a": "A", "b": "B", "c": "C"}
	target := map[string]string{"b": "B", "d": "D"}
	if got := missingKeys(base, target); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("missing = %v, want [a c]", got)
	}
	if got := missingKeys(target, base); !reflect.DeepEqual(got, []string{"d"}) {
		t.Fatalf("extra = %v, want [d]", got)
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		num, den int
		want     float64
	}{
		{num: 1, den: 3, want: 33.3},
		{num: 2, den: 2, want: 100},
		{num: 0, den: 0, want: 100},
	}
	for _, tc := range tests {
		if got := percent(tc.num, tc.den); got != tc.want {
			t.Fatalf("percent(%d, %d) = %v, want %v", tc.num, tc.den, got, tc.want)
		}
	}
}

func TestRunWritesReports(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "status.json")
	var out bytes.Buffer

	fs := flag.NewFlagSet("i18nstatus", flag.ContinueOnError)
	if err := run(fs, []string{"-json-out", jsonPath}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "| `en-US` |") || !strings.Contains(out.String(), "| `de-DE` |") {
		t.Fatalf("markdown = %s", out.String())
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	var rep report
	if err := json.Unmarshal(data, &rep); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if rep.BaseLocale != "en-US" {
		t.Fatalf("base locale = %q", rep.BaseLocale)
	}
	for _, locale := range rep.Locales {
		if locale.Locale == "en-US" && (locale.Missing != 0 || locale.Completion != 100) {
			t.Fatalf("base locale status = %+v", locale)
		}
		if len(locale.Namespaces) == 0 {
			t.Fatalf("%s has no namespaces", locale.Locale)
		}
	}
}

func TestRunRejectsUnknownBaseLocale(t *testing.T) {
	fs := flag.NewFlagSet("i18nstatus", flag.ContinueOnError)
	if err := run(fs, []string{"-base-locale", "xx-XX"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error")
	}
}
