// Package main reports how complete each locale catalog is compared to the
// base locale.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/nkzw-tech/athena-crisis-sub002/internal/platform/config"
	i18ncatalog "github.com/nkzw-tech/athena-crisis-sub002/internal/platform/i18n/catalog"
)

type report struct {
	BaseLocale string         `json:"base_locale"`
	Locales    []localeStatus `json:"locales"`
}

type localeStatus struct {
	Locale      string            `json:"locale"`
	BaseKeys    int               `json:"base_keys"`
	Translated  int               `json:"translated"`
	Missing     int               `json:"missing"`
	Extra       int               `json:"extra"`
	Completion  float64           `json:"completion"`
	Namespaces  []namespaceStatus `json:"namespaces"`
	MissingKeys []string          `json:"missing_keys"`
	ExtraKeys   []string          `json:"extra_keys"`
}

type namespaceStatus struct {
	Namespace  string  `json:"namespace"`
	BaseKeys   int     `json:"base_keys"`
	Translated int     `json:"translated"`
	Missing    int     `json:"missing"`
	Completion float64 `json:"completion"`
}

func main() {
	if err := run(flag.CommandLine, os.Args[1:], os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}

func run(fs *flag.FlagSet, args []string, out io.Writer) error {
	var baseLocale, markdownOut, jsonOut string
	var strict bool
	fs.StringVar(&baseLocale, "base-locale", i18ncatalog.BaseLocale, "base locale used as translation source of truth")
	fs.StringVar(&markdownOut, "out", "", "markdown output path (default: stdout)")
	fs.StringVar(&jsonOut, "json-out", "", "json output path")
	fs.BoolVar(&strict, "strict", false, "fail when any locale is missing keys")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bundle, err := i18ncatalog.LoadEmbedded()
	if err != nil {
		return fmt.Errorf("load i18n catalogs: %w", err)
	}
	if !bundle.HasLocale(baseLocale) {
		return fmt.Errorf("base locale %q is missing from catalogs", baseLocale)
	}

	rep := buildReport(bundle, baseLocale)
	if jsonOut != "" {
		if err := writeJSON(jsonOut, rep); err != nil {
			return err
		}
	}
	markdown := renderMarkdown(rep)
	if markdownOut == "" {
		if _, err := io.WriteString(out, markdown); err != nil {
			return err
		}
	} else if err := writeFile(markdownOut, []byte(markdown)); err != nil {
		return err
	}

	if strict {
		for _, locale := range rep.Locales {
			if locale.Missing > 0 {
				return fmt.Errorf("locale %s is missing %d keys", locale.Locale, locale.Missing)
			}
		}
	}
	return nil
}

func buildReport(bundle *i18ncatalog.Bundle, baseLocale string) report {
	base := bundle.LocaleMessages(baseLocale)
	statuses := make([]localeStatus, 0)
	for _, locale := range bundle.Locales() {
		messages := bundle.LocaleMessages(locale)
		missing := missingKeys(base, messages)
		extra := missingKeys(messages, base)
		translated := len(base) - len(missing)

		namespaces := slices.Clone(bundle.Namespaces(baseLocale))
		for _, namespace := range bundle.Namespaces(locale) {
			if !slices.Contains(namespaces, namespace) {
				namespaces = append(namespaces, namespace)
			}
		}
		slices.Sort(namespaces)

		nsStatuses := make([]namespaceStatus, 0, len(namespaces))
		for _, namespace := range namespaces {
			baseNS := bundle.NamespaceMessages(baseLocale, namespace)
			nsMissing := missingKeys(baseNS, bundle.NamespaceMessages(locale, namespace))
			nsTranslated := len(baseNS) - len(nsMissing)
			nsStatuses = append(nsStatuses, namespaceStatus{
				Namespace:  namespace,
				BaseKeys:   len(baseNS),
				Translated: nsTranslated,
				Missing:    len(nsMissing),
				Completion: percent(nsTranslated, len(baseNS)),
			})
		}

		statuses = append(statuses, localeStatus{
			Locale:      locale,
			BaseKeys:    len(base),
			Translated:  translated,
			Missing:     len(missing),
			Extra:       len(extra),
			Completion:  percent(translated, len(base)),
			Namespaces:  nsStatuses,
			MissingKeys: missing,
			ExtraKeys:   extra,
		})
	}
	return report{BaseLocale: baseLocale, Locales: statuses}
}

func renderMarkdown(rep report) string {
	var b strings.Builder
	b.WriteString("# I18n Status\n\n")
	fmt.Fprintf(&b, "Base locale: `%s`.\n\n", rep.BaseLocale)
	b.WriteString("| Locale | Base Keys | Translated | Missing | Extra | Completion |\n")
	b.WriteString("| --- | ---: | ---: | ---: | ---: | ---: |\n")
	for _, locale := range rep.Locales {
		fmt.Fprintf(&b, "| `%s` | %d | %d | %d | %d | %.1f%% |\n", locale.Locale, locale.BaseKeys, locale.Translated, locale.Missing, locale.Extra, locale.Completion)
	}

	for _, locale := range rep.Locales {
		fmt.Fprintf(&b, "\n## Locale: `%s`\n\n", locale.Locale)
		b.WriteString("| Namespace | Base Keys | Translated | Missing | Completion |\n")
		b.WriteString("| --- | ---: | ---: | ---: | ---: |\n")
		for _, ns := range locale.Namespaces {
			fmt.Fprintf(&b, "| `%s` | %d | %d | %d | %.1f%% |\n", ns.Namespace, ns.BaseKeys, ns.Translated, ns.Missing, ns.Completion)
		}
		writeKeyList(&b, "Missing Keys", locale.MissingKeys)
		writeKeyList(&b, "Extra Keys", locale.ExtraKeys)
	}
	return b.String()
}

func writeKeyList(b *strings.Builder, title string, keys []string) {
	if len(keys) == 0 {
		return
	}
	fmt.Fprintf(b, "\n### %s\n\n", title)
	for _, key := range keys {
		fmt.Fprintf(b, "- `%s`\n", key)
	}
}

func writeJSON(path string, rep report) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// missingKeys lists keys of base that target lacks, sorted.
func missingKeys(base map[string]string, target map[string]string) []string {
	out := make([]string, 0)
	for key := range base {
		if _, ok := target[key]; !ok {
			out = append(out, key)
		}
	}
	slices.Sort(out)
	return out
}

func percent(numerator int, denominator int) float64 {
	if denominator <= 0 {
		return 100
	}
	value := float64(numerator) * 100 / float64(denominator)
	return math.Round(value*10) / 10
}
