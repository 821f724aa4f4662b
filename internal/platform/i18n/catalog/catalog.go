// Package catalog loads the embedded locale files and registers their
// messages with golang.org/x/text/message.
//
// Files live at locales/<locale>/<namespace>.yaml. Keys are unique per
// locale across all namespaces, so a key alone identifies a message.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other locale is translated from.
const BaseLocale = "en-US"

const localeGlob = "locales/*/*.yaml"

//go:embed locales/*/*.yaml
var embedded embed.FS

var defaultBundle = mustLoadEmbedded()

type localeFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

type localeMessages struct {
	namespaces map[string]map[string]string
	keys       map[string]string
}

// Bundle holds the messages of every loaded locale.
type Bundle struct {
	locales map[string]*localeMessages
}

// Default returns the embedded bundle, already registered with x/text.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the locale files compiled into this package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embedded)
}

// LoadFromFS loads every locale file of fsys. The base locale must be
// present.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	files, err := fs.Glob(fsys, localeGlob)
	if err != nil {
		return nil, fmt.Errorf("glob locale files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no locale files match %s", localeGlob)
	}
	slices.Sort(files)

	b := &Bundle{locales: map[string]*localeMessages{}}
	for _, name := range files {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		var file localeFile
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if err := b.add(name, file); err != nil {
			return nil, fmt.Errorf("locale file %s: %w", name, err)
		}
	}
	if !b.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s has no locale files", BaseLocale)
	}
	return b, nil
}

// add merges one file. Locale and namespace must agree with the file path.
func (b *Bundle) add(name string, file localeFile) error {
	dir, base := path.Split(name)
	wantLocale := path.Base(dir)
	wantNamespace := strings.TrimSuffix(base, path.Ext(base))

	locale := strings.TrimSpace(file.Locale)
	namespace := strings.TrimSpace(file.Namespace)
	switch {
	case locale == "":
		return fmt.Errorf("missing locale")
	case locale != wantLocale:
		return fmt.Errorf("locale %q does not match directory %q", locale, wantLocale)
	case namespace != wantNamespace:
		return fmt.Errorf("namespace %q does not match file name %q", namespace, wantNamespace)
	case len(file.Messages) == 0:
		return fmt.Errorf("no messages")
	}

	lm := b.locales[locale]
	if lm == nil {
		lm = &localeMessages{namespaces: map[string]map[string]string{}, keys: map[string]string{}}
		b.locales[locale] = lm
	}
	if _, ok := lm.namespaces[namespace]; ok {
		return fmt.Errorf("namespace %q defined twice", namespace)
	}

	ns := make(map[string]string, len(file.Messages))
	for rawKey, text := range file.Messages {
		key := strings.TrimSpace(rawKey)
		if key == "" {
			return fmt.Errorf("blank message key")
		}
		if _, ok := lm.keys[key]; ok {
			return fmt.Errorf("key %q already defined for %s", key, locale)
		}
		lm.keys[key] = text
		ns[key] = text
	}
	lm.namespaces[namespace] = ns
	return nil
}

// Register makes every message available to message.Printer. A regional
// locale also registers under its bare language so "de" resolves "de-DE".
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	for _, locale := range b.Locales() {
		tags, err := registrationTags(locale)
		if err != nil {
			return err
		}
		lm := b.locales[locale]
		for _, key := range slices.Sorted(maps.Keys(lm.keys)) {
			for _, tag := range tags {
				if err := message.SetString(tag, key, lm.keys[key]); err != nil {
					return fmt.Errorf("register %s %q: %w", locale, key, err)
				}
			}
		}
	}
	return nil
}

func registrationTags(locale string) ([]language.Tag, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	tags := []language.Tag{tag}
	base, confidence := tag.Base()
	if confidence == language.No {
		return tags, nil
	}
	if bare, err := language.Parse(base.String()); err == nil && bare != tag {
		tags = append(tags, bare)
	}
	return tags, nil
}

// Printer returns a printer for the loaded locale closest to locale.
func (b *Bundle) Printer(locale string) *message.Printer {
	supported := b.tags()
	requested, _ := language.Parse(strings.TrimSpace(locale))
	_, i, _ := language.NewMatcher(supported).Match(requested)
	return message.NewPrinter(supported[i])
}

// tags lists the loaded locales with the base locale first, which makes it
// the matcher fallback.
func (b *Bundle) tags() []language.Tag {
	out := []language.Tag{language.MustParse(BaseLocale)}
	for _, locale := range b.Locales() {
		if locale == BaseLocale {
			continue
		}
		if tag, err := language.Parse(locale); err == nil {
			out = append(out, tag)
		}
	}
	return out
}

// HasLocale reports whether any file was loaded for locale.
func (b *Bundle) HasLocale(locale string) bool {
	return b.lookup(locale) != nil
}

// Locales returns the loaded locales in name order.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(b.locales))
}

// Namespaces returns the namespaces of locale in name order.
func (b *Bundle) Namespaces(locale string) []string {
	lm := b.lookup(locale)
	if lm == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(lm.namespaces))
}

// LocaleMessages returns a copy of every message of locale.
func (b *Bundle) LocaleMessages(locale string) map[string]string {
	lm := b.lookup(locale)
	if lm == nil {
		return map[string]string{}
	}
	return maps.Clone(lm.keys)
}

// Message looks key up in locale, then in the base locale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	key = strings.TrimSpace(key)
	for _, candidate := range []string{locale, BaseLocale} {
		if lm := b.lookup(candidate); lm != nil {
			if text, ok := lm.keys[key]; ok {
				return text, true
			}
		}
	}
	return "", false
}

// NamespaceMessages returns a copy of one namespace of locale. Missing
// locales and namespaces yield an empty map.
func (b *Bundle) NamespaceMessages(locale, namespace string) map[string]string {
	lm := b.lookup(locale)
	if lm == nil {
		return map[string]string{}
	}
	ns := lm.namespaces[strings.TrimSpace(namespace)]
	if ns == nil {
		return map[string]string{}
	}
	return maps.Clone(ns)
}

// NamespaceMessagesWithFallback returns the namespace of locale, or the
// base locale's when locale has none, along with the locale used.
func (b *Bundle) NamespaceMessagesWithFallback(locale, namespace string) (string, map[string]string) {
	locale = strings.TrimSpace(locale)
	if messages := b.NamespaceMessages(locale, namespace); len(messages) > 0 {
		return locale, messages
	}
	return BaseLocale, b.NamespaceMessages(BaseLocale, namespace)
}

func (b *Bundle) lookup(locale string) *localeMessages {
	if b == nil {
		return nil
	}
	return b.locales[strings.TrimSpace(locale)]
}

func mustLoadEmbedded() *Bundle {
	b, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := b.Register(); err != nil {
		panic(err)
	}
	return b
}
